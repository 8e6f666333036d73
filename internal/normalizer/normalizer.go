package normalizer

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

// Kind describes the recognized shape of a raw checkout payload.
type Kind string

const (
	// KindObject is a plain JSON object with fields at the top level.
	KindObject Kind = "object"
	// KindWrapped is a JSON object whose real content arrived as a
	// stringified JSON blob in its "data" field.
	KindWrapped Kind = "wrapped_string"
	// KindLoose is a semi-structured string requiring pattern extraction.
	KindLoose Kind = "loose_string"
	// KindEncrypted carries an opaque encrypted_response and nothing else
	// worth extracting.
	KindEncrypted Kind = "encrypted"
)

// Normalize converts an arbitrary raw payload into exactly one PaymentResult.
// It never panics and never fails: malformed input degrades to absent fields
// or the default failed result, so a result screen can always render.
func Normalize(raw []byte) model.PaymentResult {
	result, _ := NormalizeWithKind(raw)
	return result
}

// NormalizeWithKind is Normalize plus the resolved payload kind, for callers
// that log how the payload arrived.
func NormalizeWithKind(raw []byte) (model.PaymentResult, Kind) {
	kind, fields := Classify(raw)
	return fromFields(fields), kind
}

// Classify resolves the payload shape before any field extraction and returns
// the flat field map extraction will run against.
func Classify(raw []byte) (Kind, map[string]any) {
	fields, err := decodeObject(raw)
	if err != nil {
		return KindLoose, scanLoose(string(raw))
	}

	kind := KindObject
	if data, ok := fields["data"].(string); ok && strings.TrimSpace(data) != "" {
		kind = KindWrapped
		inner, err := decodeObject([]byte(data))
		if err != nil {
			kind = KindLoose
			inner = scanLoose(data)
		}
		merged := make(map[string]any, len(fields)+len(inner))
		for k, v := range fields {
			merged[k] = v
		}
		delete(merged, "data")
		for k, v := range inner {
			merged[k] = v
		}
		fields = merged
	}

	if cleanValue(fields["encrypted_response"]) != "" {
		kind = KindEncrypted
	}
	return kind, fields
}

func fromFields(fields map[string]any) model.PaymentResult {
	res := model.PaymentResult{
		OrderID: resolve([]map[string]any{fields}, "order_id", "nimbbl_order_id"),
	}

	// Encrypted responses short-circuit: everything but the order id and the
	// opaque payload is suppressed, and the closed status classification does
	// not apply.
	if enc := cleanValue(fields["encrypted_response"]); enc != "" {
		res.IsEncrypted = true
		res.EncryptedPayload = enc
		if res.OrderID == "" {
			res.OrderID = model.PlaceholderOrderID
		}
		return res
	}

	order := nestedOrder(fields["order"])
	if res.OrderID == "" {
		res.OrderID = resolve([]map[string]any{order}, "order_id", "nimbbl_order_id")
	}
	if res.OrderID == "" {
		res.OrderID = model.PlaceholderOrderID
	}

	// Top-level values win; the nested order object is fallback only.
	srcs := []map[string]any{fields, order}

	res.Status = model.ClassifyStatus(resolve(srcs, "status"))
	res.TransactionID = resolve(srcs, "transaction_id", "nimbbl_transaction_id")
	res.Message = resolve(srcs, "message")
	res.Amount = resolve(srcs, "amount", "total_amount")
	res.Currency = resolve(srcs, "currency")
	res.InvoiceID = resolve(srcs, "invoice_id")
	res.OrderDate = resolve(srcs, "order_date")
	res.Reason = resolve(srcs, "reason")
	res.CancellationReason = resolve(srcs, "cancellation_reason")
	res.Attempts = resolve(srcs, "attempts")
	res.ReferrerPlatform = resolve(srcs, "referrer_platform")
	res.ReferrerPlatformVersion = resolve(srcs, "referrer_platform_version")

	device := subObject(order, "device")
	res.DeviceName = fallback(resolve(srcs, "device_name"), cleanValue(device["name"]))
	res.DeviceOSName = fallback(resolve(srcs, "device_os_name"), cleanValue(device["os_name"]))
	res.DeviceIPAddress = fallback(resolve(srcs, "device_ip_address"), cleanValue(device["ip_address"]))

	shipping := subObject(order, "shipping_address")
	res.ShippingCity = fallback(resolve(srcs, "shipping_city"), cleanValue(shipping["city"]))
	res.ShippingState = fallback(resolve(srcs, "shipping_state"), cleanValue(shipping["state"]))
	res.ShippingCountry = fallback(resolve(srcs, "shipping_country"), cleanValue(shipping["country"]))
	res.ShippingPincode = fallback(resolve(srcs, "shipping_pincode"), cleanValue(shipping["pincode"]))

	return res
}

// resolve returns the first present, cleaned value scanning sources in
// precedence order, trying each alternate key name per source.
func resolve(sources []map[string]any, keys ...string) string {
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, k := range keys {
			if v := cleanValue(src[k]); v != "" {
				return v
			}
		}
	}
	return ""
}

func fallback(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}

// cleanValue coerces a loosely typed payload value to a display string.
// nil, empty strings and the literal string "null" all count as absent:
// upstream payloads are observed to serialize nulls as the string "null".
func cleanValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "undefined") {
			return ""
		}
		return s
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		// Objects and arrays are not scalar fields.
		return ""
	}
}

// decodeObject parses b as a JSON object, keeping numbers as json.Number so
// they stringify without float artifacts.
func decodeObject(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// nestedOrder resolves the nested order object whether it arrived as an
// object or as a JSON string. Parse failures leave it absent.
func nestedOrder(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		m, err := decodeObject([]byte(t))
		if err != nil {
			return nil
		}
		return m
	default:
		return nil
	}
}

func subObject(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

// looseKeys is the fixed field-name set the loose-string scanner recognizes.
var looseKeys = []string{
	"order_id", "nimbbl_order_id", "transaction_id", "nimbbl_transaction_id",
	"status", "message", "reason", "cancellation_reason", "attempts",
	"invoice_id", "order_date", "amount", "total_amount", "currency",
	"is_callback", "encrypted_response",
	"referrer_platform", "referrer_platform_version",
	"device_name", "device_os_name", "device_ip_address",
	"shipping_city", "shipping_state", "shipping_country", "shipping_pincode",
}

var loosePatterns = compileLoosePatterns()

// orderBlockPattern locates an embedded order={...} object in a loose string.
var orderBlockPattern = regexp.MustCompile(`\border\s*[=:]\s*(\{[^{}]*\})`)

func compileLoosePatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(looseKeys))
	for _, key := range looseKeys {
		// key=value up to the next comma or closing brace; quotes optional.
		patterns[key] = regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\s*[=:]\s*"?([^,}"\r\n]*)"?`)
	}
	return patterns
}

// scanLoose extracts the fixed field set from a semi-structured string.
// Any field it cannot find is simply left absent; it never fails.
func scanLoose(s string) map[string]any {
	fields := make(map[string]any)

	if m := orderBlockPattern.FindStringSubmatch(s); m != nil {
		if obj, err := decodeObject([]byte(m[1])); err == nil {
			fields["order"] = obj
		} else if inner := scanFields(m[1]); len(inner) > 0 {
			fields["order"] = inner
		}
		// Keep fields inside the order block from masquerading as top-level.
		s = orderBlockPattern.ReplaceAllString(s, "")
	}

	for k, v := range scanFields(s) {
		fields[k] = v
	}
	return fields
}

func scanFields(s string) map[string]any {
	fields := make(map[string]any)
	for _, key := range looseKeys {
		m := loosePatterns[key].FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(m[1]); v != "" {
			fields[key] = v
		}
	}
	return fields
}
