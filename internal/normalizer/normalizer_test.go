package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

func TestNormalize_PlainObject(t *testing.T) {
	result := Normalize([]byte(`{"status":"SUCCESS","order_id":"O1"}`))

	assert.Equal(t, "O1", result.OrderID)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.False(t, result.IsEncrypted)
}

func TestNormalize_StatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected model.PaymentStatus
	}{
		{"success", `{"order_id":"O1","status":"success"}`, model.StatusSuccess},
		{"completed counts as success", `{"order_id":"O1","status":"completed"}`, model.StatusSuccess},
		{"upper case success", `{"order_id":"O1","status":"SUCCESS"}`, model.StatusSuccess},
		{"cancelled", `{"order_id":"O2","status":"cancelled"}`, model.StatusCancelled},
		{"user_cancelled", `{"order_id":"O2","status":"user_cancelled"}`, model.StatusCancelled},
		{"failed", `{"order_id":"O3","status":"failed"}`, model.StatusFailed},
		{"unknown value fails closed", `{"order_id":"O3","status":"pending_review"}`, model.StatusFailed},
		{"absent status fails closed", `{"order_id":"O3"}`, model.StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize([]byte(tt.payload)).Status)
		})
	}
}

func TestNormalize_WrappedDataField(t *testing.T) {
	result := Normalize([]byte(`{"data":"{\"order_id\":\"O3\",\"status\":\"completed\"}"}`))

	assert.Equal(t, "O3", result.OrderID)
	assert.Equal(t, model.StatusSuccess, result.Status)
}

func TestNormalize_WrappedDataFieldNotJSON(t *testing.T) {
	// The stringified sub-field does not parse as JSON, so the loose scanner
	// takes over.
	result := Normalize([]byte(`{"data":"order_id=O4, status=failed, reason=insufficient balance"}`))

	assert.Equal(t, "O4", result.OrderID)
	assert.Equal(t, model.StatusFailed, result.Status)
	assert.Equal(t, "insufficient balance", result.Reason)
}

func TestNormalize_LooseString(t *testing.T) {
	raw := `{nimbbl_order_id=o_77, nimbbl_transaction_id=t_12, status=failed, reason=bank declined, order={"invoice_id":"inv_9","total_amount":"49.50","currency":"INR"}}`

	result := Normalize([]byte(raw))

	assert.Equal(t, "o_77", result.OrderID)
	assert.Equal(t, "t_12", result.TransactionID)
	assert.Equal(t, model.StatusFailed, result.Status)
	assert.Equal(t, "bank declined", result.Reason)
	assert.Equal(t, "inv_9", result.InvoiceID)
	assert.Equal(t, "49.50", result.Amount)
	assert.Equal(t, "INR", result.Currency)
}

func TestNormalize_LooseStringMissingFieldsLeftAbsent(t *testing.T) {
	result := Normalize([]byte(`status=cancelled`))

	assert.Equal(t, model.PlaceholderOrderID, result.OrderID)
	assert.Equal(t, model.StatusCancelled, result.Status)
	assert.Empty(t, result.Reason)
	assert.Empty(t, result.Amount)
}

func TestNormalize_Garbage(t *testing.T) {
	for _, raw := range []string{"", "\x00\x01\x02", "]]][[[", "null", "42"} {
		t.Run("raw "+raw, func(t *testing.T) {
			result := Normalize([]byte(raw))
			assert.Equal(t, model.PlaceholderOrderID, result.OrderID)
			assert.Equal(t, model.StatusFailed, result.Status)
		})
	}
}

func TestNormalize_EmptyPayload(t *testing.T) {
	result := Normalize([]byte(`{}`))

	assert.Equal(t, model.PlaceholderOrderID, result.OrderID)
	assert.Equal(t, model.StatusFailed, result.Status)
	assert.False(t, result.IsEncrypted)
}

func TestNormalize_Encrypted(t *testing.T) {
	result := Normalize([]byte(`{"order_id":"O9","encrypted_response":"abc123","status":"success","amount":"10","message":"hi"}`))

	assert.True(t, result.IsEncrypted)
	assert.Equal(t, "abc123", result.EncryptedPayload)
	assert.Equal(t, "O9", result.OrderID)
	assert.Empty(t, result.Status, "closed classification does not apply to encrypted results")
	assert.Empty(t, result.Amount)
	assert.Empty(t, result.Message)
}

func TestNormalize_EncryptedWithoutOrderID(t *testing.T) {
	result := Normalize([]byte(`{"encrypted_response":"abc123"}`))

	assert.True(t, result.IsEncrypted)
	assert.Equal(t, model.PlaceholderOrderID, result.OrderID)
}

func TestNormalize_EmptyEncryptedResponseIsNotEncrypted(t *testing.T) {
	result := Normalize([]byte(`{"order_id":"O1","status":"success","encrypted_response":""}`))

	assert.False(t, result.IsEncrypted)
	assert.Equal(t, model.StatusSuccess, result.Status)
}

func TestNormalize_OrderIDAlternates(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"order_id preferred", `{"order_id":"O1","nimbbl_order_id":"N1"}`, "O1"},
		{"vendor alias fallback", `{"nimbbl_order_id":"N1"}`, "N1"},
		{"nested order fallback", `{"order":{"order_id":"O2"}}`, "O2"},
		{"placeholder when absent", `{"status":"success"}`, model.PlaceholderOrderID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize([]byte(tt.payload)).OrderID)
		})
	}
}

func TestNormalize_TransactionIDAlternates(t *testing.T) {
	assert.Equal(t, "T1", Normalize([]byte(`{"transaction_id":"T1","nimbbl_transaction_id":"N1"}`)).TransactionID)
	assert.Equal(t, "N1", Normalize([]byte(`{"nimbbl_transaction_id":"N1"}`)).TransactionID)
}

func TestNormalize_TopLevelWinsOverNestedOrder(t *testing.T) {
	raw := `{
		"order_id":"O1",
		"status":"success",
		"amount":"100.00",
		"order":{"total_amount":"999.00","currency":"USD","invoice_id":"inv_1"}
	}`

	result := Normalize([]byte(raw))

	assert.Equal(t, "100.00", result.Amount, "top-level amount wins")
	assert.Equal(t, "USD", result.Currency, "nested value used only as fallback")
	assert.Equal(t, "inv_1", result.InvoiceID)
}

func TestNormalize_NestedOrderAsJSONString(t *testing.T) {
	raw := `{"order_id":"O1","status":"success","order":"{\"invoice_id\":\"inv_5\",\"currency\":\"INR\"}"}`

	result := Normalize([]byte(raw))

	assert.Equal(t, "inv_5", result.InvoiceID)
	assert.Equal(t, "INR", result.Currency)
}

func TestNormalize_NestedOrderUnparseableIsAbsent(t *testing.T) {
	raw := `{"order_id":"O1","status":"success","order":"{not json"}`

	result := Normalize([]byte(raw))

	assert.Equal(t, "O1", result.OrderID)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Empty(t, result.InvoiceID)
}

func TestNormalize_DeviceAndShippingSubObjects(t *testing.T) {
	raw := `{
		"order_id":"O1",
		"status":"success",
		"order":{
			"device":{"name":"Pixel 7","os_name":"Android 14","ip_address":"10.0.0.1"},
			"shipping_address":{"city":"Pune","state":"Maharashtra","country":"India","pincode":"411001"},
			"referrer_platform":"android-sdk",
			"referrer_platform_version":"3.2.1",
			"attempts":2
		}
	}`

	result := Normalize([]byte(raw))

	assert.Equal(t, "Pixel 7", result.DeviceName)
	assert.Equal(t, "Android 14", result.DeviceOSName)
	assert.Equal(t, "10.0.0.1", result.DeviceIPAddress)
	assert.Equal(t, "Pune", result.ShippingCity)
	assert.Equal(t, "Maharashtra", result.ShippingState)
	assert.Equal(t, "India", result.ShippingCountry)
	assert.Equal(t, "411001", result.ShippingPincode)
	assert.Equal(t, "android-sdk", result.ReferrerPlatform)
	assert.Equal(t, "3.2.1", result.ReferrerPlatformVersion)
	assert.Equal(t, "2", result.Attempts)
}

func TestNormalize_TopLevelDeviceFieldsWin(t *testing.T) {
	raw := `{
		"order_id":"O1",
		"device_name":"iPhone 15",
		"order":{"device":{"name":"Pixel 7"}}
	}`

	assert.Equal(t, "iPhone 15", Normalize([]byte(raw)).DeviceName)
}

func TestNormalize_NumbersRenderCleanly(t *testing.T) {
	result := Normalize([]byte(`{"order_id":"O1","amount":150.5,"attempts":3}`))

	assert.Equal(t, "150.5", result.Amount)
	assert.Equal(t, "3", result.Attempts)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := `{
		"order_id":"o_1",
		"status":"success",
		"transaction_id":"t_1",
		"message":"payment completed",
		"amount":"150.00",
		"currency":"INR",
		"invoice_id":"inv_1",
		"order_date":"2025-01-01 10:00:00",
		"attempts":"2",
		"device_name":"Pixel 7",
		"device_os_name":"Android 14",
		"shipping_city":"Mumbai"
	}`

	first := Normalize([]byte(raw))

	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	second := Normalize(encoded)

	assert.Equal(t, first, second)
}

func TestClassify_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected Kind
	}{
		{"plain object", `{"order_id":"O1"}`, KindObject},
		{"wrapped data", `{"data":"{\"order_id\":\"O1\"}"}`, KindWrapped},
		{"wrapped but not json", `{"data":"order_id=O1"}`, KindLoose},
		{"loose string", `order_id=O1, status=failed`, KindLoose},
		{"encrypted", `{"encrypted_response":"abc"}`, KindEncrypted},
		{"encrypted inside wrapped data", `{"data":"{\"encrypted_response\":\"abc\"}"}`, KindEncrypted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _ := Classify([]byte(tt.payload))
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil is absent", nil, ""},
		{"empty string is absent", "", ""},
		{"whitespace is absent", "   ", ""},
		{"literal null is absent", "null", ""},
		{"literal NULL is absent", "NULL", ""},
		{"literal undefined is absent", "undefined", ""},
		{"plain string kept", " INR ", "INR"},
		{"json number kept", json.Number("42.5"), "42.5"},
		{"bool rendered", true, "true"},
		{"object is not scalar", map[string]any{"a": 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanValue(tt.value))
		})
	}
}

func TestNormalize_NullStringsTreatedAsAbsent(t *testing.T) {
	raw := `{
		"order_id":"O1",
		"status":"success",
		"message":"null",
		"currency":"",
		"order":{"currency":"INR","message":"from order"}
	}`

	result := Normalize([]byte(raw))

	assert.Equal(t, "INR", result.Currency, "empty top-level falls through to order")
	assert.Equal(t, "from order", result.Message, `string "null" falls through to order`)
}
