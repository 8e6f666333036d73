package sdk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Outcome is a checkout outcome the mock gateway can produce.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeEncrypted Outcome = "encrypted"
)

// Shape is the wire shape the mock gateway wraps a payload in.
type Shape string

const (
	// ShapeObject delivers a plain JSON object.
	ShapeObject Shape = "object"
	// ShapeWrapped delivers the payload stringified inside a "data" field.
	ShapeWrapped Shape = "wrapped"
	// ShapeLoose delivers a semi-structured key=value string.
	ShapeLoose Shape = "loose"
)

// OutcomeDistribution defines the probability of each checkout outcome.
// Rates are cumulative; any remainder rolls to success.
type OutcomeDistribution struct {
	SuccessRate   float64
	FailureRate   float64
	CancelRate    float64
	EncryptedRate float64
}

// ShapeDistribution defines the probability of each payload shape.
// Any remainder rolls to a plain object.
type ShapeDistribution struct {
	ObjectRate  float64
	WrappedRate float64
	LooseRate   float64
}

// MockConfig holds configuration for creating a mock gateway.
type MockConfig struct {
	GatewayName string
	Outcomes    OutcomeDistribution
	Shapes      ShapeDistribution
	MinLatency  time.Duration
	MaxLatency  time.Duration
}

// MockGateway simulates the external checkout SDK. It produces payloads in
// every shape the SDK has been observed to deliver, so the normalizer gets
// exercised end to end without network or webview involvement.
type MockGateway struct {
	config MockConfig

	mu            sync.Mutex
	rng           *rand.Rand
	orders        map[string]OrderRequest
	forcedOutcome Outcome
	forcedShape   Shape
}

// NewMockGateway creates a mock gateway from the given config.
func NewMockGateway(cfg MockConfig) *MockGateway {
	return &MockGateway{
		config: cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		orders: make(map[string]OrderRequest),
	}
}

func (g *MockGateway) Name() string {
	return g.config.GatewayName
}

// WithLatency overrides the simulated latency bounds.
func (g *MockGateway) WithLatency(min, max time.Duration) *MockGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config.MinLatency = min
	g.config.MaxLatency = max
	return g
}

// Force pins the next outcomes and shapes for simulation. Empty values clear
// the corresponding override.
func (g *MockGateway) Force(outcome Outcome, shape Shape) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.forcedOutcome = outcome
	g.forcedShape = shape
}

// CreateOrder registers the order and hands back an id and checkout token.
func (g *MockGateway) CreateOrder(ctx context.Context, req OrderRequest) (Order, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return Order{}, err
	}

	order := Order{
		OrderID: "o_" + compactID(12),
		Token:   "tok_" + compactID(24),
	}

	g.mu.Lock()
	g.orders[order.Token] = req
	g.mu.Unlock()

	return order, nil
}

// Checkout resolves the order token and emits a raw completion payload.
func (g *MockGateway) Checkout(ctx context.Context, req CheckoutRequest) (json.RawMessage, error) {
	if err := g.simulateLatency(ctx); err != nil {
		return nil, err
	}

	g.mu.Lock()
	order, ok := g.orders[req.OrderToken]
	if !ok {
		g.mu.Unlock()
		return nil, fmt.Errorf("unknown order token %q", req.OrderToken)
	}
	outcome := g.forcedOutcome
	if outcome == "" {
		outcome = g.rollOutcome()
	}
	shape := g.forcedShape
	if shape == "" {
		shape = g.rollShape()
	}
	orderID := "o_" + compactID(12)
	g.mu.Unlock()

	fields := buildPayload(orderID, order, outcome)
	return encodePayload(fields, shape, outcome)
}

// rollOutcome must be called with the mutex held.
func (g *MockGateway) rollOutcome() Outcome {
	roll := g.rng.Float64()
	dist := g.config.Outcomes

	if roll < dist.FailureRate {
		return OutcomeFailed
	}
	roll -= dist.FailureRate
	if roll < dist.CancelRate {
		return OutcomeCancelled
	}
	roll -= dist.CancelRate
	if roll < dist.EncryptedRate {
		return OutcomeEncrypted
	}
	return OutcomeSuccess
}

// rollShape must be called with the mutex held.
func (g *MockGateway) rollShape() Shape {
	roll := g.rng.Float64()
	dist := g.config.Shapes

	if roll < dist.WrappedRate {
		return ShapeWrapped
	}
	roll -= dist.WrappedRate
	if roll < dist.LooseRate {
		return ShapeLoose
	}
	return ShapeObject
}

func (g *MockGateway) simulateLatency(ctx context.Context) error {
	g.mu.Lock()
	min := g.config.MinLatency
	max := g.config.MaxLatency
	var jitter time.Duration
	if max > min {
		jitter = time.Duration(g.rng.Int63n(int64(max - min)))
	}
	g.mu.Unlock()

	select {
	case <-time.After(min + jitter):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildPayload(orderID string, order OrderRequest, outcome Outcome) map[string]any {
	if outcome == OutcomeEncrypted {
		blob := base64.StdEncoding.EncodeToString([]byte(compactID(32)))
		return map[string]any{
			"order_id":           orderID,
			"encrypted_response": blob,
		}
	}

	fields := map[string]any{
		"nimbbl_order_id":       orderID,
		"nimbbl_transaction_id": "t_" + compactID(12),
		"is_callback":           "true",
		"order": map[string]any{
			"order_id":     orderID,
			"invoice_id":   "inv_" + compactID(8),
			"total_amount": order.Amount,
			"currency":     order.Currency,
			"order_date":   time.Now().Format("2006-01-02 15:04:05"),
			"attempts":     1,
			"device": map[string]any{
				"name":       "Pixel 7",
				"os_name":    "Android 14",
				"ip_address": "10.20.30.40",
			},
			"shipping_address": map[string]any{
				"city":    "Mumbai",
				"state":   "Maharashtra",
				"country": "India",
				"pincode": "400001",
			},
			"referrer_platform":         "android-sdk",
			"referrer_platform_version": "3.2.1",
		},
	}

	switch outcome {
	case OutcomeCancelled:
		fields["status"] = "user_cancelled"
		fields["message"] = "payment cancelled before completion"
		fields["cancellation_reason"] = "back pressed on checkout"
	case OutcomeFailed:
		fields["status"] = "failed"
		fields["message"] = "payment could not be completed"
		fields["reason"] = "issuer declined the transaction"
	default:
		fields["status"] = "success"
		fields["message"] = "payment completed"
	}
	return fields
}

func encodePayload(fields map[string]any, shape Shape, outcome Outcome) (json.RawMessage, error) {
	// Encrypted payloads always travel as a plain object.
	if outcome == OutcomeEncrypted {
		shape = ShapeObject
	}

	switch shape {
	case ShapeWrapped:
		inner, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]any{"data": string(inner)})
	case ShapeLoose:
		return json.RawMessage(looseEncode(fields)), nil
	default:
		return json.Marshal(fields)
	}
}

// looseEncode renders the payload the way the native bridge stringifies it:
// key=value pairs with an embedded order={...} block.
func looseEncode(fields map[string]any) string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	write := func(key string, value any) {
		if value == nil {
			return
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s=%v", key, value)
	}

	for _, key := range []string{
		"nimbbl_order_id", "nimbbl_transaction_id", "status", "message",
		"reason", "cancellation_reason", "is_callback",
	} {
		if v, ok := fields[key]; ok {
			write(key, v)
		}
	}
	// The bridge stringifies only the order's scalar fields; nested device
	// and shipping objects do not survive this shape.
	if order, ok := fields["order"].(map[string]any); ok {
		flat := make(map[string]any, len(order))
		for k, v := range order {
			if _, nested := v.(map[string]any); !nested {
				flat[k] = v
			}
		}
		if encoded, err := json.Marshal(flat); err == nil {
			write("order", string(encoded))
		}
	}
	b.WriteString("}")
	return b.String()
}

func compactID(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n < len(id) {
		return id[:n]
	}
	return id
}
