package sdk

import (
	"context"
	"encoding/json"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

// DefaultCheckoutExperience is the fixed experience tag sent with every order.
const DefaultCheckoutExperience = "redirect"

// OrderRequest is the descriptor sent to the checkout SDK to create an order.
type OrderRequest struct {
	Amount             string           `json:"amount"`
	Currency           string           `json:"currency"`
	ProductID          string           `json:"product_id"`
	OrderLineItems     bool             `json:"order_line_items"`
	CheckoutExperience string           `json:"checkout_experience"`
	PaymentModeCode    string           `json:"payment_mode,omitempty"`
	SubPaymentMode     string           `json:"sub_payment_mode,omitempty"`
	User               *model.BuyerUser `json:"user,omitempty"`
}

// Order is the SDK's answer to order creation. The token authorizes the
// subsequent checkout call.
type Order struct {
	OrderID string `json:"order_id"`
	Token   string `json:"token"`
}

// CheckoutRequest carries the order token plus the payment routing codes for
// the checkout call itself.
type CheckoutRequest struct {
	OrderToken      string `json:"order_token"`
	PaymentModeCode string `json:"payment_mode,omitempty"`
	BankCode        string `json:"bank_code,omitempty"`
	WalletCode      string `json:"wallet_code,omitempty"`
	PaymentFlow     string `json:"payment_flow,omitempty"`
}

// Gateway is the narrow contract to the external checkout SDK. The checkout
// payload is deliberately untyped: its shape varies by originating platform
// and is owned by the normalizer.
type Gateway interface {
	// Name returns the gateway's unique identifier.
	Name() string
	// CreateOrder registers an order and returns its id and checkout token.
	CreateOrder(ctx context.Context, req OrderRequest) (Order, error)
	// Checkout performs the payment attempt and returns the raw payload the
	// SDK would deliver to its completion callback.
	Checkout(ctx context.Context, req CheckoutRequest) (json.RawMessage, error)
}
