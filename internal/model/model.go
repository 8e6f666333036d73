package model

import "strings"

// PlaceholderOrderID is rendered when no upstream payload carried an order id.
const PlaceholderOrderID = "N/A"

// OrderSelection represents the mock order configured on the form. It lives
// only while the form is open and is never persisted.
type OrderSelection struct {
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
	IncludeLineItems    bool   `json:"include_line_items"`
	HeaderStyle         string `json:"header_style"`
	PaymentType         string `json:"payment_type"`
	SubPaymentType      string `json:"sub_payment_type"`
	CollectBuyerDetails bool   `json:"collect_buyer_details"`
	BuyerName           string `json:"buyer_name,omitempty"`
	BuyerPhone          string `json:"buyer_phone,omitempty"`
	BuyerEmail          string `json:"buyer_email,omitempty"`
}

// Currencies is the fixed currency set offered by the form.
var Currencies = []string{"INR", "USD", "CAD", "EUR"}

// RequestCodes are the SDK request codes derived from an OrderSelection at
// submission time. They are stateless and never persisted.
//
// PaymentFlow is populated only when PaymentModeCode is the UPI code.
type RequestCodes struct {
	ProductID       string `json:"product_id"`
	PaymentModeCode string `json:"payment_mode_code"`
	BankCode        string `json:"bank_code"`
	WalletCode      string `json:"wallet_code"`
	PaymentFlow     string `json:"payment_flow"`
}

// PaymentStatus is the closed classification of a checkout outcome.
type PaymentStatus string

const (
	StatusSuccess   PaymentStatus = "success"
	StatusFailed    PaymentStatus = "failed"
	StatusCancelled PaymentStatus = "cancelled"
)

// ClassifyStatus maps a raw upstream status string onto the closed status set.
// "success" and "completed" both classify as success, anything carrying a
// cancellation indicator as cancelled, and everything else (including an
// absent status) as failed. Never a silent success.
func ClassifyStatus(raw string) PaymentStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "success" || s == "completed":
		return StatusSuccess
	case strings.Contains(s, "cancel"):
		return StatusCancelled
	default:
		return StatusFailed
	}
}

// PaymentResult is the canonical record produced once per checkout attempt.
// It is immutable after creation and discarded when the user navigates back.
type PaymentResult struct {
	OrderID       string        `json:"order_id"`
	Status        PaymentStatus `json:"status,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Message       string        `json:"message,omitempty"`
	Amount        string        `json:"amount,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	InvoiceID     string        `json:"invoice_id,omitempty"`
	OrderDate     string        `json:"order_date,omitempty"`

	Reason                  string `json:"reason,omitempty"`
	CancellationReason      string `json:"cancellation_reason,omitempty"`
	Attempts                string `json:"attempts,omitempty"`
	ReferrerPlatform        string `json:"referrer_platform,omitempty"`
	ReferrerPlatformVersion string `json:"referrer_platform_version,omitempty"`
	DeviceName              string `json:"device_name,omitempty"`
	DeviceOSName            string `json:"device_os_name,omitempty"`
	DeviceIPAddress         string `json:"device_ip_address,omitempty"`
	ShippingCity            string `json:"shipping_city,omitempty"`
	ShippingState           string `json:"shipping_state,omitempty"`
	ShippingCountry         string `json:"shipping_country,omitempty"`
	ShippingPincode         string `json:"shipping_pincode,omitempty"`

	// IsEncrypted suppresses every informational field above from display;
	// only OrderID and EncryptedPayload are meaningful when set.
	IsEncrypted      bool   `json:"is_encrypted,omitempty"`
	EncryptedPayload string `json:"encrypted_payload,omitempty"`
}

// BuyerUser is the optional user object sent with order creation.
type BuyerUser struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	MobileNumber string `json:"mobile_number"`
}
