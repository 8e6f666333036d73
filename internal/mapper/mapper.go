package mapper

import (
	"strings"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

// UPIModeCode is the payment mode code for which a payment flow may be sent.
const UPIModeCode = "UPI"

// Header style vocabulary offered by the order form.
const (
	HeaderBrandNameAndLogo = "your brand name and brand logo"
	HeaderBrandLogo        = "your brand logo"
	HeaderBrandName        = "your brand name"
)

// DefaultProductID is used when the header style is unrecognized.
const DefaultProductID = "10001"

var paymentModes = map[string]string{
	"all payments modes": "",
	"netbanking":         "Netbanking",
	"wallet":             "Wallet",
	"card":               "card",
	"upi":                UPIModeCode,
}

var bankCodes = map[string]string{
	"all banks":  "",
	"hdfc bank":  "hdfc",
	"sbi bank":   "sbi",
	"kotak bank": "kotak",
}

var walletCodes = map[string]string{
	"all wallets": "",
	"freecharge":  "freecharge",
	"jio money":   "jio_money",
	"phonepe":     "phonepe",
}

var paymentFlows = map[string]string{
	"collect + intent": "",
	"collect":          "collect",
	"intent":           "intent",
}

var productIDs = map[string]string{
	HeaderBrandNameAndLogo: DefaultProductID,
	HeaderBrandLogo:        "10002",
	HeaderBrandName:        "10003",
}

func lookup(table map[string]string, key string) string {
	return table[strings.ToLower(strings.TrimSpace(key))]
}

// PaymentMode translates a form payment type into the SDK payment mode code.
// Unknown values, and "all payments modes", map to the empty string.
func PaymentMode(paymentType string) string {
	return lookup(paymentModes, paymentType)
}

// BankCode translates a netbanking sub payment type into the SDK bank code.
func BankCode(subPaymentType string) string {
	return lookup(bankCodes, subPaymentType)
}

// WalletCode translates a wallet sub payment type into the SDK wallet code.
func WalletCode(subPaymentType string) string {
	return lookup(walletCodes, subPaymentType)
}

// PaymentFlow translates a UPI sub payment type into the SDK flow code.
// A flow is only ever sent alongside the UPI payment mode; for any other mode
// code the second return value is false and no flow parameter may be sent.
func PaymentFlow(subPaymentType, paymentModeCode string) (string, bool) {
	if paymentModeCode != UPIModeCode {
		return "", false
	}
	return lookup(paymentFlows, subPaymentType), true
}

// ProductID translates a header style into the demo catalog product id,
// defaulting to the brand-name-and-logo product.
func ProductID(headerStyle string) string {
	if id, ok := productIDs[strings.ToLower(strings.TrimSpace(headerStyle))]; ok {
		return id
	}
	return DefaultProductID
}

// BuildRequestCodes derives the full set of SDK request codes for a selection.
func BuildRequestCodes(sel model.OrderSelection) model.RequestCodes {
	codes := model.RequestCodes{
		ProductID:       ProductID(sel.HeaderStyle),
		PaymentModeCode: PaymentMode(sel.PaymentType),
		BankCode:        BankCode(sel.SubPaymentType),
		WalletCode:      WalletCode(sel.SubPaymentType),
	}
	if flow, ok := PaymentFlow(sel.SubPaymentType, codes.PaymentModeCode); ok {
		codes.PaymentFlow = flow
	}
	return codes
}
