package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

func TestPaymentMode(t *testing.T) {
	tests := []struct {
		name        string
		paymentType string
		expected    string
	}{
		{"all payment modes has no code", "all payments modes", ""},
		{"netbanking", "netbanking", "Netbanking"},
		{"wallet", "wallet", "Wallet"},
		{"card", "card", "card"},
		{"upi", "upi", "UPI"},
		{"case insensitive", "UPI", "UPI"},
		{"surrounding whitespace", "  netbanking ", "Netbanking"},
		{"unrecognized yields empty", "bogus", ""},
		{"empty yields empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PaymentMode(tt.paymentType))
		})
	}
}

func TestBankCode(t *testing.T) {
	tests := []struct {
		name     string
		sub      string
		expected string
	}{
		{"all banks has no code", "all banks", ""},
		{"hdfc", "hdfc bank", "hdfc"},
		{"sbi", "sbi bank", "sbi"},
		{"kotak", "kotak bank", "kotak"},
		{"case insensitive", "HDFC Bank", "hdfc"},
		{"unrecognized yields empty", "bogus bank", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BankCode(tt.sub))
		})
	}
}

func TestWalletCode(t *testing.T) {
	tests := []struct {
		name     string
		sub      string
		expected string
	}{
		{"all wallets has no code", "all wallets", ""},
		{"freecharge", "freecharge", "freecharge"},
		{"jio money", "jio money", "jio_money"},
		{"phonepe", "phonepe", "phonepe"},
		{"unrecognized yields empty", "bogus wallet", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WalletCode(tt.sub))
		})
	}
}

func TestPaymentFlow(t *testing.T) {
	t.Run("collect with UPI mode", func(t *testing.T) {
		flow, ok := PaymentFlow("collect", UPIModeCode)
		assert.True(t, ok)
		assert.Equal(t, "collect", flow)
	})

	t.Run("intent with UPI mode", func(t *testing.T) {
		flow, ok := PaymentFlow("intent", UPIModeCode)
		assert.True(t, ok)
		assert.Equal(t, "intent", flow)
	})

	t.Run("collect plus intent means no restriction", func(t *testing.T) {
		flow, ok := PaymentFlow("collect + intent", UPIModeCode)
		assert.True(t, ok)
		assert.Equal(t, "", flow)
	})

	t.Run("absent for card mode", func(t *testing.T) {
		_, ok := PaymentFlow("collect", "card")
		assert.False(t, ok)
	})

	t.Run("absent for empty mode", func(t *testing.T) {
		_, ok := PaymentFlow("collect", "")
		assert.False(t, ok)
	})
}

func TestProductID(t *testing.T) {
	tests := []struct {
		name        string
		headerStyle string
		expected    string
	}{
		{"brand name and logo", HeaderBrandNameAndLogo, "10001"},
		{"brand logo", HeaderBrandLogo, "10002"},
		{"brand name", HeaderBrandName, "10003"},
		{"unrecognized defaults to brand name and logo", "something else", DefaultProductID},
		{"empty defaults to brand name and logo", "", DefaultProductID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProductID(tt.headerStyle))
		})
	}
}

func TestBuildRequestCodes_UPISelection(t *testing.T) {
	codes := BuildRequestCodes(model.OrderSelection{
		HeaderStyle:    HeaderBrandLogo,
		PaymentType:    "upi",
		SubPaymentType: "intent",
	})

	assert.Equal(t, "10002", codes.ProductID)
	assert.Equal(t, "UPI", codes.PaymentModeCode)
	assert.Equal(t, "intent", codes.PaymentFlow)
	assert.Equal(t, "", codes.BankCode)
	assert.Equal(t, "", codes.WalletCode)
}

func TestBuildRequestCodes_NetbankingSelection(t *testing.T) {
	codes := BuildRequestCodes(model.OrderSelection{
		HeaderStyle:    HeaderBrandNameAndLogo,
		PaymentType:    "netbanking",
		SubPaymentType: "hdfc bank",
	})

	assert.Equal(t, "Netbanking", codes.PaymentModeCode)
	assert.Equal(t, "hdfc", codes.BankCode)
	assert.Equal(t, "", codes.PaymentFlow, "flow must never accompany a non-UPI mode")
}

func TestBuildRequestCodes_FlowOnlyForUPI(t *testing.T) {
	// Even a flow-shaped sub payment type must not produce a flow when the
	// payment mode is not UPI.
	for _, paymentType := range []string{"all payments modes", "netbanking", "wallet", "card"} {
		t.Run(paymentType, func(t *testing.T) {
			codes := BuildRequestCodes(model.OrderSelection{
				PaymentType:    paymentType,
				SubPaymentType: "collect",
			})
			assert.Empty(t, codes.PaymentFlow)
		})
	}
}
