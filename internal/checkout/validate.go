package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

// Validation messages surfaced verbatim to the user as blocking errors.
const (
	msgInvalidAmount = "Please enter a valid amount greater than 0."
	msgMissingName   = "Please enter your name."
	msgMissingPhone  = "Please enter your mobile number."
	msgMissingEmail  = "Please enter your email address."
)

// ValidationError blocks submission before any SDK call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateSelection checks the selection the way the order form does: the
// amount must parse to a positive number, and when buyer details collection
// is enabled the name, mobile number and email must all be present.
func ValidateSelection(sel model.OrderSelection) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(sel.Amount))
	if err != nil || !amount.IsPositive() {
		return &ValidationError{Message: msgInvalidAmount}
	}

	if sel.CollectBuyerDetails {
		if strings.TrimSpace(sel.BuyerName) == "" {
			return &ValidationError{Message: msgMissingName}
		}
		if strings.TrimSpace(sel.BuyerPhone) == "" {
			return &ValidationError{Message: msgMissingPhone}
		}
		if strings.TrimSpace(sel.BuyerEmail) == "" {
			return &ValidationError{Message: msgMissingEmail}
		}
	}
	return nil
}
