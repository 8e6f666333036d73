package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nimbbl-tech/checkout-sandbox/internal/mapper"
	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
	"github.com/nimbbl-tech/checkout-sandbox/internal/sdk"
	"github.com/nimbbl-tech/checkout-sandbox/internal/settings"
)

// mergeSettings overlays non-empty update fields onto the current settings.
func mergeSettings(current, update settings.Settings) settings.Settings {
	if update.Environment != "" {
		current.Environment = update.Environment
	}
	if update.QAURL != "" {
		current.QAURL = update.QAURL
	}
	if update.PreProdURL != "" {
		current.PreProdURL = update.PreProdURL
	}
	if update.ProdURL != "" {
		current.ProdURL = update.ProdURL
	}
	if update.Experience != "" {
		current.Experience = update.Experience
	}
	return current
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func parseOutcome(s string) (sdk.Outcome, bool) {
	switch sdk.Outcome(s) {
	case sdk.OutcomeSuccess, sdk.OutcomeFailed, sdk.OutcomeCancelled, sdk.OutcomeEncrypted:
		return sdk.Outcome(s), true
	case "":
		return "", true
	default:
		return "", false
	}
}

func parseShape(s string) (sdk.Shape, bool) {
	switch sdk.Shape(s) {
	case sdk.ShapeObject, sdk.ShapeWrapped, sdk.ShapeLoose:
		return sdk.Shape(s), true
	case "":
		return "", true
	default:
		return "", false
	}
}

// defaultSelection is the order the batch simulator submits: all payment
// modes, default header, no buyer details.
func defaultSelection(currency string) model.OrderSelection {
	return model.OrderSelection{
		Amount:           "100.00",
		Currency:         currency,
		IncludeLineItems: true,
		HeaderStyle:      mapper.HeaderBrandNameAndLogo,
		PaymentType:      "all payments modes",
		SubPaymentType:   "all banks",
	}
}

func summarizeBatch(results []model.PaymentResult) map[string]interface{} {
	success := 0
	failed := 0
	cancelled := 0
	encrypted := 0

	for _, r := range results {
		switch {
		case r.IsEncrypted:
			encrypted++
		case r.Status == model.StatusSuccess:
			success++
		case r.Status == model.StatusCancelled:
			cancelled++
		default:
			failed++
		}
	}

	summary := map[string]interface{}{
		"total":     len(results),
		"success":   success,
		"failed":    failed,
		"cancelled": cancelled,
		"encrypted": encrypted,
	}
	if len(results) > 0 {
		summary["success_rate"] = float64(success) / float64(len(results))
	}
	return summary
}
