package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/nimbbl-tech/checkout-sandbox/internal/checkout"
	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
	"github.com/nimbbl-tech/checkout-sandbox/internal/normalizer"
	"github.com/nimbbl-tech/checkout-sandbox/internal/sdk"
	"github.com/nimbbl-tech/checkout-sandbox/internal/settings"
	"github.com/nimbbl-tech/checkout-sandbox/internal/stats"
)

// Handler holds HTTP handler dependencies.
type Handler struct {
	svc      *checkout.Service
	store    *settings.Store
	recorder *stats.Recorder

	mu       sync.Mutex
	sessions map[string]*checkout.Session
}

// New creates a new Handler.
func New(svc *checkout.Service, store *settings.Store, recorder *stats.Recorder) *Handler {
	return &Handler{
		svc:      svc,
		store:    store,
		recorder: recorder,
		sessions: make(map[string]*checkout.Session),
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /checkout", h.SubmitCheckout)
	mux.HandleFunc("GET /checkout/{orderID}", h.GetResult)
	mux.HandleFunc("GET /settings", h.GetSettings)
	mux.HandleFunc("PUT /settings", h.UpdateSettings)
	mux.HandleFunc("POST /normalize", h.NormalizePayload)
	mux.HandleFunc("POST /simulate/outcome", h.SimulateOutcome)
	mux.HandleFunc("POST /simulate/batch", h.SimulateBatch)
	mux.HandleFunc("GET /stats/outcomes", h.GetOutcomeStats)
}

// checkoutRequest is the request body for POST /checkout. The optional
// session id keys the at-most-one-in-flight submit guard.
type checkoutRequest struct {
	SessionID string `json:"session_id"`
	model.OrderSelection
}

// resultResponse pairs a result with its assembled secondary details.
type resultResponse struct {
	Result           model.PaymentResult `json:"result"`
	SecondaryDetails string              `json:"secondary_details,omitempty"`
}

// SubmitCheckout handles POST /checkout
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var (
		result model.PaymentResult
		err    error
	)
	if req.SessionID != "" {
		result, err = h.session(req.SessionID).Submit(r.Context(), req.OrderSelection)
	} else {
		result, err = h.svc.Submit(r.Context(), req.OrderSelection)
	}

	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, checkout.ErrCheckoutInFlight):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusBadGateway, "An error occurred during payment.")
		}
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{
		Result:           result,
		SecondaryDetails: normalizer.SecondaryDetails(result),
	})
}

// GetResult handles GET /checkout/{orderID}
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderID")
	result, ok := h.svc.Result(orderID)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found: "+orderID)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{
		Result:           result,
		SecondaryDetails: normalizer.SecondaryDetails(result),
	})
}

// GetSettings handles GET /settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Load())
}

// UpdateSettings handles PUT /settings. Empty fields keep their current value.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	current := h.store.Load()
	merged := mergeSettings(current, update)
	if err := h.store.Save(merged); err != nil {
		slog.Error("settings_save_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

// NormalizePayload handles POST /normalize: runs the normalizer over an
// arbitrary body. Normalization never fails, so this always answers 200.
func (h *Handler) NormalizePayload(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return
	}

	result, kind := normalizer.NormalizeWithKind(raw)
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":              kind,
		"result":            result,
		"secondary_details": normalizer.SecondaryDetails(result),
	})
}

// outcomeRequest is the request body for POST /simulate/outcome
type outcomeRequest struct {
	Outcome string `json:"outcome"`
	Shape   string `json:"shape"`
}

// SimulateOutcome handles POST /simulate/outcome
func (h *Handler) SimulateOutcome(w http.ResponseWriter, r *http.Request) {
	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	outcome, ok := parseOutcome(req.Outcome)
	if !ok {
		writeError(w, http.StatusBadRequest, "outcome must be one of: success, failed, cancelled, encrypted")
		return
	}
	shape, ok := parseShape(req.Shape)
	if !ok {
		writeError(w, http.StatusBadRequest, "shape must be one of: object, wrapped, loose")
		return
	}

	mock, ok := h.svc.Gateway().(*sdk.MockGateway)
	if !ok {
		writeError(w, http.StatusNotFound, "gateway does not support simulation")
		return
	}

	mock.Force(outcome, shape)
	slog.Info("gateway_outcome_forced",
		"gateway", mock.Name(),
		"outcome", req.Outcome,
		"shape", req.Shape,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"gateway": mock.Name(),
		"outcome": req.Outcome,
		"shape":   req.Shape,
		"message": "simulation override updated",
	})
}

// batchRequest is the request body for POST /simulate/batch
type batchRequest struct {
	Count    int    `json:"count"`
	Currency string `json:"currency"`
}

// SimulateBatch handles POST /simulate/batch
func (h *Handler) SimulateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Count <= 0 || req.Count > 1000 {
		writeError(w, http.StatusBadRequest, "count must be between 1 and 1000")
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	results := make([]model.PaymentResult, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		result, err := h.svc.Submit(r.Context(), defaultSelection(req.Currency))
		if err != nil {
			slog.Warn("batch_checkout_failed", "error", err)
			continue
		}
		results = append(results, result)
	}

	writeJSON(w, http.StatusOK, summarizeBatch(results))
}

// GetOutcomeStats handles GET /stats/outcomes
func (h *Handler) GetOutcomeStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.recorder.SnapshotNow())
}

func (h *Handler) session(id string) *checkout.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		s = checkout.NewSession(h.svc)
		h.sessions[id] = s
	}
	return s
}
