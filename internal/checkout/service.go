package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nimbbl-tech/checkout-sandbox/internal/mapper"
	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
	"github.com/nimbbl-tech/checkout-sandbox/internal/normalizer"
	"github.com/nimbbl-tech/checkout-sandbox/internal/sdk"
	"github.com/nimbbl-tech/checkout-sandbox/internal/stats"
)

// ErrPaymentFailed wraps gateway-level failures. The user sees a generic
// payment error; checkout is not retried automatically.
var ErrPaymentFailed = errors.New("an error occurred during payment")

// Service runs one checkout end to end: validate the selection, build the
// SDK request codes, create the order, perform the checkout and normalize
// whatever payload comes back. Constructed once at startup and handed to
// consumers by reference.
type Service struct {
	gateway  sdk.Gateway
	store    *ResultStore
	recorder *stats.Recorder
}

// NewService creates a Service backed by the given gateway.
func NewService(gateway sdk.Gateway, recorder *stats.Recorder) *Service {
	return &Service{
		gateway:  gateway,
		store:    NewResultStore(),
		recorder: recorder,
	}
}

// Submit runs a full checkout attempt for the selection.
func (s *Service) Submit(ctx context.Context, sel model.OrderSelection) (model.PaymentResult, error) {
	if err := ValidateSelection(sel); err != nil {
		return model.PaymentResult{}, err
	}

	codes := mapper.BuildRequestCodes(sel)

	orderReq := sdk.OrderRequest{
		Amount:             strings.TrimSpace(sel.Amount),
		Currency:           sel.Currency,
		ProductID:          codes.ProductID,
		OrderLineItems:     sel.IncludeLineItems,
		CheckoutExperience: sdk.DefaultCheckoutExperience,
		PaymentModeCode:    codes.PaymentModeCode,
		SubPaymentMode:     sel.SubPaymentType,
	}
	if sel.CollectBuyerDetails {
		orderReq.User = &model.BuyerUser{
			Email:        sel.BuyerEmail,
			Name:         sel.BuyerName,
			MobileNumber: sel.BuyerPhone,
		}
	}

	slog.Info("order_create",
		"gateway", s.gateway.Name(),
		"currency", orderReq.Currency,
		"product_id", orderReq.ProductID,
		"payment_mode", codes.PaymentModeCode,
	)

	order, err := s.gateway.CreateOrder(ctx, orderReq)
	if err != nil {
		slog.Error("order_create_failed",
			"gateway", s.gateway.Name(),
			"error", err,
		)
		return model.PaymentResult{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	raw, err := s.gateway.Checkout(ctx, sdk.CheckoutRequest{
		OrderToken:      order.Token,
		PaymentModeCode: codes.PaymentModeCode,
		BankCode:        codes.BankCode,
		WalletCode:      codes.WalletCode,
		PaymentFlow:     codes.PaymentFlow,
	})
	if err != nil {
		slog.Error("checkout_failed",
			"gateway", s.gateway.Name(),
			"order_id", order.OrderID,
			"error", err,
		)
		return model.PaymentResult{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	result, kind := normalizer.NormalizeWithKind(raw)

	slog.Info("checkout_completed",
		"order_id", result.OrderID,
		"status", result.Status,
		"payload_kind", kind,
		"encrypted", result.IsEncrypted,
	)

	if s.recorder != nil {
		bucket := string(result.Status)
		if result.IsEncrypted {
			bucket = stats.BucketEncrypted
		}
		s.recorder.Record(bucket)
	}

	s.store.Save(result)
	return result, nil
}

// Result returns the stored result for an order id.
func (s *Service) Result(orderID string) (model.PaymentResult, bool) {
	return s.store.Get(orderID)
}

// Gateway returns the underlying gateway for external access.
func (s *Service) Gateway() sdk.Gateway {
	return s.gateway
}

// ResultStore provides thread-safe storage for payment results, keyed by
// order id. Results live only for the process lifetime.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]model.PaymentResult
}

// NewResultStore creates a new empty result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]model.PaymentResult),
	}
}

// Save stores a payment result.
func (s *ResultStore) Save(result model.PaymentResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.OrderID] = result
}

// Get retrieves a payment result by order id.
func (s *ResultStore) Get(orderID string) (model.PaymentResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[orderID]
	return r, ok
}
