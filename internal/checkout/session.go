package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

// State is the submit state of a checkout session.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

// ErrCheckoutInFlight rejects a submit while another one is pending on the
// same session. The pending checkout proceeds untouched; there is no queue
// and no cancellation protocol.
var ErrCheckoutInFlight = errors.New("a checkout is already in progress")

// Session enforces the at-most-one-in-flight invariant for one screen
// instance. Its lifecycle is Idle -> Submitting -> Completed, with Reset
// returning to Idle when the user navigates back to the form.
type Session struct {
	svc *Service

	mu     sync.Mutex
	state  State
	result *model.PaymentResult
}

// NewSession creates an idle session bound to the service.
func NewSession(svc *Service) *Session {
	return &Session{svc: svc, state: StateIdle}
}

// State returns the current submit state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the completed result, if any.
func (s *Session) Result() (model.PaymentResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return model.PaymentResult{}, false
	}
	return *s.result, true
}

// Submit runs one checkout through the session. A submit while another is in
// flight returns ErrCheckoutInFlight. A completed session may submit again;
// the previous result is discarded.
func (s *Session) Submit(ctx context.Context, sel model.OrderSelection) (model.PaymentResult, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return model.PaymentResult{}, ErrCheckoutInFlight
	}
	s.state = StateSubmitting
	s.result = nil
	s.mu.Unlock()

	result, err := s.svc.Submit(ctx, sel)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Validation and gateway failures return the form to idle.
		s.state = StateIdle
		return model.PaymentResult{}, err
	}
	s.state = StateCompleted
	s.result = &result
	return result, nil
}

// Reset discards the result and returns to Idle. A reset while a checkout is
// in flight is ignored.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return
	}
	s.state = StateIdle
	s.result = nil
}
