package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/priceblocs/priceblocs-go/pkg/client"
)

// Checkout starts a hosted checkout for the given input. An explicit
// capability overrides the session's own; with neither available the call is
// a logged no-op, as is a call while another submission is in flight. Every
// failure past those guards is captured into the snapshot, never returned.
func (s *Session) Checkout(ctx context.Context, input client.CheckoutInput, capability ...Capability) {
	if s.isClosed() {
		s.setErr(ctx, errors.Join(ErrCheckoutFailed, ErrClosed))
		return
	}

	handle := s.resolveCapability(capability)
	if handle == nil {
		s.logger.ErrorContext(ctx, "payment capability is not initialized - ensure the fetched configuration carries a client key")
		return
	}

	defaults, ok := s.beginSubmit(ctx, "checkout")
	if !ok {
		return
	}
	defer s.endSubmit()

	if s.api == nil {
		s.setErr(ctx, errors.Join(ErrCheckoutFailed, ErrNoAPIClient))
		return
	}

	payload, err := client.PrepareCheckoutPayload(input, defaults.checkout)
	if err != nil {
		s.setErr(ctx, errors.Join(ErrCheckoutFailed, err))
		return
	}

	created, err := s.api.CreateCheckoutSession(ctx, payload)
	if err != nil {
		s.setErr(ctx, errors.Join(ErrCheckoutFailed, err))
		return
	}

	if err := handle.RedirectToCheckout(ctx, created); err != nil {
		s.setErr(ctx, errors.Join(ErrCheckoutFailed, err))
	}
}

// Billing starts a billing portal session and navigates to the returned URL.
// An explicit navigator overrides the session's own; with neither configured
// the call is a logged no-op. A customer id must be resolvable from the input
// or the session defaults; without one the call records the failure before
// any request is made.
func (s *Session) Billing(ctx context.Context, input client.BillingRequest, navigate ...Navigator) {
	if s.isClosed() {
		s.setErr(ctx, errors.Join(ErrBillingFailed, ErrClosed))
		return
	}

	nav := s.navigate
	if len(navigate) > 0 && navigate[0] != nil {
		nav = navigate[0]
	}
	if nav == nil {
		s.logger.ErrorContext(ctx, "no navigator configured - a billing portal flow ends in a full-page navigation")
		return
	}

	defaults, ok := s.beginSubmit(ctx, "billing")
	if !ok {
		return
	}
	defer s.endSubmit()

	payload, err := client.PrepareBillingPayload(input, defaults.billing)
	if err != nil {
		s.setErr(ctx, errors.Join(ErrBillingFailed, err))
		return
	}

	if s.api == nil {
		s.setErr(ctx, errors.Join(ErrBillingFailed, ErrNoAPIClient))
		return
	}

	created, err := s.api.CreateBillingSession(ctx, payload)
	if err != nil {
		s.setErr(ctx, errors.Join(ErrBillingFailed, err))
		return
	}
	if created.URL == "" {
		s.setErr(ctx, errors.Join(ErrBillingFailed, ErrNoCheckoutURL))
		return
	}

	if err := nav(ctx, created.URL); err != nil {
		s.setErr(ctx, errors.Join(ErrBillingFailed, err))
	}
}

// actionDefaults is the frozen context-level layer an action works from, taken
// under the lock at submit time so a concurrent refetch cannot shear it.
type actionDefaults struct {
	checkout client.CheckoutDefaults
	billing  client.BillingDefaults
}

// beginSubmit enforces at-most-one-in-flight per session. It returns the
// defaults snapshot and true when the action may proceed; a second concurrent
// submission is a logged no-op.
func (s *Session) beginSubmit(ctx context.Context, action string) (actionDefaults, bool) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "submission already in progress", slog.String("action", action))
		return actionDefaults{}, false
	}
	s.submitting = true

	var configID string
	if s.metadata != nil {
		configID = s.metadata.ID
	}
	defaults := actionDefaults{
		checkout: client.CheckoutDefaults{
			SuccessURL:    s.cfg.SuccessURL,
			CancelURL:     s.cfg.CancelURL,
			ReturnURL:     s.cfg.ReturnURL,
			CustomerID:    s.cfg.CustomerID,
			CustomerEmail: s.cfg.CustomerEmail,
			Email:         s.cfg.Email,
			ConfigID:      configID,
			PageURL:       s.cfg.PageURL,
		},
		billing: client.BillingDefaults{
			CustomerID: s.cfg.CustomerID,
			ReturnURL:  s.cfg.ReturnURL,
			PageURL:    s.cfg.PageURL,
		},
	}
	s.mu.Unlock()
	s.publish()

	return defaults, true
}

// endSubmit clears the in-flight flag on every path out of an action.
func (s *Session) endSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
	s.publish()
}

func (s *Session) resolveCapability(explicit []Capability) Capability {
	if len(explicit) > 0 && explicit[0] != nil {
		return explicit[0]
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capability
}
