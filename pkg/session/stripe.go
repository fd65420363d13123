package session

import (
	"context"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"

	"github.com/priceblocs/priceblocs-go/pkg/client"
)

// StripeCapability redirects to Stripe-hosted checkout pages. A create
// response carrying the hosted URL is navigated to directly, without
// touching Stripe; only a bare session id falls back to retrieving the
// session, which Stripe authorizes for secret keys alone. The publishable
// key resolved from the configuration cannot serve that fallback.
type StripeCapability struct {
	sc       *stripeclient.API
	navigate Navigator
}

// NewStripeCapability creates the default payment capability from the client
// key resolved by the configuration fetch.
func NewStripeCapability(clientKey string, navigate Navigator) (*StripeCapability, error) {
	if clientKey == "" {
		return nil, ErrMissingClientKey
	}
	if navigate == nil {
		return nil, ErrMissingNavigator
	}

	sc := &stripeclient.API{}
	sc.Init(clientKey, nil)

	return &StripeCapability{sc: sc, navigate: navigate}, nil
}

// RedirectToCheckout navigates to the hosted checkout URL for the created
// session, resolving it from Stripe when the create response carried only
// the session id.
func (c *StripeCapability) RedirectToCheckout(ctx context.Context, session *client.CheckoutSession) error {
	if session.URL != "" {
		return c.navigate(ctx, session.URL)
	}

	params := &stripeapi.CheckoutSessionParams{
		Params: stripeapi.Params{Context: ctx},
	}
	sess, err := c.sc.CheckoutSessions.Get(session.ID, params)
	if err != nil {
		return fmt.Errorf("session: failed to resolve checkout session %s: %w", session.ID, err)
	}
	if sess.URL == "" {
		return fmt.Errorf("%w: %s", ErrNoCheckoutURL, session.ID)
	}

	return c.navigate(ctx, sess.URL)
}
