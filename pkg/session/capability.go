package session

import (
	"context"

	"github.com/priceblocs/priceblocs-go/pkg/client"
)

// Capability is the payment integration handle able to send the buyer to the
// hosted checkout page for a created session. It is absent until the fetched
// configuration resolves a client key; actions called before then fail fast.
type Capability interface {
	RedirectToCheckout(ctx context.Context, session *client.CheckoutSession) error
}

// CapabilityFactory builds a Capability from the client key resolved by the
// configuration fetch and the navigator the resulting handle should redirect
// through. The session calls it once for its own handle, on the first fetch
// that carries a key; CapabilityWith calls it again for per-request handles.
type CapabilityFactory func(clientKey string, navigate Navigator) (Capability, error)

// CapabilityWith builds a capability from the session's factory bound to the
// given navigator, using the client key resolved by the configuration fetch.
// It returns ErrMissingClientKey before a fetch has resolved one. Hosts with
// request-scoped navigation (an HTTP handler redirecting its own response)
// use this instead of the session's own handle.
func (s *Session) CapabilityWith(navigate Navigator) (Capability, error) {
	if navigate == nil {
		return nil, ErrMissingNavigator
	}

	s.mu.Lock()
	key := s.clientKey
	factory := s.capabilityFactory
	s.mu.Unlock()

	if key == "" {
		return nil, ErrMissingClientKey
	}
	return factory(key, navigate)
}
