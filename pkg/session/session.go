package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/priceblocs/priceblocs-go/pkg/client"
	"github.com/priceblocs/priceblocs-go/pkg/pricing"
)

// API is the subset of pkg/client the session depends on. *client.Client
// satisfies it; tests substitute mocks.
type API interface {
	ConfigSource
	CreateCheckoutSession(ctx context.Context, payload client.CheckoutPayload) (*client.CheckoutSession, error)
	CreateBillingSession(ctx context.Context, payload client.BillingPayload) (*client.BillingSession, error)
}

// ConfigSource loads a pricing configuration. The default source is the API
// client; StaticSource serves a local fixture for offline development.
type ConfigSource interface {
	FetchConfig(ctx context.Context, params client.ConfigParams) (*pricing.Values, *pricing.Metadata, error)
}

// Navigator performs the full-page navigation side effect at the end of a
// successful flow. Hosts supply it: a server-side integration writes an HTTP
// redirect, a CLI might open a browser.
type Navigator func(ctx context.Context, url string) error

// Config carries the session's context-level defaults. The customer identity
// fields are tri-state: at most one of CustomerID, CustomerEmail, Email is
// sent, id winning over the email forms.
type Config struct {
	APIKey        string
	CustomerID    string
	CustomerEmail string
	Email         string
	Prices        []string
	SuccessURL    string
	CancelURL     string
	ReturnURL     string
	// PageURL is the address of the page hosting the flow, used as the
	// cancel/return fallback when no explicit URL is configured.
	PageURL string
}

// Snapshot is the state published to hosts. Values and Metadata are deep
// copies; mutating them never affects the session.
type Snapshot struct {
	Ready        bool
	Loading      bool
	IsSubmitting bool
	Values       *pricing.Values
	Metadata     *pricing.Metadata
	Err          error
}

// Session owns all mutable state for one embedded pricing surface.
// All methods are safe for concurrent use.
type Session struct {
	cfg               Config
	api               API
	source            ConfigSource
	capabilityFactory CapabilityFactory
	navigate          Navigator
	logger            *slog.Logger

	mu         sync.Mutex
	values     *pricing.Values
	metadata   *pricing.Metadata
	clientKey  string
	capability Capability
	loading    bool
	submitting bool
	err        error

	watchMu  sync.Mutex
	watchers map[*watcher]struct{}
	closed   bool
}

// Option configures a Session.
type Option func(*Session)

// WithAPI replaces the API client built from Config.APIKey.
func WithAPI(api API) Option {
	return func(s *Session) {
		if api != nil {
			s.api = api
		}
	}
}

// WithConfigSource replaces where the pricing configuration is loaded from
// while leaving session creation on the API client.
func WithConfigSource(src ConfigSource) Option {
	return func(s *Session) {
		if src != nil {
			s.source = src
		}
	}
}

// WithCapabilityFactory replaces how the payment capability is built once a
// client key is known.
func WithCapabilityFactory(factory CapabilityFactory) Option {
	return func(s *Session) {
		if factory != nil {
			s.capabilityFactory = factory
		}
	}
}

// WithNavigator sets the navigation side effect for successful flows.
func WithNavigator(navigate Navigator) Option {
	return func(s *Session) {
		if navigate != nil {
			s.navigate = navigate
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session and performs the initial configuration fetch. A failed
// fetch does not fail construction: the failure is recorded in the snapshot
// and Refetch is the recovery path. New returns an error only for
// misconfiguration (no API key and no injected API or config source).
func New(ctx context.Context, cfg Config, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		watchers: make(map[*watcher]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.api == nil && cfg.APIKey != "" {
		api, err := client.New(client.Config{APIKey: cfg.APIKey})
		if err != nil {
			return nil, err
		}
		s.api = api
	}
	if s.source == nil {
		if s.api == nil {
			return nil, ErrNoAPIClient
		}
		s.source = s.api
	}
	if s.capabilityFactory == nil {
		s.capabilityFactory = func(clientKey string, navigate Navigator) (Capability, error) {
			return NewStripeCapability(clientKey, navigate)
		}
	}

	s.Refetch(ctx)

	return s, nil
}

// Refetch reloads the pricing configuration. A call while a fetch is already
// outstanding is a logged no-op, and a call after Close records ErrClosed.
// On success values and metadata are replaced wholesale and the error state
// clears; on failure the error is recorded and previously loaded values stay
// untouched.
func (s *Session) Refetch(ctx context.Context) {
	if s.isClosed() {
		s.setErr(ctx, errors.Join(ErrFetchFailed, ErrClosed))
		return
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "configuration fetch already in progress")
		return
	}
	s.loading = true
	s.mu.Unlock()
	s.publish()

	values, metadata, err := s.source.FetchConfig(ctx, client.ConfigParams{
		Customer:      s.cfg.CustomerID,
		CustomerEmail: s.cfg.CustomerEmail,
		Email:         s.cfg.Email,
		Prices:        s.cfg.Prices,
	})

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = errors.Join(ErrFetchFailed, err)
		s.mu.Unlock()
		s.logger.ErrorContext(ctx, "failed to fetch pricing configuration", slog.Any("error", err))
		s.publish()
		return
	}

	s.values = values
	s.metadata = metadata
	s.err = nil
	s.resolveCapabilityLocked(ctx, values.Admin.ClientKey)
	s.mu.Unlock()
	s.publish()
}

// resolveCapabilityLocked advances the capability lifecycle after a successful
// fetch. The client key is immutable once set: a fetch returning a different
// key is logged and ignored, and an already-live capability is never rebuilt.
func (s *Session) resolveCapabilityLocked(ctx context.Context, fetchedKey string) {
	if fetchedKey == "" {
		return
	}
	if s.clientKey != "" && s.clientKey != fetchedKey {
		s.logger.WarnContext(ctx, "ignoring changed client key",
			slog.String("current", s.clientKey),
			slog.String("fetched", fetchedKey))
		return
	}
	if s.capability != nil {
		return
	}

	s.clientKey = fetchedKey
	capability, err := s.capabilityFactory(fetchedKey, s.navigate)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to initialize payment capability", slog.Any("error", err))
		return
	}
	s.capability = capability
}

// Snapshot returns the current published state with deep-copied values.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		Ready:        s.capability != nil,
		Loading:      s.loading,
		IsSubmitting: s.submitting,
		Err:          s.err,
	}
	if s.values != nil {
		snap.Values = cloneValues(s.values)
	}
	if s.metadata != nil {
		metadata := *s.metadata
		snap.Metadata = &metadata
	}
	return snap
}

// SetValues replaces the configuration values wholesale and republishes.
func (s *Session) SetValues(values *pricing.Values) {
	s.mu.Lock()
	s.values = cloneValues(values)
	s.mu.Unlock()
	s.publish()
}

// SetFieldValue applies a localized update at a dotted path ("form.currency",
// "products.0.name") to a deep clone of the current values and republishes.
func (s *Session) SetFieldValue(path string, value any) error {
	s.mu.Lock()
	if s.values == nil {
		s.mu.Unlock()
		return ErrNoValues
	}
	updated, err := setFieldValue(s.values, path, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.values = updated
	s.mu.Unlock()
	s.publish()
	return nil
}

// ActiveProductPrice resolves the price of the given product under the form's
// currently selected currency and billing interval.
func (s *Session) ActiveProductPrice(productID string) (pricing.Price, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		return pricing.Price{}, false
	}
	for _, product := range s.values.Products {
		if product.ID == productID {
			return pricing.ActivePrice(product, pricing.Query{
				Currency: s.values.Form.Currency,
				Interval: s.values.Form.Interval,
			})
		}
	}
	return pricing.Price{}, false
}

// ClientKey returns the capability-initialization key resolved by the first
// successful fetch, or "" before one.
func (s *Session) ClientKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientKey
}

func (s *Session) setErr(ctx context.Context, err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.logger.ErrorContext(ctx, "action failed", slog.Any("error", err))
	s.publish()
}
