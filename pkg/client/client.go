package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/priceblocs/priceblocs-go/pkg/pricing"
)

const (
	pricingPath  = "/v1/config/pricing"
	checkoutPath = "/v1/config/checkout"
	billingPath  = "/v1/billing"

	defaultTimeout = 30 * time.Second
)

// Config holds the API credentials and endpoint for the client.
type Config struct {
	APIKey  string `env:"PRICEBLOCS_API_KEY,required"`
	BaseURL string `env:"PRICEBLOCS_API_URL" envDefault:"https://api.priceblocs.com"`
}

// LoadConfig reads Config from the environment, loading a .env file first if
// one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("client: failed to load config: %w", err)
	}
	return cfg, nil
}

// Client talks to the PriceBlocs API. Safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Nil clients are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a PriceBlocs API client. The default HTTP client carries a
// bounded timeout so a hung request cannot hold a caller's in-flight guard
// forever.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.priceblocs.com"
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// CheckoutSession is the response to a checkout session create. URL is the
// hosted checkout page when the service returns one alongside the id.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// BillingSession is the response to a billing portal session create.
type BillingSession struct {
	URL string `json:"url"`
}

// FetchConfig retrieves the merchant pricing configuration. Only present
// parameters are serialized into the query; slice parameters expand to
// repeated name[]=value pairs.
func (c *Client) FetchConfig(ctx context.Context, params ConfigParams) (*pricing.Values, *pricing.Metadata, error) {
	url := c.baseURL + pricingPath
	if query := params.encode(); query != "" {
		url += "?" + query
	}

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}

	var envelope struct {
		Data *pricing.Values `json:"data"`
		pricing.Metadata
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if envelope.Data == nil {
		return nil, nil, fmt.Errorf("%w: missing data", ErrInvalidResponse)
	}

	return envelope.Data, &envelope.Metadata, nil
}

// CreateCheckoutSession creates a hosted checkout session for the payload.
func (c *Client) CreateCheckoutSession(ctx context.Context, payload CheckoutPayload) (*CheckoutSession, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+checkoutPath, payload)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &session, nil
}

// CreateBillingSession creates a billing portal session for the payload.
func (c *Client) CreateBillingSession(ctx context.Context, payload BillingPayload) (*BillingSession, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+billingPath, payload)
	if err != nil {
		return nil, err
	}

	var session BillingSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &session, nil
}

// do executes one request and returns the raw response body. A body carrying a
// statusCode field is a service-level rejection and comes back as *APIError,
// whatever the HTTP status line said.
func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	var probe struct {
		StatusCode int `json:"statusCode"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.StatusCode != 0 {
		apiErr := &APIError{}
		if err := json.Unmarshal(body, apiErr); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		c.logger.DebugContext(ctx, "service rejected request",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status_code", apiErr.StatusCode),
			slog.String("code", apiErr.Code))
		return nil, apiErr
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			URL:        url,
			Method:     method,
		}
	}

	return body, nil
}
