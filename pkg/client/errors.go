package client

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey   = errors.New("client: API key is required")
	ErrRequestFailed   = errors.New("client: request failed")
	ErrInvalidResponse = errors.New("client: invalid response body")

	ErrNoPrices        = errors.New("client: at least one price is required for checkout")
	ErrEmptyInput      = errors.New("client: checkout input is empty")
	ErrMissingCustomer = errors.New("client: a customer id is required for a billing portal session")
)

// APIError is a service-level error returned in a response body. The service
// echoes the request context (url, method, headers, payload) alongside the
// machine-readable code and human message.
type APIError struct {
	StatusCode int               `json:"statusCode"`
	Code       string            `json:"error"`
	Message    string            `json:"message"`
	Type       string            `json:"type"`
	Param      string            `json:"param"`
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	Headers    map[string]string `json:"headers"`
	Payload    map[string]any    `json:"payload"`
	Docs       string            `json:"docs"`
	Chat       string            `json:"chat"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("priceblocs api: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("priceblocs api: %s (status %d)", e.Message, e.StatusCode)
}
