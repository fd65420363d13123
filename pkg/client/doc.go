// Package client implements the HTTP binding to the PriceBlocs API: fetching a
// merchant's pricing configuration and creating checkout and billing-portal
// sessions.
//
// All operations authenticate with a bearer API key and exchange JSON. The
// service reports its own failures in the response body as a structured object
// carrying a statusCode field; those are surfaced as *APIError so callers can
// distinguish service-level rejections from transport failures.
//
// The package also contains the pure payload preparers that normalize caller
// input (a bare price ID or a structured request, call-time overrides layered
// over session defaults) into the exact wire shapes the API expects. Preparers
// take every contextual input as an argument, including the host page URL used
// as the cancel/return fallback, so identical inputs always produce identical
// payloads.
package client
