package client

import "github.com/priceblocs/priceblocs-go/pkg/pricing"

// CheckoutPayload is the wire shape of a checkout session create.
type CheckoutPayload struct {
	Prices        []string `json:"prices"`
	CancelURL     string   `json:"cancel_url"`
	SuccessURL    string   `json:"success_url,omitempty"`
	ReturnURL     string   `json:"return_url,omitempty"`
	ID            string   `json:"id,omitempty"`
	Customer      string   `json:"customer,omitempty"`
	CustomerEmail string   `json:"customer_email,omitempty"`
	Email         string   `json:"email,omitempty"`
}

// BillingPayload is the wire shape of a billing portal session create.
type BillingPayload struct {
	Customer  string `json:"customer"`
	ReturnURL string `json:"return_url"`
}

type checkoutInputKind int

const (
	inputEmpty checkoutInputKind = iota
	inputPriceID
	inputRequest
)

// CheckoutInput is the tagged union of the two ways to start a checkout:
// a bare price ID or a fully structured request. Construct it with PriceInput
// or RequestInput; the zero value is rejected by PrepareCheckoutPayload.
type CheckoutInput struct {
	kind    checkoutInputKind
	priceID string
	request CheckoutRequest
}

// PriceInput starts a checkout for a single price with everything else
// inherited from defaults.
func PriceInput(priceID string) CheckoutInput {
	return CheckoutInput{kind: inputPriceID, priceID: priceID}
}

// RequestInput starts a checkout from a structured request whose set fields
// override the defaults.
func RequestInput(req CheckoutRequest) CheckoutInput {
	return CheckoutInput{kind: inputRequest, request: req}
}

// CheckoutRequest is the call-time override layer for a checkout.
type CheckoutRequest struct {
	Prices     []string
	SuccessURL string
	CancelURL  string
	ReturnURL  string
	Customer   *pricing.Customer
}

// CheckoutDefaults is the context-level layer: session configuration plus the
// correlating config ID and the host page URL used as the cancel fallback.
type CheckoutDefaults struct {
	SuccessURL    string
	CancelURL     string
	ReturnURL     string
	CustomerID    string
	CustomerEmail string
	Email         string
	ConfigID      string
	PageURL       string
}

// BillingRequest is the call-time override layer for a billing portal session.
type BillingRequest struct {
	Customer  string
	ReturnURL string
}

// BillingDefaults is the context-level layer for a billing portal session.
type BillingDefaults struct {
	CustomerID string
	ReturnURL  string
	PageURL    string
}

// PrepareCheckoutPayload merges the call-time input over the defaults into a
// checkout payload. Per field the first non-empty value wins: call-time, then
// default, then the computed fallback (the page URL, for cancel_url). The
// correlating config ID is attached whenever one is known, and the customer
// identity collapses to a single field with id taking precedence over email.
func PrepareCheckoutPayload(input CheckoutInput, d CheckoutDefaults) (CheckoutPayload, error) {
	payload := CheckoutPayload{
		CancelURL: firstNonEmpty(d.CancelURL, d.PageURL),
		ID:        d.ConfigID,
	}

	switch input.kind {
	case inputPriceID:
		if input.priceID == "" {
			return CheckoutPayload{}, ErrNoPrices
		}
		payload.Prices = []string{input.priceID}
		payload.SuccessURL = d.SuccessURL
		payload.ReturnURL = d.ReturnURL
		resolveIdentity(&payload, nil, d)

	case inputRequest:
		req := input.request
		if len(req.Prices) == 0 {
			return CheckoutPayload{}, ErrNoPrices
		}
		payload.Prices = req.Prices
		payload.CancelURL = firstNonEmpty(req.CancelURL, d.CancelURL, d.PageURL)
		payload.SuccessURL = firstNonEmpty(req.SuccessURL, d.SuccessURL)
		payload.ReturnURL = firstNonEmpty(req.ReturnURL, d.ReturnURL)
		resolveIdentity(&payload, req.Customer, d)

	default:
		return CheckoutPayload{}, ErrEmptyInput
	}

	return payload, nil
}

// PrepareBillingPayload resolves the customer and return URL for a billing
// portal session. A resolvable customer id is mandatory; the return URL falls
// back to the context default and then the page URL.
func PrepareBillingPayload(input BillingRequest, d BillingDefaults) (BillingPayload, error) {
	customer := firstNonEmpty(input.Customer, d.CustomerID)
	if customer == "" {
		return BillingPayload{}, ErrMissingCustomer
	}

	return BillingPayload{
		Customer:  customer,
		ReturnURL: firstNonEmpty(input.ReturnURL, d.ReturnURL, d.PageURL),
	}, nil
}

// resolveIdentity collapses the tri-state customer identity into exactly one
// payload field. A call-time customer overrides the defaults wholesale; within
// either layer an id beats an email, and the defaults' dedicated
// customer_email beats the plain email.
func resolveIdentity(payload *CheckoutPayload, callTime *pricing.Customer, d CheckoutDefaults) {
	if callTime != nil {
		switch {
		case callTime.ID != "":
			payload.Customer = callTime.ID
		case callTime.Email != "":
			payload.CustomerEmail = callTime.Email
		}
		return
	}

	switch {
	case d.CustomerID != "":
		payload.Customer = d.CustomerID
	case d.CustomerEmail != "":
		payload.CustomerEmail = d.CustomerEmail
	case d.Email != "":
		payload.Email = d.Email
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
