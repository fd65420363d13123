// Package portal exposes a session's pricing, checkout and billing flows as a
// mountable set of HTTP routes. It is the server-side rendering of the
// embedded pricing surface: GET /pricing serves the configuration and an
// optional feature comparison table, and the POST routes run the session
// actions, answering successful flows with a 303 redirect to the hosted page.
package portal

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/priceblocs/priceblocs-go/pkg/client"
	"github.com/priceblocs/priceblocs-go/pkg/pricing"
	"github.com/priceblocs/priceblocs-go/pkg/session"
)

// RouterOptions configures the portal routes.
type RouterOptions struct {
	// FeatureGroups, when set, are rendered into a comparison table on the
	// pricing route.
	FeatureGroups []pricing.FeatureGroup
	// Logger defaults to a silent logger.
	Logger *slog.Logger
}

// Router mounts the portal routes over one session.
//
// Example:
//
//	sess, _ := session.New(ctx, session.Config{APIKey: key})
//	r := chi.NewRouter()
//	r.Mount("/billing", portal.Router(sess, portal.RouterOptions{}))
func Router(sess *session.Session, opts RouterOptions) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &handlers{sess: sess, featureGroups: opts.FeatureGroups, logger: logger}

	r := chi.NewRouter()
	r.Get("/pricing", h.pricing)
	r.Post("/refresh", h.refresh)
	r.Post("/checkout", h.checkout)
	r.Post("/billing", h.billing)

	return r
}

type handlers struct {
	sess          *session.Session
	featureGroups []pricing.FeatureGroup
	logger        *slog.Logger
}

// pricingResponse is the published snapshot plus the derived feature table.
type pricingResponse struct {
	Ready        bool              `json:"ready"`
	Loading      bool              `json:"loading"`
	IsSubmitting bool              `json:"isSubmitting"`
	Values       *pricing.Values   `json:"values,omitempty"`
	Metadata     *pricing.Metadata `json:"metadata,omitempty"`
	Error        string            `json:"error,omitempty"`
	FeatureTable *pricing.Table    `json:"featureTable,omitempty"`
}

func (h *handlers) pricing(w http.ResponseWriter, r *http.Request) {
	snap := h.sess.Snapshot()

	resp := pricingResponse{
		Ready:        snap.Ready,
		Loading:      snap.Loading,
		IsSubmitting: snap.IsSubmitting,
		Values:       snap.Values,
		Metadata:     snap.Metadata,
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	if snap.Values != nil && len(h.featureGroups) > 0 {
		table := pricing.FeatureTable(snap.Values.Products, h.featureGroups)
		resp.FeatureTable = &table
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	prev := h.sess.Snapshot().Err
	h.sess.Refetch(r.Context())

	snap := h.sess.Snapshot()
	if snap.Err != nil && snap.Err != prev {
		h.writeError(w, snap.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutRequest struct {
	Price      string            `json:"price,omitempty"`
	Prices     []string          `json:"prices,omitempty"`
	SuccessURL string            `json:"success_url,omitempty"`
	CancelURL  string            `json:"cancel_url,omitempty"`
	ReturnURL  string            `json:"return_url,omitempty"`
	Customer   *pricing.Customer `json:"customer,omitempty"`
}

func (h *handlers) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var input client.CheckoutInput
	if len(req.Prices) > 0 || req.Customer != nil || req.SuccessURL != "" || req.CancelURL != "" || req.ReturnURL != "" {
		prices := req.Prices
		if len(prices) == 0 && req.Price != "" {
			prices = []string{req.Price}
		}
		input = client.RequestInput(client.CheckoutRequest{
			Prices:     prices,
			SuccessURL: req.SuccessURL,
			CancelURL:  req.CancelURL,
			ReturnURL:  req.ReturnURL,
			Customer:   req.Customer,
		})
	} else {
		input = client.PriceInput(req.Price)
	}

	redirect := newRedirector(w, r)

	capability, err := h.sess.CapabilityWith(redirect.navigate)
	if err != nil {
		if errors.Is(err, session.ErrMissingClientKey) {
			http.Error(w, "pricing configuration has no client key yet", http.StatusConflict)
			return
		}
		h.writeError(w, err)
		return
	}

	prev := h.sess.Snapshot().Err
	h.sess.Checkout(r.Context(), input, capability)
	redirect.finish(h, w, prev)
}

type billingRequest struct {
	Customer  string `json:"customer,omitempty"`
	ReturnURL string `json:"return_url,omitempty"`
}

func (h *handlers) billing(w http.ResponseWriter, r *http.Request) {
	var req billingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	redirect := newRedirector(w, r)
	prev := h.sess.Snapshot().Err
	h.sess.Billing(r.Context(), client.BillingRequest{
		Customer:  req.Customer,
		ReturnURL: req.ReturnURL,
	}, redirect.navigate)
	redirect.finish(h, w, prev)
}
