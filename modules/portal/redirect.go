package portal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/priceblocs/priceblocs-go/pkg/client"
)

// redirector is the per-request navigator handed into a session action. A
// successful flow ends with exactly one 303 written here; finish resolves the
// response when no redirect happened.
type redirector struct {
	w          http.ResponseWriter
	r          *http.Request
	redirected bool
}

func newRedirector(w http.ResponseWriter, r *http.Request) *redirector {
	return &redirector{w: w, r: r}
}

func (d *redirector) navigate(_ context.Context, url string) error {
	d.redirected = true
	http.Redirect(d.w, d.r, url, http.StatusSeeOther)
	return nil
}

// finish answers requests whose action did not navigate: the error the action
// recorded when it recorded one, otherwise a conflict (the action was a
// guarded no-op, e.g. another submission was in flight). prev is the snapshot
// error from before the action; an unchanged error belongs to an earlier
// request and is not re-rendered here.
func (d *redirector) finish(h *handlers, w http.ResponseWriter, prev error) {
	if d.redirected {
		return
	}

	if snap := h.sess.Snapshot(); snap.Err != nil && snap.Err != prev {
		h.writeError(w, snap.Err)
		return
	}
	http.Error(w, "submission not started", http.StatusConflict)
}

// errorResponse mirrors the service's own error shape where possible.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Code       string `json:"error,omitempty"`
	Message    string `json:"message"`
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	h.logger.Error("portal request failed", slog.Any("error", err))

	resp := errorResponse{
		StatusCode: http.StatusBadGateway,
		Message:    err.Error(),
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		resp.StatusCode = apiErr.StatusCode
		resp.Code = apiErr.Code
		resp.Message = apiErr.Message
	}

	writeJSON(w, resp.StatusCode, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
