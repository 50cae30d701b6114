package router

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tbeaudouin05/braintree-trellai/api/config"
	"github.com/tbeaudouin05/braintree-trellai/api/services/braintree/app"
)

// respond applies the response classification shared by every wrapper-backed route:
//  1. err → failure kind of err, body {status, error: message}
//  2. success → 200, body {status: 200, ...successBody(res)}
//  3. deep errors → validation, body {status, error: [field errors]}
//  4. otherwise → rejected, body {status, result}
func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, res app.Result, err error, successBody func(app.Result) map[string]any) {
	if err != nil {
		kind := app.KindOf(err)
		status := h.status(kind)
		h.log.Error("braintree call failed", "kind", kind, "err", err, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
		writeJSON(w, status, map[string]any{"status": status, "error": err.Error()})
		return
	}

	if res.Success {
		body := successBody(res)
		body["status"] = http.StatusOK
		writeJSON(w, http.StatusOK, body)
		return
	}

	kind := res.Kind()
	status := h.status(kind)
	if deep := res.DeepErrors(); len(deep) > 0 {
		h.log.Warn("braintree validation errors", "errors", len(deep), "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
		writeJSON(w, status, map[string]any{"status": status, "error": deep})
		return
	}
	h.log.Warn("braintree rejected call", "message", res.Message, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, status, map[string]any{"status": status, "result": res})
}

// status maps a failure kind to an HTTP status for the configured mode.
func (h *Handlers) status(kind app.Kind) int {
	return StatusFor(h.mode, kind)
}

// StatusFor maps a failure kind to an HTTP status. Legacy mode answers 500 for every
// kind so existing callers keep working; differentiated mode tells the kinds apart.
func StatusFor(mode string, kind app.Kind) int {
	if mode != config.StatusModeDifferentiated {
		return http.StatusInternalServerError
	}
	switch kind {
	case app.KindValidation:
		return http.StatusBadRequest
	case app.KindRejected:
		return http.StatusPaymentRequired
	case app.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
