package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/tbeaudouin05/braintree-trellai/api/metrics"
	"github.com/tbeaudouin05/braintree-trellai/api/services/braintree/app"
	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
)

// Handlers adapts HTTP requests onto app.Service.
type Handlers struct {
	svc      app.Service
	log      *slog.Logger
	metrics  *metrics.Metrics
	mode     string
	validate *validator.Validate
}

func (h *Handlers) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Greeting)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// GetCustomer answers with the customer record itself rather than a result object.
func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("customerId")
	res, err := h.svc.GetCustomerByID(r.Context(), id)
	h.respond(w, r, res, err, func(res app.Result) map[string]any {
		return map[string]any{"result": gw.Record(res.Customer)}
	})
}

func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var fields app.CustomerFields
	if !h.decode(w, r, &fields) {
		return
	}
	res, err := h.svc.CreateCustomer(r.Context(), fields)
	h.respond(w, r, res, err, resultBody)
}

// TransactionsByCustomerID always answers 200 once the search stream has ended,
// listing every record and every error it produced.
func (h *Handlers) TransactionsByCustomerID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("customerId")
	txs, errs := gw.Collect(h.svc.TransactionsByCustomerID(r.Context(), id))

	records := make([]any, 0, len(txs))
	for _, tx := range txs {
		records = append(records, gw.Record(tx))
	}
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		h.log.Warn("transaction search error", "customer_id", id, "err", err, "request_id", RequestIDFrom(r.Context()))
		messages = append(messages, err.Error())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       http.StatusOK,
		"transactions": records,
		"errors":       messages,
	})
}

func (h *Handlers) ClientToken(w http.ResponseWriter, r *http.Request) {
	opts := app.ClientTokenOptions{CustomerID: r.URL.Query().Get("customerId")}
	res, err := h.svc.GenerateClientToken(r.Context(), opts)
	h.respond(w, r, res, err, func(res app.Result) map[string]any {
		return map[string]any{"token": res.ClientToken}
	})
}

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var sale app.SaleContext
	if !h.decode(w, r, &sale) {
		return
	}
	res, err := h.svc.CreateSaleTransaction(r.Context(), sale)
	h.respond(w, r, res, err, resultBody)
}

func (h *Handlers) PurchaseUsingVaultedPMT(w http.ResponseWriter, r *http.Request) {
	var purchase app.VaultedPurchase
	if !h.decode(w, r, &purchase) {
		return
	}
	res, err := h.svc.PurchaseUsingVaultedPMT(r.Context(), purchase)
	h.respond(w, r, res, err, resultBody)
}

func resultBody(res app.Result) map[string]any {
	return map[string]any{"result": res}
}

// decode reads a JSON body into dst and runs struct validation. It writes the
// failure response itself and reports whether the handler should continue.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		status := http.StatusBadRequest
		writeJSON(w, status, map[string]any{"status": status, "error": "invalid request body: " + err.Error()})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			h.respond(w, r, app.Result{}, fmt.Errorf("%w: %v", app.ErrBadRequest, err), nil)
			return false
		}
		status := h.status(app.KindValidation)
		writeJSON(w, status, map[string]any{"status": status, "error": fieldErrors(verrs)})
		return false
	}
	return true
}

func fieldErrors(verrs validator.ValidationErrors) []gw.FieldError {
	out := make([]gw.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, gw.FieldError{
			Attribute: fe.Field(),
			Code:      fe.Tag(),
			Message:   fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()),
		})
	}
	return out
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
