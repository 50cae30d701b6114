package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"

	"github.com/tbeaudouin05/braintree-trellai/api/config"
	"github.com/tbeaudouin05/braintree-trellai/api/metrics"
	"github.com/tbeaudouin05/braintree-trellai/api/services/braintree/app"
)

// Greeting is the body of GET /.
const Greeting = "HELLO THERE"

// Options carries the router's collaborators. Zero values are usable: a nil Logger
// logs through slog.Default, a nil Metrics records nothing, and an empty StatusMode
// means config.StatusModeLegacy.
type Options struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	StatusMode string
}

// NewRouter returns the central HTTP router for the API. Business routes are served by
// a grpc-gateway ServeMux registered with HandlePath; the greeting, health and metrics
// routes sit on a standard mux in front of it.
func NewRouter(svc app.Service, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.StatusMode == "" {
		opts.StatusMode = config.StatusModeLegacy
	}

	h := &Handlers{
		svc:      svc,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		mode:     opts.StatusMode,
		validate: newValidator(),
	}

	gwmux := runtime.NewServeMux(runtime.WithRoutingErrorHandler(routingErrorHandler))
	h.RegisterRoutes(gwmux)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.wrap("/", h.Hello))
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.Handle("GET /metrics", opts.Metrics.Handler())
	mux.Handle("/", gwmux)

	return requestID(mux)
}

// RegisterRoutes registers the Braintree routes on the grpc-gateway mux.
func (h *Handlers) RegisterRoutes(mux *runtime.ServeMux) {
	routes := []struct {
		method string
		path   string
		fn     http.HandlerFunc
	}{
		{http.MethodGet, "/customer", h.GetCustomer},
		{http.MethodPost, "/customer", h.CreateCustomer},
		{http.MethodGet, "/transactionsByCustomerId", h.TransactionsByCustomerID},
		{http.MethodGet, "/clientToken", h.ClientToken},
		{http.MethodPost, "/checkout", h.Checkout},
		{http.MethodPost, "/purchaseUsingVaultedPMT", h.PurchaseUsingVaultedPMT},
	}
	for _, rt := range routes {
		fn := h.wrap(rt.path, rt.fn)
		if err := mux.HandlePath(rt.method, rt.path, func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
			fn(w, r)
		}); err != nil {
			// Patterns are static, so this only fires on a programming error.
			panic(err)
		}
	}
}

func routingErrorHandler(_ context.Context, _ *runtime.ServeMux, _ runtime.Marshaler, w http.ResponseWriter, _ *http.Request, status int) {
	writeJSON(w, status, map[string]any{"status": status, "error": http.StatusText(status)})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}
