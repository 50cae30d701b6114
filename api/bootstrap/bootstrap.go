package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tbeaudouin05/braintree-trellai/api/config"
	"github.com/tbeaudouin05/braintree-trellai/api/logger"
	"github.com/tbeaudouin05/braintree-trellai/api/metrics"
	"github.com/tbeaudouin05/braintree-trellai/api/router"
	braintreeapp "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/app"
	gw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway"
	braintreegw "github.com/tbeaudouin05/braintree-trellai/api/services/braintree/gateway/braintree"
)

// App is the wired application. Everything is built once at startup and shared
// read-only by all requests.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Service braintreeapp.Service
	Handler http.Handler
}

// New initializes the logger, metrics and the Braintree client from cfg, and wires services.
func New(cfg *config.Config, logOut io.Writer) (*App, error) {
	log := logger.New(logOut, cfg.LogLevel, cfg.LogFormat)
	m := metrics.New()

	g, err := braintreegw.New(braintreegw.Options{
		Environment: cfg.BraintreeEnvironment,
		MerchantID:  cfg.MerchantID,
		PublicKey:   cfg.PublicKey,
		PrivateKey:  cfg.PrivateKey,
		Timeout:     cfg.GatewayTimeout,
	}, m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize braintree client: %w", err)
	}
	log.Info("braintree client initialized", "environment", cfg.BraintreeEnvironment, "merchant_id", cfg.MerchantID)

	return Wire(cfg, log, m, g), nil
}

// Wire assembles the app around an already built gateway. Tests use it to inject fakes.
func Wire(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, g gw.BraintreeGateway) *App {
	svc := braintreeapp.NewService(g, log)
	return &App{
		Config:  cfg,
		Logger:  log,
		Metrics: m,
		Service: svc,
		Handler: router.NewRouter(svc, router.Options{
			Logger:     log,
			Metrics:    m,
			StatusMode: cfg.StatusMode,
		}),
	}
}
