package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/tbeaudouin05/braintree-trellai/api/bootstrap"
	"github.com/tbeaudouin05/braintree-trellai/api/config"
	"github.com/tbeaudouin05/braintree-trellai/api/health"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server and the gRPC health port",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("port", "", "HTTP listen port (PORT)")
	flags.String("grpc-port", "", "gRPC health listen port (GRPC_PORT)")
	flags.String("status-mode", "", "failure status mapping: legacy or differentiated (STATUS_MODE)")
	flags.String("log-level", "", "debug, info, warn or error (LOG_LEVEL)")
	flags.String("log-format", "", "text or json (LOG_FORMAT)")

	for key, flag := range map[string]string{
		"port":        "port",
		"grpc_port":   "grpc-port",
		"status_mode": "status-mode",
		"log_level":   "log-level",
		"log_format":  "log-format",
	} {
		// Binding never fails for a flag defined above.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	app, err := bootstrap.New(cfg, os.Stderr)
	if err != nil {
		return err
	}
	log := app.Logger

	httpLis, err := net.Listen("tcp", ":"+cfg.HTTPPort)
	if err != nil {
		return fmt.Errorf("failed to listen on HTTP port %s: %w", cfg.HTTPPort, err)
	}
	grpcLis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		httpLis.Close()
		return fmt.Errorf("failed to listen on gRPC port %s: %w", cfg.GRPCPort, err)
	}

	srv := &http.Server{
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	hs := health.New()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", "addr", httpLis.Addr().String(), "status_mode", cfg.StatusMode)
		if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("gRPC health server listening", "addr", grpcLis.Addr().String())
		return hs.Serve(grpcLis)
	})
	hs.SetServing(true)

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		hs.SetServing(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		hs.GracefulStop()
		if err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server exited gracefully")
	return nil
}
