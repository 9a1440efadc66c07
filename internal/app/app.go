// Package app wires configuration, clients, and services into a running
// HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/darksuryansh/PricePilot/internal/backend"
	"github.com/darksuryansh/PricePilot/internal/config"
	handlerhttp "github.com/darksuryansh/PricePilot/internal/handler/http"
	"github.com/darksuryansh/PricePilot/internal/service"
	"github.com/darksuryansh/PricePilot/pkg/health"
	"github.com/darksuryansh/PricePilot/pkg/httpclient"
	"github.com/darksuryansh/PricePilot/pkg/tracing"
)

// App wires together all dependencies and runs the view server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// New creates the application: tracer, backend client with breaker,
// services, router, HTTP server.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  "pricepilot",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
		Enabled:      cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	client := NewBackendClient(cfg, logger)
	products := service.NewProductService(client, logger, cfg.EnrichTimeout)

	healthHandler := health.NewHandler()
	healthHandler.Register("backend", func(ctx context.Context) error {
		status, err := client.Health(ctx)
		if err != nil {
			return err
		}
		if status.Status != "" && status.Status != "ok" && status.Status != "healthy" {
			return fmt.Errorf("backend reports %q", status.Status)
		}
		return nil
	})

	handler := handlerhttp.NewHandler(products, logger)
	router := handlerhttp.NewRouter(handler, healthHandler, cfg.CORSAllowedOrigins, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second, // scrapes are slow
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// NewBackendClient builds the shared backend API client: pooled HTTP with
// retries, a named circuit breaker, and the scrape rate limiter.
func NewBackendClient(cfg *config.Config, logger *slog.Logger) *backend.Client {
	hc := httpclient.NewWithBreaker(
		httpclient.Config{
			Timeout:         cfg.BackendTimeout,
			MaxRetries:      cfg.BackendMaxRetries,
			RetryWaitMin:    time.Second,
			RetryWaitMax:    5 * time.Second,
			MaxConnsPerHost: 100,
		},
		httpclient.DefaultBreakerConfig("shopping-backend"),
		logger,
	)
	limiter := rate.NewLimiter(rate.Limit(cfg.ScrapeRPS), cfg.ScrapeBurst)
	return backend.New(cfg.BackendURL, hc, limiter, logger)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("backend", a.cfg.BackendURL),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown drains in-flight requests, then flushes the tracer so their
// spans are captured.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
