package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskul/jobly/config"
	httpx "github.com/taskul/jobly/internal/http"
	"golang.org/x/sync/errgroup"
)

// BuildHTTPHandler builds the API handler. Order: Recover -> Logging -> Router.
func BuildHTTPHandler(cfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) http.Handler {
	router := httpx.NewRouter(httpx.RouterServices{
		Jobs:         services.Jobs,
		Companies:    services.Companies,
		Users:        services.Users,
		Auth:         services.Auth,
		HealthChecks: services.HealthChecks,
		CookieDomain: cfg.HTTP.CookieDomain,
		Logger:       logger,
	})

	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)
	return h
}

// NewHTTPServer creates the HTTP server with the configured timeouts.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	addr := cfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// ServeConfig contains dependencies for RunHTTPServer.
type ServeConfig struct {
	Server *http.Server
	HTTP   config.HTTPConfig
	Logger *slog.Logger
}

// RunHTTPServer serves until ctx is canceled, then shuts the server down gracefully.
// It returns the first listen or shutdown error.
func RunHTTPServer(ctx context.Context, cfg ServeConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "starting HTTP server", "addr", cfg.Server.Addr)
		if err := cfg.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutting down HTTP server")

		// The parent context is already done; shutdown gets its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.InfoContext(ctx, "HTTP server stopped")
		return nil
	})
	return g.Wait()
}
