package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/intakeworks/authrelay/internal/relay/http"
	"github.com/intakeworks/authrelay/internal/relay/provider"
	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/internal/relay/store"
	"github.com/intakeworks/authrelay/pkg/jwtx"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth relay with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	keys     *jwtx.RemoteKeySet
	provider *provider.Client
	results  *store.ResultStore

	// Services
	authService *service.AuthService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-relay",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	endpoints, err := provider.ResolveEndpoints(cfg.AuthServerURL, cfg.Realm)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider endpoints: %w", err)
	}
	app.logger.Info("provider endpoints resolved", "issuer", endpoints.Issuer)

	app.keys = jwtx.NewRemoteKeySet(endpoints.JWKS, cfg.JWKSCacheTTL, nil)
	app.provider = provider.NewClient(endpoints, cfg.ClientID, cfg.ClientSecret, cfg.RedirectURI, cfg.ProviderTimeout)
	app.results = store.NewResultStore(cfg.ResultTTL, app.logger)

	app.initServices(endpoints)
	app.initHTTP(endpoints)

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start the result store sweep
	app.results.Start()

	// Warm the key cache so the first callback does not pay the JWKS fetch.
	// Failure is not fatal: the provider may simply not be up yet.
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ProviderTimeout)
	if err := app.keys.Refresh(ctx); err != nil {
		app.logger.Warn("initial JWKS fetch failed, will retry on demand", "error", err)
	}
	cancel()

	app.logger.Info("auth relay starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth relay...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the result store sweep
	app.results.Stop()

	app.logger.Info("auth relay stopped")
	return nil
}

// initServices initializes the business logic services
func (app *Application) initServices(endpoints provider.Endpoints) {
	app.authService = &service.AuthService{
		Provider: app.provider,
		States:   jwtx.NewStateCodec([]byte(app.cfg.StateSecret), app.cfg.ClientID),
		IDTokens: jwtx.NewVerifierRS256(app.keys, endpoints.Issuer, []string{app.cfg.ClientID}),
		Results:  app.results,

		FrontendURL:           app.cfg.FrontendURL,
		PostLogoutRedirectURI: app.cfg.PostLogoutRedirectURI,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP(endpoints provider.Endpoints) {
	// API bearer tokens are provider access tokens; unlike ID tokens their
	// audience varies by provider configuration, so only issuer is pinned.
	verifier := jwtx.NewVerifierRS256(app.keys, endpoints.Issuer, nil)

	router := httpapi.NewRouter(
		app.keys,
		verifier,
		BuildVersion,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.Results = app.results
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
