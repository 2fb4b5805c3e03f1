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

	httpapi "github.com/nimbusott/access-bridge/internal/bridge/http"
	"github.com/nimbusott/access-bridge/internal/bridge/service"
	"github.com/nimbusott/access-bridge/internal/bridge/upstream"
	"github.com/nimbusott/access-bridge/pkg/slogx"
	"github.com/nimbusott/access-bridge/pkg/urlsign"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the access-bridge service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	signer *urlsign.Signer

	// Services
	identityService *service.IdentityService
	plansService    *service.PlansService
	passportService *service.PassportService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "access-bridge",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// A missing signing secret is a startup fault, not a runtime one.
	signer, err := urlsign.New([]byte(cfg.APISecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize request signer: %w", err)
	}
	app.signer = signer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("access bridge starting",
		"addr", app.cfg.BindAddr,
		"port", app.cfg.Port,
		"site_id", app.cfg.SiteID,
		"version", BuildVersion,
	)

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

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down access bridge...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
			return err
		}
	}

	app.logger.Info("access bridge stopped")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.identityService = &service.IdentityService{
		Identity: upstream.NewIdentityClient(app.cfg.IdentityHost),
	}
	app.plansService = &service.PlansService{
		Entitlements: upstream.NewEntitlementsClient(app.cfg.EntitlementHost, app.cfg.SiteID),
	}
	app.passportService = &service.PassportService{
		Identity: app.identityService,
		Plans:    app.plansService,
		AccessControl: upstream.NewAccessControlClient(
			app.cfg.AccessControlHost,
			app.cfg.SiteID,
			app.signer,
		),
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.cfg.SiteID, BuildVersion, app.signer, app.logger)

	// Wire services to router
	router.PassportService = app.passportService
	router.PlansService = app.plansService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", app.cfg.BindAddr, app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
