package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/pairlink/internal/pairlink/http"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store/drivers/memory"
	"github.com/aussiebroadwan/pairlink/pkg/linktoken"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the pairlink service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	store *memory.Store
	codec *linktoken.Codec

	// Services
	tokenService        *service.TokenService
	pairingService      *service.PairingService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "pairlink",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.initStore()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("pairlink service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.store.Close()
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
	app.logger.Info("shutting down pairlink service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	// Claims are not persisted; anything still pending is dropped here.
	if err := app.store.Close(); err != nil {
		app.logger.Error("error closing claim store", "error", err)
		return err
	}

	app.logger.Info("pairlink service stopped")
	return nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

func (app *Application) initStore() {
	app.store = memory.NewStore(memory.Options{ClaimTTL: app.cfg.ClaimTTL})
	app.logger.Info("claim store ready", "claim_ttl", app.cfg.ClaimTTL)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.codec = linktoken.New([]byte(app.cfg.LinkSecret), linktoken.WithDefaultTTL(app.cfg.TokenTTL))
	if !app.codec.Configured() {
		app.logger.Warn("LINK_SECRET is not set: /token and /verify will answer no_secret until it is configured")
	}
	if app.cfg.CallbackSecret == "" {
		app.logger.Warn("PAIR_CALLBACK_AUTH is not set: /pair-claim accepts unauthenticated callers")
	}

	app.tokenService = &service.TokenService{Codec: app.codec}
	app.pairingService = &service.PairingService{Store: app.store}
	app.housekeepingService = service.NewHousekeepingService(
		app.store,
		app.logger,
		app.cfg.SweepInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.cfg.CallbackSecret,
		app.store,
		app.logger,
	)

	router.TokenService = app.tokenService
	router.PairingService = app.pairingService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
