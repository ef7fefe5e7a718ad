package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/harbourfit/coachd/internal/coach/http"
	"github.com/harbourfit/coachd/internal/coach/identity"
	"github.com/harbourfit/coachd/internal/coach/metrics"
	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/internal/coach/store/drivers/sqlite"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the coaching service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	verifier *identity.GoogleVerifier
	registry *prometheus.Registry
	metrics  *metrics.Collector

	inviteService       *service.InviteService
	accountService      *service.AccountService
	sessionService      *service.SessionService
	rolesService        *service.RolesService
	clientsService      *service.ClientsService
	programService      *service.ProgramService
	exerciseService     *service.ExerciseService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "coachd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	verifier, err := identity.NewGoogleVerifier(identity.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
	})
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize google verifier: %w", err)
	}
	app.verifier = verifier

	app.initMetrics()
	app.initServices()

	// The first admin enters via config, not via any request flow.
	if cfg.AdminEmail != "" {
		if err := app.accountService.EnsureAdmin(context.Background(), cfg.AdminEmail); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to provision admin: %w", err)
		}
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("coachd starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down coachd...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()
	app.Close()

	app.logger.Info("coachd stopped")
	return nil
}

// Close releases resources without touching the HTTP server. Used on failed
// startup and at the end of Shutdown.
func (app *Application) Close() {
	if app.verifier != nil {
		app.verifier.Close()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
		}
	}
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)
}

func (app *Application) initServices() {
	app.inviteService = &service.InviteService{Store: app.db}
	app.accountService = &service.AccountService{Store: app.db}
	app.sessionService = &service.SessionService{
		Store: app.db,
		TTL:   app.cfg.SessionTTL,
	}
	app.rolesService = &service.RolesService{Store: app.db}
	app.clientsService = &service.ClientsService{Store: app.db}
	app.programService = &service.ProgramService{Store: app.db}
	app.exerciseService = &service.ExerciseService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(
		app.verifier,
		app.db,
		app.metrics,
		app.registry,
		BuildVersion,
		app.cfg.SecureCookies,
		app.logger,
	)
	app.router.InviteService = app.inviteService
	app.router.AccountService = app.accountService
	app.router.SessionService = app.sessionService
	app.router.RolesService = app.rolesService
	app.router.ClientsService = app.clientsService
	app.router.ProgramService = app.programService
	app.router.ExerciseService = app.exerciseService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
