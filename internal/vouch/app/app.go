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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/aussiebroadwan/vouch/internal/vouch/http"
	"github.com/aussiebroadwan/vouch/internal/vouch/metrics"
	"github.com/aussiebroadwan/vouch/internal/vouch/service"
	"github.com/aussiebroadwan/vouch/internal/vouch/store"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/postgres"
	"github.com/aussiebroadwan/vouch/internal/vouch/store/drivers/sqlite"
	"github.com/aussiebroadwan/vouch/pkg/cryptox"
	"github.com/aussiebroadwan/vouch/pkg/jwtx"
	"github.com/aussiebroadwan/vouch/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	// Audience is the aud claim of every session token.
	Audience = "vouch-api"
)

// Application owns the process: store, keys, services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics
	issuer     service.TokenIssuer

	accountService    *service.AccountService
	mfaService        *service.MFAService
	employerService   *service.EmployerService
	credentialService *service.CredentialService
	profileService    *service.ProfileService
	reconcileService  *service.ReconcileService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	ConfigureSecrets(cfg, app.logger)

	db, err := OpenStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	keyManager, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: []string{Audience},
		KeyPath:  cfg.SigningKeyFile,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = keyManager
	if cfg.SigningKeyFile == "" {
		app.logger.Warn("session signing key is in memory; sessions end on restart")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(reg)

	tokenIssuer, err := newTokenIssuer(context.Background(), cfg, app.logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.issuer = tokenIssuer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "vouch",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// ConfigureSecrets points the password pepper and the wallet sealing key
// at their files.
func ConfigureSecrets(cfg Config, logger *slog.Logger) {
	cryptox.SetPepperPath(cfg.PepperFile)
	if cfg.MasterKeyPath != "" {
		cryptox.SetMasterKeyPath(cfg.MasterKeyPath)
		logger.Info("master key path configured", "path", cfg.MasterKeyPath)
	}
}

// OpenStore connects the configured driver and applies migrations.
func OpenStore(cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(cfg.DatabaseFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return db, nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:      app.db,
		Signer:     app.keyManager.Signer,
		Issuer:     app.cfg.Issuer,
		Audience:   []string{Audience},
		SessionTTL: app.cfg.SessionTTL,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.Issuer,
	}
	app.employerService = &service.EmployerService{
		Store:             app.db,
		ProvisioningToken: app.cfg.ProvisioningToken,
	}
	app.credentialService = &service.CredentialService{
		Store:       app.db,
		Issuer:      app.issuer,
		Metrics:     app.metrics,
		MintTimeout: app.cfg.MintTimeout,
	}
	app.profileService = &service.ProfileService{Store: app.db}

	app.reconcileService = service.NewReconcileService(
		app.db,
		app.logger,
		app.metrics,
		app.cfg.ReconcileEvery,
		app.cfg.StaleAfter,
	)

	if app.cfg.ProvisioningToken == "" {
		app.logger.Info("employer provisioning endpoint disabled")
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	router.AccountService = app.accountService
	router.MFAService = app.mfaService
	router.EmployerService = app.employerService
	router.CredentialService = app.credentialService
	router.ProfileService = app.profileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Serve(ctx)
}

// Serve starts the reconciler and the HTTP server and blocks until ctx is
// done or the server fails.
func (app *Application) Serve(ctx context.Context) error {
	app.reconcileService.Start()

	app.logger.Info("vouch starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"mint_backend", app.cfg.MintBackend,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested")
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down vouch...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.reconcileService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("vouch stopped")
	return nil
}

// Handler exposes the routed HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}
