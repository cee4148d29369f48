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

	httpapi "github.com/Kareem09qyu/Okta/internal/storefront/http"
	"github.com/Kareem09qyu/Okta/internal/storefront/service"
	"github.com/Kareem09qyu/Okta/internal/storefront/store"
	"github.com/Kareem09qyu/Okta/internal/storefront/store/drivers/postgres"
	"github.com/Kareem09qyu/Okta/internal/storefront/store/drivers/sqlite"
	"github.com/Kareem09qyu/Okta/pkg/cryptox"
	"github.com/Kareem09qyu/Okta/pkg/httpx"
	"github.com/Kareem09qyu/Okta/pkg/jwtx"
	"github.com/Kareem09qyu/Okta/pkg/session"
	"github.com/Kareem09qyu/Okta/pkg/slogx"
	"github.com/Kareem09qyu/Okta/pkg/totpx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the storefront service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	sessions  *session.Issuer
	challenge *session.Challenge

	authService    *service.AuthService
	catalogService *service.CatalogService
	cartService    *service.CartService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialised.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "storefront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if _, err := cryptox.Pepper(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, mostly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("storefront starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
		"session_codec", app.cfg.SessionCodec,
	)

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

// Shutdown drains the HTTP server and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down storefront...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("storefront stopped")
	return nil
}

// initDatabase opens the configured driver and applies its migrations.
func (app *Application) initDatabase() error {
	var (
		db      store.Store
		migrate func() error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		pg, err := postgres.NewStore(app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, migrate = pg, pg.ApplyMigrations
	default:
		lite, err := sqlite.NewStore("file:" + app.cfg.DatabaseFile)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, migrate = lite, lite.ApplyMigrations
	}
	app.db = db

	if err := migrate(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initSessions builds the session cookie issuer and the pending second-factor
// challenge. The challenge is always signed, so the key is loaded even when
// sessions use the plain codec.
func (app *Application) initSessions() error {
	key, err := cryptox.LoadOrCreateKey(app.cfg.SessionKeyFile, cryptox.KeySize)
	if err != nil {
		return fmt.Errorf("failed to load session key: %w", err)
	}
	secure := app.cfg.SecureCookies()

	var codec session.Codec = session.PlainCodec{}
	if app.cfg.SessionCodec == CodecJWT {
		jwtCodec, err := session.NewJWTCodec(key, app.cfg.Issuer, jwtx.PurposeSession, session.DefaultMaxAge)
		if err != nil {
			return fmt.Errorf("failed to build session codec: %w", err)
		}
		codec = jwtCodec
	}
	app.sessions = session.NewIssuer(codec, secure)

	app.challenge, err = session.NewChallenge(key, app.cfg.Issuer, secure)
	return err
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		TOTP:   &totpx.Engine{Issuer: app.cfg.Issuer},
		Window: app.cfg.TOTPWindow,
	}
	app.catalogService = &service.CatalogService{Store: app.db}
	app.cartService = &service.CartService{Store: app.db}
}

func (app *Application) initHTTP() {
	limits := httpapi.Limits{
		Credential: httpx.RateLimitFromEnv("CREDENTIAL", httpx.CredentialLimit),
		Account:    httpx.RateLimitFromEnv("ACCOUNT", httpx.AccountLimit),
		Browse:     httpx.RateLimitFromEnv("BROWSE", httpx.BrowseLimit),
	}

	router := httpapi.NewRouter(BuildVersion, app.db, app.sessions, app.challenge, limits, app.logger)
	router.AuthService = app.authService
	router.CatalogService = app.catalogService
	router.CartService = app.cartService
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
