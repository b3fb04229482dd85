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

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/folio/internal/portfolio/cache"
	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/github"
	httpapi "github.com/aussiebroadwan/folio/internal/portfolio/http"
	"github.com/aussiebroadwan/folio/internal/portfolio/mail"
	"github.com/aussiebroadwan/folio/internal/portfolio/media"
	"github.com/aussiebroadwan/folio/internal/portfolio/service"
	"github.com/aussiebroadwan/folio/internal/portfolio/store"
	"github.com/aussiebroadwan/folio/internal/portfolio/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the portfolio service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	hasher  cryptox.Hasher
	media   media.Store
	cache   cache.Portfolio
	redis   *redis.Client
	metrics *httpx.Metrics

	accessSigner    *jwtx.HS256Signer
	refreshSigner   *jwtx.HS256Signer
	accessVerifier  *jwtx.HS256Verifier
	refreshVerifier *jwtx.HS256Verifier

	// Services
	authService         *service.AuthService
	userService         *service.UserService
	bootstrapService    *service.BootstrapService
	portfolioService    *service.PortfolioService
	contactService      *service.ContactService
	resourceServices    []*service.ResourceService
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
			Service: "folio",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: httpx.NewMetrics("folio"),
	}

	pepper, err := cryptox.LoadOrCreatePepper(cfg.PepperFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.Hasher{Pepper: pepper}

	if err := app.initTokens(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initMedia(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initCache()

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("folio starting", "port", app.cfg.Port, "version", BuildVersion, "config", app.cfg.String())

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down folio...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("folio stopped")
	return nil
}

func (app *Application) initTokens() error {
	var err error
	if app.accessSigner, err = jwtx.NewSignerHS256(app.cfg.AccessTokenSecret); err != nil {
		return fmt.Errorf("ACCESS_TOKEN_SECRET: %w", err)
	}
	if app.refreshSigner, err = jwtx.NewSignerHS256(app.cfg.RefreshTokenSecret); err != nil {
		return fmt.Errorf("REFRESH_TOKEN_SECRET: %w", err)
	}
	app.accessVerifier = jwtx.NewVerifierHS256(app.cfg.AccessTokenSecret, app.cfg.Issuer)
	app.refreshVerifier = jwtx.NewVerifierHS256(app.cfg.RefreshTokenSecret, app.cfg.Issuer)
	return nil
}

// initDatabase initializes the database and applies migrations
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

func (app *Application) initMedia(ctx context.Context) error {
	if app.cfg.S3.Bucket == "" {
		app.logger.Warn("S3_BUCKET not set, file uploads disabled")
		app.media = media.Disabled{}
		return nil
	}

	s3Store, err := media.NewS3(ctx, app.cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	app.media = s3Store
	app.logger.Info("object storage enabled", "bucket", app.cfg.S3.Bucket)
	return nil
}

func (app *Application) initCache() {
	if app.cfg.Redis.Addr == "" {
		app.cache = cache.Noop{}
		return
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.cfg.Redis.Addr,
		Password: app.cfg.Redis.Password,
		DB:       app.cfg.Redis.DB,
	})
	app.cache = cache.NewRedis(app.redis, app.cfg.Redis.TTL, app.logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := app.cache.Ping(ctx); err != nil {
		app.logger.Warn("redis unreachable at startup, serving uncached", "addr", app.cfg.Redis.Addr, "error", err)
	} else {
		app.logger.Info("portfolio cache enabled", "addr", app.cfg.Redis.Addr, "ttl", app.cfg.Redis.TTL)
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:           app.db,
		Hasher:          app.hasher,
		AccessSigner:    app.accessSigner,
		RefreshSigner:   app.refreshSigner,
		RefreshVerifier: app.refreshVerifier,
		Issuer:          app.cfg.Issuer,
		AccessTTL:       app.cfg.AccessTokenExpiry,
		RefreshTTL:      app.cfg.RefreshTokenExpiry,
	}

	app.userService = &service.UserService{Store: app.db, Media: app.media, Cache: app.cache}
	app.bootstrapService = &service.BootstrapService{
		Store:  app.db,
		Hasher: app.hasher,
		Token:  app.cfg.BootstrapToken,
	}
	app.portfolioService = &service.PortfolioService{Store: app.db, Cache: app.cache}

	var sender mail.Sender = mail.NewRelay(mail.Config{
		APIURL: app.cfg.MailAPIURL,
		APIKey: app.cfg.MailAPIKey,
		From:   app.cfg.MailFrom,
		To:     app.cfg.MailTo,
	}, nil)
	app.contactService = &service.ContactService{Sender: sender}

	for _, schema := range domain.Collections {
		app.resourceServices = append(app.resourceServices, &service.ResourceService{
			Schema: schema,
			Store:  app.db,
			Media:  app.media,
			Cache:  app.cache,
		})
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.accessVerifier,
		BuildVersion,
		app.cfg.CORSOrigin,
		app.db,
		app.cache,
		app.cfg.RateLimits,
		app.metrics,
		app.logger,
	)

	router.Cookies = httpapi.CookieConfig{
		Secure:   app.cfg.CookieSecure,
		SameSite: app.cfg.CookieSameSite,
	}
	router.AuthService = app.authService
	router.UserService = app.userService
	router.BootstrapService = app.bootstrapService
	router.PortfolioService = app.portfolioService
	router.ContactService = app.contactService
	router.Resources = app.resourceServices
	router.GitHub = github.NewClient(app.cfg.GitHubAPIURL, app.cfg.GitHubToken, nil)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
