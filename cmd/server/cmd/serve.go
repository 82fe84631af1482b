package cmd

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

	"github.com/spf13/cobra"

	"eventsapi/config"
	_ "eventsapi/docs"
	"eventsapi/internal/adapters/auth"
	"eventsapi/internal/adapters/email"
	"eventsapi/internal/adapters/tokenstore"
	httpapi "eventsapi/internal/delivery/http"
	"eventsapi/internal/delivery/http/controllers"
	"eventsapi/internal/domain"
	"eventsapi/internal/metrics"
	"eventsapi/internal/repository/postgres"
	"eventsapi/internal/services"
)

// Server flags (override config/env)
var serverPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (and .env outside production)
- Apply database migrations unless RUN_MIGRATIONS=false
- Create the configured admin and user accounts when missing
- Handle graceful shutdown on SIGINT/SIGTERM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverPort, "port", "", "server port (default: PORT or 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverPort != "" {
		cfg.Port = serverPort
	}

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting events api", "version", Version, "env", cfg.Environment)
	metrics.SetAppInfo(Version, GitCommit)

	if cfg.Database.RunMigrations {
		if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	openCtx, openCancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := postgres.Open(openCtx, cfg.Database.URL, postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	openCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	collectorCtx, collectorCancel := context.WithCancel(context.Background())
	defer collectorCancel()
	go metrics.NewDBCollector(db).Start(collectorCtx, 15*time.Second)

	store, closeStore, err := newTokenStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("token store close error", "err", err)
		}
	}()

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	// Adapters
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)

	// Services
	emailService := services.NewEmailService(mailer, renderer, logger)
	accountService := services.NewAccountService(accountRepo, hasher, emailService, logger, cfg.Email.LoginURL, cfg.ContextTimeout)
	eventService := services.NewEventService(eventRepo, cfg.ContextTimeout)
	authService := services.NewAuthService(accountRepo, hasher, tokens, tokens, store,
		services.TokenTTLs{Access: cfg.Auth.AccessTokenTTL, Refresh: cfg.Auth.RefreshTokenTTL},
		cfg.ContextTimeout)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = accountService.SeedAccounts(seedCtx, cfg.Seeds())
	seedCancel()
	if err != nil {
		logger.Error("account seeding failed", "err", err)
	}

	mux := httpapi.NewRouter(httpapi.Controllers{
		Index:    controllers.NewIndexController(),
		Events:   controllers.NewEventController(logger, eventService),
		Auth:     controllers.NewAuthController(logger, authService, controllers.ClientCredentials{ID: cfg.Auth.ClientID, Secret: cfg.Auth.ClientSecret}),
		Accounts: controllers.NewAccountController(logger, accountService),
		Health:   controllers.NewHealthController(logger, db),
	}, authService, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewHandler(mux, logger, cfg.CORSOrigins, cfg.TrustedProxies),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	return waitForShutdown(server, logger, stop, serveErr)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newTokenStore(cfg *config.Config) (domain.TokenStore, func() error, error) {
	if cfg.TokenStore.Driver != "redis" {
		return tokenstore.NewMemoryStore(), func() error { return nil }, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, closeFn, err := tokenstore.NewRedisStore(ctx, tokenstore.RedisConfig{
		Addr:     cfg.TokenStore.RedisAddr,
		Password: cfg.TokenStore.RedisPassword,
		DB:       cfg.TokenStore.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("redis token store: %w", err)
	}
	return store, closeFn, nil
}

// waitForShutdown blocks until a stop signal arrives or the listener fails. A listener
// failure is returned so the process exits non-zero instead of idling without a port.
func waitForShutdown(server *http.Server, logger *slog.Logger, stop <-chan os.Signal, serveErr <-chan error) error {
	select {
	case err := <-serveErr:
		logger.Error("http server error", "err", err)
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
