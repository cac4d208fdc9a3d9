package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketledger/actions-api/docs"
	"github.com/pocketledger/actions-api/internal/action"
	"github.com/pocketledger/actions-api/internal/auth"
	"github.com/pocketledger/actions-api/internal/cache"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/database"
	"github.com/pocketledger/actions-api/internal/http/handler"
	"github.com/pocketledger/actions-api/internal/http/middleware"
	"github.com/pocketledger/actions-api/internal/http/router"
	"github.com/pocketledger/actions-api/internal/jobs"
	"github.com/pocketledger/actions-api/internal/journal"
	"github.com/pocketledger/actions-api/internal/logger"
	"github.com/pocketledger/actions-api/internal/storage"
	"github.com/pocketledger/actions-api/internal/upstream"
	"go.uber.org/zap"
)

// @title Pocketledger Actions API
// @version 1.0
// @description Action gateway for the Pocketledger core API: validated, cached and journaled resource operations

// @contact.name API Support
// @contact.email support@pocketledger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "actions-staging.pocketledger.io"
	case "production":
		docs.SwaggerInfo.Host = "actions.pocketledger.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to the journal database
	db, err := database.NewDatabase(&cfg.Journal)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Core API client
	client, err := upstream.NewClient(&cfg.Upstream, log)
	if err != nil {
		return fmt.Errorf("failed to create upstream client: %w", err)
	}
	log.Info("Upstream client initialized", zap.String("base_url", cfg.Upstream.BaseURL))

	// Response cache
	cacheStore, err := cache.NewStore(&cfg.Cache, log)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	log.Info("Cache initialized", zap.String("mode", cfg.Cache.Mode))

	// Attachment storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Action journal
	journalRepo := journal.NewRepository(db)
	journalService := journal.NewService(journalRepo, log)

	// Action runner
	actions := action.NewRunner(cfg, client, cacheStore, journalService, fileStorage, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	accountHandler := handler.NewAccountHandler(actions, log)
	accountTypeHandler := handler.NewAccountTypeHandler(actions, log)
	budgetHandler := handler.NewBudgetHandler(actions, log)
	couponHandler := handler.NewCouponHandler(actions, log)
	messageHandler := handler.NewMessageHandler(actions, cfg.Storage.MaxUploadSizeMB, log)
	webhookHandler := handler.NewWebhookHandler(actions, log)
	currencyHandler := handler.NewCurrencyHandler(actions, log)
	authHandler := handler.NewAuthHandler(actions, log)
	journalHandler := handler.NewJournalHandler(journalService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		client,
		cacheStore,
		authMiddleware,
		rateLimiter,
		accountHandler,
		accountTypeHandler,
		budgetHandler,
		couponHandler,
		messageHandler,
		webhookHandler,
		currencyHandler,
		authHandler,
		journalHandler,
	)

	// Background jobs
	scheduler := jobs.NewScheduler(log)
	if err := jobs.RegisterWebhookRetryJob(scheduler, actions, log, &cfg.Jobs); err != nil {
		return fmt.Errorf("failed to register webhook retry job: %w", err)
	}
	if err := jobs.RegisterCurrencyRefreshJob(scheduler, actions, log, &cfg.Jobs); err != nil {
		return fmt.Errorf("failed to register currency refresh job: %w", err)
	}
	if err := jobs.RegisterJournalPruneJob(scheduler, journalService, log, cfg); err != nil {
		return fmt.Errorf("failed to register journal prune job: %w", err)
	}
	if err := jobs.RegisterCacheSweepJob(scheduler, cacheStore, log); err != nil {
		return fmt.Errorf("failed to register cache sweep job: %w", err)
	}
	scheduler.Start()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if closer, ok := cacheStore.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Warn("Error closing cache store", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
