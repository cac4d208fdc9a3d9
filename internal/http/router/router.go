package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pocketledger/actions-api/internal/auth"
	"github.com/pocketledger/actions-api/internal/cache"
	"github.com/pocketledger/actions-api/internal/config"
	"github.com/pocketledger/actions-api/internal/database"
	"github.com/pocketledger/actions-api/internal/http/handler"
	"github.com/pocketledger/actions-api/internal/http/middleware"
	"github.com/pocketledger/actions-api/internal/metrics"
	"github.com/pocketledger/actions-api/internal/upstream"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/pocketledger/actions-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	db                 *gorm.DB
	client             *upstream.Client
	cacheStore         cache.Store
	authMiddleware     *auth.Middleware
	rateLimiter        *middleware.RateLimiter
	accountHandler     *handler.AccountHandler
	accountTypeHandler *handler.AccountTypeHandler
	budgetHandler      *handler.BudgetHandler
	couponHandler      *handler.CouponHandler
	messageHandler     *handler.MessageHandler
	webhookHandler     *handler.WebhookHandler
	currencyHandler    *handler.CurrencyHandler
	authHandler        *handler.AuthHandler
	journalHandler     *handler.JournalHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	client *upstream.Client,
	cacheStore cache.Store,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	accountHandler *handler.AccountHandler,
	accountTypeHandler *handler.AccountTypeHandler,
	budgetHandler *handler.BudgetHandler,
	couponHandler *handler.CouponHandler,
	messageHandler *handler.MessageHandler,
	webhookHandler *handler.WebhookHandler,
	currencyHandler *handler.CurrencyHandler,
	authHandler *handler.AuthHandler,
	journalHandler *handler.JournalHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		db:                 db,
		client:             client,
		cacheStore:         cacheStore,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		accountHandler:     accountHandler,
		accountTypeHandler: accountTypeHandler,
		budgetHandler:      budgetHandler,
		couponHandler:      couponHandler,
		messageHandler:     messageHandler,
		webhookHandler:     webhookHandler,
		currencyHandler:    currencyHandler,
		authHandler:        authHandler,
		journalHandler:     journalHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	if rt.cfg.Server.EnableMetrics {
		r.Use(metrics.InstrumentHandler)
	}

	// Basic liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Core API reachability
	r.Get("/health/upstream", func(w http.ResponseWriter, r *http.Request) {
		status := rt.client.HealthCheck(r.Context())
		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(status)
	})

	// Cache backend reachability
	r.Get("/health/cache", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := rt.cacheStore.Healthy(r.Context()); err != nil {
			rt.logger.Error("Cache health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "cache",
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "cache",
		})
	})

	// Journal database readiness with pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{"status": "healthy"}
		}

		if err := rt.cacheStore.Healthy(r.Context()); err != nil {
			checks["cache"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["cache"] = map[string]interface{}{"status": "healthy"}
		}

		if status := rt.client.HealthCheck(r.Context()); status.Status != "healthy" {
			checks["upstream"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  status.Error,
			}
			allHealthy = false
		} else {
			checks["upstream"] = map[string]interface{}{"status": "healthy"}
		}

		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		code := http.StatusOK
		if !allHealthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	// Prometheus metrics
	if rt.cfg.Server.EnableMetrics {
		r.Get("/metrics", metrics.Handler().ServeHTTP)
	}

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Token endpoints (no auth required)
		r.Post("/auth/jwt/create", rt.authHandler.CreateToken)
		r.Post("/auth/jwt/refresh", rt.authHandler.RefreshToken)
		r.Post("/auth/jwt/verify", rt.authHandler.VerifyToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			// Account types (read-only catalog)
			r.Route("/account-types", func(r chi.Router) {
				r.Get("/", rt.accountTypeHandler.ListAccountTypes)
				r.Get("/{id}", rt.accountTypeHandler.GetAccountType)
			})

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", rt.accountHandler.ListAccounts)
				r.Post("/", rt.accountHandler.CreateAccount)
				r.Get("/{id}", rt.accountHandler.GetAccount)
				r.Put("/{id}", rt.accountHandler.UpdateAccount)
				r.Patch("/{id}", rt.accountHandler.PatchAccount)
				r.Delete("/{id}", rt.accountHandler.DeleteAccount)
			})

			// Budgets
			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", rt.budgetHandler.ListBudgets)
				r.Post("/", rt.budgetHandler.CreateBudget)
				r.Get("/{id}", rt.budgetHandler.GetBudget)
				r.Put("/{id}", rt.budgetHandler.UpdateBudget)
				r.Patch("/{id}", rt.budgetHandler.PatchBudget)
				r.Delete("/{id}", rt.budgetHandler.DeleteBudget)
			})

			// Coupons
			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", rt.couponHandler.ListCoupons)
				r.Post("/", rt.couponHandler.CreateCoupon)
				r.Get("/{id}", rt.couponHandler.GetCoupon)
				r.Delete("/{id}", rt.couponHandler.DeleteCoupon)
				r.Post("/{id}/apply", rt.couponHandler.ApplyCoupon)
			})

			// Messages
			r.Route("/messages", func(r chi.Router) {
				r.Get("/", rt.messageHandler.ListMessages)
				r.Post("/", rt.messageHandler.CreateMessage)
				r.Get("/{id}", rt.messageHandler.GetMessage)
				r.Delete("/{id}", rt.messageHandler.DeleteMessage)
				r.Post("/{id}/attachment", rt.messageHandler.AttachFile)
			})

			// Webhooks
			r.Route("/webhooks", func(r chi.Router) {
				r.Get("/", rt.webhookHandler.ListWebhooks)
				r.Post("/", rt.webhookHandler.CreateWebhook)
				r.Get("/{id}", rt.webhookHandler.GetWebhook)
				r.Put("/{id}", rt.webhookHandler.UpdateWebhook)
				r.Delete("/{id}", rt.webhookHandler.DeleteWebhook)
				r.Get("/{id}/deliveries", rt.webhookHandler.ListDeliveries)
				r.Post("/{id}/deliveries/{deliveryId}/retry", rt.webhookHandler.RetryDelivery)
			})

			// Currencies (read-only catalog)
			r.Route("/currencies", func(r chi.Router) {
				r.Get("/", rt.currencyHandler.ListCurrencies)
				r.Get("/{code}", rt.currencyHandler.GetCurrency)
			})

			// Action journal (admin only)
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/journal/records", rt.journalHandler.ListRecords)
			})
		})
	})

	return r
}
