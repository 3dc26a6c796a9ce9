package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/frontdesk-api/docs" // Swagger docs
	"github.com/sjperalta/frontdesk-api/internal/clock"
	"github.com/sjperalta/frontdesk-api/internal/config"
	"github.com/sjperalta/frontdesk-api/internal/database"
	"github.com/sjperalta/frontdesk-api/internal/handlers"
	"github.com/sjperalta/frontdesk-api/internal/jobs"
	"github.com/sjperalta/frontdesk-api/internal/metrics"
	"github.com/sjperalta/frontdesk-api/internal/middleware"
	"github.com/sjperalta/frontdesk-api/internal/repository"
	"github.com/sjperalta/frontdesk-api/internal/services"
	"github.com/sjperalta/frontdesk-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Front Desk Ledger API
// @version 1.0
// @description Bill generation, splitting and settlement for hotel folios

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if !cfg.EmailEnabled() {
		logger.Warn("Settlement receipt emails disabled: RESEND_API_KEY or FROM_EMAIL not set")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs, err := services.NewServices(repos, worker, cfg, db, metrics.NewLedgerMetrics(nil), clock.New())
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	scheduleJobs(worker, svcs, cfg)

	h := handlers.NewHandlers(svcs)
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Let queued receipt emails go out before stopping the scheduler
	worker.Drain()
	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Front desk, cashiers and admins
			staff := protected.Group("")
			staff.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleCashier, middleware.RoleFrontDesk))
			{
				staff.POST("/folios/:folio_no/bills", h.Bill.Generate)
				staff.GET("/folios/:folio_no/bills", h.Bill.ListByFolio)
				staff.GET("/bills/:bill_no", h.Bill.Show)
				staff.GET("/bills/:bill_no/related", h.Bill.Related)
				staff.GET("/bills/:bill_no/settlement", h.Settlement.Status)
				staff.GET("/bills/:bill_no/payments", h.Settlement.Payments)
				staff.GET("/bills/:bill_no/statement.pdf", h.Report.Statement)
			}

			// Money movement
			cashier := protected.Group("")
			cashier.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleCashier))
			{
				cashier.POST("/bills/:bill_no/split", h.Bill.Split)
				cashier.POST("/bills/:bill_no/settlements", h.Settlement.Settle)
				cashier.GET("/settlements/pending", h.Settlement.Pending)
				cashier.GET("/settlements/pending/export", h.Report.PendingExport)
			}

			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/audits", h.Audit.Index)
				admin.GET("/jobs/status", h.Job.Status)
				admin.POST("/jobs/balance-refresh", h.Job.RefreshBalances)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Pick up rate changes made after billing, including any made while we were down
	worker.ScheduleEveryImmediate(services.BalanceRefreshJob, cfg.BalanceRefreshInterval, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing open bill balances...")
		return svcs.Job.RunBalanceRefresh(ctx)
	})

	logger.Info("Scheduled recurring jobs", "balance_refresh_interval", cfg.BalanceRefreshInterval.String())
}
