package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-site-api/config"
	deliveryHttp "clinic-site-api/internal/delivery/http"
	"clinic-site-api/internal/delivery/http/handler"
	"clinic-site-api/internal/delivery/http/middleware"
	"clinic-site-api/internal/infrastructure/cache"
	"clinic-site-api/internal/infrastructure/database"
	"clinic-site-api/internal/infrastructure/metrics"
	"clinic-site-api/internal/repository"
	"clinic-site-api/internal/service"
	"clinic-site-api/internal/usecase"
	"clinic-site-api/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Server       *http.Server
	ContentCache *service.ContentCache
	RateLimiter  *middleware.RateLimiter
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize audit database (optional)
	if cfg.DB.Enabled {
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		logrus.Info("Database connected successfully")
	} else {
		logrus.Warn("Audit database disabled, booking attempts are only logged")
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.initializeServer()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() {
	cfg := app.Config

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	siteMetrics := metrics.NewSiteMetrics(registry)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	gemaClient := repository.NewGemaClient(cfg.Backend, log, siteMetrics)
	contentRepo := repository.NewContentRepository(gemaClient)
	slotRepo := repository.NewSlotRepository(gemaClient)
	bookingRepo := repository.NewBookingRepository(gemaClient)
	chatSessionRepo := repository.NewChatSessionRepository(app.RedisClient, cfg.Chat.SessionTTL)
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	app.ContentCache = service.NewContentCache(contentRepo, app.RedisClient, log, siteMetrics, cfg.Chat.CacheTTL)
	auditService := service.NewAuditService(app.DB, log, auditLogRepo)
	intentMatcher := service.NewIntentMatcher(nil)
	responseComposer := service.NewResponseComposer(log)

	// Initialize usecases
	websiteUsecase := usecase.NewWebsiteUsecase(log, app.ContentCache, cfg.Chat)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, app.ContentCache, slotRepo, cfg.Booking)
	bookingUsecase := usecase.NewBookingUsecase(log, customValidator, app.ContentCache, bookingRepo, availabilityUsecase, auditService, siteMetrics, cfg.Booking)
	chatUsecase := usecase.NewChatUsecase(log, app.ContentCache, chatSessionRepo, intentMatcher, responseComposer, siteMetrics, cfg.Chat)

	// Initialize handlers
	siteHandler := handler.NewSiteHandler(websiteUsecase)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase)
	chatHandler := handler.NewChatHandler(chatUsecase, customValidator)
	healthHandler := handler.NewHealthHandler(app.RedisClient)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	app.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		siteHandler,
		availabilityHandler,
		bookingHandler,
		chatHandler,
		healthHandler,
		corsMiddleware,
		app.RateLimiter,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.ContentCache != nil {
		app.ContentCache.Stop()
	}
	if app.RateLimiter != nil {
		app.RateLimiter.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
