package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homeservices/site/config"
	"github.com/homeservices/site/internal/handlers"
	"github.com/homeservices/site/internal/middleware"
	"github.com/homeservices/site/internal/services"
	"github.com/homeservices/site/internal/session"
	"github.com/homeservices/site/pkg/jwt"
	"github.com/homeservices/site/pkg/logger"
	"github.com/homeservices/site/pkg/metrics"
	"github.com/homeservices/site/pkg/profiling"
	"github.com/homeservices/site/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Form posts carry a handful of short fields
const maxBodyBytes = 16 * 1024

// registerPageRoutes registers the server-rendered landing page and its
// no-script form targets
func registerPageRoutes(
	router *gin.Engine,
	sessions gin.HandlerFunc,
	pageRateLimiter, submitRateLimiter *middleware.RateLimiter,
	pageHandler *handlers.PageHandler,
) {
	page := router.Group("/")
	page.Use(sessions)

	page.GET("/", pageRateLimiter.Middleware(), pageHandler.Index)
	page.POST("/booking", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(maxBodyBytes), pageHandler.SubmitForm)
	page.POST("/booking/dismiss", pageRateLimiter.Middleware(), pageHandler.Dismiss)
	page.POST("/menu", pageRateLimiter.Middleware(), pageHandler.ToggleMenu)
}

// registerAPIRoutes registers the JSON routes the page script drives
func registerAPIRoutes(
	group *gin.RouterGroup,
	apiRateLimiter, submitRateLimiter *middleware.RateLimiter,
	bookingHandler *handlers.BookingHandler,
	uiHandler *handlers.UIHandler,
	clientLogsHandler *handlers.ClientLogsHandler,
) {
	group.Use(middleware.BodySizeLimitMiddleware(maxBodyBytes))

	group.GET("/state", apiRateLimiter.Middleware(), bookingHandler.State)

	bookingGroup := group.Group("/booking")
	bookingGroup.POST("/field", apiRateLimiter.Middleware(), bookingHandler.UpdateField)
	bookingGroup.POST("/submit", submitRateLimiter.Middleware(), bookingHandler.Submit)
	bookingGroup.POST("/handoff", apiRateLimiter.Middleware(), bookingHandler.ReportHandoff)

	fallback := bookingGroup.Group("/fallback", apiRateLimiter.Middleware())
	fallback.POST("/copy", bookingHandler.Copy)
	fallback.POST("/retry", bookingHandler.Retry)
	fallback.POST("/dismiss", bookingHandler.Dismiss)

	ui := group.Group("/ui", apiRateLimiter.Middleware())
	ui.POST("/menu", uiHandler.ToggleMenu)
	ui.POST("/section", uiHandler.SetSection)

	group.POST("/logs", apiRateLimiter.Middleware(), clientLogsHandler.Receive)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting home services site",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("timezone", cfg.Booking.Timezone),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiling, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiling()

	// Start infrastructure metrics collection
	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	if err := handlers.RegisterValidators(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	// Sessions, services and handlers
	store := session.NewStore(cfg.SessionTTL())
	tokenManager := jwt.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.SessionTTL())
	bookingService := services.NewBookingService(store, cfg)

	healthHandler := handlers.NewHealthHandler(store.Count)
	pageHandler := handlers.NewPageHandler(bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	uiHandler := handlers.NewUIHandler(bookingService)
	clientLogsHandler := handlers.NewClientLogsHandler(cfg.Logging.Dir)

	sessions := middleware.SessionMiddleware(store, tokenManager, middleware.CookieOptions{
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Rate limiters per client IP
	pageRateLimiter := middleware.NewRateLimiter(20, 40) // 20 req/sec, burst of 40
	apiRateLimiter := middleware.NewRateLimiter(10, 30)   // 10 req/sec, burst of 30 (field edits on change)
	submitRateLimiter := middleware.NewRateLimiter(1, 5) // 1 req/sec, burst of 5
	opsRateLimiter := middleware.NewRateLimiter(5, 10)   // 5 req/sec, burst of 10
	defer pageRateLimiter.Stop()
	defer apiRateLimiter.Stop()
	defer submitRateLimiter.Stop()
	defer opsRateLimiter.Stop()

	registerPageRoutes(router, sessions, pageRateLimiter, submitRateLimiter, pageHandler)

	// CORS configuration - only the site's own origins may call the API with the session cookie
	allowedOrigins := cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{cfg.Server.BaseURL}
	}
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:8080", "http://127.0.0.1:8080")
	}

	v1 := router.Group("/api/v1")
	v1.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	v1.Use(sessions)
	registerAPIRoutes(v1, apiRateLimiter, submitRateLimiter, bookingHandler, uiHandler, clientLogsHandler)

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", opsRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics",
		opsRateLimiter.Middleware(),
		middleware.TokenAuthMiddleware(middleware.MetricsAuthHeader, cfg.Auth.MetricsTokens...),
		gin.WrapH(promhttp.Handler()),
	)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited", zap.Int("sessions", store.Count()))
}
