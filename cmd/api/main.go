package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/config"
	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/handler"
	"github.com/dafibh/finboard/finboard-backend/internal/middleware"
	"github.com/dafibh/finboard/finboard-backend/internal/repository/postgres"
	"github.com/dafibh/finboard/finboard-backend/internal/repository/sqlite"
	"github.com/dafibh/finboard/finboard-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	summaryRepo, closeStorage, err := openStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to open storage")
	}
	defer closeStorage()
	log.Info().Str("driver", cfg.StorageDriver).Msg("Connected to storage")

	// Initialize services
	summaryService := service.NewSummaryService(summaryRepo, log.Logger, service.SummaryServiceConfig{
		Location:     cfg.Summary.Location,
		MaxRangeDays: cfg.Summary.MaxRangeDays,
		QueryTimeout: cfg.Summary.QueryTimeout,
	})
	workCalculatorService := service.NewWorkCalculatorService()

	// Initialize auth middleware
	var authenticate echo.MiddlewareFunc
	if cfg.LocalDevUser != "" {
		log.Warn().Str("user_id", cfg.LocalDevUser).Msg("Local dev auth enabled, every request is authenticated as this user")
		authenticate = middleware.LocalDevAuth(cfg.LocalDevUser)
	} else {
		authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth middleware")
		}
		authenticate = authMiddleware.Authenticate()
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	// Initialize handlers
	summaryHandler := handler.NewSummaryHandler(summaryService)
	workCalculatorHandler := handler.NewWorkCalculatorHandler(workCalculatorService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authenticate, rateLimiter, summaryHandler, workCalculatorHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStorage connects the configured storage driver. The returned func
// releases it.
func openStorage(cfg *config.Config) (domain.SummaryRepository, func(), error) {
	if cfg.StorageDriver == config.StorageSQLite {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSummaryRepository(db), func() { db.Close() }, nil
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return postgres.NewSummaryRepository(pool), pool.Close, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("user_id", middleware.GetUserID(c)).
				Msg("request")

			return nil
		}
	}
}
