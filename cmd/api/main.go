package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/internal/adapter/handler"
	"github.com/johnquangdev/assessment-records/internal/bootstrap"
	httpmw "github.com/johnquangdev/assessment-records/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/assessment-records/pkg/config"
	"github.com/johnquangdev/assessment-records/pkg/jwt"
	"github.com/johnquangdev/assessment-records/pkg/logger"
	pkgvalidator "github.com/johnquangdev/assessment-records/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appLogger.Info("http.request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	appLogger.Info("🔧 Initializing dependencies...")
	app, err := bootstrap.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer app.Close()

	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer)
	recordsHandler := handler.NewRecordsHandler(app.Service, appLogger.Named("http"))

	router := handler.NewRouter(cfg, recordsHandler, httpmw.EchoAuth(jwtManager), app.Registry, app.Checks, appLogger)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		appLogger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("backend", cfg.Backend.BaseURL),
			zap.String("snapshot_store", cfg.Snapshot.Store),
			zap.String("download_mode", cfg.Download.Mode),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		appLogger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	appLogger.Info("✅ Server stopped gracefully")
}
