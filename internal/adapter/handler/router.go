package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/errors"
	"github.com/johnquangdev/assessment-records/internal/adapter/dto/common"
	"github.com/johnquangdev/assessment-records/pkg/config"
)

// HealthChecker is an optional dependency probed by GET /health
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	recordsHandler *Records
	authMiddleware echo.MiddlewareFunc
	gatherer       prometheus.Gatherer
	checks         map[string]HealthChecker
	logger         *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	recordsHandler *Records,
	authMiddleware echo.MiddlewareFunc,
	gatherer prometheus.Gatherer,
	checks map[string]HealthChecker,
	logger *zap.Logger,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		cfg:            cfg,
		recordsHandler: recordsHandler,
		authMiddleware: authMiddleware,
		gatherer:       gatherer,
		checks:         checks,
		logger:         logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}

	e.RouteNotFound("/*", rt.routeNotFound)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupRecordRoutes(v1)
}

// setupRecordRoutes configures record routes
func (rt *Router) setupRecordRoutes(g *echo.Group) {
	recordGroup := g.Group("/records")
	if rt.authMiddleware != nil {
		recordGroup.Use(rt.authMiddleware)
	}

	recordGroup.GET("", rt.recordsHandler.List)
	recordGroup.POST("/refresh", rt.recordsHandler.Refresh)
	recordGroup.GET("/:id/report", rt.recordsHandler.Report)
	recordGroup.GET("/:id/video", rt.recordsHandler.Video)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{
		Status:      "ok",
		Environment: rt.cfg.Server.Environment,
	}

	if len(rt.checks) > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		resp.Checks = make(map[string]string, len(rt.checks))
		for name, checker := range rt.checks {
			if err := checker.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				rt.logger.Warn("http.health.check_failed", zap.String("check", name), zap.Error(err))
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	if resp.Status != "ok" {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// routeNotFound answers unmatched paths in the API error format
func (rt *Router) routeNotFound(c echo.Context) error {
	return HandleError(rt.logger, c, errors.ErrNotFound("Route"))
}
