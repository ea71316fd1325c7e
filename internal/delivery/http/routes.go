package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/annai/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(MetricsMiddleware())
	router.Use(CORSMiddleware([]string{cfg.Server.Origin}))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimit.PerIP)))
	{
		api.GET("/products/", handler.SearchProducts)
		api.GET("/templates/", handler.ListTemplates)
	}

	// Product images are served from the pool directory under their public path
	if prefix := strings.Trim(cfg.Pool.PublicPath, "/"); prefix != "" {
		router.Static("/"+prefix, cfg.Pool.Dir)
	}

	return router
}
