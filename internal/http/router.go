package http

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go.ngs.io/ephem-api/internal/metrics"
	"go.ngs.io/ephem-api/internal/usecase"
)

// Config holds router settings.
type Config struct {
	// RateLimitRPM is the number of API requests allowed per client IP and
	// minute. Zero disables rate limiting.
	RateLimitRPM int

	// StreamInterval is the default period of /v1/stream frames.
	StreamInterval time.Duration
}

// SetupRouter creates and configures the Gin router.
func SetupRouter(uc *usecase.EphemerisUseCase, cfg Config) *gin.Engine {
	router := gin.Default()

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable.
	// Default to allow all origins if not specified.
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	router.Use(cors.New(corsConfig))
	router.Use(metrics.Middleware())

	// Create handler.
	handler := NewHandler(uc, cfg.StreamInterval)

	// API v1 routes.
	v1 := router.Group("/v1")
	if cfg.RateLimitRPM > 0 {
		v1.Use(RateLimit(NewIPRateLimiter(cfg.RateLimitRPM)))
	}
	v1.GET("/bodies", handler.GetBodies)
	v1.GET("/places", handler.GetPlaces)
	v1.GET("/positions", handler.GetPositions)
	v1.GET("/chart", handler.GetChart)
	v1.GET("/lunation", handler.GetLunation)
	v1.GET("/series", handler.GetSeries)
	v1.GET("/stream", handler.StreamPositions)

	// Health check and metrics.
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
