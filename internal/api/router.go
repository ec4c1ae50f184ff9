package api

import (
	"github.com/Conceptual-Machines/magda-harmony/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/magda-harmony/internal/api/middleware"
	"github.com/Conceptual-Machines/magda-harmony/internal/config"
	"github.com/Conceptual-Machines/magda-harmony/internal/metrics"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/gin-gonic/gin"
)

func SetupRouter(composer *services.Composer, cfg *config.Config, cw *metrics.Client, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSOrigins))

	counters := &handlers.Counters{}

	// Health check
	healthHandler := handlers.NewHealthHandler(composer)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, composer, counters)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	{
		emotionHandler := handlers.NewEmotionHandler(composer)
		v1.POST("/emotions/match", emotionHandler.Match)

		progressionHandler := handlers.NewProgressionHandler(composer, counters)
		v1.POST("/progressions", progressionHandler.Generate)
		v1.POST("/progressions/midi", progressionHandler.GenerateMIDI)

		sectionHandler := handlers.NewSectionHandler(composer)
		v1.GET("/sections", sectionHandler.List)
	}

	return router
}
