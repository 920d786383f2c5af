package http

import (
	"github.com/billscan/backend/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, limiter RateLimiter, gatherer prometheus.Gatherer) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	limited := router.Group("/")
	limited.Use(RateLimitMiddleware(limiter))
	{
		// Path used by existing upload clients
		limited.POST("/api/ocr-upload", handler.ScanReceipt)

		v1 := limited.Group("/api/v1")
		{
			v1.POST("/receipts/scan", handler.ScanReceipt)
			v1.POST("/receipts/extract", handler.ExtractText)
			v1.POST("/categorize", handler.Categorize)
			v1.POST("/expenses", handler.CreateExpense)
			v1.POST("/expenses/report", handler.ExpenseReport)
		}
	}

	return router
}
