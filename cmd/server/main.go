package main

import (
	"fmt"
	"log"
	"os"

	"github.com/billscan/backend/config"
	httpDelivery "github.com/billscan/backend/internal/delivery/http"
	"github.com/billscan/backend/internal/infrastructure/classifier"
	"github.com/billscan/backend/internal/infrastructure/metrics"
	"github.com/billscan/backend/internal/infrastructure/ocr"
	"github.com/billscan/backend/internal/infrastructure/ratelimit"
	"github.com/billscan/backend/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting BillScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Metrics registry shared by the pipeline and /metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusMetrics(registry)

	// Initialize infrastructure dependencies
	classifierClient := classifier.NewClient(cfg.Classifier.BaseURL, cfg.Classifier.Path, cfg.Classifier.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		classifierClient.SetDebug(true)
		log.Printf("Classifier client debug mode enabled")
	}
	log.Printf("Classifier: %s%s (timeout %s)", cfg.Classifier.BaseURL, cfg.Classifier.Path, cfg.Classifier.Timeout)

	ocrEngine := ocr.NewEngine(ocr.Config{
		Binary:      cfg.OCR.Binary,
		Language:    cfg.OCR.Language,
		PSM:         cfg.OCR.PSM,
		TessdataDir: cfg.OCR.TessdataDir,
		Timeout:     cfg.OCR.Timeout,
		MinHeight:   cfg.OCR.MinHeight,
	})
	log.Printf("OCR: %s (lang=%s, psm=%d)", cfg.OCR.Binary, cfg.OCR.Language, cfg.OCR.PSM)

	limiter := ratelimit.NewStore(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)
	defer limiter.Close()
	log.Printf("Rate limit: %d req/min per IP (burst %d)", cfg.RateLimit.PerIP, cfg.RateLimit.Burst)

	// Initialize usecase layer
	receiptService := usecase.NewReceiptService(
		ocr.NewDecoder(),
		ocrEngine,
		classifierClient,
		recorder,
		usecase.ReceiptServiceConfig{
			ClassifierTimeout:  cfg.Classifier.Timeout,
			EnableDebugLogging: cfg.Extraction.EnableDebugLogging,
		},
	)

	expenseService := usecase.NewExpenseService(
		classifierClient,
		recorder,
		usecase.ExpenseServiceConfig{ClassifierTimeout: cfg.Classifier.Timeout},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(receiptService, expenseService, cfg.Server.MaxUploadBytes)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, limiter, registry)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
