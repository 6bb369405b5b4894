package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vani131975/ai-powered-compliance-auditor/analysis"
	"github.com/Vani131975/ai-powered-compliance-auditor/config"
	"github.com/Vani131975/ai-powered-compliance-auditor/handler"
	"github.com/Vani131975/ai-powered-compliance-auditor/middleware"
	"github.com/Vani131975/ai-powered-compliance-auditor/pkg/logger"
	"github.com/Vani131975/ai-powered-compliance-auditor/pkg/workerpool"
	"github.com/Vani131975/ai-powered-compliance-auditor/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	minioSvc, err := service.NewMinioService(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize MINIO service", "error", err)
		os.Exit(1)
	}

	// Ensure bucket exists
	if err := minioSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure MINIO bucket", "error", err)
		os.Exit(1)
	}

	extractSvc := service.NewExtractService(&cfg.Extraction)
	classifierSvc := service.NewClassifierService(&cfg.Classifier)
	generatorSvc := service.NewGeneratorService(&cfg.Generator)

	// Load the compliance policy
	policy, err := analysis.LoadPolicy(cfg.Policy.File)
	if err != nil {
		slog.Error("failed to load compliance policy", "error", err)
		os.Exit(1)
	}

	// Shared worker pool for external-capability calls across all analyses
	pool, err := workerpool.New(cfg.Pipeline.Workers)
	if err != nil {
		slog.Error("failed to create worker pool", "error", err)
		os.Exit(1)
	}

	pipeline := analysis.NewPipeline(classifierSvc, generatorSvc, analysis.NewEvaluator(policy), pool, analysis.Options{
		Threshold:       cfg.Classifier.Threshold,
		ClassifyTimeout: cfg.Classifier.Timeout,
		GenerateTimeout: cfg.Generator.Timeout,
	})

	// Initialize analysis store with config
	service.InitAnalysisStore(&cfg.Store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	analysisHandler := handler.NewAnalysisHandler(minioSvc, extractSvc, pipeline)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.POST("/contracts/upload", analysisHandler.Upload)
		protected.GET("/contracts", analysisHandler.List)
		protected.GET("/contracts/:id", analysisHandler.Get)
		protected.GET("/contracts/:id/status", analysisHandler.GetStatus)
		protected.POST("/contracts/:id/feedback", analysisHandler.Feedback)
		protected.DELETE("/contracts/:id", analysisHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Drain in-flight analysis work before exiting
	if err := pool.ReleaseTimeout(10 * time.Second); err != nil {
		slog.Warn("worker pool did not drain in time", "error", err)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
