package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack is a single-user personal finance tracker covering cash flows, an investment ledger with linked cash entries, product metric history, and return projections.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	masterService := services.NewMasterDataService(db)
	productService := services.NewProductService(db)
	metricService := services.NewMetricService(db)
	cashFlowService := services.NewCashFlowService(db)
	investmentService := services.NewInvestmentService(db, appConfig.AutoLinkCashFlow)
	simulationService := services.NewSimulationService(db, investmentService, appConfig.SimDefaultHorizon)
	analyticsService := services.NewAnalyticsService(db)
	dataIOService := services.NewDataIOService(db, investmentService)
	attachmentService := services.NewAttachmentService(db, appConfig.UploadDir)

	// Initialize handlers
	masterHandler := handlers.NewMasterDataHandler(masterService, auditService)
	productHandler := handlers.NewProductHandler(productService, metricService, auditService)
	metricHandler := handlers.NewMetricHandler(metricService, auditService)
	cashFlowHandler := handlers.NewCashFlowHandler(cashFlowService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	simulationHandler := handlers.NewSimulationHandler(simulationService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	dataIOHandler := handlers.NewDataIOHandler(dataIOService, auditService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Master data routes
	master := v1.Group("/master")
	master.GET("/:table", masterHandler.ListEntries)
	master.POST("/:table", masterHandler.CreateEntry)
	master.PUT("/:table/:id", masterHandler.RenameEntry)
	master.DELETE("/:table/:id", masterHandler.DeactivateEntry)
	master.POST("/:table/:id/restore", masterHandler.RestoreEntry)
	master.GET("/:table/:id/references", masterHandler.GetReferences)

	// Product routes
	products := v1.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.GetProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeactivateProduct)
	products.POST("/:id/restore", productHandler.RestoreProduct)
	products.GET("/:id/references", productHandler.GetProductReferences)
	products.GET("/:id/trend", productHandler.GetProductTrend)

	// Metric observation routes
	observations := v1.Group("/observations")
	observations.POST("", metricHandler.RecordObservation)
	observations.GET("", metricHandler.GetObservations)
	observations.GET("/:id", metricHandler.GetObservation)
	observations.DELETE("/:id", metricHandler.DeleteObservation)

	// Cash flow routes
	cashFlows := v1.Group("/cash-flows")
	cashFlows.POST("", cashFlowHandler.CreateCashFlow)
	cashFlows.GET("", cashFlowHandler.GetCashFlows)
	cashFlows.GET("/:id", cashFlowHandler.GetCashFlow)
	cashFlows.PUT("/:id", cashFlowHandler.UpdateCashFlow)
	cashFlows.DELETE("/:id", cashFlowHandler.DeactivateCashFlow)

	// Investment ledger routes
	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.RecordAction)
	investments.GET("", investmentHandler.GetActions)
	investments.GET("/:id", investmentHandler.GetAction)
	investments.DELETE("/:id", investmentHandler.DeactivateAction)

	// Holdings routes
	holdings := v1.Group("/holdings")
	holdings.GET("", investmentHandler.GetHoldings)
	holdings.POST("/:product_id/recompute", investmentHandler.RecomputeHolding)

	// Simulation routes
	simulation := v1.Group("/simulation")
	simulation.POST("", simulationHandler.Simulate)
	simulation.POST("/confirm", simulationHandler.Confirm)

	// Analytics routes
	analytics := v1.Group("/analytics")
	analytics.GET("/totals", analyticsHandler.GetTotals)
	analytics.GET("/monthly", analyticsHandler.GetMonthlySeries)
	analytics.GET("/linkage", analyticsHandler.GetLinkageReport)

	// Data import/export routes
	data := v1.Group("/data")
	data.GET("/export/:entity", dataIOHandler.Export)
	data.POST("/import/:entity", dataIOHandler.Import)

	// Attachment routes
	attachments := v1.Group("/attachments")
	attachments.POST("", attachmentHandler.Upload)
	attachments.GET("", attachmentHandler.GetAttachments)
	attachments.GET("/:id", attachmentHandler.GetAttachment)

	// Unknown routes reply with the standard error shape
	router.NoRoute(handlers.NoRoute)

	srv := &http.Server{
		Addr:    ":" + appConfig.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting Fintrack server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for an interrupt, then drain in-flight requests before exiting
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.Infof("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
