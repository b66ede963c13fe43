package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"moneymind/internal/chat"
	"moneymind/internal/config"
	"moneymind/internal/database"
	"moneymind/internal/handlers"
	"moneymind/internal/logger"
	"moneymind/internal/middleware"
	"moneymind/internal/ocr"
	"moneymind/internal/services"
	"moneymind/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "moneymind/internal/docs" // Import swagger docs
)

// @title           MoneyMind API
// @version         1.0
// @description     MoneyMind is a personal finance application for tracking expenses, managing budgets, scanning receipts, and chatting with a budget-aware assistant.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	catalog := services.Catalog{
		Categories:     appConfig.Categories,
		PaymentMethods: appConfig.PaymentMethods,
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	transactionService := services.NewTransactionService(db, catalog)
	budgetService := services.NewBudgetService(db, catalog)
	analyticsService := services.NewAnalyticsService(transactionService, budgetService)

	ctx := context.Background()
	recognizer, err := ocr.NewGeminiRecognizer(ctx, appConfig.GeminiAPIKey, appConfig.OCRModel)
	if err != nil {
		return fmt.Errorf("failed to create OCR recognizer: %w", err)
	}
	receiptService := services.NewReceiptService(recognizer, transactionService, catalog, appConfig.MaxReceiptBytes)

	assistant, err := chat.NewAssistant(ctx, appConfig.GeminiAPIKey, []string{appConfig.ChatModel, appConfig.ChatFallbackModel})
	if err != nil {
		return fmt.Errorf("failed to create chat assistant: %w", err)
	}
	chatService := services.NewChatService(assistant, analyticsService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	receiptHandler := handlers.NewReceiptHandler(receiptService, auditService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

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

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/:id", budgetHandler.Get)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	// Analytics routes
	analyticsRoutes := protected.Group("/analytics")
	analyticsRoutes.GET("/summary", analyticsHandler.GetSummary)
	analyticsRoutes.GET("/categories", analyticsHandler.GetCategoryBreakdown)
	analyticsRoutes.GET("/trend", analyticsHandler.GetMonthlyTrend)
	analyticsRoutes.GET("/weekly", analyticsHandler.GetWeeklySpending)
	analyticsRoutes.GET("/budgets", analyticsHandler.GetBudgetReport)
	analyticsRoutes.GET("/export", analyticsHandler.Export)

	// Receipt routes
	receipts := protected.Group("/receipts")
	receipts.POST("/ocr", receiptHandler.Upload)
	receipts.POST("/commit", receiptHandler.Commit)

	// Chat assistant
	protected.POST("/chat", chatHandler.Send)

	log.Infof("Starting MoneyMind backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
