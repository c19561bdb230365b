package main

import (
	"fmt"
	"net/http"
	"os"

	"countcoins/internal/config"
	"countcoins/internal/database"
	"countcoins/internal/handlers"
	"countcoins/internal/logger"
	"countcoins/internal/mailer"
	"countcoins/internal/middleware"
	"countcoins/internal/services"
	"countcoins/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "countcoins/internal/docs" // Import swagger docs
)

// @title           Count Coins API
// @version         1.0
// @description     Count Coins is a personal finance tracker for recording income and expenses, allocating budgets, and tracking savings goals.

// @host      localhost:8080
// @BasePath  /api

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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	authService := services.NewAuthService(db, mailer.New(appConfig))
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)

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

	// Rate limiters
	window := appConfig.RateLimitWindow
	router.Use(middleware.GeneralRateLimit(window, appConfig.RateLimitMaxGeneral))
	authLimit := middleware.AuthRateLimit(window, appConfig.RateLimitMaxAuth)
	writeLimit := middleware.MutatingRateLimit(window, appConfig.RateLimitMaxMutating)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/signup", authLimit, authHandler.Signup)
	auth.POST("/login", authLimit, authHandler.Login)
	auth.POST("/forgot-password", authLimit, authHandler.ForgotPassword)
	auth.POST("/reset-password", authLimit, authHandler.ResetPassword)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Profile
	me := protected.Group("/auth/me")
	me.GET("", authHandler.GetProfile)
	me.PUT("", writeLimit, authHandler.UpdateProfile)
	me.DELETE("", writeLimit, authHandler.DeleteAccount)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", writeLimit, transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/stats", transactionHandler.Stats)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", writeLimit, transactionHandler.Update)
	transactions.DELETE("/:id", writeLimit, transactionHandler.Delete)

	// Budget routes
	budget := protected.Group("/budget")
	budget.POST("", writeLimit, budgetHandler.Create)
	budget.GET("", budgetHandler.Get)
	budget.PUT("", writeLimit, budgetHandler.Update)
	budget.DELETE("", writeLimit, budgetHandler.Delete)
	budget.GET("/summary", budgetHandler.Summary)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", writeLimit, goalHandler.Create)
	goals.GET("", goalHandler.List)
	goals.GET("/progress", goalHandler.Progress)
	goals.GET("/:id", goalHandler.Get)
	goals.PUT("/:id", writeLimit, goalHandler.Update)
	goals.DELETE("/:id", writeLimit, goalHandler.Delete)

	log.Infof("Starting Count Coins API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
