package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/aungaung101025-ux/adupayment/internal/config"
	"github.com/aungaung101025-ux/adupayment/internal/database"
	"github.com/aungaung101025-ux/adupayment/internal/handlers"
	"github.com/aungaung101025-ux/adupayment/internal/logger"
	"github.com/aungaung101025-ux/adupayment/internal/middleware"
	"github.com/aungaung101025-ux/adupayment/internal/services"
	"github.com/aungaung101025-ux/adupayment/internal/session"
	"github.com/aungaung101025-ux/adupayment/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services. The API serves the chat frontend, which owns
	// message delivery, so no notifier is wired here.
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db, userService)
	transactionService := services.NewTransactionService(db, userService, categoryService, accountService)
	budgetService := services.NewBudgetService(db, userService, categoryService)
	goalService := services.NewGoalService(db, userService, accountService)
	recurringService := services.NewRecurringService(db, userService, nil)
	insightService := services.NewInsightService(db)
	reportService := services.NewReportService(db, transactionService)
	backupService := services.NewBackupService(db, userService)
	adminService := services.NewAdminService(db, userService, nil)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, backupService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, budgetService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, userService)
	insightHandler := handlers.NewInsightHandler(insightService)
	reportHandler := handlers.NewReportHandler(reportService)
	adminHandler := handlers.NewAdminHandler(adminService, userService)
	sessionHandler := handlers.NewSessionHandler(session.NewStore())

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group, all behind service-token auth
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	// User routes
	users := v1.Group("/user")
	users.POST("/register", userHandler.Register)
	users.GET("/premium", userHandler.GetPremiumStatus)
	users.POST("/premium/trial", userHandler.StartTrial)
	users.GET("/reminders", userHandler.GetReminders)
	users.PUT("/reminders", userHandler.UpdateReminders)
	users.DELETE("/data", userHandler.DeleteData)
	users.GET("/backup", userHandler.ExportBackup)
	users.POST("/backup", userHandler.RestoreBackup)

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.PUT("/:id", accountHandler.RenameAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.POST("/transfers", accountHandler.Transfer)
	accounts.GET("/transfers", accountHandler.GetTransfers)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/list", transactionHandler.ListTransactions)
	transactions.GET("/recent", transactionHandler.GetRecentTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.PUT("/:id/account", transactionHandler.ReassignAccount)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/status", budgetHandler.GetBudgetStatus)
	budgets.DELETE("/:category", budgetHandler.DeleteBudget)

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id/progress", goalHandler.GetGoalProgress)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.AddCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.DELETE("/:name", categoryHandler.DeleteCategory)

	// Recurring rule routes
	recurring := v1.Group("/recurring")
	recurring.POST("", recurringHandler.AddRule)
	recurring.GET("", recurringHandler.GetRules)
	recurring.DELETE("/:id", recurringHandler.DeleteRule)

	// Wizard flow state for the chat layer
	sessions := v1.Group("/session")
	sessions.GET("", sessionHandler.Get)
	sessions.PUT("", sessionHandler.Update)
	sessions.DELETE("", sessionHandler.Clear)

	// Analysis and reporting routes
	v1.GET("/insights", insightHandler.GetInsights)
	reports := v1.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("", reportHandler.GetReport)
	reports.GET("/export", reportHandler.ExportReport)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/users/:user_id", adminHandler.GetUserDetails)
	admin.POST("/users/:user_id/premium", adminHandler.GrantPremium)
	admin.DELETE("/users/:user_id/premium", adminHandler.RevokePremium)
	admin.POST("/broadcast", adminHandler.Broadcast)

	addr := ":" + appConfig.Port
	logger.Get().Infof("Starting server on %s", addr)
	return router.Run(addr)
}
