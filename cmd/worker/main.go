package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aungaung101025-ux/adupayment/internal/config"
	"github.com/aungaung101025-ux/adupayment/internal/database"
	"github.com/aungaung101025-ux/adupayment/internal/logger"
	"github.com/aungaung101025-ux/adupayment/internal/scheduler"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// logNotifier is the delivery fallback when the worker runs without a chat
// frontend attached: messages are logged instead of dropped silently.
type logNotifier struct{}

func (logNotifier) Notify(userID int64, message string) error {
	logger.Named("notifier").Infow("notification", "user_id", userID, "message", message)
	return nil
}

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

	db := dbManager.DB()
	notifier := logNotifier{}
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db, userService)
	transactionService := services.NewTransactionService(db, userService, categoryService, accountService)
	recurringService := services.NewRecurringService(db, userService, notifier)
	reportService := services.NewReportService(db, transactionService)

	daemon := scheduler.NewDaemon(appConfig, recurringService, userService, reportService, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Get().Info("Shutdown signal received")
		cancel()
	}()

	daemon.Start(ctx)
	return nil
}
