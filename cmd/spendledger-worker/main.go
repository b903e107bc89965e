package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spendledger/internal/amqp"
	"spendledger/internal/backend"
	"spendledger/internal/config"
	"spendledger/internal/core"
	applog "spendledger/internal/log"
	"spendledger/internal/storage"
	"spendledger/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{Level: cfg.LogLevel, Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting spendledger-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	writer, err := backend.NewReportWriter(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize report writer", applog.FieldError, err)
		os.Exit(1)
	}

	var budget core.BudgetConfig
	if path := os.Getenv("BUDGET_FILE"); path != "" {
		budget, err = core.LoadBudgetConfig(path)
		if err != nil {
			logger.Error("Failed to load budget file", applog.FieldError, err, "path", path)
			os.Exit(1)
		}
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(repo, writer, budget, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRunSync(ctx, func(msg *amqp.RunSyncMessage) error {
			return exportWorker.HandleRunSync(ctx, msg)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
