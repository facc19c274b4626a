package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/amqp"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/cli"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/config"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/services"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/storage"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/worker"
)

const shutdownTimeout = 30 * time.Second

// checkConfig requires events and the sqlite backend: the worker reads the
// same database the API writes, which a memory backend never shares.
func checkConfig(cfg *config.Config) error {
	if !cfg.AMQPEnabled() {
		return errors.New("AMQP_URL is required for the ledger worker")
	}
	if cfg.DataBackend != config.BackendSQLite {
		return fmt.Errorf("DATA_BACKEND must be %q for the ledger worker, got %q", config.BackendSQLite, cfg.DataBackend)
	}
	return nil
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting ledger-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if err := checkConfig(cfg); err != nil {
		logger.Error("Invalid worker configuration", log.FieldError, err, log.FieldErrorType, log.ErrorTypeConfiguration)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath, storage.WithTimeout(cfg.StoreTimeout))
	if err != nil {
		logger.Error("Failed to initialize SQLite store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		_ = store.Close()
		os.Exit(1)
	}

	w := worker.NewLedgerWorker(services.NewReportService(store, logger), logger)

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	ctx, done := cli.GracefulShutdown(runCtx, logger, shutdownTimeout, func(context.Context) {
		if err := client.Close(); err != nil {
			logger.Warn("AMQP close error", log.FieldError, err)
		}
		if err := store.Close(); err != nil {
			logger.Warn("Store close error", log.FieldError, err)
		}
	})

	logger.Info("Consuming ledger events", "queue", cfg.AMQPQueue)
	err = client.ConsumeLedgerEvents(ctx, w.HandleLedgerEvent)
	failed := err != nil && !errors.Is(err, context.Canceled)
	if failed {
		logger.Error("Message consumption failed", log.FieldError, err)
	}
	stop()
	<-done
	if failed {
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
