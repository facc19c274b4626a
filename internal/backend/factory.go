// Package backend builds the ledger store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/amqp"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/ledger"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/ledger/memory"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Default(log.ComponentBackend)
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store ledger.Store
		err   error
	)
	switch config.Type {
	case SQLiteBackend:
		store, err = f.createSQLiteStore(config)
	case MemoryBackend:
		store = memory.New()
		f.logger.InfoContext(ctx, "Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{Store: store}
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without ledger events", log.FieldError, err)
		} else {
			res.AMQP = client
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	res.Cleanup = func() error {
		if res.AMQP != nil {
			if err := res.AMQP.Close(); err != nil {
				f.logger.Warn("Failed to close AMQP client", log.FieldError, err)
			}
		}
		return store.Close()
	}
	return res, nil
}

func (f *DefaultFactory) createSQLiteStore(config Config) (ledger.Store, error) {
	var opts []storage.Option
	if config.StoreTimeout > 0 {
		opts = append(opts, storage.WithTimeout(config.StoreTimeout))
	}
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"timeout", config.StoreTimeout.String())
	return store, nil
}
