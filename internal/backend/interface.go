package backend

import (
	"context"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/amqp"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/ledger"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/services"
)

// CleanupFunc releases the resources held by a backend.
type CleanupFunc func() error

// Result is a ready store plus the optional event client.
type Result struct {
	Store ledger.Store
	// AMQP is nil when ledger events are disabled or the broker was
	// unreachable at startup.
	AMQP    *amqp.Client
	Cleanup CleanupFunc
}

// Events returns the publisher for services.WithEvents, or nil. A nil
// *amqp.Client is never wrapped in a non-nil interface.
func (r *Result) Events() services.EventPublisher {
	if r.AMQP == nil {
		return nil
	}
	return r.AMQP
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
	StoreTimeout time.Duration

	// AMQP is optional for every backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
