// Package ledger declares the store ports the services depend on.
package ledger

import (
	"context"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
)

// Ports for outbound adapters. Missing ids yield *core.NotFoundError.
type (
	PropertyStore interface {
		CreateProperty(ctx context.Context, p core.Property) error
		UpdateProperty(ctx context.Context, p core.Property) error
		GetProperty(ctx context.Context, id string) (core.Property, error)
		ListProperties(ctx context.Context) ([]core.Property, error)
		// DeleteProperty removes the property and every transaction that
		// references it, returning how many transactions went with it.
		DeleteProperty(ctx context.Context, id string) (int, error)
	}

	TransactionStore interface {
		InsertTransaction(ctx context.Context, tx core.Transaction) error
		UpdateTransaction(ctx context.Context, tx core.Transaction) error
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
		// ListTransactions returns a full scan in insertion order.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	Store interface {
		PropertyStore
		TransactionStore
		Ping(ctx context.Context) error
		Close() error
	}
)

// Snapshot is a point-in-time copy of the ledger handed to aggregation.
type Snapshot struct {
	Transactions []core.Transaction
	Properties   []core.Property
}

// PropertyName resolves id within the snapshot.
func (s Snapshot) PropertyName(id string) (string, bool) {
	for _, p := range s.Properties {
		if p.ID == id {
			return p.Name, true
		}
	}
	return "", false
}
