// Package memory is an in-process ledger store for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
)

type Store struct {
	mu    sync.RWMutex
	props []core.Property
	txs   []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Seed replaces the contents of the store.
func (s *Store) Seed(props []core.Property, txs []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props = append([]core.Property(nil), props...)
	s.txs = append([]core.Transaction(nil), txs...)
}

func (s *Store) CreateProperty(_ context.Context, p core.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props = append(s.props, p)
	return nil
}

func (s *Store) UpdateProperty(_ context.Context, p core.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.propertyIndex(p.ID)
	if i < 0 {
		return core.NotFound("property", p.ID)
	}
	s.props[i] = p
	return nil
}

func (s *Store) GetProperty(_ context.Context, id string) (core.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.propertyIndex(id)
	if i < 0 {
		return core.Property{}, core.NotFound("property", id)
	}
	return s.props[i], nil
}

func (s *Store) ListProperties(_ context.Context) ([]core.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]core.Property, 0, len(s.props)), s.props...), nil
}

// DeleteProperty cascades to the property's transactions under one lock.
func (s *Store) DeleteProperty(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.propertyIndex(id)
	if i < 0 {
		return 0, core.NotFound("property", id)
	}
	s.props = append(s.props[:i:i], s.props[i+1:]...)

	kept := make([]core.Transaction, 0, len(s.txs))
	removed := 0
	for _, tx := range s.txs {
		if tx.Common().PropertyID == id {
			removed++
			continue
		}
		kept = append(kept, tx)
	}
	s.txs = kept
	return removed, nil
}

func (s *Store) InsertTransaction(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
	return nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactionIndex(tx.Common().ID)
	if i < 0 {
		return core.NotFound("transaction", tx.Common().ID)
	}
	s.txs[i] = tx
	return nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.transactionIndex(id)
	if i < 0 {
		return nil, core.NotFound("transaction", id)
	}
	return s.txs[i], nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.transactionIndex(id)
	if i < 0 {
		return core.NotFound("transaction", id)
	}
	s.txs = append(s.txs[:i:i], s.txs[i+1:]...)
	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]core.Transaction, 0, len(s.txs)), s.txs...), nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) propertyIndex(id string) int {
	for i, p := range s.props {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) transactionIndex(id string) int {
	for i, tx := range s.txs {
		if tx.Common().ID == id {
			return i
		}
	}
	return -1
}
