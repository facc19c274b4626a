// Package services orchestrates the ledger store, the allocation and
// aggregation engines, and ledger event publishing.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/allocation"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/amqp"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/cache"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/ledger"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

// EventPublisher is satisfied by *amqp.Client.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, evt *amqp.LedgerEvent) error
}

// LedgerService handles every ledger write plus the plain listings.
type LedgerService struct {
	store      ledger.Store
	allocator  *allocation.Allocator
	events     EventPublisher
	properties cache.Cache[core.Property]
	logger     *log.Logger
	now        func() time.Time
	newID      func() string
}

type LedgerOption func(*LedgerService)

// WithEvents enables ledger event publishing. A nil publisher is ignored.
func WithEvents(p EventPublisher) LedgerOption {
	return func(s *LedgerService) { s.events = p }
}

// WithPropertyCache puts c in front of property lookups made while
// validating writes.
func WithPropertyCache(c cache.Cache[core.Property]) LedgerOption {
	return func(s *LedgerService) { s.properties = c }
}

func WithLogger(l *log.Logger) LedgerOption {
	return func(s *LedgerService) {
		if l != nil {
			s.logger = l.WithComponent(log.ComponentLedger)
		}
	}
}

func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) { s.now = now }
}

func WithIDGenerator(fn func() string) LedgerOption {
	return func(s *LedgerService) { s.newID = fn }
}

func NewLedgerService(store ledger.Store, opts ...LedgerOption) *LedgerService {
	s := &LedgerService{
		store:  store,
		logger: log.Default(log.ComponentLedger),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.allocator = allocation.New(
		allocation.WithClock(s.now),
		allocation.WithIDGenerator(s.newID),
	)
	return s
}

// TransactionInput is an unvalidated write request. PropertyIDs holds one
// id for income and one or more for expenses.
type TransactionInput struct {
	PropertyIDs []string
	Type        string
	Category    string
	Amount      core.Money
	Description string
	Month       string
	SplitPolicy string
}

func (in TransactionInput) request() (allocation.Request, error) {
	typ, err := core.ParseTransactionType(in.Type)
	if err != nil {
		return allocation.Request{}, core.Invalid("type", err)
	}
	month, err := core.ParseMonthKey(in.Month)
	if err != nil {
		return allocation.Request{}, core.Invalid("date", err)
	}
	policy, err := allocation.ParseSplitPolicy(in.SplitPolicy)
	if err != nil {
		return allocation.Request{}, err
	}
	return allocation.Request{
		Type:        typ,
		PropertyIDs: in.PropertyIDs,
		Category:    core.Category(strings.TrimSpace(in.Category)),
		Total:       in.Amount,
		Description: strings.TrimSpace(in.Description),
		Month:       month,
		Policy:      policy,
	}, nil
}

// SubmitTransaction validates in, expands it through the allocator and
// persists each record independently.
//
// Nothing is written when validation fails. When the k-th insert fails after
// earlier ones succeeded, the returned *core.PartialAllocationError lists the
// committed ids and the properties left without a record; nothing is rolled
// back or retried.
func (s *LedgerService) SubmitTransaction(ctx context.Context, in TransactionInput) ([]core.Transaction, error) {
	req, err := in.request()
	if err != nil {
		return nil, err
	}
	if err := s.allocator.Validate(req); err != nil {
		return nil, err
	}
	targets := allocation.Targets(req.PropertyIDs)
	for _, id := range targets {
		if err := s.requireProperty(ctx, id); err != nil {
			return nil, err
		}
	}

	txs, err := s.allocator.Allocate(req)
	if err != nil {
		return nil, err
	}

	sl := log.NewStructuredLogger(s.logger)
	for i, tx := range txs {
		if err := s.store.InsertTransaction(ctx, tx); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("insert transaction: %w", err)
			}
			perr := partialAllocation(txs, i, err)
			s.logger.ErrorContext(ctx, "Allocation partially persisted",
				log.FieldError, err,
				"created_ids", perr.Created,
				"missing_property_ids", perr.Missing,
				log.FieldSplitPolicy, string(allocation.EffectivePolicy(req.Policy, len(txs))))
			s.publishCreated(ctx, txs[:i])
			return nil, perr
		}
		r := core.RecordOf(tx)
		sl.LogTransactionCreated(ctx, r.ID, r.PropertyID, string(r.Type), string(r.Category), r.Amount.String(), string(r.Date))
	}

	if len(txs) > 1 {
		s.logger.InfoContext(ctx, "Expense allocated",
			log.FieldCount, len(txs),
			log.FieldSplitPolicy, string(allocation.EffectivePolicy(req.Policy, len(txs))),
			log.FieldAmount, req.Total.String(),
			log.FieldMonth, string(req.Month))
	}
	s.publishCreated(ctx, txs)
	return txs, nil
}

func partialAllocation(txs []core.Transaction, failed int, err error) *core.PartialAllocationError {
	created := make([]string, 0, failed)
	for _, tx := range txs[:failed] {
		created = append(created, tx.Common().ID)
	}
	missing := make([]string, 0, len(txs)-failed)
	for _, tx := range txs[failed:] {
		missing = append(missing, tx.Common().PropertyID)
	}
	return &core.PartialAllocationError{Created: created, Missing: missing, Err: err}
}

// UpdateTransaction replaces one record in place. Id and creation time are
// kept; everything else comes from in.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	existing, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	req, err := in.request()
	if err != nil {
		return nil, err
	}
	targets := allocation.Targets(req.PropertyIDs)
	switch {
	case len(targets) == 0:
		return nil, core.Invalid("property_id", core.ErrNoTargetProperty)
	case len(targets) > 1:
		return nil, core.Invalid("property_id", core.ErrSingleTarget)
	}
	if err := req.Total.Validate(); err != nil {
		return nil, core.Invalid("amount", err)
	}
	if err := core.ValidateDescription(req.Description); err != nil {
		return nil, err
	}
	if req.Type == core.TypeExpense {
		if err := req.Category.Validate(); err != nil {
			return nil, core.Invalid("category", err)
		}
	}

	prev := existing.Common()
	tx, err := core.NewTransaction(req.Type, core.Entry{
		ID:          prev.ID,
		PropertyID:  targets[0],
		Amount:      req.Total,
		Description: req.Description,
		Month:       req.Month,
		CreatedAt:   prev.CreatedAt,
	}, req.Category)
	if err != nil {
		return nil, err
	}
	if err := s.requireProperty(ctx, targets[0]); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		log.FieldTransactionID, id,
		log.FieldPropertyID, targets[0],
		log.FieldMonth, string(req.Month))
	s.publish(ctx, amqp.EventTransactionUpdated, id, targets[0], string(req.Month))
	if prev.Month != req.Month {
		s.publish(ctx, amqp.EventTransactionUpdated, id, prev.PropertyID, string(prev.Month))
	}
	return tx, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	existing, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	e := existing.Common()
	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id, log.FieldMonth, string(e.Month))
	s.publish(ctx, amqp.EventTransactionDeleted, id, e.PropertyID, string(e.Month))
	return nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

// ListTransactions scans the ledger in insertion order. A non-empty month
// restricts the scan to that month.
func (s *LedgerService) ListTransactions(ctx context.Context, month string) ([]core.Transaction, error) {
	var key core.MonthKey
	if month != "" {
		k, err := core.ParseMonthKey(month)
		if err != nil {
			return nil, core.Invalid("month", err)
		}
		key = k
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if key == "" {
		return txs, nil
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Common().Month == key {
			out = append(out, tx)
		}
	}
	return out, nil
}

// PropertyInput is an unvalidated property write.
type PropertyInput struct {
	Name     string
	Type     string
	ImageURL string
}

func (in PropertyInput) property(id string, createdAt time.Time) (core.Property, error) {
	p := core.Property{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Type:      core.PropertyType(strings.TrimSpace(in.Type)),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: createdAt,
	}
	if err := p.Validate(); err != nil {
		return core.Property{}, err
	}
	return p, nil
}

func (s *LedgerService) CreateProperty(ctx context.Context, in PropertyInput) (core.Property, error) {
	p, err := in.property(s.newID(), s.now())
	if err != nil {
		return core.Property{}, err
	}
	if err := s.store.CreateProperty(ctx, p); err != nil {
		return core.Property{}, fmt.Errorf("create property: %w", err)
	}
	s.remember(p)
	s.logger.InfoContext(ctx, "Property created", log.FieldPropertyID, p.ID, "name", p.Name)
	return p, nil
}

func (s *LedgerService) UpdateProperty(ctx context.Context, id string, in PropertyInput) (core.Property, error) {
	existing, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return core.Property{}, err
	}
	p, err := in.property(existing.ID, existing.CreatedAt)
	if err != nil {
		return core.Property{}, err
	}
	if err := s.store.UpdateProperty(ctx, p); err != nil {
		return core.Property{}, fmt.Errorf("update property: %w", err)
	}
	s.forget(id)
	s.logger.InfoContext(ctx, "Property updated", log.FieldPropertyID, id)
	return p, nil
}

func (s *LedgerService) GetProperty(ctx context.Context, id string) (core.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *LedgerService) ListProperties(ctx context.Context) ([]core.Property, error) {
	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

// DeleteProperty removes the property together with its transactions and
// returns how many transactions were removed.
func (s *LedgerService) DeleteProperty(ctx context.Context, id string) (int, error) {
	removed, err := s.store.DeleteProperty(ctx, id)
	s.forget(id)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "Property deleted", log.FieldPropertyID, id, log.FieldCount, removed)
	s.publish(ctx, amqp.EventPropertyDeleted, "", id, "")
	return removed, nil
}

// requireProperty fails with a validation error when id does not resolve.
func (s *LedgerService) requireProperty(ctx context.Context, id string) error {
	if s.properties != nil {
		if _, ok := s.properties.Get(id); ok {
			return nil
		}
	}
	p, err := s.store.GetProperty(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return core.Invalid("property_ids", fmt.Errorf("%w: %s", core.ErrUnknownProperty, id))
	}
	if err != nil {
		return fmt.Errorf("get property: %w", err)
	}
	s.remember(p)
	return nil
}

func (s *LedgerService) remember(p core.Property) {
	if s.properties != nil {
		s.properties.Set(p.ID, p)
	}
}

func (s *LedgerService) forget(id string) {
	if s.properties != nil {
		s.properties.Delete(id)
	}
}

func (s *LedgerService) publishCreated(ctx context.Context, txs []core.Transaction) {
	for _, tx := range txs {
		e := tx.Common()
		s.publish(ctx, amqp.EventTransactionCreated, e.ID, e.PropertyID, string(e.Month))
	}
}

// publish never fails the caller; the write is already committed.
func (s *LedgerService) publish(ctx context.Context, event amqp.EventType, txID, propertyID, month string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, amqp.NewLedgerEvent(event, txID, propertyID, month)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ledger event",
			log.FieldEvent, string(event),
			log.FieldTransactionID, txID,
			log.FieldError, err)
	}
}

// Ping checks the store.
func (s *LedgerService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
