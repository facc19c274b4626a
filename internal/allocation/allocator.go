package allocation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
)

// Request is one user intent: an amount charged to one or more properties.
type Request struct {
	Type        core.TransactionType
	PropertyIDs []string
	Category    core.Category
	Total       core.Money
	Description string
	Month       core.MonthKey
	Policy      SplitPolicy
}

// Allocator turns a Request into ledger-ready transactions. It has no side
// effects; persisting the result is the caller's job.
type Allocator struct {
	newID func() string
	now   func() time.Time
}

type Option func(*Allocator)

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(fn func() string) Option {
	return func(a *Allocator) { a.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(a *Allocator) { a.now = fn }
}

func New(opts ...Option) *Allocator {
	a := &Allocator{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Targets trims and de-duplicates ids, keeping first-seen order.
func Targets(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// EffectivePolicy returns the policy actually applied for n targets. A
// single target is always charged in full.
func EffectivePolicy(p SplitPolicy, n int) SplitPolicy {
	if n <= 1 || p == "" {
		return FullEach
	}
	return p
}

// Validate checks req without allocating.
func (a *Allocator) Validate(req Request) error {
	_, err := a.plan(req)
	return err
}

type plan struct {
	typ      core.TransactionType
	targets  []string
	splitter Splitter
}

func (a *Allocator) plan(req Request) (plan, error) {
	typ, err := core.ParseTransactionType(string(req.Type))
	if err != nil {
		return plan{}, core.Invalid("type", err)
	}
	targets := Targets(req.PropertyIDs)
	if len(targets) == 0 {
		return plan{}, core.Invalid("property_ids", core.ErrNoTargetProperty)
	}
	if typ == core.TypeIncome && len(targets) != 1 {
		return plan{}, core.Invalid("property_ids", core.ErrIncomeSingleProperty)
	}
	if err := req.Total.Validate(); err != nil {
		return plan{}, core.Invalid("amount", err)
	}
	if err := req.Month.Validate(); err != nil {
		return plan{}, core.Invalid("date", err)
	}
	if err := core.ValidateDescription(req.Description); err != nil {
		return plan{}, err
	}
	switch typ {
	case core.TypeExpense:
		if err := req.Category.Validate(); err != nil {
			return plan{}, core.Invalid("category", err)
		}
	case core.TypeIncome:
		if req.Category != "" {
			return plan{}, core.Invalid("category", core.ErrUnexpectedCategory)
		}
	}
	policy := req.Policy
	if policy != "" {
		if _, err := GetSplitter(policy); err != nil {
			return plan{}, core.Invalid("split_policy", core.ErrInvalidSplitPolicy)
		}
	}
	s, err := GetSplitter(EffectivePolicy(policy, len(targets)))
	if err != nil {
		return plan{}, core.Invalid("split_policy", core.ErrInvalidSplitPolicy)
	}
	return plan{typ: typ, targets: targets, splitter: s}, nil
}

// Allocate emits one transaction per target property, in target order.
//
//	FULL_EACH:   every record carries Total
//	EQUAL_SPLIT: every record carries Total / n and an apportioned description
func (a *Allocator) Allocate(req Request) ([]core.Transaction, error) {
	p, err := a.plan(req)
	if err != nil {
		return nil, err
	}
	n := len(p.targets)
	shares := p.splitter.Shares(req.Total, n)
	desc := p.splitter.Describe(strings.TrimSpace(req.Description), n)
	now := a.now()

	out := make([]core.Transaction, 0, n)
	for i, pid := range p.targets {
		tx, err := core.NewTransaction(p.typ, core.Entry{
			ID:          a.newID(),
			PropertyID:  pid,
			Amount:      shares[i],
			Description: desc,
			Month:       req.Month,
			CreatedAt:   now,
		}, req.Category)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}
