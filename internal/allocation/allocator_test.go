package allocation

import (
	"fmt"
	"testing"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tx-%d", n)
	}
}

func newTestAllocator() *Allocator {
	fixed := time.Date(2025, 12, 3, 10, 0, 0, 0, time.UTC)
	return New(WithIDGenerator(seqIDs()), WithClock(func() time.Time { return fixed }))
}

func expenseRequest(total int64, policy SplitPolicy, ids ...string) Request {
	return Request{
		Type:        core.TypeExpense,
		PropertyIDs: ids,
		Category:    core.CategoryEnergy,
		Total:       core.MoneyFromInt(total),
		Description: "Conta de luz",
		Month:       "2025-12",
		Policy:      policy,
	}
}

func TestAllocate_EqualSplitScenario(t *testing.T) {
	txs, err := newTestAllocator().Allocate(expenseRequest(300, EqualSplit, "A", "B", "C"))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	for i, tx := range txs {
		exp, ok := tx.(core.Expense)
		require.True(t, ok)
		assert.True(t, exp.Amount.Equal(core.MoneyFromInt(100)), "record %d amount %s", i, exp.Amount)
		assert.Equal(t, core.MonthKey("2025-12"), exp.Month)
		assert.Equal(t, core.CategoryEnergy, exp.Category)
		assert.True(t, IsApportioned(exp.Description))
		assert.Equal(t, "Conta de luz (rateado entre 3 imóveis)", exp.Description)
	}
	assert.Equal(t, "A", txs[0].Common().PropertyID)
	assert.Equal(t, "C", txs[2].Common().PropertyID)
	assert.Equal(t, "tx-1", txs[0].Common().ID)
	assert.Equal(t, "tx-3", txs[2].Common().ID)
}

func TestAllocate_EqualSplitSumsToTotal(t *testing.T) {
	tolerance := decimal.RequireFromString("0.01")
	for n := 2; n <= 9; n++ {
		for _, total := range []int64{1, 100, 333, 1000, 12345} {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("p%d", i)
			}
			txs, err := newTestAllocator().Allocate(expenseRequest(total, EqualSplit, ids...))
			require.NoError(t, err)
			require.Len(t, txs, n)

			sum := core.Money{}
			for _, tx := range txs {
				sum = sum.Add(tx.Common().Amount)
			}
			diff := sum.Sub(core.MoneyFromInt(total)).Decimal().Abs()
			assert.True(t, diff.LessThan(tolerance), "n=%d total=%d sum=%s", n, total, sum)
		}
	}
}

func TestAllocate_FullEach(t *testing.T) {
	txs, err := newTestAllocator().Allocate(expenseRequest(80, FullEach, "A", "B", "C", "D"))
	require.NoError(t, err)
	require.Len(t, txs, 4)
	for _, tx := range txs {
		assert.True(t, tx.Common().Amount.Equal(core.MoneyFromInt(80)))
		assert.Equal(t, "Conta de luz", tx.Common().Description)
		assert.False(t, IsApportioned(tx.Common().Description))
	}
}

func TestAllocate_SingleTargetIgnoresSplit(t *testing.T) {
	txs, err := newTestAllocator().Allocate(expenseRequest(90, EqualSplit, "B"))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Common().Amount.Equal(core.MoneyFromInt(90)))
	assert.Equal(t, "Conta de luz", txs[0].Common().Description)
}

func TestAllocate_DeduplicatesTargets(t *testing.T) {
	txs, err := newTestAllocator().Allocate(expenseRequest(100, EqualSplit, "A", " A", "B", ""))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.True(t, txs[0].Common().Amount.Equal(core.MoneyFromInt(50)))
}

func TestAllocate_Income(t *testing.T) {
	req := Request{Type: core.TypeIncome, PropertyIDs: []string{"A"}, Total: core.MoneyFromInt(1000), Month: "2025-12", Policy: EqualSplit}
	txs, err := newTestAllocator().Allocate(req)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	_, ok := txs[0].(core.Income)
	assert.True(t, ok)
}

func TestAllocate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"empty targets", expenseRequest(100, FullEach), core.ErrNoTargetProperty},
		{"blank targets", expenseRequest(100, FullEach, " ", ""), core.ErrNoTargetProperty},
		{"zero total", expenseRequest(0, FullEach, "A"), core.ErrInvalidAmount},
		{"negative total", expenseRequest(-5, FullEach, "A"), core.ErrInvalidAmount},
		{"income on two properties", Request{Type: core.TypeIncome, PropertyIDs: []string{"A", "B"}, Total: core.MoneyFromInt(1), Month: "2025-12"}, core.ErrIncomeSingleProperty},
		{"income with category", Request{Type: core.TypeIncome, PropertyIDs: []string{"A"}, Category: core.CategoryEnergy, Total: core.MoneyFromInt(1), Month: "2025-12"}, core.ErrUnexpectedCategory},
		{"expense without category", Request{Type: core.TypeExpense, PropertyIDs: []string{"A"}, Total: core.MoneyFromInt(1), Month: "2025-12"}, core.ErrMissingCategory},
		{"unknown category", Request{Type: core.TypeExpense, PropertyIDs: []string{"A"}, Category: "Gás", Total: core.MoneyFromInt(1), Month: "2025-12"}, core.ErrInvalidCategory},
		{"bad month", Request{Type: core.TypeIncome, PropertyIDs: []string{"A"}, Total: core.MoneyFromInt(1), Month: "2025-13"}, core.ErrInvalidMonth},
		{"bad type", Request{Type: "transfer", PropertyIDs: []string{"A"}, Total: core.MoneyFromInt(1), Month: "2025-12"}, core.ErrInvalidType},
		{"bad policy", expenseRequest(100, "HALF", "A", "B"), core.ErrInvalidSplitPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := newTestAllocator().Allocate(tt.req)
			assert.Nil(t, txs)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, core.IsValidation(err))
		})
	}
}

func TestParseSplitPolicy(t *testing.T) {
	p, err := ParseSplitPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FullEach, p)

	p, err = ParseSplitPolicy("equal_split")
	require.NoError(t, err)
	assert.Equal(t, EqualSplit, p)

	_, err = ParseSplitPolicy("random")
	assert.ErrorIs(t, err, core.ErrInvalidSplitPolicy)
}

func TestEffectivePolicy(t *testing.T) {
	assert.Equal(t, FullEach, EffectivePolicy(EqualSplit, 1))
	assert.Equal(t, EqualSplit, EffectivePolicy(EqualSplit, 2))
	assert.Equal(t, FullEach, EffectivePolicy("", 5))
}
