package aggregation

import (
	"testing"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func income(id, pid string, month core.MonthKey, amount int64) core.Transaction {
	return core.Income{Entry: core.Entry{ID: id, PropertyID: pid, Month: month, Amount: core.MoneyFromInt(amount)}}
}

func expense(id, pid string, month core.MonthKey, c core.Category, amount string) core.Transaction {
	return core.Expense{
		Entry:    core.Entry{ID: id, PropertyID: pid, Month: month, Amount: core.NewMoney(decimal.RequireFromString(amount))},
		Category: c,
	}
}

func money(s string) core.Money { return core.NewMoney(decimal.RequireFromString(s)) }

func scenarioLedger() []core.Transaction {
	return []core.Transaction{
		income("i1", "A", "2025-12", 1000),
		expense("e1", "A", "2025-12", core.CategoryEnergy, "150"),
		expense("e2", "B", "2025-12", core.CategoryEnergy, "90"),
	}
}

func TestMonthly_Scenario(t *testing.T) {
	s := Monthly(scenarioLedger(), "2025-12")

	assert.True(t, s.TotalIncome.Equal(money("1000")))
	assert.True(t, s.TotalExpenses.Equal(money("240")))
	assert.True(t, s.Commission.Equal(money("150")))
	assert.True(t, s.NetProfit.Equal(money("760")))
	require.Len(t, s.ExpensesByCategory, 1)
	assert.True(t, s.ExpensesByCategory[core.CategoryEnergy].Equal(money("240")))
}

func TestMonthly_EmptyLedger(t *testing.T) {
	s := Monthly(nil, "2025-12")
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.Commission.IsZero())
	assert.True(t, s.NetProfit.IsZero())
	assert.NotNil(t, s.ExpensesByCategory)
	assert.Empty(t, s.ExpensesByCategory)
}

func TestMonthly_NetProfitIgnoresCommission(t *testing.T) {
	ledger := []core.Transaction{
		income("i1", "A", "2025-11", 333),
		income("i2", "B", "2025-11", 17),
		expense("e1", "A", "2025-11", core.CategoryTaxes, "400.50"),
		expense("e2", "A", "2025-10", core.CategoryTaxes, "9999"),
	}
	s := Monthly(ledger, "2025-11")
	assert.True(t, s.NetProfit.Equal(s.TotalIncome.Sub(s.TotalExpenses)))
	assert.True(t, s.NetProfit.Equal(money("-50.50")))
	assert.True(t, s.Commission.Equal(money("52.5")))
}

func TestMonthly_CommissionZeroWithoutIncome(t *testing.T) {
	ledger := []core.Transaction{expense("e1", "A", "2025-11", core.CategoryWater, "80")}
	s := Monthly(ledger, "2025-11")
	assert.True(t, s.Commission.IsZero())
	assert.True(t, s.NetProfit.Equal(money("-80")))
}

func TestMonthly_CategoriesSumToTotal(t *testing.T) {
	ledger := []core.Transaction{
		expense("e1", "A", "2025-12", core.CategoryEnergy, "150.10"),
		expense("e2", "A", "2025-12", core.CategoryWater, "33.333333"),
		expense("e3", "B", "2025-12", core.CategoryCleaning, "120"),
		expense("e4", "B", "2025-12", core.CategoryWater, "10"),
		income("i1", "B", "2025-12", 500),
	}
	s := Monthly(ledger, "2025-12")
	sum := core.Money{}
	for _, v := range s.ExpensesByCategory {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(s.TotalExpenses))
	assert.Len(t, s.ExpensesByCategory, 3)
}

func TestMonthly_Idempotent(t *testing.T) {
	ledger := scenarioLedger()
	first := Monthly(ledger, "2025-12")
	second := Monthly(ledger, "2025-12")
	assert.Equal(t, first, second)
	assert.Equal(t, scenarioLedger(), ledger)
}

func TestPropertyScoped(t *testing.T) {
	ledger := []core.Transaction{
		income("i1", "A", "2025-11", 700),
		income("i2", "A", "2025-12", 1000),
		expense("e1", "A", "2025-12", core.CategoryEnergy, "150"),
		expense("e2", "B", "2025-12", core.CategoryEnergy, "90"),
	}

	month := PropertyScoped(ledger, "A", InMonth("2025-12"))
	assert.True(t, month.TotalIncome.Equal(money("1000")))
	assert.True(t, month.TotalExpenses.Equal(money("150")))
	assert.True(t, month.NetProfit.Equal(money("850")))
	assert.Equal(t, 2, month.Count)

	all := PropertyScoped(ledger, "A", AllTime)
	assert.True(t, all.TotalIncome.Equal(money("1700")))
	assert.True(t, all.NetProfit.Equal(money("1550")))
	assert.Equal(t, 3, all.Count)

	none := PropertyScoped(ledger, "Z", AllTime)
	assert.True(t, none.TotalIncome.IsZero())
	assert.Empty(t, none.ExpensesByCategory)
}

func TestParseScope(t *testing.T) {
	s, err := ParseScope("all")
	require.NoError(t, err)
	assert.True(t, s.All())
	assert.Equal(t, "all", s.String())

	s, err = ParseScope("2025-12")
	require.NoError(t, err)
	assert.Equal(t, core.MonthKey("2025-12"), s.Month)

	_, err = ParseScope("December")
	assert.ErrorIs(t, err, core.ErrInvalidMonth)
}

func TestCategoryBreakdown(t *testing.T) {
	ledger := []core.Transaction{
		expense("e1", "A", "2025-11", core.CategoryEnergy, "100"),
		expense("e2", "A", "2025-12", core.CategoryEnergy, "150"),
		expense("e3", "B", "2025-12", core.CategoryInternet, "99.90"),
		income("i1", "B", "2025-12", 500),
	}
	all := CategoryBreakdown(ledger, AllTime)
	assert.True(t, all[core.CategoryEnergy].Equal(money("250")))
	assert.True(t, all[core.CategoryInternet].Equal(money("99.90")))

	dec := CategoryBreakdown(ledger, InMonth("2025-12"))
	assert.True(t, dec[core.CategoryEnergy].Equal(money("150")))

	assert.Empty(t, CategoryBreakdown(nil, AllTime))
}

func TestMonths(t *testing.T) {
	ledger := []core.Transaction{
		income("i1", "A", "2025-10", 1),
		income("i2", "A", "2025-12", 1),
		income("i3", "A", "2024-12", 1),
		income("i4", "A", "2025-12", 1),
	}
	assert.Equal(t, []core.MonthKey{"2025-12", "2025-10", "2024-12"}, Months(ledger))
	assert.Empty(t, Months(nil))
}
