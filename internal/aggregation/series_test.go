package aggregation

import (
	"testing"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyComparison_Scenario(t *testing.T) {
	got := EnergyComparison(scenarioLedger())
	require.Len(t, got, 1)
	assert.Equal(t, core.MonthKey("2025-12"), got[0].Month)
	assert.True(t, got[0].Total.Equal(money("240")))
}

func TestSeriesByMonth_SortedAscending(t *testing.T) {
	ledger := []core.Transaction{
		income("i1", "A", "2025-12", 100),
		income("i2", "A", "2025-02", 50),
		income("i3", "B", "2025-12", 25),
		income("i4", "A", "2024-11", 10),
		expense("e1", "A", "2025-03", core.CategoryWater, "5"),
	}
	got := IncomeByMonth(ledger)
	require.Len(t, got, 3)
	assert.Equal(t, core.MonthKey("2024-11"), got[0].Month)
	assert.Equal(t, core.MonthKey("2025-02"), got[1].Month)
	assert.Equal(t, core.MonthKey("2025-12"), got[2].Month)
	assert.True(t, got[2].Total.Equal(money("125")))

	exp := ExpensesByMonth(ledger)
	require.Len(t, exp, 1)
	assert.Equal(t, core.MonthKey("2025-03"), exp[0].Month)
}

func TestSeriesByMonth_Empty(t *testing.T) {
	got := IncomeByMonth(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, EnergyComparison([]core.Transaction{income("i1", "A", "2025-12", 10)}))
}

func TestCategoryByMonth_OnlyMatchingCategory(t *testing.T) {
	ledger := []core.Transaction{
		expense("e1", "A", "2025-11", core.CategoryWater, "40"),
		expense("e2", "A", "2025-11", core.CategoryEnergy, "100"),
		expense("e3", "B", "2025-12", core.CategoryWater, "35.5"),
	}
	got := CategoryByMonth(ledger, core.CategoryWater)
	require.Len(t, got, 2)
	assert.True(t, got[0].Total.Equal(money("40")))
	assert.True(t, got[1].Total.Equal(money("35.5")))
}

func TestSeriesByProperty_FirstSeenOrder(t *testing.T) {
	props := []core.Property{
		{ID: "pb", Name: "B"},
		{ID: "pa", Name: "A"},
	}
	ledger := []core.Transaction{
		income("i1", "pa", "2025-12", 200),
		expense("e1", "pb", "2025-12", core.CategoryEnergy, "90"),
		income("i2", "pb", "2025-12", 500),
		income("i3", "pa", "2025-11", 999),
	}
	got := SeriesByProperty(ledger, "2025-12", props)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].PropertyName)
	assert.True(t, got[0].Income.Equal(money("200")))
	assert.Equal(t, "B", got[1].PropertyName)
	assert.True(t, got[1].Income.Equal(money("500")))
}

func TestSeriesByProperty_AccumulatesAndFallsBack(t *testing.T) {
	props := []core.Property{{ID: "pa", Name: "A"}}
	ledger := []core.Transaction{
		income("i1", "gone", "2025-12", 50),
		income("i2", "pa", "2025-12", 200),
		income("i3", "gone", "2025-12", 25),
	}
	got := SeriesByProperty(ledger, "2025-12", props)
	require.Len(t, got, 2)
	assert.Equal(t, UnknownPropertyName, got[0].PropertyName)
	assert.Equal(t, "gone", got[0].PropertyID)
	assert.True(t, got[0].Income.Equal(money("75")))
	assert.Equal(t, "A", got[1].PropertyName)
}

func TestSeriesByProperty_Empty(t *testing.T) {
	got := SeriesByProperty(nil, "2025-12", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
