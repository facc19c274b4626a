package aggregation

import (
	"sort"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
)

// MonthTotal is one point of a month series.
type MonthTotal struct {
	Month core.MonthKey
	Total core.Money
}

// SeriesByMonth groups the records matching f by month and sums them.
// The result is sorted ascending by month key and never nil.
func SeriesByMonth(records []core.Transaction, f Filter) []MonthTotal {
	sums := make(map[core.MonthKey]core.Money)
	for _, tx := range records {
		if !f.Match(tx) {
			continue
		}
		e := tx.Common()
		sums[e.Month] = sums[e.Month].Add(e.Amount)
	}
	out := make([]MonthTotal, 0, len(sums))
	for m, total := range sums {
		out = append(out, MonthTotal{Month: m, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func IncomeByMonth(records []core.Transaction) []MonthTotal {
	return SeriesByMonth(records, Filter{Type: core.TypeIncome})
}

func ExpensesByMonth(records []core.Transaction) []MonthTotal {
	return SeriesByMonth(records, Filter{Type: core.TypeExpense})
}

// CategoryByMonth is the month series of one expense category.
func CategoryByMonth(records []core.Transaction, c core.Category) []MonthTotal {
	return SeriesByMonth(records, Filter{Type: core.TypeExpense, Category: c})
}

// EnergyComparison is CategoryByMonth for Luz.
func EnergyComparison(records []core.Transaction) []MonthTotal {
	return CategoryByMonth(records, core.CategoryEnergy)
}

// PropertyIncome is one point of the per-property income series.
type PropertyIncome struct {
	PropertyID   string
	PropertyName string
	Income       core.Money
}

// SeriesByProperty sums income per property for month. Points keep the
// order in which each property first appears in records. Ids missing from
// properties are labelled UnknownPropertyName.
func SeriesByProperty(records []core.Transaction, month core.MonthKey, properties []core.Property) []PropertyIncome {
	names := make(map[string]string, len(properties))
	for _, p := range properties {
		names[p.ID] = p.Name
	}
	index := make(map[string]int)
	out := make([]PropertyIncome, 0)
	f := Filter{Month: month, Type: core.TypeIncome}
	for _, tx := range records {
		if !f.Match(tx) {
			continue
		}
		e := tx.Common()
		i, ok := index[e.PropertyID]
		if !ok {
			name, known := names[e.PropertyID]
			if !known {
				name = UnknownPropertyName
			}
			i = len(out)
			index[e.PropertyID] = i
			out = append(out, PropertyIncome{PropertyID: e.PropertyID, PropertyName: name})
		}
		out[i].Income = out[i].Income.Add(e.Amount)
	}
	return out
}
