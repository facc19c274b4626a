// Package aggregation folds ledger snapshots into report figures.
//
// Every function here is a pure fold over the slice it receives: no state is
// kept between calls and inputs are never modified. Sums are exact decimal
// additions; rounding belongs to the report layer.
package aggregation

import (
	"sort"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/shopspring/decimal"
)

// UnknownPropertyName labels income whose property id no longer resolves.
const UnknownPropertyName = "Desconhecida"

// CommissionRate is fixed at 15% of income.
var CommissionRate = decimal.RequireFromString("0.15")

// Filter selects records. Zero fields match everything.
type Filter struct {
	Month      core.MonthKey
	PropertyID string
	Type       core.TransactionType
	Category   core.Category
}

func (f Filter) Match(tx core.Transaction) bool {
	e := tx.Common()
	if f.Month != "" && e.Month != f.Month {
		return false
	}
	if f.PropertyID != "" && e.PropertyID != f.PropertyID {
		return false
	}
	if f.Type != "" && tx.Type() != f.Type {
		return false
	}
	if f.Category != "" && core.CategoryOf(tx) != f.Category {
		return false
	}
	return true
}

// Totals are the income/expense sums over a filtered set.
type Totals struct {
	Income     core.Money
	Expenses   core.Money
	ByCategory map[core.Category]core.Money
	Count      int
}

// NetProfit is income minus expenses. Commission is never subtracted.
func (t Totals) NetProfit() core.Money { return t.Income.Sub(t.Expenses) }

// Fold sums the records matching f. ByCategory is never nil.
func Fold(records []core.Transaction, f Filter) Totals {
	t := Totals{ByCategory: make(map[core.Category]core.Money)}
	for _, tx := range records {
		if !f.Match(tx) {
			continue
		}
		t.Count++
		amount := tx.Common().Amount
		switch v := tx.(type) {
		case core.Income:
			t.Income = t.Income.Add(amount)
		case core.Expense:
			t.Expenses = t.Expenses.Add(amount)
			t.ByCategory[v.Category] = t.ByCategory[v.Category].Add(amount)
		}
	}
	return t
}

// Commission returns income × CommissionRate, unrounded.
func Commission(income core.Money) core.Money {
	return income.Mul(CommissionRate)
}

// MonthlySummary holds the figures of one month.
type MonthlySummary struct {
	Month              core.MonthKey
	TotalIncome        core.Money
	TotalExpenses      core.Money
	Commission         core.Money
	NetProfit          core.Money
	ExpensesByCategory map[core.Category]core.Money
}

// Monthly summarizes the records dated month.
func Monthly(records []core.Transaction, month core.MonthKey) MonthlySummary {
	t := Fold(records, Filter{Month: month})
	return MonthlySummary{
		Month:              month,
		TotalIncome:        t.Income,
		TotalExpenses:      t.Expenses,
		Commission:         Commission(t.Income),
		NetProfit:          t.NetProfit(),
		ExpensesByCategory: t.ByCategory,
	}
}

// Scope is either one month or all time.
type Scope struct {
	Month core.MonthKey
}

// AllTime is the scope without a month filter.
var AllTime = Scope{}

func InMonth(m core.MonthKey) Scope { return Scope{Month: m} }

func (s Scope) All() bool { return s.Month == "" }

func (s Scope) String() string {
	if s.All() {
		return "all"
	}
	return string(s.Month)
}

// ParseScope accepts "all" or a month key.
func ParseScope(s string) (Scope, error) {
	if s == "all" {
		return AllTime, nil
	}
	m, err := core.ParseMonthKey(s)
	if err != nil {
		return Scope{}, err
	}
	return InMonth(m), nil
}

// PropertySummary is the detail-view summary of one property. It has no
// commission field.
type PropertySummary struct {
	PropertyID         string
	Scope              Scope
	TotalIncome        core.Money
	TotalExpenses      core.Money
	NetProfit          core.Money
	ExpensesByCategory map[core.Category]core.Money
	Count              int
}

// PropertyScoped filters by property first, then by the scope's month.
func PropertyScoped(records []core.Transaction, propertyID string, scope Scope) PropertySummary {
	t := Fold(records, Filter{PropertyID: propertyID, Month: scope.Month})
	return PropertySummary{
		PropertyID:         propertyID,
		Scope:              scope,
		TotalIncome:        t.Income,
		TotalExpenses:      t.Expenses,
		NetProfit:          t.NetProfit(),
		ExpensesByCategory: t.ByCategory,
		Count:              t.Count,
	}
}

// CategoryBreakdown sums expenses per category within scope.
func CategoryBreakdown(records []core.Transaction, scope Scope) map[core.Category]core.Money {
	return Fold(records, Filter{Type: core.TypeExpense, Month: scope.Month}).ByCategory
}

// Months returns the distinct month keys present, newest first.
func Months(records []core.Transaction) []core.MonthKey {
	seen := make(map[core.MonthKey]struct{})
	out := make([]core.MonthKey, 0)
	for _, tx := range records {
		m := tx.Common().Month
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
