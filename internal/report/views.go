package report

import (
	"sort"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/aggregation"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
)

type (
	MonthlySummaryView struct {
		Month              core.MonthKey     `json:"month"`
		Label              string            `json:"label"`
		TotalIncome        Amount            `json:"total_income"`
		TotalExpenses      Amount            `json:"total_expenses"`
		Commission         Amount            `json:"commission"`
		NetProfit          Amount            `json:"net_profit"`
		ExpensesByCategory map[string]Amount `json:"expenses_by_category"`
		TotalIncomeDisplay string            `json:"total_income_display"`
		ExpensesDisplay    string            `json:"total_expenses_display"`
		CommissionDisplay  string            `json:"commission_display"`
		NetProfitDisplay   string            `json:"net_profit_display"`
	}

	IncomePoint struct {
		Month  core.MonthKey `json:"month"`
		Label  string        `json:"label"`
		Income Amount        `json:"income"`
	}

	ExpensePoint struct {
		Month    core.MonthKey `json:"month"`
		Label    string        `json:"label"`
		Expenses Amount        `json:"expenses"`
	}

	EnergyPoint struct {
		Month  core.MonthKey `json:"month"`
		Label  string        `json:"label"`
		Energy Amount        `json:"energy"`
	}

	// DashboardPoint merges the income and expense series on one month.
	DashboardPoint struct {
		Month    core.MonthKey `json:"month"`
		Label    string        `json:"label"`
		Income   Amount        `json:"income"`
		Expenses Amount        `json:"expenses"`
	}

	DashboardView struct {
		Summary MonthlySummaryView `json:"summary"`
		Series  []DashboardPoint   `json:"series"`
	}

	PropertyIncomePoint struct {
		PropertyID   string `json:"property_id"`
		PropertyName string `json:"property_name"`
		Income       Amount `json:"income"`
	}

	PropertySummaryView struct {
		PropertyID         string            `json:"property_id"`
		PropertyName       string            `json:"property_name"`
		Scope              string            `json:"scope"`
		Label              string            `json:"label"`
		TotalIncome        Amount            `json:"total_income"`
		TotalExpenses      Amount            `json:"total_expenses"`
		NetProfit          Amount            `json:"net_profit"`
		ExpensesByCategory map[string]Amount `json:"expenses_by_category"`
		TransactionCount   int               `json:"transaction_count"`
	}

	CategoryAmount struct {
		Category core.Category `json:"category"`
		Total    Amount        `json:"total"`
	}

	CategoryBreakdownView struct {
		Scope      string           `json:"scope"`
		Label      string           `json:"label"`
		Categories []CategoryAmount `json:"categories"`
		Total      Amount           `json:"total"`
	}

	MonthOption struct {
		Month core.MonthKey `json:"month"`
		Label string        `json:"label"`
	}
)

// AllTimeLabel is shown for the all-time scope.
const AllTimeLabel = "Todo o período"

func MonthlySummary(s aggregation.MonthlySummary) MonthlySummaryView {
	return MonthlySummaryView{
		Month:              s.Month,
		Label:              s.Month.Label(),
		TotalIncome:        Round(s.TotalIncome),
		TotalExpenses:      Round(s.TotalExpenses),
		Commission:         Round(s.Commission),
		NetProfit:          Round(s.NetProfit),
		ExpensesByCategory: roundMap(s.ExpensesByCategory),
		TotalIncomeDisplay: s.TotalIncome.Format(),
		ExpensesDisplay:    s.TotalExpenses.Format(),
		CommissionDisplay:  s.Commission.Format(),
		NetProfitDisplay:   s.NetProfit.Format(),
	}
}

func IncomeSeries(series []aggregation.MonthTotal) []IncomePoint {
	out := make([]IncomePoint, 0, len(series))
	for _, p := range ascending(series) {
		out = append(out, IncomePoint{Month: p.Month, Label: p.Month.Label(), Income: Round(p.Total)})
	}
	return out
}

func ExpenseSeries(series []aggregation.MonthTotal) []ExpensePoint {
	out := make([]ExpensePoint, 0, len(series))
	for _, p := range ascending(series) {
		out = append(out, ExpensePoint{Month: p.Month, Label: p.Month.Label(), Expenses: Round(p.Total)})
	}
	return out
}

func EnergySeries(series []aggregation.MonthTotal) []EnergyPoint {
	out := make([]EnergyPoint, 0, len(series))
	for _, p := range ascending(series) {
		out = append(out, EnergyPoint{Month: p.Month, Label: p.Month.Label(), Energy: Round(p.Total)})
	}
	return out
}

// MergeSeries joins income and expense series by month key. A month present
// on one side only gets zero on the other.
func MergeSeries(income, expenses []aggregation.MonthTotal) []DashboardPoint {
	type pair struct{ income, expenses core.Money }
	byMonth := make(map[core.MonthKey]*pair)
	get := func(m core.MonthKey) *pair {
		p, ok := byMonth[m]
		if !ok {
			p = &pair{}
			byMonth[m] = p
		}
		return p
	}
	for _, p := range income {
		v := get(p.Month)
		v.income = v.income.Add(p.Total)
	}
	for _, p := range expenses {
		v := get(p.Month)
		v.expenses = v.expenses.Add(p.Total)
	}

	months := make([]core.MonthKey, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	out := make([]DashboardPoint, 0, len(months))
	for _, m := range months {
		v := byMonth[m]
		out = append(out, DashboardPoint{
			Month:    m,
			Label:    m.Label(),
			Income:   Round(v.income),
			Expenses: Round(v.expenses),
		})
	}
	return out
}

func Dashboard(s aggregation.MonthlySummary, income, expenses []aggregation.MonthTotal) DashboardView {
	return DashboardView{
		Summary: MonthlySummary(s),
		Series:  MergeSeries(income, expenses),
	}
}

// PropertyIncome keeps the first-seen order of the aggregation.
func PropertyIncome(points []aggregation.PropertyIncome) []PropertyIncomePoint {
	out := make([]PropertyIncomePoint, 0, len(points))
	for _, p := range points {
		out = append(out, PropertyIncomePoint{
			PropertyID:   p.PropertyID,
			PropertyName: p.PropertyName,
			Income:       Round(p.Income),
		})
	}
	return out
}

func PropertySummary(s aggregation.PropertySummary, name string) PropertySummaryView {
	return PropertySummaryView{
		PropertyID:         s.PropertyID,
		PropertyName:       name,
		Scope:              s.Scope.String(),
		Label:              scopeLabel(s.Scope),
		TotalIncome:        Round(s.TotalIncome),
		TotalExpenses:      Round(s.TotalExpenses),
		NetProfit:          Round(s.NetProfit),
		ExpensesByCategory: roundMap(s.ExpensesByCategory),
		TransactionCount:   s.Count,
	}
}

// CategoryBreakdown lists categories in the fixed display order, skipping
// the ones without expenses.
func CategoryBreakdown(scope aggregation.Scope, byCategory map[core.Category]core.Money) CategoryBreakdownView {
	out := CategoryBreakdownView{
		Scope:      scope.String(),
		Label:      scopeLabel(scope),
		Categories: make([]CategoryAmount, 0, len(byCategory)),
	}
	total := core.Money{}
	seen := make(map[core.Category]bool, len(byCategory))
	emit := func(c core.Category) {
		m, ok := byCategory[c]
		if !ok || seen[c] {
			return
		}
		seen[c] = true
		total = total.Add(m)
		out.Categories = append(out.Categories, CategoryAmount{Category: c, Total: Round(m)})
	}
	for _, c := range core.Categories() {
		emit(c)
	}
	rest := make([]core.Category, 0)
	for c := range byCategory {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, c := range rest {
		emit(c)
	}
	out.Total = Round(total)
	return out
}

// Months is newest first, as returned by aggregation.Months.
func Months(keys []core.MonthKey) []MonthOption {
	out := make([]MonthOption, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthOption{Month: k, Label: k.Label()})
	}
	return out
}

func scopeLabel(s aggregation.Scope) string {
	if s.All() {
		return AllTimeLabel
	}
	return s.Month.Label()
}

func ascending(series []aggregation.MonthTotal) []aggregation.MonthTotal {
	out := make([]aggregation.MonthTotal, len(series))
	copy(out, series)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
