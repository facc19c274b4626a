package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/aggregation"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/ledger"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/report"
)

// ReportService serves the read side. Every call takes a fresh snapshot
// of the store and folds it; nothing is cached between calls.
type ReportService struct {
	store  ledger.Store
	logger *log.Logger
}

func NewReportService(store ledger.Store, logger *log.Logger) *ReportService {
	if logger == nil {
		logger = log.Default(log.ComponentReports)
	}
	return &ReportService{store: store, logger: logger.WithComponent(log.ComponentReports)}
}

func (s *ReportService) transactions(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return txs, nil
}

// snapshot loads transactions and properties concurrently.
func (s *ReportService) snapshot(ctx context.Context) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.store.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("load ledger: %w", err)
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		props, err := s.store.ListProperties(gctx)
		if err != nil {
			return fmt.Errorf("load properties: %w", err)
		}
		snap.Properties = props
		return nil
	})
	if err := g.Wait(); err != nil {
		return ledger.Snapshot{}, err
	}
	s.logger.DebugContext(ctx, "Ledger snapshot loaded",
		log.FieldCount, len(snap.Transactions),
		"properties", len(snap.Properties))
	return snap, nil
}

func (s *ReportService) MonthlySummary(ctx context.Context, month core.MonthKey) (report.MonthlySummaryView, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return report.MonthlySummaryView{}, err
	}
	return report.MonthlySummary(aggregation.Monthly(txs, month)), nil
}

func (s *ReportService) IncomeByMonth(ctx context.Context) ([]report.IncomePoint, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return report.IncomeSeries(aggregation.IncomeByMonth(txs)), nil
}

func (s *ReportService) ExpensesByMonth(ctx context.Context) ([]report.ExpensePoint, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return report.ExpenseSeries(aggregation.ExpensesByMonth(txs)), nil
}

func (s *ReportService) EnergyComparison(ctx context.Context) ([]report.EnergyPoint, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return report.EnergySeries(aggregation.EnergyComparison(txs)), nil
}

func (s *ReportService) IncomeByProperty(ctx context.Context, month core.MonthKey) ([]report.PropertyIncomePoint, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.PropertyIncome(aggregation.SeriesByProperty(snap.Transactions, month, snap.Properties)), nil
}

// Dashboard is the month summary plus the merged income/expense series.
func (s *ReportService) Dashboard(ctx context.Context, month core.MonthKey) (report.DashboardView, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return report.DashboardView{}, err
	}
	return report.Dashboard(
		aggregation.Monthly(txs, month),
		aggregation.IncomeByMonth(txs),
		aggregation.ExpensesByMonth(txs),
	), nil
}

func (s *ReportService) Categories(ctx context.Context, scope aggregation.Scope) (report.CategoryBreakdownView, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return report.CategoryBreakdownView{}, err
	}
	return report.CategoryBreakdown(scope, aggregation.CategoryBreakdown(txs, scope)), nil
}

// PropertySummary fails with *core.NotFoundError for unknown properties.
func (s *ReportService) PropertySummary(ctx context.Context, propertyID string, scope aggregation.Scope) (report.PropertySummaryView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return report.PropertySummaryView{}, err
	}
	name, ok := snap.PropertyName(propertyID)
	if !ok {
		return report.PropertySummaryView{}, core.NotFound("property", propertyID)
	}
	return report.PropertySummary(aggregation.PropertyScoped(snap.Transactions, propertyID, scope), name), nil
}

// Months lists the months with records, newest first.
func (s *ReportService) Months(ctx context.Context) ([]report.MonthOption, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return report.Months(aggregation.Months(txs)), nil
}
