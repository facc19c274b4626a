// Package worker reacts to ledger events published by the API.
package worker

import (
	"context"
	"fmt"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/amqp"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/report"
)

// MonthReporter is satisfied by *services.ReportService.
type MonthReporter interface {
	MonthlySummary(ctx context.Context, month core.MonthKey) (report.MonthlySummaryView, error)
}

// LedgerWorker recomputes the monthly summary of every month touched by a
// ledger event.
type LedgerWorker struct {
	reports MonthReporter
	logger  *log.Logger
}

func NewLedgerWorker(reports MonthReporter, logger *log.Logger) *LedgerWorker {
	if logger == nil {
		logger = log.Default(log.ComponentWorker)
	}
	return &LedgerWorker{reports: reports, logger: logger.WithComponent(log.ComponentWorker)}
}

// HandleLedgerEvent is an amqp.Handler. Events without a usable month are
// acknowledged without work; a failed recomputation is returned so the
// delivery is requeued.
func (w *LedgerWorker) HandleLedgerEvent(ctx context.Context, evt *amqp.LedgerEvent) error {
	w.logger.InfoContext(ctx, "Processing ledger event",
		log.FieldEvent, string(evt.Event),
		log.FieldTransactionID, evt.TransactionID,
		log.FieldPropertyID, evt.PropertyID,
		log.FieldMonth, evt.Month)

	if evt.Event == amqp.EventPropertyDeleted {
		w.logger.InfoContext(ctx, "Property removed from ledger", log.FieldPropertyID, evt.PropertyID)
		return nil
	}

	month, err := core.ParseMonthKey(evt.Month)
	if err != nil {
		w.logger.WarnContext(ctx, "Skipping event without a valid month",
			log.FieldEvent, string(evt.Event),
			log.FieldMonth, evt.Month)
		return nil
	}

	summary, err := w.reports.MonthlySummary(ctx, month)
	if err != nil {
		return fmt.Errorf("recompute summary for %s: %w", month, err)
	}

	w.logger.InfoContext(ctx, "Monthly summary recomputed",
		log.FieldMonth, string(summary.Month),
		"income", summary.TotalIncomeDisplay,
		"expenses", summary.ExpensesDisplay,
		"commission", summary.CommissionDisplay,
		"net_profit", summary.NetProfitDisplay)
	return nil
}
