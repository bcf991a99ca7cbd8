// Package worker regenerates monthly advice when ingestion messages arrive.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/services"
)

// AdviceWorker consumes expense-ingested messages and refreshes the stored
// advice for the affected month.
type AdviceWorker struct {
	advice *services.AdviceService
	now    func() time.Time
}

func NewAdviceWorker(advice *services.AdviceService) *AdviceWorker {
	return &AdviceWorker{advice: advice, now: time.Now}
}

// HandleIngestMessage regenerates the advice report for the message's month.
// Errors propagate so the delivery is requeued.
func (w *AdviceWorker) HandleIngestMessage(ctx context.Context, msg *amqp.ExpenseIngestedMessage) error {
	slog.InfoContext(ctx, "Processing ingest message",
		"batch_id", msg.BatchID,
		"year", msg.Year,
		"month", msg.Month,
		"count", msg.Count)

	report, err := w.advice.GenerateMonthly(ctx, msg.Year, msg.Month)
	if err != nil {
		return fmt.Errorf("regenerate advice for %d-%02d: %w", msg.Year, msg.Month, err)
	}

	slog.InfoContext(ctx, "Regenerated monthly advice",
		"batch_id", msg.BatchID,
		"report_id", report.ID,
		"transactions", report.Analysis.NumTransactions)

	return nil
}

// RefreshCurrentMonth regenerates advice for the month in progress. The
// worker binary calls this on a ticker as a safety net for lost messages.
func (w *AdviceWorker) RefreshCurrentMonth(ctx context.Context) error {
	nowT := w.now()
	year, month := nowT.Year(), int(nowT.Month())

	report, err := w.advice.GenerateMonthly(ctx, year, month)
	if err != nil {
		return fmt.Errorf("refresh advice for %d-%02d: %w", year, month, err)
	}

	slog.InfoContext(ctx, "Refreshed current month advice",
		"report_id", report.ID,
		"year", year,
		"month", month)

	return nil
}
