package services

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/advisor"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// AdviceService generates monthly advice reports and persists their text.
type AdviceService struct {
	reader  store.RecordReader
	advice  store.AdviceWriter
	recent  store.AdviceReader
	advisor *advisor.Advisor
}

func NewAdviceService(reader store.RecordReader, advice store.AdviceWriter, recent store.AdviceReader, adv *advisor.Advisor) *AdviceService {
	if adv == nil {
		adv = advisor.New()
	}
	return &AdviceService{
		reader:  reader,
		advice:  advice,
		recent:  recent,
		advisor: adv,
	}
}

// Analyze runs the analysis engine over the given month's records without
// generating or persisting advice.
func (s *AdviceService) Analyze(ctx context.Context, year, month int) (core.AnalysisResult, error) {
	records, err := s.reader.ByMonth(ctx, year, month)
	if err != nil {
		return core.AnalysisResult{}, fmt.Errorf("load month records: %w", err)
	}
	return s.advisor.Analyze(records, 0, 0), nil
}

// GenerateMonthly builds the full advice report for a month and stores the
// composed text. An empty month still produces a report; it is never an error.
func (s *AdviceService) GenerateMonthly(ctx context.Context, year, month int) (core.AdviceReport, error) {
	records, err := s.reader.ByMonth(ctx, year, month)
	if err != nil {
		return core.AdviceReport{}, fmt.Errorf("load month records: %w", err)
	}

	report, err := s.advisor.MonthlyReport(records, 0, 0)
	if err != nil {
		return core.AdviceReport{}, fmt.Errorf("generate advice: %w", err)
	}

	id, err := s.advice.SaveAdvice(ctx, report.AdviceText, report.GeneratedAt)
	if err != nil {
		return core.AdviceReport{}, fmt.Errorf("save advice: %w", err)
	}

	slog.InfoContext(ctx, "Generated monthly advice",
		"report_id", report.ID,
		"advice_id", id,
		"year", year,
		"month", month,
		"transactions", report.Analysis.NumTransactions,
		"overspending", len(report.Overspending))

	return report, nil
}

// Recent returns up to limit persisted advice entries, newest first.
func (s *AdviceService) Recent(ctx context.Context, limit int) ([]core.AdviceEntry, error) {
	return s.recent.RecentAdvice(ctx, limit)
}
