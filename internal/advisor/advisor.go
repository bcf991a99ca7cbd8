package advisor

import (
	"time"

	"github.com/google/uuid"

	"budgetbuddy/internal/core"
)

// Advisor runs the analysis pipeline. It owns no persistent state; every
// method is a pure function of its arguments plus the configured thresholds.
type Advisor struct {
	thresholds Thresholds
	tipTable   map[string]string
	generator  Generator
	now        func() time.Time
}

// Option customizes an Advisor at construction.
type Option func(*Advisor)

// WithThresholds overrides the default policy constants.
func WithThresholds(t Thresholds) Option {
	return func(a *Advisor) { a.thresholds = t }
}

// WithTipTable replaces the category tip table.
func WithTipTable(pairs []TipEntry) Option {
	return func(a *Advisor) { a.tipTable = buildTipTable(pairs) }
}

// WithGenerator swaps the advice text generator strategy.
func WithGenerator(g Generator) Option {
	return func(a *Advisor) { a.generator = g }
}

// WithClock overrides the report timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Advisor) { a.now = now }
}

// New builds an Advisor with default thresholds, the default tip table and
// the templated generator.
func New(opts ...Option) *Advisor {
	a := &Advisor{
		thresholds: DefaultThresholds(),
		tipTable:   buildTipTable(defaultTipTable),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.generator == nil {
		a.generator = NewTemplatedGenerator(a)
	}
	return a
}

// Thresholds returns the configured policy constants.
func (a *Advisor) Thresholds() Thresholds {
	return a.thresholds
}

// MonthlyReport chains analyze, overspending detection, tip generation and
// composition into one AdviceReport stamped with a generation timestamp.
// year and month filter the records when non-zero.
func (a *Advisor) MonthlyReport(records []core.Expense, year, month int) (core.AdviceReport, error) {
	analysis := a.Analyze(records, year, month)
	overspending := a.DetectOverspending(analysis.Breakdown, a.thresholds.OverspendThresholdPct)
	tips := a.GenerateSavingTips(overspending)

	text, err := a.generator.Generate(analysis, overspending, tips)
	if err != nil {
		return core.AdviceReport{}, err
	}

	return core.AdviceReport{
		ID:           uuid.NewString(),
		Analysis:     analysis,
		Overspending: overspending,
		SavingTips:   tips,
		AdviceText:   text,
		GeneratedAt:  a.now(),
	}, nil
}
