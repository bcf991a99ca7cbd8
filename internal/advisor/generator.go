package advisor

import "budgetbuddy/internal/core"

// Generator turns an analysis pass into report text. The templated
// implementation is the default and the only one shipped; a model-backed
// variant can slot in here without touching the composer or its callers.
type Generator interface {
	Generate(analysis core.AnalysisResult, overspending []core.OverspendingEntry, tips []string) (string, error)
}

// TemplatedGenerator renders the deterministic rule-based report.
type TemplatedGenerator struct {
	advisor *Advisor
}

// NewTemplatedGenerator wires the composer as a Generator.
func NewTemplatedGenerator(a *Advisor) *TemplatedGenerator {
	return &TemplatedGenerator{advisor: a}
}

// Generate composes the templated report. It never fails: composition is
// arithmetic and string assembly, and empty sections are simply omitted.
func (g *TemplatedGenerator) Generate(analysis core.AnalysisResult, overspending []core.OverspendingEntry, tips []string) (string, error) {
	return g.advisor.Compose(analysis, overspending, tips), nil
}
