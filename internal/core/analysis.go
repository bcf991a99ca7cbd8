package core

import "time"

// Severity classifies how far an overspending category exceeds the
// share-of-total threshold.
type Severity string

const (
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

type (
	// CategoryAmount is one slot of an ordered category breakdown. Order is
	// first occurrence in the analyzed record set, which makes every
	// downstream tie-break deterministic.
	CategoryAmount struct {
		Name    string
		Amount  Money
		Percent float64 // share of total, 0-100
	}

	// CategoryTotal is the store-level aggregate: summed amount plus
	// transaction count per category.
	CategoryTotal struct {
		Name  string
		Total Money
		Count int
	}

	// AnalysisResult is the full output of one analysis pass over a record
	// set. For an empty input every numeric field is zero, TopCategory is
	// empty and all slices are nil.
	AnalysisResult struct {
		TotalSpent      Money
		Breakdown       []CategoryAmount
		AverageDaily    float64 // cents per day
		TopCategory     string
		NumTransactions int
		Trends          []string
		Insights        []string
	}

	// OverspendingEntry flags a category whose share of total strictly
	// exceeds the detection threshold.
	OverspendingEntry struct {
		Category   string
		Amount     Money
		Percentage float64 // share of total, 0-100
		Severity   Severity
	}

	// AdviceReport bundles one advice-generation pass. Only AdviceText and
	// GeneratedAt are persisted; the rest is recomputed per request.
	AdviceReport struct {
		ID           string
		Analysis     AnalysisResult
		Overspending []OverspendingEntry
		SavingTips   []string
		AdviceText   string
		GeneratedAt  time.Time
	}

	// AdviceEntry is a persisted advice row as read back from the store.
	AdviceEntry struct {
		ID          int64
		Text        string
		GeneratedAt time.Time
	}
)

// BreakdownAmount returns the summed amount for a category, zero if absent.
func (r AnalysisResult) BreakdownAmount(category string) Money {
	for _, c := range r.Breakdown {
		if c.Name == category {
			return c.Amount
		}
	}
	return Money{}
}

// Percentages returns the category->share mapping derived from the breakdown.
func (r AnalysisResult) Percentages() map[string]float64 {
	out := make(map[string]float64, len(r.Breakdown))
	for _, c := range r.Breakdown {
		out[c.Name] = c.Percent
	}
	return out
}
