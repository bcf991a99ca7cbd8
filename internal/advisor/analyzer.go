// Package advisor implements the spending-analysis and advice-generation
// engine: aggregation, trend detection, overspending detection and templated
// report composition. Everything here is a pure function of its inputs; the
// surrounding services own persistence.
package advisor

import (
	"fmt"
	"sort"

	"budgetbuddy/internal/core"
)

// Analyze computes aggregate statistics, category breakdown, weekly trend
// signals and textual insights for a record set. year and month filter the
// input when non-zero; pass 0,0 for callers that filter upstream.
//
// An empty (or fully filtered-out) input yields the zero-valued result:
// no error, no insights, empty top category.
func (a *Advisor) Analyze(records []core.Expense, year, month int) core.AnalysisResult {
	records = filterByPeriod(records, year, month)
	if len(records) == 0 {
		return core.AnalysisResult{}
	}

	var total int64
	for _, e := range records {
		total += e.Amount.Cents
	}

	breakdown := groupByCategory(records)
	for i := range breakdown {
		breakdown[i].Percent = float64(breakdown[i].Amount.Cents) / float64(total) * 100
	}

	// Top category: maximum summed amount, first encountered wins ties.
	top := breakdown[0]
	for _, c := range breakdown[1:] {
		if c.Amount.Cents > top.Amount.Cents {
			top = c
		}
	}

	result := core.AnalysisResult{
		TotalSpent:      core.Money{Cents: total},
		Breakdown:       breakdown,
		TopCategory:     top.Name,
		NumTransactions: len(records),
	}

	result.AverageDaily = averageDaily(records, total)
	result.Trends = a.detectWeeklyTrends(records)
	result.Insights = a.buildInsights(result)

	return result
}

func filterByPeriod(records []core.Expense, year, month int) []core.Expense {
	if year == 0 && month == 0 {
		return records
	}
	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if year != 0 && e.Date.Year() != year {
			continue
		}
		if month != 0 && e.Date.Month() != month {
			continue
		}
		out = append(out, e)
	}
	return out
}

// groupByCategory sums amounts per category, preserving first-occurrence
// order of the input.
func groupByCategory(records []core.Expense) []core.CategoryAmount {
	index := make(map[string]int, 8)
	var out []core.CategoryAmount
	for _, e := range records {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, core.CategoryAmount{Name: e.Category})
		}
		out[i].Amount.Cents += e.Amount.Cents
	}
	return out
}

// averageDaily divides the total over the span of days covered by the
// records; a single-day record set divides by one.
func averageDaily(records []core.Expense, totalCents int64) float64 {
	minDate, maxDate := records[0].Date, records[0].Date
	for _, e := range records[1:] {
		if e.Date.Before(minDate.Time) {
			minDate = e.Date
		}
		if e.Date.After(maxDate.Time) {
			maxDate = e.Date
		}
	}
	days := int(maxDate.Sub(minDate.Time).Hours()/24) + 1
	if days <= 0 {
		return float64(totalCents)
	}
	return float64(totalCents) / float64(days)
}

type weekKey struct {
	year int
	week int
}

// detectWeeklyTrends buckets spend into ISO calendar weeks and compares the
// last two buckets.
func (a *Advisor) detectWeeklyTrends(records []core.Expense) []string {
	buckets := make(map[weekKey]int64)
	for _, e := range records {
		y, w := e.Date.ISOWeek()
		buckets[weekKey{year: y, week: w}] += e.Amount.Cents
	}
	if len(buckets) < 2 {
		return nil
	}

	keys := make([]weekKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].week < keys[j].week
	})

	last := float64(buckets[keys[len(keys)-1]])
	prev := float64(buckets[keys[len(keys)-2]])

	var trends []string
	switch {
	case last > prev*a.thresholds.TrendIncreaseFactor:
		trends = append(trends, "🔺 Increasing spending trend detected in recent weeks")
	case last < prev*a.thresholds.TrendDecreaseFactor:
		trends = append(trends, "🔻 Decreasing spending trend detected - great job!")
	}
	return trends
}

func (a *Advisor) buildInsights(r core.AnalysisResult) []string {
	var insights []string
	t := a.thresholds
	total := r.TotalSpent.Cents

	// Concentration: combined share of the top 3 categories.
	top3 := topCategories(r.Breakdown, 3)
	var top3Cents int64
	for _, c := range top3 {
		top3Cents += c.Amount.Cents
	}
	if total > 0 && float64(top3Cents)/float64(total) > t.ConcentrationShare {
		insights = append(insights, "📌 Heavy concentration (>70%) in top 3 categories - consider diversifying")
	}

	// Transaction size.
	if r.NumTransactions > 0 {
		avgTx := float64(total) / float64(r.NumTransactions)
		if avgTx > float64(t.HighAvgTransactionCents) {
			insights = append(insights, fmt.Sprintf("💰 High average transaction (%s) - review large purchases", core.FormatRupees(int64(avgTx))))
		} else if avgTx < float64(t.LowAvgTransactionCents) {
			insights = append(insights, "✅ Good transaction discipline - low average spend")
		}
	}

	// Category balance: shares inside the balanced band, breakdown order.
	var balanced []string
	for _, c := range r.Breakdown {
		if c.Percent >= t.BalancedMinPct && c.Percent <= t.BalancedMaxPct {
			balanced = append(balanced, c.Name)
		}
	}
	if len(balanced) > 0 {
		insights = append(insights, "⚖️ Well-balanced categories: "+joinComma(balanced))
	}

	return insights
}

// topCategories returns up to n entries sorted descending by amount. The sort
// is stable so equal amounts keep their breakdown (first occurrence) order.
func topCategories(breakdown []core.CategoryAmount, n int) []core.CategoryAmount {
	sorted := make([]core.CategoryAmount, len(breakdown))
	copy(sorted, breakdown)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.Cents > sorted[j].Amount.Cents
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
