package advisor

import "budgetbuddy/internal/core"

// DetectOverspending flags categories whose share of the breakdown total
// strictly exceeds thresholdPct (0-100). Entries come back in breakdown
// order, not amount-sorted. Severity is HIGH when the share strictly exceeds
// the high-severity cut, MEDIUM otherwise.
//
// An empty breakdown, or one summing to zero, yields no entries.
func (a *Advisor) DetectOverspending(breakdown []core.CategoryAmount, thresholdPct float64) []core.OverspendingEntry {
	if len(breakdown) == 0 {
		return nil
	}

	var total int64
	for _, c := range breakdown {
		total += c.Amount.Cents
	}
	if total == 0 {
		return nil
	}

	threshold := thresholdPct / 100.0
	var entries []core.OverspendingEntry
	for _, c := range breakdown {
		share := float64(c.Amount.Cents) / float64(total)
		if share <= threshold {
			continue
		}
		severity := core.SeverityMedium
		if share > a.thresholds.HighSeverityShare {
			severity = core.SeverityHigh
		}
		entries = append(entries, core.OverspendingEntry{
			Category:   c.Name,
			Amount:     c.Amount,
			Percentage: share * 100,
			Severity:   severity,
		})
	}
	return entries
}
