package advisor

import (
	"fmt"
	"strings"

	"budgetbuddy/internal/core"
)

const reportRule = "======================================================================"

// Compose assembles the analysis, overspending entries and tips into the
// multi-section advice report. It is a pure formatting function: given equal
// inputs it always produces the same text, which is what the report tests
// pin against. Sections with nothing to say are omitted, never errors.
func (a *Advisor) Compose(analysis core.AnalysisResult, overspending []core.OverspendingEntry, tips []string) string {
	t := a.thresholds
	projected := analysis.AverageDaily * float64(t.ProjectionDays)

	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("🤖 BUDGETBUDDY AI FINANCIAL REPORT")
	add(reportRule)
	add("")

	add(a.openingLine(analysis, projected))
	add("")

	insights := a.composeInsights(analysis)
	if len(insights) > 0 {
		add("🧠 KEY INSIGHTS")
		for _, insight := range insights {
			add("   " + insight)
		}
		add("")
	}

	if len(analysis.Breakdown) > 0 {
		add("📊 SPENDING BREAKDOWN")
		for _, c := range topCategories(analysis.Breakdown, len(analysis.Breakdown)) {
			add(fmt.Sprintf("   • %s: %s (%.1f%%)%s", c.Name, core.FormatRupees(c.Amount.Cents), c.Percent, a.breakdownTag(c.Percent)))
		}
		add("")
	}

	if len(overspending) > 0 {
		add("⚠️ PRIORITY ALERTS")
		for _, o := range overspending {
			icon, urgency := "⚠️", "Needs attention"
			if o.Severity == core.SeverityHigh {
				icon, urgency = "🚨", "URGENT ACTION"
			}
			add(fmt.Sprintf("%s %s: %.1f%% (%s)", icon, o.Category, o.Percentage, urgency))
		}
		add("")
	}

	if len(tips) > 0 {
		add("💡 RECOMMENDED ACTIONS")
		for i, tip := range tips {
			if i >= t.MaxTips {
				break
			}
			add(fmt.Sprintf("%d. %s", i+1, tip))
		}
		add("")
	}

	add("🔮 30-DAY PROJECTION")
	add(fmt.Sprintf("Estimated Monthly: %s", core.FormatRupees(int64(projected))))
	add(a.projectionLine(projected))
	add("")

	add(reportRule)
	add(a.closingLine(overspending, projected))
	add(reportRule)

	return strings.Join(lines, "\n")
}

func (a *Advisor) openingLine(analysis core.AnalysisResult, projected float64) string {
	t := a.thresholds
	total := analysis.TotalSpent
	n := analysis.NumTransactions

	switch {
	case total.Cents == 0:
		return "📝 No expenses recorded yet. Ready to start your financial journey!"
	case projected > float64(t.ActiveMonthlyCents):
		return fmt.Sprintf("📊 Active Spending Month: You've spent %s with %d transactions", core.FormatRupees(total.Cents), n)
	case projected < float64(t.ModerateMonthlyCents):
		return fmt.Sprintf("💰 Moderate Spender: %s spent across %d transactions", core.FormatRupees(total.Cents), n)
	default:
		return fmt.Sprintf("📈 Regular Spending: %s total with %d transactions", core.FormatRupees(total.Cents), n)
	}
}

// composeInsights builds the "key insights" section in fixed priority order:
// transaction frequency, category diversity, top-3 concentration, daily
// average, then every analysis trend verbatim.
func (a *Advisor) composeInsights(analysis core.AnalysisResult) []string {
	t := a.thresholds
	var insights []string

	n := analysis.NumTransactions
	total := analysis.TotalSpent.Cents
	switch {
	case n > t.HighFrequencyCount:
		insights = append(insights, fmt.Sprintf("⚠️ High transaction frequency (%d): Many small purchases add up. Consider bundling errands.", n))
	case n < t.LowFrequencyCount && total > t.LowFrequencyMinTotalCents:
		insights = append(insights, "💳 Few but large transactions: Your spending style is concentrated. Good for tracking!")
	case n >= t.BalancedFrequencyMin && n <= t.BalancedFrequencyMax:
		insights = append(insights, fmt.Sprintf("✅ Balanced transaction count (%d): Healthy spending frequency.", n))
	}

	if len(analysis.Breakdown) > 0 {
		unique := len(analysis.Breakdown)
		switch {
		case unique == 1:
			insights = append(insights, "🎯 Single category focus: All spending in one area. Consider diversity.")
		case unique >= t.DiverseCategoryCount:
			insights = append(insights, fmt.Sprintf("🌟 Well-diversified spending across %d categories. Great variety!", unique))
		default:
			insights = append(insights, fmt.Sprintf("📂 %d spending categories active. Consider reviewing each.", unique))
		}

		top3 := topCategories(analysis.Breakdown, 3)
		if len(top3) >= 3 && total > 0 {
			var top3Cents int64
			names := make([]string, len(top3))
			for i, c := range top3 {
				top3Cents += c.Amount.Cents
				names[i] = c.Name
			}
			pct := float64(top3Cents) / float64(total) * 100
			if pct > t.ComposeConcentrationPct {
				insights = append(insights, fmt.Sprintf("📌 Concentration: Top 3 categories (%s) = %.1f%% of budget", joinComma(names), pct))
			}
		}
	}

	avgDaily := analysis.AverageDaily
	if avgDaily > float64(t.HighDailyAvgCents) {
		insights = append(insights, fmt.Sprintf("💸 High daily average (₹%.0f/day): Consider reducing frequent expenses.", avgDaily/100))
	} else if avgDaily < float64(t.LowDailyAvgCents) {
		insights = append(insights, fmt.Sprintf("✨ Excellent daily control (₹%.0f/day): Keep up the discipline!", avgDaily/100))
	}

	for _, trend := range analysis.Trends {
		insights = append(insights, "📈 "+trend)
	}

	return insights
}

func (a *Advisor) breakdownTag(percent float64) string {
	t := a.thresholds
	switch {
	case percent > t.TagVeryHighPct:
		return " ⚠️ Very high"
	case percent > t.TagAboveAveragePct:
		return " 📌 Above average"
	case percent > t.TagBalancedPct:
		return " ✅ Balanced"
	default:
		return " 💚 Low"
	}
}

func (a *Advisor) projectionLine(projected float64) string {
	t := a.thresholds
	switch {
	case projected > float64(t.ProjExceedingCents):
		return fmt.Sprintf("💸 EXCEEDING: Projected monthly %.0f likely above comfortable range", projected/100)
	case projected > float64(t.ProjModerateCents):
		return "📊 MODERATE: Projected spending in typical urban range"
	case projected > float64(t.ProjBalancedCents):
		return "💰 BALANCED: Healthy monthly projection"
	default:
		return "✨ EXCELLENT: Well-controlled spending projected"
	}
}

func (a *Advisor) closingLine(overspending []core.OverspendingEntry, projected float64) string {
	switch {
	case len(overspending) > 0:
		return "🎯 Focus on your top spending category first - small changes there make big impact!"
	case projected < float64(a.thresholds.EncourageMonthlyCents):
		return "🌟 You're doing great! Keep tracking to maintain healthy habits."
	default:
		return "📝 Regular tracking helps identify opportunities. Keep monitoring!"
	}
}
