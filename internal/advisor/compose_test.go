package advisor

import (
	"strings"
	"testing"

	"budgetbuddy/internal/core"
)

func TestComposeNoExpenses(t *testing.T) {
	a := New()
	report := a.Compose(core.AnalysisResult{}, nil, nil)

	wantLines := []string{
		"🤖 BUDGETBUDDY AI FINANCIAL REPORT",
		"📝 No expenses recorded yet. Ready to start your financial journey!",
		"🔮 30-DAY PROJECTION",
		"Estimated Monthly: ₹0.00",
	}
	for _, want := range wantLines {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
	for _, absent := range []string{"📊 SPENDING BREAKDOWN", "⚠️ PRIORITY ALERTS", "💡 RECOMMENDED ACTIONS"} {
		if strings.Contains(report, absent) {
			t.Errorf("report should not contain %q for empty input", absent)
		}
	}
	if !strings.HasPrefix(report, "🤖 BUDGETBUDDY AI FINANCIAL REPORT\n"+reportRule) {
		t.Error("report should open with the title and rule line")
	}
	if !strings.HasSuffix(report, reportRule) {
		t.Error("report should close with the rule line")
	}
}

func TestComposeDeterministic(t *testing.T) {
	a := New()
	analysis := core.AnalysisResult{
		TotalSpent:      core.Money{Cents: 120000},
		Breakdown:       breakdown(cat("Food", 70000), cat("Transport", 50000)),
		AverageDaily:    60000,
		TopCategory:     "Food",
		NumTransactions: 4,
	}
	analysis.Breakdown[0].Percent = 58.3333
	analysis.Breakdown[1].Percent = 41.6667

	first := a.Compose(analysis, nil, nil)
	second := a.Compose(analysis, nil, nil)
	if first != second {
		t.Error("same inputs must produce identical reports")
	}
}

func TestComposeBreakdownSortedDescendingWithTags(t *testing.T) {
	a := New()
	analysis := core.AnalysisResult{
		TotalSpent:      core.Money{Cents: 100000},
		Breakdown:       breakdown(cat("Transport", 20000), cat("Food", 45000), cat("Health", 35000)),
		AverageDaily:    10000,
		TopCategory:     "Food",
		NumTransactions: 6,
	}
	analysis.Breakdown[0].Percent = 20
	analysis.Breakdown[1].Percent = 45
	analysis.Breakdown[2].Percent = 35

	report := a.Compose(analysis, nil, nil)

	foodAt := strings.Index(report, "• Food")
	healthAt := strings.Index(report, "• Health")
	transportAt := strings.Index(report, "• Transport")
	if foodAt == -1 || healthAt == -1 || transportAt == -1 {
		t.Fatalf("breakdown lines missing:\n%s", report)
	}
	if !(foodAt < healthAt && healthAt < transportAt) {
		t.Error("breakdown must be sorted descending by amount")
	}

	if !strings.Contains(report, "• Food: ₹450.00 (45.0%) ⚠️ Very high") {
		t.Errorf("Food line wrong:\n%s", report)
	}
	if !strings.Contains(report, "• Health: ₹350.00 (35.0%) 📌 Above average") {
		t.Errorf("Health line wrong:\n%s", report)
	}
	if !strings.Contains(report, "• Transport: ₹200.00 (20.0%) ✅ Balanced") {
		t.Errorf("Transport line wrong:\n%s", report)
	}
}

func TestComposeAlertsAndTips(t *testing.T) {
	a := New()
	analysis := core.AnalysisResult{
		TotalSpent:      core.Money{Cents: 100000},
		Breakdown:       breakdown(cat("Food", 60000), cat("Transport", 40000)),
		AverageDaily:    5000,
		TopCategory:     "Food",
		NumTransactions: 8,
	}
	overspending := []core.OverspendingEntry{
		{Category: "Food", Amount: core.Money{Cents: 60000}, Percentage: 60, Severity: core.SeverityHigh},
		{Category: "Transport", Amount: core.Money{Cents: 40000}, Percentage: 40, Severity: core.SeverityMedium},
	}
	tips := []string{"tip one", "tip two", "tip three", "tip four"}

	report := a.Compose(analysis, overspending, tips)

	if !strings.Contains(report, "🚨 Food: 60.0% (URGENT ACTION)") {
		t.Errorf("missing urgent alert:\n%s", report)
	}
	if !strings.Contains(report, "⚠️ Transport: 40.0% (Needs attention)") {
		t.Errorf("missing medium alert:\n%s", report)
	}

	if !strings.Contains(report, "1. tip one") || !strings.Contains(report, "3. tip three") {
		t.Errorf("numbered tips missing:\n%s", report)
	}
	if strings.Contains(report, "tip four") {
		t.Error("tips beyond the cap must be dropped")
	}

	if !strings.Contains(report, "🎯 Focus on your top spending category first") {
		t.Error("overspending input must pick the focus closing line")
	}
}

func TestComposeFrequencyInsights(t *testing.T) {
	a := New()

	t.Run("high frequency", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 3600000},
			Breakdown:       breakdown(cat("Food", 3600000)),
			AverageDaily:    60000,
			TopCategory:     "Food",
			NumTransactions: 60,
		}
		analysis.Breakdown[0].Percent = 100
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "High transaction frequency (60)") {
			t.Errorf("missing high-frequency insight:\n%s", report)
		}
		if strings.Contains(report, "Balanced transaction count") {
			t.Error("frequency insights are mutually exclusive")
		}
	})

	t.Run("few large transactions", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 2000000},
			Breakdown:       breakdown(cat("Shopping", 2000000)),
			AverageDaily:    100000,
			NumTransactions: 2,
		}
		analysis.Breakdown[0].Percent = 100
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "Few but large transactions") {
			t.Errorf("missing few-large insight:\n%s", report)
		}
	})

	t.Run("balanced count", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 200000},
			Breakdown:       breakdown(cat("Food", 200000)),
			AverageDaily:    10000,
			NumTransactions: 15,
		}
		analysis.Breakdown[0].Percent = 100
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "Balanced transaction count (15)") {
			t.Errorf("missing balanced-count insight:\n%s", report)
		}
	})
}

func TestComposeDiversityInsights(t *testing.T) {
	a := New()

	cases := []struct {
		name string
		cats []core.CategoryAmount
		want string
	}{
		{"single", breakdown(cat("Food", 10000)), "Single category focus"},
		{"few", breakdown(cat("Food", 5000), cat("Transport", 5000)), "2 spending categories active"},
		{"diverse", breakdown(cat("A", 2000), cat("B", 2000), cat("C", 2000), cat("D", 2000), cat("E", 2000)), "Well-diversified spending across 5 categories"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			analysis := core.AnalysisResult{
				TotalSpent:      core.Money{Cents: 10000},
				Breakdown:       c.cats,
				AverageDaily:    1000,
				NumTransactions: 7,
			}
			report := a.Compose(analysis, nil, nil)
			if !strings.Contains(report, c.want) {
				t.Errorf("missing %q:\n%s", c.want, report)
			}
		})
	}
}

func TestComposeDailyAverageInsights(t *testing.T) {
	a := New()

	t.Run("high daily average", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 750000},
			Breakdown:       breakdown(cat("Food", 750000)),
			AverageDaily:    250000,
			NumTransactions: 12,
		}
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "High daily average (₹2500/day)") {
			t.Errorf("missing high daily insight:\n%s", report)
		}
	})

	t.Run("low daily average", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 90000},
			Breakdown:       breakdown(cat("Food", 90000)),
			AverageDaily:    30000,
			NumTransactions: 12,
		}
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "Excellent daily control (₹300/day)") {
			t.Errorf("missing low daily insight:\n%s", report)
		}
	})
}

func TestComposeProjectionBands(t *testing.T) {
	a := New()

	cases := []struct {
		name     string
		avgDaily float64
		want     string
	}{
		{"exceeding", 200000, "💸 EXCEEDING: Projected monthly 60000 likely above comfortable range"},
		{"moderate", 140000, "📊 MODERATE: Projected spending in typical urban range"},
		{"balanced", 80000, "💰 BALANCED: Healthy monthly projection"},
		{"excellent", 50000, "✨ EXCELLENT: Well-controlled spending projected"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			analysis := core.AnalysisResult{
				TotalSpent:      core.Money{Cents: 100000},
				Breakdown:       breakdown(cat("Food", 100000)),
				AverageDaily:    c.avgDaily,
				NumTransactions: 3,
			}
			report := a.Compose(analysis, nil, nil)
			if !strings.Contains(report, c.want) {
				t.Errorf("missing %q:\n%s", c.want, report)
			}
		})
	}
}

func TestComposeOpeningBands(t *testing.T) {
	a := New()

	t.Run("active month", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 6000000},
			Breakdown:       breakdown(cat("Food", 6000000)),
			AverageDaily:    200000,
			NumTransactions: 20,
		}
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "📊 Active Spending Month: You've spent ₹60000.00 with 20 transactions") {
			t.Errorf("missing active opening:\n%s", report)
		}
	})

	t.Run("moderate spender", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 300000},
			Breakdown:       breakdown(cat("Food", 300000)),
			AverageDaily:    10000,
			NumTransactions: 5,
		}
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "💰 Moderate Spender: ₹3000.00 spent across 5 transactions") {
			t.Errorf("missing moderate opening:\n%s", report)
		}
	})

	t.Run("regular spending", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 2400000},
			Breakdown:       breakdown(cat("Food", 2400000)),
			AverageDaily:    80000,
			NumTransactions: 12,
		}
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "📈 Regular Spending: ₹24000.00 total with 12 transactions") {
			t.Errorf("missing regular opening:\n%s", report)
		}
	})
}

func TestComposeClosingEncouragement(t *testing.T) {
	a := New()

	t.Run("low projection encourages", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 100000},
			Breakdown:       breakdown(cat("Food", 100000)),
			AverageDaily:    30000,
			NumTransactions: 4,
		}
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "🌟 You're doing great! Keep tracking to maintain healthy habits.") {
			t.Errorf("missing encouragement:\n%s", report)
		}
	})

	t.Run("high projection monitors", func(t *testing.T) {
		analysis := core.AnalysisResult{
			TotalSpent:      core.Money{Cents: 100000},
			Breakdown:       breakdown(cat("Food", 100000)),
			AverageDaily:    100000,
			NumTransactions: 4,
		}
		report := a.Compose(analysis, nil, nil)
		if !strings.Contains(report, "📝 Regular tracking helps identify opportunities. Keep monitoring!") {
			t.Errorf("missing monitoring close:\n%s", report)
		}
	})
}
