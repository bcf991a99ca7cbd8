package advisor

import (
	"fmt"

	"budgetbuddy/internal/core"
)

// TipEntry pairs a known category label with its canned recommendation.
// The table is an ordered slice folded into a map at construction; if the
// same category were listed twice the later entry would win, so keep the
// keys unique.
type TipEntry struct {
	Category string
	Tip      string
}

// defaultTipTable maps known category labels to amount-agnostic advice.
var defaultTipTable = []TipEntry{
	{"Food", "🍽️ Meal Planning Win: Prep 3-4 meals weekly to reduce eating out by ₹2,000-3,000/month"},
	{"Entertainment", "🎬 Smart Entertainment: Audit streaming subscriptions - keep only 2 active to save ₹500-800/month"},
	{"Transport", "🚗 Travel Smart: Use metro/bus 2 days/week + carpooling to cut transport costs by 30%"},
	{"Shopping", "🛒 One-Click Fix: Turn off 'save payment info' to reduce impulse online shopping"},
	{"Utilities", "⚡ Energy Audit: Switch to LED bulbs, unplug chargers to save ₹500-800 monthly on electricity"},
	{"Health", "💊 Generic Swaps: Ask pharmacist for generic alternatives to save 40-50% on medicines"},
	{"Education", "📚 Second-Hand Savings: Buy used books/courses, join library to save 30-40%"},
	{"Bills", "📱 Bill Optimization: Review phone/data plans, negotiate insurance - potential ₹1,000-2,000/month savings"},
	{"Other", "💡 Audit Subscriptions: Cancel unused apps/memberships. Most people waste ₹1,500-3,000 monthly"},
	{core.DefaultCategory, "📝 Categorization First: Properly tag all expenses to identify hidden leaks worth ₹2,000-4,000"},
}

func buildTipTable(pairs []TipEntry) map[string]string {
	table := make(map[string]string, len(pairs))
	for _, p := range pairs {
		// last-write-wins on duplicate keys
		table[p.Category] = p.Tip
	}
	return table
}

// GenerateSavingTips produces one actionable tip per overspending entry in
// the same order. Categories missing from the tip table get a synthesized
// tip sized off the entry's amount: an urgent 20% cut above the urgent share,
// otherwise a 15% review suggestion.
func (a *Advisor) GenerateSavingTips(entries []core.OverspendingEntry) []string {
	if len(entries) == 0 {
		return nil
	}

	tips := make([]string, 0, len(entries))
	for _, e := range entries {
		if tip, ok := a.tipTable[e.Category]; ok {
			tips = append(tips, tip)
			continue
		}
		if e.Percentage > a.thresholds.UrgentTipSharePct {
			saved := e.Amount.Units() * a.thresholds.UrgentReductionRate
			tips = append(tips, fmt.Sprintf("🚨 %s dominates your budget! Aim to reduce by 20%% = ₹%.0f/month saved", e.Category, saved))
		} else {
			saved := e.Amount.Units() * a.thresholds.GeneralReductionRate
			tips = append(tips, fmt.Sprintf("💰 Review %s expenses. Even 15%% reduction = ₹%.0f saved", e.Category, saved))
		}
	}
	return tips
}
