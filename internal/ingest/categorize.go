// Package ingest turns raw tabular input into canonical expense records:
// CSV parsing with header normalization, amount cleaning and keyword-based
// auto-categorization.
package ingest

import (
	"strings"

	"budgetbuddy/internal/core"
)

// keywordRule assigns a category when any keyword appears in the description.
type keywordRule struct {
	Category string
	Keywords []string
}

// categoryRules is scanned in order and every matching rule reassigns the
// category, so a later rule wins on overlapping keywords ("electricity bill"
// ends up in Bills, not Utilities).
var categoryRules = []keywordRule{
	{"Food", []string{"restaurant", "groceries", "meal", "snack", "food", "cafe", "coffee", "starbucks", "dining", "lunch", "dinner"}},
	{"Transport", []string{"uber", "bus", "train", "fuel", "taxi", "metro", "flight", "transport", "travel", "ride"}},
	{"Entertainment", []string{"movie", "game", "netflix", "cinema", "theater", "entertainment", "spotify", "music"}},
	{"Utilities", []string{"electricity", "water", "gas", "wifi", "internet", "mobile", "phone", "utility", "bill"}},
	{"Shopping", []string{"amazon", "flipkart", "shopping", "mall", "store", "purchase", "buy", "order"}},
	{"Health", []string{"medical", "pharmacy", "hospital", "doctor", "medicine", "health", "clinic"}},
	{"Education", []string{"school", "tuition", "course", "education", "university", "book", "study"}},
	{"Bills", []string{"electricity", "water", "rent", "insurance", "loan", "emi", "bill"}},
	{"Savings", []string{"bank", "deposit", "investment", "sip", "mutual"}},
}

// Categorize assigns a category from the description using case-insensitive
// substring matching. Descriptions matching nothing get the default category.
func Categorize(description string) string {
	category := core.DefaultCategory
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				category = rule.Category
				break
			}
		}
	}
	return category
}
