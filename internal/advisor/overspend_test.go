package advisor

import (
	"testing"

	"budgetbuddy/internal/core"
)

func breakdown(pairs ...core.CategoryAmount) []core.CategoryAmount {
	return pairs
}

func cat(name string, cents int64) core.CategoryAmount {
	return core.CategoryAmount{Name: name, Amount: core.Money{Cents: cents}}
}

func TestDetectOverspendingEmpty(t *testing.T) {
	a := New()
	if got := a.DetectOverspending(nil, 30); got != nil {
		t.Errorf("nil breakdown: got %v", got)
	}
	if got := a.DetectOverspending(breakdown(cat("Food", 0)), 30); got != nil {
		t.Errorf("zero total: got %v", got)
	}
}

func TestDetectOverspendingThresholdIsExclusive(t *testing.T) {
	a := New()
	// Food holds exactly 30% of the total.
	b := breakdown(cat("Food", 30000), cat("Other", 70000))
	if got := a.DetectOverspending(b, 30); len(got) != 0 {
		t.Errorf("share == threshold should not flag, got %v", got)
	}

	b = breakdown(cat("Food", 30001), cat("Other", 69999))
	got := a.DetectOverspending(b, 30)
	if len(got) != 1 || got[0].Category != "Food" {
		t.Fatalf("share just above threshold should flag Food, got %v", got)
	}
	if got[0].Severity != core.SeverityMedium {
		t.Errorf("severity = %q, want MEDIUM", got[0].Severity)
	}
}

func TestDetectOverspendingSeverityBands(t *testing.T) {
	a := New()
	t.Run("exactly half is medium", func(t *testing.T) {
		b := breakdown(cat("Food", 50000), cat("Other", 50000))
		got := a.DetectOverspending(b, 30)
		if len(got) != 1 || got[0].Severity != core.SeverityMedium {
			t.Fatalf("got %v, want single MEDIUM entry", got)
		}
		if got[0].Percentage != 50 {
			t.Errorf("percentage = %f, want 50", got[0].Percentage)
		}
	})

	t.Run("above half is high", func(t *testing.T) {
		b := breakdown(cat("Food", 80000), cat("Other", 20000))
		got := a.DetectOverspending(b, 30)
		if len(got) != 1 || got[0].Severity != core.SeverityHigh {
			t.Fatalf("got %v, want single HIGH entry", got)
		}
		if got[0].Amount.Cents != 80000 {
			t.Errorf("amount = %d, want 80000", got[0].Amount.Cents)
		}
	})
}

func TestDetectOverspendingPreservesBreakdownOrder(t *testing.T) {
	a := New()
	b := breakdown(cat("Transport", 35000), cat("Food", 40000), cat("Other", 25000))
	got := a.DetectOverspending(b, 30)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Category != "Transport" || got[1].Category != "Food" {
		t.Errorf("order = [%s, %s], want [Transport, Food]", got[0].Category, got[1].Category)
	}
}

func TestDetectOverspendingLowerThresholdFlagsMore(t *testing.T) {
	a := New()
	b := breakdown(cat("A", 40000), cat("B", 35000), cat("C", 25000))
	strict := a.DetectOverspending(b, 30)
	loose := a.DetectOverspending(b, 20)
	if len(loose) <= len(strict) {
		t.Errorf("threshold 20 flagged %d, threshold 30 flagged %d", len(loose), len(strict))
	}
}
