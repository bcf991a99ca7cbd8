package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"budgetbuddy/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func expense(date core.Date, desc string, cents int64, category string) core.Expense {
	return core.Expense{
		Date:        date,
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    category,
	}
}

func TestInsertAndByMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, expense(core.NewDate(2025, 5, 10), "groceries", 45000, "Food"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}

	if _, err := repo.Insert(ctx, expense(core.NewDate(2025, 6, 1), "june", 10000, "Food")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	may, err := repo.ByMonth(ctx, 2025, 5)
	if err != nil {
		t.Fatalf("ByMonth: %v", err)
	}
	if len(may) != 1 || may[0].Description != "groceries" {
		t.Errorf("may = %+v", may)
	}
	if may[0].Date != core.NewDate(2025, 5, 10) {
		t.Errorf("date round trip = %v", may[0].Date)
	}
	if may[0].Amount.Cents != 45000 {
		t.Errorf("amount = %d", may[0].Amount.Cents)
	}
}

func TestInsertRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Insert(context.Background(), core.Expense{}); err == nil {
		t.Error("invalid record must be rejected")
	}
}

func TestInsertBatchIsAtomic(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	records := []core.Expense{
		expense(core.NewDate(2025, 5, 1), "ok", 100, "Food"),
		{}, // invalid, aborts the transaction
	}
	stored0, err := repo.InsertBatch(ctx, records)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if stored0 != 0 {
		t.Errorf("stored = %d on failed batch, want 0", stored0)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("failed batch must store nothing, got %+v", all)
	}

	stored, err := repo.InsertBatch(ctx, []core.Expense{
		expense(core.NewDate(2025, 5, 1), "a", 100, "Food"),
		expense(core.NewDate(2025, 5, 2), "b", 200, "Transport"),
	})
	if err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	if stored != 2 {
		t.Errorf("stored = %d, want 2", stored)
	}
}

func TestCategoryTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertBatch(ctx, []core.Expense{
		expense(core.NewDate(2025, 5, 1), "a", 100, "Transport"),
		expense(core.NewDate(2025, 5, 2), "b", 300, "Food"),
		expense(core.NewDate(2025, 5, 3), "c", 200, "Food"),
	}); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	totals, err := repo.CategoryTotals(ctx, 0, 0)
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("got %d totals, want 2", len(totals))
	}
	if totals[0].Name != "Food" || totals[0].Total.Cents != 500 || totals[0].Count != 2 {
		t.Errorf("totals[0] = %+v", totals[0])
	}

	scoped, err := repo.CategoryTotals(ctx, 2025, 5)
	if err != nil {
		t.Fatalf("CategoryTotals scoped: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("scoped totals = %+v, want both categories", scoped)
	}

	empty, err := repo.CategoryTotals(ctx, 2025, 6)
	if err != nil {
		t.Fatalf("CategoryTotals empty month: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty month totals = %+v, want none", empty)
	}
}

func TestAdviceRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, text := range []string{"first", "second", "third"} {
		if _, err := repo.SaveAdvice(ctx, text, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("SaveAdvice: %v", err)
		}
	}

	recent, err := repo.RecentAdvice(ctx, 2)
	if err != nil {
		t.Fatalf("RecentAdvice: %v", err)
	}
	if len(recent) != 2 || recent[0].Text != "third" || recent[1].Text != "second" {
		t.Errorf("recent = %+v", recent)
	}
	if !recent[0].GeneratedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("generated_at = %v", recent[0].GeneratedAt)
	}
}
