// Package store declares the ports every record backend implements.
package store

import (
	"context"
	"time"

	"budgetbuddy/internal/core"
)

// Ports for outbound adapters.
type (
	// RecordWriter appends expense records. Records are immutable once
	// stored; there is no update or delete.
	RecordWriter interface {
		Insert(ctx context.Context, e core.Expense) (id int64, err error)
		InsertBatch(ctx context.Context, records []core.Expense) (stored int, err error)
	}

	// RecordReader retrieves stored expense records.
	RecordReader interface {
		All(ctx context.Context) ([]core.Expense, error)
		// ByMonth returns records for the given calendar month.
		ByMonth(ctx context.Context, year int, month int) ([]core.Expense, error)
		// CategoryTotals returns summed amount and record count per
		// category, largest total first. A zero year means all records;
		// a non-zero year with zero month scopes to the whole year.
		CategoryTotals(ctx context.Context, year int, month int) ([]core.CategoryTotal, error)
	}

	// AdviceWriter persists generated advice text.
	AdviceWriter interface {
		SaveAdvice(ctx context.Context, text string, generatedAt time.Time) (id int64, err error)
	}

	// AdviceReader retrieves persisted advice, newest first.
	AdviceReader interface {
		RecentAdvice(ctx context.Context, limit int) ([]core.AdviceEntry, error)
	}
)
