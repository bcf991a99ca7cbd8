// Package storage is the SQLite-backed record store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgetbuddy/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements store.RecordWriter.
func (r *SQLiteRepository) Insert(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, description, amount_cents, category) VALUES (?, ?, ?, ?)`,
		e.Date.Format(dateLayout), e.Description, e.Amount.Cents, e.Category)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return id, nil
}

// InsertBatch stores all records in one transaction; on failure nothing is
// kept and the index of the offending record is returned as the count.
func (r *SQLiteRepository) InsertBatch(ctx context.Context, records []core.Expense) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (date, description, amount_cents, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	// The rollback discards every row, so a failure stores nothing.
	for i, e := range records {
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, e.Date.Format(dateLayout), e.Description, e.Amount.Cents, e.Category); err != nil {
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch insert: %w", err)
	}

	slog.InfoContext(ctx, "Expense batch saved to SQLite", "count", len(records))
	return len(records), nil
}

// All implements store.RecordReader.
func (r *SQLiteRepository) All(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, description, amount_cents, category FROM expenses ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ByMonth returns records whose date falls inside the given calendar month.
func (r *SQLiteRepository) ByMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	start := core.NewDate(year, month, 1)
	end := core.NewDate(year, month, 1).AddDate(0, 1, 0)

	rows, err := r.db.QueryContext(ctx,
		`SELECT date, description, amount_cents, category FROM expenses WHERE date >= ? AND date < ? ORDER BY date, id`,
		start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query expenses for %d-%02d: %w", year, month, err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// CategoryTotals implements store.RecordReader. Zero year means all
// records; zero month with a year scopes to that whole year.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, year, month int) ([]core.CategoryTotal, error) {
	query := `SELECT category, SUM(amount_cents), COUNT(*) FROM expenses`
	var args []any
	if year != 0 {
		start := core.NewDate(year, 1, 1)
		end := start.AddDate(1, 0, 0)
		if month != 0 {
			start = core.NewDate(year, month, 1)
			end = start.AddDate(0, 1, 0)
		}
		query += ` WHERE date >= ? AND date < ?`
		args = append(args, start.Format(dateLayout), end.Format(dateLayout))
	}
	query += ` GROUP BY category ORDER BY SUM(amount_cents) DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryTotal
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.Name, &t.Total.Cents, &t.Count); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}
	return out, nil
}

// SaveAdvice implements store.AdviceWriter.
func (r *SQLiteRepository) SaveAdvice(ctx context.Context, text string, generatedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO advice (advice_text, generated_at) VALUES (?, ?)`,
		text, generatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert advice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("advice id: %w", err)
	}
	return id, nil
}

// RecentAdvice implements store.AdviceReader.
func (r *SQLiteRepository) RecentAdvice(ctx context.Context, limit int) ([]core.AdviceEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, advice_text, generated_at FROM advice ORDER BY generated_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query advice: %w", err)
	}
	defer rows.Close()

	var out []core.AdviceEntry
	for rows.Next() {
		var entry core.AdviceEntry
		var generatedAt string
		if err := rows.Scan(&entry.ID, &entry.Text, &generatedAt); err != nil {
			return nil, fmt.Errorf("scan advice: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse advice timestamp %q: %w", generatedAt, err)
		}
		entry.GeneratedAt = ts
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advice: %w", err)
	}
	return out, nil
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		var dateStr string
		var e core.Expense
		if err := rows.Scan(&dateStr, &e.Description, &e.Amount.Cents, &e.Category); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		e.Date = date
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}
