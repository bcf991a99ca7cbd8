// Package memory is an in-memory record store used for tests and for
// running without a database file.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"budgetbuddy/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records []core.Expense
	advice  []core.AdviceEntry
	nextID  int64
}

func New() *Store {
	return &Store{nextID: 1}
}

// Insert validates and stores a single record, returning its assigned id.
func (s *Store) Insert(_ context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.records = append(s.records, e)
	return id, nil
}

// InsertBatch stores all records or none. Validation runs over the whole
// batch before any state changes, so a mid-batch failure leaves the store
// untouched, matching the SQLite repository's transactional behavior.
func (s *Store) InsertBatch(_ context.Context, records []core.Expense) (int, error) {
	for _, e := range records {
		if err := e.Validate(); err != nil {
			return 0, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range records {
		s.nextID++
		s.records = append(s.records, e)
	}
	return len(records), nil
}

// All returns stored records in insertion order.
func (s *Store) All(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.records...), nil
}

// ByMonth returns records for the given calendar month, insertion order.
func (s *Store) ByMonth(_ context.Context, year, month int) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.records {
		if e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out, nil
}

// CategoryTotals sums records per category, largest total first. Zero year
// means all records; zero month with a year scopes to that whole year.
func (s *Store) CategoryTotals(_ context.Context, year, month int) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	var out []core.CategoryTotal
	for _, e := range s.records {
		if year != 0 && e.Date.Year() != year {
			continue
		}
		if year != 0 && month != 0 && e.Date.Month() != month {
			continue
		}
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, core.CategoryTotal{Name: e.Category})
		}
		out[i].Total.Cents += e.Amount.Cents
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	return out, nil
}

// SaveAdvice stores generated advice text and returns its assigned id.
func (s *Store) SaveAdvice(_ context.Context, text string, generatedAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := int64(len(s.advice) + 1)
	s.advice = append(s.advice, core.AdviceEntry{ID: id, Text: text, GeneratedAt: generatedAt})
	return id, nil
}

// RecentAdvice returns up to limit advice entries, newest first.
func (s *Store) RecentAdvice(_ context.Context, limit int) ([]core.AdviceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.advice) {
		limit = len(s.advice)
	}
	out := make([]core.AdviceEntry, 0, limit)
	for i := len(s.advice) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.advice[i])
	}
	return out, nil
}
