// Package services orchestrates record storage, ingestion and advice
// generation on top of the backend and messaging ports.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ingest"
	"budgetbuddy/internal/store"
)

// IngestPublisher notifies downstream consumers that records landed.
type IngestPublisher interface {
	PublishExpenseIngested(ctx context.Context, year, month, count int) error
	Close() error
}

// ExpenseService orchestrates expense writes across the store and AMQP.
type ExpenseService struct {
	writer    store.RecordWriter
	reader    store.RecordReader
	publisher IngestPublisher
	parser    *ingest.Parser
}

func NewExpenseService(writer store.RecordWriter, reader store.RecordReader, publisher IngestPublisher) *ExpenseService {
	return &ExpenseService{
		writer:    writer,
		reader:    reader,
		publisher: publisher,
		parser:    ingest.NewParser(),
	}
}

// Create validates and stores a single expense, then publishes an ingestion
// message. Publish failures never fail the request; the record is already
// stored locally.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (int64, error) {
	if e.Category == "" {
		e.Category = ingest.Categorize(e.Description)
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.writer.Insert(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	s.publishIngested(ctx, e.Date.Year(), e.Date.Month(), 1)

	return id, nil
}

// ImportCSV parses tabular input and stores the resulting records in one
// batch. It returns the stored and skipped row counts.
func (s *ExpenseService) ImportCSV(ctx context.Context, r io.Reader) (stored, skipped int, err error) {
	records, skipped, err := s.parser.ParseCSV(r)
	if err != nil {
		return 0, 0, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return 0, skipped, nil
	}

	stored, err = s.writer.InsertBatch(ctx, records)
	if err != nil {
		return stored, skipped, fmt.Errorf("store csv batch: %w", err)
	}

	for month, count := range batchMonths(records) {
		s.publishIngested(ctx, month.year, month.month, count)
	}

	slog.InfoContext(ctx, "Imported CSV expenses", "stored", stored, "skipped", skipped)
	return stored, skipped, nil
}

// All returns every stored record.
func (s *ExpenseService) All(ctx context.Context) ([]core.Expense, error) {
	return s.reader.All(ctx)
}

// ByMonth returns records for the given calendar month.
func (s *ExpenseService) ByMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	return s.reader.ByMonth(ctx, year, month)
}

// CategoryTotals returns per-category sums, largest first. Zero year means
// all records; zero month with a year scopes to that whole year.
func (s *ExpenseService) CategoryTotals(ctx context.Context, year, month int) ([]core.CategoryTotal, error) {
	return s.reader.CategoryTotals(ctx, year, month)
}

func (s *ExpenseService) publishIngested(ctx context.Context, year, month, count int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseIngested(ctx, year, month, count); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ingested message",
			"year", year, "month", month, "count", count, "error", err)
		// Don't fail the request - records are saved locally
	}
}

// Close releases the publisher connection if one is attached.
func (s *ExpenseService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}

type yearMonth struct {
	year  int
	month int
}

func batchMonths(records []core.Expense) map[yearMonth]int {
	months := make(map[yearMonth]int)
	for _, e := range records {
		months[yearMonth{e.Date.Year(), e.Date.Month()}]++
	}
	return months
}
