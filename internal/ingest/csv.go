package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"budgetbuddy/internal/core"
)

// ErrNoAmountColumn means no header could be mapped to the amount field.
var ErrNoAmountColumn = errors.New("csv must contain an amount column (amount, amt, cost, price, value, money, spending, expense, charge, fee, total)")

// ErrEmptyFile means the input had no header row at all.
var ErrEmptyFile = errors.New("csv input is empty")

// DefaultDescription is assigned when a record carries no description.
const DefaultDescription = "No description"

// columnAliases maps normalized header names to canonical field names.
var columnAliases = map[string]string{
	"amount": "amount", "amt": "amount", "cost": "amount", "price": "amount",
	"value": "amount", "money": "amount", "spending": "amount", "expense": "amount",
	"charge": "amount", "fee": "amount", "total": "amount",

	"description": "description", "desc": "description", "detail": "description",
	"item": "description", "name": "description", "merchant": "description",
	"vendor": "description", "shop": "description", "store": "description",
	"note": "description",

	"category": "category", "cat": "category", "type": "category",
	"group": "category", "classification": "category",

	"date": "date", "timestamp": "date", "time": "date", "dt": "date",
	"transaction_date": "date", "transaction_dt": "date",
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Parser converts CSV input into validated expense records.
type Parser struct {
	now func() time.Time
}

// NewParser returns a parser stamping today's date on rows without one.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// NewParserWithClock is for tests that need a fixed "today".
func NewParserWithClock(now func() time.Time) *Parser {
	return &Parser{now: now}
}

// ParseCSV reads tabular expense data and returns canonical records plus the
// count of rows dropped for unusable amounts. Header names are matched
// case-insensitively against common aliases; missing description, category
// and date columns get defaults (auto-categorization runs only when the file
// carries no category column). Amounts are taken as absolute values since
// records represent spending.
func (p *Parser) ParseCSV(r io.Reader) ([]core.Expense, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("reading csv input: %w", err)
	}

	rows, err := parseRows(data, ',')
	if err != nil || (len(rows) > 0 && len(rows[0]) < 2) {
		// Retry once with semicolons before giving up.
		if semiRows, semiErr := parseRows(data, ';'); semiErr == nil && len(semiRows) > 0 && len(semiRows[0]) >= 2 {
			rows, err = semiRows, nil
		}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("parsing csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, ErrEmptyFile
	}

	columns := mapColumns(rows[0])
	amountCol, ok := columns["amount"]
	if !ok {
		return nil, 0, ErrNoAmountColumn
	}
	descCol, hasDesc := columns["description"]
	catCol, hasCat := columns["category"]
	dateCol, hasDate := columns["date"]

	today := core.NewDate(p.now().Year(), int(p.now().Month()), p.now().Day())

	records := make([]core.Expense, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		cents, ok := parseAmount(cell(row, amountCol))
		if !ok {
			skipped++
			continue
		}

		desc := DefaultDescription
		if hasDesc {
			if v := strings.TrimSpace(cell(row, descCol)); v != "" {
				desc = v
			}
		}

		category := core.DefaultCategory
		if hasCat {
			if v := strings.TrimSpace(cell(row, catCol)); v != "" {
				category = v
			}
		} else {
			category = Categorize(desc)
		}

		date := today
		if hasDate {
			if parsed, ok := parseRowDate(cell(row, dateCol)); ok {
				date = parsed
			}
		}

		records = append(records, core.Expense{
			Date:        date,
			Description: desc,
			Amount:      core.Money{Cents: cents},
			Category:    category,
		})
	}

	return records, skipped, nil
}

func parseRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// mapColumns resolves each header to its canonical field. The first header
// claiming a canonical name wins; unknown headers are ignored.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, 4)
	for i, h := range header {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, taken := columns[canonical]; !taken {
			columns[canonical] = i
		}
	}
	return columns
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseAmount cleans a raw amount cell into positive cents. Spending amounts
// exported with a minus sign are folded to their absolute value.
func parseAmount(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	if s == "" {
		return 0, false
	}
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return 0, false
	}
	return cents, true
}

func parseRowDate(raw string) (core.Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return core.Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day()), true
		}
	}
	return core.Date{}, false
}
