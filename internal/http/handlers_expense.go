package http

import (
	"log/slog"
	"net/http"
	"strings"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ingest"
)

// expenseJSON is the wire shape of a stored record.
type expenseJSON struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		Date:        e.Date.Format("2006-01-02"),
		Description: e.Description,
		Amount:      e.Amount.Units(),
		Category:    e.Category,
	}
}

// handleExpenses dispatches POST (create) and GET (list) on /expenses.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	case http.MethodGet:
		s.handleListExpenses(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	exp, errResp := parseExpenseRequest(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}
	// Resolve the category here too so the response echoes the stored record.
	if exp.Category == "" {
		exp.Category = ingest.Categorize(exp.Description)
	}

	id, err := s.expenses.Create(r.Context(), exp)
	if err != nil {
		if core.IsValidationError(err) {
			UnprocessableEntityError(err.Error()).Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save expense",
			"error", err,
			"expense_description", exp.Description,
			"amount_cents", exp.Amount.Cents,
			"category", exp.Category)
		InternalServerError("failed to save expense").Write(w)
		return
	}

	s.invalidateCaches()

	NewResponse().Status(http.StatusCreated).JSON(struct {
		ID      int64       `json:"id"`
		Expense expenseJSON `json:"expense"`
	}{ID: id, Expense: toExpenseJSON(exp)}).Write(w)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var (
		records []core.Expense
		err     error
	)

	q := r.URL.Query()
	if strings.TrimSpace(q.Get("year")) != "" || strings.TrimSpace(q.Get("month")) != "" {
		year, month := parseYearMonth(r)
		records, err = s.expenses.ByMonth(r.Context(), year, month)
	} else {
		records, err = s.expenses.All(r.Context())
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list expenses", "error", err)
		InternalServerError("failed to list expenses").Write(w)
		return
	}

	out := make([]expenseJSON, 0, len(records))
	for _, e := range records {
		out = append(out, toExpenseJSON(e))
	}

	NewResponse().JSON(struct {
		Count    int           `json:"count"`
		Expenses []expenseJSON `json:"expenses"`
	}{Count: len(out), Expenses: out}).Write(w)
}

// handleImportCSV ingests a multipart CSV upload. Rows with unparseable
// amounts are skipped, not fatal; the response reports both counts.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	// 10 MB upload ceiling
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		BadRequestError("invalid multipart form").Write(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("missing file field").Write(w)
		return
	}
	defer func() { _ = file.Close() }()

	stored, skipped, err := s.expenses.ImportCSV(r.Context(), file)
	if err != nil {
		slog.WarnContext(r.Context(), "CSV import rejected",
			"error", err, "filename", header.Filename)
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	s.invalidateCaches()

	NewResponse().JSON(struct {
		Imported int    `json:"imported"`
		Skipped  int    `json:"skipped"`
		Filename string `json:"filename"`
	}{Imported: stored, Skipped: skipped, Filename: header.Filename}).Write(w)
}
