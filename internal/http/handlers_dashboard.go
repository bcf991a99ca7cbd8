package http

import (
	"log/slog"
	"net/http"
	"time"

	"budgetbuddy/internal/core"
)

// handleIndex renders the dashboard for the current month.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("not found").Write(w)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	year, month := parseYearMonth(r)

	analysis, err := s.advice.Analyze(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard analysis failed",
			"error", err, "year", year, "month", month)
	}

	latest := ""
	if entries, err := s.advice.Recent(r.Context(), 1); err == nil && len(entries) > 0 {
		latest = entries[0].Text
	}

	data := struct {
		Year            int
		MonthName       string
		TotalSpent      string
		AverageDaily    string
		NumTransactions int
		TopCategory     string
		Breakdown       []core.CategoryAmount
		LatestAdvice    string
	}{
		Year:            year,
		MonthName:       time.Month(month).String(),
		TotalSpent:      core.FormatRupees(analysis.TotalSpent.Cents),
		AverageDaily:    core.FormatRupees(int64(analysis.AverageDaily)),
		NumTransactions: analysis.NumTransactions,
		TopCategory:     analysis.TopCategory,
		Breakdown:       analysis.Breakdown,
		LatestAdvice:    latest,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed",
			"error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
