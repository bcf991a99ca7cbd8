package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"budgetbuddy/internal/charts"
	"budgetbuddy/internal/core"
)

// handleCategoryChart serves the category share pie for the month.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "chart:categories", func(records []core.Expense) interface{} {
		return charts.CategoryPie(records)
	})
}

// handleDailyChart serves the daily spending series for the month.
func (s *Server) handleDailyChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, "chart:daily", func(records []core.Expense) interface{} {
		return charts.DailySeries(records)
	})
}

// serveChart loads the month records, builds the chart payload and caches
// the encoded bytes under a month-scoped key.
func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, prefix string, build func([]core.Expense) interface{}) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	year, month := parseYearMonth(r)
	key := monthCacheKey(prefix, year, month)

	if body, ok := s.chartsCache.Get(key); ok {
		NewResponse().Body(body).Write(w)
		return
	}

	records, err := s.expenses.ByMonth(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load chart records",
			"error", err, "year", year, "month", month)
		InternalServerError("failed to load chart data").Write(w)
		return
	}

	body, err := json.Marshal(build(records))
	if err != nil {
		InternalServerError("failed to encode chart data").Write(w)
		return
	}
	s.chartsCache.Set(key, body)

	NewResponse().Body(body).Write(w)
}
