package http

import (
	"log/slog"
	"net/http"
	"time"

	"budgetbuddy/internal/core"
)

type categoryAmountJSON struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

type analysisJSON struct {
	Year            int                  `json:"year"`
	Month           int                  `json:"month"`
	TotalSpent      float64              `json:"total_spent"`
	Breakdown       []categoryAmountJSON `json:"breakdown"`
	AverageDaily    float64              `json:"average_daily"`
	TopCategory     string               `json:"top_category,omitempty"`
	NumTransactions int                  `json:"num_transactions"`
	Trends          []string             `json:"trends,omitempty"`
	Insights        []string             `json:"insights,omitempty"`
}

func toAnalysisJSON(year, month int, res core.AnalysisResult) analysisJSON {
	out := analysisJSON{
		Year:            year,
		Month:           month,
		TotalSpent:      res.TotalSpent.Units(),
		AverageDaily:    res.AverageDaily / 100.0,
		TopCategory:     res.TopCategory,
		NumTransactions: res.NumTransactions,
		Trends:          res.Trends,
		Insights:        res.Insights,
	}
	for _, c := range res.Breakdown {
		out.Breakdown = append(out.Breakdown, categoryAmountJSON{
			Category: c.Name,
			Amount:   c.Amount.Units(),
			Percent:  c.Percent,
		})
	}
	return out
}

type overspendingJSON struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Severity   string  `json:"severity"`
}

type adviceReportJSON struct {
	ID           string             `json:"id"`
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	Analysis     analysisJSON       `json:"analysis"`
	Overspending []overspendingJSON `json:"overspending,omitempty"`
	SavingTips   []string           `json:"saving_tips,omitempty"`
	AdviceText   string             `json:"advice_text"`
	GeneratedAt  string             `json:"generated_at"`
}

// handleAnalysis serves the month analysis, cached per (year, month).
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	year, month := parseYearMonth(r)
	key := monthCacheKey("analysis", year, month)

	if res, ok := s.analysisCache.Get(key); ok {
		NewResponse().JSON(toAnalysisJSON(year, month, res)).Write(w)
		return
	}

	res, err := s.advice.Analyze(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Analysis failed",
			"error", err, "year", year, "month", month)
		InternalServerError("analysis failed").Write(w)
		return
	}
	s.analysisCache.Set(key, res)

	NewResponse().JSON(toAnalysisJSON(year, month, res)).Write(w)
}

// handleGenerateAdvice runs a full advice pass for the month and persists
// the rendered report.
func (s *Server) handleGenerateAdvice(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	year, month := parseYearMonth(r)

	report, err := s.advice.GenerateMonthly(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Advice generation failed",
			"error", err, "year", year, "month", month)
		InternalServerError("advice generation failed").Write(w)
		return
	}

	out := adviceReportJSON{
		ID:          report.ID,
		Year:        year,
		Month:       month,
		Analysis:    toAnalysisJSON(year, month, report.Analysis),
		SavingTips:  report.SavingTips,
		AdviceText:  report.AdviceText,
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
	}
	for _, o := range report.Overspending {
		out.Overspending = append(out.Overspending, overspendingJSON{
			Category:   o.Category,
			Amount:     o.Amount.Units(),
			Percentage: o.Percentage,
			Severity:   string(o.Severity),
		})
	}

	NewResponse().Status(http.StatusCreated).JSON(out).Write(w)
}

// handleRecentAdvice lists persisted advice, newest first.
func (s *Server) handleRecentAdvice(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	limit := parseLimit(r, 10)
	entries, err := s.advice.Recent(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load recent advice", "error", err)
		InternalServerError("failed to load recent advice").Write(w)
		return
	}

	type entryJSON struct {
		ID          int64  `json:"id"`
		Text        string `json:"text"`
		GeneratedAt string `json:"generated_at"`
	}
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON{
			ID:          e.ID,
			Text:        e.Text,
			GeneratedAt: e.GeneratedAt.UTC().Format(time.RFC3339),
		})
	}

	NewResponse().JSON(struct {
		Count  int         `json:"count"`
		Advice []entryJSON `json:"advice"`
	}{Count: len(out), Advice: out}).Write(w)
}
