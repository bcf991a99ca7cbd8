// Package charts assembles JSON-shaped chart data from expense records.
// All aggregation is delegated to simple group-bys here; the heavy analysis
// lives in the advisor package.
package charts

import (
	"sort"

	"budgetbuddy/internal/core"
)

// ChartDataPoint represents a single data point for charts.
type ChartDataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

// ChartData represents data for line and bar chart types.
type ChartData struct {
	ChartType string           `json:"chart_type"`
	Title     string           `json:"title"`
	Data      []ChartDataPoint `json:"data"`
	Period    string           `json:"period,omitempty"`
}

// PieChartDataPoint represents a single pie slice.
type PieChartDataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PieChartData represents data for pie charts.
type PieChartData struct {
	ChartType string              `json:"chart_type"`
	Title     string              `json:"title"`
	Data      []PieChartDataPoint `json:"data"`
	Total     float64             `json:"total"`
}

// CategoryPie builds the category share pie, largest slice first.
func CategoryPie(records []core.Expense) PieChartData {
	chart := PieChartData{
		ChartType: "pie",
		Title:     "Spending by Category",
	}

	totals := sumByCategory(records)
	for _, t := range totals {
		chart.Data = append(chart.Data, PieChartDataPoint{
			Label: t.Name,
			Value: t.Total.Units(),
		})
		chart.Total += t.Total.Units()
	}
	return chart
}

// CategoryBars builds the per-category bar chart, largest bar first.
func CategoryBars(records []core.Expense) ChartData {
	chart := ChartData{
		ChartType: "bar",
		Title:     "Spending by Category",
	}
	for _, t := range sumByCategory(records) {
		chart.Data = append(chart.Data, ChartDataPoint{
			Label: t.Name,
			Value: t.Total.Units(),
		})
	}
	return chart
}

// DailySeries builds the day-by-day spending line, chronological.
func DailySeries(records []core.Expense) ChartData {
	chart := ChartData{
		ChartType: "line",
		Title:     "Daily Spending",
		Period:    "daily",
	}

	totals := make(map[string]int64)
	for _, e := range records {
		totals[e.Date.Format("2006-01-02")] += e.Amount.Cents
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		chart.Data = append(chart.Data, ChartDataPoint{
			Date:  day,
			Value: core.Money{Cents: totals[day]}.Units(),
		})
	}
	return chart
}

func sumByCategory(records []core.Expense) []core.CategoryTotal {
	index := make(map[string]int)
	var out []core.CategoryTotal
	for _, e := range records {
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
	return out
}
