package core

import "math"

type (
	// CategoryAmount is one (category, total) entry in a ranked listing.
	CategoryAmount struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	// Violation marks a (month, category) pair whose spend exceeded its
	// configured limit.
	Violation struct {
		Month    string  `json:"month"`
		Category string  `json:"category"`
		Spent    float64 `json:"spent"`
		Limit    float64 `json:"limit"`
		Excess   float64 `json:"excess"`
	}

	// AggregationReport is the full per-run spending summary. All monetary
	// fields are rounded to 2 decimals.
	AggregationReport struct {
		CountIndexedTxns       int                           `json:"count_indexed_txns"`
		TotalByCategory        map[string]float64            `json:"total_by_category"`
		TotalByMonth           map[string]float64            `json:"total_by_month"`
		MonthCategoryBreakdown map[string]map[string]float64 `json:"month_category_breakdown"`
		TopCategories          []CategoryAmount              `json:"top_categories"`
		Violations             []Violation                   `json:"violations"`
	}

	// TrendSeries is the month-aligned per-category time series. Every series
	// in Categories has exactly len(Months) entries, zero-filled for months
	// the category was inactive.
	TrendSeries struct {
		Months        []string             `json:"months"`
		Categories    map[string][]float64 `json:"categories"`
		MonthlyTotals map[string]float64   `json:"monthly_totals"`
		TopCategories []CategoryAmount     `json:"top_categories"`
	}
)

// Round2 rounds a monetary value to 2 decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
