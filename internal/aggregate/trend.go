package aggregate

import (
	"sort"

	"spendledger/internal/core"
)

// Classifier resolves a vendor string to a category. It exists so the trend
// builder can fall back to rule-table classification without depending on
// the classify package directly.
type Classifier interface {
	Classify(vendor string) string
}

// TrendBuilder produces month-aligned per-category series from the ledger.
// Categories are re-derived the same way the Aggregator derives them: via
// the assignment when one is available, else by walking the rule table.
type TrendBuilder struct {
	classifier Classifier
}

// NewTrendBuilder takes the classifier used when no assignment covers a
// vendor. It may be nil if an assignment is always supplied.
func NewTrendBuilder(classifier Classifier) *TrendBuilder {
	return &TrendBuilder{classifier: classifier}
}

// Build groups amounts by category and month, zero-fills each category's
// series against the sorted distinct month list and ranks the top 6
// categories by total magnitude.
func (b *TrendBuilder) Build(ledger core.Ledger, assignment map[string]string) *core.TrendSeries {
	catMonth := make(map[string]*totals)
	var catOrder []string
	monthTot := newTotals()

	for _, rec := range ledger {
		if rec.Amount == nil {
			continue
		}
		cat := b.trendCategory(rec, assignment)
		month := rec.Month()

		cm, ok := catMonth[cat]
		if !ok {
			cm = newTotals()
			catMonth[cat] = cm
			catOrder = append(catOrder, cat)
		}
		cm.add(month, *rec.Amount)
		monthTot.add(month, *rec.Amount)
	}

	months := make([]string, len(monthTot.order))
	copy(months, monthTot.order)
	sort.Strings(months)

	categories := make(map[string][]float64, len(catMonth))
	catTot := newTotals()
	for _, cat := range catOrder {
		cm := catMonth[cat]
		series := make([]float64, len(months))
		sum := 0.0
		for i, m := range months {
			series[i] = core.Round2(cm.vals[m])
			sum += cm.vals[m]
		}
		categories[cat] = series
		catTot.add(cat, sum)
	}

	return &core.TrendSeries{
		Months:        months,
		Categories:    categories,
		MonthlyTotals: monthTot.rounded(),
		TopCategories: catTot.top(6, true),
	}
}

func (b *TrendBuilder) trendCategory(rec core.TransactionRecord, assignment map[string]string) string {
	if assignment != nil {
		if cat, ok := assignment[rec.VendorKey()]; ok && cat != "" {
			return cat
		}
	}
	if b.classifier != nil {
		return b.classifier.Classify(rec.VendorKey())
	}
	return core.CategoryOther
}
