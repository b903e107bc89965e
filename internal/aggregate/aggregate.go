// Package aggregate computes the per-run spending summary and trend series
// from an immutable ledger and a vendor-category assignment. Key order is
// tracked explicitly everywhere totals accumulate, so tie-breaking and
// output ordering stay deterministic across runs.
package aggregate

import (
	"sort"

	"spendledger/internal/core"
)

// totals accumulates float totals while remembering first-seen key order.
type totals struct {
	order []string
	vals  map[string]float64
}

func newTotals() *totals {
	return &totals{vals: make(map[string]float64)}
}

func (t *totals) add(key string, v float64) {
	if _, ok := t.vals[key]; !ok {
		t.order = append(t.order, key)
	}
	t.vals[key] += v
}

func (t *totals) rounded() map[string]float64 {
	out := make(map[string]float64, len(t.vals))
	for k, v := range t.vals {
		out[k] = core.Round2(v)
	}
	return out
}

// top returns the n largest entries by value, ties broken by first-seen
// order. abs ranks by magnitude instead of signed value.
func (t *totals) top(n int, abs bool) []core.CategoryAmount {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	rank := func(k string) float64 {
		v := t.vals[k]
		if abs && v < 0 {
			return -v
		}
		return v
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return rank(keys[i]) > rank(keys[j])
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make([]core.CategoryAmount, len(keys))
	for i, k := range keys {
		out[i] = core.CategoryAmount{Category: k, Amount: core.Round2(t.vals[k])}
	}
	return out
}

// Aggregator groups ledger entries by category and month and checks budget
// limits. It reads the ledger and assignment without mutating either.
type Aggregator struct{}

// NewAggregator returns an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes category/month totals, the top-5 category ranking and
// budget violations. Records without a parseable amount are skipped; records
// without a date land in the "unknown" month bucket.
func (a *Aggregator) Aggregate(ledger core.Ledger, assignment map[string]string, budget core.BudgetConfig) *core.AggregationReport {
	catTot := newTotals()
	monthTot := newTotals()
	monthCat := make(map[string]*totals)
	var monthOrder []string
	count := 0

	for _, rec := range ledger {
		if rec.Amount == nil {
			continue
		}
		amt := *rec.Amount
		cat := categoryFor(rec, assignment)
		month := rec.Month()

		catTot.add(cat, amt)
		monthTot.add(month, amt)
		mc, ok := monthCat[month]
		if !ok {
			mc = newTotals()
			monthCat[month] = mc
			monthOrder = append(monthOrder, month)
		}
		mc.add(cat, amt)
		count++
	}

	breakdown := make(map[string]map[string]float64, len(monthCat))
	for month, mc := range monthCat {
		breakdown[month] = mc.rounded()
	}

	violations := []core.Violation{}
	for _, month := range monthOrder {
		mc := monthCat[month]
		for _, cat := range mc.order {
			limit, ok := budget[cat]
			if !ok {
				continue
			}
			spent := mc.vals[cat]
			if spent > limit {
				violations = append(violations, core.Violation{
					Month:    month,
					Category: cat,
					Spent:    core.Round2(spent),
					Limit:    core.Round2(limit),
					Excess:   core.Round2(spent - limit),
				})
			}
		}
	}

	return &core.AggregationReport{
		CountIndexedTxns:       count,
		TotalByCategory:        catTot.rounded(),
		TotalByMonth:           monthTot.rounded(),
		MonthCategoryBreakdown: breakdown,
		TopCategories:          catTot.top(5, false),
		Violations:             violations,
	}
}

// categoryFor resolves a record's category from the assignment, defaulting
// to "other".
func categoryFor(rec core.TransactionRecord, assignment map[string]string) string {
	if assignment != nil {
		if cat, ok := assignment[rec.VendorKey()]; ok && cat != "" {
			return cat
		}
	}
	return core.CategoryOther
}
