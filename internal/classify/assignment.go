package classify

import (
	"context"

	"spendledger/internal/cache"
	"spendledger/internal/core"
	applog "spendledger/internal/log"
)

// Fallback is the collaborator boundary for best-effort vendor
// classification. Implementations may omit vendors from the result; callers
// treat any error as an empty result.
type Fallback interface {
	Classify(ctx context.Context, vendors []string) (map[string]string, error)
}

// Assigner builds the per-run vendor-to-category assignment: a keyword pass
// over the whole ledger first, then one batched fallback round-trip for the
// vendors still mapped to "other", consulting the persisted cache so known
// vendors are never re-queried.
type Assigner struct {
	classifier *VendorClassifier
	fallback   Fallback
	cache      *cache.VendorCache
	logger     *applog.Logger
}

// NewAssigner wires the keyword classifier with the optional fallback and
// cache. Both fallback and cache may be nil; classification then stops at
// the keyword table.
func NewAssigner(classifier *VendorClassifier, fallback Fallback, vc *cache.VendorCache, logger *applog.Logger) *Assigner {
	return &Assigner{
		classifier: classifier,
		fallback:   fallback,
		cache:      vc,
		logger:     logger.WithComponent(applog.ComponentClassify),
	}
}

// Build produces the vendor-category assignment for a ledger. A fallback
// result only ever moves a vendor away from "other"; keyword-derived
// categories are never overridden. Fallback or cache trouble degrades to
// vendors staying "other".
func (a *Assigner) Build(ctx context.Context, ledger core.Ledger) map[string]string {
	assignment := make(map[string]string)
	var unresolved []string
	seen := make(map[string]bool)

	for _, rec := range ledger {
		vendor := rec.VendorKey()
		cat := a.classifier.Classify(vendor)
		assignment[vendor] = cat
		if cat == core.CategoryOther && vendor != "" && !seen[vendor] {
			seen[vendor] = true
			unresolved = append(unresolved, vendor)
		}
	}

	if len(unresolved) == 0 || a.cache == nil {
		return assignment
	}

	var toQuery []string
	for _, v := range unresolved {
		if _, ok := a.cache.Lookup(v); !ok {
			toQuery = append(toQuery, v)
		}
	}

	if len(toQuery) > 0 && a.fallback != nil {
		mapped, err := a.fallback.Classify(ctx, toQuery)
		if err != nil {
			a.logger.WarnContext(ctx, "Fallback classification unavailable",
				applog.FieldVendorCount, len(toQuery), applog.FieldError, err)
		} else {
			for v, c := range mapped {
				a.cache.Set(v, c)
			}
		}
	}

	for _, v := range unresolved {
		if cat, ok := a.cache.Lookup(v); ok && cat != "" && assignment[v] == core.CategoryOther {
			assignment[v] = cat
		}
	}

	a.cache.Flush()
	return assignment
}
