// Package classify maps free-text vendor strings to spending categories:
// first through the ordered keyword table, then, for vendors still in the
// "other" bucket, through the external fallback classifier backed by the
// persisted vendor cache.
package classify

import (
	"strings"

	"spendledger/internal/core"
)

// VendorClassifier resolves a vendor string against an ordered rule table.
// The first rule whose keyword set contains a substring match wins, so a
// fixed table ordering makes classification deterministic.
type VendorClassifier struct {
	rules core.CategoryMap
}

// NewVendorClassifier builds a classifier over the given rule table.
func NewVendorClassifier(rules core.CategoryMap) *VendorClassifier {
	return &VendorClassifier{rules: rules}
}

// Classify returns the first matching category, or "other" for empty and
// unmatched vendors.
func (c *VendorClassifier) Classify(vendor string) string {
	s := strings.ToLower(vendor)
	if s == "" {
		return core.CategoryOther
	}
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(s, kw) {
				return rule.Category
			}
		}
	}
	return core.CategoryOther
}

// Rules exposes the table the classifier was built with.
func (c *VendorClassifier) Rules() core.CategoryMap {
	return c.rules
}
