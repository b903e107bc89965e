package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// CategoryOther is the default bucket for vendors no rule matches.
const CategoryOther = "other"

type (
	// CategoryRule pairs one category with the keywords that select it.
	CategoryRule struct {
		Category string
		Keywords []string
	}

	// CategoryMap is an ordered rule list. Lookup is first-match-wins in
	// slice order, which is what keeps tie-breaking deterministic; it must
	// never be flattened into an unordered map.
	CategoryMap []CategoryRule

	// BudgetConfig maps a category to its monthly spending limit. Categories
	// without an entry are not limit-checked.
	BudgetConfig map[string]float64
)

// DefaultCategoryMap returns the stock rule table. The trailing "other" rule
// carries no keywords and acts as the fallback bucket.
func DefaultCategoryMap() CategoryMap {
	return CategoryMap{
		{Category: "food", Keywords: []string{"starbucks", "pizza", "burger", "taco", "restaurant", "dine", "eat", "ubereats", "doordash"}},
		{Category: "groceries", Keywords: []string{"grocer", "freshgrocer", "trader", "whole foods", "fresh", "superstore"}},
		{Category: "rent", Keywords: []string{"landlord", "rent"}},
		{Category: "transport", Keywords: []string{"uber", "lyft", "taxi", "metro", "bus", "train", "deltaair", "uber eats"}},
		{Category: "entertainment", Keywords: []string{"cinema", "movie", "ticketmaster", "steam", "regal", "concert", "netflix", "spotify"}},
		{Category: "utilities", Keywords: []string{"power", "electric", "city power", "verizon", "aws", "phone", "internet"}},
		{Category: "shopping", Keywords: []string{"amazon", "target", "apple", "macbook", "store", "mart"}},
		{Category: "health", Keywords: []string{"pharmacy", "cvs", "clinic", "hospital"}},
		{Category: "gym", Keywords: []string{"gym", "iron pump", "membership"}},
		{Category: "travel", Keywords: []string{"delta", "airlines", "flight", "hotel"}},
		{Category: CategoryOther, Keywords: nil},
	}
}

// LoadBudgetConfig reads a category-to-limit JSON object from disk.
func LoadBudgetConfig(path string) (BudgetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}
	var budget BudgetConfig
	if err := json.Unmarshal(data, &budget); err != nil {
		return nil, fmt.Errorf("parse budget file: %w", err)
	}
	return budget, nil
}

// Categories lists the category names in rule order.
func (m CategoryMap) Categories() []string {
	out := make([]string, len(m))
	for i, rule := range m {
		out[i] = rule.Category
	}
	return out
}
