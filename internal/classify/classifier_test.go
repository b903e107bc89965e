package classify

import (
	"testing"

	"spendledger/internal/core"
)

func TestVendorClassifier(t *testing.T) {
	c := NewVendorClassifier(core.DefaultCategoryMap())

	tests := []struct {
		vendor string
		want   string
	}{
		{"Starbucks Coffee", "food"},
		{"STARBUCKS #1234", "food"},
		{"FreshGrocer Downtown", "groceries"},
		{"Landlord LLC", "rent"},
		{"Uber Trip 42", "transport"},
		{"Netflix.com", "entertainment"},
		{"City Power & Light", "utilities"},
		{"Amazon Marketplace", "shopping"},
		{"CVS Pharmacy", "health"},
		{"Iron Pump Gym", "gym"},
		{"Delta Airlines", "travel"},
		{"Quantum Widgets", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.vendor); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.vendor, got, tt.want)
		}
	}
}

func TestVendorClassifierFirstRuleWins(t *testing.T) {
	rules := core.CategoryMap{
		{Category: "food", Keywords: []string{"market"}},
		{Category: "groceries", Keywords: []string{"market"}},
	}
	c := NewVendorClassifier(rules)
	if got := c.Classify("Central Market"); got != "food" {
		t.Errorf("Classify = %q, want food (earlier rule wins)", got)
	}
}
