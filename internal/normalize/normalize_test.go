package normalize

import "testing"

func TestDate(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"2025-09-05", "2025-09-05", true},
		{"05-Sep-2025", "2025-09-05", true},
		{"05-sep-2025", "2025-09-05", true},
		{"05-SEP-2025", "2025-09-05", true},
		{"5/9/2025", "2025-09-05", true},
		{"5-9-25", "2025-09-05", true},
		{"12/11/99", "2099-11-12", true},
		{"Sep 5, 2025", "2025-09-05", true},
		{"September 5, 2025", "2025-09-05", true},
		{"Sep. 5 2025", "2025-09-05", true},
		{" 2025-09-05 ", "2025-09-05", true},
		{"05-Xyz-2025", "", false},
		{"yesterday", "", false},
		{"", "", false},
		{"2025/09/05", "", false},
	}
	for _, tc := range cases {
		got, ok := Date(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("Date(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.out, tc.ok)
		}
	}
}

func TestCleanNumber(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"$45.00", 45, true},
		{"1,250.75", 1250.75, true},
		{"₹500", 500, true},
		{"-12.50", -12.5, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := CleanNumber(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("CleanNumber(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.out, tc.ok)
		}
	}
}

func TestAmount(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		context string
		out     float64
		ok      bool
	}{
		{"plain", "45.00", "", 45, true},
		{"symbol and separators", "$1,250.75", "", 1250.75, true},
		{"parenthesized is negative", "(120.00)", "", -120, true},
		{"debit context forces negative", "$250", "250 debited at Starbucks", -250, true},
		{"already negative untouched", "-30.00", "paid for lunch", -30, true},
		{"credit context keeps sign", "50000", "Salary credited from Employer", 50000, true},
		{"currency code stripped", "USD 99.99", "", 99.99, true},
		{"garbage with embedded number", "approx 12.30 total", "", 12.30, true},
		{"no numeric content", "no charge", "", 0, false},
		{"empty", "", "", 0, false},
	}
	for _, tc := range cases {
		got, ok := Amount(tc.token, tc.context)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("%s: Amount(%q, %q) = %v, %v; want %v, %v", tc.name, tc.token, tc.context, got, ok, tc.out, tc.ok)
		}
	}
}

func TestCurrency(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"$45.00 at Starbucks", "USD", true},
		{"₹500 paid via UPI", "INR", true},
		{"£12 bus fare", "GBP", true},
		{"€30 dinner", "EUR", true},
		{"500 INR debited", "INR", true},
		{"amount usd 20", "USD", true},
		{"INRX is not a currency word", "", false},
		{"plain text", "", false},
	}
	for _, tc := range cases {
		got, ok := Currency(tc.in)
		if ok != tc.ok || got != tc.out {
			t.Fatalf("Currency(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.out, tc.ok)
		}
	}
}
