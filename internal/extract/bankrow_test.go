package extract

import (
	"testing"
)

func TestParseBankRow(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		date     string
		vendor   string
		amount   float64
		noAmount bool
		currency string
	}{
		{
			name:     "simple debit row",
			line:     "05-Sep-2025 | Starbucks Coffee | $45.00",
			wantOK:   true,
			date:     "2025-09-05",
			vendor:   "Starbucks Coffee",
			amount:   45.0,
			currency: "USD",
		},
		{
			name:     "credit column taken when no debit",
			line:     "07-Sep-2025 | Refund ACME | | $20.00 CR",
			wantOK:   true,
			date:     "2025-09-07",
			vendor:   "Refund ACME",
			amount:   20.0,
			currency: "USD",
		},
		{
			name:     "debit wins over credit",
			line:     "07-Sep-2025 | Corner Shop | $15.00 | $20.00 CR",
			wantOK:   true,
			date:     "2025-09-07",
			vendor:   "Corner Shop",
			amount:   15.0,
			currency: "USD",
		},
		{
			name:     "rupee symbol sets currency",
			line:     "12-Sep-2025 | Chai Point | ₹250.00",
			wantOK:   true,
			date:     "2025-09-12",
			vendor:   "Chai Point",
			amount:   250.0,
			currency: "INR",
		},
		{
			name:     "three digit amount with cents",
			line:     "01-Oct-2025 | Landlord LLC | $950.00",
			wantOK:   true,
			date:     "2025-10-01",
			vendor:   "Landlord LLC",
			amount:   950.0,
			currency: "USD",
		},
		{
			name:     "no amount column keeps record without amount",
			line:     "05-Sep-2025 | Mystery Vendor | n/a",
			wantOK:   true,
			date:     "2025-09-05",
			vendor:   "Mystery Vendor",
			noAmount: true,
			currency: "USD",
		},
		{
			name:   "single column rejected",
			line:   "just some text with no pipes",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := ParseBankRow(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseBankRow(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if rec.Source != "bank" {
				t.Errorf("source = %q, want bank", rec.Source)
			}
			if tt.date != "" {
				if rec.Date == nil || *rec.Date != tt.date {
					t.Errorf("date = %v, want %q", rec.Date, tt.date)
				}
			}
			if tt.vendor != "" {
				if rec.Vendor == nil || *rec.Vendor != tt.vendor {
					t.Errorf("vendor = %v, want %q", rec.Vendor, tt.vendor)
				}
			}
			if tt.noAmount {
				if rec.Amount != nil {
					t.Errorf("amount = %v, want nil", *rec.Amount)
				}
			} else if rec.Amount == nil || *rec.Amount != tt.amount {
				t.Errorf("amount = %v, want %v", rec.Amount, tt.amount)
			}
			if rec.Currency == nil || *rec.Currency != tt.currency {
				t.Errorf("currency = %v, want %q", rec.Currency, tt.currency)
			}
		})
	}
}
