package core

import (
	"errors"
	"testing"
)

func TestValidateRecord(t *testing.T) {
	amount := 45.0

	tests := []struct {
		name    string
		rec     TransactionRecord
		wantErr error
	}{
		{
			name:    "valid minimal record",
			rec:     TransactionRecord{Amount: &amount, Source: SourceBank},
			wantErr: nil,
		},
		{
			name:    "missing amount",
			rec:     TransactionRecord{Source: SourceBank},
			wantErr: ErrMissingAmount,
		},
		{
			name:    "missing source",
			rec:     TransactionRecord{Amount: &amount},
			wantErr: ErrMissingSource,
		},
		{
			name:    "blank source",
			rec:     TransactionRecord{Amount: &amount, Source: "   "},
			wantErr: ErrMissingSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.rec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVendorKey(t *testing.T) {
	vendor := "  Starbucks  "
	withVendor := TransactionRecord{Vendor: &vendor, Desc: "raw line"}
	if got := withVendor.VendorKey(); got != "Starbucks" {
		t.Errorf("VendorKey() = %q, want Starbucks", got)
	}

	withoutVendor := TransactionRecord{Desc: " raw line "}
	if got := withoutVendor.VendorKey(); got != "raw line" {
		t.Errorf("VendorKey() = %q, want raw line", got)
	}
}

func TestMonth(t *testing.T) {
	date := "2025-09-05"
	rec := TransactionRecord{Date: &date}
	if got := rec.Month(); got != "2025-09" {
		t.Errorf("Month() = %q, want 2025-09", got)
	}

	if got := (TransactionRecord{}).Month(); got != MonthUnknown {
		t.Errorf("Month() = %q, want %q", got, MonthUnknown)
	}

	short := "2025"
	if got := (TransactionRecord{Date: &short}).Month(); got != MonthUnknown {
		t.Errorf("Month() on short date = %q, want %q", got, MonthUnknown)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2.344, 2.34},
		{2.346, 2.35},
		{-2.346, -2.35},
		{45.0, 45.0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
