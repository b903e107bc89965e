package extract

import (
	"strings"
	"testing"
)

func TestSplitMessages(t *testing.T) {
	text := "[2025-09-05 14:02] You paid $45.00 to Starbucks\n" +
		"[2025-09-06 09:00] Purchase of 60.00 at GymPro\n"

	msgs := SplitMessages(text)
	if len(msgs) != 2 {
		t.Fatalf("SplitMessages returned %d messages, want 2", len(msgs))
	}
	if !strings.Contains(msgs[0], "Starbucks") {
		t.Errorf("first message = %q, want Starbucks alert", msgs[0])
	}
	if !strings.Contains(msgs[1], "GymPro") {
		t.Errorf("second message = %q, want GymPro alert", msgs[1])
	}

	if got := SplitMessages("no markers here"); got != nil {
		t.Errorf("SplitMessages without markers = %v, want nil", got)
	}
}

func TestParseSMSMessage(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantOK   bool
		date     string
		vendor   string
		noVendor bool
		amount   float64
		currency string
	}{
		{
			name:     "payment alert with vendor",
			msg:      "[2025-09-05 14:02] You paid $45.00 to Starbucks",
			wantOK:   true,
			date:     "2025-09-05",
			vendor:   "Starbucks",
			amount:   45.0,
			currency: "USD",
		},
		{
			name:     "balance amount skipped for transaction amount",
			msg:      "[2025-09-06 09:00] Bal 940.00 after purchase of 60.00 at GymPro",
			wantOK:   true,
			date:     "2025-09-06",
			vendor:   "GymPro",
			amount:   60.0,
			currency: "USD",
		},
		{
			name:     "only balance amount still yields a record",
			msg:      "[2025-09-08 07:30] Payment done. Avl Bal 500.00",
			wantOK:   true,
			date:     "2025-09-08",
			noVendor: true,
			amount:   500.0,
			currency: "USD",
		},
		{
			name:     "sender fallback when no phrase matches",
			msg:      "[2025-09-09 11:00] 75.00 debit from ACME Corp",
			wantOK:   true,
			date:     "2025-09-09",
			vendor:   "ACME Corp",
			amount:   75.0,
			currency: "USD",
		},
		{
			name:   "otp message rejected",
			msg:    "[2025-09-07 10:00] Your OTP is 482913. Do not share it with anyone.",
			wantOK: false,
		},
		{
			name:   "keyword without amount rejected",
			msg:    "[2025-09-07 10:05] Payment failed, please retry",
			wantOK: false,
		},
		{
			name:   "empty message rejected",
			msg:    "   ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := ParseSMSMessage(tt.msg)
			if ok != tt.wantOK {
				t.Fatalf("ParseSMSMessage(%q) ok = %v, want %v", tt.msg, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if rec.Source != "sms" {
				t.Errorf("source = %q, want sms", rec.Source)
			}
			if rec.Date == nil || *rec.Date != tt.date {
				t.Errorf("date = %v, want %q", rec.Date, tt.date)
			}
			if tt.noVendor {
				if rec.Vendor != nil {
					t.Errorf("vendor = %q, want nil", *rec.Vendor)
				}
			} else if rec.Vendor == nil || *rec.Vendor != tt.vendor {
				t.Errorf("vendor = %v, want %q", rec.Vendor, tt.vendor)
			}
			if rec.Amount == nil || *rec.Amount != tt.amount {
				t.Errorf("amount = %v, want %v", rec.Amount, tt.amount)
			}
			if rec.Currency == nil || *rec.Currency != tt.currency {
				t.Errorf("currency = %v, want %q", rec.Currency, tt.currency)
			}
		})
	}
}

func TestParseSMSMessageTruncatesLongBody(t *testing.T) {
	msg := "[2025-09-05 14:02] You paid $45.00 to Starbucks " + strings.Repeat("x", 3000)
	rec, ok := ParseSMSMessage(msg)
	if !ok {
		t.Fatal("ParseSMSMessage rejected long message")
	}
	if len(rec.Desc) != maxSMSDescLen+3 {
		t.Errorf("desc length = %d, want %d", len(rec.Desc), maxSMSDescLen+3)
	}
	if !strings.HasSuffix(rec.Desc, "...") {
		t.Errorf("desc does not end with ellipsis marker")
	}
}
