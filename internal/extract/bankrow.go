package extract

import (
	"regexp"
	"strings"

	"spendledger/internal/core"
	"spendledger/internal/normalize"
)

var creditMarkRE = regexp.MustCompile(`(?i)cr\b|credit|\+`)

// ParseBankRow converts one pipe-delimited statement row into a candidate
// record. Column 0 is the date token, column 1 the description; remaining
// columns are scanned for amount-like tokens classified credit or debit.
// The debit value wins over the credit value, and as a last resort the first
// amount-like substring anywhere in the line is taken.
func ParseBankRow(line string) (core.TransactionRecord, bool) {
	cols := strings.Split(line, "|")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	if len(cols) < 2 {
		return core.TransactionRecord{}, false
	}

	rec := core.TransactionRecord{
		Desc:   strings.TrimSpace(line),
		Source: core.SourceBank,
	}

	if iso, ok := normalize.Date(cols[0]); ok {
		rec.Date = &iso
	}
	if cols[1] != "" {
		vendor := cols[1]
		rec.Vendor = &vendor
	}

	var debit, credit *float64
	for _, c := range cols[2:] {
		if c == "" {
			continue
		}
		tok := amountRE.FindString(c)
		if tok == "" {
			tok = plainMoneyRE.FindString(c)
		}
		if tok == "" {
			continue
		}
		v, ok := normalize.CleanNumber(tok)
		if !ok {
			continue
		}
		if creditMarkRE.MatchString(c) {
			credit = &v
		} else {
			debit = &v
		}
	}

	switch {
	case debit != nil:
		rec.Amount = debit
	case credit != nil:
		rec.Amount = credit
	default:
		if tok := amountRE.FindString(line); tok != "" {
			if v, ok := normalize.CleanNumber(tok); ok {
				rec.Amount = &v
			}
		}
	}

	code, ok := normalize.Currency(line)
	if !ok {
		code = "USD"
	}
	rec.Currency = &code

	return rec, true
}
