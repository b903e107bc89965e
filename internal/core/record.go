package core

import (
	"errors"
	"strings"
)

const (
	SourceBank = "bank"
	SourceSMS  = "sms"
	SourceLLM  = "llm"
)

type (
	// TransactionRecord is one accepted transaction extracted from raw text.
	// Amount and Source are the only required fields; everything else may be
	// absent when the source text did not yield it.
	TransactionRecord struct {
		Date     *string  `json:"date"`
		Vendor   *string  `json:"vendor"`
		Amount   *float64 `json:"amount"`
		Currency *string  `json:"currency"`
		Desc     string   `json:"desc"`
		Source   string   `json:"source"`
		File     string   `json:"file"`
		Page     *int     `json:"page"`
	}

	// Ledger is the ordered sequence of accepted records, in discovery order
	// across files and pages. It is produced once per run and never mutated.
	Ledger []TransactionRecord

	// SourceDocument is one unit of raw text handed over by the OCR
	// collaborator. Pages, when non-empty, carry per-page text for paged
	// documents; Text holds the whole body for flat sources.
	SourceDocument struct {
		Name  string
		Text  string
		Pages []string
	}
)

var (
	ErrMissingAmount = errors.New("missing amount")
	ErrMissingSource = errors.New("missing source")
)

// ValidateRecord is the acceptance gate for candidate records. Amount and
// Source must be present; all other fields are optional.
func ValidateRecord(r TransactionRecord) error {
	if r.Amount == nil {
		return ErrMissingAmount
	}
	if strings.TrimSpace(r.Source) == "" {
		return ErrMissingSource
	}
	return nil
}

// VendorKey returns the string a record is classified under: the vendor when
// present, otherwise the raw description, trimmed either way.
func (r TransactionRecord) VendorKey() string {
	if r.Vendor != nil {
		return strings.TrimSpace(*r.Vendor)
	}
	return strings.TrimSpace(r.Desc)
}

// Month returns the YYYY-MM bucket for aggregation, or "unknown" when the
// record carries no normalized date.
func (r TransactionRecord) Month() string {
	if r.Date == nil || len(*r.Date) < 7 {
		return MonthUnknown
	}
	return (*r.Date)[:7]
}

// MonthUnknown is the aggregation bucket for records without a usable date.
const MonthUnknown = "unknown"
