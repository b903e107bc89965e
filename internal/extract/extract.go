// Package extract turns raw per-source text into candidate transaction
// records and assembles the ledger. Two extractor variants exist: the regex
// heuristic engine and the LLM-assisted extractor. They are selected
// explicitly by configuration and never merged.
package extract

import (
	"context"
	"regexp"

	"spendledger/internal/core"
)

// Extractor modes. The heuristic engine is the default; the assisted variant
// hands the raw text to a generative model and schema-checks the output.
const (
	ModeHeuristic = "heuristic"
	ModeAssisted  = "assisted"
)

// TransactionExtractor produces a ledger from raw source documents. A nil
// error with a short ledger is the normal outcome for messy input; errors are
// reserved for collaborator failures the caller may want to log.
type TransactionExtractor interface {
	Extract(ctx context.Context, docs []core.SourceDocument) (core.Ledger, error)
}

// Shared token patterns. amountRE mirrors the shape OCR output produces for
// money: an optional currency symbol with grouped digits, or a bare decimal
// with two places.
var (
	amountRE      = regexp.MustCompile(`[$₹£€]\s*\d{1,3}(?:[,0-9]{3})*(?:\.\d{2})?|\d+\.\d{2}`)
	plainMoneyRE  = regexp.MustCompile(`[\d,]+\.\d{2}`)
	bankRowLineRE = regexp.MustCompile(`(?m)^\s*\d{2}-[A-Za-z]{3}-\d{4}.*$`)
	bankRowPipeRE = regexp.MustCompile(`(?m)^\s*\d{2}-[A-Za-z]{3}-\d{4}\s*\|\s*.+$`)
	blankLineRE   = regexp.MustCompile(`\n\s*\n`)
)
