package extract

import (
	"context"
	"strings"

	"spendledger/internal/core"
	applog "spendledger/internal/log"
)

// Engine is the regex-heuristic extractor. It segments each document into
// candidate blocks, picks a parser per block shape, validates every candidate
// and assembles the ledger in discovery order. Parse failures never
// propagate: a record that does not validate is dropped and extraction
// continues.
type Engine struct {
	logger *applog.Logger
}

// NewEngine returns a heuristic extraction engine.
func NewEngine(logger *applog.Logger) *Engine {
	return &Engine{logger: logger.WithComponent(applog.ComponentExtract)}
}

var _ TransactionExtractor = (*Engine)(nil)

// Extract runs the dispatch policy over every document and returns the
// assembled ledger. It never returns an error; unparseable input just yields
// fewer records.
func (e *Engine) Extract(ctx context.Context, docs []core.SourceDocument) (core.Ledger, error) {
	var ledger core.Ledger
	for _, doc := range docs {
		before := len(ledger)
		if len(doc.Pages) > 0 {
			ledger = e.extractPaged(ledger, doc)
		} else {
			ledger = e.extractFlat(ledger, doc)
		}
		e.logger.DebugContext(ctx, "Document extracted",
			applog.FieldFile, doc.Name,
			applog.FieldRecordCount, len(ledger)-before)
	}
	return ledger, nil
}

func (e *Engine) extractPaged(ledger core.Ledger, doc core.SourceDocument) core.Ledger {
	for i, raw := range doc.Pages {
		pageText := strings.TrimSpace(raw)
		if pageText == "" {
			continue
		}
		page := i + 1

		if bankRowPipeRE.MatchString(pageText) {
			for _, line := range bankRowLineRE.FindAllString(pageText, -1) {
				if rec, ok := ParseBankRow(line); ok {
					ledger = e.accept(ledger, rec, doc.Name, &page)
				}
			}
			continue
		}

		if msgs := SplitMessages(pageText); len(msgs) > 0 {
			for _, msg := range msgs {
				if rec, ok := ParseSMSMessage(msg); ok {
					ledger = e.accept(ledger, rec, doc.Name, &page)
				}
			}
			continue
		}

		if rec, ok := ParseBankRow(pageText); ok {
			ledger = e.accept(ledger, rec, doc.Name, &page)
		} else if rec, ok := ParseSMSMessage(pageText); ok {
			ledger = e.accept(ledger, rec, doc.Name, &page)
		}
	}
	return ledger
}

func (e *Engine) extractFlat(ledger core.Ledger, doc core.SourceDocument) core.Ledger {
	name := strings.ToLower(doc.Name)
	if strings.Contains(name, "sms") || strings.Contains(name, "msg") {
		msgs := SplitMessages(doc.Text)
		if len(msgs) == 0 {
			msgs = blankLineBlocks(doc.Text)
		}
		for _, msg := range msgs {
			if rec, ok := ParseSMSMessage(msg); ok {
				ledger = e.accept(ledger, rec, doc.Name, nil)
			}
		}
		return ledger
	}

	if rows := bankRowLineRE.FindAllString(doc.Text, -1); len(rows) > 0 {
		for _, row := range rows {
			if rec, ok := ParseBankRow(row); ok {
				ledger = e.accept(ledger, rec, doc.Name, nil)
			}
		}
		return ledger
	}

	for _, chunk := range blankLineBlocks(doc.Text) {
		if rec, ok := ParseBankRow(chunk); ok {
			ledger = e.accept(ledger, rec, doc.Name, nil)
		} else if rec, ok := ParseSMSMessage(chunk); ok {
			ledger = e.accept(ledger, rec, doc.Name, nil)
		}
	}
	return ledger
}

// accept stamps provenance onto a candidate and appends it if it passes the
// schema gate. Rejected candidates are dropped silently.
func (e *Engine) accept(ledger core.Ledger, rec core.TransactionRecord, file string, page *int) core.Ledger {
	rec.File = file
	rec.Page = page
	if err := core.ValidateRecord(rec); err != nil {
		return ledger
	}
	return append(ledger, rec)
}

func blankLineBlocks(text string) []string {
	var blocks []string
	for _, b := range blankLineRE.Split(text, -1) {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
