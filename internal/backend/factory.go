// Package backend assembles the pipeline's pluggable collaborators from
// configuration: the extractor variant, the fallback classifier and the
// report writer. Selection is always explicit; the heuristic and assisted
// extractors are never mixed in one run.
package backend

import (
	"context"
	"fmt"

	"spendledger/internal/classify"
	"spendledger/internal/config"
	"spendledger/internal/core"
	"spendledger/internal/extract"
	applog "spendledger/internal/log"
	"spendledger/internal/sheets"
	"spendledger/internal/sheets/google"
	"spendledger/internal/sheets/memory"
)

// NewExtractor builds the configured extractor variant.
func NewExtractor(ctx context.Context, cfg *config.Config, logger *applog.Logger) (extract.TransactionExtractor, error) {
	switch cfg.ExtractorMode {
	case extract.ModeHeuristic:
		return extract.NewEngine(logger), nil
	case extract.ModeAssisted:
		ex, err := extract.NewAssistedExtractor(ctx, cfg.GenAIModel, logger)
		if err != nil {
			return nil, fmt.Errorf("assisted extractor: %w", err)
		}
		return ex, nil
	default:
		return nil, fmt.Errorf("unknown extractor mode %q", cfg.ExtractorMode)
	}
}

// NewFallback builds the fallback classifier, or nil when disabled or
// unavailable. An unavailable fallback is not an error: classification then
// stops at the keyword table, per the degradation policy.
func NewFallback(ctx context.Context, cfg *config.Config, rules core.CategoryMap, logger *applog.Logger) classify.Fallback {
	if !cfg.UseFallback {
		return nil
	}
	fb, err := classify.NewGeminiFallback(ctx, cfg.GenAIModel, rules)
	if err != nil {
		logger.WithComponent(applog.ComponentClassify).WarnContext(ctx,
			"Fallback classifier unavailable, vendors will stay in 'other'",
			applog.FieldError, err)
		return nil
	}
	return fb
}

// NewReportWriter builds the report sink: Google Sheets when configured,
// otherwise an in-memory store.
func NewReportWriter(ctx context.Context, cfg *config.Config, logger *applog.Logger) (sheets.ReportWriter, error) {
	if cfg.SheetsEnabled() {
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("sheets report writer: %w", err)
		}
		logger.WithComponent(applog.ComponentSheets).InfoContext(ctx,
			"Google Sheets report export enabled")
		return cli, nil
	}
	return memory.New(), nil
}
