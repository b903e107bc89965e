// Package services wires the pipeline stages together. The "never abort the
// batch" policy lives here as an explicit continuation rule: stage-level
// trouble is logged and degraded, and only infrastructure setup failures
// surface to the caller.
package services

import (
	"context"

	"github.com/google/uuid"

	"spendledger/internal/aggregate"
	"spendledger/internal/classify"
	"spendledger/internal/core"
	"spendledger/internal/extract"
	applog "spendledger/internal/log"
	"spendledger/internal/storage"
)

// RunPublisher notifies downstream consumers that a run has been persisted.
type RunPublisher interface {
	PublishRunSync(ctx context.Context, runID string, txnCount int) error
}

// RunResult bundles everything one pipeline invocation produces.
type RunResult struct {
	RunID      string                 `json:"run_id"`
	Ledger     core.Ledger            `json:"ledger"`
	Assignment map[string]string      `json:"vendor_categories"`
	Report     *core.AggregationReport `json:"report"`
	Trends     *core.TrendSeries      `json:"trends"`
}

// Pipeline runs the extraction, classification, aggregation and trend stages
// strictly in sequence. Repository and publisher are optional; a nil value
// just skips that side effect.
type Pipeline struct {
	extractor  extract.TransactionExtractor
	assigner   *classify.Assigner
	aggregator *aggregate.Aggregator
	trends     *aggregate.TrendBuilder
	repo       *storage.Repository
	publisher  RunPublisher
	logger     *applog.Logger
}

// NewPipeline assembles a pipeline from its stages.
func NewPipeline(
	extractor extract.TransactionExtractor,
	assigner *classify.Assigner,
	aggregator *aggregate.Aggregator,
	trends *aggregate.TrendBuilder,
	repo *storage.Repository,
	publisher RunPublisher,
	logger *applog.Logger,
) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		assigner:   assigner,
		aggregator: aggregator,
		trends:     trends,
		repo:       repo,
		publisher:  publisher,
		logger:     logger.WithComponent(applog.ComponentPipeline),
	}
}

// Run executes one full pipeline pass over the given documents. Each stage
// consumes its predecessor's complete output; no stage sees partial input.
// Extraction trouble degrades to a smaller ledger, classification trouble to
// more "other" categories; neither aborts the run.
func (p *Pipeline) Run(ctx context.Context, docs []core.SourceDocument, budget core.BudgetConfig) (*RunResult, error) {
	runID := uuid.NewString()
	p.logger.InfoContext(ctx, "Pipeline run started",
		applog.FieldRunID, runID,
		"file_count", len(docs))

	ledger, err := p.extractor.Extract(ctx, docs)
	if err != nil {
		p.logger.WarnContext(ctx, "Extraction degraded, continuing with partial ledger",
			applog.FieldRunID, runID,
			applog.FieldOperation, applog.OpExtract,
			applog.FieldError, err)
	}
	p.logger.InfoContext(ctx, "Extraction complete",
		applog.FieldRunID, runID,
		applog.FieldRecordCount, len(ledger))

	assignment := p.assigner.Build(ctx, ledger)

	report := p.aggregator.Aggregate(ledger, assignment, budget)
	trends := p.trends.Build(ledger, assignment)

	p.logger.InfoContext(ctx, "Aggregation complete",
		applog.FieldRunID, runID,
		"indexed_txns", report.CountIndexedTxns,
		"violations", len(report.Violations))

	if p.repo != nil && len(ledger) > 0 {
		if err := p.repo.SaveRun(ctx, runID, len(docs), ledger, assignment); err != nil {
			p.logger.ErrorContext(ctx, "Run persistence failed",
				applog.FieldRunID, runID,
				applog.FieldOperation, applog.OpPersist,
				applog.FieldError, err)
		} else if p.publisher != nil {
			if err := p.publisher.PublishRunSync(ctx, runID, len(ledger)); err != nil {
				p.logger.WarnContext(ctx, "Run sync publish failed",
					applog.FieldRunID, runID,
					applog.FieldOperation, applog.OpPublish,
					applog.FieldError, err)
			}
		}
	}

	return &RunResult{
		RunID:      runID,
		Ledger:     ledger,
		Assignment: assignment,
		Report:     report,
		Trends:     trends,
	}, nil
}
