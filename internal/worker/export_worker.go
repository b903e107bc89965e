// Package worker exports persisted pipeline runs to the configured report
// sink. It consumes run-sync messages, reloads the stored ledger and
// rebuilds the report rather than trusting anything in the message body.
package worker

import (
	"context"
	"errors"
	"fmt"

	"spendledger/internal/aggregate"
	"spendledger/internal/amqp"
	"spendledger/internal/core"
	applog "spendledger/internal/log"
	"spendledger/internal/sheets"
	"spendledger/internal/storage"
)

// ExportWorker handles run sync messages: load run, re-aggregate, append to
// the report sink.
type ExportWorker struct {
	repo       *storage.Repository
	writer     sheets.ReportWriter
	aggregator *aggregate.Aggregator
	budget     core.BudgetConfig
	logger     *applog.Logger
}

// NewExportWorker wires the worker. budget may be nil; violations are then
// never reported on export.
func NewExportWorker(repo *storage.Repository, writer sheets.ReportWriter, budget core.BudgetConfig, logger *applog.Logger) *ExportWorker {
	return &ExportWorker{
		repo:       repo,
		writer:     writer,
		aggregator: aggregate.NewAggregator(),
		budget:     budget,
		logger:     logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleRunSync processes one run sync message. A missing run is dropped
// (acked) since requeueing cannot make it appear; transient export failures
// return an error so the message is requeued.
func (w *ExportWorker) HandleRunSync(ctx context.Context, msg *amqp.RunSyncMessage) error {
	ledger, assignment, err := w.repo.LoadRun(ctx, msg.RunID)
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			w.logger.WarnContext(ctx, "Run sync for unknown run, dropping",
				applog.FieldRunID, msg.RunID)
			return nil
		}
		return fmt.Errorf("load run %s: %w", msg.RunID, err)
	}

	report := w.aggregator.Aggregate(ledger, assignment, w.budget)

	if err := w.writer.AppendReport(ctx, msg.RunID, report); err != nil {
		return fmt.Errorf("export run %s: %w", msg.RunID, err)
	}

	w.logger.InfoContext(ctx, "Run exported",
		applog.FieldRunID, msg.RunID,
		applog.FieldRecordCount, len(ledger),
		applog.FieldOperation, applog.OpExport)
	return nil
}
