package sheets

import (
	"context"

	"spendledger/internal/core"
)

// Ports for outbound report adapters.
type (
	// ReportWriter exports a run's aggregation report somewhere humans can
	// look at it.
	ReportWriter interface {
		AppendReport(ctx context.Context, runID string, report *core.AggregationReport) error
	}
)
