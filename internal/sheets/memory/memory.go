// Package memory keeps appended reports in process memory. Used by tests
// and by runs configured without a spreadsheet.
package memory

import (
	"context"
	"sync"

	"spendledger/internal/core"
	ports "spendledger/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	reports map[string]*core.AggregationReport
	order   []string
}

var _ ports.ReportWriter = (*Store)(nil)

func New() *Store {
	return &Store{reports: make(map[string]*core.AggregationReport)}
}

func (s *Store) AppendReport(_ context.Context, runID string, report *core.AggregationReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[runID]; !ok {
		s.order = append(s.order, runID)
	}
	s.reports[runID] = report
	return nil
}

// Report returns the stored report for a run.
func (s *Store) Report(runID string) (*core.AggregationReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[runID]
	return r, ok
}

// RunIDs returns the run IDs in append order.
func (s *Store) RunIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
