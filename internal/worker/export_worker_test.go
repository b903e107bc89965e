package worker

import (
	"context"
	"path/filepath"
	"testing"

	"spendledger/internal/amqp"
	"spendledger/internal/core"
	applog "spendledger/internal/log"
	"spendledger/internal/sheets/memory"
	"spendledger/internal/storage"
)

func TestHandleRunSyncExportsStoredRun(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer repo.Close()

	date := "2025-09-05"
	vendor := "Pizza Palace"
	amount := 150.0
	ledger := core.Ledger{{
		Date: &date, Vendor: &vendor, Amount: &amount,
		Source: core.SourceBank, File: "statement.txt",
	}}
	if err := repo.SaveRun(ctx, "run-1", 1, ledger, map[string]string{"Pizza Palace": "food"}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	store := memory.New()
	budget := core.BudgetConfig{"food": 100.0}
	w := NewExportWorker(repo, store, budget, applog.New(applog.DefaultConfig()))

	if err := w.HandleRunSync(ctx, amqp.NewRunSyncMessage("run-1", 1)); err != nil {
		t.Fatalf("HandleRunSync: %v", err)
	}

	report, ok := store.Report("run-1")
	if !ok {
		t.Fatal("report not appended")
	}
	if report.CountIndexedTxns != 1 {
		t.Errorf("count = %d, want 1", report.CountIndexedTxns)
	}
	if got := report.TotalByCategory["food"]; got != 150.0 {
		t.Errorf("food total = %v, want 150", got)
	}
	if len(report.Violations) != 1 || report.Violations[0].Excess != 50.0 {
		t.Errorf("violations = %+v, want one 50 over", report.Violations)
	}
}

func TestHandleRunSyncDropsUnknownRun(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer repo.Close()

	store := memory.New()
	w := NewExportWorker(repo, store, nil, applog.New(applog.DefaultConfig()))

	// unknown runs are acked, not requeued
	if err := w.HandleRunSync(ctx, amqp.NewRunSyncMessage("ghost", 0)); err != nil {
		t.Fatalf("HandleRunSync: %v", err)
	}
	if len(store.RunIDs()) != 0 {
		t.Errorf("report appended for unknown run")
	}
}
