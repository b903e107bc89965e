package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendledger/internal/core"

	_ "modernc.org/sqlite"
)

// Repository persists pipeline runs and their ledgers to SQLite. Read-back
// by position order reproduces the ledger exactly as extraction produced it.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the database at dbPath and applies
// pending migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveRun stores one run and its full ledger with resolved categories in a
// single transaction.
func (r *Repository) SaveRun(ctx context.Context, runID string, fileCount int, ledger core.Ledger, assignment map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, file_count, txn_count) VALUES (?, ?, ?)`,
		runID, fileCount, len(ledger),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions
			(run_id, position, txn_date, vendor, amount, currency, description, source, file, page, category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range ledger {
		category := core.CategoryOther
		if assignment != nil {
			if cat, ok := assignment[rec.VendorKey()]; ok && cat != "" {
				category = cat
			}
		}
		if _, err := stmt.ExecContext(ctx,
			runID, i, rec.Date, rec.Vendor, rec.Amount, rec.Currency,
			rec.Desc, rec.Source, rec.File, rec.Page, category,
		); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	slog.InfoContext(ctx, "Run saved to SQLite",
		"run_id", runID,
		"txn_count", len(ledger),
		"file_count", fileCount)

	return nil
}

// LoadRun reads a run's ledger back in position order, together with the
// vendor-category assignment reconstructed from the stored rows.
func (r *Repository) LoadRun(ctx context.Context, runID string) (core.Ledger, map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT txn_date, vendor, amount, currency, description, source, file, page, category
		FROM transactions
		WHERE run_id = ?
		ORDER BY position`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var ledger core.Ledger
	assignment := make(map[string]string)
	for rows.Next() {
		var rec core.TransactionRecord
		var category string
		if err := rows.Scan(&rec.Date, &rec.Vendor, &rec.Amount, &rec.Currency,
			&rec.Desc, &rec.Source, &rec.File, &rec.Page, &category); err != nil {
			return nil, nil, fmt.Errorf("scan transaction: %w", err)
		}
		ledger = append(ledger, rec)
		assignment[rec.VendorKey()] = category
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate transactions: %w", err)
	}
	if len(ledger) == 0 {
		return nil, nil, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
	}

	return ledger, assignment, nil
}

// ListRuns returns stored run IDs, newest first.
func (r *Repository) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_ts, file_count, txn_count
		FROM runs
		ORDER BY created_ts DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var ri RunInfo
		if err := rows.Scan(&ri.ID, &ri.CreatedTS, &ri.FileCount, &ri.TxnCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, ri)
	}
	return runs, rows.Err()
}
