package storage

import (
	"errors"
	"time"
)

// ErrRunNotFound marks a run ID with no stored transactions.
var ErrRunNotFound = errors.New("run not found")

// RunInfo is one row from the runs table.
type RunInfo struct {
	ID        string
	CreatedTS time.Time
	FileCount int
	TxnCount  int
}
