package amqp

import (
	"encoding/json"
	"time"
)

// RunSyncMessage asks the worker to export one stored pipeline run. It
// carries only the run ID; the worker reloads the ledger from the database
// and rebuilds the report itself.
type RunSyncMessage struct {
	RunID     string    `json:"run_id"`
	TxnCount  int       `json:"txn_count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRunSyncMessage creates a sync message for a persisted run.
func NewRunSyncMessage(runID string, txnCount int) *RunSyncMessage {
	return &RunSyncMessage{
		RunID:     runID,
		TxnCount:  txnCount,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RunSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RunSyncMessageFromJSON creates a message from JSON bytes
func RunSyncMessageFromJSON(data []byte) (*RunSyncMessage, error) {
	var msg RunSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
