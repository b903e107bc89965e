package amqp

import (
	"testing"
)

func TestRunSyncMessageRoundTrip(t *testing.T) {
	msg := NewRunSyncMessage("run-42", 17)
	if msg.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := RunSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("RunSyncMessageFromJSON: %v", err)
	}
	if got.RunID != "run-42" {
		t.Errorf("run_id = %q, want run-42", got.RunID)
	}
	if got.TxnCount != 17 {
		t.Errorf("txn_count = %d, want 17", got.TxnCount)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestRunSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := RunSyncMessageFromJSON([]byte("{broken")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
