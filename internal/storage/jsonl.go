package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"walletScope/internal/model"
)

// EventWriter appends normalized swap events to a JSONL file. Writes are
// serialized, so concurrent wallet tasks can share one writer.
type EventWriter struct {
	path string
	mu   sync.Mutex
}

func NewEventWriter(path string) *EventWriter {
	return &EventWriter{path: path}
}

// PutEventBatch appends a batch of event records as JSON lines.
func (w *EventWriter) PutEventBatch(records []model.EventRecord) error {
	if len(records) == 0 {
		return nil
	}

	dir := filepath.Dir(w.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal event record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write event record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
