package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Reporter appends categorized run summaries to a JSON log file.
type Reporter struct {
	mu      sync.Mutex
	logFile *os.File
	entries map[string][]any
}

func NewReporter(logPath string) (*Reporter, error) {
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Reporter{
		logFile: file,
		entries: make(map[string][]any),
	}, nil
}

func (r *Reporter) Record(category string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[category] = append(r.entries[category], map[string]any{
		"timestamp": time.Now(),
		"data":      data,
	})
}

func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return nil
	}

	data, err := json.Marshal(r.entries)
	if err != nil {
		return err
	}

	if _, err := r.logFile.Write(append(data, '\n')); err != nil {
		return err
	}

	r.entries = make(map[string][]any)
	return nil
}

func (r *Reporter) Close() error {
	if err := r.Flush(); err != nil {
		return fmt.Errorf("failed to flush run reports: %w", err)
	}
	return r.logFile.Close()
}
