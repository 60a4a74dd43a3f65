package event

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/osse101/TactasRNG_Go/internal/logger"
)

// DeadLetterSchemaVersion is the current version of the dead-letter log format
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one line of the dead-letter log
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends events that exhausted their retries as JSON lines
type DeadLetterWriter struct {
	mu  sync.Mutex
	w   io.WriteCloser
	enc *json.Encoder
	now func() time.Time
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead-letter log %s: %w", path, err)
	}
	return &DeadLetterWriter{w: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

func (d *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Event:         evt,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}
	logger.Warn("event_dead_lettered", "event_id", evt.ID, "event_type", evt.Type, "attempts", attempts, "error", entry.LastError)

	d.mu.Lock()
	defer d.mu.Unlock()
	entry.Timestamp = d.now().UTC()
	// Encode terminates each entry with a newline
	if err := d.enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to append dead letter for %s: %w", evt.Type, err)
	}
	return nil
}

func (d *DeadLetterWriter) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w.Close()
}

// ReadDeadLetters loads every entry in the log at path. A missing file is an
// empty log. Payloads come back as generic JSON values; use DecodePayload.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open dead-letter log %s: %w", path, err)
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("dead-letter log %s line %d: %w", path, line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("failed to read dead-letter log %s: %w", path, err)
	}
	return entries, nil
}
