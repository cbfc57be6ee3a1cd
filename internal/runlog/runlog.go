// Package runlog records what each reporting run produced: one JSONL entry
// per generated, archived or recalculated artifact. Best-effort — logging
// must never block or fail a run.
package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is a single run-log record.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Workflow   string    `json:"workflow"`
	Action     string    `json:"action"` // "generated", "archived", "recalculated", "consolidated"
	Artifact   string    `json:"artifact,omitempty"`
	Partition  string    `json:"partition,omitempty"`
	Rows       int       `json:"rows,omitempty"`
	DurationMs int64     `json:"duration_ms,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Logger appends entries to a JSONL file.
type Logger struct {
	Path    string
	Enabled bool
}

// New creates a Logger. A disabled logger swallows everything.
func New(path string, enabled bool) *Logger {
	return &Logger{Path: path, Enabled: enabled}
}

// Log writes one entry. Errors are swallowed — the run log is advisory.
func (l *Logger) Log(e Entry) {
	if l == nil || !l.Enabled || l.Path == "" {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = f.Write(data)
}

// ReadEntries reads all entries from a run log; a missing file is empty,
// malformed lines are skipped.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue // skip malformed lines
		}
		entries = append(entries, e)
	}
	return entries, nil
}
