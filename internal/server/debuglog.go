package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/packman/loadplan/internal/engine"
)

// RunLogger writes the event trail of one planning run to a JSONL file,
// one event per line. It is safe for concurrent use; the packer itself
// is single-goroutine but HTTP handlers may share a logger.
type RunLogger struct {
	mu    sync.Mutex
	file  *os.File
	runID string
	path  string
}

type runEvent struct {
	Time    string         `json:"ts"`
	Event   string         `json:"evt"`
	Payload map[string]any `json:"payload,omitempty"`
}

// sanitizeFileName keeps file name components shell and filesystem safe.
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "run"
	}
	return b.String()
}

// NewRunLogger opens a JSONL debug file for one run under dir. The file
// is named <taskID>_<runID>.jsonl with a fresh run id.
func NewRunLogger(dir, taskID string) (*RunLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	runID := uuid.New().String()[:8]
	name := fmt.Sprintf("%s_%s.jsonl", sanitizeFileName(taskID), runID)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &RunLogger{file: f, runID: runID, path: path}, nil
}

// RunID returns the short id of this run.
func (l *RunLogger) RunID() string { return l.runID }

// Path returns the debug file path.
func (l *RunLogger) Path() string { return l.path }

// Event returns an engine.EventFunc that appends to the file. Encoding
// failures drop the event; a debug trail must never fail the run.
func (l *RunLogger) Event() engine.EventFunc {
	return func(event string, payload map[string]any) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.file == nil {
			return
		}
		line, err := json.Marshal(runEvent{
			Time:    time.Now().UTC().Format(time.RFC3339Nano),
			Event:   event,
			Payload: payload,
		})
		if err != nil {
			return
		}
		_, _ = l.file.Write(append(line, '\n'))
	}
}

// Close flushes and closes the debug file.
func (l *RunLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
