// Package journal persists scored assessment sessions as JSON files for
// offline review and analysis.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionRecord captures one submission attempt end to end.
type SessionRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	UserID         string         `json:"user_id"`
	Symbol         string         `json:"symbol"`
	SessionNumber  int            `json:"session_number"`
	SetupScore     *int           `json:"setup_score,omitempty"`
	MindsetScore   int            `json:"mindset_score"`
	Recommendation string         `json:"recommendation"`
	Breakdown      map[string]any `json:"breakdown,omitempty"`
	Accepted       bool           `json:"accepted"`
	Reason         string         `json:"reason,omitempty"`
	Decision       string         `json:"decision,omitempty"`
	Overridden     bool           `json:"overridden,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// Writer persists session records to a directory as JSON files.
type Writer struct {
	dir   string
	seq   int
	nowFn func() time.Time
}

// NewWriter constructs a journal writer.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "journal"
	}
	_ = os.MkdirAll(dir, 0o755)
	return &Writer{dir: dir, nowFn: time.Now}
}

// WriteSession writes a session record to a timestamped JSON file.
func (w *Writer) WriteSession(rec *SessionRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("journal: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	w.seq++
	rec.SessionNumber = w.seq
	name := fmt.Sprintf("session_%s_%05d.json", rec.Timestamp.UTC().Format("20060102_150405"), w.seq)
	path := filepath.Join(w.dir, name)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
