package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExchangeRecord captures one round trip with the AI analyst for audit and
// prompt iteration.
type ExchangeRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Kind         string    `json:"kind"`
	Symbol       string    `json:"symbol,omitempty"`
	Symbols      []string  `json:"symbols,omitempty"`
	Query        string    `json:"query,omitempty"`
	Response     string    `json:"response,omitempty"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Exchange kinds recorded by the analyst.
const (
	KindAnalysis  = "analysis"
	KindDeepDive  = "deep_dive"
	KindHeadlines = "headlines"
)

// Writer persists exchange records to a directory as JSON files.
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

// WriteExchange writes one record to a timestamped JSON file and returns its
// path.
func (w *Writer) WriteExchange(rec *ExchangeRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("journal: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	w.seq++
	name := fmt.Sprintf("exchange_%s_%05d.json", rec.Timestamp.UTC().Format("20060102_150405"), w.seq)
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
