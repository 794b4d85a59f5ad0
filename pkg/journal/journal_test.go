package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExchange(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	w.nowFn = func() time.Time { return time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC) }

	path, err := w.WriteExchange(&ExchangeRecord{
		Kind:     KindAnalysis,
		Symbol:   "AAPL",
		Query:    "quick take",
		Response: "Momentum looks constructive.",
		Success:  true,
	})
	require.NoError(t, err, "write exchange record")
	assert.Equal(t, filepath.Join(dir, "exchange_20260302_091500_00001.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec ExchangeRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "AAPL", rec.Symbol)
	assert.True(t, rec.Success)
	assert.False(t, rec.Timestamp.IsZero(), "timestamp should be stamped on write")
}

func TestWriteExchange_SequencesFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	first, err := w.WriteExchange(&ExchangeRecord{Kind: KindHeadlines, Symbols: []string{"AAPL", "NVDA"}})
	require.NoError(t, err)
	second, err := w.WriteExchange(&ExchangeRecord{Kind: KindDeepDive, Symbol: "NVDA"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "each record gets its own file")
}

func TestWriteExchange_NilRecord(t *testing.T) {
	w := NewWriter(t.TempDir())
	_, err := w.WriteExchange(nil)
	require.Error(t, err, "nil records are rejected")
}
