package market

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicker_HistoryBound(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(10)...)
	require.NoError(t, err)

	ticker := NewTicker(seededOptions(11)...)
	for i := 0; i < 120; i++ {
		snap = ticker.Tick(snap)
		for _, q := range snap.Quotes() {
			require.LessOrEqual(t, len(q.History), HistoryLimit, "history must stay bounded for %s after tick %d", q.Symbol, i)
			require.NotEmpty(t, q.History, "history must never be empty for %s", q.Symbol)
		}
	}
}

func TestTicker_DropOldest(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(12)...)
	require.NoError(t, err)

	ticker := NewTicker(seededOptions(13)...)
	before, _ := snap.Get("AAPL")
	require.Len(t, before.History, HistoryLimit)

	next := ticker.Tick(snap)
	after, _ := next.Get("AAPL")
	require.Len(t, after.History, HistoryLimit)

	// New history equals the old one shifted left by one with the fresh
	// sample appended.
	for i := 0; i < HistoryLimit-1; i++ {
		assert.Equal(t, before.History[i+1], after.History[i], "sample %d should shift left", i)
	}
	assert.Equal(t, after.Price, after.History[HistoryLimit-1].Price, "last sample should carry the new price")
}

func TestTicker_ChangeConsistency(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(14)...)
	require.NoError(t, err)

	ticker := NewTicker(seededOptions(15)...)
	for i := 0; i < 25; i++ {
		snap = ticker.Tick(snap)
		for _, q := range snap.Quotes() {
			open := q.OpenPrice()
			require.InDelta(t, q.Price-open, q.Change, 1e-9, "change must derive from the post-trim window open for %s", q.Symbol)
			require.InDelta(t, q.Change/open*100, q.ChangePercent, 1e-9, "change percent must derive from the post-trim window open for %s", q.Symbol)
		}
	}
}

func TestTicker_VolumeMonotonic(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(16)...)
	require.NoError(t, err)

	ticker := NewTicker(seededOptions(17)...)
	for i := 0; i < 40; i++ {
		next := ticker.Tick(snap)
		for _, sym := range snap.Symbols() {
			before, _ := snap.Get(sym)
			after, _ := next.Get(sym)
			require.GreaterOrEqual(t, after.Volume, before.Volume, "volume must never decrease for %s", sym)
			require.Less(t, after.Volume-before.Volume, int64(maxVolumeStep), "volume step must stay bounded for %s", sym)
		}
		snap = next
	}
}

func TestTicker_InputSnapshotUnchanged(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(18)...)
	require.NoError(t, err)

	type frozen struct {
		quote   Quote
		history []PricePoint
	}
	before := make(map[string]frozen, snap.Len())
	for _, q := range snap.Quotes() {
		hist := make([]PricePoint, len(q.History))
		copy(hist, q.History)
		before[q.Symbol] = frozen{quote: q, history: hist}
	}

	ticker := NewTicker(seededOptions(19)...)
	_ = ticker.Tick(snap)

	for sym, want := range before {
		got, ok := snap.Get(sym)
		require.True(t, ok)
		assert.Equal(t, want.quote.Price, got.Price, "input price for %s must be unchanged", sym)
		assert.Equal(t, want.quote.Volume, got.Volume, "input volume for %s must be unchanged", sym)
		assert.Equal(t, want.history, got.History, "input history for %s must be unchanged", sym)
	}
}

func TestTicker_SymbolSetStable(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(20)...)
	require.NoError(t, err)

	next := NewTicker(seededOptions(21)...).Tick(snap)
	assert.Equal(t, snap.Symbols(), next.Symbols(), "tick must preserve the symbol set")
}

func TestTicker_SingleStepShape(t *testing.T) {
	snap, err := Initialize([]SeedEntry{
		{Symbol: "MSFT", Name: "Microsoft Corp.", Sector: "Technology", StartingPrice: 380.20},
	}, seededOptions(22)...)
	require.NoError(t, err)

	before, _ := snap.Get("MSFT")
	clock := time.Date(2026, 3, 2, 15, 04, 0, 0, time.UTC)
	ticker := NewTicker(WithRand(rand.New(rand.NewSource(23))), WithClock(fixedClock(clock)))
	next := ticker.Tick(snap)

	after, ok := next.Get("MSFT")
	require.True(t, ok)
	assert.Len(t, after.History, HistoryLimit, "history should stay at the bound")
	// A single uniform step moves the price by at most half the tick
	// volatility in either direction.
	maxStep := before.Price * tickVolatility * 0.5
	assert.InDelta(t, before.Price, after.Price, maxStep, "single step must stay inside the volatility band")
	assert.GreaterOrEqual(t, after.Volume, before.Volume)
	assert.Less(t, after.Volume-before.Volume, int64(maxVolumeStep))
	assert.Equal(t, "15:04", after.History[HistoryLimit-1].Label, "new sample should carry the wall-clock label")
}

func TestTicker_NilSnapshot(t *testing.T) {
	assert.Nil(t, NewTicker().Tick(nil), "nil input should yield nil output")
}
