package market

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seededOptions(seed int64) []Option {
	return []Option{
		WithRand(rand.New(rand.NewSource(seed))),
		WithClock(fixedClock(time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC))),
	}
}

func TestInitialize_SingleSymbol(t *testing.T) {
	snap, err := Initialize([]SeedEntry{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", StartingPrice: 175.50},
	}, seededOptions(1)...)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Len())

	q, ok := snap.Get("AAPL")
	require.True(t, ok, "seeded symbol should be tracked")

	assert.Len(t, q.History, HistoryLimit, "initial history should be fully populated")
	assert.Equal(t, q.History[len(q.History)-1].Price, q.Price, "price should be the last generated sample")
	assert.Equal(t, q.History[0].Price, q.OpenPrice(), "open price should be the first sample")
	assert.InDelta(t, q.Price-q.OpenPrice(), q.Change, 1e-9, "change should derive from window open")
	assert.InDelta(t, q.Change/q.OpenPrice()*100, q.ChangePercent, 1e-9, "change percent should derive from window open")
	assert.GreaterOrEqual(t, q.Volume, int64(0), "seeded volume should be non-negative")
	assert.Less(t, q.Volume, int64(maxSeedVolume), "seeded volume should stay under the cap")

	// Samples are one minute apart ending at the clock time.
	assert.Equal(t, "14:29", q.History[len(q.History)-1].Label, "last sample lands one spacing before now")
	assert.Equal(t, "13:40", q.History[0].Label, "first sample is HistoryLimit spacings back")
}

func TestInitialize_PricesStayNearBase(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(7)...)
	require.NoError(t, err)
	require.Equal(t, len(DefaultSeed()), snap.Len())

	for _, entry := range DefaultSeed() {
		q, ok := snap.Get(entry.Symbol)
		require.True(t, ok, "symbol %s should be tracked", entry.Symbol)
		// The walk drifts at most 0.1% of base per step over 50 steps.
		maxDrift := entry.StartingPrice * initVolatility * 0.5 * HistoryLimit
		assert.InDelta(t, entry.StartingPrice, q.Price, maxDrift, "price for %s should stay near base", entry.Symbol)
		assert.Positive(t, q.Price, "price for %s should remain positive", entry.Symbol)
	}
}

func TestInitialize_Errors(t *testing.T) {
	_, err := Initialize(nil)
	assert.Error(t, err, "empty seed should be rejected")

	_, err = Initialize([]SeedEntry{{Symbol: " ", StartingPrice: 10}})
	assert.Error(t, err, "blank symbol should be rejected")

	_, err = Initialize([]SeedEntry{{Symbol: "X", StartingPrice: 0}})
	assert.Error(t, err, "non-positive starting price should be rejected")

	_, err = Initialize([]SeedEntry{
		{Symbol: "btc", StartingPrice: 100},
		{Symbol: "BTC", StartingPrice: 200},
	})
	assert.Error(t, err, "duplicate symbols should be rejected after canonicalisation")
}

func TestSnapshot_Lookups(t *testing.T) {
	snap, err := Initialize(DefaultSeed(), seededOptions(3)...)
	require.NoError(t, err)

	q, ok := snap.Get(" aapl ")
	assert.True(t, ok, "lookup should canonicalise the symbol")
	assert.Equal(t, "AAPL", q.Symbol)

	_, ok = snap.Get("ZZZZ")
	assert.False(t, ok, "unknown symbol should report absent")

	symbols := snap.Symbols()
	require.Len(t, symbols, len(DefaultSeed()))
	assert.True(t, sortedStrings(symbols), "symbols should be lexically ordered")

	quotes := snap.Quotes()
	require.Len(t, quotes, len(DefaultSeed()))
	assert.Equal(t, symbols[0], quotes[0].Symbol, "quotes should follow symbol order")
}

func TestStore_ReplaceGuardsSymbolSet(t *testing.T) {
	store, err := NewStore(DefaultSeed(), seededOptions(4)...)
	require.NoError(t, err)

	prev := store.Snapshot()
	ticker := NewTicker(seededOptions(5)...)
	next := ticker.Tick(prev)
	require.NoError(t, store.Replace(next), "ticked snapshot should be accepted")
	assert.Same(t, next, store.Snapshot(), "replace should publish the new snapshot")

	assert.Error(t, store.Replace(nil), "nil snapshot should be rejected")

	smaller, err := Initialize(DefaultSeed()[:3], seededOptions(6)...)
	require.NoError(t, err)
	assert.Error(t, store.Replace(smaller), "shrunken symbol set should be rejected")

	single, err := NewStore([]SeedEntry{{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", StartingPrice: 175.50}}, seededOptions(6)...)
	require.NoError(t, err)
	renamed, err := Initialize([]SeedEntry{{Symbol: "ZZZZ", Name: "Z", Sector: "Test", StartingPrice: 1}}, seededOptions(6)...)
	require.NoError(t, err)
	assert.Error(t, single.Replace(renamed), "snapshot with a different symbol set should be rejected")
}

func sortedStrings(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}
