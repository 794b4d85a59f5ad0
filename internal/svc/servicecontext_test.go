package svc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openterminal-api/internal/config"
	"openterminal-api/pkg/analyst"
	"openterminal-api/pkg/market"
)

func TestNewServiceContext_Defaults(t *testing.T) {
	t.Setenv("OPENTERMINAL_API_KEY", "")

	cfg := &config.Config{Env: "test"}
	ctx, err := NewServiceContext(cfg)
	require.NoError(t, err, "defaults should wire without any sections")

	require.NotNil(t, ctx.Store)
	require.NotNil(t, ctx.Terminal)

	snap := ctx.Store.Snapshot()
	assert.Equal(t, len(market.DefaultSeed()), snap.Len(), "built-in watchlist should seed the store")

	// Selection follows watchlist order, not lexical order.
	assert.Equal(t, market.DefaultSeed()[0].Symbol, ctx.Terminal.SelectedSymbol())

	quote, ok := ctx.Terminal.SelectedQuote()
	require.True(t, ok)
	assert.Len(t, quote.History, market.HistoryLimit, "seeded history should be full")

	// Without a credential the analyst must answer from its fallbacks.
	text := ctx.Analyst.Analyze(context.Background(), quote, "quick take")
	assert.Equal(t, analyst.FallbackNotConfigured, text)
}

func TestNewServiceContext_AdvancesTicks(t *testing.T) {
	t.Setenv("OPENTERMINAL_API_KEY", "")

	ctx, err := NewServiceContext(&config.Config{Env: "test"})
	require.NoError(t, err)

	before, _ := ctx.Terminal.SelectedQuote()
	ctx.Terminal.Advance()
	after, _ := ctx.Terminal.SelectedQuote()

	assert.Len(t, after.History, market.HistoryLimit, "history stays bounded across ticks")
	assert.GreaterOrEqual(t, after.Volume, before.Volume, "volume never decreases")
}
