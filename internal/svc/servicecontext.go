package svc

import (
	"fmt"

	"openterminal-api/internal/config"
	"openterminal-api/internal/terminal"
	"openterminal-api/pkg/analyst"
	llmpkg "openterminal-api/pkg/llm"
	marketpkg "openterminal-api/pkg/market"
)

type ServiceContext struct {
	Config config.Config

	LLMConfig    *llmpkg.Config
	MarketConfig *marketpkg.Config

	Store    *marketpkg.Store
	Ticker   *marketpkg.Ticker
	Analyst  *analyst.Analyst
	Terminal *terminal.Terminal
}

// NewServiceContext builds the runtime object graph: seeded market store,
// tick generator, analyst (degraded when no API key is configured) and the
// terminal controller on top of them.
func NewServiceContext(c *config.Config) (*ServiceContext, error) {
	llmCfg := c.LLMConfig()
	marketCfg := c.MarketConfig()

	store, err := marketpkg.NewStore(marketCfg.Seed())
	if err != nil {
		return nil, fmt.Errorf("svc: seed market store: %w", err)
	}
	ticker := marketpkg.NewTicker()

	an, err := analyst.New(llmCfg)
	if err != nil {
		return nil, fmt.Errorf("svc: build analyst: %w", err)
	}

	// The default selection is the first watchlist entry, matching the order
	// the quotes are configured in rather than lexical order.
	opts := []terminal.Option{}
	if seed := marketCfg.Seed(); len(seed) > 0 {
		opts = append(opts, terminal.WithSelected(seed[0].Symbol))
	}
	term, err := terminal.New(store, ticker, an, opts...)
	if err != nil {
		return nil, fmt.Errorf("svc: build terminal: %w", err)
	}

	return &ServiceContext{
		Config:       *c,
		LLMConfig:    llmCfg,
		MarketConfig: marketCfg,
		Store:        store,
		Ticker:       ticker,
		Analyst:      an,
		Terminal:     term,
	}, nil
}
