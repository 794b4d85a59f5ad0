package market

import (
	"fmt"
	"strings"
)

// SeedEntry describes one instrument tracked from process start. The symbol
// set is fixed once the store is created; adding a symbol requires a new store.
type SeedEntry struct {
	Symbol        string  `yaml:"symbol"`
	Name          string  `yaml:"name"`
	Sector        string  `yaml:"sector"`
	StartingPrice float64 `yaml:"starting_price"`
}

func (e SeedEntry) validate(idx int) error {
	if strings.TrimSpace(e.Symbol) == "" {
		return fmt.Errorf("market: seed[%d]: symbol is required", idx)
	}
	if e.StartingPrice <= 0 {
		return fmt.Errorf("market: seed[%d] %s: starting price must be positive", idx, e.Symbol)
	}
	return nil
}

// DefaultSeed returns the built-in watchlist used when no configuration is
// supplied.
func DefaultSeed() []SeedEntry {
	return []SeedEntry{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", StartingPrice: 175.50},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Sector: "Technology", StartingPrice: 380.20},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology", StartingPrice: 140.10},
		{Symbol: "AMZN", Name: "Amazon.com", Sector: "Consumer Cyclical", StartingPrice: 155.30},
		{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Cyclical", StartingPrice: 210.80},
		{Symbol: "NVDA", Name: "NVIDIA Corp.", Sector: "Technology", StartingPrice: 650.00},
		{Symbol: "JPM", Name: "JPMorgan Chase", Sector: "Financial", StartingPrice: 170.40},
		{Symbol: "V", Name: "Visa Inc.", Sector: "Financial", StartingPrice: 280.10},
		{Symbol: "BTC", Name: "Bitcoin USD", Sector: "Crypto", StartingPrice: 52000.00},
		{Symbol: "ETH", Name: "Ethereum USD", Sector: "Crypto", StartingPrice: 2800.00},
	}
}
