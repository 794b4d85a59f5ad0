package handler

import (
	"openterminal-api/internal/terminal"
	"openterminal-api/pkg/analyst"
	"openterminal-api/pkg/market"
)

// TickerView is the compact quote shape shown in the watchlist side panel;
// it omits the price history carried by the full quote.
type TickerView struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
}

type WatchlistResponse struct {
	Selected string       `json:"selected"`
	Tickers  []TickerView `json:"tickers"`
}

type QuoteRequest struct {
	Symbol string `path:"symbol"`
}

type QuoteResponse struct {
	Quote    market.Quote `json:"quote"`
	Selected bool         `json:"selected"`
}

type SelectRequest struct {
	Symbol string `json:"symbol"`
}

type SelectResponse struct {
	Selected string `json:"selected"`
}

type NewsResponse struct {
	Items []analyst.NewsItem `json:"items"`
}

type NewsRefreshRequest struct {
	Symbols []string `json:"symbols,optional"`
}

type AnalysisRequest struct {
	Symbol string `json:"symbol,optional"`
	Query  string `json:"query,optional"`
	Deep   bool   `json:"deep,optional"`
}

type AnalysisResponse struct {
	Symbol   string `json:"symbol"`
	Analysis string `json:"analysis"`
}

type CommandRequest struct {
	Command string `json:"command"`
}

type StatusResponse struct {
	Status    terminal.MarketStatus `json:"status"`
	Selected  string                `json:"selected"`
	AIEnabled bool                  `json:"aiEnabled"`
}

func tickerView(q market.Quote) TickerView {
	return TickerView{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Sector:        q.Sector,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Volume:        q.Volume,
	}
}
