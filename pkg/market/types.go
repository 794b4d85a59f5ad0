package market

import (
	"sort"
	"strings"
)

// HistoryLimit bounds the number of retained price samples per quote.
// The oldest retained sample defines the open price for change calculations.
const HistoryLimit = 50

// PricePoint is a single sample in a quote's price history.
type PricePoint struct {
	Label string  `json:"time"`
	Price float64 `json:"price"`
}

// Quote is the current and historical price record for one ticker symbol.
type Quote struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Sector        string       `json:"sector"`
	Price         float64      `json:"price"`
	Change        float64      `json:"change"`
	ChangePercent float64      `json:"changePercent"`
	Volume        int64        `json:"volume"`
	History       []PricePoint `json:"history"`
}

// OpenPrice returns the price of the oldest retained history sample.
func (q Quote) OpenPrice() float64 {
	if len(q.History) == 0 {
		return 0
	}
	return q.History[0].Price
}

// Snapshot is an immutable, complete symbol-to-quote mapping valid at one
// instant. Ticks replace the whole snapshot; no quote is mutated in place,
// so concurrent reads never need synchronization.
type Snapshot struct {
	quotes map[string]Quote
}

func newSnapshot(quotes map[string]Quote) *Snapshot {
	return &Snapshot{quotes: quotes}
}

// Canonical normalises a symbol for lookups.
func Canonical(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Get returns the quote for the given symbol, if tracked.
func (s *Snapshot) Get(symbol string) (Quote, bool) {
	if s == nil {
		return Quote{}, false
	}
	q, ok := s.quotes[Canonical(symbol)]
	return q, ok
}

// Has reports whether the snapshot tracks the given symbol.
func (s *Snapshot) Has(symbol string) bool {
	_, ok := s.Get(symbol)
	return ok
}

// Len returns the number of tracked symbols.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.quotes)
}

// Symbols returns the tracked symbols in lexical order.
func (s *Snapshot) Symbols() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.quotes))
	for sym := range s.quotes {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Quotes returns all quotes ordered by symbol.
func (s *Snapshot) Quotes() []Quote {
	if s == nil {
		return nil
	}
	out := make([]Quote, 0, len(s.quotes))
	for _, sym := range s.Symbols() {
		out = append(out, s.quotes[sym])
	}
	return out
}
