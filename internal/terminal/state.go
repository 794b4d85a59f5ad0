// Package terminal owns the application state of the dashboard: the live
// snapshot, the selected symbol, the news list and the current analysis
// text. All mutation goes through explicit methods, and interested
// consumers subscribe to change events.
package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"openterminal-api/pkg/analyst"
	"openterminal-api/pkg/market"
)

// MarketStatus mirrors the exchange session phase shown in the status bar.
type MarketStatus string

const (
	StatusOpen      MarketStatus = "OPEN"
	StatusClosed    MarketStatus = "CLOSED"
	StatusPreMarket MarketStatus = "PRE-MARKET"
)

// maxNewsItems bounds the retained news list; newest items come first.
const maxNewsItems = 20

const defaultAnalysisQuery = "Provide a brief intraday technical summary."
const selectionAnalysisQuery = "Quick technical outlook."

// Terminal is the single controller for terminal state.
type Terminal struct {
	store   *market.Store
	ticker  *market.Ticker
	analyst *analyst.Analyst

	mu       sync.RWMutex
	selected string
	news     []analyst.NewsItem
	analysis string

	// Monotonically increasing request ids. An async result is applied only
	// if it carries the latest id issued for its target; stale responses are
	// discarded instead of overwriting newer state.
	analysisSeq uint64
	newsSeq     uint64

	now  func() time.Time
	subs *subscribers
}

// Option customises the terminal controller.
type Option func(*Terminal)

// WithSelected sets the initially selected symbol.
func WithSelected(symbol string) Option {
	return func(t *Terminal) {
		t.selected = market.Canonical(symbol)
	}
}

// WithClock injects a clock used for the market status.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) {
		if now != nil {
			t.now = now
		}
	}
}

// New wires the controller over the market store, tick generator and analyst.
func New(store *market.Store, ticker *market.Ticker, an *analyst.Analyst, opts ...Option) (*Terminal, error) {
	if store == nil {
		return nil, fmt.Errorf("terminal: store is required")
	}
	if ticker == nil {
		return nil, fmt.Errorf("terminal: ticker is required")
	}
	if an == nil {
		return nil, fmt.Errorf("terminal: analyst is required")
	}

	t := &Terminal{
		store:   store,
		ticker:  ticker,
		analyst: an,
		now:     time.Now,
		subs:    newSubscribers(),
	}
	for _, opt := range opts {
		opt(t)
	}

	snap := store.Snapshot()
	if t.selected == "" {
		symbols := snap.Symbols()
		if len(symbols) > 0 {
			t.selected = symbols[0]
		}
	} else if !snap.Has(t.selected) {
		return nil, fmt.Errorf("terminal: initial symbol %s is not tracked", t.selected)
	}
	return t, nil
}

// Advance applies one tick: it computes the next snapshot from the current
// one and publishes it atomically.
func (t *Terminal) Advance() {
	next := t.ticker.Tick(t.store.Snapshot())
	if err := t.store.Replace(next); err != nil {
		// Tick preserves the symbol set; a failure here means a programming
		// error, not a runtime condition.
		logx.Errorf("terminal: publish tick: %v", err)
		return
	}
	t.subs.publish(Event{Kind: EventTick})
}

// Snapshot returns the current published market snapshot.
func (t *Terminal) Snapshot() *market.Snapshot {
	return t.store.Snapshot()
}

// Quote looks up one symbol in the current snapshot.
func (t *Terminal) Quote(symbol string) (market.Quote, bool) {
	return t.store.Get(symbol)
}

// SelectedSymbol returns the currently selected symbol.
func (t *Terminal) SelectedSymbol() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selected
}

// SelectedQuote returns the quote for the selected symbol.
func (t *Terminal) SelectedQuote() (market.Quote, bool) {
	return t.store.Get(t.SelectedSymbol())
}

// SelectSymbol switches the selection to a tracked symbol.
func (t *Terminal) SelectSymbol(symbol string) error {
	sym := market.Canonical(symbol)
	if !t.store.Snapshot().Has(sym) {
		return fmt.Errorf("terminal: unknown symbol %s", sym)
	}

	t.mu.Lock()
	changed := t.selected != sym
	t.selected = sym
	t.mu.Unlock()

	if changed {
		t.subs.publish(Event{Kind: EventSelection, Symbol: sym})
	}
	return nil
}

// News returns a copy of the retained news list, newest first.
func (t *Terminal) News() []analyst.NewsItem {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]analyst.NewsItem, len(t.news))
	copy(out, t.news)
	return out
}

// AppendNews prepends fresh items and trims the list to its bound.
func (t *Terminal) AppendNews(items []analyst.NewsItem) {
	if len(items) == 0 {
		return
	}

	t.mu.Lock()
	merged := make([]analyst.NewsItem, 0, len(items)+len(t.news))
	merged = append(merged, items...)
	merged = append(merged, t.news...)
	if len(merged) > maxNewsItems {
		merged = merged[:maxNewsItems]
	}
	t.news = merged
	t.mu.Unlock()

	t.subs.publish(Event{Kind: EventNews})
}

// Analysis returns the current analysis text.
func (t *Terminal) Analysis() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.analysis
}

// beginAnalysis issues a new analysis request id, invalidating in-flight ones.
func (t *Terminal) beginAnalysis() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.analysisSeq++
	return t.analysisSeq
}

// SetAnalysis applies an analysis result if it is still the latest request.
// It reports whether the result was applied.
func (t *Terminal) SetAnalysis(seq uint64, text string) bool {
	t.mu.Lock()
	if seq != t.analysisSeq {
		t.mu.Unlock()
		logx.Debugf("terminal: discarding stale analysis result (seq %d, latest %d)", seq, t.analysisSeq)
		return false
	}
	t.analysis = text
	t.mu.Unlock()

	t.subs.publish(Event{Kind: EventAnalysis})
	return true
}

// RequestAnalysis asks the analyst about one symbol and applies the result
// unless a newer request has been issued meanwhile.
func (t *Terminal) RequestAnalysis(ctx context.Context, symbol, query string) string {
	quote, ok := t.store.Get(symbol)
	if !ok {
		return ""
	}
	if query == "" {
		query = defaultAnalysisQuery
	}
	seq := t.beginAnalysis()
	text := t.analyst.Analyze(ctx, quote, query)
	t.SetAnalysis(seq, text)
	return text
}

// RefreshNews generates fresh headlines for the given symbols (all tracked
// symbols when none are named) and appends whatever survives validation.
func (t *Terminal) RefreshNews(ctx context.Context, symbols ...string) []analyst.NewsItem {
	snap := t.store.Snapshot()
	var quotes []market.Quote
	if len(symbols) == 0 {
		quotes = snap.Quotes()
	} else {
		for _, sym := range symbols {
			if q, ok := snap.Get(sym); ok {
				quotes = append(quotes, q)
			}
		}
	}

	t.mu.Lock()
	t.newsSeq++
	seq := t.newsSeq
	t.mu.Unlock()

	items := t.analyst.Headlines(ctx, quotes)

	t.mu.Lock()
	stale := seq != t.newsSeq
	t.mu.Unlock()
	if stale {
		logx.Debugf("terminal: discarding stale headline batch (seq %d)", seq)
		return nil
	}
	t.AppendNews(items)
	return items
}

// Status derives the session phase from the wall clock: pre-market before
// 09:30, open until 16:00, closed otherwise and on weekends.
func (t *Terminal) Status() MarketStatus {
	now := t.now()
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return StatusClosed
	}

	minutes := now.Hour()*60 + now.Minute()
	switch {
	case minutes < 9*60+30:
		return StatusPreMarket
	case minutes < 16*60:
		return StatusOpen
	default:
		return StatusClosed
	}
}
