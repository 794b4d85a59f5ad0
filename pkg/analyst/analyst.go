// Package analyst is the boundary to the generative-text collaborator. Every
// failure is absorbed here: analysis calls degrade to fixed fallback strings
// and headline calls degrade to an empty list, so nothing upstream of this
// package ever sees a collaborator error.
package analyst

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"openterminal-api/pkg/journal"
	"openterminal-api/pkg/llm"
	"openterminal-api/pkg/market"
)

// Fallback messages shown when the collaborator is unreachable or the
// credential is absent.
const (
	FallbackNotConfigured = "API key missing. Please check your configuration."
	FallbackUnavailable   = "Unable to generate analysis at this time."
	FallbackDeepDive      = "Deep analysis unavailable."
)

const (
	headlineCount   = 3
	systemInstr     = "You are a Bloomberg Terminal AI assistant. Be terse, data-driven, and professional."
	analysisTemp    = 0.4
	headlineTemp    = 0.8
	newsTimeLayout  = "15:04"
	maxQuoteSymbols = 8
)

// Analyst generates market commentary and headlines for quotes. A nil client
// (no credential configured) keeps the analyst in degraded mode: every call
// returns its documented fallback without a network attempt.
type Analyst struct {
	client  llm.LLMClient
	now     func() time.Time
	journal *journal.Writer
}

// Option customises the analyst.
type Option func(*Analyst)

// WithClient injects an LLM client, primarily for testing.
func WithClient(client llm.LLMClient) Option {
	return func(a *Analyst) {
		a.client = client
	}
}

// WithClock injects a clock used for headline timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyst) {
		if now != nil {
			a.now = now
		}
	}
}

// WithJournal records every collaborator exchange to the given writer.
func WithJournal(w *journal.Writer) Option {
	return func(a *Analyst) {
		a.journal = w
	}
}

// New constructs an analyst from the LLM configuration. When the config has
// no credential the analyst runs in degraded mode.
func New(cfg *llm.Config, opts ...Option) (*Analyst, error) {
	a := &Analyst{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	if a.client != nil {
		return a, nil
	}
	if !cfg.Configured() {
		logx.Info("analyst: no credential configured, running in degraded mode")
		return a, nil
	}
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("analyst: build llm client: %w", err)
	}
	a.client = client
	return a, nil
}

// Configured reports whether the analyst can reach the collaborator.
func (a *Analyst) Configured() bool {
	return a.client != nil
}

// Close releases the underlying client, if any.
func (a *Analyst) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

// Analyze returns prose commentary for one quote and a free-text query. The
// result is opaque text; on any failure the documented fallback is returned.
func (a *Analyst) Analyze(ctx context.Context, quote market.Quote, query string) string {
	if a.client == nil {
		return FallbackNotConfigured
	}

	resp, err := a.client.Chat(ctx, &llm.ChatRequest{
		Temperature: ptr(analysisTemp),
		Messages: []llm.Message{
			{Role: "system", Content: systemInstr},
			{Role: "user", Content: analysisPrompt(quote, query)},
		},
	})
	if err != nil {
		logx.WithContext(ctx).Errorf("analyst: analysis for %s failed: %v", quote.Symbol, err)
		a.record(journal.ExchangeRecord{Kind: journal.KindAnalysis, Symbol: quote.Symbol, Query: query, ErrorMessage: err.Error()})
		return FallbackUnavailable
	}
	text := resp.Text()
	if text == "" {
		return FallbackUnavailable
	}
	a.record(journal.ExchangeRecord{Kind: journal.KindAnalysis, Symbol: quote.Symbol, Query: query, Response: text, Success: true})
	return text
}

// DeepDive runs a longer fundamental and technical dive on one quote,
// predicting support and resistance levels.
func (a *Analyst) DeepDive(ctx context.Context, quote market.Quote) string {
	if a.client == nil {
		return FallbackNotConfigured
	}

	resp, err := a.client.Chat(ctx, &llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: systemInstr},
			{Role: "user", Content: deepDivePrompt(quote)},
		},
	})
	if err != nil {
		logx.WithContext(ctx).Errorf("analyst: deep dive for %s failed: %v", quote.Symbol, err)
		a.record(journal.ExchangeRecord{Kind: journal.KindDeepDive, Symbol: quote.Symbol, ErrorMessage: err.Error()})
		return FallbackDeepDive
	}
	text := resp.Text()
	if text == "" {
		return FallbackDeepDive
	}
	a.record(journal.ExchangeRecord{Kind: journal.KindDeepDive, Symbol: quote.Symbol, Response: text, Success: true})
	return text
}

// headlineItem is the strict shape the collaborator must return for each
// generated headline. Anything that does not decode into this shape, or
// carries an unknown impact label, causes the whole batch to be discarded.
type headlineItem struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	Impact   string `json:"impact" enum:"POSITIVE|NEGATIVE|NEUTRAL"`
}

// Headlines generates breaking headlines for the given quotes. It returns an
// empty slice on any failure or shape mismatch; callers must tolerate zero
// results.
func (a *Analyst) Headlines(ctx context.Context, quotes []market.Quote) []NewsItem {
	if a.client == nil || len(quotes) == 0 {
		return nil
	}

	var items []headlineItem
	err := a.client.ChatStructured(ctx, &llm.ChatRequest{
		Temperature: ptr(headlineTemp),
		Messages: []llm.Message{
			{Role: "system", Content: systemInstr},
			{Role: "user", Content: headlinesPrompt(quotes)},
		},
	}, &items)
	if err != nil {
		logx.WithContext(ctx).Errorf("analyst: headline generation failed: %v", err)
		return nil
	}

	now := a.now().Format(newsTimeLayout)
	news := make([]NewsItem, 0, len(items))
	for _, item := range items {
		impact := Impact(strings.ToUpper(strings.TrimSpace(item.Impact)))
		if strings.TrimSpace(item.Headline) == "" || !ValidImpact(impact) {
			logx.WithContext(ctx).Errorf("analyst: discarding malformed headline batch (headline=%q impact=%q)", item.Headline, item.Impact)
			return nil
		}
		news = append(news, NewsItem{
			ID:       uuid.NewString(),
			Headline: strings.TrimSpace(item.Headline),
			Source:   strings.TrimSpace(item.Source),
			Time:     now,
			Summary:  strings.TrimSpace(item.Summary),
			Impact:   impact,
		})
	}

	symbols := make([]string, 0, len(quotes))
	for _, q := range quotes {
		symbols = append(symbols, q.Symbol)
	}
	a.record(journal.ExchangeRecord{Kind: journal.KindHeadlines, Symbols: symbols, Success: true})
	return news
}

// record journals one collaborator exchange when a writer is attached.
func (a *Analyst) record(rec journal.ExchangeRecord) {
	if a.journal == nil {
		return
	}
	if _, err := a.journal.WriteExchange(&rec); err != nil {
		logx.Errorf("analyst: journal write failed: %v", err)
	}
}

func analysisPrompt(quote market.Quote, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a senior financial analyst at a top-tier investment bank.\n")
	fmt.Fprintf(&b, "Analyze the following market data for %s (%s).\n\n", quote.Name, quote.Symbol)
	fmt.Fprintf(&b, "Current Price: %.2f\n", quote.Price)
	fmt.Fprintf(&b, "Daily Change: %.2f%%\n", quote.ChangePercent)
	fmt.Fprintf(&b, "Volume: %d\n", quote.Volume)
	fmt.Fprintf(&b, "Sector: %s\n\n", quote.Sector)
	fmt.Fprintf(&b, "User Query: %s\n\n", query)
	b.WriteString("Provide a concise, professional, and actionable response using financial terminology. ")
	b.WriteString("Focus on technical indicators implied by the trend and fundamental context for this sector. ")
	b.WriteString("Treat the data as real-time market context.")
	return b.String()
}

func deepDivePrompt(quote market.Quote) string {
	return fmt.Sprintf(
		"Conduct a deep fundamental and technical dive into %s (%s) based on the current price of %.2f. "+
			"Assume a volatile market environment. Predict the next support and resistance levels.",
		quote.Name, quote.Symbol, quote.Price,
	)
}

func headlinesPrompt(quotes []market.Quote) string {
	symbols := make([]string, 0, len(quotes))
	for _, q := range quotes {
		symbols = append(symbols, q.Symbol)
		if len(symbols) == maxQuoteSymbols {
			break
		}
	}
	return fmt.Sprintf(
		"Generate %d breaking financial news headlines for the following tickers: %s. "+
			"Make them sound like real Bloomberg/Reuters headlines. "+
			"Include a sentiment impact (POSITIVE, NEGATIVE, NEUTRAL). "+
			"Return strictly JSON.",
		headlineCount, strings.Join(symbols, ", "),
	)
}

func ptr[T any](v T) *T { return &v }
