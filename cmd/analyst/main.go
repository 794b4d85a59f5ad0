package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"openterminal-api/pkg/analyst"
	"openterminal-api/pkg/confkit"
	llmpkg "openterminal-api/pkg/llm"
	marketpkg "openterminal-api/pkg/market"
)

// A manual harness for the AI analyst: seeds the simulated market, runs one
// analysis, deep dive or headline batch against live credentials and prints
// the result. Useful for prompt iteration without starting the server.
func main() {
	var (
		llmPath    = flag.String("llm-config", "etc/llm.yaml", "path to llm client configuration")
		marketPath = flag.String("market-config", "etc/market.yaml", "path to market watchlist configuration")
		symbolsRaw = flag.String("symbols", "AAPL", "comma-separated symbols to analyse")
		query      = flag.String("query", "", "free-text analysis query")
		deep       = flag.Bool("deep", false, "run the long-form deep dive instead of a quick take")
		headlines  = flag.Bool("headlines", false, "generate a headline batch for the symbols")
		timeout    = flag.Duration("timeout", 90*time.Second, "overall request timeout")
	)
	flag.Parse()
	logx.MustSetup(logx.LogConf{})
	logx.DisableStat()

	symbols := parseSymbols(*symbolsRaw)
	if len(symbols) == 0 {
		fatalf("no symbols provided; use --symbols to specify at least one")
	}

	confkit.LoadDotenvOnce()

	llmCfg, err := loadLLMConfig(*llmPath)
	if err != nil {
		fatalf("load llm config: %v", err)
	}
	if !llmCfg.Configured() {
		fatalf("no API key configured; set OPENTERMINAL_API_KEY or api_key in %s", *llmPath)
	}

	marketCfg, err := loadMarketConfig(*marketPath)
	if err != nil {
		fatalf("load market config: %v", err)
	}
	store, err := marketpkg.NewStore(marketCfg.Seed())
	if err != nil {
		fatalf("seed market store: %v", err)
	}

	an, err := analyst.New(llmCfg)
	if err != nil {
		fatalf("build analyst: %v", err)
	}
	defer an.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *headlines {
		runHeadlines(ctx, an, store, symbols)
		return
	}

	for _, sym := range symbols {
		quote, ok := store.Get(sym)
		if !ok {
			logx.Errorf("symbol %s is not on the watchlist, skipping", sym)
			continue
		}
		var text string
		if *deep {
			text = an.DeepDive(ctx, quote)
		} else {
			text = an.Analyze(ctx, quote, effectiveQuery(*query))
		}
		fmt.Printf("=== %s (%.2f, %+.2f%%) ===\n%s\n\n", quote.Symbol, quote.Price, quote.ChangePercent, text)
	}
}

func runHeadlines(ctx context.Context, an *analyst.Analyst, store *marketpkg.Store, symbols []string) {
	quotes := make([]marketpkg.Quote, 0, len(symbols))
	for _, sym := range symbols {
		if q, ok := store.Get(sym); ok {
			quotes = append(quotes, q)
		}
	}
	items := an.Headlines(ctx, quotes)
	if len(items) == 0 {
		fmt.Println("No headlines generated.")
		return
	}
	for _, item := range items {
		fmt.Printf("[%s] %-8s %s\n    %s: %s\n", item.Time, item.Impact, item.Headline, item.Source, item.Summary)
	}
}

func loadLLMConfig(path string) (*llmpkg.Config, error) {
	if _, err := os.Stat(path); err != nil {
		// No file on disk: fall back to env-derived defaults.
		return llmpkg.DefaultConfig(), nil
	}
	return llmpkg.LoadConfig(path)
}

func loadMarketConfig(path string) (*marketpkg.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return marketpkg.DefaultConfig(), nil
	}
	return marketpkg.LoadConfig(path)
}

func effectiveQuery(q string) string {
	if strings.TrimSpace(q) == "" {
		return "Provide a brief intraday technical summary."
	}
	return q
}

func parseSymbols(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		field = strings.ToUpper(field)
		if _, exists := seen[field]; exists {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	return out
}

func fatalf(format string, args ...interface{}) {
	logx.Errorf(format, args...)
	os.Exit(1)
}
