package terminal

import (
	"context"
	"strings"

	"openterminal-api/pkg/analyst"
	"openterminal-api/pkg/market"
)

// CommandKind labels how a command string was interpreted.
type CommandKind string

const (
	// CommandSelect switched the selection to a tracked symbol.
	CommandSelect CommandKind = "select"
	// CommandNews triggered a headline refresh.
	CommandNews CommandKind = "news"
	// CommandQuery ran a free-text analysis query on the selected symbol.
	CommandQuery CommandKind = "query"
)

// CommandResult reports what a command did.
type CommandResult struct {
	Kind     CommandKind        `json:"kind"`
	Symbol   string             `json:"symbol,omitempty"`
	Analysis string             `json:"analysis,omitempty"`
	News     []analyst.NewsItem `json:"news,omitempty"`
}

const newsKeyword = "NEWS"

// ExecuteCommand interprets a command-bar string. A tracked symbol selects it
// and kicks off a fresh outlook; the NEWS keyword refreshes headlines;
// anything else is treated as a free-text query against the selected symbol.
func (t *Terminal) ExecuteCommand(ctx context.Context, raw string) CommandResult {
	cmd := strings.TrimSpace(raw)
	if cmd == "" {
		return CommandResult{Kind: CommandQuery}
	}

	if sym := market.Canonical(cmd); t.store.Snapshot().Has(sym) {
		// Selecting an already-selected symbol is a no-op.
		if sym != t.SelectedSymbol() {
			_ = t.SelectSymbol(sym)
			analysis := t.RequestAnalysis(ctx, sym, selectionAnalysisQuery)
			return CommandResult{Kind: CommandSelect, Symbol: sym, Analysis: analysis}
		}
		return CommandResult{Kind: CommandSelect, Symbol: sym, Analysis: t.Analysis()}
	}

	if strings.EqualFold(cmd, newsKeyword) {
		return CommandResult{Kind: CommandNews, News: t.RefreshNews(ctx)}
	}

	selected := t.SelectedSymbol()
	return CommandResult{
		Kind:     CommandQuery,
		Symbol:   selected,
		Analysis: t.RequestAnalysis(ctx, selected, cmd),
	}
}
