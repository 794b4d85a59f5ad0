package handler

import (
	"fmt"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"openterminal-api/internal/svc"
	"openterminal-api/pkg/market"
)

// WatchlistHandler returns every tracked quote in watchlist form, tagged with
// the current selection.
func WatchlistHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := svcCtx.Terminal.Snapshot()
		quotes := snap.Quotes()

		resp := WatchlistResponse{
			Selected: svcCtx.Terminal.SelectedSymbol(),
			Tickers:  make([]TickerView, 0, len(quotes)),
		}
		for _, q := range quotes {
			resp.Tickers = append(resp.Tickers, tickerView(q))
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

// QuoteHandler returns the full quote, history included, for one symbol.
func QuoteHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuoteRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		quote, ok := svcCtx.Terminal.Quote(req.Symbol)
		if !ok {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusNotFound,
				map[string]string{"error": fmt.Sprintf("unknown symbol %s", market.Canonical(req.Symbol))})
			return
		}

		httpx.OkJsonCtx(r.Context(), w, QuoteResponse{
			Quote:    quote,
			Selected: quote.Symbol == svcCtx.Terminal.SelectedSymbol(),
		})
	}
}

// SelectHandler switches the selected symbol.
func SelectHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		if err := svcCtx.Terminal.SelectSymbol(req.Symbol); err != nil {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusNotFound,
				map[string]string{"error": err.Error()})
			return
		}
		httpx.OkJsonCtx(r.Context(), w, SelectResponse{Selected: svcCtx.Terminal.SelectedSymbol()})
	}
}
