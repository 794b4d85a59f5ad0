package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/rest/httpx"

	"openterminal-api/internal/svc"
	"openterminal-api/pkg/market"
)

// AnalysisHandler runs an analyst query against one symbol. The symbol
// defaults to the current selection and the query to a standard intraday
// summary; deep=true requests the long-form breakdown instead.
func AnalysisHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalysisRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		symbol := market.Canonical(req.Symbol)
		if symbol == "" {
			symbol = svcCtx.Terminal.SelectedSymbol()
		}
		quote, ok := svcCtx.Terminal.Quote(symbol)
		if !ok {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusNotFound,
				map[string]string{"error": fmt.Sprintf("unknown symbol %s", symbol)})
			return
		}

		if req.Deep {
			httpx.OkJsonCtx(r.Context(), w, AnalysisResponse{
				Symbol:   symbol,
				Analysis: svcCtx.Analyst.DeepDive(r.Context(), quote),
			})
			return
		}

		query := strings.TrimSpace(req.Query)
		text := svcCtx.Terminal.RequestAnalysis(r.Context(), symbol, query)
		httpx.OkJsonCtx(r.Context(), w, AnalysisResponse{Symbol: symbol, Analysis: text})
	}
}

// CommandHandler interprets a command-bar string.
func CommandHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CommandRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, svcCtx.Terminal.ExecuteCommand(r.Context(), req.Command))
	}
}

// StatusHandler reports the session phase, selection and AI availability.
func StatusHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, StatusResponse{
			Status:    svcCtx.Terminal.Status(),
			Selected:  svcCtx.Terminal.SelectedSymbol(),
			AIEnabled: svcCtx.Analyst.Configured(),
		})
	}
}
