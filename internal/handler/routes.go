package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"openterminal-api/internal/svc"
)

// RegisterHandlers mounts the terminal API routes.
func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes([]rest.Route{
		{
			Method:  http.MethodGet,
			Path:    "/api/market/watchlist",
			Handler: WatchlistHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/market/quotes/:symbol",
			Handler: QuoteHandler(svcCtx),
		},
		{
			Method:  http.MethodPost,
			Path:    "/api/market/select",
			Handler: SelectHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/news",
			Handler: NewsHandler(svcCtx),
		},
		{
			Method:  http.MethodPost,
			Path:    "/api/news/refresh",
			Handler: NewsRefreshHandler(svcCtx),
		},
		{
			Method:  http.MethodPost,
			Path:    "/api/analysis",
			Handler: AnalysisHandler(svcCtx),
		},
		{
			Method:  http.MethodPost,
			Path:    "/api/command",
			Handler: CommandHandler(svcCtx),
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/status",
			Handler: StatusHandler(svcCtx),
		},
	})
}
