package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"openterminal-api/internal/svc"
	"openterminal-api/pkg/analyst"
)

// NewsHandler returns the retained news feed, newest first.
func NewsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svcCtx.Terminal.News()
		if items == nil {
			items = []analyst.NewsItem{}
		}
		httpx.OkJsonCtx(r.Context(), w, NewsResponse{Items: items})
	}
}

// NewsRefreshHandler generates a fresh batch of headlines and returns the
// updated feed. An empty symbol list covers the whole watchlist.
func NewsRefreshHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NewsRefreshRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		svcCtx.Terminal.RefreshNews(r.Context(), req.Symbols...)

		items := svcCtx.Terminal.News()
		if items == nil {
			items = []analyst.NewsItem{}
		}
		httpx.OkJsonCtx(r.Context(), w, NewsResponse{Items: items})
	}
}
