package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /api/health", handler.Health)
	if metrics == nil {
		return
	}

	mux.Handle("GET /metrics", metrics)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/league/connect", handler.ConnectLeague)
	mux.HandleFunc("GET /api/players/{seasonId}", handler.ListPlayers)
	mux.HandleFunc("GET /api/teams/{seasonId}", handler.ListTeams)
	mux.HandleFunc("GET /api/draft/{seasonId}", handler.GetDraft)
}
