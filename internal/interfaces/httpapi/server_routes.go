package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings/difficulty", handler.GetScheduleDifficulty)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings/comparator", handler.GetSpecialComparator)
	mux.HandleFunc("POST /v1/competitions/{competitionID}/standings/simulate", handler.SimulateStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches/modifiable", handler.ListModifiableMatches)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
}
