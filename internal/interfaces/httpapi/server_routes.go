package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/leagues/{slug}", handler.GetLeagueBySlug)
	mux.HandleFunc("GET /api/leagues/{slug}/standings", handler.ListStandings)
	mux.HandleFunc("GET /api/leagues/{slug}/matches", handler.ListMatchHistory)
	mux.HandleFunc("GET /api/leagues/{slug}/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/leagues/{slug}/matchups", handler.GetMatchups)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedRosterRoutes(mux, handler, verifier)
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /api/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("GET /api/admin/my-leagues", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("GET /api/admin/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.GetAdminLeague)))
	mux.Handle("POST /api/leagues/{leagueID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatch)))
}

func registerAuthorizedRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /api/leagues/{leagueID}/players", RequireAuth(verifier, http.HandlerFunc(handler.AddPlayer)))
	mux.Handle("PUT /api/leagues/{leagueID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.EditPlayer)))
	mux.Handle("DELETE /api/leagues/{leagueID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.DeletePlayer)))
	mux.Handle("PUT /api/leagues/{leagueID}/players/{playerID}/image", RequireAuth(verifier, http.HandlerFunc(handler.SetPlayerImage)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /api/internal/jobs/warm-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmStandingsJob)))
}
