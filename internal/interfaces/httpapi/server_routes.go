package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/stats/global", handler.GetGlobalRecord)
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/players/{playerID}/stats", handler.GetPlayerTotals)
	mux.HandleFunc("GET /api/players/{playerID}/matches", handler.ListPlayerMatches)
	mux.HandleFunc("GET /api/matches", handler.ListMatches)
	mux.HandleFunc("GET /api/matches/{matchID}/stats", handler.ListMatchStats)
	mux.HandleFunc("GET /api/topscorers", handler.ListTopScorers)
	mux.HandleFunc("GET /api/opponents/records", handler.ListOpponentRecords)
	mux.HandleFunc("GET /api/coaches/effectiveness", handler.ListCoachEffectiveness)
	mux.HandleFunc("GET /api/tournaments", handler.ListTournaments)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /api/login", handler.Login)
	mux.Handle("POST /api/logout", RequireAuth(verifier, http.HandlerFunc(handler.Logout)))
	mux.Handle("POST /api/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /api/users", RequireAuth(verifier, http.HandlerFunc(handler.CreateUser)))
}
