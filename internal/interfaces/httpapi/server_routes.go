package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("GET /v1/table", handler.GetTable)
	mux.HandleFunc("GET /v1/groups", handler.GetGroups)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("GET /v1/leaderboard/{round}", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboardRound)))
	mux.Handle("GET /v1/rounds/{round}/predictions", RequireAuth(verifier, http.HandlerFunc(handler.ListRoundPredictions)))
	mux.Handle("PUT /v1/rounds/{round}/predictions", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPredictions)))
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
	mux.Handle("GET /v1/polls/{pollID}", RequireAuth(verifier, http.HandlerFunc(handler.GetPollResults)))
	mux.Handle("POST /v1/polls/{pollID}/votes", RequireAuth(verifier, http.HandlerFunc(handler.SubmitVote)))
	mux.Handle("PUT /v1/account/password", RequireAuth(verifier, http.HandlerFunc(handler.ChangePassword)))
	mux.Handle("PUT /v1/account/username", RequireAuth(verifier, http.HandlerFunc(handler.ChangeUsername)))
	mux.Handle("DELETE /v1/account", RequireAuth(verifier, http.HandlerFunc(handler.DeleteAccount)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncJob)))
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
	mux.Handle("POST /v1/internal/jobs/evaluate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunEvaluateJob)))
}
