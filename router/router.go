package router

import (
	"go-quiz-api/handler"
	"go-quiz-api/repository"
	"go-quiz-api/service"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// PipelineEntry is one stage of the request pipeline. Matches decides whether
// the stage participates for a given request; Stage wraps whatever comes after
// it. Entries run in slice order, so the order below is the order on the wire.
type PipelineEntry struct {
	Name    string
	Matches func(r *http.Request) bool
	Stage   func(next http.Handler) http.Handler
}

// Pipeline applies its matching entries in order ahead of the final handler.
// Terminal stages (sign-in, logout) simply never call next.
type Pipeline struct {
	Entries []PipelineEntry
	Final   http.Handler
}

func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := p.Final
	for i := len(p.Entries) - 1; i >= 0; i-- {
		entry := p.Entries[i]
		if entry.Matches(r) {
			h = entry.Stage(h)
		}
	}
	h.ServeHTTP(w, r)
}

func all(r *http.Request) bool { return true }

func exact(method, path string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		return r.Method == method && r.URL.Path == path
	}
}

// publicPaths are reachable without any token. Everything else passes through
// the authentication gate, which still lets anonymous requests continue but
// rejects requests carrying a revoked, malformed or expired token.
var publicPaths = map[string]bool{
	"/health":            true,
	"/api/server-time":   true,
	"/api/users/sign-in": true,
	"/api/users/sign-up": true,
	"/api/users/reissue": true,
}

func gated(r *http.Request) bool {
	if publicPaths[r.URL.Path] {
		return false
	}
	return !strings.HasPrefix(r.URL.Path, "/swagger/")
}

type Dependencies struct {
	AuthService       *service.AuthService
	TokenRepo         repository.ITokenRepository
	BlacklistRepo     repository.IBlacklistRepository
	UserRepo          repository.IUserRepository
	UserHandler       *handler.UserHandler
	TokenHandler      *handler.TokenHandler
	ProblemHandler    *handler.ProblemHandler
	SessionHandler    *handler.SessionHandler
	StatisticsHandler *handler.StatisticsHandler
}

func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("GET /api/server-time", handler.ServerTime)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Users
	mux.Handle("POST /api/users/sign-up", handler.ErrorHandlingMiddleware(deps.UserHandler.SignUp))
	mux.Handle("POST /api/users/reissue", handler.ErrorHandlingMiddleware(deps.TokenHandler.Reissue))
	mux.Handle("GET /api/users/me", handler.ErrorHandlingMiddleware(deps.UserHandler.GetMyProfile))
	mux.Handle("GET /api/users/me/sessions", handler.ErrorHandlingMiddleware(deps.SessionHandler.ListMySessions))
	mux.Handle("GET /api/users/{id}", handler.ErrorHandlingMiddleware(deps.UserHandler.GetUser))

	// Problems
	mux.Handle("GET /api/problems", handler.ErrorHandlingMiddleware(deps.ProblemHandler.ListProblems))
	mux.Handle("GET /api/problems/{id}", handler.ErrorHandlingMiddleware(deps.ProblemHandler.GetProblem))
	mux.Handle("POST /api/problems/solve", handler.ErrorHandlingMiddleware(deps.ProblemHandler.SubmitAnswer))

	// Sessions
	mux.Handle("POST /api/sessions", handler.ErrorHandlingMiddleware(deps.SessionHandler.CreateSession))
	mux.Handle("GET /api/sessions/{id}", handler.ErrorHandlingMiddleware(deps.SessionHandler.GetSession))
	mux.Handle("GET /api/sessions/{id}/problems", handler.ErrorHandlingMiddleware(deps.SessionHandler.GetSessionProblems))
	mux.Handle("POST /api/sessions/{id}/submit", handler.ErrorHandlingMiddleware(deps.SessionHandler.SubmitSessionAnswer))
	mux.Handle("POST /api/sessions/{id}/complete", handler.ErrorHandlingMiddleware(deps.SessionHandler.CompleteSession))
	mux.Handle("GET /api/sessions/{id}/results", handler.ErrorHandlingMiddleware(deps.SessionHandler.GetSessionResults))

	// Statistics
	mux.Handle("GET /api/statistics", handler.ErrorHandlingMiddleware(deps.StatisticsHandler.GetOverallStats))
	mux.Handle("GET /api/statistics/categories", handler.ErrorHandlingMiddleware(deps.StatisticsHandler.GetCategoryStats))
	mux.Handle("GET /api/statistics/weak-points", handler.ErrorHandlingMiddleware(deps.StatisticsHandler.GetWeakPoints))
	mux.Handle("GET /api/statistics/wrong-answers", handler.ErrorHandlingMiddleware(deps.StatisticsHandler.GetWrongAnswers))

	// Admin
	mux.Handle("GET /api/admin/users", handler.AdminMiddleware(handler.ErrorHandlingMiddleware(deps.UserHandler.ListUsers)))
	mux.Handle("DELETE /api/admin/users/{id}", handler.AdminMiddleware(handler.ErrorHandlingMiddleware(deps.UserHandler.DeleteUser)))
	mux.Handle("POST /api/admin/problems", handler.AdminMiddleware(handler.ErrorHandlingMiddleware(deps.ProblemHandler.CreateProblem)))
	mux.Handle("PUT /api/admin/problems/{id}", handler.AdminMiddleware(handler.ErrorHandlingMiddleware(deps.ProblemHandler.UpdateProblem)))
	mux.Handle("DELETE /api/admin/problems/{id}", handler.AdminMiddleware(handler.ErrorHandlingMiddleware(deps.ProblemHandler.DeleteProblem)))

	return &Pipeline{
		Entries: []PipelineEntry{
			{
				Name:    "request-id",
				Matches: all,
				Stage:   handler.RequestIDMiddleware,
			},
			{
				Name:    "sign-in",
				Matches: exact(http.MethodPost, "/api/users/sign-in"),
				Stage:   handler.LoginMiddleware(deps.AuthService),
			},
			// Logout runs ahead of the gate: the terminator owns the full
			// error contract for its own path, so a revoked or expired
			// access token still reaches it and answers 400, not 401/403.
			{
				Name:    "logout",
				Matches: exact(http.MethodPost, "/api/users/logout"),
				Stage:   handler.LogoutMiddleware(deps.AuthService, deps.TokenRepo, deps.BlacklistRepo),
			},
			{
				Name:    "auth-gate",
				Matches: gated,
				Stage:   handler.AuthMiddleware(deps.AuthService, deps.BlacklistRepo, deps.UserRepo),
			},
		},
		Final: mux,
	}
}
