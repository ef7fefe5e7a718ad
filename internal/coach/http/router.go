package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/harbourfit/coachd/internal/coach/identity"
	"github.com/harbourfit/coachd/internal/coach/metrics"
	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	secureCookies bool
	startTime     time.Time
	logger        *slog.Logger

	store    store.Store
	verifier identity.Verifier
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer

	InviteService   *service.InviteService
	AccountService  *service.AccountService
	SessionService  *service.SessionService
	RolesService    *service.RolesService
	ClientsService  *service.ClientsService
	ProgramService  *service.ProgramService
	ExerciseService *service.ExerciseService
}

func NewRouter(
	verifier identity.Verifier,
	st store.Store,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
	buildVersion string,
	secureCookies bool,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		secureCookies: secureCookies,
		startTime:     time.Now(),
		logger:        logger,
		store:         st,
		verifier:      verifier,
		metrics:       collector,
		gatherer:      gatherer,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metrics.HTTPMiddleware(collector, r.Mux),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvitations()
	r.registerCoach()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/google-callback - strict rate limit by IP (sign-in and
	// redemption both live here)
	callbackHandler := &GoogleCallbackHandler{
		Verifier:      r.verifier,
		Invites:       r.InviteService,
		Accounts:      r.AccountService,
		Sessions:      r.SessionService,
		Metrics:       r.metrics,
		SecureCookies: r.secureCookies,
	}
	r.Mux.Handle("POST /v1/auth/google-callback",
		httpx.Chain(callbackHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/join - session required, moderate limit by user
	joinHandler := &JoinHandler{
		Invites:  r.InviteService,
		Accounts: r.AccountService,
		Metrics:  r.metrics,
	}
	r.Mux.Handle("POST /v1/auth/join",
		httpx.Chain(joinHandler,
			SessionAuth(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /auth/me - session required, lenient limit (frontends poll this)
	meHandler := &MeHandler{Accounts: r.AccountService, Roles: r.RolesService}
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(meHandler,
			SessionAuth(r.SessionService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /auth/logout - no session requirement; logging out an expired
	// session should still clear the cookie
	logoutHandler := &LogoutHandler{Sessions: r.SessionService, SecureCookies: r.secureCookies}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	// GET /invitations/{token} - public preview, strict limit by IP to
	// slow token scanning
	verifyHandler := &InviteVerifyHandler{Invites: r.InviteService}
	r.Mux.Handle("GET /v1/invitations/{token}",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /coach/invitations - coach only, moderate limit by user
	issueHandler := &InviteIssueHandler{Invites: r.InviteService, Metrics: r.metrics}
	r.Mux.Handle("POST /v1/coach/invitations",
		httpx.Chain(issueHandler,
			SessionAuth(r.SessionService),
			RequireCoach(r.RolesService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCoach() {
	coachChain := func(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			SessionAuth(r.SessionService),
			RequireCoach(r.RolesService),
			httpx.RateLimitByUser(limit),
		)
	}

	clientsHandler := &ClientsHandler{Clients: r.ClientsService}
	r.Mux.Handle("GET /v1/coach/clients",
		coachChain(http.HandlerFunc(clientsHandler.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/coach/clients/{id}",
		coachChain(http.HandlerFunc(clientsHandler.HandleDetail), httpx.LenientLimit))

	programsHandler := &ProgramsHandler{Programs: r.ProgramService}
	r.Mux.Handle("POST /v1/coach/programs",
		coachChain(http.HandlerFunc(programsHandler.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/coach/programs",
		coachChain(http.HandlerFunc(programsHandler.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/coach/programs/{id}",
		coachChain(http.HandlerFunc(programsHandler.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/coach/programs/{id}",
		coachChain(http.HandlerFunc(programsHandler.HandleDelete), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/coach/programs/{id}/workouts",
		coachChain(http.HandlerFunc(programsHandler.HandleAddWorkout), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/coach/programs/{id}/workouts",
		coachChain(http.HandlerFunc(programsHandler.HandleListWorkouts), httpx.LenientLimit))

	exercisesHandler := &ExercisesHandler{Exercises: r.ExerciseService}
	r.Mux.Handle("POST /v1/coach/exercises",
		coachChain(http.HandlerFunc(exercisesHandler.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/coach/exercises",
		coachChain(http.HandlerFunc(exercisesHandler.HandleList), httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/coach/exercises/{id}",
		coachChain(http.HandlerFunc(exercisesHandler.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerAdmin() {
	adminChain := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			SessionAuth(r.SessionService),
			RequireAdmin(r.AccountService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /v1/admin/coaches",
		adminChain(&AdminCoachesHandler{Accounts: r.AccountService}))
	r.Mux.Handle("GET /v1/admin/users",
		adminChain(&AdminUsersHandler{Accounts: r.AccountService}))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", metrics.Handler(r.gatherer))
}
