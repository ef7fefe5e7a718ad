package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

type coachCtxKey struct{}

// CoachFromContext returns the coach record attached by RequireCoach.
func CoachFromContext(ctx context.Context) (domain.Coach, bool) {
	c, ok := ctx.Value(coachCtxKey{}).(domain.Coach)
	return c, ok
}

// SessionAuth resolves the session cookie to a user id and attaches it to
// the request context. Requests without a valid session get 401; telling an
// invalid session apart from a missing one would only help an attacker.
func SessionAuth(sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				httpx.WriteError(w, http.StatusUnauthorized,
					"unauthorized", "Authentication required")
				return
			}

			userID, err := sessions.Lookup(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrSessionNotFound) {
					log := slogx.FromContext(r.Context())
					log.Error("session lookup failed", "err", err)
				}
				httpx.WriteError(w, http.StatusUnauthorized,
					"unauthorized", "Authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.ContextWithUserID(r.Context(), userID)))
		})
	}
}

// RequireCoach gates a route to users holding the coach role and attaches
// the coach record to the context. Must run after SessionAuth.
func RequireCoach(roles *service.RolesService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := httpx.UserIDFromContext(r.Context())

			coach, err := roles.Coach(r.Context(), userID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					httpx.WriteError(w, http.StatusForbidden,
						"forbidden", "Coach role required")
					return
				}
				log := slogx.FromContext(r.Context())
				log.Error("coach lookup failed", "err", err)
				httpx.WriteError(w, http.StatusInternalServerError,
					"server_error", "Internal error")
				return
			}

			ctx := context.WithValue(r.Context(), coachCtxKey{}, coach)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route to users carrying the admin flag. Must run
// after SessionAuth.
func RequireAdmin(accounts *service.AccountService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := httpx.UserIDFromContext(r.Context())

			user, err := accounts.GetUser(r.Context(), userID)
			if err != nil {
				log := slogx.FromContext(r.Context())
				log.Error("admin check failed", "err", err)
				httpx.WriteError(w, http.StatusInternalServerError,
					"server_error", "Internal error")
				return
			}
			if !user.IsAdmin {
				httpx.WriteError(w, http.StatusForbidden,
					"forbidden", "Admin role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
