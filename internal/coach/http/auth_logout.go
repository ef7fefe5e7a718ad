package http

import (
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// LogoutHandler destroys the server-side session and clears the cookie.
type LogoutHandler struct {
	Sessions      *service.SessionService
	SecureCookies bool
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.Sessions.Destroy(ctx, cookie.Value); err != nil {
			log := slogx.FromContext(ctx)
			log.Error("failed to destroy session", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
			return
		}
	}

	clearSessionCookie(w, h.SecureCookies)
	w.WriteHeader(http.StatusNoContent)
}
