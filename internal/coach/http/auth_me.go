package http

import (
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// MeHandler returns the signed-in user's profile and resolved roles.
type MeHandler struct {
	Accounts *service.AccountService
	Roles    *service.RolesService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromContext(ctx)

	user, err := h.Accounts.GetUser(ctx, userID)
	if err != nil {
		log := slogx.FromContext(ctx)
		log.Error("failed to load user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	roles, err := h.Roles.Resolve(ctx, userID)
	if err != nil {
		log := slogx.FromContext(ctx)
		log.Error("failed to resolve roles", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, coachsdk.MeResponse{
		User:  toUser(user),
		Roles: toRoles(roles),
	})
}
