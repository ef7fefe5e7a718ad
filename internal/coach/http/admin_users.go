package http

import (
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// AdminUsersHandler lists every account for the admin dashboard.
type AdminUsersHandler struct {
	Accounts *service.AccountService
}

func (h *AdminUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.Accounts.ListUsers(ctx)
	if err != nil {
		log := slogx.FromContext(ctx)
		log.Error("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	out := make([]coachsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
