package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// AdminCoachesHandler provisions coach accounts.
type AdminCoachesHandler struct {
	Accounts *service.AccountService
}

func (h *AdminCoachesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req coachsdk.CreateCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if !strings.Contains(req.Email, "@") {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"a valid email is required")
		return
	}

	user, coach, err := h.Accounts.CreateCoach(ctx, req.Email, req.FirstName, req.LastName)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrAlreadyCoach):
		httpx.WriteError(w, http.StatusConflict, "already_coach",
			"This user already holds the coach role")
		return
	default:
		log := slogx.FromContext(ctx)
		log.Error("failed to create coach", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to create coach")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, coachsdk.CreateCoachResponse{
		User:    toUser(user),
		CoachID: coach.ID,
	})
}
