package http

import (
	"errors"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// InviteVerifyHandler previews an invitation for the landing page: who is
// inviting, before the invitee authenticates. Public and read-only.
type InviteVerifyHandler struct {
	Invites *service.InviteService
}

func (h *InviteVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.Invites.VerifyToken(ctx, r.PathValue("token"))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrExpiredToken):
		httpx.WriteError(w, http.StatusNotFound, "invalid_token",
			"This invitation link is no longer valid. Ask your coach for a new one.")
		return
	default:
		log := slogx.FromContext(ctx)
		log.Error("failed to verify invitation", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, coachsdk.InvitationDisplay{
		CoachFirstName: profile.FirstName,
		CoachLastName:  profile.LastName,
		CoachPicture:   profile.Picture,
	})
}
