package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/metrics"
	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// JoinHandler redeems an invitation for the already-authenticated user,
// linking them as a client of the token's coach.
type JoinHandler struct {
	Invites  *service.InviteService
	Accounts *service.AccountService
	Metrics  *metrics.Collector
}

func (h *JoinHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req coachsdk.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.InvitationToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"invitation_token is required")
		return
	}

	roles, err := h.Invites.RedeemForUser(ctx, req.InvitationToken, userID)
	switch {
	case err == nil:
		h.Metrics.RecordInviteRedeemed()
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrExpiredToken):
		h.Metrics.RecordRedeemFailure(redeemFailureReason(err))
		httpx.WriteError(w, http.StatusBadRequest, "invalid_token",
			"This invitation link is no longer valid. Ask your coach for a new one.")
		return
	case errors.Is(err, service.ErrUserNotRegistered):
		h.Metrics.RecordRedeemFailure("error")
		httpx.WriteError(w, http.StatusUnauthorized, "not_registered",
			"No account found for this session. Please sign in again.")
		return
	default:
		h.Metrics.RecordRedeemFailure("error")
		log.Error("join failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to redeem invitation")
		return
	}

	user, err := h.Accounts.GetUser(ctx, userID)
	if err != nil {
		log.Error("failed to load user after join", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, coachsdk.MeResponse{
		User:  toUser(user),
		Roles: toRoles(roles),
	})
}
