package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/identity"
	"github.com/harbourfit/coachd/internal/coach/metrics"
	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// GoogleCallbackHandler completes a Google sign-in. With an invitation token
// the sign-in doubles as a redemption and may create the account; without
// one only existing accounts may enter.
type GoogleCallbackHandler struct {
	Verifier      identity.Verifier
	Invites       *service.InviteService
	Accounts      *service.AccountService
	Sessions      *service.SessionService
	Metrics       *metrics.Collector
	SecureCookies bool
}

func (h *GoogleCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req coachsdk.GoogleCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Code == "" || req.RedirectURI == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"code and redirect_uri are required")
		return
	}

	profile, err := h.Verifier.Exchange(ctx, req.Code, req.RedirectURI)
	if err != nil {
		log.Warn("identity verification failed", "err", err)
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized",
			"Identity verification failed")
		return
	}

	var (
		user  domain.User
		roles domain.Roles
	)
	if req.InvitationToken != "" {
		user, roles, err = h.Invites.Redeem(ctx, req.InvitationToken, profile)
		switch {
		case err == nil:
			h.Metrics.RecordInviteRedeemed()
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrExpiredToken):
			// One message for both. The caller learns the link is no
			// good, not which way it is no good.
			h.Metrics.RecordRedeemFailure(redeemFailureReason(err))
			httpx.WriteError(w, http.StatusBadRequest, "invalid_token",
				"This invitation link is no longer valid. Ask your coach for a new one.")
			return
		default:
			h.Metrics.RecordRedeemFailure("error")
			log.Error("redemption failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Failed to redeem invitation")
			return
		}
	} else {
		user, roles, err = h.Accounts.Login(ctx, profile)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrUserNotRegistered):
			httpx.WriteError(w, http.StatusUnauthorized, "not_registered",
				"No account found for this email. Please contact your coach for an invitation.")
			return
		default:
			log.Error("sign-in failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error",
				"Failed to sign in")
			return
		}
	}

	token, session, err := h.Sessions.Create(ctx, user.ID)
	if err != nil {
		log.Error("failed to create session", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to create session")
		return
	}
	h.Metrics.RecordSessionCreated()

	setSessionCookie(w, token, session.ExpiresAt.Sub(session.CreatedAt), h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, coachsdk.AuthResponse{
		User:  toUser(user),
		Roles: toRoles(roles),
	})
}

func redeemFailureReason(err error) string {
	if errors.Is(err, service.ErrExpiredToken) {
		return "expired"
	}
	return "invalid"
}
