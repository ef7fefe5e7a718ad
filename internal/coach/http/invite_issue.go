package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/metrics"
	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// InviteIssueHandler hands the authenticated coach their shareable
// invitation link, minting a new token only when no sufficiently fresh one
// exists.
type InviteIssueHandler struct {
	Invites *service.InviteService
	Metrics *metrics.Collector
}

func (h *InviteIssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coach, ok := CoachFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "Coach role required")
		return
	}

	// The body is optional; an empty one means the default lifetime.
	var req coachsdk.IssueInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	inv, err := h.Invites.Issue(ctx, coach.ID, req.ExpiresInDays)
	if err != nil {
		log := slogx.FromContext(ctx)
		log.Error("failed to issue invitation", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to issue invitation")
		return
	}
	h.Metrics.RecordInviteIssued()

	httpx.WriteJSON(w, http.StatusOK, coachsdk.IssueInvitationResponse{
		Token:     inv.Token,
		ExpiresAt: inv.ExpiresAt,
	})
}
