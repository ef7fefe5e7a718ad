package http

import (
	"errors"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// ClientsHandler serves the coach's roster views.
type ClientsHandler struct {
	Clients *service.ClientsService
}

// HandleList returns every client linked to the authenticated coach.
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coach, ok := CoachFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "Coach role required")
		return
	}

	clients, err := h.Clients.ListClients(ctx, coach.ID)
	if err != nil {
		log := slogx.FromContext(ctx)
		log.Error("failed to list clients", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	out := make([]coachsdk.ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, coachsdk.ClientSummary{
			ClientID:  c.ClientID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Picture:   c.Picture,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDetail returns one linked client with their latest program and its
// workouts. Unlinked clients read as not found.
func (h *ClientsHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	coach, ok := CoachFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "Coach role required")
		return
	}

	detail, err := h.Clients.GetClientDetail(ctx, coach.ID, r.PathValue("id"))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrClientNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Client not found")
		return
	default:
		log := slogx.FromContext(ctx)
		log.Error("failed to load client detail", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	out := coachsdk.ClientDetail{
		ClientID:  detail.ClientID,
		FirstName: detail.FirstName,
		LastName:  detail.LastName,
		Email:     detail.Email,
		Picture:   detail.Picture,
	}
	if detail.Program != nil {
		program := toProgram(*detail.Program)
		out.Program = &program
		out.Workouts = make([]coachsdk.Workout, 0, len(detail.Workouts))
		for _, workout := range detail.Workouts {
			out.Workouts = append(out.Workouts, toWorkout(workout))
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
