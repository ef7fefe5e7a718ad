package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// ProgramsHandler serves the coach's training programs and their workouts.
// Every route runs behind RequireCoach, so the coach record is always on the
// context.
type ProgramsHandler struct {
	Programs *service.ProgramService
}

func (h *ProgramsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	var req coachsdk.CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	program, err := h.Programs.CreateProgram(ctx, coach.ID, service.CreateProgramInput{
		Name:        req.Name,
		ClientID:    req.ClientID,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidProgram):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"name, client_id and start_date are required")
		return
	case errors.Is(err, service.ErrClientNotLinked):
		httpx.WriteError(w, http.StatusBadRequest, "client_not_linked",
			"Programs can only be assigned to your own clients")
		return
	default:
		log := slogx.FromContext(ctx)
		log.Error("failed to create program", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to create program")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toProgram(program))
}

func (h *ProgramsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	programs, err := h.Programs.ListPrograms(ctx, coach.ID)
	if err != nil {
		log := slogx.FromContext(ctx)
		log.Error("failed to list programs", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	out := make([]coachsdk.Program, 0, len(programs))
	for _, p := range programs {
		out = append(out, toProgram(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ProgramsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	program, err := h.Programs.GetProgram(ctx, coach.ID, r.PathValue("id"))
	if err != nil {
		h.writeProgramError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProgram(program))
}

func (h *ProgramsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	if err := h.Programs.DeleteProgram(ctx, coach.ID, r.PathValue("id")); err != nil {
		h.writeProgramError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProgramsHandler) HandleAddWorkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	var req coachsdk.AddWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	workout, err := h.Programs.AddWorkout(ctx, coach.ID, domain.Workout{
		ProgramID: r.PathValue("id"),
		Name:      req.Name,
		Order:     req.Order,
		Warmup:    fromOptionalBlock(req.Warmup),
		Workout:   fromBlock(req.Workout),
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidProgram):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"name and at least one round are required")
		return
	default:
		h.writeProgramError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toWorkout(workout))
}

func (h *ProgramsHandler) HandleListWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	workouts, err := h.Programs.ListWorkouts(ctx, coach.ID, r.PathValue("id"))
	if err != nil {
		h.writeProgramError(w, r, err)
		return
	}

	out := make([]coachsdk.Workout, 0, len(workouts))
	for _, workout := range workouts {
		out = append(out, toWorkout(workout))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ProgramsHandler) writeProgramError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrProgramNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Program not found")
		return
	}
	log := slogx.FromContext(r.Context())
	log.Error("program operation failed", "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
}
