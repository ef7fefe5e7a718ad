package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harbourfit/coachd/internal/coach/service"
	"github.com/harbourfit/coachd/pkg/coachsdk"
	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

// ExercisesHandler serves the coach's exercise library.
type ExercisesHandler struct {
	Exercises *service.ExerciseService
}

func (h *ExercisesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	var req coachsdk.CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	exercise, err := h.Exercises.CreateExercise(ctx, coach.ID, req.Name, req.Description, req.VideoURL)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidExercise):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"name is required and video_url must be an http(s) link")
		return
	default:
		log := slogx.FromContext(ctx)
		log.Error("failed to create exercise", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"Failed to create exercise")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toExercise(exercise))
}

func (h *ExercisesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	exercises, err := h.Exercises.ListExercises(ctx, coach.ID)
	if err != nil {
		log := slogx.FromContext(ctx)
		log.Error("failed to list exercises", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	out := make([]coachsdk.Exercise, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, toExercise(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ExercisesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	coach, _ := CoachFromContext(ctx)

	err := h.Exercises.DeleteExercise(ctx, coach.ID, r.PathValue("id"))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrExerciseNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Exercise not found")
		return
	default:
		log := slogx.FromContext(ctx)
		log.Error("failed to delete exercise", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
