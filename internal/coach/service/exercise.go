package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidExercise  = errors.New("invalid exercise")
)

// ExerciseService manages the coach-owned exercise library.
type ExerciseService struct {
	Store store.Store
}

// CreateExercise adds an exercise to the coach's library.
func (s *ExerciseService) CreateExercise(
	ctx context.Context,
	coachID, name, description, videoURL string,
) (domain.Exercise, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return domain.Exercise{}, ErrInvalidExercise
	}
	if videoURL != "" && !strings.HasPrefix(videoURL, "http://") && !strings.HasPrefix(videoURL, "https://") {
		return domain.Exercise{}, ErrInvalidExercise
	}

	now := time.Now().UTC()
	exercise := domain.Exercise{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		VideoURL:    videoURL,
		CreatedBy:   coachID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Exercises().CreateExercise(ctx, exercise); err != nil {
		log.Error("failed to create exercise", slog.String("coach_id", coachID), slog.Any("error", err))
		return domain.Exercise{}, err
	}

	return exercise, nil
}

// ListExercises returns the coach's library sorted by name.
func (s *ExerciseService) ListExercises(ctx context.Context, coachID string) ([]domain.Exercise, error) {
	return s.Store.Exercises().ListByCoach(ctx, coachID)
}

// DeleteExercise removes an exercise the coach owns. Another coach's
// exercise reads as not found.
func (s *ExerciseService) DeleteExercise(ctx context.Context, coachID, exerciseID string) error {
	exercise, err := s.Store.Exercises().GetExerciseByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if exercise.CreatedBy != coachID {
		return ErrExerciseNotFound
	}
	return s.Store.Exercises().DeleteExercise(ctx, exerciseID)
}
