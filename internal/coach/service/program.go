package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrInvalidProgram  = errors.New("invalid program")
	ErrClientNotLinked = errors.New("client is not linked to this coach")
)

// ProgramService manages training programs and their workouts, always scoped
// to the owning coach.
type ProgramService struct {
	Store store.Store
}

// CreateProgramInput carries the coach-supplied fields for a new program.
type CreateProgramInput struct {
	Name        string
	ClientID    string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
}

// CreateProgram assigns a new program from a coach to one of their linked
// clients.
func (s *ProgramService) CreateProgram(ctx context.Context, coachID string, in CreateProgramInput) (domain.Program, error) {
	log := slogx.FromContext(ctx)

	if in.Name == "" || in.ClientID == "" || in.StartDate.IsZero() {
		return domain.Program{}, ErrInvalidProgram
	}

	// Programs can only target clients on this coach's roster.
	links, err := s.Store.Clients().ListCoachLinks(ctx, in.ClientID)
	if err != nil {
		log.Error("failed to check client link", slog.String("client_id", in.ClientID), slog.Any("error", err))
		return domain.Program{}, err
	}
	linked := false
	for _, l := range links {
		if l.CoachID == coachID {
			linked = true
			break
		}
	}
	if !linked {
		return domain.Program{}, ErrClientNotLinked
	}

	now := time.Now().UTC()
	program := domain.Program{
		ID:          idx.New().String(),
		Name:        in.Name,
		ClientID:    in.ClientID,
		CoachID:     coachID,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Programs().CreateProgram(ctx, program); err != nil {
		log.Error("failed to create program", slog.Any("error", err))
		return domain.Program{}, err
	}

	log.Info("program created",
		slog.String("program_id", program.ID),
		slog.String("coach_id", coachID),
		slog.String("client_id", in.ClientID),
	)
	return program, nil
}

// ListPrograms returns the coach's programs, newest first.
func (s *ProgramService) ListPrograms(ctx context.Context, coachID string) ([]domain.Program, error) {
	return s.Store.Programs().ListByCoach(ctx, coachID)
}

// GetProgram fetches one of the coach's programs. Another coach's program
// reads as not found.
func (s *ProgramService) GetProgram(ctx context.Context, coachID, programID string) (domain.Program, error) {
	program, err := s.Store.Programs().GetProgramByID(ctx, programID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Program{}, ErrProgramNotFound
		}
		return domain.Program{}, err
	}
	if program.CoachID != coachID {
		return domain.Program{}, ErrProgramNotFound
	}
	return program, nil
}

// DeleteProgram removes one of the coach's programs; its workouts cascade.
func (s *ProgramService) DeleteProgram(ctx context.Context, coachID, programID string) error {
	if _, err := s.GetProgram(ctx, coachID, programID); err != nil {
		return err
	}
	return s.Store.Programs().DeleteProgram(ctx, programID)
}

// AddWorkout appends a workout to one of the coach's programs.
func (s *ProgramService) AddWorkout(ctx context.Context, coachID string, w domain.Workout) (domain.Workout, error) {
	log := slogx.FromContext(ctx)

	if w.Name == "" || w.ProgramID == "" || w.Workout.Rounds < 1 {
		return domain.Workout{}, ErrInvalidProgram
	}
	if _, err := s.GetProgram(ctx, coachID, w.ProgramID); err != nil {
		return domain.Workout{}, err
	}

	now := time.Now().UTC()
	w.ID = idx.New().String()
	w.CreatedAt = now
	w.UpdatedAt = now

	if err := s.Store.Workouts().CreateWorkout(ctx, w); err != nil {
		log.Error("failed to create workout", slog.String("program_id", w.ProgramID), slog.Any("error", err))
		return domain.Workout{}, err
	}

	return w, nil
}

// ListWorkouts returns a program's workouts in order, scoped to the coach.
func (s *ProgramService) ListWorkouts(ctx context.Context, coachID, programID string) ([]domain.Workout, error) {
	if _, err := s.GetProgram(ctx, coachID, programID); err != nil {
		return nil, err
	}
	return s.Store.Workouts().ListByProgram(ctx, programID)
}
