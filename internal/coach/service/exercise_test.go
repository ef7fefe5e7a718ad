package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateExercise(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &ExerciseService{Store: st}

	t.Run("creates with video link", func(t *testing.T) {
		exercise, err := svc.CreateExercise(ctx, coach.ID,
			"Back Squat", "High bar, full depth", "https://videos.example/squat")
		require.NoError(t, err)
		require.NotEmpty(t, exercise.ID)
		require.Equal(t, coach.ID, exercise.CreatedBy)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.CreateExercise(ctx, coach.ID, "", "", "")
		require.ErrorIs(t, err, ErrInvalidExercise)
	})

	t.Run("rejects non-http video links", func(t *testing.T) {
		_, err := svc.CreateExercise(ctx, coach.ID, "Deadlift", "", "ftp://videos.example/dl")
		require.ErrorIs(t, err, ErrInvalidExercise)
	})
}

func TestListExercisesSortedByName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &ExerciseService{Store: st}

	for _, name := range []string{"Pull Up", "Bench Press", "Deadlift"} {
		_, err := svc.CreateExercise(ctx, coach.ID, name, "", "")
		require.NoError(t, err)
	}

	exercises, err := svc.ListExercises(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, exercises, 3)
	require.Equal(t, "Bench Press", exercises[0].Name)
	require.Equal(t, "Deadlift", exercises[1].Name)
	require.Equal(t, "Pull Up", exercises[2].Name)
}

func TestDeleteExerciseScoping(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")
	_, other := seedCoach(t, st, "other@example.com")

	svc := &ExerciseService{Store: st}

	exercise, err := svc.CreateExercise(ctx, coach.ID, "Overhead Press", "", "")
	require.NoError(t, err)

	// Another coach's exercise reads as not found.
	err = svc.DeleteExercise(ctx, other.ID, exercise.ID)
	require.ErrorIs(t, err, ErrExerciseNotFound)

	require.NoError(t, svc.DeleteExercise(ctx, coach.ID, exercise.ID))

	err = svc.DeleteExercise(ctx, coach.ID, exercise.ID)
	require.ErrorIs(t, err, ErrExerciseNotFound)
}
