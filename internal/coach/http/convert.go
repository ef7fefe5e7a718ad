package http

import (
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/pkg/coachsdk"
)

func toUser(u domain.User) coachsdk.User {
	return coachsdk.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Picture:   u.Picture,
	}
}

func toRoles(r domain.Roles) coachsdk.Roles {
	return coachsdk.Roles{
		IsAdmin:  r.IsAdmin,
		IsCoach:  r.IsCoach,
		IsClient: r.IsClient,
	}
}

func toProgram(p domain.Program) coachsdk.Program {
	return coachsdk.Program{
		ID:          p.ID,
		Name:        p.Name,
		ClientID:    p.ClientID,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status(time.Now().UTC()),
	}
}

func toWorkout(w domain.Workout) coachsdk.Workout {
	return coachsdk.Workout{
		ID:      w.ID,
		Name:    w.Name,
		Order:   w.Order,
		Warmup:  toOptionalBlock(w.Warmup),
		Workout: toBlock(w.Workout),
	}
}

func toOptionalBlock(b *domain.WorkoutBlock) *coachsdk.WorkoutBlock {
	if b == nil {
		return nil
	}
	out := toBlock(*b)
	return &out
}

func toBlock(b domain.WorkoutBlock) coachsdk.WorkoutBlock {
	out := coachsdk.WorkoutBlock{
		Notes:             b.Notes,
		Rounds:            b.Rounds,
		RestBetweenRounds: b.RestBetweenRounds,
		Exercises:         make([]coachsdk.WorkoutEntry, 0, len(b.Exercises)),
	}
	for _, e := range b.Exercises {
		out.Exercises = append(out.Exercises, coachsdk.WorkoutEntry(e))
	}
	return out
}

func fromBlock(b coachsdk.WorkoutBlock) domain.WorkoutBlock {
	out := domain.WorkoutBlock{
		Notes:             b.Notes,
		Rounds:            b.Rounds,
		RestBetweenRounds: b.RestBetweenRounds,
		Exercises:         make([]domain.WorkoutEntry, 0, len(b.Exercises)),
	}
	for _, e := range b.Exercises {
		out.Exercises = append(out.Exercises, domain.WorkoutEntry(e))
	}
	return out
}

func fromOptionalBlock(b *coachsdk.WorkoutBlock) *domain.WorkoutBlock {
	if b == nil {
		return nil
	}
	out := fromBlock(*b)
	return &out
}

func toExercise(e domain.Exercise) coachsdk.Exercise {
	return coachsdk.Exercise{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		VideoURL:    e.VideoURL,
	}
}
