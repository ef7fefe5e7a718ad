package domain

import "time"

// Workout is one ordered training session within a program. The warmup and
// workout blocks are stored as structured JSON; their exact shape mostly
// matters to the frontend.
type Workout struct {
	ID        string
	ProgramID string
	Name      string
	Order     int
	Warmup    *WorkoutBlock
	Workout   WorkoutBlock
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkoutBlock groups exercises with block-level pacing.
type WorkoutBlock struct {
	Notes             string         `json:"notes,omitempty"`
	Rounds            int            `json:"rounds,omitempty"`
	RestBetweenRounds int            `json:"rest_between_rounds,omitempty"`
	Exercises         []WorkoutEntry `json:"exercises"`
}

// WorkoutEntry is a single prescribed exercise within a block.
type WorkoutEntry struct {
	ExerciseID      string `json:"exercise_id"`
	Sets            int    `json:"sets,omitempty"`
	Reps            int    `json:"reps,omitempty"`
	Weight          int    `json:"weight,omitempty"`
	Duration        int    `json:"duration,omitempty"`
	RestBetweenSets int    `json:"rest_between_sets,omitempty"`
	RestAfter       int    `json:"rest_after,omitempty"`
	Notes           string `json:"notes,omitempty"`
}
