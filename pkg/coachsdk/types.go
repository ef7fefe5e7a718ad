package coachsdk

import "time"

// ErrorResponse is the uniform error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "invalid_token").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description,omitempty"`
}

// Roles is the resolved role set carried on authenticated responses. The
// flags are independent; a coach may also be someone else's client.
type Roles struct {
	IsAdmin  bool `json:"is_admin"`
	IsCoach  bool `json:"is_coach"`
	IsClient bool `json:"is_client"`
}

// User is the public view of an account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   string `json:"picture,omitempty"`
}

// GoogleCallbackRequest carries the authorization code obtained from the
// Google sign-in redirect, plus the invitation token when the sign-in is a
// redemption rather than a plain login.
type GoogleCallbackRequest struct {
	Code            string `json:"code"`
	RedirectURI     string `json:"redirect_uri"`
	InvitationToken string `json:"invitation_token,omitempty"`
}

// AuthResponse is returned after a successful sign-in or redemption. The
// session itself travels in an HTTP-only cookie, not in the body.
type AuthResponse struct {
	User  User  `json:"user"`
	Roles Roles `json:"roles"`
}

// JoinRequest links the already-authenticated user to a coach.
type JoinRequest struct {
	InvitationToken string `json:"invitation_token"`
}

// MeResponse is the authenticated user's own profile and roles.
type MeResponse struct {
	User  User  `json:"user"`
	Roles Roles `json:"roles"`
}

// InvitationDisplay is the public preview of an invitation: who is inviting,
// shown before the invitee authenticates. It never exposes the coach's email.
type InvitationDisplay struct {
	CoachFirstName string `json:"coach_first_name"`
	CoachLastName  string `json:"coach_last_name"`
	CoachPicture   string `json:"coach_picture,omitempty"`
}

// IssueInvitationRequest mints or reuses an invitation link for the
// authenticated coach.
type IssueInvitationRequest struct {
	// ExpiresInDays overrides the default token lifetime when positive.
	ExpiresInDays int `json:"expires_in_days,omitempty"`
}

// IssueInvitationResponse carries the shareable token.
type IssueInvitationResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ClientSummary is one row of the coach's roster.
type ClientSummary struct {
	ClientID  string `json:"client_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   string `json:"picture,omitempty"`
}

// ClientDetail is the full view of one linked client.
type ClientDetail struct {
	ClientID  string    `json:"client_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture,omitempty"`
	Program   *Program  `json:"program,omitempty"`
	Workouts  []Workout `json:"workouts,omitempty"`
}

// CreateCoachRequest provisions a coach account by email.
type CreateCoachRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateCoachResponse returns the provisioned records.
type CreateCoachResponse struct {
	User    User   `json:"user"`
	CoachID string `json:"coach_id"`
}

// Program is a training plan assigned to a client.
type Program struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ClientID    string     `json:"client_id"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      string     `json:"status"`
}

// CreateProgramRequest creates a program for a linked client.
type CreateProgramRequest struct {
	Name        string     `json:"name"`
	ClientID    string     `json:"client_id"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Workout is one ordered training day within a program.
type Workout struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Order   int           `json:"order"`
	Warmup  *WorkoutBlock `json:"warmup,omitempty"`
	Workout WorkoutBlock  `json:"workout"`
}

// WorkoutBlock groups prescribed exercises with block-level pacing.
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

// AddWorkoutRequest appends a workout to a program.
type AddWorkoutRequest struct {
	Name    string        `json:"name"`
	Order   int           `json:"order"`
	Warmup  *WorkoutBlock `json:"warmup,omitempty"`
	Workout WorkoutBlock  `json:"workout"`
}

// Exercise is one entry in a coach's exercise library.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

// CreateExerciseRequest adds an exercise to the coach's library.
type CreateExerciseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
