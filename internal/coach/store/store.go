package store

import (
	"context"
	"errors"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and WithTx for the few multi-step operations that must be atomic.
type Store interface {
	Users() Users
	Coaches() Coaches
	Clients() Clients
	Invitations() Invitations
	Sessions() Sessions
	Programs() Programs
	Workouts() Workouts
	Exercises() Exercises

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by case-normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePicture refreshes the avatar URL and bumps updated_at. Other
	// profile fields are never overwritten once set.
	UpdatePicture(ctx context.Context, userID, picture string) error

	// SetAdmin flips the admin flag.
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Coaches interface {
	// GetCoachByID fetches a coach record.
	GetCoachByID(ctx context.Context, id string) (domain.Coach, error)

	// GetCoachByUserID fetches the coach record referencing a user, if any.
	// Existence of this record is what makes a user a coach.
	GetCoachByUserID(ctx context.Context, userID string) (domain.Coach, error)

	// CreateCoach inserts a coach record. Fails with ErrAlreadyExists when
	// the user already holds the coach role (user_id is unique).
	CreateCoach(ctx context.Context, c domain.Coach) error
}

type Clients interface {
	// GetClientByID fetches a client record.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// GetClientByUserID fetches the client record referencing a user, if any.
	GetClientByUserID(ctx context.Context, userID string) (domain.Client, error)

	// CreateClient inserts a client record (user_id is unique).
	CreateClient(ctx context.Context, c domain.Client) error

	// AddCoachLink records a coaching relationship. Adding an existing
	// (client, coach) pair is a no-op; the unique compound key makes this
	// safe under concurrent redemptions of the same invitation.
	AddCoachLink(ctx context.Context, link domain.CoachLink) error

	// ListCoachLinks returns a client's links ordered oldest first.
	ListCoachLinks(ctx context.Context, clientID string) ([]domain.CoachLink, error)

	// ListByCoach returns all clients linked to a coach, most recently
	// linked first.
	ListByCoach(ctx context.Context, coachID string) ([]domain.Client, error)
}

type Invitations interface {
	// CreateToken writes a new invitation token. The raw token value is
	// stored; it must be returnable on repeat issuance.
	CreateToken(ctx context.Context, t domain.InvitationToken) error

	// GetByToken returns the record for a raw token string. Expiry is the
	// caller's concern: the row may linger after expiresAt until the sweep
	// removes it.
	GetByToken(ctx context.Context, token string) (domain.InvitationToken, error)

	// GetFreshByCoach returns the most-recently-expiring token for a coach
	// still valid at minValidUntil, or ErrNotFound.
	GetFreshByCoach(ctx context.Context, coachID string, minValidUntil time.Time) (domain.InvitationToken, error)

	// DeleteExpired purges lapsed tokens (housekeeping).
	DeleteExpired(ctx context.Context, now time.Time) error
}

type Sessions interface {
	// CreateSession stores a new login session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetByTokenHash returns a non-expired session by token fingerprint.
	GetByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// DeleteByTokenHash removes a session (logout).
	DeleteByTokenHash(ctx context.Context, hash string) error

	// DeleteExpired purges lapsed sessions (housekeeping).
	DeleteExpired(ctx context.Context, now time.Time) error
}

type Programs interface {
	CreateProgram(ctx context.Context, p domain.Program) error
	GetProgramByID(ctx context.Context, id string) (domain.Program, error)

	// ListByCoach returns a coach's programs, newest first.
	ListByCoach(ctx context.Context, coachID string) ([]domain.Program, error)

	// GetLatestForClient returns the most recently created program a coach
	// assigned to a client, or ErrNotFound.
	GetLatestForClient(ctx context.Context, clientID, coachID string) (domain.Program, error)

	DeleteProgram(ctx context.Context, id string) error
}

type Workouts interface {
	CreateWorkout(ctx context.Context, w domain.Workout) error

	// ListByProgram returns a program's workouts ordered by their position.
	ListByProgram(ctx context.Context, programID string) ([]domain.Workout, error)

	DeleteWorkout(ctx context.Context, id string) error
}

type Exercises interface {
	CreateExercise(ctx context.Context, e domain.Exercise) error
	GetExerciseByID(ctx context.Context, id string) (domain.Exercise, error)

	// ListByCoach returns the exercises a coach created, sorted by name.
	ListByCoach(ctx context.Context, coachID string) ([]domain.Exercise, error)

	DeleteExercise(ctx context.Context, id string) error
}
