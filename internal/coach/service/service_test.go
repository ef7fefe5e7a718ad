package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store/drivers/sqlite"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a throwaway sqlite database with the schema applied.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "coachd-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedCoach creates a user holding the coach role and returns both records.
func seedCoach(t *testing.T, st *sqlite.Store, email string) (domain.User, domain.Coach) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	user := domain.User{
		ID:        idx.New().String(),
		Email:     email,
		FirstName: "Casey",
		LastName:  "Trainer",
		Picture:   "https://avatars.example/casey.png",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	coach := domain.Coach{
		ID:        idx.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
	}
	require.NoError(t, st.Coaches().CreateCoach(ctx, coach))

	return user, coach
}

// seedLinkedClient creates a user with the client role, already linked to
// the given coach.
func seedLinkedClient(t *testing.T, st *sqlite.Store, coachID, email string) (domain.User, domain.Client) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	user := domain.User{
		ID:        idx.New().String(),
		Email:     email,
		FirstName: "Lee",
		LastName:  "Member",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Users().CreateUser(ctx, user))

	client := domain.Client{
		ID:        idx.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
	}
	require.NoError(t, st.Clients().CreateClient(ctx, client))
	require.NoError(t, st.Clients().AddCoachLink(ctx, domain.CoachLink{
		ClientID: client.ID,
		CoachID:  coachID,
		LinkedAt: now,
	}))

	return user, client
}
