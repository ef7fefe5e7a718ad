package service

import (
	"context"
	"testing"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestResolveRoles(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &RolesService{Store: st}

	t.Run("plain user holds no roles", func(t *testing.T) {
		now := time.Now().UTC()
		user := domain.User{
			ID:        idx.New().String(),
			Email:     "plain@example.com",
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, st.Users().CreateUser(ctx, user))

		roles, err := svc.Resolve(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, domain.Roles{}, roles)
	})

	t.Run("coach role from coach record", func(t *testing.T) {
		coachUser, _ := seedCoach(t, st, "coach@example.com")

		roles, err := svc.Resolve(ctx, coachUser.ID)
		require.NoError(t, err)
		require.True(t, roles.IsCoach)
		require.False(t, roles.IsAdmin)
		require.False(t, roles.IsClient)
	})

	t.Run("roles combine independently", func(t *testing.T) {
		// A coach who is also someone's client carries both flags.
		coachUser, _ := seedCoach(t, st, "hybrid@example.com")
		_, otherCoach := seedCoach(t, st, "mentor@example.com")

		client := domain.Client{
			ID:        idx.New().String(),
			UserID:    coachUser.ID,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, st.Clients().CreateClient(ctx, client))
		require.NoError(t, st.Clients().AddCoachLink(ctx, domain.CoachLink{
			ClientID: client.ID,
			CoachID:  otherCoach.ID,
			LinkedAt: time.Now().UTC(),
		}))

		roles, err := svc.Resolve(ctx, coachUser.ID)
		require.NoError(t, err)
		require.True(t, roles.IsCoach)
		require.True(t, roles.IsClient)
		require.False(t, roles.IsAdmin)
	})

	t.Run("admin flag from user record", func(t *testing.T) {
		now := time.Now().UTC()
		admin := domain.User{
			ID:        idx.New().String(),
			Email:     "admin@example.com",
			IsAdmin:   true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, st.Users().CreateUser(ctx, admin))

		roles, err := svc.Resolve(ctx, admin.ID)
		require.NoError(t, err)
		require.True(t, roles.IsAdmin)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Resolve(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRolesServiceCoach(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &RolesService{Store: st}

	coachUser, coach := seedCoach(t, st, "coach@example.com")

	got, err := svc.Coach(ctx, coachUser.ID)
	require.NoError(t, err)
	require.Equal(t, coach.ID, got.ID)

	_, err = svc.Coach(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}
