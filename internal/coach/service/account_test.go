package service

import (
	"context"
	"testing"

	"github.com/harbourfit/coachd/internal/coach/identity"
	"github.com/stretchr/testify/require"
)

func TestLoginExistingUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	coachUser, _ := seedCoach(t, st, "coach@example.com")

	svc := &AccountService{Store: st}

	user, roles, err := svc.Login(ctx, identity.Profile{
		Email:   "Coach@Example.com",
		Picture: coachUser.Picture,
	})
	require.NoError(t, err)
	require.Equal(t, coachUser.ID, user.ID)
	require.True(t, roles.IsCoach)
}

func TestLoginNeverCreatesAccounts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &AccountService{Store: st}

	_, _, err := svc.Login(ctx, identity.Profile{Email: "stranger@example.com"})
	require.ErrorIs(t, err, ErrUserNotRegistered)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestLoginRefreshesAvatarOnly(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	coachUser, _ := seedCoach(t, st, "coach@example.com")

	svc := &AccountService{Store: st}

	user, _, err := svc.Login(ctx, identity.Profile{
		Email:     "coach@example.com",
		FirstName: "Completely",
		LastName:  "Different",
		Picture:   "https://avatars.example/new.png",
	})
	require.NoError(t, err)

	require.Equal(t, coachUser.FirstName, user.FirstName)
	require.Equal(t, coachUser.LastName, user.LastName)
	require.Equal(t, "https://avatars.example/new.png", user.Picture)
}

func TestCreateCoach(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st}

	t.Run("provisions user and coach for new email", func(t *testing.T) {
		user, coach, err := svc.CreateCoach(ctx, "New.Coach@Example.com", "Noa", "Coach")
		require.NoError(t, err)
		require.Equal(t, "new.coach@example.com", user.Email)
		require.Equal(t, user.ID, coach.UserID)

		roles, err := resolveRoles(ctx, st, user.ID)
		require.NoError(t, err)
		require.True(t, roles.IsCoach)
	})

	t.Run("promotes an existing user", func(t *testing.T) {
		inv := &InviteService{Store: st}
		_, existingCoach, err := svc.CreateCoach(ctx, "sponsor@example.com", "Sam", "Sponsor")
		require.NoError(t, err)
		token, err := inv.Issue(ctx, existingCoach.ID, 7)
		require.NoError(t, err)
		member, _, err := inv.Redeem(ctx, token.Token, identity.Profile{
			Email:     "member@example.com",
			FirstName: "Mel",
		})
		require.NoError(t, err)

		user, coach, err := svc.CreateCoach(ctx, "member@example.com", "", "")
		require.NoError(t, err)
		require.Equal(t, member.ID, user.ID)
		require.Equal(t, member.ID, coach.UserID)

		// The promoted user keeps the profile they already had.
		require.Equal(t, "Mel", user.FirstName)
	})

	t.Run("rejects a second promotion", func(t *testing.T) {
		before, err := st.Users().ListUsers(ctx)
		require.NoError(t, err)

		_, _, err = svc.CreateCoach(ctx, "sponsor@example.com", "", "")
		require.ErrorIs(t, err, ErrAlreadyCoach)

		// The refused grant rolls back without touching the user table.
		after, err := st.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before))
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st}

	t.Run("creates the user when absent", func(t *testing.T) {
		require.NoError(t, svc.EnsureAdmin(ctx, "Root@Example.com"))

		user, err := st.Users().GetUserByEmail(ctx, "root@example.com")
		require.NoError(t, err)
		require.True(t, user.IsAdmin)
	})

	t.Run("grants the flag to an existing user", func(t *testing.T) {
		coachUser, _ := seedCoach(t, st, "coach@example.com")
		require.NoError(t, svc.EnsureAdmin(ctx, "coach@example.com"))

		user, err := st.Users().GetUserByID(ctx, coachUser.ID)
		require.NoError(t, err)
		require.True(t, user.IsAdmin)
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com"))
		require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com"))
	})
}
