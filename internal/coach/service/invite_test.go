package service

import (
	"context"
	"testing"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/identity"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestIssueMintsTokenWithRequestedTTL(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}

	before := time.Now().UTC()
	inv, err := svc.Issue(ctx, coach.ID, 0) // default TTL
	require.NoError(t, err)

	require.NotEmpty(t, inv.Token)
	require.Equal(t, coach.ID, inv.CoachID)
	require.WithinDuration(t, before.AddDate(0, 0, DefaultInviteTTLDays), inv.ExpiresAt, 5*time.Second)
}

func TestIssueReusesFreshToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}

	first, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	// A second issuance inside the 5-day reuse window hands back the very
	// same token string, not a new one.
	second, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)
	require.Equal(t, first.Token, second.Token)
	require.WithinDuration(t, first.ExpiresAt, second.ExpiresAt, time.Second)
}

func TestIssueMintsNewTokenWhenRemainingValidityTooShort(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	// Seed a token with only 2 days left: below the 5-day reuse window.
	now := time.Now().UTC()
	stale := domain.InvitationToken{
		ID:        idx.New().String(),
		CoachID:   coach.ID,
		Token:     "stale-token",
		ExpiresAt: now.AddDate(0, 0, 2),
		CreatedAt: now.AddDate(0, 0, -5),
	}
	require.NoError(t, st.Invitations().CreateToken(ctx, stale))

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	require.NotEqual(t, stale.Token, inv.Token)
	require.WithinDuration(t, now.AddDate(0, 0, 7), inv.ExpiresAt, 5*time.Second)
}

func TestRedeemCreatesUserClientAndLink(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	profile := identity.Profile{
		Email:     "New.Client@Example.com",
		FirstName: "Nadia",
		LastName:  "Client",
		Picture:   "https://avatars.example/nadia.png",
	}

	user, roles, err := svc.Redeem(ctx, inv.Token, profile)
	require.NoError(t, err)

	// Email is case-normalized on the way in.
	require.Equal(t, "new.client@example.com", user.Email)
	require.Equal(t, "Nadia", user.FirstName)
	require.True(t, roles.IsClient)
	require.False(t, roles.IsCoach)
	require.False(t, roles.IsAdmin)

	client, err := st.Clients().GetClientByUserID(ctx, user.ID)
	require.NoError(t, err)

	links, err := st.Clients().ListCoachLinks(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, coach.ID, links[0].CoachID)

	// The token survives redemption: the record is untouched and can be
	// redeemed again by someone else.
	after, err := st.Invitations().GetByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.WithinDuration(t, inv.ExpiresAt, after.ExpiresAt, time.Second)
}

func TestRedeemUnknownTokenFails(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &InviteService{Store: st}
	_, _, err := svc.Redeem(ctx, "no-such-token", identity.Profile{Email: "a@example.com"})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedeemExpiredTokenFailsWithoutMutation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	now := time.Now().UTC()
	expired := domain.InvitationToken{
		ID:        idx.New().String(),
		CoachID:   coach.ID,
		Token:     "expired-token",
		ExpiresAt: now.AddDate(0, 0, -1),
		CreatedAt: now.AddDate(0, 0, -8),
	}
	require.NoError(t, st.Invitations().CreateToken(ctx, expired))

	svc := &InviteService{Store: st}
	_, _, err := svc.Redeem(ctx, "expired-token", identity.Profile{Email: "late@example.com"})
	require.ErrorIs(t, err, ErrExpiredToken)

	// The failed redemption must not have touched the identity directory.
	_, err = st.Users().GetUserByEmail(ctx, "late@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedeemTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	profile := identity.Profile{Email: "repeat@example.com", FirstName: "Rae"}

	first, _, err := svc.Redeem(ctx, inv.Token, profile)
	require.NoError(t, err)
	second, _, err := svc.Redeem(ctx, inv.Token, profile)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	client, err := st.Clients().GetClientByUserID(ctx, first.ID)
	require.NoError(t, err)

	links, err := st.Clients().ListCoachLinks(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
}

func TestRedeemSameTokenByTwoInvitees(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	alice, _, err := svc.Redeem(ctx, inv.Token, identity.Profile{Email: "alice@example.com"})
	require.NoError(t, err)
	bob, _, err := svc.Redeem(ctx, inv.Token, identity.Profile{Email: "bob@example.com"})
	require.NoError(t, err)
	require.NotEqual(t, alice.ID, bob.ID)

	clients, err := st.Clients().ListByCoach(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, clients, 2)
}

func TestRedeemRefreshesAvatarButNeverNames(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	original := identity.Profile{
		Email:     "member@example.com",
		FirstName: "Morgan",
		LastName:  "Member",
		Picture:   "https://avatars.example/v1.png",
	}
	_, _, err = svc.Redeem(ctx, inv.Token, original)
	require.NoError(t, err)

	// The provider now reports a different name and avatar. Only the
	// avatar may change.
	updated := identity.Profile{
		Email:     "member@example.com",
		FirstName: "Different",
		LastName:  "Name",
		Picture:   "https://avatars.example/v2.png",
	}
	user, _, err := svc.Redeem(ctx, inv.Token, updated)
	require.NoError(t, err)

	require.Equal(t, "Morgan", user.FirstName)
	require.Equal(t, "Member", user.LastName)
	require.Equal(t, "https://avatars.example/v2.png", user.Picture)
}

func TestRedeemForUserLinksExistingAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	now := time.Now().UTC()
	member := domain.User{
		ID:        idx.New().String(),
		Email:     "solo@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Users().CreateUser(ctx, member))

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	roles, err := svc.RedeemForUser(ctx, inv.Token, member.ID)
	require.NoError(t, err)
	require.True(t, roles.IsClient)

	client, err := st.Clients().GetClientByUserID(ctx, member.ID)
	require.NoError(t, err)
	links, err := st.Clients().ListCoachLinks(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
}

func TestRedeemForUserUnknownUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	_, err = svc.RedeemForUser(ctx, inv.Token, idx.New().String())
	require.ErrorIs(t, err, ErrUserNotRegistered)

	// Nothing was linked on the way out.
	clients, err := st.Clients().ListByCoach(ctx, coach.ID)
	require.NoError(t, err)
	require.Empty(t, clients)
}

func TestRedeemLifecycleScenario(t *testing.T) {
	// Coach issues at T0 with a 7-day TTL. An invitee redeeming mid-window
	// succeeds and leaves the expiry untouched; once the window passes the
	// token is dead for everyone.
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}

	// Token issued "4 days ago" with a 7-day TTL: 3 days of validity left.
	t0 := time.Now().UTC().AddDate(0, 0, -4)
	inv := domain.InvitationToken{
		ID:        idx.New().String(),
		CoachID:   coach.ID,
		Token:     "midlife-token",
		ExpiresAt: t0.AddDate(0, 0, 7),
		CreatedAt: t0,
	}
	require.NoError(t, st.Invitations().CreateToken(ctx, inv))

	_, _, err := svc.Redeem(ctx, inv.Token, identity.Profile{Email: "ontime@example.com"})
	require.NoError(t, err)

	after, err := st.Invitations().GetByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.WithinDuration(t, inv.ExpiresAt, after.ExpiresAt, time.Second)

	// Same shape, but issued "8 days ago": one day past expiry.
	t1 := time.Now().UTC().AddDate(0, 0, -8)
	lapsed := domain.InvitationToken{
		ID:        idx.New().String(),
		CoachID:   coach.ID,
		Token:     "lapsed-token",
		ExpiresAt: t1.AddDate(0, 0, 7),
		CreatedAt: t1,
	}
	require.NoError(t, st.Invitations().CreateToken(ctx, lapsed))

	_, _, err = svc.Redeem(ctx, lapsed.Token, identity.Profile{Email: "toolate@example.com"})
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	coachUser, coach := seedCoach(t, st, "coach@example.com")

	svc := &InviteService{Store: st}
	inv, err := svc.Issue(ctx, coach.ID, 7)
	require.NoError(t, err)

	t.Run("returns the coach display profile without mutating", func(t *testing.T) {
		profile, err := svc.VerifyToken(ctx, inv.Token)
		require.NoError(t, err)
		require.Equal(t, coach.ID, profile.CoachID)
		require.Equal(t, coachUser.FirstName, profile.FirstName)
		require.Equal(t, coachUser.Picture, profile.Picture)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "bogus")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		now := time.Now().UTC()
		dead := domain.InvitationToken{
			ID:        idx.New().String(),
			CoachID:   coach.ID,
			Token:     "dead-token",
			ExpiresAt: now.Add(-time.Hour),
			CreatedAt: now.AddDate(0, 0, -7),
		}
		require.NoError(t, st.Invitations().CreateToken(ctx, dead))

		_, err := svc.VerifyToken(ctx, "dead-token")
		require.ErrorIs(t, err, ErrExpiredToken)
	})
}
