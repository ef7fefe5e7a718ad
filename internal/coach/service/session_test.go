package service

import (
	"context"
	"testing"
	"time"

	"github.com/harbourfit/coachd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	coachUser, _ := seedCoach(t, st, "coach@example.com")

	svc := &SessionService{Store: st}

	token, session, err := svc.Create(ctx, coachUser.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, coachUser.ID, session.UserID)

	// The raw token never touches the database, only its fingerprint.
	require.NotEqual(t, token, session.TokenHash)
	require.Equal(t, cryptox.FingerprintToken(token), session.TokenHash)

	userID, err := svc.Lookup(ctx, token)
	require.NoError(t, err)
	require.Equal(t, coachUser.ID, userID)

	require.NoError(t, svc.Destroy(ctx, token))

	_, err = svc.Lookup(ctx, token)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionLookupUnknownToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}

	_, err := svc.Lookup(ctx, "never-issued")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionLookupExpired(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	coachUser, _ := seedCoach(t, st, "coach@example.com")

	// A tiny TTL yields a session that expires immediately. The row still
	// exists until the sweep removes it, but lookups must treat it as gone.
	svc := &SessionService{Store: st, TTL: time.Nanosecond}
	token, _, err := svc.Create(ctx, coachUser.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Lookup(ctx, token)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionDestroyUnknownTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &SessionService{Store: st}

	require.NoError(t, svc.Destroy(ctx, "never-issued"))
}
