package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestSweepPurgesExpiredRecords(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	coachUser, coach := seedCoach(t, st, "coach@example.com")

	now := time.Now().UTC()

	live := domain.InvitationToken{
		ID:        idx.New().String(),
		CoachID:   coach.ID,
		Token:     "live-token",
		ExpiresAt: now.AddDate(0, 0, 7),
		CreatedAt: now,
	}
	dead := domain.InvitationToken{
		ID:        idx.New().String(),
		CoachID:   coach.ID,
		Token:     "dead-token",
		ExpiresAt: now.AddDate(0, 0, -1),
		CreatedAt: now.AddDate(0, 0, -8),
	}
	require.NoError(t, st.Invitations().CreateToken(ctx, live))
	require.NoError(t, st.Invitations().CreateToken(ctx, dead))

	sessions := &SessionService{Store: st}
	liveToken, _, err := sessions.Create(ctx, coachUser.ID)
	require.NoError(t, err)

	expiredSessions := &SessionService{Store: st, TTL: time.Nanosecond}
	_, _, err = expiredSessions.Create(ctx, coachUser.ID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hk := NewHousekeepingService(st, logger, time.Hour)
	hk.Sweep(ctx)

	_, err = st.Invitations().GetByToken(ctx, live.Token)
	require.NoError(t, err)
	_, err = st.Invitations().GetByToken(ctx, dead.Token)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = sessions.Lookup(ctx, liveToken)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	st := newTestStore(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hk := NewHousekeepingService(st, logger, 10*time.Millisecond)

	hk.Start()
	time.Sleep(30 * time.Millisecond)
	hk.Stop()
}
