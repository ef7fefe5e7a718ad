package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "coachd-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(email string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:        idx.New().String(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestWithTxCommitsOnNil(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, testUser("kept@example.com"))
	})
	require.NoError(t, err)

	_, err = st.Users().GetUserByEmail(ctx, "kept@example.com")
	require.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, testUser("gone@example.com")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByEmail(ctx, "gone@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackMultiStepWrites(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	user := testUser("coach@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, user))
	require.NoError(t, st.Coaches().CreateCoach(ctx, domain.Coach{
		ID:        idx.New().String(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}))

	// Second coach record for the same user trips the unique constraint;
	// the user insert in the same tx must vanish with it.
	err := st.WithTx(ctx, func(tx store.Tx) error {
		extra := testUser("orphan@example.com")
		if err := tx.Users().CreateUser(ctx, extra); err != nil {
			return err
		}
		return tx.Coaches().CreateCoach(ctx, domain.Coach{
			ID:        idx.New().String(),
			UserID:    user.ID,
			CreatedAt: time.Now().UTC(),
		})
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByEmail(ctx, "orphan@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
