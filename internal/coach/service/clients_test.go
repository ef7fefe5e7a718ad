package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListClients(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")

	svc := &ClientsService{Store: st}

	t.Run("empty roster", func(t *testing.T) {
		clients, err := svc.ListClients(ctx, coach.ID)
		require.NoError(t, err)
		require.Empty(t, clients)
	})

	t.Run("roster carries user profiles", func(t *testing.T) {
		user, client := seedLinkedClient(t, st, coach.ID, "client@example.com")

		clients, err := svc.ListClients(ctx, coach.ID)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, client.ID, clients[0].ClientID)
		require.Equal(t, user.FirstName, clients[0].FirstName)
	})

	t.Run("rosters are per coach", func(t *testing.T) {
		_, other := seedCoach(t, st, "other@example.com")

		clients, err := svc.ListClients(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, clients)
	})
}

func TestGetClientDetail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	_, coach := seedCoach(t, st, "coach@example.com")
	user, client := seedLinkedClient(t, st, coach.ID, "client@example.com")

	svc := &ClientsService{Store: st}

	t.Run("without a program", func(t *testing.T) {
		detail, err := svc.GetClientDetail(ctx, coach.ID, client.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, detail.Email)
		require.Nil(t, detail.Program)
		require.Empty(t, detail.Workouts)
	})

	t.Run("with the latest program and its workouts", func(t *testing.T) {
		programs := &ProgramService{Store: st}

		older, err := programs.CreateProgram(ctx, coach.ID, CreateProgramInput{
			Name:      "Base Phase",
			ClientID:  client.ID,
			StartDate: time.Now().UTC().AddDate(0, -2, 0),
		})
		require.NoError(t, err)
		_ = older

		latest, err := programs.CreateProgram(ctx, coach.ID, CreateProgramInput{
			Name:      "Strength Phase",
			ClientID:  client.ID,
			StartDate: time.Now().UTC(),
		})
		require.NoError(t, err)

		detail, err := svc.GetClientDetail(ctx, coach.ID, client.ID)
		require.NoError(t, err)
		require.NotNil(t, detail.Program)
		require.Equal(t, latest.ID, detail.Program.ID)
	})

	t.Run("unlinked coach cannot see the client", func(t *testing.T) {
		_, other := seedCoach(t, st, "other@example.com")

		_, err := svc.GetClientDetail(ctx, other.ID, client.ID)
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.GetClientDetail(ctx, coach.ID, "no-such-client")
		require.ErrorIs(t, err, ErrClientNotFound)
	})
}
