package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/slogx"
)

var ErrClientNotFound = errors.New("client not found")

// ClientSummary is a linked client as shown in the coach's roster.
type ClientSummary struct {
	ClientID  string
	FirstName string
	LastName  string
	Picture   string
}

// ClientDetail is the full view of one client: profile, most recent program
// the coach assigned, and that program's workouts in order.
type ClientDetail struct {
	ClientID  string
	FirstName string
	LastName  string
	Email     string
	Picture   string
	Program   *domain.Program
	Workouts  []domain.Workout
}

// ClientsService serves the coach-facing views of linked clients.
type ClientsService struct {
	Store store.Store
}

// ListClients returns the coach's roster, most recently linked first.
func (s *ClientsService) ListClients(ctx context.Context, coachID string) ([]ClientSummary, error) {
	log := slogx.FromContext(ctx)

	clients, err := s.Store.Clients().ListByCoach(ctx, coachID)
	if err != nil {
		log.Error("failed to list clients", slog.String("coach_id", coachID), slog.Any("error", err))
		return nil, err
	}

	summaries := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		user, err := s.Store.Users().GetUserByID(ctx, c.UserID)
		if err != nil {
			log.Error("failed to load client user",
				slog.String("client_id", c.ID),
				slog.Any("error", err),
			)
			return nil, err
		}
		summaries = append(summaries, ClientSummary{
			ClientID:  c.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Picture:   user.Picture,
		})
	}
	return summaries, nil
}

// GetClientDetail returns one client's profile plus their latest program and
// its workouts. Fails with ErrClientNotFound when the client does not exist
// or is not linked to this coach - the roster boundary doubles as the
// authorization boundary.
func (s *ClientsService) GetClientDetail(ctx context.Context, coachID, clientID string) (ClientDetail, error) {
	log := slogx.FromContext(ctx)

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ClientDetail{}, ErrClientNotFound
		}
		log.Error("failed to load client", slog.String("client_id", clientID), slog.Any("error", err))
		return ClientDetail{}, err
	}

	linked, err := s.isLinked(ctx, client.ID, coachID)
	if err != nil {
		return ClientDetail{}, err
	}
	if !linked {
		return ClientDetail{}, ErrClientNotFound
	}

	user, err := s.Store.Users().GetUserByID(ctx, client.UserID)
	if err != nil {
		log.Error("failed to load client user", slog.String("client_id", clientID), slog.Any("error", err))
		return ClientDetail{}, err
	}

	detail := ClientDetail{
		ClientID:  client.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Picture:   user.Picture,
	}

	program, err := s.Store.Programs().GetLatestForClient(ctx, client.ID, coachID)
	switch {
	case err == nil:
		detail.Program = &program
		workouts, err := s.Store.Workouts().ListByProgram(ctx, program.ID)
		if err != nil {
			log.Error("failed to load program workouts", slog.String("program_id", program.ID), slog.Any("error", err))
			return ClientDetail{}, err
		}
		detail.Workouts = workouts
	case errors.Is(err, store.ErrNotFound):
		// No program assigned yet; the detail view still renders.
	default:
		log.Error("failed to load latest program", slog.String("client_id", clientID), slog.Any("error", err))
		return ClientDetail{}, err
	}

	return detail, nil
}

func (s *ClientsService) isLinked(ctx context.Context, clientID, coachID string) (bool, error) {
	links, err := s.Store.Clients().ListCoachLinks(ctx, clientID)
	if err != nil {
		return false, err
	}
	for _, l := range links {
		if l.CoachID == coachID {
			return true, nil
		}
	}
	return false, nil
}
