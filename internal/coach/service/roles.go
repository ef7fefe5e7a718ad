package service

import (
	"context"
	"errors"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
)

// RolesService answers "which of admin/coach/client does this user hold"
// for the request gate and for response shaping.
type RolesService struct {
	Store store.Store
}

// Resolve determines the role set for a user. Admin is read off the user
// record; coach and client are existence checks on their marker records.
// Resolution is fresh per call since role membership can change between
// requests.
func (s *RolesService) Resolve(ctx context.Context, userID string) (domain.Roles, error) {
	return resolveRoles(ctx, s.Store, userID)
}

// Coach returns the coach record for a user, or store.ErrNotFound when the
// user does not hold the coach role. The record itself is needed by
// coach-scoped handlers, not just the boolean.
func (s *RolesService) Coach(ctx context.Context, userID string) (domain.Coach, error) {
	return s.Store.Coaches().GetCoachByUserID(ctx, userID)
}

func resolveRoles(ctx context.Context, st store.Store, userID string) (domain.Roles, error) {
	user, err := st.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.Roles{}, err
	}

	var roles domain.Roles
	roles.IsAdmin = user.IsAdmin

	if _, err := st.Coaches().GetCoachByUserID(ctx, userID); err == nil {
		roles.IsCoach = true
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Roles{}, err
	}

	if _, err := st.Clients().GetClientByUserID(ctx, userID); err == nil {
		roles.IsClient = true
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Roles{}, err
	}

	return roles, nil
}
