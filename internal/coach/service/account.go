package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/identity"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

var (
	ErrUserNotRegistered = errors.New("user is not registered")
	ErrAlreadyCoach      = errors.New("user is already a coach")
)

// AccountService covers sign-in for existing accounts and administrative
// provisioning of users and coaches.
type AccountService struct {
	Store store.Store
}

// Login resolves a verified profile to an existing account. Accounts are
// never created here: new users only enter the system through an invitation
// or admin provisioning, so an unknown email fails with ErrUserNotRegistered.
// The avatar is refreshed when the provider supplies a new one.
func (s *AccountService) Login(ctx context.Context, profile identity.Profile) (domain.User, domain.Roles, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(profile.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("sign-in attempted by unregistered email")
			return domain.User{}, domain.Roles{}, ErrUserNotRegistered
		}
		log.Error("failed to look up user for sign-in", slog.Any("error", err))
		return domain.User{}, domain.Roles{}, err
	}

	if profile.Picture != "" && profile.Picture != user.Picture {
		if err := s.Store.Users().UpdatePicture(ctx, user.ID, profile.Picture); err != nil {
			log.Error("failed to refresh avatar", slog.String("user_id", user.ID), slog.Any("error", err))
			return domain.User{}, domain.Roles{}, err
		}
		user.Picture = profile.Picture
	}

	roles, err := resolveRoles(ctx, s.Store, user.ID)
	if err != nil {
		return domain.User{}, domain.Roles{}, err
	}

	log.Info("user signed in", slog.String("user_id", user.ID))
	return user, roles, nil
}

// GetUser fetches a user by id.
func (s *AccountService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns all users, newest first.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// CreateCoach provisions a coach: the user is created when the email is
// unknown, then a coach record is attached. Fails with ErrAlreadyCoach when
// the user already holds the role.
func (s *AccountService) CreateCoach(
	ctx context.Context,
	email, firstName, lastName string,
) (domain.User, domain.Coach, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	now := time.Now().UTC()

	var (
		user  domain.User
		coach domain.Coach
	)
	// User insert and role grant commit together; a failed grant must not
	// leave a roleless user row behind.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		user, err = tx.Users().GetUserByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			user = domain.User{
				ID:        idx.New().String(),
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
				CreatedAt: now,
				UpdatedAt: now,
			}
			err = tx.Users().CreateUser(ctx, user)
		}
		if err != nil {
			return err
		}

		coach = domain.Coach{
			ID:        idx.New().String(),
			UserID:    user.ID,
			CreatedAt: now,
		}
		return tx.Coaches().CreateCoach(ctx, coach)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, domain.Coach{}, ErrAlreadyCoach
		}
		log.Error("failed to create coach", slog.String("email", email), slog.Any("error", err))
		return domain.User{}, domain.Coach{}, err
	}

	log.Info("coach created",
		slog.String("coach_id", coach.ID),
		slog.String("user_id", user.ID),
	)
	return user, coach, nil
}

// EnsureAdmin upserts the user for email and grants the admin flag. Called
// once at startup from configuration; how the first admin comes to exist is
// an operational concern, not a request flow.
func (s *AccountService) EnsureAdmin(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	now := time.Now().UTC()

	// Lookup and grant run in one transaction so two concurrent bootstraps
	// cannot interleave between the read and the flag write.
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			user = domain.User{
				ID:        idx.New().String(),
				Email:     email,
				IsAdmin:   true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return err
			}
			log.Info("admin user provisioned", slog.String("user_id", user.ID))
			return nil
		}
		if err != nil {
			return err
		}

		if user.IsAdmin {
			return nil
		}
		if err := tx.Users().SetAdmin(ctx, user.ID, true); err != nil {
			return err
		}
		log.Info("admin flag granted", slog.String("user_id", user.ID))
		return nil
	})
}
