package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/identity"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/cryptox"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

var (
	ErrInvalidToken  = errors.New("invitation token not found")
	ErrExpiredToken  = errors.New("invitation token has expired")
	ErrCoachNotFound = errors.New("coach not found")
)

const (
	// DefaultInviteTTLDays is how long a freshly minted invitation lives.
	DefaultInviteTTLDays = 7

	// reuseWindowDays is the minimum remaining validity below which a new
	// token is minted instead of reusing an existing one. Repeat issuance
	// inside the window hands back the same link, so a coach inviting five
	// people in a week shares one URL.
	reuseWindowDays = 5
)

// InviteService issues and redeems invitation tokens binding clients to
// coaches. Tokens are reusable until expiry; redemption never consumes them.
type InviteService struct {
	Store store.Store
}

// Issue returns an invitation token for the coach, reusing an existing one
// when it stays valid for at least the reuse window, otherwise minting a
// fresh token valid for ttlDays (default 7). Issuance never touches user or
// client records.
//
// Concurrent issuance for the same coach may race past the freshness check
// and mint two tokens. Both stay valid until their natural expiry, which is
// harmless, so there is no locking here.
func (s *InviteService) Issue(ctx context.Context, coachID string, ttlDays int) (domain.InvitationToken, error) {
	log := slogx.FromContext(ctx)

	if ttlDays <= 0 {
		ttlDays = DefaultInviteTTLDays
	}
	now := time.Now().UTC()

	// 1. Reuse an existing token still valid through the reuse window.
	minValidUntil := now.AddDate(0, 0, reuseWindowDays)
	existing, err := s.Store.Invitations().GetFreshByCoach(ctx, coachID, minValidUntil)
	if err == nil {
		log.Debug("reusing invitation token",
			slog.String("coach_id", coachID),
			slog.Time("expires_at", existing.ExpiresAt),
		)
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up existing invitation", slog.Any("error", err))
		return domain.InvitationToken{}, err
	}

	// 2. Mint a new token. A collision on the random token value is
	// astronomically rare; retry once and then give up.
	var created domain.InvitationToken
	for attempt := 0; attempt < 2; attempt++ {
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			log.Error("failed to generate invitation token", slog.Any("error", err))
			return domain.InvitationToken{}, err
		}

		created = domain.InvitationToken{
			ID:        idx.New().String(),
			CoachID:   coachID,
			Token:     token,
			ExpiresAt: now.AddDate(0, 0, ttlDays),
			CreatedAt: now,
		}

		err = s.Store.Invitations().CreateToken(ctx, created)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrAlreadyExists) && attempt == 0 {
			continue
		}
		log.Error("failed to persist invitation token",
			slog.String("coach_id", coachID),
			slog.Any("error", err),
		)
		return domain.InvitationToken{}, err
	}

	log.Info("invitation token minted",
		slog.String("coach_id", coachID),
		slog.Time("expires_at", created.ExpiresAt),
	)
	return created, nil
}

// Redeem links the identity behind a verified profile as a client of the
// token's coach. It resolves or creates the user and client records, then
// records the coach link. All mutations are individually idempotent, so two
// invitees redeeming the same token concurrently, or one invitee redeeming
// twice, both land in a consistent state. The token itself is untouched:
// the same link stays redeemable until it expires.
func (s *InviteService) Redeem(
	ctx context.Context,
	token string,
	profile identity.Profile,
) (domain.User, domain.Roles, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the token before touching anything else. An expired
	// or unknown token must leave the directory unmodified.
	inv, err := s.lookupToken(ctx, token)
	if err != nil {
		return domain.User{}, domain.Roles{}, err
	}

	// 2. Resolve or create the user. This must fully succeed before any
	// client mutation; a user created here stays even if a later step
	// fails, it simply exists unlinked.
	user, err := s.resolveUser(ctx, profile)
	if err != nil {
		return domain.User{}, domain.Roles{}, err
	}

	// 3. Link the user as a client of the token's coach.
	if err := s.linkClient(ctx, user.ID, inv.CoachID); err != nil {
		return domain.User{}, domain.Roles{}, err
	}

	roles, err := resolveRoles(ctx, s.Store, user.ID)
	if err != nil {
		return domain.User{}, domain.Roles{}, err
	}

	log.Info("invitation redeemed",
		slog.String("user_id", user.ID),
		slog.String("coach_id", inv.CoachID),
	)
	return user, roles, nil
}

// RedeemForUser is the variant for an already-authenticated user joining a
// coach via an invitation link ("join" flow). The user must already exist.
func (s *InviteService) RedeemForUser(ctx context.Context, token, userID string) (domain.Roles, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.lookupToken(ctx, token)
	if err != nil {
		return domain.Roles{}, err
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A live session for a user row that no longer exists.
			log.Warn("join attempted by unknown user", slog.String("user_id", userID))
			return domain.Roles{}, ErrUserNotRegistered
		}
		log.Error("failed to load user for join", slog.String("user_id", userID), slog.Any("error", err))
		return domain.Roles{}, err
	}

	if err := s.linkClient(ctx, userID, inv.CoachID); err != nil {
		return domain.Roles{}, err
	}

	log.Info("invitation redeemed by existing user",
		slog.String("user_id", userID),
		slog.String("coach_id", inv.CoachID),
	)
	return resolveRoles(ctx, s.Store, userID)
}

// VerifyToken validates a token without mutating anything and returns the
// owning coach's public display profile. Used to render the "you are about
// to join" prompt before the invitee authenticates.
func (s *InviteService) VerifyToken(ctx context.Context, token string) (domain.CoachProfile, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.lookupToken(ctx, token)
	if err != nil {
		return domain.CoachProfile{}, err
	}

	coach, err := s.Store.Coaches().GetCoachByID(ctx, inv.CoachID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CoachProfile{}, ErrCoachNotFound
		}
		log.Error("failed to load coach for token display", slog.Any("error", err))
		return domain.CoachProfile{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, coach.UserID)
	if err != nil {
		log.Error("failed to load coach user for token display", slog.Any("error", err))
		return domain.CoachProfile{}, err
	}

	return domain.CoachProfile{
		CoachID:   coach.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Picture:   user.Picture,
	}, nil
}

// lookupToken fetches a token and enforces expiry. The physical purge of
// expired rows may lag, so the comparison against now here is authoritative.
func (s *InviteService) lookupToken(ctx context.Context, token string) (domain.InvitationToken, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("redemption attempted with unknown invitation token")
			return domain.InvitationToken{}, ErrInvalidToken
		}
		log.Error("failed to fetch invitation token", slog.Any("error", err))
		return domain.InvitationToken{}, err
	}

	if inv.Expired(time.Now().UTC()) {
		log.Warn("redemption attempted with expired invitation token",
			slog.String("coach_id", inv.CoachID),
			slog.Time("expired_at", inv.ExpiresAt),
		)
		return domain.InvitationToken{}, ErrExpiredToken
	}

	return inv, nil
}

// resolveUser finds the user for a verified email, creating it from the
// profile when absent. For existing users only the avatar is refreshed when
// the provider supplies a new one; name fields are never overwritten.
func (s *InviteService) resolveUser(ctx context.Context, profile identity.Profile) (domain.User, error) {
	log := slogx.FromContext(ctx)

	email := NormalizeEmail(profile.Email)
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		if profile.Picture != "" && profile.Picture != user.Picture {
			if err := s.Store.Users().UpdatePicture(ctx, user.ID, profile.Picture); err != nil {
				log.Error("failed to refresh avatar", slog.String("user_id", user.ID), slog.Any("error", err))
				return domain.User{}, err
			}
			user.Picture = profile.Picture
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up user by email", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user = domain.User{
		ID:        idx.New().String(),
		Email:     email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Picture:   profile.Picture,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		// A concurrent redemption may have created the same user between
		// our lookup and insert; fall back to reading it.
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.Store.Users().GetUserByEmail(ctx, email)
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user created via invitation", slog.String("user_id", user.ID))
	return user, nil
}

// linkClient resolves or creates the client record for a user and records
// the coaching relationship. The (client, coach) pair is unique at the
// storage layer, so re-linking is a no-op.
func (s *InviteService) linkClient(ctx context.Context, userID, coachID string) error {
	log := slogx.FromContext(ctx)

	client, err := s.Store.Clients().GetClientByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		client = domain.Client{
			ID:        idx.New().String(),
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		err = s.Store.Clients().CreateClient(ctx, client)
		if errors.Is(err, store.ErrAlreadyExists) {
			client, err = s.Store.Clients().GetClientByUserID(ctx, userID)
		}
	}
	if err != nil {
		log.Error("failed to resolve client record", slog.String("user_id", userID), slog.Any("error", err))
		return err
	}

	link := domain.CoachLink{
		ClientID: client.ID,
		CoachID:  coachID,
		LinkedAt: time.Now().UTC(),
	}
	if err := s.Store.Clients().AddCoachLink(ctx, link); err != nil {
		log.Error("failed to record coach link",
			slog.String("client_id", client.ID),
			slog.String("coach_id", coachID),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

// NormalizeEmail lowercases and trims an email for use as the unique account
// key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
