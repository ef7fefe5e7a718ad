package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
	"github.com/harbourfit/coachd/internal/coach/store"
	"github.com/harbourfit/coachd/pkg/cryptox"
	"github.com/harbourfit/coachd/pkg/idx"
	"github.com/harbourfit/coachd/pkg/slogx"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// DefaultSessionTTL is how long a login session lives without re-auth.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionService manages server-side login sessions. The caller holds an
// opaque token in a cookie; only its fingerprint is stored.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Create mints a session for a user and returns the raw token to place in
// the cookie. The raw value is never persisted.
func (s *SessionService) Create(ctx context.Context, userID string) (string, domain.Session, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return "", domain.Session{}, err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to persist session", slog.String("user_id", userID), slog.Any("error", err))
		return "", domain.Session{}, err
	}

	log.Debug("session created", slog.String("user_id", userID))
	return token, session, nil
}

// Lookup resolves a raw session token to the user id it authenticates.
func (s *SessionService) Lookup(ctx context.Context, token string) (string, error) {
	session, err := s.Store.Sessions().GetByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return session.UserID, nil
}

// Destroy removes a session (logout). Destroying an unknown token is not an
// error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.Store.Sessions().DeleteByTokenHash(ctx, cryptox.FingerprintToken(token))
}
