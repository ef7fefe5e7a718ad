package sqlite

import (
	"context"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
)

type invitationsRepo struct {
	db dbtx
}

func (r *invitationsRepo) CreateToken(ctx context.Context, t domain.InvitationToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitation_tokens (id, coach_id, token, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.CoachID, t.Token, t.ExpiresAt, t.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetByToken(ctx context.Context, token string) (domain.InvitationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, coach_id, token, expires_at, created_at
		 FROM invitation_tokens WHERE token = ?`, token)
	return scanInvitationToken(row)
}

func (r *invitationsRepo) GetFreshByCoach(
	ctx context.Context,
	coachID string,
	minValidUntil time.Time,
) (domain.InvitationToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, coach_id, token, expires_at, created_at
		 FROM invitation_tokens
		 WHERE coach_id = ? AND expires_at >= ?
		 ORDER BY expires_at DESC
		 LIMIT 1`, coachID, minValidUntil)
	return scanInvitationToken(row)
}

func (r *invitationsRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invitation_tokens WHERE expires_at < ?`, now)
	return err
}

func scanInvitationToken(row rowScanner) (domain.InvitationToken, error) {
	var t domain.InvitationToken
	if err := row.Scan(&t.ID, &t.CoachID, &t.Token, &t.ExpiresAt, &t.CreatedAt); err != nil {
		return domain.InvitationToken{}, mapNotFound(err)
	}
	return t, nil
}
