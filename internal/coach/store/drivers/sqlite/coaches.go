package sqlite

import (
	"context"

	"github.com/harbourfit/coachd/internal/coach/domain"
)

type coachesRepo struct {
	db dbtx
}

func (r *coachesRepo) GetCoachByID(ctx context.Context, id string) (domain.Coach, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM coaches WHERE id = ?`, id)
	return scanCoach(row)
}

func (r *coachesRepo) GetCoachByUserID(ctx context.Context, userID string) (domain.Coach, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM coaches WHERE user_id = ?`, userID)
	return scanCoach(row)
}

func (r *coachesRepo) CreateCoach(ctx context.Context, c domain.Coach) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coaches (id, user_id, created_at) VALUES (?, ?, ?)`,
		c.ID, c.UserID, c.CreatedAt,
	)
	return mapConstraint(err)
}

func scanCoach(row rowScanner) (domain.Coach, error) {
	var c domain.Coach
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt); err != nil {
		return domain.Coach{}, mapNotFound(err)
	}
	return c, nil
}
