package sqlite

import (
	"context"

	"github.com/harbourfit/coachd/internal/coach/domain"
)

type clientsRepo struct {
	db dbtx
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM clients WHERE id = ?`, id)
	return scanClient(row)
}

func (r *clientsRepo) GetClientByUserID(ctx context.Context, userID string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM clients WHERE user_id = ?`, userID)
	return scanClient(row)
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, user_id, created_at) VALUES (?, ?, ?)`,
		c.ID, c.UserID, c.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) AddCoachLink(ctx context.Context, link domain.CoachLink) error {
	// INSERT OR IGNORE rides on the (client_id, coach_id) primary key:
	// re-linking an existing pair is a no-op, which is what makes concurrent
	// redemptions of the same invitation idempotent.
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO coach_links (client_id, coach_id, linked_at) VALUES (?, ?, ?)`,
		link.ClientID, link.CoachID, link.LinkedAt,
	)
	return err
}

func (r *clientsRepo) ListCoachLinks(ctx context.Context, clientID string) ([]domain.CoachLink, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT client_id, coach_id, linked_at FROM coach_links
		 WHERE client_id = ? ORDER BY linked_at ASC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.CoachLink
	for rows.Next() {
		var l domain.CoachLink
		if err := rows.Scan(&l.ClientID, &l.CoachID, &l.LinkedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *clientsRepo) ListByCoach(ctx context.Context, coachID string) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.user_id, c.created_at
		 FROM clients c
		 JOIN coach_links l ON l.client_id = c.id
		 WHERE l.coach_id = ?
		 ORDER BY l.linked_at DESC`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func scanClient(row rowScanner) (domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt); err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}
