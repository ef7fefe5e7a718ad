package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harbourfit/coachd/internal/coach/domain"
)

type programsRepo struct {
	db dbtx
}

const programColumns = `id, name, client_id, coach_id, description, start_date, end_date, created_at, updated_at`

func (r *programsRepo) CreateProgram(ctx context.Context, p domain.Program) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO programs (id, name, client_id, coach_id, description, start_date, end_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.ClientID, p.CoachID, p.Description,
		p.StartDate, optionalTime(p.EndDate), p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *programsRepo) GetProgramByID(ctx context.Context, id string) (domain.Program, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
	return scanProgram(row)
}

func (r *programsRepo) ListByCoach(ctx context.Context, coachID string) ([]domain.Program, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+programColumns+` FROM programs
		 WHERE coach_id = ? ORDER BY created_at DESC`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []domain.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *programsRepo) GetLatestForClient(ctx context.Context, clientID, coachID string) (domain.Program, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+programColumns+` FROM programs
		 WHERE client_id = ? AND coach_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`, clientID, coachID)
	return scanProgram(row)
}

func (r *programsRepo) DeleteProgram(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanProgram(row rowScanner) (domain.Program, error) {
	var (
		p       domain.Program
		endDate sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.ClientID, &p.CoachID, &p.Description,
		&p.StartDate, &endDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Program{}, mapNotFound(err)
	}
	if endDate.Valid {
		t := endDate.Time
		p.EndDate = &t
	}
	return p, nil
}

func optionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
