package sqlite

import (
	"context"

	"github.com/harbourfit/coachd/internal/coach/domain"
)

type exercisesRepo struct {
	db dbtx
}

const exerciseColumns = `id, name, description, video_url, created_by, created_at, updated_at`

func (r *exercisesRepo) CreateExercise(ctx context.Context, e domain.Exercise) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (id, name, description, video_url, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Description, e.VideoURL, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *exercisesRepo) GetExerciseByID(ctx context.Context, id string) (domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)
	return scanExercise(row)
}

func (r *exercisesRepo) ListByCoach(ctx context.Context, coachID string) ([]domain.Exercise, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE created_by = ? ORDER BY name ASC`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *exercisesRepo) DeleteExercise(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanExercise(row rowScanner) (domain.Exercise, error) {
	var e domain.Exercise
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.VideoURL, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Exercise{}, mapNotFound(err)
	}
	return e, nil
}
