package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/harbourfit/coachd/internal/coach/domain"
)

type workoutsRepo struct {
	db dbtx
}

func (r *workoutsRepo) CreateWorkout(ctx context.Context, w domain.Workout) error {
	warmup, err := marshalOptionalBlock(w.Warmup)
	if err != nil {
		return err
	}
	workout, err := json.Marshal(w.Workout)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO workouts (id, program_id, name, position, warmup, workout, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.ProgramID, w.Name, w.Order, warmup, string(workout), w.CreatedAt, w.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *workoutsRepo) ListByProgram(ctx context.Context, programID string) ([]domain.Workout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, program_id, name, position, warmup, workout, created_at, updated_at
		 FROM workouts
		 WHERE program_id = ?
		 ORDER BY position ASC`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []domain.Workout
	for rows.Next() {
		var (
			w       domain.Workout
			warmup  sql.NullString
			workout string
		)
		err := rows.Scan(&w.ID, &w.ProgramID, &w.Name, &w.Order, &warmup, &workout, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if warmup.Valid {
			var block domain.WorkoutBlock
			if err := json.Unmarshal([]byte(warmup.String), &block); err != nil {
				return nil, err
			}
			w.Warmup = &block
		}
		if err := json.Unmarshal([]byte(workout), &w.Workout); err != nil {
			return nil, err
		}

		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (r *workoutsRepo) DeleteWorkout(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func marshalOptionalBlock(b *domain.WorkoutBlock) (sql.NullString, error) {
	if b == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}
