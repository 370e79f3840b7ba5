package repository

import (
	"context"
	"database/sql"
)

// GoalRepo handles per-kid point goals.
type GoalRepo struct {
	db *sql.DB
}

func NewGoalRepo(db *sql.DB) *GoalRepo {
	return &GoalRepo{db: db}
}

func (r *GoalRepo) Upsert(ctx context.Context, g Goal) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO goals(id, kid_id, title, target_points, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 target_points=excluded.target_points;
	`, g.ID, g.KidID, g.Title, g.TargetPoints, g.CreatedAt)
	return err
}

func (r *GoalRepo) List(ctx context.Context) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, kid_id, title, target_points, created_at
	FROM goals ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.KidID, &g.Title, &g.TargetPoints, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GoalRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	return err
}
