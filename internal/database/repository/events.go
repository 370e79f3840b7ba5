package repository

import (
	"context"
	"database/sql"
	"time"
)

// EventRepo handles logged behavior moments.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Insert(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO events(id, kid_id, kind, note, points, occurred_at, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, e.ID, e.KidID, e.Kind, e.Note, e.Points, e.OccurredAt, e.CreatedAt)
	return err
}

// ListSince returns events on or after t, newest first.
func (r *EventRepo) ListSince(ctx context.Context, t time.Time) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, kid_id, kind, note, points, occurred_at, created_at
	FROM events WHERE occurred_at >= ? ORDER BY occurred_at DESC`, t)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListForKid returns every event for one kid, newest first.
func (r *EventRepo) ListForKid(ctx context.Context, kidID string) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, kid_id, kind, note, points, occurred_at, created_at
	FROM events WHERE kid_id = ? ORDER BY occurred_at DESC`, kidID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// PointsForKid sums positive-event points for one kid since t.
func (r *EventRepo) PointsForKid(ctx context.Context, kidID string, since time.Time) (int, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
	SELECT SUM(points) FROM events
	WHERE kid_id = ? AND kind = ? AND occurred_at >= ?`, kidID, EventPositive, since).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.KidID, &e.Kind, &e.Note, &e.Points, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
