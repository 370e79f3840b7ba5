package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sproutlabs/sprout/internal/database"
)

// KidRepo handles the kid roster.
type KidRepo struct {
	db *sql.DB
}

func NewKidRepo(db *sql.DB) *KidRepo {
	return &KidRepo{db: db}
}

func (r *KidRepo) Upsert(ctx context.Context, k Kid) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO kids(id, name, emoji, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 emoji=excluded.emoji;
	`, k.ID, k.Name, k.Emoji, k.CreatedAt)
	return err
}

func (r *KidRepo) List(ctx context.Context) ([]Kid, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, emoji, created_at FROM kids ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Kid
	for rows.Next() {
		var k Kid
		if err := rows.Scan(&k.ID, &k.Name, &k.Emoji, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Delete removes a kid together with their events and goals, atomically.
func (r *KidRepo) Delete(ctx context.Context, id string) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE kid_id = ?`, id); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE kid_id = ?`, id); err != nil {
			return fmt.Errorf("delete goals: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM kids WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete kid: %w", err)
		}
		return nil
	})
}
