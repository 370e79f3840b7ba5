package repository

import (
	"context"
	"database/sql"
)

// TourFlagRepo is the durable completion store for the tour engine. It
// satisfies tour.FlagStore: missing keys read as false, so a lost write only
// means a tour may show again.
type TourFlagRepo struct {
	db *sql.DB
}

func NewTourFlagRepo(db *sql.DB) *TourFlagRepo {
	return &TourFlagRepo{db: db}
}

// Flag reads one boolean flag, defaulting to false.
func (r *TourFlagRepo) Flag(key string) bool {
	var v int
	err := r.db.QueryRowContext(context.Background(),
		`SELECT value FROM tour_flags WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return false
	}
	return v != 0
}

// SetFlag writes one boolean flag.
func (r *TourFlagRepo) SetFlag(key string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := r.db.ExecContext(context.Background(), `
	INSERT INTO tour_flags(key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value;
	`, key, v)
	return err
}
