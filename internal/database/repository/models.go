// Package repository provides typed access to the sqlite tables.
package repository

import "time"

// Kid represents a kid row.
type Kid struct {
	ID        string
	Name      string
	Emoji     string
	CreatedAt time.Time
}

// Event kinds.
const (
	EventPositive  = "positive"
	EventNeedsWork = "needs_work"
)

// Event represents one logged behavior moment.
type Event struct {
	ID         string
	KidID      string
	Kind       string
	Note       string
	Points     int
	OccurredAt time.Time
	CreatedAt  time.Time
}

// Goal represents a points target for one kid.
type Goal struct {
	ID           string
	KidID        string
	Title        string
	TargetPoints int
	CreatedAt    time.Time
}
