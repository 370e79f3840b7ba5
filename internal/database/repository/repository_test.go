package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sproutlabs/sprout/internal/database"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestKidRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewKidRepo(db)

	kid := Kid{ID: "k1", Name: "Maya", Emoji: "🦊", CreatedAt: database.Now()}
	if err := repo.Upsert(ctx, kid); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	kid.Name = "Maya R"
	if err := repo.Upsert(ctx, kid); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	kids, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(kids) != 1 || kids[0].Name != "Maya R" {
		t.Fatalf("kids = %+v, want one renamed kid", kids)
	}
}

func TestEventQueriesAndPoints(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	if err := NewKidRepo(db).Upsert(ctx, Kid{ID: "k1", Name: "Sam", Emoji: "🙂", CreatedAt: database.Now()}); err != nil {
		t.Fatalf("kid: %v", err)
	}
	events := NewEventRepo(db)

	now := database.Now()
	old := now.AddDate(0, 0, -10)
	for _, e := range []Event{
		{ID: "e1", KidID: "k1", Kind: EventPositive, Note: "helped", Points: 1, OccurredAt: now, CreatedAt: now},
		{ID: "e2", KidID: "k1", Kind: EventPositive, Note: "shared", Points: 2, OccurredAt: now, CreatedAt: now},
		{ID: "e3", KidID: "k1", Kind: EventNeedsWork, Note: "yelled", Points: 0, OccurredAt: now, CreatedAt: now},
		{ID: "e4", KidID: "k1", Kind: EventPositive, Note: "ancient", Points: 5, OccurredAt: old, CreatedAt: old},
	} {
		if err := events.Insert(ctx, e); err != nil {
			t.Fatalf("insert %s: %v", e.ID, err)
		}
	}

	recent, err := events.ListSince(ctx, now.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent = %d events, want 3", len(recent))
	}

	pts, err := events.PointsForKid(ctx, "k1", now.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("points: %v", err)
	}
	if pts != 3 {
		t.Fatalf("points = %d, want 3 (needs-work and old events excluded)", pts)
	}
}

func TestDeleteKidCascades(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	kids := NewKidRepo(db)
	events := NewEventRepo(db)
	goals := NewGoalRepo(db)

	now := database.Now()
	if err := kids.Upsert(ctx, Kid{ID: "k1", Name: "Maya", Emoji: "🦊", CreatedAt: now}); err != nil {
		t.Fatalf("kid: %v", err)
	}
	if err := events.Insert(ctx, Event{ID: "e1", KidID: "k1", Kind: EventPositive, Note: "helped", Points: 1, OccurredAt: now, CreatedAt: now}); err != nil {
		t.Fatalf("event: %v", err)
	}
	if err := goals.Upsert(ctx, Goal{ID: "g1", KidID: "k1", Title: "Calm mornings", TargetPoints: 20, CreatedAt: now}); err != nil {
		t.Fatalf("goal: %v", err)
	}

	logged, err := events.ListForKid(ctx, "k1")
	if err != nil {
		t.Fatalf("list for kid: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("events for kid = %d, want 1", len(logged))
	}

	if err := kids.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if left, _ := kids.List(ctx); len(left) != 0 {
		t.Fatalf("kid survived delete: %+v", left)
	}
	if logged, _ = events.ListForKid(ctx, "k1"); len(logged) != 0 {
		t.Fatalf("events survived delete: %+v", logged)
	}
	if left, _ := goals.List(ctx); len(left) != 0 {
		t.Fatalf("goals survived delete: %+v", left)
	}
}

func TestGoalRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	if err := NewKidRepo(db).Upsert(ctx, Kid{ID: "k1", Name: "Sam", Emoji: "🙂", CreatedAt: database.Now()}); err != nil {
		t.Fatalf("kid: %v", err)
	}
	repo := NewGoalRepo(db)
	goal := Goal{ID: "g1", KidID: "k1", Title: "Calm mornings", TargetPoints: 20, CreatedAt: database.Now()}
	if err := repo.Upsert(ctx, goal); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	goals, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "Calm mornings" {
		t.Fatalf("goals = %+v", goals)
	}
	if err := repo.Delete(ctx, "g1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	goals, _ = repo.List(ctx)
	if len(goals) != 0 {
		t.Fatalf("goal survived delete: %+v", goals)
	}
}

func TestTourFlagsDefaultFalseAndPersist(t *testing.T) {
	db := testDB(t)
	repo := NewTourFlagRepo(db)

	if repo.Flag("tour.today") {
		t.Fatal("unwritten flag should read false")
	}
	if err := repo.SetFlag("tour.today", true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !repo.Flag("tour.today") {
		t.Fatal("flag should read true after set")
	}
	if err := repo.SetFlag("tour.today", false); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if repo.Flag("tour.today") {
		t.Fatal("flag should read false after clear")
	}
}
