package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sproutlabs/sprout/internal/database/repository"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func positive(note string, on time.Time) repository.Event {
	return repository.Event{Kind: repository.EventPositive, Note: note, Points: 1, OccurredAt: on}
}

func needsWork(note string, on time.Time) repository.Event {
	return repository.Event{Kind: repository.EventNeedsWork, Note: note, OccurredAt: on}
}

func TestStreakCountsConsecutiveDays(t *testing.T) {
	now := day("2026-08-23")
	events := []repository.Event{
		positive("shared toys", day("2026-08-23")),
		positive("homework done", day("2026-08-22")),
		positive("helped cook", day("2026-08-21")),
		positive("old one", day("2026-08-18")), // gap on the 19th/20th
	}
	require.Equal(t, 3, Streak(events, now, time.UTC))
}

func TestStreakSurvivesAnUnloggedToday(t *testing.T) {
	now := day("2026-08-23")
	events := []repository.Event{
		positive("homework done", day("2026-08-22")),
		positive("helped cook", day("2026-08-21")),
	}
	require.Equal(t, 2, Streak(events, now, time.UTC))
}

func TestStreakIgnoresNeedsWorkAndEmpty(t *testing.T) {
	now := day("2026-08-23")
	require.Equal(t, 0, Streak(nil, now, time.UTC))
	require.Equal(t, 0, Streak([]repository.Event{
		needsWork("slammed door", day("2026-08-23")),
	}, now, time.UTC))
}

func TestBuildGroupsSimilarNotes(t *testing.T) {
	on := day("2026-08-20")
	events := []repository.Event{
		positive("shared toys with sister", on),
		positive("shared toys with brother", on),
		positive("shared toys with sisters", on),
		needsWork("bedtime fight", on),
		needsWork("bedtime fights", on),
		positive("one-off thing", on),
	}
	svc := &InsightService{MinGroup: 2}
	cards := svc.Build(events)

	require.Len(t, cards, 2)
	require.Equal(t, "shared toys with sister", cards[0].Title)
	require.Equal(t, 3, cards[0].Count)
	require.Contains(t, cards[0].Body, "win")
	require.Equal(t, 2, cards[1].Count)
	require.Contains(t, cards[1].Body, "friction")
}

func TestBuildSkipsBlankNotesAndSingletons(t *testing.T) {
	on := day("2026-08-20")
	events := []repository.Event{
		positive("", on),
		positive("   ", on),
		positive("unique moment", on),
	}
	svc := &InsightService{MinGroup: 2}
	require.Empty(t, svc.Build(events))
}
