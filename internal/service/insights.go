// Package service derives the read-side views the tabs render: streaks,
// goal progress, and recurring-theme insight cards.
package service

import (
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/sproutlabs/sprout/internal/database/repository"
)

// Insight is one card on the insights feed.
type Insight struct {
	Title string
	Body  string
	Count int
}

// InsightService groups logged events into patterns worth surfacing.
type InsightService struct {
	// MinGroup is the smallest recurring group worth a card.
	MinGroup int
}

// Streak counts consecutive days ending at today (in loc) with at least one
// positive event. Today itself is optional: an unbroken run through yesterday
// still counts.
func Streak(events []repository.Event, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	days := make(map[string]bool)
	for _, e := range events {
		if e.Kind == repository.EventPositive {
			days[e.OccurredAt.In(loc).Format("2006-01-02")] = true
		}
	}
	day := now.In(loc)
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Build groups events whose notes read as the same theme and returns one card
// per recurring theme, biggest group first.
func (s *InsightService) Build(events []repository.Event) []Insight {
	minGroup := s.MinGroup
	if minGroup < 2 {
		minGroup = 2
	}
	var groups [][]repository.Event
	for _, e := range events {
		if strings.TrimSpace(e.Note) == "" {
			continue
		}
		placed := false
		for i, g := range groups {
			if similarNotes(g[0].Note, e.Note) {
				groups[i] = append(groups[i], e)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []repository.Event{e})
		}
	}
	var out []Insight
	for _, g := range groups {
		if len(g) < minGroup {
			continue
		}
		pos := 0
		for _, e := range g {
			if e.Kind == repository.EventPositive {
				pos++
			}
		}
		card := Insight{Title: strings.TrimSpace(g[0].Note), Count: len(g)}
		switch {
		case pos == len(g):
			card.Body = "Keeps showing up as a win. Worth celebrating out loud."
		case pos == 0:
			card.Body = "A recurring friction point. A goal here might help."
		default:
			card.Body = "Shows up both ways. Watch what changes the outcome."
		}
		out = append(out, card)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// similarNotes treats two notes as the same theme when their edit distance is
// under 40% of the longer note.
func similarNotes(a, b string) bool {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxlen := len(a)
	if len(b) > maxlen {
		maxlen = len(b)
	}
	return float64(dist)/float64(maxlen) < 0.4
}
