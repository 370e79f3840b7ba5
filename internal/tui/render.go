package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sproutlabs/sprout/internal/database"
	"github.com/sproutlabs/sprout/internal/database/repository"
	"github.com/sproutlabs/sprout/internal/tour"
)

func (a *App) View() string {
	if a.quitting || a.width <= 0 || a.height <= 0 {
		return ""
	}
	var body string
	switch a.tab {
	case TabKids:
		body = a.renderKids()
	case TabGoals:
		body = a.renderGoals()
	case TabInsights:
		body = a.renderInsights()
	case TabSettings:
		body = a.renderSettings()
	default:
		body = a.renderToday()
	}
	frame := a.renderTabBar() + "\n" +
		fitHeight(body, a.height-headerHeight-footerHeight) + "\n" +
		a.renderFooter()

	if step, ok := a.tour.CurrentStep(); ok {
		frame = a.overlayTourCard(frame, step)
	}
	return frame
}

// overlayTourCard places the coach-mark card next to the step's target and
// composites it over the rendered frame.
func (a *App) overlayTourCard(frame string, step tour.Step) string {
	card := a.renderCard(step)
	size := tour.Size{W: lipgloss.Width(card), H: lipgloss.Height(card)}
	rect, found := a.targets.Lookup(step.Target)
	pl := tour.Place(rect, found, tour.Size{W: a.width, H: a.height}, a.safeInsets(), size)
	return overlayCard(frame, card, pl.TopLeft(size), a.width)
}

func (a *App) renderCard(step tour.Step) string {
	idx, total := a.tour.Progress()
	title := step.Title
	if step.Icon != "" {
		title = step.Icon + " " + title
	}
	msg := lipgloss.NewStyle().Width(30).Foreground(colorText).Render(step.Message)
	hint := mutedStyle.Render(fmt.Sprintf("%d of %d · enter next · s skip", idx+1, total))
	return cardStyle.Render(titleStyle.Render(title) + "\n" + msg + "\n" + hint)
}

func (a *App) renderTabBar() string {
	parts := make([]string, 0, len(tabOrder)+1)
	parts = append(parts, titleStyle.Render(" sprout "))
	for i, t := range tabOrder {
		label := fmt.Sprintf("%d %s", i+1, tabTitles[t])
		if t == a.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return clip(strings.Join(parts, " "), a.width)
}

// row lays out left- and right-aligned fragments on one line.
func row(left, right string, width int) string {
	lw := lipgloss.Width(left)
	rw := lipgloss.Width(right)
	gap := width - lw - rw - 1
	if gap < 1 {
		return clip(left+" "+right, width)
	}
	return left + strings.Repeat(" ", gap) + right + " "
}

func (a *App) renderToday() string {
	now := database.Now().In(a.tz)
	title := titleStyle.Render("Today · " + now.Format(a.cfg.UI.DateFormat))
	head := row(title, a.streakBadge()+"  "+a.addButton(), a.width)

	var b strings.Builder
	b.WriteString(head + "\n")
	if len(a.kids) == 0 {
		b.WriteString("\n" + mutedStyle.Render("  No kids yet. Press 2 then a to add one."))
		return b.String()
	}
	b.WriteString(mutedStyle.Render("  logging for: ") + a.kidLine(a.kidCursor) + "\n\n")
	today := now.Format("2006-01-02")
	count := 0
	for _, e := range a.events {
		if e.OccurredAt.In(a.tz).Format("2006-01-02") != today {
			continue
		}
		b.WriteString("  " + a.eventLine(e) + "\n")
		count++
	}
	if count == 0 {
		b.WriteString(mutedStyle.Render("  Nothing logged today. Press a when something happens."))
	}
	return b.String()
}

func (a *App) kidLine(idx int) string {
	if idx >= len(a.kids) {
		return ""
	}
	k := a.kids[idx]
	return k.Emoji + " " + k.Name
}

func (a *App) eventLine(e repository.Event) string {
	name := e.KidID
	for _, k := range a.kids {
		if k.ID == e.KidID {
			name = k.Emoji + " " + k.Name
			break
		}
	}
	mark := goodStyle.Render("✓")
	if e.Kind == repository.EventNeedsWork {
		mark = warnStyle.Render("✗")
	}
	return fmt.Sprintf("%s %s  %s", mark, name, e.Note)
}

func (a *App) renderKids() string {
	head := row(titleStyle.Render("Your crew"), a.addButton(), a.width)
	var rows []string
	for i, k := range a.kids {
		cursor := "  "
		if i == a.kidCursor {
			cursor = keyStyle.Render("> ")
		}
		rows = append(rows, fmt.Sprintf("%s%s %s  %s", cursor, k.Emoji, k.Name,
			mutedStyle.Render(fmt.Sprintf("%d pts this week", a.points[k.ID]))))
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("  Nobody here yet. Press a to add a kid."))
	} else {
		rows = append(rows, "", mutedStyle.Render("  d removes the selected kid"))
	}
	return head + "\n" + strings.Join(rows, "\n")
}

func (a *App) renderGoals() string {
	head := row(titleStyle.Render("Goals"), a.addButton(), a.width)
	var b strings.Builder
	b.WriteString(head + "\n")
	if len(a.goals) == 0 {
		b.WriteString(paneStyle.Width(min(42, a.width-2)).Render(
			mutedStyle.Render("No goals yet. Press a to set a points target for the selected kid.")))
		return b.String()
	}
	for i, g := range a.goals {
		pts := a.points[g.KidID]
		bar := progressBar(pts, g.TargetPoints, 20)
		style := paneStyle
		if i == a.goalCursor {
			style = style.BorderForeground(colorAccent)
		}
		b.WriteString(style.Width(min(42, a.width-2)).Render(
			fmt.Sprintf("%s\n%s %d/%d", g.Title, bar, pts, g.TargetPoints)) + "\n")
	}
	return b.String()
}

func progressBar(have, want, width int) string {
	if want <= 0 {
		want = 1
	}
	filled := have * width / want
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return goodStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

func (a *App) renderInsights() string {
	head := titleStyle.Render("Patterns from your notes")
	if len(a.cards) == 0 {
		return head + "\n" + mutedStyle.Render("  Not enough notes yet. Patterns appear after a few similar moments.")
	}
	var rows []string
	for _, c := range a.cards {
		rows = append(rows, fmt.Sprintf("  %s %s\n    %s",
			badgeStyle.Render(fmt.Sprintf("×%d", c.Count)), c.Title, mutedStyle.Render(c.Body)))
	}
	return head + "\n" + strings.Join(rows, "\n")
}

func (a *App) renderSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")
	b.WriteString(fmt.Sprintf(" %s bell feedback: %s\n", keyStyle.Render("b"), onOff(a.bell)))
	b.WriteString(fmt.Sprintf(" %s replay the guided tours\n", keyStyle.Render("r")))
	b.WriteString("\n" + mutedStyle.Render(" Tours play once per screen. Replaying clears that memory."))
	return b.String()
}

func (a *App) renderFooter() string {
	if a.input != inputNone {
		prompt := map[inputMode]string{
			inputKidName:  "kid name",
			inputGoodNote: "what went well",
			inputWorkNote: "what needs work",
			inputGoal:     "goal title",
		}[a.input]
		return clip(fmt.Sprintf(" %s: %s▌  %s", prompt, a.inputBuffer,
			mutedStyle.Render("enter save · esc cancel")), a.width)
	}
	hints := footerStyle.Render("1-5 tabs · a add · q quit")
	status := a.status
	if a.statusErr {
		status = errorStyle.Render(status)
	} else if status != "" {
		status = goodStyle.Render(status)
	}
	return clip(row(" "+hints, status, a.width), a.width)
}

func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// fitHeight pads or truncates s to exactly n lines.
func fitHeight(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
