package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sproutlabs/sprout/internal/config"
	"github.com/sproutlabs/sprout/internal/database"
	"github.com/sproutlabs/sprout/internal/database/repository"
	"github.com/sproutlabs/sprout/internal/prefs"
)

type keyMap struct {
	Quit      key.Binding
	NextTab   key.Binding
	Add       key.Binding
	NeedsWork key.Binding
	UpDown    key.Binding
	TourNext  key.Binding
	TourSkip  key.Binding
	TourOff   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		NeedsWork: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "needs work")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "select")),
		TourNext:  key.NewBinding(key.WithKeys("enter", "n", " "), key.WithHelp("enter", "next")),
		TourSkip:  key.NewBinding(key.WithKeys("s", "esc"), key.WithHelp("s", "skip tour")),
		TourOff:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "skip all tours")),
	}
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.input != inputNone {
		return a.handleInputKey(m)
	}

	// The visible tour card captures its own keys first.
	if _, active := a.tour.ActiveSequence(); active {
		switch {
		case key.Matches(m, a.keys.TourNext):
			a.tour.Next()
			return a, nil
		case key.Matches(m, a.keys.TourOff):
			a.tour.SkipAll()
			return a, nil
		case key.Matches(m, a.keys.TourSkip):
			a.tour.Skip()
			return a, nil
		}
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		a.quitting = true
		_ = prefs.SaveUIState(prefs.UIState{LastTab: string(a.tab), Bell: a.bell})
		return a, tea.Quit
	case key.Matches(m, a.keys.NextTab):
		for i, t := range tabOrder {
			if t == a.tab {
				a.switchTab(tabOrder[(i+1)%len(tabOrder)])
				break
			}
		}
		return a, nil
	}

	switch m.String() {
	case "1", "2", "3", "4", "5":
		idx := int(m.String()[0] - '1')
		a.switchTab(tabOrder[idx])
		return a, nil
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "a":
		a.beginAdd()
	case "x":
		if a.tab == TabToday && len(a.kids) > 0 {
			a.input = inputWorkNote
			a.inputBuffer = ""
		}
	case "d":
		if a.tab == TabKids && len(a.kids) > 0 {
			kid := a.kids[a.kidCursor]
			return a, tea.Sequence(a.removeKid(kid), a.refresh())
		}
	case "b":
		if a.tab == TabSettings {
			a.bell = !a.bell
			a.cfg.UI.Bell = a.bell
			a.status = "bell " + onOff(a.bell)
			a.statusErr = false
			if err := config.Save(a.cfg); err != nil {
				a.status = "error: " + err.Error()
				a.statusErr = true
			}
		}
	case "r":
		if a.tab == TabSettings {
			a.tour.Reset()
			a.status = "tours reset, they will play again"
		}
	}
	return a, nil
}

func (a *App) switchTab(tab Tab) {
	a.tab = tab
	a.status = ""
	a.layout()
	if seq, ok := sequenceFor(tab); ok && a.cfg.Tour.Enabled {
		a.tour.StartIfNeeded(seq)
	}
}

func (a *App) moveCursor(delta int) {
	switch a.tab {
	case TabToday, TabKids:
		a.kidCursor = clampCursor(a.kidCursor+delta, len(a.kids))
	case TabGoals:
		a.goalCursor = clampCursor(a.goalCursor+delta, len(a.goals))
	}
}

func clampCursor(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (a *App) beginAdd() {
	switch a.tab {
	case TabToday:
		if len(a.kids) == 0 {
			a.status = "add a kid first (tab 2)"
			return
		}
		a.input = inputGoodNote
	case TabKids:
		a.input = inputKidName
	case TabGoals:
		if len(a.kids) == 0 {
			a.status = "add a kid first (tab 2)"
			return
		}
		a.input = inputGoal
	default:
		return
	}
	a.inputBuffer = ""
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.input = inputNone
		a.inputBuffer = ""
		return a, nil
	case tea.KeyEnter:
		return a.commitInput()
	case tea.KeyBackspace:
		if len(a.inputBuffer) > 0 {
			runes := []rune(a.inputBuffer)
			a.inputBuffer = string(runes[:len(runes)-1])
		}
		return a, nil
	case tea.KeyRunes, tea.KeySpace:
		a.inputBuffer += string(m.Runes)
		if m.Type == tea.KeySpace {
			a.inputBuffer += " "
		}
		return a, nil
	}
	return a, nil
}

func (a *App) commitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.inputBuffer)
	mode := a.input
	a.input = inputNone
	a.inputBuffer = ""
	if text == "" {
		return a, nil
	}
	now := database.Now()
	switch mode {
	case inputKidName:
		kid := repository.Kid{ID: uuid.NewString(), Name: text, Emoji: "🙂", CreatedAt: now}
		return a, tea.Sequence(func() tea.Msg {
			if err := a.repos.Kids.Upsert(a.ctx, kid); err != nil {
				return errMsg{err}
			}
			return statusMsg("added " + kid.Name)
		}, a.loadKids())
	case inputGoodNote, inputWorkNote:
		kid := a.kids[a.kidCursor]
		kind, points := repository.EventPositive, 1
		if mode == inputWorkNote {
			kind, points = repository.EventNeedsWork, 0
		}
		ev := repository.Event{
			ID: uuid.NewString(), KidID: kid.ID, Kind: kind,
			Note: text, Points: points, OccurredAt: now, CreatedAt: now,
		}
		return a, tea.Sequence(func() tea.Msg {
			if err := a.repos.Events.Insert(a.ctx, ev); err != nil {
				return errMsg{err}
			}
			return statusMsg("logged for " + kid.Name)
		}, a.loadEvents())
	case inputGoal:
		kid := a.kids[a.kidCursor]
		goal := repository.Goal{
			ID: uuid.NewString(), KidID: kid.ID, Title: text,
			TargetPoints: 20, CreatedAt: now,
		}
		return a, tea.Sequence(func() tea.Msg {
			if err := a.repos.Goals.Upsert(a.ctx, goal); err != nil {
				return errMsg{err}
			}
			return statusMsg("goal set for " + kid.Name)
		}, a.loadGoals())
	}
	return a, nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
