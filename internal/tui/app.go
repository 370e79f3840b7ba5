// Package tui hosts the terminal UI: tabs, layout, and the guided-tour
// overlay. The layout pass registers every visible tour target so the
// placement engine always has a fresh rectangle to aim at.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sproutlabs/sprout/internal/config"
	"github.com/sproutlabs/sprout/internal/database"
	"github.com/sproutlabs/sprout/internal/database/repository"
	"github.com/sproutlabs/sprout/internal/prefs"
	"github.com/sproutlabs/sprout/internal/service"
	"github.com/sproutlabs/sprout/internal/tour"
)

// Tab identifies one top-level view.
type Tab string

const (
	TabToday    Tab = "today"
	TabKids     Tab = "kids"
	TabGoals    Tab = "goals"
	TabInsights Tab = "insights"
	TabSettings Tab = "settings"
)

var tabOrder = []Tab{TabToday, TabKids, TabGoals, TabInsights, TabSettings}

var tabTitles = map[Tab]string{
	TabToday:    "Today",
	TabKids:     "Kids",
	TabGoals:    "Goals",
	TabInsights: "Insights",
	TabSettings: "Settings",
}

// sequenceFor maps a tab to its tour sequence. Settings has no tour.
func sequenceFor(tab Tab) (tour.SequenceID, bool) {
	switch tab {
	case TabToday:
		return tour.SequenceToday, true
	case TabKids:
		return tour.SequenceKids, true
	case TabGoals:
		return tour.SequenceGoals, true
	case TabInsights:
		return tour.SequenceInsights, true
	}
	return "", false
}

// Repos bundles data access for the App.
type Repos struct {
	Kids   *repository.KidRepo
	Events *repository.EventRepo
	Goals  *repository.GoalRepo
}

type inputMode string

const (
	inputNone     inputMode = ""
	inputKidName  inputMode = "kidName"
	inputGoodNote inputMode = "goodNote"
	inputWorkNote inputMode = "workNote"
	inputGoal     inputMode = "goalTitle"
)

// App is the root bubbletea model.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	insights *service.InsightService
	tour     *tour.Manager
	targets  *tour.Registry
	catalog  tour.Catalog
	logger   *zap.Logger
	tz       *time.Location
	keys     keyMap

	width  int
	height int
	tab    Tab

	kids   []repository.Kid
	events []repository.Event
	goals  []repository.Goal
	cards  []service.Insight
	points map[string]int

	kidCursor  int
	goalCursor int

	input       inputMode
	inputBuffer string

	status    string
	statusErr bool
	bell      bool
	quitting  bool
}

// Messages flowing back from commands.
type (
	kidsMsg     []repository.Kid
	eventsMsg   []repository.Event
	goalsMsg    []repository.Goal
	insightsMsg []service.Insight
	pointsMsg   map[string]int
	statusMsg   string
	errMsg      struct{ err error }
)

func (e errMsg) Error() string { return e.err.Error() }

// TourChangedMsg tells the App a deferred tour start fired.
type TourChangedMsg struct{}

// TourFeedbackMsg carries the acknowledgment signal for a tour transition.
type TourFeedbackMsg struct {
	Kind tour.Kind
}

// New builds the App. The tour manager and registry are created by the
// caller so main can wire the notifier to the running program.
func New(ctx context.Context, cfg config.Config, repos Repos, mgr *tour.Manager, targets *tour.Registry, catalog tour.Catalog, logger *zap.Logger, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	state, _ := prefs.LoadUIState()
	tab := Tab(state.LastTab)
	if _, ok := tabTitles[tab]; !ok {
		tab = TabToday
	}
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		repos:    repos,
		insights: &service.InsightService{MinGroup: 2},
		tour:     mgr,
		targets:  targets,
		catalog:  catalog,
		logger:   logger,
		tz:       tz,
		keys:     newKeyMap(),
		tab:      tab,
		points:   map[string]int{},
		bell:     state.Bell && cfg.UI.Bell,
		width:    100,
		height:   32,
	}
}

func (a *App) Init() tea.Cmd {
	if seq, ok := sequenceFor(a.tab); ok && a.cfg.Tour.Enabled {
		a.tour.StartIfNeeded(seq)
	}
	return a.refresh()
}

func (a *App) refresh() tea.Cmd {
	return tea.Batch(a.loadKids(), a.loadEvents(), a.loadGoals())
}

func (a *App) loadKids() tea.Cmd {
	return func() tea.Msg {
		kids, err := a.repos.Kids.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return kidsMsg(kids)
	}
}

func (a *App) loadEvents() tea.Cmd {
	return func() tea.Msg {
		since := database.Now().AddDate(0, 0, -30)
		events, err := a.repos.Events.ListSince(a.ctx, since)
		if err != nil {
			return errMsg{err}
		}
		return eventsMsg(events)
	}
}

func (a *App) loadGoals() tea.Cmd {
	return func() tea.Msg {
		goals, err := a.repos.Goals.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return goalsMsg(goals)
	}
}

func (a *App) loadPoints() tea.Cmd {
	kids := a.kids
	return func() tea.Msg {
		out := make(map[string]int, len(kids))
		weekStart := startOfWeek(database.Now().In(a.tz))
		for _, k := range kids {
			pts, err := a.repos.Events.PointsForKid(a.ctx, k.ID, weekStart)
			if err != nil {
				return errMsg{err}
			}
			out[k.ID] = pts
		}
		return pointsMsg(out)
	}
}

// removeKid deletes a kid and everything logged for them.
func (a *App) removeKid(kid repository.Kid) tea.Cmd {
	return func() tea.Msg {
		moments, err := a.repos.Events.ListForKid(a.ctx, kid.ID)
		if err != nil {
			return errMsg{err}
		}
		if err := a.repos.Kids.Delete(a.ctx, kid.ID); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("removed %s and %d moments", kid.Name, len(moments)))
	}
}

func (a *App) buildInsights() tea.Cmd {
	events := a.events
	return func() tea.Msg {
		return insightsMsg(a.insights.Build(events))
	}
}

func startOfWeek(t time.Time) time.Time {
	weekday := (int(t.Weekday()) + 6) % 7 // Monday = 0
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -weekday)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.layout()

	case tea.KeyMsg:
		return a.handleKey(m)

	case TourChangedMsg:
		// Deferred start fired; the next render shows the card.

	case TourFeedbackMsg:
		a.flash(m.Kind)
		if a.bell {
			return a, ringBell
		}

	case kidsMsg:
		a.kids = []repository.Kid(m)
		if a.kidCursor >= len(a.kids) {
			a.kidCursor = 0
		}
		a.layout()
		return a, a.loadPoints()
	case eventsMsg:
		a.events = []repository.Event(m)
		a.layout()
		return a, a.buildInsights()
	case goalsMsg:
		a.goals = []repository.Goal(m)
		if a.goalCursor >= len(a.goals) {
			a.goalCursor = 0
		}
		a.layout()
	case insightsMsg:
		a.cards = []service.Insight(m)
		a.layout()
	case pointsMsg:
		a.points = map[string]int(m)
	case statusMsg:
		a.status = string(m)
		a.statusErr = false
	case errMsg:
		a.status = "error: " + m.Error()
		a.statusErr = true
		if a.logger != nil {
			a.logger.Error("ui error", zap.Error(m.err))
		}
	}
	return a, nil
}

// ringBell runs as a command so the write is sequenced by the program
// instead of landing in the middle of a renderer frame.
func ringBell() tea.Msg {
	fmt.Print("\a")
	return nil
}

func (a *App) flash(kind tour.Kind) {
	switch kind {
	case tour.KindCompletion:
		a.status = "tour complete"
	case tour.KindSkip:
		a.status = "tour dismissed"
	default:
		a.status = ""
	}
	a.statusErr = false
}
