package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sproutlabs/sprout/internal/database"
	"github.com/sproutlabs/sprout/internal/service"
	"github.com/sproutlabs/sprout/internal/tour"
)

// The tab bar and footer are system chrome; the tour card never covers them.
const (
	headerHeight = 1
	footerHeight = 1
)

func (a *App) safeInsets() tour.Insets {
	return tour.Insets{Top: headerHeight, Bottom: footerHeight}
}

// layout recomputes the geometry of every visible tour target and registers
// it. Runs on resize, tab change, and data refresh, so the registry always
// holds rectangles no staler than the last render.
func (a *App) layout() {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	a.targets.Register(tour.TargetTabBar, tour.Rect{X: 0, Y: 0, W: a.width, H: headerHeight})

	bodyTop := headerHeight
	bodyH := a.height - headerHeight - footerHeight

	switch a.tab {
	case TabToday:
		btnW := lipgloss.Width(a.addButton())
		a.targets.Register(tour.TargetAddButton,
			tour.Rect{X: max(0, a.width-btnW-1), Y: bodyTop, W: btnW, H: 1})
		badgeW := lipgloss.Width(a.streakBadge())
		a.targets.Register(tour.TargetStreakBadge,
			tour.Rect{X: max(0, a.width-btnW-badgeW-3), Y: bodyTop, W: badgeW, H: 1})
	case TabKids:
		btnW := lipgloss.Width(a.addButton())
		a.targets.Register(tour.TargetAddButton,
			tour.Rect{X: max(0, a.width-btnW-1), Y: bodyTop, W: btnW, H: 1})
		a.targets.Register(tour.TargetKidsList,
			tour.Rect{X: 0, Y: bodyTop + 1, W: a.width, H: max(1, bodyH-1)})
	case TabGoals:
		btnW := lipgloss.Width(a.addButton())
		a.targets.Register(tour.TargetAddButton,
			tour.Rect{X: max(0, a.width-btnW-1), Y: bodyTop, W: btnW, H: 1})
		a.targets.Register(tour.TargetGoalCard,
			tour.Rect{X: 0, Y: bodyTop + 1, W: min(44, a.width), H: 4})
	case TabInsights:
		a.targets.Register(tour.TargetInsightsFeed,
			tour.Rect{X: 0, Y: bodyTop + 1, W: a.width, H: max(1, bodyH-1)})
	case TabSettings:
		a.targets.Register(tour.TargetSettingsReset,
			tour.Rect{X: 1, Y: bodyTop + 3, W: min(40, a.width), H: 1})
	}
}

// addButton returns the rendered add-action button for the current tab.
func (a *App) addButton() string {
	switch a.tab {
	case TabToday:
		return buttonStyle.Render("a · log a moment")
	case TabKids:
		return buttonStyle.Render("a · add a kid")
	case TabGoals:
		return buttonStyle.Render("a · new goal")
	}
	return ""
}

// streakBadge renders the current positive-day streak.
func (a *App) streakBadge() string {
	n := service.Streak(a.events, database.Now(), a.tz)
	if n == 0 {
		return badgeStyle.Render("no streak yet")
	}
	return badgeStyle.Render(fmt.Sprintf("🔥 %d day streak", n))
}
