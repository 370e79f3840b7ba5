package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cad3f5"
	colorMuted   lipgloss.Color = "#8087a2"
	colorBorder  lipgloss.Color = "#494d64"
	colorAccent  lipgloss.Color = "#8aadf4"
	colorGood    lipgloss.Color = "#a6da95"
	colorWarn    lipgloss.Color = "#eed49f"
	colorError   lipgloss.Color = "#ed8796"
	colorSurface lipgloss.Color = "#363a4f"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	goodStyle   = lipgloss.NewStyle().Foreground(colorGood)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	badgeStyle  = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	buttonStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
