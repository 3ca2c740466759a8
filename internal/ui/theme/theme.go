// Package theme holds the colours and styles shared by the terminal views.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Info      = lipgloss.Color("#3B82F6") // Blue
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Badge = lipgloss.NewStyle().
		Bold(true).
		Foreground(BgCard).
		Background(Accent).
		Padding(0, 1)
)

// Answer states
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Card frames summary and feedback panels.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// ProgressColor picks the bar colour for a completion fraction in [0, 1]:
// red up to a quarter, then yellow, blue, and green past three quarters.
func ProgressColor(fraction float64) lipgloss.Style {
	c := Error
	switch {
	case fraction > 0.75:
		c = Success
	case fraction > 0.5:
		c = Info
	case fraction > 0.25:
		c = Warning
	}
	return lipgloss.NewStyle().Background(c)
}
