package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/score"
)

// Color palette, warm counter colors on a dark background
var (
	Primary   = lipgloss.Color("#F59E0B") // Amber
	Secondary = lipgloss.Color("#EF4444") // Ketchup red
	Accent    = lipgloss.Color("#FACC15") // Mustard
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#1C1917") // Charcoal
	BgCard    = lipgloss.Color("#292524") // Stone
	Border    = lipgloss.Color("#44403C") // Stone border
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// GradeColor returns the display color for a grade.
func GradeColor(g score.Grade) color.Color {
	switch g {
	case score.GradeS:
		return Accent
	case score.GradeA:
		return Success
	case score.GradeB:
		return Primary
	case score.GradeC:
		return Text
	case score.GradeD:
		return Error
	}
	return TextDim
}

// TimerColor returns the countdown color; it turns red in the last 30
// seconds.
func TimerColor(remainingSeconds int) color.Color {
	switch {
	case remainingSeconds <= 30:
		return Error
	case remainingSeconds <= 60:
		return Accent
	}
	return Text
}
