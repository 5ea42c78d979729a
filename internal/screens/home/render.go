package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/ui/theme"
)

const (
	titleText    = "🍔  C O U N T E R L I N E  🍟"
	subtitleText = "seven days to crew certification"
)

// contentWidth returns the uniform inner width used for all sections.
// All boxes are rendered at this width so they visually align.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return max(20, min(frameWidth-6, 64))
}

// renderTitle returns the styled title block; compact drops the subtitle.
func renderTitle(cw int, compact bool) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(titleText)
	if compact {
		return title
	}
	return title + "\n" + theme.Subtitle.Width(cw).Render(subtitleText)
}

// renderStatsBar renders training progress in a bordered box matching
// content width.
func renderStatsBar(completed, totalDays, tipsUnlocked, totalTips, cw int) string {
	dayStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	tipStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	stats := fmt.Sprintf("%s   %s",
		dayStyle.Render(fmt.Sprintf("✔ %d/%d DAYS", completed, totalDays)),
		tipStyle.Render(fmt.Sprintf("★ %d/%d TIPS", tipsUnlocked, totalTips)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderDayCard describes the selected day.
func renderDayCard(description string, goals []string, cw int) string {
	text := description
	for _, g := range goals {
		text += "\n• " + g
	}
	return theme.Card.Width(cw).Render(theme.Body.Render(text))
}

// renderFrame wraps content in a double-border frame, centering vertically
// and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
