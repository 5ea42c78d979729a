package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/score"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/session"
	"github.com/abhisek/counterline/internal/ui/components"
	"github.com/abhisek/counterline/internal/ui/layout"
	"github.com/abhisek/counterline/internal/ui/theme"
)

// SummaryScreen displays the result of a finished shift.
type SummaryScreen struct {
	summary *session.Summary
	notice  string // shown when the result could not be saved
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. reportErr is the machine's report
// failure, if any.
func New(summary *session.Summary, reportErr error) *SummaryScreen {
	s := &SummaryScreen{summary: summary}
	if reportErr != nil {
		s.notice = "Progress could not be saved: " + reportErr.Error()
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Shift Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Day list"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title, headline(sum)))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle, sum.Title))
	b.WriteString("\n\n")

	grade := lipgloss.NewStyle().Foreground(theme.GradeColor(sum.Grade)).Bold(true)
	b.WriteString(center(grade, fmt.Sprintf("%d  ·  %s", sum.Total, sum.Grade)))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint, fmt.Sprintf("required %d", sum.RequiredScore)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Orders: %d/%d        Correct: %d        Avg: %s        Time: %s",
		sum.CompletedOrders, sum.TotalOrders, sum.CorrectOrders,
		session.FormatClock(int(sum.AverageTime.Seconds())),
		session.FormatClock(int(sum.Duration.Seconds())))
	b.WriteString(center(theme.Body, statsLine))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	bars := []struct {
		label      string
		value, max float64
	}{
		{"Accuracy    ", sum.Score.Accuracy, score.MaxAccuracy},
		{"Speed       ", sum.Score.Speed, score.MaxSpeed},
		{"Satisfaction", sum.Score.Satisfaction, score.MaxSatisfaction},
		{"Compliance  ", sum.Score.Compliance, score.MaxCompliance},
	}
	for _, bar := range bars {
		pb := components.NewProgressBar(bar.label, bar.value/bar.max, true, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, pb.View()))
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))

	if len(sum.Mistakes) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Locked.Render(fmt.Sprintf("Mistakes (-%d pts)", sum.DeductedPoints))))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, m := range sum.Mistakes {
			line := fmt.Sprintf("  #%d  %-44s  -%d", m.OrderNumber, m.Description, m.DeductedPoints)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
	}

	if len(sum.UnlockedTips) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Locked.Render("Unlocked")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, tip := range sum.UnlockedTips {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Accent).Render("  ★ "+tip)))
			b.WriteString("\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), s.notice))
	}

	return b.String()
}

func headline(sum *session.Summary) string {
	switch {
	case sum.Reason == session.ReasonTimeout:
		return "Time's up!"
	case sum.Passed:
		return "Shift complete!"
	case sum.Reason == session.ReasonQuit:
		return "Clocked out early"
	}
	return "Shift over"
}
