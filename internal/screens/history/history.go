package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/score"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/store"
	"github.com/abhisek/counterline/internal/ui/layout"
	"github.com/abhisek/counterline/internal/ui/theme"
)

// maxSessions bounds how many finished sessions are listed.
const maxSessions = 50

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

// HistoryScreen lists finished sessions, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	titles    map[string]string // day ID → scenario title
	sessions  []store.SessionEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. scenarios supplies display titles.
func New(eventRepo store.EventRepo, scenarios []scenario.Scenario) *HistoryScreen {
	titles := make(map[string]string, len(scenarios))
	for _, sc := range scenarios {
		titles[sc.ID] = sc.Title
	}
	return &HistoryScreen{
		eventRepo: eventRepo,
		titles:    titles,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		events, err := repo.SessionEvents(context.Background(), store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: finished(events, maxSessions)}
	}
}

// finished keeps end events only, up to limit.
func finished(events []store.SessionEvent, limit int) []store.SessionEvent {
	var out []store.SessionEvent
	for _, e := range events {
		if e.Action != store.ActionEnd {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No shifts worked yet. Clock in from the day list!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, ev := range s.sessions {
		dateStr := ev.Timestamp.Format("Jan 02 15:04")
		title := s.titles[ev.DayID]
		if title == "" {
			title = ev.DayID
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-28s  %3d  %s", prefix, dateStr, title, ev.Score, ev.Grade)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d/%d orders  %d mistakes  ended: %s",
				ev.CompletedOrders, ev.TotalOrders, ev.Mistakes, ev.Reason)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.GradeColor(score.ParseGrade(ev.Grade))).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
