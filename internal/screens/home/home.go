package home

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/counterline/internal/progress"
	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/screens/history"
	"github.com/abhisek/counterline/internal/screens/play"
	"github.com/abhisek/counterline/internal/screens/tips"
	"github.com/abhisek/counterline/internal/store"
	"github.com/abhisek/counterline/internal/ui/components"
)

// Options holds what the home screen and the screens it opens need.
type Options struct {
	Scenarios []scenario.Scenario // Sorted by day number
	Menu      []scenario.MenuItem
	Tips      []scenario.Tip
	Tracker   *progress.Tracker
	Events    store.EventRepo // nil hides History
	Logger    *slog.Logger
}

// HomeScreen lists the training days and the extra screens.
type HomeScreen struct {
	opts      Options
	tipTitles map[string]string
	menu      components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	titles := make(map[string]string, len(opts.Tips))
	for _, t := range opts.Tips {
		titles[t.ID] = t.Title
	}
	h := &HomeScreen{opts: opts, tipTitles: titles}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

// menuItems builds one entry per day from the tracker's current state,
// followed by the fixed entries.
func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.opts.Scenarios)+3)
	for _, sc := range h.opts.Scenarios {
		sc := sc
		items = append(items, components.MenuItem{
			Label:    fmt.Sprintf("Day %d · %s", sc.DayNumber, sc.Title),
			Detail:   h.dayDetail(sc.ID),
			Disabled: !h.opts.Tracker.IsDayUnlocked(sc.DayNumber),
			Action: func() tea.Cmd {
				next := play.New(play.Options{
					Scenario:  sc,
					Menu:      h.opts.Menu,
					TipTitles: h.tipTitles,
					Reporter:  h.opts.Tracker,
					Events:    h.opts.Events,
					Logger:    h.opts.Logger,
				})
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}

	items = append(items, components.MenuItem{
		Label: "TIPS",
		Action: func() tea.Cmd {
			next := tips.New(h.opts.Tips, h.opts.Tracker)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		},
	})
	if h.opts.Events != nil {
		items = append(items, components.MenuItem{
			Label: "HISTORY",
			Action: func() tea.Cmd {
				next := history.New(h.opts.Events, h.opts.Scenarios)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "CLOCK OUT",
		Action: func() tea.Cmd { return tea.Quit },
	})
	return items
}

// dayDetail shows the best result of a played day.
func (h *HomeScreen) dayDetail(dayID string) string {
	p, ok := h.opts.Tracker.Progress(dayID)
	if !ok {
		return ""
	}
	mark := ""
	if p.Completed {
		mark = " ✔"
	}
	return fmt.Sprintf("[%s %d]%s", p.BestGrade, p.BestScore, mark)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumeMsg); ok {
		// A shift may have changed scores and locks.
		h.menu.SetItems(h.menuItems())
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 90

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(
		h.opts.Tracker.CompletedDays(), len(h.opts.Scenarios),
		h.unlockedTips(), len(h.opts.Tips), cw))
	sections = append(sections, h.menu.View())

	if sc, ok := h.selectedScenario(); ok && !compact {
		sections = append(sections, renderDayCard(sc.Description, sc.LearningGoals, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Day List"
}

func (h *HomeScreen) selectedScenario() (scenario.Scenario, bool) {
	if h.menu.Selected < len(h.opts.Scenarios) {
		return h.opts.Scenarios[h.menu.Selected], true
	}
	return scenario.Scenario{}, false
}

func (h *HomeScreen) unlockedTips() int {
	n := 0
	for _, t := range h.opts.Tips {
		if h.opts.Tracker.IsUnlocked(t.ID) {
			n++
		}
	}
	return n
}
