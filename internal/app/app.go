// Package app is the root Bubble Tea model: it owns the screen router and
// draws the shared header and footer.
package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/progress"
	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/screens/home"
	"github.com/abhisek/counterline/internal/screens/welcome"
	"github.com/abhisek/counterline/internal/store"
	"github.com/abhisek/counterline/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Scenarios   []scenario.Scenario
	Menu        []scenario.MenuItem
	Tips        []scenario.Tip
	Tracker     *progress.Tracker
	Events      store.EventRepo
	Logger      *slog.Logger
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	tracker *progress.Tracker
	days    int
	width   int
	height  int
}

// newAppModel creates a new AppModel starting on the welcome splash, or on
// the day list when SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(home.Options{
			Scenarios: opts.Scenarios,
			Menu:      opts.Menu,
			Tips:      opts.Tips,
			Tracker:   opts.Tracker,
			Events:    opts.Events,
			Logger:    opts.Logger,
		})
	}

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = homeFactory()
	} else {
		newTrainee := len(opts.Tracker.AllProgress()) == 0
		initial = welcome.New(homeFactory, newTrainee)
	}

	return AppModel{
		router:  router.New(initial),
		tracker: opts.Tracker,
		days:    len(opts.Scenarios),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The splash draws the whole screen.
	if _, ok := active.(*welcome.WelcomeScreen); ok {
		v.SetContent(m.router.View(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(title, m.tracker.CompletedDays(), m.days, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
