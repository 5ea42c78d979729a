// Package welcome is the splash and orientation shown when the game starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const trayArt = `   ╭─────────────╮
   │  ▄▄▄▄▄▄▄▄▄  │
   │ ▐▓▓▓▓▓▓▓▓▓▌ │
   │ ▐░░░░░░░░░▌ │
   │  ▀▀▀▀▀▀▀▀▀  │
 ══╧═════════════╧══`

// steam frames drift above the tray
var steamFrames = []string{"  ~  ~  ~  ", " ~  ~  ~   "}

// briefing explains how orders are answered. It is shown to new trainees.
var briefing = []string{
	"Counter: type the menu ids you hand over, e.g. cheeseburger, fries",
	"Kitchen: type the build steps in order, e.g. bottom_bun, patty, top_bun",
	"Careful guests: read back required options with +, e.g. +no_pickles",
	"Cleaning and complaints: type done when the job is handled",
}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the day list.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	showBriefing bool
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by
// homeFactory. showBriefing adds the how-to-play lines for new trainees.
func New(homeFactory func() screen.Screen, showBriefing bool) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory:  homeFactory,
		showBriefing: showBriefing,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	// Phase 2+: steam above the tray
	if w.elapsed >= phase1End {
		frame := steamFrames[w.tickCount%len(steamFrames)]
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(frame))
	} else {
		sections = append(sections, "")
	}

	// Phase 1+: tray
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Secondary).Render(trayArt))

	// Phase 3+: banner, tagline, briefing
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Welcome to the crew!")
		sections = append(sections, tagline)

		if w.showBriefing {
			sections = append(sections, "")
			for _, line := range briefing {
				sections = append(sections, theme.Body.Render(line))
			}
		}

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to clock in")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
