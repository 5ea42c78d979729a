package play

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/judge"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/session"
	"github.com/abhisek/counterline/internal/ui/components"
	"github.com/abhisek/counterline/internal/ui/theme"
)

// renderOrderView renders the stage status line, the customer card, and the
// answer input.
func (s *PlayScreen) renderOrderView(width, height int) string {
	st := s.machine.Status()
	active, ok := st.Current.(session.ActiveOrder)
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Next stage coming up...")
	}

	var b strings.Builder

	remaining := int(st.Remaining.Seconds())
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Stage %d/%d: %s", st.StageIndex+1, st.StageCount, st.Stage.Title))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Order %d/%d  %s %d  %s",
			active.Number,
			len(st.Stage.Orders),
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			st.MistakeCount,
			lipgloss.NewStyle().Foreground(theme.TimerColor(remaining)).Bold(true).Render(session.FormatClock(remaining)),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", s.machine.StageProgress(), false, width-4)
	bar.Fill = theme.Secondary
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	cardWidth := min(width-8, 70)
	card := renderCustomer(active.Order, st.Stage.Kind, cardWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if judge.ModeFor(st.Stage.Kind, active.Order) == judge.ModeItems && len(s.opts.Menu) > 0 && height > 24 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderMenu(s.opts.Menu, cardWidth)))
		b.WriteString("\n\n")
	}

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Serve: " + s.input.View())
	b.WriteString(answerLine)

	return b.String()
}

// renderCustomer renders the order card.
func renderCustomer(o scenario.Order, kind scenario.StageKind, width int) string {
	var b strings.Builder

	b.WriteString(theme.Selected.Render(o.CustomerName))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(moodColor(o.CustomerMood)).Render(moodLabel(o.CustomerMood)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(width - 6).Render("“" + o.RequestText + "”"))

	if judge.ModeFor(kind, o) != judge.ModeAcknowledge && len(o.Items) > 0 {
		b.WriteString("\n")
		for _, it := range o.Items {
			b.WriteString("\n")
			b.WriteString(theme.Body.Render("• " + it.MenuName))
			for _, opt := range it.Options {
				label := "    " + opt.Label
				if opt.IsRequired {
					label += " (confirm: +" + opt.Key + ")"
				}
				b.WriteString("\n")
				b.WriteString(theme.Hint.Render(label))
			}
		}
	}

	return theme.Card.Width(width).Render(b.String())
}

// renderMenu lists the menu IDs the player can hand over.
func renderMenu(menu []scenario.MenuItem, width int) string {
	ids := make([]string, len(menu))
	for i, m := range menu {
		ids[i] = m.ID
	}
	return theme.Hint.Width(width).Render("Menu: " + strings.Join(ids, "  "))
}

func moodLabel(m scenario.CustomerMood) string {
	switch m {
	case scenario.MoodFriendly:
		return "😊 friendly"
	case scenario.MoodHurried:
		return "⏱ hurried"
	case scenario.MoodCareful:
		return "🔍 careful"
	case scenario.MoodAngry:
		return "😠 angry"
	}
	return "🙂 neutral"
}

func moodColor(m scenario.CustomerMood) color.Color {
	switch m {
	case scenario.MoodFriendly:
		return theme.Success
	case scenario.MoodHurried, scenario.MoodCareful:
		return theme.Accent
	case scenario.MoodAngry:
		return theme.Error
	}
	return theme.TextDim
}

// renderFeedback renders the verdict for the last order.
func (s *PlayScreen) renderFeedback(width int) string {
	f := s.feedback

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n")

	if f.verdict.Correct {
		b.WriteString(center(theme.Correct, "Order up!"))
	} else {
		b.WriteString(center(theme.Incorrect, "That's not what they ordered"))
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			"Expected: "+f.expected))
	}
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body,
		fmt.Sprintf("%s satisfaction: %.0f", f.order.CustomerName, f.verdict.Satisfaction)))
	b.WriteString("\n")

	if f.verdict.Violation {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent),
			"Procedure: read back every required option to a careful customer"))
		b.WriteString("\n")
	}

	if f.order.CorrectResponse != "" {
		b.WriteString("\n")
		line := theme.Hint.Width(min(width-8, 70)).Render("Try saying: “" + f.order.CorrectResponse + "”")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Clock out early?"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "The shift is scored with what you served so far."))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, clock out"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
