// Package tips shows the tip cards a trainee has unlocked, grouped by
// category. Locked cards show how to earn them.
package tips

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/ui/layout"
	"github.com/abhisek/counterline/internal/ui/theme"
)

// Unlocker reports whether a content ID has been unlocked.
type Unlocker interface {
	IsUnlocked(contentID string) bool
}

// TipsScreen displays the tip collection.
type TipsScreen struct {
	tips         []scenario.Tip
	unlocked     Unlocker
	categories   []string
	selectedCat  int
	scrollOffset int
}

var _ screen.Screen = (*TipsScreen)(nil)
var _ screen.KeyHintProvider = (*TipsScreen)(nil)

// New creates a new TipsScreen.
func New(tips []scenario.Tip, unlocked Unlocker) *TipsScreen {
	return &TipsScreen{
		tips:       tips,
		unlocked:   unlocked,
		categories: categories(tips),
	}
}

// categories returns the distinct tip categories, sorted.
func categories(tips []scenario.Tip) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tips {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

func (s *TipsScreen) Init() tea.Cmd {
	return nil
}

func (s *TipsScreen) Title() string {
	return "Tips"
}

func (s *TipsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch category"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TipsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		if len(s.categories) > 0 {
			s.selectedCat = (s.selectedCat + 1) % len(s.categories)
			s.scrollOffset = 0
		}
	case "shift+tab":
		if len(s.categories) > 0 {
			s.selectedCat = (s.selectedCat - 1 + len(s.categories)) % len(s.categories)
			s.scrollOffset = 0
		}
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.filteredTips())-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *TipsScreen) View(width, height int) string {
	if len(s.tips) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No tips in this training set")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d/%d tips\n", s.unlockedCount(), len(s.tips))))
	b.WriteString("\n")

	var tabs []string
	for i, c := range s.categories {
		label := fmt.Sprintf("%s (%d)", c, s.countByCategory(c))
		if i == s.selectedCat {
			tabs = append(tabs, theme.Selected.Render(label))
		} else {
			tabs = append(tabs, theme.Locked.Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	cardWidth := min(width-8, 64)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cardWidth))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filteredTips()
	maxVisible := max((height-10)/4, 1)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, tip := range filtered[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTip(tip, cardWidth)))
		b.WriteString("\n\n")
	}

	if end < len(filtered) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *TipsScreen) renderTip(tip scenario.Tip, width int) string {
	if !s.unlocked.IsUnlocked(tip.ID) {
		return theme.Locked.Width(width).Render(
			fmt.Sprintf("🔒 %s\n   %s", tip.Title, tip.UnlockCondition))
	}
	title := theme.Selected.Render(tip.Title)
	body := theme.Body.Width(width - 3).Render(tip.Body)
	by := ""
	if tip.Author != "" {
		by = "\n" + theme.Hint.Render("— "+tip.Author)
	}
	return lipgloss.NewStyle().Width(width).Render(title + "\n" + body + by)
}

func (s *TipsScreen) filteredTips() []scenario.Tip {
	if len(s.categories) == 0 {
		return nil
	}
	cat := s.categories[s.selectedCat]
	var out []scenario.Tip
	for _, t := range s.tips {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

func (s *TipsScreen) countByCategory(cat string) int {
	n := 0
	for _, t := range s.tips {
		if t.Category == cat && s.unlocked.IsUnlocked(t.ID) {
			n++
		}
	}
	return n
}

func (s *TipsScreen) unlockedCount() int {
	n := 0
	for _, t := range s.tips {
		if s.unlocked.IsUnlocked(t.ID) {
			n++
		}
	}
	return n
}
