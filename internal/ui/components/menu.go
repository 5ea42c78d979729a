package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Detail   string // Right-hand annotation, e.g. a best grade
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Disabled items are shown but skipped
// by the cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// SetItems replaces the items and keeps the cursor on an enabled item near
// its previous position.
func (m *Menu) SetItems(items []MenuItem) {
	prev := m.Selected
	m.Items = items
	if prev >= 0 && prev < len(items) && !items[prev].Disabled {
		return
	}
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Disabled && i <= prev {
			m.Selected = i
			return
		}
	}
	*m = NewMenu(items)
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		label := item.Label
		if item.Detail != "" {
			label += "  " + item.Detail
		}
		switch {
		case i == m.Selected:
			s += theme.Selected.Render("  ▸ "+label) + "\n"
		case item.Disabled:
			s += theme.Locked.Render("  🔒 "+label) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render("    "+label) + "\n"
		}
	}
	return s
}
