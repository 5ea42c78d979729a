package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testItems(disabled ...int) []MenuItem {
	items := []MenuItem{{Label: "Day 1"}, {Label: "Day 2"}, {Label: "Day 3"}, {Label: "Tips"}}
	for _, i := range disabled {
		items[i].Disabled = true
	}
	return items
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu(testItems(1, 2))

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestMenu_DisabledActionNotRun(t *testing.T) {
	ran := false
	items := testItems()
	items[0].Disabled = true
	items[0].Action = func() tea.Cmd { ran = true; return nil }
	m := Menu{Items: items}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran {
		t.Error("disabled item action should not run")
	}
}

func TestMenu_SetItemsKeepsCursor(t *testing.T) {
	m := NewMenu(testItems(2))
	m.Selected = 3

	m.SetItems(testItems())
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}

	m.Selected = 2
	m.SetItems(testItems(2))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1 after its item was disabled", m.Selected)
	}
}

func TestMenu_ViewShowsLockAndDetail(t *testing.T) {
	items := testItems(1)
	items[0].Detail = "[A 88]"
	view := NewMenu(items).View()

	if !strings.Contains(view, "Day 1  [A 88]") {
		t.Error("expected detail next to label")
	}
	if !strings.Contains(view, "🔒 Day 2") {
		t.Error("expected lock on disabled item")
	}
}
