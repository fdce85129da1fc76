package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pickerNodes() []NodeEntry {
	return []NodeEntry{
		{Name: "alpha", Links: 2},
		{Name: "beta", Links: 1},
		{Name: "gamma", Links: 3},
		{Name: "alphabet", Links: 1},
	}
}

func press(t *testing.T, m NodePickerModel, msgs ...tea.Msg) (NodePickerModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(NodePickerModel)
	}
	return m, cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNodePickerSelectsSourceThenDest(t *testing.T) {
	m := NewNodePickerModel(pickerNodes())

	m, cmd := press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	if m.Source != "beta" {
		t.Fatalf("Source = %q, want beta", m.Source)
	}
	if cmd != nil {
		t.Error("selecting the source should not quit")
	}
	if m.Cursor != 0 {
		t.Errorf("cursor should reset after choosing the source, got %d", m.Cursor)
	}

	m, cmd = press(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyEnter))
	if m.Dest != "gamma" {
		t.Fatalf("Dest = %q, want gamma", m.Dest)
	}
	if !m.Done() {
		t.Error("Done() should be true after both selections")
	}
	if cmd == nil {
		t.Error("selecting the destination should quit")
	}
}

func TestNodePickerFilter(t *testing.T) {
	m := NewNodePickerModel(pickerNodes())

	m, _ = press(t, m, typed("alp"))
	if len(m.matches) != 2 {
		t.Fatalf("filter alp matched %d nodes, want 2", len(m.matches))
	}

	m, _ = press(t, m, typed("hab"), key(tea.KeyEnter))
	if m.Source != "alphabet" {
		t.Errorf("Source = %q, want alphabet", m.Source)
	}
	if m.Filter != "" {
		t.Errorf("filter should clear after choosing the source, got %q", m.Filter)
	}

	m, _ = press(t, m, typed("zz"), key(tea.KeyBackspace), key(tea.KeyBackspace))
	if len(m.matches) != len(m.Nodes) {
		t.Errorf("cleared filter matched %d nodes, want %d", len(m.matches), len(m.Nodes))
	}
}

func TestNodePickerEnterWithoutMatches(t *testing.T) {
	m := NewNodePickerModel(pickerNodes())

	m, cmd := press(t, m, typed("zzz"), key(tea.KeyEnter))
	if m.Source != "" || cmd != nil {
		t.Errorf("enter with no matches should do nothing, Source = %q", m.Source)
	}
}

func TestNodePickerCursorBounds(t *testing.T) {
	m := NewNodePickerModel(pickerNodes())

	m, _ = press(t, m, key(tea.KeyUp))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the list: %d", m.Cursor)
	}

	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor)
	}
}

func TestNodePickerScrolls(t *testing.T) {
	m := NewNodePickerModel(pickerNodes())
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}
	m.Height = 2

	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyDown))
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	m, _ = press(t, m, key(tea.KeyUp), key(tea.KeyUp))
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0", m.Offset)
	}
}

func TestNodePickerAbort(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := NewNodePickerModel(pickerNodes())
		m, cmd := press(t, m, key(k))
		if !m.Aborted || cmd == nil {
			t.Errorf("key %v should abort and quit", k)
		}
		if m.Done() {
			t.Errorf("key %v: Done() should be false", k)
		}
	}
}

func TestNodePickerView(t *testing.T) {
	m := NewNodePickerModel(pickerNodes())
	view := m.View()
	for _, want := range []string{"Select Source", "alpha", "gamma"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(t, m, key(tea.KeyEnter))
	if view := m.View(); !strings.Contains(view, "Select Destination") {
		t.Errorf("view should prompt for the destination:\n%s", view)
	}
}
