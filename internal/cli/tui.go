package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodePickerModel - Interactive source and destination selection
// =============================================================================

// NodeEntry is one selectable node.
type NodeEntry struct {
	Name  string
	Links int
}

// NodePickerModel is the bubbletea model for choosing a route's endpoints.
// The first enter selects the source, the second the destination. Typing
// filters the list by substring.
type NodePickerModel struct {
	Nodes  []NodeEntry
	Filter string
	Cursor int
	Height int
	Offset int

	Source string
	Dest   string

	// Aborted is set when the user quits before choosing both nodes.
	Aborted bool

	matches []int
}

// NewNodePickerModel creates a picker over nodes.
func NewNodePickerModel(nodes []NodeEntry) NodePickerModel {
	m := NodePickerModel{Nodes: nodes, Height: 15}
	m.refilter()
	return m
}

// Done reports whether both endpoints were chosen.
func (m NodePickerModel) Done() bool {
	return m.Source != "" && m.Dest != ""
}

func (m NodePickerModel) Init() tea.Cmd {
	return nil
}

func (m NodePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Aborted = true
			return m, tea.Quit
		case tea.KeyUp:
			m.moveCursor(-1)
		case tea.KeyDown:
			m.moveCursor(1)
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.refilter()
			}
		case tea.KeyEnter:
			if len(m.matches) == 0 {
				return m, nil
			}
			name := m.Nodes[m.matches[m.Cursor]].Name
			if m.Source == "" {
				m.Source = name
				m.Filter = ""
				m.refilter()
				return m, nil
			}
			m.Dest = name
			return m, tea.Quit
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.refilter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *NodePickerModel) moveCursor(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.matches) {
		return
	}
	m.Cursor = next
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *NodePickerModel) refilter() {
	m.matches = m.matches[:0]
	for i, n := range m.Nodes {
		if strings.Contains(n.Name, m.Filter) {
			m.matches = append(m.matches, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m NodePickerModel) View() string {
	var b strings.Builder

	title := "Select Source"
	if m.Source != "" {
		title = "Select Destination  " + listDimStyle.Render("from ") + StyleHighlight.Render(m.Source)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("filter: ") + StyleValue.Render(m.Filter))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.matches))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[m.matches[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, n.Name, strconv.Itoa(n.Links)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	position := 0
	if len(m.matches) > 0 {
		position = m.Cursor + 1
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", position, len(m.matches))))

	return b.String()
}
