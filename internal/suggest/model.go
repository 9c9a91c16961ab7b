package suggest

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(4)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Bold(true).
			PaddingLeft(2).
			PaddingRight(1)
)

// Model is the suggestion dropdown: an ordered list of titles and a cursor.
// Whether it is visible is decided by the view controller, not here.
type Model struct {
	items  []string
	cursor int
}

// SetItems replaces the list, keeping service order, and resets the cursor.
func (m *Model) SetItems(items []string) {
	m.items = append([]string(nil), items...)
	m.cursor = 0
}

// Clear empties the list.
func (m *Model) Clear() {
	m.items = nil
	m.cursor = 0
}

// Items returns the current titles.
func (m Model) Items() []string {
	return m.items
}

// Len returns the number of titles.
func (m Model) Len() int {
	return len(m.items)
}

// Cursor returns the highlighted row.
func (m Model) Cursor() int {
	return m.cursor
}

// MoveDown highlights the next row.
func (m *Model) MoveDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// MoveUp highlights the previous row. It returns false when already at the
// top so the caller can hand focus back to the input.
func (m *Model) MoveUp() bool {
	if m.cursor == 0 {
		return false
	}
	m.cursor--
	return true
}

// SetCursor highlights row i if it exists.
func (m *Model) SetCursor(i int) {
	if i >= 0 && i < len(m.items) {
		m.cursor = i
	}
}

// Selected returns the highlighted title.
func (m Model) Selected() (string, bool) {
	return m.At(m.cursor)
}

// At returns title i.
func (m Model) At(i int) (string, bool) {
	if i < 0 || i >= len(m.items) {
		return "", false
	}
	return m.items[i], true
}

// View renders one line per title. The cursor row is highlighted only while
// the dropdown has focus.
func (m Model) View(width int, focused bool) string {
	lines := make([]string, len(m.items))
	for i, title := range m.items {
		text := title
		if width > 8 {
			text = ansi.Truncate(title, width-8, "…")
		}
		if focused && i == m.cursor {
			lines[i] = cursorStyle.Render("▸ " + text)
		} else {
			lines[i] = itemStyle.Render(text)
		}
	}
	return strings.Join(lines, "\n")
}
