package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

// AreaPickerModel is the research-area filter overlay. It lists the root
// areas of the taxonomy; toggling one selects the root and all its venues.
type AreaPickerModel struct {
	tax         *taxonomy.Taxonomy
	roots       []string
	cursorIndex int
	selected    map[string]bool // root code -> selected
	width       int
	height      int
	theme       Theme
}

// NewAreaPickerModel creates an area picker. By default, all areas are
// selected.
func NewAreaPickerModel(tax *taxonomy.Taxonomy, theme Theme) AreaPickerModel {
	roots := tax.Roots()
	m := AreaPickerModel{
		tax:      tax,
		roots:    roots,
		selected: make(map[string]bool, len(roots)),
		theme:    theme,
	}
	for _, r := range roots {
		m.selected[r] = true
	}
	return m
}

// SetSize updates the picker dimensions.
func (m *AreaPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetActiveAreas initializes selection from the current area filter
// (nil or empty = all).
func (m *AreaPickerModel) SetActiveAreas(active []string) {
	m.selected = make(map[string]bool, len(m.roots))
	if len(active) == 0 {
		for _, r := range m.roots {
			m.selected[r] = true
		}
		return
	}
	want := make(map[string]bool, len(active))
	for _, code := range active {
		want[m.tax.Root(code)] = true
	}
	for _, r := range m.roots {
		if want[r] {
			m.selected[r] = true
		}
	}
}

// MoveUp moves the cursor up.
func (m *AreaPickerModel) MoveUp() {
	if m.cursorIndex > 0 {
		m.cursorIndex--
	}
}

// MoveDown moves the cursor down.
func (m *AreaPickerModel) MoveDown() {
	if m.cursorIndex < len(m.roots)-1 {
		m.cursorIndex++
	}
}

// ToggleSelected toggles the area under the cursor.
func (m *AreaPickerModel) ToggleSelected() {
	if len(m.roots) == 0 || m.cursorIndex < 0 || m.cursorIndex >= len(m.roots) {
		return
	}
	r := m.roots[m.cursorIndex]
	m.selected[r] = !m.selected[r]
}

// SelectAll selects every area.
func (m *AreaPickerModel) SelectAll() {
	for _, r := range m.roots {
		m.selected[r] = true
	}
}

// SelectNone clears the selection.
func (m *AreaPickerModel) SelectNone() {
	for _, r := range m.roots {
		m.selected[r] = false
	}
}

// SelectedAreas returns the selected root codes in taxonomy order.
func (m AreaPickerModel) SelectedAreas() []string {
	var out []string
	for _, r := range m.roots {
		if m.selected[r] {
			out = append(out, r)
		}
	}
	return out
}

// View renders the area picker overlay.
func (m *AreaPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 30
	}

	t := m.theme

	boxWidth := 50
	if m.width < 60 {
		boxWidth = m.width - 10
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	lines = append(lines, titleStyle.Render("Area Filter"))
	lines = append(lines, "")

	if len(m.roots) == 0 {
		emptyStyle := t.Renderer.NewStyle().Foreground(t.Secondary).Italic(true)
		lines = append(lines, emptyStyle.Render("No areas available."))
	} else {
		for i, root := range m.roots {
			isCursor := i == m.cursorIndex
			isSelected := m.selected[root]

			nameStyle := t.Renderer.NewStyle().Foreground(t.Base.GetForeground())
			if isCursor {
				nameStyle = nameStyle.Foreground(t.Primary).Bold(true)
			}

			prefix := "  "
			if isCursor {
				prefix = "▸ "
			}
			check := "[ ]"
			if isSelected {
				check = "[x]"
			}

			line := prefix + check + " " + m.tax.Label(root)
			lines = append(lines, nameStyle.Render(line))
		}
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navigate • space: toggle • a: all • n: none • enter: apply • esc: cancel"))

	content := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)
	box := boxStyle.Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
