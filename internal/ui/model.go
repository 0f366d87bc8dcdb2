package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/pubrank/internal/render"
	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
	"github.com/Dicklesworthstone/pubrank/pkg/region"
	"github.com/Dicklesworthstone/pubrank/pkg/summary"
)

// Model is the interactive ranking browser. It holds one engine over the
// loaded records and re-runs the ranking pass whenever the filter changes.
type Model struct {
	engine     *ranking.Engine
	summarizer *summary.Summarizer
	filter     ranking.Filter
	result     ranking.Result

	table      table.Model
	picker     AreaPickerModel
	showPicker bool

	regions     []region.Region
	regionIndex int

	width  int
	height int
	theme  Theme
	status string
}

// NewModel builds the browser over an engine and its summarizer, starting
// from the given filter.
func NewModel(engine *ranking.Engine, summarizer *summary.Summarizer, filter ranking.Filter) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	regions := region.KnownFilters()
	regionIndex := 0
	for i, r := range regions {
		if string(r) == filter.Region {
			regionIndex = i
			break
		}
	}

	picker := NewAreaPickerModel(engine.Taxonomy(), theme)
	picker.SetActiveAreas(filter.Areas)

	m := Model{
		engine:      engine,
		summarizer:  summarizer,
		filter:      filter,
		picker:      picker,
		regions:     regions,
		regionIndex: regionIndex,
		theme:       theme,
	}
	m.table = m.newTable()
	m.rerank()
	return m
}

func (m *Model) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Department", Width: 40},
		{Title: "Score", Width: 7},
		{Title: "Faculty", Width: 8},
		{Title: "Areas", Width: 30},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true).
		Foreground(m.theme.Primary)
	styles.Selected = styles.Selected.
		Foreground(m.theme.Accent).
		Bold(true)
	t.SetStyles(styles)
	return t
}

// rerank runs the engine for the current filter and refreshes the table.
func (m *Model) rerank() {
	m.result = m.engine.Rank(m.filter)

	rows := make([]table.Row, 0, len(m.result.Entries))
	for _, e := range m.result.Entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", e.Rank),
			e.Department,
			fmt.Sprintf("%.1f", e.Score),
			fmt.Sprintf("%d", e.FacultyCount),
			m.summarizer.Joined(e.Department, m.filter.FromYear, m.filter.ToYear),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// ReloadMsg swaps in a fresh engine and summarizer after the data files
// changed on disk. The current filter is kept.
type ReloadMsg struct {
	Engine     *ranking.Engine
	Summarizer *summary.Summarizer
	SourcePath string
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadMsg:
		m.engine = msg.Engine
		m.summarizer = msg.Summarizer
		m.rerank()
		m.status = "reloaded " + msg.SourcePath
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-6, 3))
		m.picker.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.showPicker {
			return m.updatePicker(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		m.picker.SetActiveAreas(m.filter.Areas)
		m.showPicker = true
		m.status = ""
		return m, nil

	case "g":
		m.regionIndex = (m.regionIndex + 1) % len(m.regions)
		m.filter.Region = string(m.regions[m.regionIndex])
		m.rerank()
		m.status = "region: " + m.filter.Region
		return m, nil

	case "c":
		tsv := render.TSV(m.result, func(dept string) string {
			return m.summarizer.Joined(dept, m.filter.FromYear, m.filter.ToYear)
		})
		if err := clipboard.WriteAll(tsv); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("copied %d rows", len(m.result.Entries))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showPicker = false
		return m, nil
	case "j", "down":
		m.picker.MoveDown()
		return m, nil
	case "k", "up":
		m.picker.MoveUp()
		return m, nil
	case " ":
		m.picker.ToggleSelected()
		return m, nil
	case "a":
		m.picker.SelectAll()
		return m, nil
	case "n":
		m.picker.SelectNone()
		return m, nil
	case "enter":
		m.showPicker = false
		m.filter.Areas = m.picker.SelectedAreas()
		m.rerank()
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// Filter returns the current filter, for persisting on exit.
func (m Model) Filter() ranking.Filter { return m.filter }

// View implements tea.Model.
func (m Model) View() string {
	if m.showPicker {
		return m.picker.View()
	}

	t := m.theme
	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	header := titleStyle.Render(fmt.Sprintf("pubrank  %d-%d  %s",
		m.filter.FromYear, m.filter.ToYear, m.regionLabel()))

	var body string
	switch {
	case m.result.NoAreasSelected:
		body = t.Renderer.NewStyle().Foreground(t.Secondary).Italic(true).
			Render("No areas selected. Press a to pick research areas.")
	case len(m.result.Entries) == 0:
		body = t.Renderer.NewStyle().Foreground(t.Secondary).Italic(true).
			Render("No departments matched the current filter.")
	default:
		body = m.table.View()
	}

	footerStyle := t.Renderer.NewStyle().Foreground(t.Secondary).Italic(true)
	footer := footerStyle.Render("j/k: navigate • a: areas • g: region • c: copy • q: quit")
	if m.status != "" {
		footer += "  " + footerStyle.Render(m.status)
	}

	return strings.Join([]string{header, "", body, "", footer}, "\n")
}

func (m Model) regionLabel() string {
	if m.filter.Region == "" {
		return "world"
	}
	return m.filter.Region
}
