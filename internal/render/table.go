// Package render turns ranking results into terminal tables, TSV, and
// markdown reports.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
)

// TableOptions configures plain-terminal table rendering.
type TableOptions struct {
	// Width is the terminal width; 0 means detect, falling back to 100
	Width int
	// ShowAreas adds a dominant-areas column when a summarizer is supplied
	ShowAreas bool
	// Summarize maps a department to its dominant-areas string
	Summarize func(dept string) string
	// NoColor disables lipgloss styling
	NoColor bool
}

const fallbackWidth = 100

// DetectWidth returns the terminal width of stdout, or fallbackWidth when
// stdout is not a terminal.
func DetectWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

// Table renders ranked entries as an aligned text table. A NoAreasSelected
// result renders as a one-line prompt instead.
func Table(result ranking.Result, opts TableOptions) string {
	if result.NoAreasSelected {
		return "No areas selected. Pick at least one research area to rank.\n"
	}
	if len(result.Entries) == 0 {
		return "No departments matched the current filter.\n"
	}

	width := opts.Width
	if width <= 0 {
		width = DetectWidth()
	}

	headers := []string{"#", "Department", "Score", "Faculty"}
	if opts.ShowAreas && opts.Summarize != nil {
		headers = append(headers, "Areas")
	}

	rows := make([][]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		row := []string{
			fmt.Sprintf("%d", e.Rank),
			e.Department,
			fmt.Sprintf("%.1f", e.Score),
			fmt.Sprintf("%d", e.FacultyCount),
		}
		if opts.ShowAreas && opts.Summarize != nil {
			row = append(row, opts.Summarize(e.Department))
		}
		rows = append(rows, row)
	}

	widths := columnWidths(headers, rows, width)

	headerStyle := lipgloss.NewStyle().Bold(true)
	if opts.NoColor {
		headerStyle = lipgloss.NewStyle()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(formatRow(headers, widths)))
	b.WriteString("\n")
	b.WriteString(ruleLine(widths))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(formatRow(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

// columnWidths sizes each column to its widest cell, then shrinks the
// department column (the widest flexible one) to fit the terminal.
func columnWidths(headers []string, rows [][]string, total int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	used := len(widths)*2 - 2
	for _, w := range widths {
		used += w
	}
	if used > total && len(widths) > 1 {
		over := used - total
		if widths[1]-over >= 10 {
			widths[1] -= over
		} else {
			widths[1] = 10
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		truncated := runewidth.Truncate(cell, widths[i], "…")
		parts[i] = runewidth.FillRight(truncated, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func ruleLine(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "  ")
}

// TSV renders ranked entries as tab-separated values for piping into other
// tools. The header row is always present.
func TSV(result ranking.Result, summarize func(dept string) string) string {
	var b strings.Builder
	b.WriteString("rank\tdepartment\tscore\tfaculty")
	if summarize != nil {
		b.WriteString("\tareas")
	}
	b.WriteString("\n")
	if result.NoAreasSelected {
		return b.String()
	}
	for _, e := range result.Entries {
		fmt.Fprintf(&b, "%d\t%s\t%.1f\t%d", e.Rank, e.Department, e.Score, e.FacultyCount)
		if summarize != nil {
			b.WriteString("\t" + summarize(e.Department))
		}
		b.WriteString("\n")
	}
	return b.String()
}
