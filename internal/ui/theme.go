// Package ui is the interactive terminal browser for rankings: a results
// table plus an area-picker overlay, re-ranking live as filters change.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme carries the styles shared by the table view and overlays. Styles are
// built from the renderer so output degrades cleanly on dumb terminals.
type Theme struct {
	Renderer  *lipgloss.Renderer
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Base      lipgloss.Style
}

// DefaultTheme returns the standard color scheme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.Color("39"),  // blue
		Secondary: lipgloss.Color("245"), // gray
		Accent:    lipgloss.Color("170"), // magenta
		Base:      r.NewStyle().Foreground(lipgloss.Color("252")),
	}
}
