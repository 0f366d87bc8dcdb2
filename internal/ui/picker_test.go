package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

func TestAreaPickerSelectionAndToggle(t *testing.T) {
	tax := taxonomy.Default()
	m := NewAreaPickerModel(tax, DefaultTheme(lipgloss.NewRenderer(nil)))
	m.SetSize(80, 40)

	all := len(tax.Roots())
	if got := len(m.SelectedAreas()); got != all {
		t.Fatalf("expected all %d areas selected by default, got %d", all, got)
	}

	// Toggle first area off
	m.ToggleSelected()
	if got := len(m.SelectedAreas()); got != all-1 {
		t.Fatalf("expected %d selected after toggle, got %d", all-1, got)
	}

	m.SelectNone()
	if got := len(m.SelectedAreas()); got != 0 {
		t.Fatalf("expected 0 selected after SelectNone, got %d", got)
	}

	m.SelectAll()
	if got := len(m.SelectedAreas()); got != all {
		t.Fatalf("expected %d selected after SelectAll, got %d", all, got)
	}
}

func TestAreaPickerSetActiveAreas(t *testing.T) {
	tax := taxonomy.Default()
	m := NewAreaPickerModel(tax, DefaultTheme(lipgloss.NewRenderer(nil)))

	// Venue codes map to their root areas.
	m.SetActiveAreas([]string{"aaai", "cvpr"})
	got := m.SelectedAreas()
	if len(got) != 2 {
		t.Fatalf("expected 2 selected areas, got %v", got)
	}
	if got[0] != "ai" || got[1] != "vision" {
		t.Errorf("expected taxonomy order [ai vision], got %v", got)
	}

	// Empty filter means everything.
	m.SetActiveAreas(nil)
	if got := len(m.SelectedAreas()); got != len(tax.Roots()) {
		t.Fatalf("expected all areas for empty filter, got %d", got)
	}
}

func TestAreaPickerSelectedAreasKeepTaxonomyOrder(t *testing.T) {
	tax := taxonomy.Default()
	m := NewAreaPickerModel(tax, DefaultTheme(lipgloss.NewRenderer(nil)))

	got := m.SelectedAreas()
	want := tax.Roots()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v", i, got)
		}
	}
}

func TestAreaPickerViewContainsAreas(t *testing.T) {
	tax := taxonomy.Default()
	m := NewAreaPickerModel(tax, DefaultTheme(lipgloss.NewRenderer(nil)))
	m.SetSize(60, 40)

	out := m.View()
	if !strings.Contains(out, "Area Filter") {
		t.Fatalf("expected title in view, got:\n%s", out)
	}
	if !strings.Contains(out, tax.Label("ai")) {
		t.Fatalf("expected area label in view, got:\n%s", out)
	}
}
