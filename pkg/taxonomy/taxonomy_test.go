package taxonomy

import (
	"testing"
)

func TestDefaultTableIsValid(t *testing.T) {
	tax := Default() // panics on a bad table

	for _, root := range tax.Roots() {
		if !tax.IsRoot(root) {
			t.Errorf("Roots() returned non-root %q", root)
		}
		if tax.IsNextTier(root) {
			t.Errorf("root %q flagged next-tier", root)
		}
		for _, child := range tax.Children(root) {
			if tax.Root(child) != root {
				t.Errorf("Root(%q) = %q, want %q", child, tax.Root(child), root)
			}
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		defs []AreaDef
	}{
		{
			name: "duplicate code",
			defs: []AreaDef{{Code: "ai", Label: "AI"}, {Code: "ai", Label: "AI again"}},
		},
		{
			name: "undeclared parent",
			defs: []AreaDef{{Code: "aaai", Label: "AI", Parent: "ai"}},
		},
		{
			name: "non-root parent",
			defs: []AreaDef{
				{Code: "ai", Label: "AI"},
				{Code: "aaai", Label: "AI", Parent: "ai"},
				{Code: "workshop", Label: "AI", Parent: "aaai"},
			},
		},
		{
			name: "next-tier root",
			defs: []AreaDef{{Code: "ai", Label: "AI", NextTier: true}},
		},
		{
			name: "empty code",
			defs: []AreaDef{{Code: "", Label: "AI"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.defs); err == nil {
				t.Errorf("New(%s) succeeded, want error", tt.name)
			}
		})
	}
}

func TestRoot_Normalization(t *testing.T) {
	tax := Default()

	tests := []struct {
		code string
		want string
	}{
		{"cvpr", "vision"},
		{"vision", "vision"},
		{"ndss", "sec"},  // next-tier venues still normalize
		{"unknown", "unknown"}, // unknown codes pass through
	}
	for _, tt := range tests {
		if got := tax.Root(tt.code); got != tt.want {
			t.Errorf("Root(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestExpandSelection(t *testing.T) {
	tax := Default()

	got := tax.ExpandSelection([]string{"vision", "popl"})
	want := []string{"vision", "cvpr", "eccv", "iccv", "popl"}
	if len(got) != len(want) {
		t.Fatalf("ExpandSelection = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExpandSelection = %v, want %v", got, want)
		}
	}

	// Duplicates collapse.
	got = tax.ExpandSelection([]string{"vision", "cvpr", "vision"})
	if len(got) != 4 {
		t.Errorf("ExpandSelection with duplicates = %v, want 4 codes", got)
	}
}

func TestDefaultWithNextTier(t *testing.T) {
	tax, err := DefaultWithNextTier([]string{"kdd"})
	if err != nil {
		t.Fatalf("DefaultWithNextTier failed: %v", err)
	}
	if !tax.IsNextTier("kdd") {
		t.Error("kdd should be next-tier after override")
	}

	if _, err := DefaultWithNextTier([]string{"ai"}); err == nil {
		t.Error("demoting a root area should fail")
	}
	if _, err := DefaultWithNextTier([]string{"nope"}); err == nil {
		t.Error("unknown venue should fail")
	}
}

func TestPresets(t *testing.T) {
	tax := Default()

	for _, name := range ListPresets() {
		roots, ok := tax.GetPreset(name)
		if !ok {
			t.Fatalf("GetPreset(%s) not found", name)
		}
		if len(roots) == 0 {
			t.Fatalf("GetPreset(%s) empty", name)
		}
		for _, r := range roots {
			if !tax.IsRoot(r) {
				t.Errorf("preset %s contains non-root %q", name, r)
			}
		}
	}

	if _, ok := tax.GetPreset("bogus"); ok {
		t.Error("unknown preset should not resolve")
	}

	if all, _ := tax.GetPreset(PresetAll); len(all) != len(tax.Roots()) {
		t.Errorf("PresetAll has %d roots, want %d", len(all), len(tax.Roots()))
	}
}
