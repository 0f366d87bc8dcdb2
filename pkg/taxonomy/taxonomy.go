// Package taxonomy defines the static research-area taxonomy: root areas,
// the publication venues that roll up into them, display labels, and the
// "next tier" venue demotions excluded from the default ranking pass.
//
// A Taxonomy is built once at startup and never mutated afterwards; every
// consumer (aggregator, scorer, summarizer, UI) receives the same value.
package taxonomy

import (
	"fmt"
)

// AreaDef is one row of the flat venue table a Taxonomy is built from.
type AreaDef struct {
	// Code is the short identifier used in publication records (e.g. "cvpr")
	Code string

	// Label is the human-readable display name (e.g. "Computer vision")
	Label string

	// Parent is the root area this venue rolls up into; empty for root areas
	Parent string

	// NextTier marks a child venue demoted from the default ranking pass
	NextTier bool
}

// Taxonomy is the immutable area taxonomy.
type Taxonomy struct {
	order    []string            // all codes in declaration order
	roots    []string            // root codes in declaration order
	labels   map[string]string   // code -> display label
	parent   map[string]string   // child code -> root code
	children map[string][]string // root code -> child codes in declaration order
	nextTier map[string]bool
}

// New builds a Taxonomy from a flat definition list. Every child must name a
// declared root as its parent, codes must be unique, and only child venues
// may carry the next-tier flag.
func New(defs []AreaDef) (*Taxonomy, error) {
	t := &Taxonomy{
		labels:   make(map[string]string, len(defs)),
		parent:   make(map[string]string),
		children: make(map[string][]string),
		nextTier: make(map[string]bool),
	}

	for _, d := range defs {
		if d.Code == "" {
			return nil, fmt.Errorf("area with empty code (label %q)", d.Label)
		}
		if _, dup := t.labels[d.Code]; dup {
			return nil, fmt.Errorf("duplicate area code %q", d.Code)
		}
		t.labels[d.Code] = d.Label
		t.order = append(t.order, d.Code)

		if d.Parent == "" {
			if d.NextTier {
				return nil, fmt.Errorf("root area %q cannot be next-tier", d.Code)
			}
			t.roots = append(t.roots, d.Code)
			continue
		}

		// Parents must be declared before their children.
		if _, ok := t.labels[d.Parent]; !ok {
			return nil, fmt.Errorf("venue %q references undeclared parent %q", d.Code, d.Parent)
		}
		if t.parent[d.Parent] != "" {
			return nil, fmt.Errorf("venue %q has non-root parent %q", d.Code, d.Parent)
		}
		t.parent[d.Code] = d.Parent
		t.children[d.Parent] = append(t.children[d.Parent], d.Code)
		if d.NextTier {
			t.nextTier[d.Code] = true
		}
	}

	return t, nil
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	t, err := New(defaultAreas)
	if err != nil {
		// The built-in table is validated by tests; a bad entry is a
		// programming error, not a runtime condition.
		panic(fmt.Sprintf("taxonomy: invalid built-in area table: %v", err))
	}
	return t
}

// DefaultWithNextTier returns the built-in taxonomy with extra venues flagged
// as next-tier (e.g. from a config file). Unknown or root codes are rejected.
func DefaultWithNextTier(extra []string) (*Taxonomy, error) {
	if len(extra) == 0 {
		return Default(), nil
	}
	demote := make(map[string]bool, len(extra))
	for _, code := range extra {
		demote[code] = true
	}

	defs := make([]AreaDef, len(defaultAreas))
	copy(defs, defaultAreas)
	for i := range defs {
		if !demote[defs[i].Code] {
			continue
		}
		if defs[i].Parent == "" {
			return nil, fmt.Errorf("cannot demote root area %q to next-tier", defs[i].Code)
		}
		defs[i].NextTier = true
		delete(demote, defs[i].Code)
	}
	for code := range demote {
		return nil, fmt.Errorf("unknown venue %q in next-tier overrides", code)
	}
	return New(defs)
}

// Roots returns all root area codes in declaration order.
func (t *Taxonomy) Roots() []string {
	return append([]string(nil), t.roots...)
}

// Codes returns every known area code (roots and venues) in declaration order.
func (t *Taxonomy) Codes() []string {
	return append([]string(nil), t.order...)
}

// Children returns the child venues of a root area in declaration order.
func (t *Taxonomy) Children(root string) []string {
	return append([]string(nil), t.children[root]...)
}

// Known reports whether code is a declared area or venue.
func (t *Taxonomy) Known(code string) bool {
	_, ok := t.labels[code]
	return ok
}

// IsRoot reports whether code is a root area.
func (t *Taxonomy) IsRoot(code string) bool {
	return t.Known(code) && t.parent[code] == ""
}

// IsNextTier reports whether code is a demoted child venue.
func (t *Taxonomy) IsNextTier(code string) bool {
	return t.nextTier[code]
}

// Root normalizes a code to its root area. Root codes map to themselves;
// unknown codes are returned unchanged so callers stay total.
func (t *Taxonomy) Root(code string) string {
	if p, ok := t.parent[code]; ok {
		return p
	}
	return code
}

// Label returns the display label for a code, falling back to the code
// itself when unknown.
func (t *Taxonomy) Label(code string) string {
	if l, ok := t.labels[code]; ok {
		return l
	}
	return code
}

// ExpandSelection expands root codes in a selection to the root plus all of
// its child venues, so callers may select whole areas by root. Venue codes
// pass through untouched and duplicates are dropped. Order is preserved:
// input order first, expanded children after their root.
func (t *Taxonomy) ExpandSelection(selected []string) []string {
	seen := make(map[string]bool, len(selected))
	var out []string
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	for _, code := range selected {
		add(code)
		if t.IsRoot(code) {
			for _, child := range t.children[code] {
				add(child)
			}
		}
	}
	return out
}
