package ranking

import (
	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

// Weights is the per-area on/off vector derived from the current selection.
// Every known area code is present with weight 1 (selected) or 0.
type Weights map[string]int

// ComputeWeights turns a set of selected area codes into a weight vector and
// the count of selected root areas. Child venues never increment the root
// count even when individually selected; the count is the exponent
// denominator in scoring and must be checked > 0 before ranking.
func ComputeWeights(tax *taxonomy.Taxonomy, selected []string) (Weights, int) {
	on := make(map[string]bool, len(selected))
	for _, code := range selected {
		on[code] = true
	}

	w := make(Weights)
	numRoots := 0
	for _, code := range tax.Codes() {
		if on[code] {
			w[code] = 1
			if tax.IsRoot(code) {
				numRoots++
			}
		} else {
			w[code] = 0
		}
	}
	return w, numRoots
}

// SelectedRoots returns the root areas with weight 1, in taxonomy order.
func (w Weights) SelectedRoots(tax *taxonomy.Taxonomy) []string {
	var roots []string
	for _, root := range tax.Roots() {
		if w[root] == 1 {
			roots = append(roots, root)
		}
	}
	return roots
}
