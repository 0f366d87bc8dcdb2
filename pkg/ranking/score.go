package ranking

import (
	"gonum.org/v1/gonum/stat"
)

// Score converts accumulated per-(root area, department) counts into one
// comparable number per department: the geometric mean of (adjusted count
// + 1) across every selected root area. Root areas where a department has no
// publications contribute a factor of 1; unselected root areas are excluded
// from the product entirely rather than treated as zero.
//
// Only departments with a nonempty roster are scored, so every returned
// score is strictly positive. Callers must guard len(selectedRoots) > 0;
// the ranker's nothing-selected gate does this upstream.
func Score(acc *Accumulators, selectedRoots []string) map[string]float64 {
	scores := make(map[string]float64, len(acc.Roster))
	factors := make([]float64, len(selectedRoots))

	for dept := range acc.Roster {
		for i, root := range selectedRoots {
			factors[i] = acc.AreaDeptAdjusted[root][dept] + 1
		}
		scores[dept] = stat.GeometricMean(factors, nil)
	}
	return scores
}
