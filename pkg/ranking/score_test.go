package ranking

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func accWithCounts(counts map[string]map[string]float64, depts ...string) *Accumulators {
	acc := newAccumulators()
	for _, d := range depts {
		acc.Roster[d] = []string{"someone"}
		acc.FacultyCount[d] = 1
	}
	acc.AreaDeptAdjusted = counts
	return acc
}

func TestScore_GeometricMean(t *testing.T) {
	acc := accWithCounts(map[string]map[string]float64{
		"plan": {"X University": 3.0},
		"act":  {"X University": 7.0},
	}, "X University")

	scores := Score(acc, []string{"plan", "act"})
	want := math.Sqrt(4.0 * 8.0) // (3+1)*(7+1) smoothed
	if math.Abs(scores["X University"]-want) > 1e-9 {
		t.Errorf("score = %v, want %v", scores["X University"], want)
	}
}

func TestScore_ZeroAreaContributesFactorOne(t *testing.T) {
	// X has publications in plan only; act contributes (0+1)=1, not 0.
	acc := accWithCounts(map[string]map[string]float64{
		"plan": {"X University": 8.0},
	}, "X University")

	scores := Score(acc, []string{"plan", "act"})
	want := math.Sqrt(9.0)
	if math.Abs(scores["X University"]-want) > 1e-9 {
		t.Errorf("score = %v, want %v", scores["X University"], want)
	}
}

func TestScore_UnselectedAreasExcluded(t *testing.T) {
	// A huge count in an unselected area must not affect the score at all.
	acc := accWithCounts(map[string]map[string]float64{
		"plan": {"X University": 3.0},
		"act":  {"X University": 1000.0},
	}, "X University")

	scores := Score(acc, []string{"plan"})
	if scores["X University"] != 4.0 {
		t.Errorf("score = %v, want 4.0 (act is unselected)", scores["X University"])
	}
}

func TestScore_OnlyRosteredDepartments(t *testing.T) {
	acc := accWithCounts(map[string]map[string]float64{
		"plan": {"X University": 3.0, "Ghost College": 5.0},
	}, "X University")

	scores := Score(acc, []string{"plan"})
	if _, ok := scores["Ghost College"]; ok {
		t.Error("unrostered department must not be scored")
	}
}

// With exactly one selected root area, the geometric mean reduces to
// adjustedCount + 1.
func TestScore_SingleAreaReduction(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.Float64Range(0, 500).Draw(rt, "count")
		acc := accWithCounts(map[string]map[string]float64{
			"plan": {"X University": count},
		}, "X University")

		got := Score(acc, []string{"plan"})["X University"]
		if math.Abs(got-(count+1)) > 1e-9 {
			rt.Fatalf("score = %v, want %v", got, count+1)
		}
	})
}
