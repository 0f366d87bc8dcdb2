package ranking

import (
	"math"
	"sort"
	"strings"
)

// Policy selects how tied departments consume rank numbers. The policy is an
// engine-wide mode, not a per-request knob.
type Policy string

const (
	// PolicyCompetition gives ties one shared rank and skips ahead by the
	// tie-group size: scores 10,10,8 rank as 1,1,3. This is the default.
	PolicyCompetition Policy = "competition"

	// PolicyDense gives ties one shared rank and increments by exactly one:
	// scores 10,10,8 rank as 1,1,2.
	PolicyDense Policy = "dense"
)

// Entry is one emitted row of a ranking.
type Entry struct {
	Rank         int      `json:"rank"`
	Department   string   `json:"department"`
	Score        float64  `json:"score"` // rounded to one decimal
	FacultyCount int      `json:"faculty_count"`
	Faculty      []string `json:"faculty"` // roster in first-seen order
}

// Result is a completed ranking pass. When no root areas are selected the
// result carries the distinguished NoAreasSelected signal instead of an
// empty list, instructing the caller to render a prompt rather than a table.
type Result struct {
	NoAreasSelected bool    `json:"no_areas_selected,omitempty"`
	Entries         []Entry `json:"entries"`
}

// Rank sorts departments by rounded score and assigns tie-aware ranks.
// Scores are rounded to one decimal before comparison so two departments
// differing only beyond the first decimal are tied. Ties order by the last
// whitespace-delimited token of the department name, ascending.
//
// Emission stops once at least minToShow entries are out and the next
// candidate's score differs from the last emitted one (a tied group is never
// cut in half). Zero scores are never emitted.
func Rank(scores map[string]float64, acc *Accumulators, numRoots int, policy Policy, minToShow int) Result {
	if numRoots <= 0 {
		return Result{NoAreasSelected: true}
	}

	type scored struct {
		dept  string
		score float64 // rounded
	}
	rows := make([]scored, 0, len(scores))
	for dept, s := range scores {
		rows = append(rows, scored{dept: dept, score: round1(s)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		ti, tj := lastToken(rows[i].dept), lastToken(rows[j].dept)
		if ti != tj {
			return ti < tj
		}
		return rows[i].dept < rows[j].dept
	})

	entries := make([]Entry, 0, minToShow)
	lastScore := math.Inf(1)
	rank := 0
	for _, row := range rows {
		if row.score == 0 {
			break
		}
		if row.score != lastScore {
			if len(entries) >= minToShow {
				break
			}
			switch policy {
			case PolicyDense:
				rank++
			default:
				rank = len(entries) + 1
			}
			lastScore = row.score
		}
		entries = append(entries, Entry{
			Rank:         rank,
			Department:   row.dept,
			Score:        row.score,
			FacultyCount: acc.FacultyCount[row.dept],
			Faculty:      append([]string(nil), acc.Roster[row.dept]...),
		})
	}
	return Result{Entries: entries}
}

// lastToken returns the final whitespace-delimited token of a name. This
// approximates surname ordering for person names and is stable for
// institution names.
func lastToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
