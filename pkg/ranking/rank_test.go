package ranking

import (
	"reflect"
	"testing"
)

func accForDepts(depts map[string][]string) *Accumulators {
	acc := newAccumulators()
	for d, faculty := range depts {
		acc.Roster[d] = faculty
		acc.FacultyCount[d] = len(faculty)
	}
	return acc
}

func ranksOf(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

func TestRank_CompetitionVsDense(t *testing.T) {
	scores := map[string]float64{
		"Alpha A": 10.0,
		"Beta B":  10.0,
		"Gamma C": 8.0,
		"Delta D": 8.0,
		"Echo E":  5.0,
	}
	acc := accForDepts(map[string][]string{
		"Alpha A": {"a"}, "Beta B": {"b"}, "Gamma C": {"c"}, "Delta D": {"d"}, "Echo E": {"e"},
	})

	tests := []struct {
		policy Policy
		want   []int
	}{
		{PolicyCompetition, []int{1, 1, 3, 3, 5}},
		{PolicyDense, []int{1, 1, 2, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			res := Rank(scores, acc, 1, tt.policy, 10)
			if got := ranksOf(res.Entries); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ranks = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRank_TieOrderByLastToken(t *testing.T) {
	// Equal rounded scores order by the last whitespace token ascending.
	scores := map[string]float64{
		"University of Zurich": 9.0,
		"College of Aachen":    9.0,
		"Mid State":            9.0,
	}
	acc := accForDepts(map[string][]string{
		"University of Zurich": {"z"}, "College of Aachen": {"a"}, "Mid State": {"m"},
	})

	res := Rank(scores, acc, 1, PolicyCompetition, 10)
	want := []string{"College of Aachen", "Mid State", "University of Zurich"}
	var got []string
	for _, e := range res.Entries {
		got = append(got, e.Department)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRank_RoundingGroupsTies(t *testing.T) {
	// 9.04 and 9.01 round to the same 9.0 and must tie.
	scores := map[string]float64{
		"Alpha A": 9.04,
		"Beta B":  9.01,
		"Gamma C": 8.4,
	}
	acc := accForDepts(map[string][]string{"Alpha A": {"a"}, "Beta B": {"b"}, "Gamma C": {"c"}})

	res := Rank(scores, acc, 1, PolicyCompetition, 10)
	if res.Entries[0].Rank != 1 || res.Entries[1].Rank != 1 {
		t.Errorf("rounded ties should share rank 1: %+v", res.Entries)
	}
	if res.Entries[0].Score != 9.0 || res.Entries[1].Score != 9.0 {
		t.Errorf("emitted scores should be rounded: %+v", res.Entries)
	}
	if res.Entries[2].Rank != 3 {
		t.Errorf("third entry rank = %d, want 3", res.Entries[2].Rank)
	}
}

func TestRank_MinToShowNeverSplitsTies(t *testing.T) {
	scores := map[string]float64{
		"Alpha A": 9.0,
		"Beta B":  9.0,
		"Gamma C": 9.0,
		"Delta D": 7.0,
	}
	acc := accForDepts(map[string][]string{
		"Alpha A": {"a"}, "Beta B": {"b"}, "Gamma C": {"c"}, "Delta D": {"d"},
	})

	res := Rank(scores, acc, 1, PolicyCompetition, 2)
	// All three 9s are emitted even though minToShow is 2; the 7 is not.
	if len(res.Entries) != 3 {
		t.Fatalf("emitted %d entries, want 3: %+v", len(res.Entries), res.Entries)
	}
	for _, e := range res.Entries {
		if e.Score != 9.0 {
			t.Errorf("unexpected entry %+v", e)
		}
	}
}

func TestRank_ZeroScoresNeverShown(t *testing.T) {
	scores := map[string]float64{
		"Alpha A": 3.0,
		"Zero Z":  0.0,
	}
	acc := accForDepts(map[string][]string{"Alpha A": {"a"}, "Zero Z": {"z"}})

	res := Rank(scores, acc, 1, PolicyCompetition, 10)
	if len(res.Entries) != 1 || res.Entries[0].Department != "Alpha A" {
		t.Errorf("zero-score departments must be dropped: %+v", res.Entries)
	}
}

func TestRank_NothingSelected(t *testing.T) {
	res := Rank(nil, newAccumulators(), 0, PolicyCompetition, 10)
	if !res.NoAreasSelected {
		t.Error("numRoots=0 must yield the distinguished nothing-selected result")
	}
	if len(res.Entries) != 0 {
		t.Errorf("nothing-selected result must carry no entries: %+v", res.Entries)
	}
}

func TestRank_PassesThroughRosterData(t *testing.T) {
	scores := map[string]float64{"Alpha A": 3.0}
	acc := accForDepts(map[string][]string{"Alpha A": {"first", "second"}})

	res := Rank(scores, acc, 1, PolicyCompetition, 10)
	e := res.Entries[0]
	if e.FacultyCount != 2 || !reflect.DeepEqual(e.Faculty, []string{"first", "second"}) {
		t.Errorf("entry = %+v, want roster pass-through", e)
	}
}

func TestLastToken(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"University of Zurich", "Zurich"},
		{"MIT", "MIT"},
		{"", ""},
		{"  ", "  "},
	}
	for _, tt := range tests {
		if got := lastToken(tt.name); got != tt.want {
			t.Errorf("lastToken(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
