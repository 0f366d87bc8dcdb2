package summary

import (
	"reflect"
	"testing"

	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

// recordsFor builds one record per (area, count) in the given year.
func recordsFor(name string, year int, areaCounts map[string]string) []ranking.Record {
	var out []ranking.Record
	for area, count := range areaCounts {
		out = append(out, ranking.Record{
			Author:        name,
			Department:    "Somewhere U",
			Area:          area,
			Year:          year,
			Count:         count,
			AdjustedCount: count,
		})
	}
	return out
}

func TestSummarize_StddevAndFractionFilter(t *testing.T) {
	// ai:5, vision:5, act:0.5 -> total 10.5, sample stddev ~2.598,
	// cutoff max-ceil(stddev) = 5-3 = 2. ai and vision stay; act fails
	// both the cutoff and the 0.2 fraction threshold.
	records := recordsFor("Ada Lovelace", 2020, map[string]string{
		"aaai": "5",
		"cvpr": "5",
		"focs": "0.5",
	})
	s := New(taxonomy.Default(), records)

	got := s.Summarize("Ada Lovelace", 2015, 2025)
	want := []string{"AI", "Computer vision"} // taxonomy order breaks the tie
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize = %v, want %v", got, want)
	}
}

func TestSummarize_TopThreeOnly(t *testing.T) {
	records := recordsFor("Busy Bee", 2020, map[string]string{
		"aaai": "10",
		"cvpr": "10",
		"icml": "10",
		"acl":  "10",
	})
	s := New(taxonomy.Default(), records)

	got := s.Summarize("Busy Bee", 2015, 2025)
	if len(got) != 3 {
		t.Fatalf("Summarize = %v, want exactly 3 labels", got)
	}
	// Four-way tie keeps taxonomy declaration order.
	want := []string{"AI", "Computer vision", "Machine learning & data mining"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize = %v, want %v", got, want)
	}
}

func TestSummarize_SmallAbsoluteCountsDropped(t *testing.T) {
	// A single area with total <= 1 never qualifies.
	records := recordsFor("Quiet One", 2020, map[string]string{"aaai": "1"})
	s := New(taxonomy.Default(), records)

	if got := s.Summarize("Quiet One", 2015, 2025); len(got) != 0 {
		t.Errorf("Summarize = %v, want empty", got)
	}
}

func TestSummarize_NextTierExcluded(t *testing.T) {
	// oopsla is next-tier: it feeds the counts table but not the summary.
	records := recordsFor("Pl Person", 2020, map[string]string{
		"oopsla": "50",
		"aaai":   "4",
	})
	s := New(taxonomy.Default(), records)

	got := s.Summarize("Pl Person", 2015, 2025)
	if !reflect.DeepEqual(got, []string{"AI"}) {
		t.Errorf("Summarize = %v, want [AI]", got)
	}
}

func TestSummarize_ChildVenuesSumIntoRoot(t *testing.T) {
	records := recordsFor("Vision Person", 2020, map[string]string{
		"cvpr": "2",
		"eccv": "2",
		"iccv": "1",
	})
	s := New(taxonomy.Default(), records)

	got := s.Summarize("Vision Person", 2015, 2025)
	if !reflect.DeepEqual(got, []string{"Computer vision"}) {
		t.Errorf("Summarize = %v, want [Computer vision]", got)
	}
}

func TestSummarize_UnknownNameEmpty(t *testing.T) {
	s := New(taxonomy.Default(), nil)
	if got := s.Summarize("Nobody", 2015, 2025); len(got) != 0 {
		t.Errorf("Summarize(unknown) = %v, want empty", got)
	}
}

func TestSummarize_DepartmentKeys(t *testing.T) {
	records := recordsFor("Ada Lovelace", 2020, map[string]string{"aaai": "5"})
	s := New(taxonomy.Default(), records)

	// Departments accumulate the union of their faculty.
	if got := s.Summarize("Somewhere U", 2015, 2025); !reflect.DeepEqual(got, []string{"AI"}) {
		t.Errorf("Summarize(dept) = %v, want [AI]", got)
	}
}

func TestSummarize_YearRangeKeysCache(t *testing.T) {
	records := append(
		recordsFor("Switcher", 2010, map[string]string{"aaai": "8"}),
		recordsFor("Switcher", 2022, map[string]string{"cvpr": "8"})...,
	)
	s := New(taxonomy.Default(), records)

	early := s.Summarize("Switcher", 2005, 2015)
	late := s.Summarize("Switcher", 2020, 2025)
	if !reflect.DeepEqual(early, []string{"AI"}) {
		t.Errorf("early = %v, want [AI]", early)
	}
	if !reflect.DeepEqual(late, []string{"Computer vision"}) {
		t.Errorf("late = %v, want [Computer vision] (cache must be year-keyed)", late)
	}

	// Repeated queries hit the memoized labels and agree.
	if again := s.Summarize("Switcher", 2005, 2015); !reflect.DeepEqual(again, early) {
		t.Errorf("memoized = %v, want %v", again, early)
	}
}

func TestJoined(t *testing.T) {
	records := recordsFor("Ada Lovelace", 2020, map[string]string{
		"aaai": "5",
		"cvpr": "5",
	})
	s := New(taxonomy.Default(), records)

	if got := s.Joined("Ada Lovelace", 2015, 2025); got != "AI,Computer vision" {
		t.Errorf("Joined = %q", got)
	}
}
