// Package summary reduces a full per-venue area-count vector to the short
// list of areas an author or department is mostly known for.
//
// The heuristic is deliberately fuzzy and fixed: keep areas within
// ceil(stddev) of the maximum that also hold at least 20% of the total and
// exceed 1 absolute, then take the top three. It should be read as exactly
// this formula, not generalized.
package summary

import (
	"math"
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

const (
	maxDisplayAreas = 3
	minFraction     = 0.2
	minAbsolute     = 1.0
)

// Summarizer memoizes dominant-area summaries per (name, year range). The
// underlying counts are year-filtered, so cache keys carry the year-range
// fingerprint: changing the year filter misses the cache instead of serving
// stale labels.
type Summarizer struct {
	tax     *taxonomy.Taxonomy
	records []ranking.Record

	mu     sync.Mutex
	counts map[string]map[string]map[string]float64 // fingerprint -> name -> area -> count
	labels map[string][]string                      // fingerprint + "\x00" + name -> labels
}

// New creates a summarizer over the immutable record set.
func New(tax *taxonomy.Taxonomy, records []ranking.Record) *Summarizer {
	return &Summarizer{
		tax:     tax,
		records: records,
		counts:  make(map[string]map[string]map[string]float64),
		labels:  make(map[string][]string),
	}
}

// Summarize returns the display labels of the dominant areas for an author
// or department name within the year range, at most three, ordered
// descending by total (ties keep taxonomy declaration order). Names with no
// recorded areas yield an empty result, not an error.
func (s *Summarizer) Summarize(name string, fromYear, toYear int) []string {
	f := ranking.Filter{FromYear: fromYear, ToYear: toYear}
	key := f.YearFingerprint() + "\x00" + name

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.labels[key]; ok {
		return append([]string(nil), cached...)
	}

	table := s.counts[f.YearFingerprint()]
	if table == nil {
		table = ranking.AggregateAreaCounts(s.records, fromYear, toYear)
		s.counts[f.YearFingerprint()] = table
	}

	result := s.dominantAreas(table[name])
	s.labels[key] = result
	return append([]string(nil), result...)
}

// Joined returns the comma-joined form used in compact displays.
func (s *Summarizer) Joined(name string, fromYear, toYear int) string {
	return strings.Join(s.Summarize(name, fromYear, toYear), ",")
}

// dominantAreas applies the retention formula to one name's venue-level
// counts. Next-tier venues are dropped and child venues sum into their root
// area's display label first.
func (s *Summarizer) dominantAreas(byArea map[string]float64) []string {
	if len(byArea) == 0 {
		return nil
	}

	totals := make(map[string]float64)
	for code, v := range byArea {
		if s.tax.IsNextTier(code) {
			continue
		}
		totals[s.tax.Root(code)] += v
	}

	// Materialize nonzero root totals in taxonomy declaration order so the
	// later stable sort has a deterministic tie order.
	type areaTotal struct {
		label string
		total float64
	}
	var rows []areaTotal
	var values []float64
	grand := 0.0
	for _, root := range s.tax.Roots() {
		if v := totals[root]; v != 0 {
			rows = append(rows, areaTotal{label: s.tax.Label(root), total: v})
			values = append(values, v)
			grand += v
		}
	}
	if len(rows) == 0 {
		return nil
	}

	stddev := 0.0
	if len(values) >= 2 {
		stddev = stat.StdDev(values, nil) // sample, n-1 divisor
	}
	cutoff := floats.Max(values) - math.Ceil(stddev)

	var kept []areaTotal
	for _, r := range rows {
		if r.total >= cutoff && r.total/grand >= minFraction && r.total > minAbsolute {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].total > kept[j].total
	})
	if len(kept) > maxDisplayAreas {
		kept = kept[:maxDisplayAreas]
	}

	labels := make([]string, len(kept))
	for i, r := range kept {
		labels[i] = r.label
	}
	return labels
}
