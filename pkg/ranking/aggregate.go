// Package ranking is the core engine: it turns flat publication records into
// a scored, sorted, tie-aware ranking of departments. A ranking pass is
// request-scoped and synchronous: accumulators are built from scratch on
// every call, consumed, and discarded.
package ranking

import (
	"fmt"
	"strconv"

	"github.com/Dicklesworthstone/pubrank/pkg/region"
	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

// Record is one (author, department, area, year) publication row as supplied
// by the loader. Counts arrive as strings and are parsed defensively: a
// malformed count contributes 0 and is tallied for diagnostics.
type Record struct {
	Author        string `json:"name"`
	Department    string `json:"dept"`
	Area          string `json:"area"`
	Year          int    `json:"year"`
	Count         string `json:"count"`
	AdjustedCount string `json:"adjustedcount"`
}

// Accumulators holds everything one filtered pass over the records produces.
type Accumulators struct {
	// Roster maps department -> author names in first-seen order.
	Roster map[string][]string

	// FacultyCount maps department -> number of distinct rostered authors.
	FacultyCount map[string]int

	// AuthorRaw and AuthorAdjusted sum counts per author across all
	// qualifying records.
	AuthorRaw      map[string]float64
	AuthorAdjusted map[string]float64

	// AreaDeptAdjusted sums adjusted counts per (root area, department).
	// Areas are always normalized to their root before accumulation.
	AreaDeptAdjusted map[string]map[string]float64

	// MalformedCounts tallies records whose count fields failed to parse.
	MalformedCounts int
}

func newAccumulators() *Accumulators {
	return &Accumulators{
		Roster:           make(map[string][]string),
		FacultyCount:     make(map[string]int),
		AuthorRaw:        make(map[string]float64),
		AuthorAdjusted:   make(map[string]float64),
		AreaDeptAdjusted: make(map[string]map[string]float64),
	}
}

// AggregateOptions configures a ranking pass.
type AggregateOptions struct {
	Taxonomy *taxonomy.Taxonomy
	Regions  region.Table

	// FromYear and ToYear bound qualifying records, inclusive. A reversed
	// range is a valid (vacuous) filter that admits nothing.
	FromYear int
	ToYear   int

	// Region is the region filter passed to the classifier.
	Region string

	// Weights is the per-area selection vector from ComputeWeights.
	Weights Weights

	// Logger receives diagnostics (e.g. malformed-count tallies) when set.
	Logger func(msg string)
}

// Aggregate runs the primary filtered pass: one scan over all records,
// applying the next-tier, year, weight, and region filters in that order,
// then accumulating rosters and per-author / per-(root area, department)
// totals. Records with an empty department cannot be rostered and are
// skipped entirely.
func Aggregate(records []Record, opts AggregateOptions) *Accumulators {
	acc := newAccumulators()
	rostered := make(map[string]bool, len(records)/4)

	for _, r := range records {
		if opts.Taxonomy.IsNextTier(r.Area) {
			continue
		}
		if r.Year < opts.FromYear || r.Year > opts.ToYear {
			continue
		}
		if opts.Weights[r.Area] == 0 {
			continue
		}
		if r.Department == "" {
			continue
		}
		if !opts.Regions.Matches(r.Department, opts.Region) {
			continue
		}

		raw := acc.parseCount(r.Count)
		adjusted := acc.parseCount(r.AdjustedCount)

		if !rostered[r.Author] {
			rostered[r.Author] = true
			acc.Roster[r.Department] = append(acc.Roster[r.Department], r.Author)
			acc.FacultyCount[r.Department]++
			acc.AuthorRaw[r.Author] = 0
			acc.AuthorAdjusted[r.Author] = 0
		}

		acc.AuthorRaw[r.Author] += raw
		acc.AuthorAdjusted[r.Author] += adjusted

		root := opts.Taxonomy.Root(r.Area)
		byDept := acc.AreaDeptAdjusted[root]
		if byDept == nil {
			byDept = make(map[string]float64)
			acc.AreaDeptAdjusted[root] = byDept
		}
		byDept[r.Department] += adjusted
	}

	if acc.MalformedCounts > 0 && opts.Logger != nil {
		opts.Logger(fmt.Sprintf("aggregate: %d records had malformed counts (treated as 0)", acc.MalformedCounts))
	}
	return acc
}

// AggregateAreaCounts runs the secondary pass feeding the area summarizer:
// filtered by year range only, at full per-venue granularity (next-tier
// venues included), keyed by author name and by department name. A
// department accumulates the union of its faculty's counts.
func AggregateAreaCounts(records []Record, fromYear, toYear int) map[string]map[string]float64 {
	counts := make(map[string]map[string]float64)
	add := func(name, area string, v float64) {
		byArea := counts[name]
		if byArea == nil {
			byArea = make(map[string]float64)
			counts[name] = byArea
		}
		byArea[area] += v
	}

	for _, r := range records {
		if r.Year < fromYear || r.Year > toYear {
			continue
		}
		raw, err := strconv.ParseFloat(r.Count, 64)
		if err != nil {
			raw = 0
		}
		add(r.Author, r.Area, raw)
		if r.Department != "" {
			add(r.Department, r.Area, raw)
		}
	}
	return counts
}

// parseCount parses a count field, treating malformed values as 0 so a bad
// row degrades instead of aborting the pass.
func (a *Accumulators) parseCount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		a.MalformedCounts++
		return 0
	}
	return v
}
