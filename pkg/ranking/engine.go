package ranking

import (
	"fmt"

	"github.com/Dicklesworthstone/pubrank/pkg/region"
	"github.com/Dicklesworthstone/pubrank/pkg/taxonomy"
)

// Filter is the user-selected view of the data for one ranking request.
type Filter struct {
	FromYear int      `json:"from_year"`
	ToYear   int      `json:"to_year"`
	Region   string   `json:"region"`
	Areas    []string `json:"areas"` // root area codes and/or venue codes
}

// YearFingerprint identifies the year range for cache keying.
func (f Filter) YearFingerprint() string {
	return fmt.Sprintf("%d-%d", f.FromYear, f.ToYear)
}

// Options configures an Engine.
type Options struct {
	// Policy is the rank-assignment mode. Default: PolicyCompetition.
	Policy Policy
	// MinToShow is the minimum number of entries to emit before truncation.
	// Default: 10.
	MinToShow int
	// Logger receives diagnostics when set.
	Logger func(msg string)
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		Policy:    PolicyCompetition,
		MinToShow: 10,
	}
}

// Engine runs ranking passes over an immutable record set. Each call to
// Rank rebuilds its accumulators from scratch; the engine itself holds no
// per-request state, so distinct calls never observe each other.
type Engine struct {
	tax       *taxonomy.Taxonomy
	regions   region.Table
	records   []Record
	policy    Policy
	minToShow int
	logger    func(string)
}

// NewEngine creates an engine over the given taxonomy, region table, and
// loaded records. The record slice is treated as immutable.
func NewEngine(tax *taxonomy.Taxonomy, regions region.Table, records []Record, opts Options) *Engine {
	if opts.Policy == "" {
		opts.Policy = PolicyCompetition
	}
	if opts.MinToShow <= 0 {
		opts.MinToShow = DefaultOptions().MinToShow
	}
	return &Engine{
		tax:       tax,
		regions:   regions,
		records:   records,
		policy:    opts.Policy,
		minToShow: opts.MinToShow,
		logger:    opts.Logger,
	}
}

// Rank runs one full ranking pass for the filter: expand selection, build
// weights, aggregate, score, rank. Selecting no areas yields the
// distinguished nothing-selected result.
func (e *Engine) Rank(f Filter) Result {
	expanded := e.tax.ExpandSelection(f.Areas)
	weights, numRoots := ComputeWeights(e.tax, expanded)
	if numRoots == 0 {
		return Result{NoAreasSelected: true}
	}

	acc := Aggregate(e.records, AggregateOptions{
		Taxonomy: e.tax,
		Regions:  e.regions,
		FromYear: f.FromYear,
		ToYear:   f.ToYear,
		Region:   f.Region,
		Weights:  weights,
		Logger:   e.logger,
	})

	scores := Score(acc, weights.SelectedRoots(e.tax))
	return Rank(scores, acc, numRoots, e.policy, e.minToShow)
}

// Taxonomy exposes the engine's taxonomy for filter-UI building.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy { return e.tax }

// Records returns the engine's record slice. Callers must not mutate it.
func (e *Engine) Records() []Record { return e.records }

// Policy returns the engine-wide rank-assignment mode.
func (e *Engine) Policy() Policy { return e.policy }
