package datasource

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNoValidSources is returned when no valid publication sources are found.
var ErrNoValidSources = errors.New("no valid publication data sources found")

// SelectionOptions configures source selection behavior. The zero value is
// a valid configuration: freshest-first, one valid source required.
type SelectionOptions struct {
	// PriorityFirst prioritizes Priority over ModTime; by default the
	// freshest file wins and priority only breaks ties
	PriorityFirst bool
	// MinimumValidSources requires at least N valid sources to proceed
	// Default: 1
	MinimumValidSources int
	// MaxAgeDelta ignores sources older than this compared to the newest
	// Default: 0 (no limit)
	MaxAgeDelta time.Duration
	// Verbose enables detailed logging during selection
	Verbose bool
	// Logger receives log messages when Verbose is true
	Logger func(msg string)
}

// DefaultSelectionOptions returns sensible default selection options.
func DefaultSelectionOptions() SelectionOptions {
	return SelectionOptions{
		MinimumValidSources: 1,
		Logger:              func(string) {},
	}
}

// SelectionResult contains the selected source and why it won.
type SelectionResult struct {
	Selected      DataSource
	Candidates    []DataSource
	Reason        string
	SelectionTime time.Time
}

// sortByPreference orders sources in place: freshest-first (priority breaks
// ties) or priority-first (freshness breaks ties).
func sortByPreference(sources []DataSource, priorityFirst bool) {
	sort.Slice(sources, func(i, j int) bool {
		if priorityFirst {
			if sources[i].Priority != sources[j].Priority {
				return sources[i].Priority > sources[j].Priority
			}
			return sources[i].ModTime.After(sources[j].ModTime)
		}
		if !sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].ModTime.After(sources[j].ModTime)
		}
		return sources[i].Priority > sources[j].Priority
	})
}

// SelectBestSource chooses the best publication source with default options.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	return SelectBestSourceWithOptions(sources, DefaultSelectionOptions())
}

// SelectBestSourceWithOptions chooses the best source with custom options.
func SelectBestSourceWithOptions(sources []DataSource, opts SelectionOptions) (DataSource, error) {
	result, err := SelectBestSourceDetailed(sources, opts)
	if err != nil {
		return DataSource{}, err
	}
	return result.Selected, nil
}

// SelectBestSourceDetailed chooses the best source with full details.
func SelectBestSourceDetailed(sources []DataSource, opts SelectionOptions) (*SelectionResult, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}
	if opts.MinimumValidSources == 0 {
		opts.MinimumValidSources = 1
	}

	var valid []DataSource
	for _, s := range sources {
		if s.Valid {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoValidSources
	}
	if len(valid) < opts.MinimumValidSources {
		return nil, fmt.Errorf("only %d valid sources, need %d", len(valid), opts.MinimumValidSources)
	}

	sortByPreference(valid, opts.PriorityFirst)

	if opts.MaxAgeDelta > 0 {
		cutoff := valid[0].ModTime.Add(-opts.MaxAgeDelta)
		var fresh []DataSource
		for _, s := range valid {
			if !s.ModTime.Before(cutoff) {
				fresh = append(fresh, s)
			}
		}
		if len(fresh) > 0 {
			valid = fresh
		}
	}

	selected := valid[0]
	reason := selectionReason(selected, valid)
	if opts.Verbose {
		opts.Logger(fmt.Sprintf("Selected: %s (%s)", selected.Path, reason))
	}

	return &SelectionResult{
		Selected:      selected,
		Candidates:    valid,
		Reason:        reason,
		SelectionTime: time.Now(),
	}, nil
}

// selectionReason explains a selection in one human-readable phrase.
func selectionReason(selected DataSource, candidates []DataSource) string {
	if len(candidates) == 1 {
		return "only valid source available"
	}
	for _, c := range candidates {
		if c.ModTime.After(selected.ModTime) {
			// Not the newest, so priority must have decided.
			return fmt.Sprintf("highest priority (%d)", selected.Priority)
		}
	}
	switch selected.Type {
	case SourceTypeSQLite:
		return "freshest; SQLite database is most authoritative"
	case SourceTypeCSV:
		return "freshest; canonical CSV export"
	case SourceTypeJSONL:
		return "freshest; JSONL export"
	}
	return "freshest modification time"
}

// SelectWithFallback tries sources in preference order until one passes
// validation and loads successfully.
func SelectWithFallback(sources []DataSource, loadFunc func(DataSource) error, opts SelectionOptions) (*DataSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}

	sorted := make([]DataSource, len(sources))
	copy(sorted, sources)
	sortByPreference(sorted, opts.PriorityFirst)

	var lastErr error
	for i := range sorted {
		source := &sorted[i]

		if !source.Valid && source.ValidationError != "" {
			if opts.Verbose {
				opts.Logger(fmt.Sprintf("Skipping invalid source: %s (%s)", source.Path, source.ValidationError))
			}
			continue
		}
		if !source.Valid {
			if err := ValidateSource(source); err != nil {
				if opts.Verbose {
					opts.Logger(fmt.Sprintf("Validation failed for %s: %v", source.Path, err))
				}
				lastErr = err
				continue
			}
		}

		if err := loadFunc(*source); err != nil {
			if opts.Verbose {
				opts.Logger(fmt.Sprintf("Load failed for %s: %v", source.Path, err))
			}
			lastErr = err
			continue
		}

		if opts.Verbose {
			opts.Logger(fmt.Sprintf("Loaded publication data from: %s", source.Path))
		}
		return source, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all sources failed, last error: %w", lastErr)
	}
	return nil, ErrNoValidSources
}
