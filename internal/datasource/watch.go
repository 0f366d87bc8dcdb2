package datasource

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SourceWatcher monitors publication data files for changes and triggers a
// callback, so a viewer can rerun its ranking pass on fresh data.
type SourceWatcher struct {
	watcher    *fsnotify.Watcher
	sources    []DataSource
	callback   func(changed DataSource)
	debounce   time.Duration
	lastChange map[string]time.Time
	mu         sync.Mutex
	done       chan struct{}
	verbose    bool
	logger     func(msg string)
}

// WatcherOptions configures the source watcher.
type WatcherOptions struct {
	// Debounce is the minimum time between callbacks for the same file
	// Default: 100ms
	Debounce time.Duration
	// Verbose enables detailed logging
	Verbose bool
	// Logger receives log messages when Verbose is true
	Logger func(msg string)
}

// DefaultWatcherOptions returns sensible default watcher options.
func DefaultWatcherOptions() WatcherOptions {
	return WatcherOptions{
		Debounce: 100 * time.Millisecond,
		Logger:   func(string) {},
	}
}

// NewSourceWatcher creates a watcher for the given sources. Files that
// cannot be watched are skipped, not fatal.
func NewSourceWatcher(sources []DataSource, callback func(DataSource), opts WatcherOptions) (*SourceWatcher, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}
	if opts.Debounce == 0 {
		opts.Debounce = 100 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	sw := &SourceWatcher{
		watcher:    watcher,
		sources:    sources,
		callback:   callback,
		debounce:   opts.Debounce,
		lastChange: make(map[string]time.Time),
		done:       make(chan struct{}),
		verbose:    opts.Verbose,
		logger:     opts.Logger,
	}

	for _, source := range sources {
		if err := watcher.Add(source.Path); err != nil {
			if opts.Verbose {
				opts.Logger(fmt.Sprintf("Cannot watch %s: %v", source.Path, err))
			}
		} else if opts.Verbose {
			opts.Logger(fmt.Sprintf("Watching: %s", source.Path))
		}
	}
	return sw, nil
}

// Start begins watching for file changes.
func (sw *SourceWatcher) Start() {
	go sw.run()
}

// Stop stops watching for file changes.
func (sw *SourceWatcher) Stop() {
	close(sw.done)
	sw.watcher.Close()
}

// Sources returns a copy of the watched source list.
func (sw *SourceWatcher) Sources() []DataSource {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	out := make([]DataSource, len(sw.sources))
	copy(out, sw.sources)
	return out
}

func (sw *SourceWatcher) run() {
	for {
		select {
		case <-sw.done:
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			var changed *DataSource
			for i := range sw.sources {
				if sw.sources[i].Path == event.Name {
					changed = &sw.sources[i]
					break
				}
			}
			if changed == nil {
				continue
			}

			sw.mu.Lock()
			now := time.Now()
			if now.Sub(sw.lastChange[event.Name]) < sw.debounce {
				sw.mu.Unlock()
				continue
			}
			sw.lastChange[event.Name] = now
			sw.mu.Unlock()

			if sw.verbose {
				sw.logger(fmt.Sprintf("Source changed: %s", event.Name))
			}
			if err := RefreshSourceInfo(changed); err != nil && sw.verbose {
				sw.logger(fmt.Sprintf("Failed to refresh source info: %v", err))
			}
			if sw.callback != nil {
				sw.callback(*changed)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			if sw.verbose {
				sw.logger(fmt.Sprintf("Watcher error: %v", err))
			}
		}
	}
}

// AutoRefreshManager revalidates and reselects the active source whenever
// any candidate file changes.
type AutoRefreshManager struct {
	watcher        *SourceWatcher
	currentSource  *DataSource
	sources        []DataSource
	onSourceChange func(newSource DataSource, reason string)
	mu             sync.RWMutex
	opts           SelectionOptions
}

// AutoRefreshOptions configures the auto-refresh manager.
type AutoRefreshOptions struct {
	WatcherOptions   WatcherOptions
	SelectionOptions SelectionOptions
	// OnSourceChange is called when the active source changes
	OnSourceChange func(newSource DataSource, reason string)
}

// NewAutoRefreshManager creates a manager that re-selects the best source
// when data files change on disk.
func NewAutoRefreshManager(sources []DataSource, opts AutoRefreshOptions) (*AutoRefreshManager, error) {
	m := &AutoRefreshManager{
		sources:        sources,
		onSourceChange: opts.OnSourceChange,
		opts:           opts.SelectionOptions,
	}

	selected, err := SelectBestSourceWithOptions(sources, opts.SelectionOptions)
	if err != nil {
		return nil, err
	}
	m.currentSource = &selected

	watcher, err := NewSourceWatcher(sources, m.handleChange, opts.WatcherOptions)
	if err != nil {
		return nil, err
	}
	m.watcher = watcher
	return m, nil
}

// Start begins automatic refresh monitoring.
func (m *AutoRefreshManager) Start() { m.watcher.Start() }

// Stop stops automatic refresh monitoring.
func (m *AutoRefreshManager) Stop() { m.watcher.Stop() }

// CurrentSource returns the currently selected source.
func (m *AutoRefreshManager) CurrentSource() DataSource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.currentSource == nil {
		return DataSource{}
	}
	return *m.currentSource
}

func (m *AutoRefreshManager) handleChange(changed DataSource) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.sources {
		if m.sources[i].Path == changed.Path {
			m.sources[i].ModTime = changed.ModTime
			m.sources[i].Size = changed.Size
			ValidateSource(&m.sources[i])
			break
		}
	}

	newSelected, err := SelectBestSourceWithOptions(m.sources, m.opts)
	if err != nil {
		return
	}
	if m.currentSource != nil && m.currentSource.Path == newSelected.Path &&
		m.currentSource.ModTime.Equal(newSelected.ModTime) {
		return
	}

	oldPath := ""
	if m.currentSource != nil {
		oldPath = m.currentSource.Path
	}
	m.currentSource = &newSelected

	if m.onSourceChange != nil {
		reason := "source updated"
		if oldPath != newSelected.Path {
			reason = fmt.Sprintf("switched from %s", oldPath)
		}
		m.onSourceChange(newSelected, reason)
	}
}

// ForceRefresh triggers a manual refresh of all sources.
func (m *AutoRefreshManager) ForceRefresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.sources {
		RefreshSourceInfo(&m.sources[i])
		ValidateSource(&m.sources[i])
	}

	newSelected, err := SelectBestSourceWithOptions(m.sources, m.opts)
	if err != nil {
		return err
	}
	if m.currentSource == nil || m.currentSource.Path != newSelected.Path {
		m.currentSource = &newSelected
		if m.onSourceChange != nil {
			m.onSourceChange(newSelected, "force refresh")
		}
	}
	return nil
}
