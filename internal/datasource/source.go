// Package datasource discovers, validates, selects, loads, and watches the
// publication data files the ranking engine is fed from. A data directory
// may carry the same dataset in several forms (SQLite database, CSV export,
// JSONL export); the freshest valid source wins by default.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SourceType identifies the physical format of a data source.
type SourceType string

const (
	SourceTypeSQLite SourceType = "sqlite"
	SourceTypeCSV    SourceType = "csv"
	SourceTypeJSONL  SourceType = "jsonl"
)

// Source priorities, used to break modification-time ties. The SQLite
// database is the most authoritative form, the CSV export is canonical
// upstream output, JSONL is a convenience export.
const (
	PrioritySQLite = 3
	PriorityCSV    = 2
	PriorityJSONL  = 1
)

// Well-known file names inside a data directory.
const (
	SQLiteFileName  = "publications.db"
	CSVFileName     = "author-info.csv"
	JSONLFileName   = "author-info.jsonl"
	RegionsFileName = "country-info.csv"
)

// DataSource describes one candidate publication data file.
type DataSource struct {
	// Path is the absolute or dir-relative file path
	Path string
	// Type is the physical format
	Type SourceType
	// Priority breaks ModTime ties (higher wins)
	Priority int
	// ModTime and Size are the file's stat info at discovery time
	ModTime time.Time
	Size    int64
	// Valid is set by validation; ValidationError explains a failure
	Valid           bool
	ValidationError string
	// RecordCount is the number of publication rows, when counted
	RecordCount int
}

// DiscoveryOptions configures source discovery.
type DiscoveryOptions struct {
	// DataDir is the directory holding publication data files
	DataDir string
	// ValidateAfterDiscovery runs validation on every discovered source
	ValidateAfterDiscovery bool
	// ValidationOptions is used when ValidateAfterDiscovery is set
	ValidationOptions ValidationOptions
}

// DiscoverSources lists the publication data files present in a data
// directory. Missing files are simply absent from the result; an unreadable
// directory is an error.
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	if opts.DataDir == "" {
		return nil, fmt.Errorf("data directory not set")
	}
	if _, err := os.Stat(opts.DataDir); err != nil {
		return nil, fmt.Errorf("cannot access data directory: %w", err)
	}

	candidates := []struct {
		name     string
		typ      SourceType
		priority int
	}{
		{SQLiteFileName, SourceTypeSQLite, PrioritySQLite},
		{CSVFileName, SourceTypeCSV, PriorityCSV},
		{JSONLFileName, SourceTypeJSONL, PriorityJSONL},
	}

	var sources []DataSource
	for _, c := range candidates {
		path := filepath.Join(opts.DataDir, c.name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		src := DataSource{
			Path:     path,
			Type:     c.typ,
			Priority: c.priority,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		}
		if opts.ValidateAfterDiscovery {
			// Validation errors are recorded on the source, not fatal.
			_ = ValidateSourceWithOptions(&src, opts.ValidationOptions)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// RefreshSourceInfo updates the ModTime and Size of a source from disk.
func RefreshSourceInfo(source *DataSource) error {
	info, err := os.Stat(source.Path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	source.ModTime = info.ModTime()
	source.Size = info.Size()
	return nil
}
