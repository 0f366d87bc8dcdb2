package datasource

import (
	"bufio"
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// recordFields are the columns/keys every publication row must carry, in
// canonical CSV header order.
var recordFields = []string{"name", "dept", "area", "count", "adjustedcount", "year"}

// ValidationOptions configures source validation behavior.
type ValidationOptions struct {
	// MaxErrorRate is the maximum fraction of bad JSONL lines tolerated
	// Default: 0.10 (10%)
	MaxErrorRate float64
	// CountRecords counts publication rows during validation
	CountRecords bool
	// Verbose enables detailed logging during validation
	Verbose bool
	// Logger receives log messages when Verbose is true
	Logger func(msg string)
}

// DefaultValidationOptions returns sensible default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		MaxErrorRate: 0.10,
		CountRecords: true,
		Logger:       func(string) {},
	}
}

// ValidateSource validates a data source and updates its Valid field.
func ValidateSource(source *DataSource) error {
	return ValidateSourceWithOptions(source, DefaultValidationOptions())
}

// ValidateSourceWithOptions validates a data source with custom options.
func ValidateSourceWithOptions(source *DataSource, opts ValidationOptions) error {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}
	if opts.MaxErrorRate == 0 {
		opts.MaxErrorRate = 0.10
	}

	var err error
	switch source.Type {
	case SourceTypeSQLite:
		err = validateSQLite(source, opts)
	case SourceTypeCSV:
		err = validateCSV(source, opts)
	case SourceTypeJSONL:
		err = validateJSONL(source, opts)
	default:
		err = fmt.Errorf("unknown source type: %s", source.Type)
	}

	if err != nil {
		source.Valid = false
		source.ValidationError = err.Error()
		return err
	}
	source.Valid = true
	source.ValidationError = ""
	return nil
}

// validateSQLite checks the database opens, passes an integrity check, and
// carries a publications table with the expected columns.
func validateSQLite(source *DataSource, opts ValidationOptions) error {
	info, err := os.Stat(source.Path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}

	db, err := sql.Open("sqlite", source.Path)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer db.Close()

	var integrity string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&integrity); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	if integrity != "ok" {
		return fmt.Errorf("database corrupt: %s", integrity)
	}

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='publications'").Scan(&tableName)
	if err == sql.ErrNoRows {
		return fmt.Errorf("missing publications table")
	}
	if err != nil {
		return fmt.Errorf("cannot query schema: %w", err)
	}

	rows, err := db.Query("PRAGMA table_info(publications)")
	if err != nil {
		return fmt.Errorf("cannot query table info: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("cannot scan column info: %w", err)
		}
		columns[strings.ToLower(name)] = true
	}
	for _, col := range recordFields {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	if opts.CountRecords {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM publications").Scan(&count); err != nil {
			return fmt.Errorf("cannot count publications: %w", err)
		}
		source.RecordCount = count
	}

	if opts.Verbose {
		opts.Logger(fmt.Sprintf("SQLite validation passed: %s (%d records)", source.Path, source.RecordCount))
	}
	return nil
}

// validateCSV checks the header carries the canonical columns. Row contents
// are not validated here; malformed counts degrade to 0 at aggregation time.
func validateCSV(source *DataSource, opts ValidationOptions) error {
	file, err := os.Open(source.Path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return fmt.Errorf("cannot read header: %w", err)
	}

	have := make(map[string]bool, len(header))
	for _, col := range header {
		have[strings.ToLower(strings.TrimSpace(col))] = true
	}
	for _, col := range recordFields {
		if !have[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	if opts.CountRecords {
		count := 0
		for {
			if _, err := r.Read(); err != nil {
				if err == io.EOF {
					break
				}
				return fmt.Errorf("read error after %d rows: %w", count, err)
			}
			count++
		}
		source.RecordCount = count
	}

	if opts.Verbose {
		opts.Logger(fmt.Sprintf("CSV validation passed: %s (%d records)", source.Path, source.RecordCount))
	}
	return nil
}

// validateJSONL parses every line, requiring the canonical record keys and
// tolerating a bounded fraction of bad lines.
func validateJSONL(source *DataSource, opts ValidationOptions) error {
	info, err := os.Stat(source.Path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}
	// Empty file is valid (0 records).
	if info.Size() == 0 {
		source.RecordCount = 0
		return nil
	}

	file, err := os.Open(source.Path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNum := 0
	validLines := 0
	errorLines := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if lineNum == 1 {
			line = bytes.TrimPrefix(line, []byte{0xEF, 0xBB, 0xBF})
		}

		var row map[string]interface{}
		if err := json.Unmarshal(line, &row); err != nil {
			errorLines++
			if opts.Verbose {
				opts.Logger(fmt.Sprintf("Parse error at line %d: %v", lineNum, err))
			}
			continue
		}

		missing := false
		for _, field := range recordFields {
			if _, ok := row[field]; !ok {
				missing = true
				if opts.Verbose {
					opts.Logger(fmt.Sprintf("Missing field %q at line %d", field, lineNum))
				}
				break
			}
		}
		if missing {
			errorLines++
			continue
		}
		validLines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read error at line %d: %w", lineNum, err)
	}

	if total := validLines + errorLines; total > 0 {
		errorRate := float64(errorLines) / float64(total)
		if errorRate > opts.MaxErrorRate {
			return fmt.Errorf("too many errors: %.1f%% (max %.1f%%)", errorRate*100, opts.MaxErrorRate*100)
		}
	}
	if opts.CountRecords {
		source.RecordCount = validLines
	}

	if opts.Verbose {
		opts.Logger(fmt.Sprintf("JSONL validation passed: %s (%d records, %d errors)", source.Path, validLines, errorLines))
	}
	return nil
}

// IsSourceAccessible quickly checks if a source file is accessible.
func IsSourceAccessible(source *DataSource) bool {
	_, err := os.Stat(source.Path)
	return err == nil
}
