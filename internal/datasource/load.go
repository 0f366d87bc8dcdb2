package datasource

import (
	"bufio"
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
	"github.com/Dicklesworthstone/pubrank/pkg/region"
)

// LoadOptions configures a full data-directory load.
type LoadOptions struct {
	// Selection is used to pick among discovered record sources
	Selection SelectionOptions
	// Validation is applied to discovered sources
	Validation ValidationOptions
	// Logger receives diagnostics when set
	Logger func(msg string)
}

// LoadResult is everything the engine needs from a data directory.
type LoadResult struct {
	Records []ranking.Record
	Regions region.Table
	Source  DataSource
}

// Load discovers the best record source in dataDir and loads it together
// with the region table, concurrently. The region file is optional: a data
// directory without one yields an empty table (all departments domestic).
func Load(dataDir string, opts LoadOptions) (*LoadResult, error) {
	sources, err := DiscoverSources(DiscoveryOptions{
		DataDir:                dataDir,
		ValidateAfterDiscovery: true,
		ValidationOptions:      opts.Validation,
	})
	if err != nil {
		return nil, err
	}
	selected, err := SelectBestSourceWithOptions(sources, opts.Selection)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger(fmt.Sprintf("loading %s (%d records)", selected.Path, selected.RecordCount))
	}

	result := &LoadResult{Source: selected}
	var g errgroup.Group
	g.Go(func() error {
		records, err := LoadRecords(selected)
		if err != nil {
			return fmt.Errorf("load records: %w", err)
		}
		result.Records = records
		return nil
	})
	g.Go(func() error {
		regions, err := LoadRegions(filepath.Join(dataDir, RegionsFileName))
		if err != nil {
			return fmt.Errorf("load regions: %w", err)
		}
		result.Regions = regions
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// LoadRecords reads all publication records from one source.
func LoadRecords(source DataSource) ([]ranking.Record, error) {
	switch source.Type {
	case SourceTypeCSV:
		return loadCSV(source.Path)
	case SourceTypeJSONL:
		return loadJSONL(source.Path)
	case SourceTypeSQLite:
		return loadSQLite(source.Path)
	}
	return nil, fmt.Errorf("unknown source type: %s", source.Type)
}

// loadCSV reads the canonical name,dept,area,count,adjustedcount,year
// export. Column order follows the header, so extra columns are tolerated.
func loadCSV(path string) ([]ranking.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range recordFields {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	field := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []ranking.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error after %d rows: %w", len(records), err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(field(row, "year")))
		if err != nil {
			// A row without a usable year can never pass the year filter.
			continue
		}
		records = append(records, ranking.Record{
			Author:        field(row, "name"),
			Department:    field(row, "dept"),
			Area:          field(row, "area"),
			Year:          year,
			Count:         field(row, "count"),
			AdjustedCount: field(row, "adjustedcount"),
		})
	}
	return records, nil
}

// loadJSONL reads one record per line, skipping unparsable lines (validation
// already bounded their rate).
func loadJSONL(path string) ([]ranking.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []ranking.Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Bytes()
		if first {
			line = bytes.TrimPrefix(line, []byte{0xEF, 0xBB, 0xBF})
			first = false
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var rec ranking.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func loadSQLite(path string) ([]ranking.Record, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT name, dept, area, count, adjustedcount, year FROM publications")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ranking.Record
	for rows.Next() {
		var rec ranking.Record
		if err := rows.Scan(&rec.Author, &rec.Department, &rec.Area, &rec.Count, &rec.AdjustedCount, &rec.Year); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LoadRegions reads the institution,region,countryabbrv table. A missing
// file is not an error: every department is then implicitly domestic.
func LoadRegions(path string) (region.Table, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return region.Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"institution", "region", "countryabbrv"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	table := region.Table{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error after %d rows: %w", len(table), err)
		}
		table[row[col["institution"]]] = region.Info{
			Region:       region.Region(strings.ToLower(row[col["region"]])),
			CountryAbbrv: strings.ToLower(row[col["countryabbrv"]]),
		}
	}
	return table, nil
}
