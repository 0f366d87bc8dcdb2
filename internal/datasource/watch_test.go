package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSourceWatcherStartStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, CSVFileName)
	writeFile(t, path, csvHeader)

	sources, err := DiscoverSources(DiscoveryOptions{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	sw, err := NewSourceWatcher(sources, func(DataSource) {}, DefaultWatcherOptions())
	if err != nil {
		t.Fatalf("NewSourceWatcher failed: %v", err)
	}
	sw.Start()
	if got := len(sw.Sources()); got != 1 {
		t.Errorf("expected 1 watched source, got %d", got)
	}
	sw.Stop()
}

func TestAutoRefreshManagerForceRefresh(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, CSVFileName)
	jsonlPath := filepath.Join(dir, JSONLFileName)
	writeFile(t, csvPath, csvHeader+"Alice,MIT,aaai,2,1.0,2020\n")
	writeFile(t, jsonlPath, `{"name":"Bob","dept":"MIT","area":"cvpr","count":"1","adjustedcount":"0.5","year":2021}`+"\n")

	// CSV starts strictly newer.
	stale := time.Now().Add(-time.Hour)
	if err := os.Chtimes(jsonlPath, stale, stale); err != nil {
		t.Fatal(err)
	}

	sources, err := DiscoverSources(DiscoveryOptions{
		DataDir:                dir,
		ValidateAfterDiscovery: true,
		ValidationOptions:      DefaultValidationOptions(),
	})
	if err != nil {
		t.Fatal(err)
	}

	var changedTo []string
	m, err := NewAutoRefreshManager(sources, AutoRefreshOptions{
		OnSourceChange: func(src DataSource, reason string) {
			changedTo = append(changedTo, src.Path)
		},
	})
	if err != nil {
		t.Fatalf("NewAutoRefreshManager failed: %v", err)
	}
	if m.CurrentSource().Path != csvPath {
		t.Fatalf("expected CSV selected initially, got %s", m.CurrentSource().Path)
	}

	// Make the JSONL the freshest file and force a refresh.
	fresh := time.Now().Add(time.Hour)
	if err := os.Chtimes(jsonlPath, fresh, fresh); err != nil {
		t.Fatal(err)
	}
	if err := m.ForceRefresh(); err != nil {
		t.Fatalf("ForceRefresh failed: %v", err)
	}
	if m.CurrentSource().Path != jsonlPath {
		t.Errorf("expected switch to JSONL, got %s", m.CurrentSource().Path)
	}
	if len(changedTo) != 1 || changedTo[0] != jsonlPath {
		t.Errorf("expected one change callback to JSONL, got %v", changedTo)
	}
}
