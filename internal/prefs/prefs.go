// Package prefs persists the last filter settings per data directory, so an
// interactive session picks up where the previous one left off.
package prefs

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// FilterPrefs stores the last-used ranking filter for one data directory.
type FilterPrefs struct {
	// DataDir is the absolute path to the data directory
	DataDir string `json:"data_dir"`

	// FromYear and ToYear bound the counted years, inclusive
	FromYear int `json:"from_year"`
	ToYear   int `json:"to_year"`

	// Region is the last region filter
	Region string `json:"region"`

	// Areas is the last area selection
	Areas []string `json:"areas,omitempty"`

	// SavedAt is when the preference was written
	SavedAt time.Time `json:"saved_at"`
}

// prefsDir returns the directory filter preferences are stored in.
func prefsDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pubrank", "filters"), nil
}

// dataDirHash generates a consistent file name for a data directory.
// SHA256 of the absolute path, truncated to 16 hex chars.
func dataDirHash(dataDir string) (string, error) {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(hash[:8]), nil
}

func prefsPath(dataDir string) (string, error) {
	dir, err := prefsDir()
	if err != nil {
		return "", err
	}
	hash, err := dataDirHash(dataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, hash+".json"), nil
}

// Load returns the saved filter for a data directory, or nil if none exists.
func Load(dataDir string) (*FilterPrefs, error) {
	path, err := prefsPath(dataDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var p FilterPrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save persists the filter for a data directory.
func Save(dataDir string, p FilterPrefs) error {
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return err
	}
	p.DataDir = abs
	p.SavedAt = time.Now()

	dir, err := prefsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := prefsPath(dataDir)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clear removes the saved filter for a data directory.
func Clear(dataDir string) error {
	path, err := prefsPath(dataDir)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
