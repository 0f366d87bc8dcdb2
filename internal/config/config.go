// Package config loads the optional pubrank config file. Everything in it
// can also be set by flag; flags win.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/pubrank/pkg/ranking"
)

// AreaList unmarshals from either a YAML sequence or a comma-separated
// string, so both styles work in config files:
//
//	areas: [ai, vision]
//	areas: ai,vision
type AreaList []string

func (a *AreaList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*a = splitAreas(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		out := make(AreaList, 0, len(list))
		for _, item := range list {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, strings.ToLower(trimmed))
			}
		}
		*a = out
		return nil
	}
	return fmt.Errorf("areas must be a string or a list, got %v", value.Kind)
}

func splitAreas(s string) AreaList {
	var out AreaList
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}

// Config is the on-disk configuration.
type Config struct {
	// DataDir holds the publication data files
	DataDir string `yaml:"data_dir"`
	// FromYear and ToYear bound the counted years, inclusive
	FromYear int `yaml:"from_year"`
	ToYear   int `yaml:"to_year"`
	// Region filters departments (world, us, europe, ...)
	Region string `yaml:"region"`
	// Areas selects research areas or a preset name
	Areas AreaList `yaml:"areas"`
	// RankPolicy is "competition" or "dense"
	RankPolicy string `yaml:"rank_policy"`
	// MinShow is the minimum number of ranked rows to display
	MinShow int `yaml:"min_show"`
	// NextTier lists venue codes demoted to next-tier status
	NextTier AreaList `yaml:"next_tier"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataDir:  ".",
		FromYear: 1970,
		// Next year, so records dated ahead of the wall clock still count.
		ToYear:     time.Now().Year() + 1,
		Region:     "world",
		RankPolicy: string(ranking.PolicyCompetition),
		MinShow:    10,
	}
}

// Load reads a YAML config file over the defaults. A missing file yields the
// defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no filter could accept.
func (c Config) Validate() error {
	if c.FromYear > c.ToYear {
		return fmt.Errorf("from_year %d is after to_year %d", c.FromYear, c.ToYear)
	}
	if c.MinShow < 1 {
		return fmt.Errorf("min_show must be at least 1, got %d", c.MinShow)
	}
	switch ranking.Policy(c.RankPolicy) {
	case ranking.PolicyCompetition, ranking.PolicyDense:
	default:
		return fmt.Errorf("unknown rank_policy %q", c.RankPolicy)
	}
	return nil
}

// Policy returns the configured rank policy.
func (c Config) Policy() ranking.Policy {
	return ranking.Policy(c.RankPolicy)
}
