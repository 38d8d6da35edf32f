// Package config loads settings for the clustermatch CLI from an optional
// YAML or JSON file, with CLUSTERMATCH_* environment overrides.
//
// Example file:
//
//	log_level: info
//	output: yaml
//	match:
//	  fuzzy: false
//	kmeans:
//	  max_iterations: 100
//	  seed: 1
//	  metric: euclidean
//	  fuzziness: 2
//	hierarchy:
//	  metric: manhattan
//	  workers: 4
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/TrevorS/clustermatch"
)

// Config holds all CLI configuration.
type Config struct {
	LogLevel  string          `json:"log_level" yaml:"log_level"`
	Output    string          `json:"output" yaml:"output"`
	Match     MatchConfig     `json:"match" yaml:"match"`
	KMeans    KMeansConfig    `json:"kmeans" yaml:"kmeans"`
	Hierarchy HierarchyConfig `json:"hierarchy" yaml:"hierarchy"`
}

// MatchConfig holds matcher settings.
type MatchConfig struct {
	Fuzzy bool `json:"fuzzy" yaml:"fuzzy"`
}

// KMeansConfig holds k-means settings. Fuzziness > 1 makes the kmeans
// command emit soft memberships.
type KMeansConfig struct {
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	Seed          int64   `json:"seed" yaml:"seed"`
	Metric        string  `json:"metric" yaml:"metric"`
	Fuzziness     float64 `json:"fuzziness" yaml:"fuzziness"`
}

// HierarchyConfig holds single-linkage settings.
type HierarchyConfig struct {
	Metric  string `json:"metric" yaml:"metric"`
	Workers int    `json:"workers" yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Output:   "yaml",
		KMeans: KMeansConfig{
			MaxIterations: 100,
			Metric:        "euclidean",
		},
		Hierarchy: HierarchyConfig{Metric: "euclidean"},
	}
}

// Load reads path (if non-empty) over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes a YAML or JSON file into v. The extension picks the
// decoder; unknown extensions try YAML then JSON.
func LoadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			if err := json.Unmarshal(data, v); err != nil {
				return fmt.Errorf("failed to parse %s (tried YAML and JSON): %w", path, err)
			}
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CLUSTERMATCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CLUSTERMATCH_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("CLUSTERMATCH_FUZZY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLUSTERMATCH_FUZZY: %w", err)
		}
		cfg.Match.Fuzzy = b
	}
	if v := os.Getenv("CLUSTERMATCH_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CLUSTERMATCH_SEED: %w", err)
		}
		cfg.KMeans.Seed = seed
	}
	return nil
}

// Validate checks enumerated fields and numeric ranges.
func (c Config) Validate() error {
	switch c.Output {
	case "yaml", "json":
	default:
		return fmt.Errorf("output must be \"yaml\" or \"json\", got %q", c.Output)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if _, err := ParseMetric(c.KMeans.Metric); err != nil {
		return fmt.Errorf("kmeans: %w", err)
	}
	if _, err := ParseMetric(c.Hierarchy.Metric); err != nil {
		return fmt.Errorf("hierarchy: %w", err)
	}
	if c.KMeans.MaxIterations < 0 {
		return fmt.Errorf("kmeans: max_iterations must be >= 0, got %d", c.KMeans.MaxIterations)
	}
	if c.KMeans.Fuzziness != 0 && c.KMeans.Fuzziness <= 1 {
		return fmt.Errorf("kmeans: fuzziness must be > 1 (or 0 to disable), got %g", c.KMeans.Fuzziness)
	}
	if c.Hierarchy.Workers < 0 {
		return fmt.Errorf("hierarchy: workers must be >= 0, got %d", c.Hierarchy.Workers)
	}
	return nil
}

// ParseMetric resolves a metric name. Empty means euclidean.
func ParseMetric(name string) (clustermatch.DistanceMetric, error) {
	switch strings.ToLower(name) {
	case "", "euclidean":
		return clustermatch.EuclideanMetric{}, nil
	case "manhattan":
		return clustermatch.ManhattanMetric{}, nil
	case "chebyshev":
		return clustermatch.ChebyshevMetric{}, nil
	case "cosine":
		return clustermatch.CosineMetric{}, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", name)
	}
}
