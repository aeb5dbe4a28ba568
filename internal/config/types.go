// Package config holds the command-line configuration, read from a YAML file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/arloliu/cindex/alphabet"
	"github.com/arloliu/cindex/analyzer"
	"github.com/arloliu/cindex/format"
)

// Config is the root of the YAML configuration file.
type Config struct {
	// Alphabet is the alphabet id used for text conversion and analysis.
	Alphabet string `yaml:"alphabet"`
	// CostModel names the analyzer cost model, e.g. "binary", "json", "msgpack+zstd".
	CostModel string         `yaml:"cost_model"`
	Additive  AdditiveConfig `yaml:"additive"`
	Store     StoreConfig    `yaml:"store"`
	Cache     CacheConfig    `yaml:"cache"`
	LogLevel  string         `yaml:"log_level"`
}

// AdditiveConfig bounds the additive decomposition search.
type AdditiveConfig struct {
	MaxIterations int `yaml:"max_iterations"`
	SampleEntries int `yaml:"sample_entries"`
}

// StoreConfig selects where saved instructions live.
type StoreConfig struct {
	// Path is the Badger directory. Empty keeps records in memory.
	Path        string `yaml:"path"`
	Compression string `yaml:"compression"`
	Namespace   string `yaml:"namespace"`
}

// CacheConfig sizes the report cache. Zero disables it.
type CacheConfig struct {
	MaxReports int64 `yaml:"max_reports"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Alphabet:  alphabet.SimpleTextID,
		CostModel: "binary",
		Additive: AdditiveConfig{
			MaxIterations: analyzer.DefaultAdditiveIterations,
			SampleEntries: analyzer.DefaultAdditiveSamples,
		},
		Store: StoreConfig{
			Compression: format.CompressionZstd.String(),
			Namespace:   "cindex",
		},
		Cache:    CacheConfig{MaxReports: 1024},
		LogLevel: "info",
	}
}

// Validate checks values that the YAML decoder cannot.
func (c Config) Validate() error {
	if c.Additive.MaxIterations < 0 {
		return fmt.Errorf("additive.max_iterations must not be negative, got %d", c.Additive.MaxIterations)
	}
	if c.Additive.SampleEntries < 0 {
		return fmt.Errorf("additive.sample_entries must not be negative, got %d", c.Additive.SampleEntries)
	}
	if c.Cache.MaxReports < 0 {
		return fmt.Errorf("cache.max_reports must not be negative, got %d", c.Cache.MaxReports)
	}
	if _, ok := format.CompressionTypeFromString(c.Store.Compression); !ok {
		return fmt.Errorf("store.compression: unknown compression %q", c.Store.Compression)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}
