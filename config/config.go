// Package config loads the YAML configuration of feature matching: which
// extractor computes descriptors, how the reference index is built, how
// distances become votes and where trained matchers are persisted.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/viant/featurematch/extractor"
	"github.com/viant/featurematch/index"
	"github.com/viant/featurematch/index/cover"
	"github.com/viant/featurematch/matcher"
)

// ExtractorConfig selects the descriptor extractor and image preparation.
type ExtractorConfig struct {
	Type      string `yaml:"type"`
	Grayscale bool   `yaml:"grayscale"`
	Equalize  bool   `yaml:"equalize"`
}

// IndexConfig selects the nearest-neighbor index.
type IndexConfig struct {
	Kind      string  `yaml:"kind"`
	CoverBase float32 `yaml:"cover_base"`
}

// CatalogConfig locates the SQLite catalog of trained matchers. An empty path
// disables persistence.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Config is the root configuration structure.
type Config struct {
	Extractor ExtractorConfig   `yaml:"extractor"`
	Index     IndexConfig       `yaml:"index"`
	Weighting matcher.Weighting `yaml:"weighting"`
	MinVotes  float64           `yaml:"min_votes"`
	Catalog   CatalogConfig     `yaml:"catalog"`
}

// Default returns the built-in configuration.
func Default() *Config { return defaultConfig() }

// Load reads a config from path. If the file does not exist, returns defaults.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() *Config {
	return &Config{
		Extractor: ExtractorConfig{Type: "orb", Grayscale: true, Equalize: true},
		Index:     IndexConfig{Kind: string(index.KindAuto), CoverBase: cover.DefaultBase},
		Weighting: matcher.DefaultWeighting,
		MinVotes:  matcher.DefaultMinVotes,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Extractor.Type == "" {
		cfg.Extractor.Type = "orb"
	}
	if cfg.Index.Kind == "" {
		cfg.Index.Kind = string(index.KindAuto)
	}
	if cfg.Index.CoverBase == 0 {
		cfg.Index.CoverBase = cover.DefaultBase
	}
}

// Validate rejects unknown extractor or index kinds and non-positive weighting.
func (c *Config) Validate() error {
	if _, err := extractor.ParseType(c.Extractor.Type); err != nil {
		return err
	}
	if _, err := index.ParseKind(c.Index.Kind); err != nil {
		return err
	}
	if c.Index.CoverBase <= 1 {
		return fmt.Errorf("config: cover_base must be greater than 1, got %v", c.Index.CoverBase)
	}
	if c.Weighting.Threshold <= 0 {
		return fmt.Errorf("config: weighting threshold must be positive, got %v", c.Weighting.Threshold)
	}
	if c.Weighting.Scale <= 0 {
		return fmt.Errorf("config: weighting scale must be positive, got %v", c.Weighting.Scale)
	}
	return nil
}

// ExtractorConfig returns the extractor settings in typed form.
func (c *Config) ExtractorConfig() (extractor.Config, error) {
	t, err := extractor.ParseType(c.Extractor.Type)
	if err != nil {
		return extractor.Config{}, err
	}
	return extractor.Config{Type: t, Grayscale: c.Extractor.Grayscale, Equalize: c.Extractor.Equalize}, nil
}

// MatcherOptions returns the matcher build options described by c.
func (c *Config) MatcherOptions() ([]matcher.Option, error) {
	kind, err := index.ParseKind(c.Index.Kind)
	if err != nil {
		return nil, err
	}
	t, err := extractor.ParseType(c.Extractor.Type)
	if err != nil {
		return nil, err
	}
	return []matcher.Option{
		matcher.WithKind(kind),
		matcher.WithCoverBase(c.Index.CoverBase),
		matcher.WithWeighting(c.Weighting),
		matcher.WithExtractor(t),
	}, nil
}
