// SPDX-License-Identifier: MIT

// Package config loads YAML settings and maps them onto the functional
// options of the matrix, ingest, balancing and logging packages.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julenmendieta/tadbit/hicmatrix"
	"github.com/julenmendieta/tadbit/internal/logging"
	"github.com/julenmendieta/tadbit/normalize"
	"github.com/julenmendieta/tadbit/parsers"
	"github.com/julenmendieta/tadbit/stream"
)

// ErrInvalid is returned for values that no option accepts.
var ErrInvalid = errors.New("config: invalid value")

// Config is the whole configuration file.
type Config struct {
	Ingest  IngestConfig  `yaml:"ingest"`
	Balance BalanceConfig `yaml:"balance"`
	Write   WriteConfig   `yaml:"write"`
	Matrix  MatrixConfig  `yaml:"matrix"`
	Logging LoggingConfig `yaml:"logging"`
}

// IngestConfig controls text parsing.
type IngestConfig struct {
	LabelPatterns  []string `yaml:"label_patterns"`
	CountData      *bool    `yaml:"count_data"`
	Resolution     float64  `yaml:"resolution"`
	KeepAsymmetric bool     `yaml:"keep_asymmetric"`
}

// BalanceConfig controls the iterative balancer.
type BalanceConfig struct {
	Iterations *int `yaml:"iterations"`
}

// WriteConfig controls matrix output.
type WriteConfig struct {
	Format              string `yaml:"format"`
	Compressed          bool   `yaml:"compressed"`
	Codec               string `yaml:"codec"`
	Headers             *bool  `yaml:"headers"`
	LegacyTripletLabels bool   `yaml:"legacy_triplet_labels"`
}

// MatrixConfig controls matrix construction.
type MatrixConfig struct {
	SectionCache int `yaml:"section_cache"`
}

// LoggingConfig selects the shared logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from a YAML file. A missing file yields DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML and applies defaults for missing values.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	countData, headers, iterations := true, true, normalize.DefaultIterations
	return &Config{
		Ingest:  IngestConfig{CountData: &countData},
		Balance: BalanceConfig{Iterations: &iterations},
		Write:   WriteConfig{Format: hicmatrix.FormatBinary.String(), Codec: stream.None.String(), Headers: &headers},
		Matrix:  MatrixConfig{SectionCache: hicmatrix.DefaultSectionCacheSize},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Ingest.CountData == nil {
		cfg.Ingest.CountData = defaults.Ingest.CountData
	}
	if cfg.Balance.Iterations == nil {
		cfg.Balance.Iterations = defaults.Balance.Iterations
	}
	if cfg.Write.Format == "" {
		cfg.Write.Format = defaults.Write.Format
	}
	if cfg.Write.Codec == "" {
		cfg.Write.Codec = defaults.Write.Codec
	}
	if cfg.Write.Headers == nil {
		cfg.Write.Headers = defaults.Write.Headers
	}
	if cfg.Matrix.SectionCache == 0 {
		cfg.Matrix.SectionCache = defaults.Matrix.SectionCache
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
}

// Options returns the parser options described by the section.
func (c IngestConfig) Options() ([]parsers.Option, error) {
	if c.Resolution < 0 {
		return nil, fmt.Errorf("ingest.resolution %g: %w", c.Resolution, ErrInvalid)
	}
	var opts []parsers.Option
	if len(c.LabelPatterns) > 0 {
		opts = append(opts, parsers.WithLabelPatterns(c.LabelPatterns...))
	}
	if c.CountData != nil {
		opts = append(opts, parsers.WithCountData(*c.CountData))
	}
	if c.Resolution > 0 {
		opts = append(opts, parsers.WithResolution(c.Resolution))
	}
	if c.KeepAsymmetric {
		opts = append(opts, parsers.KeepAsymmetric())
	}
	return opts, nil
}

// Options returns the balancer options described by the section.
func (c BalanceConfig) Options() []normalize.Option {
	if c.Iterations == nil {
		return nil
	}
	return []normalize.Option{normalize.WithIterations(*c.Iterations)}
}

// Options returns the write options described by the section. compressed
// without an explicit codec selects gzip.
func (c WriteConfig) Options() ([]hicmatrix.WriteOption, error) {
	var opts []hicmatrix.WriteOption
	if c.Format != "" {
		f, err := hicmatrix.ParseFormat(c.Format)
		if err != nil {
			return nil, fmt.Errorf("write.format: %w", err)
		}
		opts = append(opts, hicmatrix.WithFormat(f))
	}
	codec, err := stream.ParseCodec(c.Codec)
	if err != nil {
		return nil, fmt.Errorf("write.codec: %w", err)
	}
	if c.Compressed && codec == stream.None {
		codec = stream.Gzip
	}
	opts = append(opts, hicmatrix.WithCodec(codec))
	if c.Headers != nil {
		opts = append(opts, hicmatrix.WithHeaders(*c.Headers))
	}
	if c.LegacyTripletLabels {
		opts = append(opts, hicmatrix.WithLegacyTripletLabels())
	}
	return opts, nil
}

// Options returns the matrix construction options described by the section.
func (c MatrixConfig) Options() ([]hicmatrix.Option, error) {
	if c.SectionCache < 0 {
		return nil, fmt.Errorf("matrix.section_cache %d: %w", c.SectionCache, ErrInvalid)
	}
	if c.SectionCache == 0 {
		return nil, nil
	}
	return []hicmatrix.Option{hicmatrix.WithSectionCache(c.SectionCache)}, nil
}

// Apply installs the shared logger, writing to w.
func (c LoggingConfig) Apply(w io.Writer) error {
	level, err := logging.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("logging.level: %v: %w", err, ErrInvalid)
	}
	format, err := logging.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("logging.format: %v: %w", err, ErrInvalid)
	}
	logging.InitLogger(w, level, format)
	return nil
}
