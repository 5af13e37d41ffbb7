package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"protgroup/internal/output"
	"protgroup/internal/parsimony"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full run configuration. Load decodes a file over Default().
type Config struct {
	SplitTaxonomy bool           `toml:"split_taxonomy" yaml:"split_taxonomy"`
	Rank          string         `toml:"rank" yaml:"rank"`
	Taxonomy      TaxonomyConfig `toml:"taxonomy" yaml:"taxonomy"`
	Output        OutputConfig   `toml:"output" yaml:"output"`
	Log           LogConfig      `toml:"log" yaml:"log"`
	Metrics       MetricsConfig  `toml:"metrics" yaml:"metrics"`
	Batch         BatchConfig    `toml:"batch" yaml:"batch"`
}

// TaxonomyConfig names the files used by split_taxonomy.
type TaxonomyConfig struct {
	Nodes     string `toml:"nodes" yaml:"nodes"`         // nodes.dmp style tree
	Organisms string `toml:"organisms" yaml:"organisms"` // protein → organism map
}

// OutputConfig selects the output format and optional text columns.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Header bool   `toml:"header" yaml:"header"`
	Flags  bool   `toml:"flags" yaml:"flags"`
}

// LogConfig sets the zerolog level name.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `toml:"textfile" yaml:"textfile"` // Prometheus textfile path; empty disables
}

// BatchConfig bounds batch concurrency.
type BatchConfig struct {
	Workers int `toml:"workers" yaml:"workers"` // 0 = all CPUs
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Rank:   string(parsimony.RankSpecies),
		Output: OutputConfig{Format: output.FormatText, Header: true},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over Default().
// Cross-field checks are left to Validate, since flags may still override.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := cfg.validateFields(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and the combinations between them.
func (c Config) Validate() error {
	if err := c.validateFields(); err != nil {
		return err
	}
	if c.SplitTaxonomy && c.Taxonomy.Nodes == "" {
		return fmt.Errorf("%w: split_taxonomy needs taxonomy.nodes", ErrInvalid)
	}
	if c.SplitTaxonomy && c.Taxonomy.Organisms == "" {
		return fmt.Errorf("%w: split_taxonomy needs taxonomy.organisms", ErrInvalid)
	}
	return nil
}

func (c Config) validateFields() error {
	if !parsimony.Rank(strings.ToLower(c.Rank)).Valid() {
		return fmt.Errorf("%w: rank %q", ErrInvalid, c.Rank)
	}
	if !slices.Contains(output.Formats, c.Output.Format) {
		return fmt.Errorf("%w: output.format %q", ErrInvalid, c.Output.Format)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("%w: batch.workers must be ≥ 0", ErrInvalid)
	}
	return nil
}
