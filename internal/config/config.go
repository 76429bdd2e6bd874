// Package loading dbsearch configuration files
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jsdoublel/dbsearch/internal/derive"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrTypeOutRange  = errors.New("out of type range")
)

// Search and output settings; the zero value of every field keeps the
// default behavior (sequential exhaustive search, node log only)
type Config struct {
	Procs    int    `yaml:"procs"`     // workers for the combination scan
	MaxDepth int    `yaml:"max_depth"` // 0 is unbounded
	Target   string `yaml:"target"`    // symbol the whole input should reduce to
	Output   Output `yaml:"output"`
}

// Optional output files
type Output struct {
	Newick     string `yaml:"newick"`      // derivation tree
	StatsCSV   string `yaml:"stats_csv"`   // per-depth statistics
	PlotPrefix string `yaml:"plot_prefix"` // <prefix>.png nodes per depth plot
	Metrics    string `yaml:"metrics"`     // prometheus text file
}

func Default() *Config {
	return &Config{Procs: 1}
}

// Reads config file at path on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w, error parsing %s: %s", ErrInvalidConfig, path, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Procs < 0 {
		return fmt.Errorf("procs %d is %w", c.Procs, ErrTypeOutRange)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth %d is %w", c.MaxDepth, ErrTypeOutRange)
	}
	if _, _, err := c.TargetSymbol(); err != nil {
		return err
	}
	return nil
}

// Target as a symbol; ok is false when no target is set
func (c *Config) TargetSymbol() (sym derive.Symbol, ok bool, err error) {
	if c.Target == "" {
		return 0, false, nil
	}
	seq, err := derive.ParseSequence(c.Target)
	if err != nil || len(seq) != 1 {
		return 0, false, fmt.Errorf("%w, target %q should be a single symbol of %q", ErrInvalidConfig, c.Target, derive.Alphabet)
	}
	return seq[0], true, nil
}
