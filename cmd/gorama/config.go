package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/rmera/gorama/fetch"
)

// Config contains the options that can be given in a TOML file.
// Command line flags override them.
type Config struct {
	CacheDir       string     `toml:"cache_dir"`
	BaseURL        string     `toml:"base_url"`
	Chain          string     `toml:"chain"`
	AssumeYes      bool       `toml:"assume_yes"`
	TimeoutSeconds int        `toml:"timeout_seconds"`
	Plot           PlotConfig `toml:"plot"`
}

// PlotConfig contains the options for the plots.
type PlotConfig struct {
	Title       string  `toml:"title"`
	SizeInches  float64 `toml:"size_inches"`
	DensityStep float64 `toml:"density_step"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return &Config{
		CacheDir:       filepath.Join(cache, "gorama"),
		BaseURL:        fetch.DefaultBaseURL,
		TimeoutSeconds: int(fetch.DefaultTimeout.Seconds()),
		Plot: PlotConfig{
			Title:       "Ramachandran plot",
			SizeInches:  5,
			DensityStep: 10,
		},
	}
}

// ReadConfig reads the TOML file path. The options not present in the
// file keep their default values.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var file Config
	if err := toml.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg := DefaultConfig()
	cfg.merge(&file)
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// merge puts in the receiver the options set in o.
func (c *Config) merge(o *Config) {
	if o.CacheDir != "" {
		c.CacheDir = o.CacheDir
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Chain != "" {
		c.Chain = o.Chain
	}
	c.AssumeYes = c.AssumeYes || o.AssumeYes
	if o.TimeoutSeconds != 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.Plot.Title != "" {
		c.Plot.Title = o.Plot.Title
	}
	if o.Plot.SizeInches != 0 {
		c.Plot.SizeInches = o.Plot.SizeInches
	}
	if o.Plot.DensityStep != 0 {
		c.Plot.DensityStep = o.Plot.DensityStep
	}
}

func (c *Config) check() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds can't be negative (%d)", c.TimeoutSeconds)
	}
	if c.Plot.SizeInches < 0 {
		return fmt.Errorf("plot.size_inches can't be negative (%g)", c.Plot.SizeInches)
	}
	if c.Plot.DensityStep < 0 {
		return fmt.Errorf("plot.density_step can't be negative (%g)", c.Plot.DensityStep)
	}
	if len(c.Chain) > 1 {
		return fmt.Errorf("chain identifiers have one character, not %q", c.Chain)
	}
	return nil
}
