// Package config handles seriesview configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Render   RenderConfig   `yaml:"render"`
	Cache    CacheConfig    `yaml:"cache"`
	Data     DataConfig     `yaml:"data"`
	Filters  FiltersConfig  `yaml:"filters"`
	LogFile  string         `yaml:"log_file"`
}

// ViewportConfig holds the initial view.
type ViewportConfig struct {
	// Limit is the number of channels on one page.
	Limit int `yaml:"limit"`
	// InitialFraction is the part of the domain shown after a load.
	InitialFraction [2]float64 `yaml:"initial_fraction"`
	// ZoomStep is the interval scale applied per scroll step.
	ZoomStep float64 `yaml:"zoom_step"`
}

// RenderConfig holds compositor settings.
type RenderConfig struct {
	XTicks       int     `yaml:"x_ticks"`
	YTicks       int     `yaml:"y_ticks"`
	YTickPadding int     `yaml:"y_tick_padding"`
	EpochCap     int     `yaml:"epoch_cap"`
	EpochOpacity float32 `yaml:"epoch_opacity"`
	LineWidth    float32 `yaml:"line_width"`
}

// CacheConfig bounds the geometry cache. A capacity of zero never evicts.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// DataConfig names the dataset to open at startup. With no manifest a
// synthetic dataset is generated.
type DataConfig struct {
	Manifest          string `yaml:"manifest"`
	Epochs            string `yaml:"epochs"`
	SyntheticChannels int    `yaml:"synthetic_channels"`
	SyntheticSeconds  int    `yaml:"synthetic_seconds"`
}

// FiltersConfig holds the initial filter preset keys.
type FiltersConfig struct {
	HighPass string `yaml:"high_pass"`
	LowPass  string `yaml:"low_pass"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Limit:           6,
			InitialFraction: [2]float64{0.25, 0.75},
			ZoomStep:        1.1,
		},
		Render: RenderConfig{
			XTicks:       10,
			YTicks:       5,
			YTickPadding: 1,
			EpochCap:     100,
			EpochOpacity: 0.3,
			LineWidth:    1,
		},
		Cache: CacheConfig{
			Capacity: 4096,
		},
		Data: DataConfig{
			SyntheticChannels: 16,
			SyntheticSeconds:  60,
		},
		Filters: FiltersConfig{
			HighPass: "none",
			LowPass:  "none",
		},
	}
}

var ErrInvalid = errors.New("invalid configuration")

// Validate checks values that would otherwise break the display.
func (c *Config) Validate() error {
	switch {
	case c.Viewport.Limit <= 0:
		return fmt.Errorf("%w: viewport.limit must be positive, got %d", ErrInvalid, c.Viewport.Limit)
	case c.Viewport.InitialFraction[0] < 0 || c.Viewport.InitialFraction[1] > 1 ||
		c.Viewport.InitialFraction[0] >= c.Viewport.InitialFraction[1]:
		return fmt.Errorf("%w: viewport.initial_fraction must be increasing within [0,1], got %v", ErrInvalid, c.Viewport.InitialFraction)
	case c.Viewport.ZoomStep <= 1:
		return fmt.Errorf("%w: viewport.zoom_step must exceed 1, got %v", ErrInvalid, c.Viewport.ZoomStep)
	case c.Render.EpochCap <= 0:
		return fmt.Errorf("%w: render.epoch_cap must be positive, got %d", ErrInvalid, c.Render.EpochCap)
	case c.Render.EpochOpacity < 0 || c.Render.EpochOpacity > 1:
		return fmt.Errorf("%w: render.epoch_opacity must be within [0,1], got %v", ErrInvalid, c.Render.EpochOpacity)
	}
	return nil
}

// Load loads configuration from a file. Fields the file omits keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default if path is
// empty or missing.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
