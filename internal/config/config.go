// Package config loads optional user settings from a TOML file. Every
// field has a default; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-tunable settings.
type Config struct {
	// FrameRate is the interactive simulation tick rate (frames/sec).
	FrameRate int `toml:"frame_rate"`

	Sim    SimConfig    `toml:"sim"`
	Export ExportConfig `toml:"export"`
}

// SimConfig overrides layout simulation tuning. Zero values keep the
// simulation defaults.
type SimConfig struct {
	MaxSteps       int     `toml:"max_steps"`
	CenterStrength float64 `toml:"center_strength"`
	LinkFraction   float64 `toml:"link_fraction"`
	RepelStrength  float64 `toml:"repel_strength"`
	RadialStrength float64 `toml:"radial_strength"`
}

// ExportConfig sets snapshot export defaults.
type ExportConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FrameRate: 30,
		Export:    ExportConfig{Width: 1200, Height: 900},
	}
}

// Load reads the user config file, falling back to defaults when the
// file does not exist. The path is $XDG_CONFIG_HOME/arbor/config.toml
// (via os.UserConfigDir).
func Load() (Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(dir, "arbor", "config.toml"))
}

// LoadFile reads a specific config file, layering it over defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = Default().FrameRate
	}
	if cfg.Export.Width <= 0 {
		cfg.Export.Width = Default().Export.Width
	}
	if cfg.Export.Height <= 0 {
		cfg.Export.Height = Default().Export.Height
	}
	return cfg, nil
}
