// Package config holds the YAML wiring description for a display: panel
// geometry, pixel format, SPI port and GPIO pin names, and where to find
// the glyph bitmaps.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one physical display attachment.
type Config struct {
	// Width and Height are the panel dimensions in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Format selects the pixel storage: "rgb565", "gray8" or "gray4".
	Format string `yaml:"format"`

	// SPI is the SPI port name; empty selects the platform default.
	SPI string `yaml:"spi"`

	// DC is the data/command GPIO pin name (required by the controller).
	DC string `yaml:"dc"`

	// RST is the optional hardware reset GPIO pin name.
	RST string `yaml:"rst"`

	// Flip rotates the panel 180°.
	Flip bool `yaml:"flip"`

	// Contrast is the initial master contrast (0-255, 0 is fully
	// dimmed). Defaults to 255 when absent from the file.
	Contrast uint8 `yaml:"contrast"`

	// FontDir is the directory holding font<N>.bin glyph bitmaps.
	FontDir string `yaml:"font_dir"`
}

// Default returns the configuration for a 128×128 RGB panel on the
// default SPI port.
func Default() *Config {
	return &Config{
		Width:    128,
		Height:   128,
		Format:   "rgb565",
		DC:       "GPIO25",
		Contrast: 255,
		FontDir:  "fonts",
	}
}

// Normalize fills zero values with defaults so partially written files
// still describe a usable panel.
func (c *Config) Normalize() {
	if c.Width <= 0 {
		c.Width = 128
	}
	if c.Height <= 0 {
		c.Height = 128
	}
	switch c.Format {
	case "rgb565", "gray8", "gray4":
	default:
		c.Format = "rgb565"
	}
	if c.DC == "" {
		c.DC = "GPIO25"
	}
	if c.FontDir == "" {
		c.FontDir = "fonts"
	}
}

// Load reads a YAML configuration. A missing file is a first run: the
// defaults are written to path and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}
	// Unmarshal over the defaults: fields absent from the file keep
	// their default value, while an explicit zero (contrast: 0) is
	// preserved.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}
	cfg.Normalize()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
