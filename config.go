package ringtext

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/ringtext/downsample"
	"github.com/bodgit/ringtext/geometry"
	"github.com/bodgit/ringtext/text"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// Size is a width and height in pixels
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ColorConfig controls how the ring is colorized
type ColorConfig struct {
	// Levels is the brightness for one to four filled pixels of each block
	Levels [4]uint8 `toml:"levels"`
	// Tint is the color at full brightness, as #rrggbb
	Tint string `toml:"tint"`
}

// Config is the complete configuration of a Pipeline
type Config struct {
	Display  Size             `toml:"display"`
	Source   Size             `toml:"source"`
	Geometry geometry.Options `toml:"geometry"`
	Text     text.Options     `toml:"text"`
	Color    ColorConfig      `toml:"color"`
}

// DefaultConfig returns the configuration for a 320 by 240 panel
func DefaultConfig() Config {
	return Config{
		Display: Size{
			Width:  320,
			Height: 240,
		},
		Source: Size{
			Width:  1260,
			Height: 200,
		},
		Geometry: geometry.DefaultOptions(),
		Text:     text.DefaultOptions(),
		Color: ColorConfig{
			Levels: downsample.DefaultLevels.Level,
			Tint:   "#ffffff",
		},
	}
}

// LoadConfig reads a TOML configuration file. Anything the file does not set
// keeps its default value and unknown keys are an error.
func LoadConfig(file string) (Config, error) {
	cfg := DefaultConfig()

	path, err := homedir.Expand(file)
	if err != nil {
		return cfg, err
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func parseTint(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid tint %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid tint %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}

// Levels returns the colorizing levels
func (c Config) Levels() (downsample.Levels, error) {
	tint, err := parseTint(strings.ToLower(c.Color.Tint))
	if err != nil {
		return downsample.Levels{}, err
	}
	l := downsample.Levels{
		Level: c.Color.Levels,
		Tint:  tint,
	}
	return l, l.Validate()
}

// Validate checks every part of the configuration
func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return errors.New("display size must be positive")
	}
	if c.Source.Width <= 0 || c.Source.Height <= 0 {
		return errors.New("source size must be positive")
	}
	if _, err := geometry.ForDisplay(c.Display.Width, c.Display.Height, c.Geometry); err != nil {
		return err
	}
	if err := c.Text.Validate(); err != nil {
		return err
	}
	if _, err := c.Levels(); err != nil {
		return err
	}
	return nil
}
