// Package config reads the TOML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"heatgrid/internal/font"
	"heatgrid/internal/gradient"
	"heatgrid/internal/multimap"
	"heatgrid/internal/raster"
)

type LineConfig struct {
	Color     string `toml:"color"`
	Thickness int    `toml:"thickness"`
}

type BoundaryConfig struct {
	LineConfig
}

type SelectionConfig struct {
	Unselected LineConfig `toml:"unselected"`
	Selected   string     `toml:"selected"`
	FactorMin  int        `toml:"factor_min"`
}

type ColorbarConfig struct {
	Enabled    bool    `toml:"enabled"`
	Mode       string  `toml:"mode"` // linear | center
	Start      string  `toml:"start"`
	Center     string  `toml:"center"`
	End        string  `toml:"end"`
	Steps      int     `toml:"steps"`
	Thickness  int     `toml:"thickness"`
	Lower      float32 `toml:"lower"`
	Upper      float32 `toml:"upper"`
	LabelCount int     `toml:"label_count"`
}

type ViewConfig struct {
	Background        string  `toml:"background"`
	Sentinel          string  `toml:"sentinel"`
	Width             int     `toml:"width"`
	Height            int     `toml:"height"`
	ScrollDivisor     float64 `toml:"scroll_divisor"`
	ShiftScrollFactor float64 `toml:"shift_scroll_factor"`
	CopyDelaySeconds  int     `toml:"copy_delay_seconds"` // 0 = default (3s)
}

func (v ViewConfig) CopyDelay() time.Duration {
	if v.CopyDelaySeconds > 0 {
		return time.Duration(v.CopyDelaySeconds) * time.Second
	}
	return 3 * time.Second
}

type FontConfig struct {
	Face            string  `toml:"face"`
	Height          float64 `toml:"height"`
	Transparent     bool    `toml:"transparent"`
	ShowCoordinates bool    `toml:"show_coordinates"`
}

type ExportConfig struct {
	Dir    string `toml:"dir"`
	Prefix string `toml:"prefix"`
}

type Config struct {
	Boundary  BoundaryConfig  `toml:"boundary"`
	Selection SelectionConfig `toml:"selection"`
	Colorbar  ColorbarConfig  `toml:"colorbar"`
	View      ViewConfig      `toml:"view"`
	Font      FontConfig      `toml:"font"`
	Export    ExportConfig    `toml:"export"`
}

// Default returns the settings used when no file exists. Thicknesses are
// small since a terminal pixel is half a character cell.
func Default() *Config {
	return &Config{
		Boundary: BoundaryConfig{LineConfig{Color: "#404040", Thickness: 2}},
		Selection: SelectionConfig{
			Unselected: LineConfig{Color: "#808080", Thickness: 1},
			Selected:   "#ffffff",
			FactorMin:  3,
		},
		Colorbar: ColorbarConfig{
			Enabled:    true,
			Mode:       "center",
			Start:      "#ff0000",
			Center:     "#006400",
			End:        "#0000ff",
			Steps:      64,
			Thickness:  8,
			LabelCount: multimap.DefaultLabelCount,
		},
		View: ViewConfig{
			Background:        "#000000",
			Sentinel:          "#ffd700",
			ScrollDivisor:     multimap.DefaultScrollDivisor,
			ShiftScrollFactor: multimap.DefaultShiftScrollFactor,
			CopyDelaySeconds:  3,
		},
		Font: FontConfig{
			Face:            "tiny",
			Height:          6,
			Transparent:     true,
			ShowCoordinates: true,
		},
		Export: ExportConfig{Prefix: "heatgrid"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be repaired by a default.
func (c *Config) Validate() error {
	switch {
	case c.Boundary.Thickness < 0:
		return errors.New("boundary.thickness must not be negative")
	case c.Selection.Unselected.Thickness < 0:
		return errors.New("selection.unselected.thickness must not be negative")
	case c.Selection.FactorMin < 0:
		return errors.New("selection.factor_min must not be negative")
	case c.Colorbar.Enabled && c.Colorbar.Thickness <= 0:
		return errors.New("colorbar.thickness must be positive")
	case c.Colorbar.Enabled && c.Colorbar.Steps <= 0:
		return errors.New("colorbar.steps must be positive")
	case c.View.Width < 0 || c.View.Height < 0:
		return errors.New("view size must not be negative")
	}
	return nil
}

// Gradient builds the colorbar gradient, also used to color numeric data.
func (c *Config) Gradient() (gradient.Gradient[raster.RGBA], error) {
	mode, err := gradient.ParseMode(c.Colorbar.Mode)
	if err != nil {
		return nil, err
	}
	var opts gradient.Options
	opts.Mode, opts.Steps = mode, c.Colorbar.Steps
	if err := parseColors(
		colorField{"colorbar.start", c.Colorbar.Start, &opts.Start},
		colorField{"colorbar.center", c.Colorbar.Center, &opts.Center},
		colorField{"colorbar.end", c.Colorbar.End, &opts.End},
	); err != nil {
		return nil, err
	}
	return gradient.New(opts), nil
}

// Settings converts the file into render settings. lower and upper are the
// data limits; they replace the colorbar range when the file leaves it
// empty (lower == upper).
func (c *Config) Settings(lower, upper float32) (multimap.Settings[raster.RGBA], error) {
	var s multimap.Settings[raster.RGBA]
	s.BetweenData.Thickness = c.Boundary.Thickness
	s.Unselected.Thickness = c.Selection.Unselected.Thickness
	s.BoundaryFactorMin = c.Selection.FactorMin
	if err := parseColors(
		colorField{"boundary.color", c.Boundary.Color, &s.BetweenData.Color},
		colorField{"selection.unselected.color", c.Selection.Unselected.Color, &s.Unselected.Color},
		colorField{"selection.selected", c.Selection.Selected, &s.Selected},
		colorField{"view.background", c.View.Background, &s.Background},
		colorField{"view.sentinel", c.View.Sentinel, &s.Sentinel},
	); err != nil {
		return s, err
	}

	if !c.Colorbar.Enabled {
		return s, nil
	}
	g, err := c.Gradient()
	if err != nil {
		return s, err
	}
	bar := &multimap.ColorbarSettings[raster.RGBA]{
		Gradient:   g,
		Thickness:  c.Colorbar.Thickness,
		Lower:      c.Colorbar.Lower,
		Upper:      c.Colorbar.Upper,
		LabelCount: c.Colorbar.LabelCount,
	}
	if bar.Lower == bar.Upper {
		bar.Lower, bar.Upper = lower, upper
	}
	s.Colorbar = bar
	return s, nil
}

// FontOptions resolves the configured face.
func (c *Config) FontOptions() (font.Options, error) {
	face, err := font.ByName(c.Font.Face)
	if err != nil {
		return font.Options{}, err
	}
	return font.Options{Face: face, Transparent: c.Font.Transparent, Height: c.Font.Height}, nil
}

// WidgetOptions returns the size and scroll tuning of the view.
func (c *Config) WidgetOptions() multimap.WidgetOptions {
	return multimap.WidgetOptions{
		Width:             c.View.Width,
		Height:            c.View.Height,
		ScrollDivisor:     c.View.ScrollDivisor,
		ShiftScrollFactor: c.View.ShiftScrollFactor,
	}
}

// Background is the parsed view.background color.
func (c *Config) Background() (raster.RGBA, error) {
	var bg raster.RGBA
	err := parseColors(colorField{"view.background", c.View.Background, &bg})
	return bg, err
}

type colorField struct {
	name string
	hex  string
	dst  *raster.RGBA
}

func parseColors(fields ...colorField) error {
	for _, f := range fields {
		col, err := raster.ParseHex(f.hex)
		if err != nil {
			return fmt.Errorf("invalid color %s = %q: %w", f.name, f.hex, err)
		}
		*f.dst = col
	}
	return nil
}
