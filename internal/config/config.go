package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"hmd-optics/internal/optics"
)

// Config holds the optical preset and render settings for the viewer
// tools.
type Config struct {
	// Optical preset. Zero values fall back to the Cardboard-like
	// baseline in Resolve.
	FocalLength   float64 `json:"focal_length"`
	IPD           float64 `json:"ipd"`
	EyeRelief     float64 `json:"eye_relief"`
	LensToDisplay float64 `json:"lens_to_display"`
	DisplayWidth  float64 `json:"display_width"`
	DisplayHeight float64 `json:"display_height"`

	LensDiameter      float64 `json:"lens_diameter"`
	EyeSocketDiameter float64 `json:"eye_socket_diameter"`
	DisplayThickness  float64 `json:"display_thickness"`

	// Render settings
	FarMargin   float64 `json:"far_margin"`
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Format      string  `json:"format"` // webp or tga
	OutputDir   string  `json:"output_dir"`
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	RenderSize  int
	Supersample int
	Format      string
	Workers     int
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	base := optics.DefaultParameters()
	defaultPositive(&c.FocalLength, base.FocalLength)
	defaultPositive(&c.IPD, base.IPD)
	defaultPositive(&c.EyeRelief, base.EyeRelief)
	defaultPositive(&c.LensToDisplay, base.LensToDisplay)
	defaultPositive(&c.DisplayWidth, base.DisplayWidth)
	defaultPositive(&c.DisplayHeight, base.DisplayHeight)
	defaultPositive(&c.LensDiameter, base.LensDiameter)
	defaultPositive(&c.EyeSocketDiameter, base.EyeSocketDiameter)
	defaultPositive(&c.DisplayThickness, base.DisplayThickness)
	defaultPositive(&c.FarMargin, optics.DefaultFarMargin)

	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Parameters assembles the optical parameter set described by the config.
func (c *Config) Parameters() optics.Parameters {
	return optics.Parameters{
		FocalLength:       c.FocalLength,
		IPD:               c.IPD,
		EyeRelief:         c.EyeRelief,
		LensToDisplay:     c.LensToDisplay,
		DisplayWidth:      c.DisplayWidth,
		DisplayHeight:     c.DisplayHeight,
		LensDiameter:      c.LensDiameter,
		EyeSocketDiameter: c.EyeSocketDiameter,
		DisplayThickness:  c.DisplayThickness,
	}
}

func defaultPositive(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}
