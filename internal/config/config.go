package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/confocal/internal/field"
	"github.com/san-kum/confocal/internal/geometry"
	"gopkg.in/yaml.v3"
)

const (
	DefaultZoomFactor = field.DefaultZoom
	DefaultFocal      = field.DefaultFocal
	DefaultStep       = field.DefaultStep
	DefaultWrapFactor = field.DefaultWrapFactor
	DefaultTheme      = "classic"
	DefaultWidth      = 1280
	DefaultHeight     = 720
)

// ErrInvalidConfig indicates a configuration that cannot drive a scene.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	ZoomFactor    float64        `yaml:"zoom_factor"`
	Ellipses      int            `yaml:"ellipses"`
	Hyperbolae    int            `yaml:"hyperbolae"`
	Resolution    int            `yaml:"resolution"`
	FocalDistance float64        `yaml:"focal_distance"`
	Step          float64        `yaml:"step"`
	WrapFactor    float64        `yaml:"wrap_factor"`
	Theme         string         `yaml:"theme"`
	Viewport      ViewportConfig `yaml:"viewport"`
}

// ViewportConfig is the surface size used when no live window exists,
// such as for exports and traces.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		ZoomFactor:    DefaultZoomFactor,
		Ellipses:      geometry.DefaultEllipses,
		Hyperbolae:    geometry.DefaultHyperbolae,
		Resolution:    geometry.DefaultResolution,
		FocalDistance: DefaultFocal,
		Step:          DefaultStep,
		WrapFactor:    DefaultWrapFactor,
		Theme:         DefaultTheme,
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on anything that would later divide by zero or
// collapse the view.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.ZoomFactor <= 0:
		return fmt.Errorf("%w: zoom_factor must be positive, got %g", ErrInvalidConfig, c.ZoomFactor)
	case c.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidConfig, c.Step)
	case c.WrapFactor <= 0:
		return fmt.Errorf("%w: wrap_factor must be positive, got %g", ErrInvalidConfig, c.WrapFactor)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport must be positive, got %gx%g", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

func (c *Config) Params() geometry.Params {
	return geometry.Params{
		Ellipses:   c.Ellipses,
		Hyperbolae: c.Hyperbolae,
		Resolution: c.Resolution,
	}
}

func (c *Config) Settings() field.Settings {
	return field.Settings{
		InitialFocal: c.FocalDistance,
		Step:         c.Step,
		WrapFactor:   c.WrapFactor,
		Zoom:         c.ZoomFactor,
	}
}

// Generator validates the whole config before building a generator.
func (c *Config) Generator() (*geometry.Generator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return geometry.NewGenerator(c.Params())
}
