package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"dense": {
		ZoomFactor: 3.5, Ellipses: 20, Hyperbolae: 48, Resolution: 200,
		FocalDistance: 100, Step: 10, WrapFactor: 1.1, Theme: "classic",
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"sparse": {
		ZoomFactor: 3.5, Ellipses: 5, Hyperbolae: 12, Resolution: 60,
		FocalDistance: 100, Step: 10, WrapFactor: 1.1, Theme: "classic",
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"tight": {
		ZoomFactor: 2.0, Ellipses: 10, Hyperbolae: 24, Resolution: 100,
		FocalDistance: 300, Step: 25, WrapFactor: 0.8, Theme: "ocean",
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
