package field

import "github.com/san-kum/confocal/internal/geometry"

// Renderer redraws the entire surface from scratch on every call.
type Renderer interface {
	Render(scene geometry.Scene, layout geometry.Layout) error
}

// LabelSink receives the formatted focal-distance label.
type LabelSink interface {
	SetLabel(text string)
}

// Fullscreen switches the host surface to fullscreen.
type Fullscreen interface {
	RequestFullscreen()
}

type nopRenderer struct{}

func (nopRenderer) Render(geometry.Scene, geometry.Layout) error { return nil }

type nopLabel struct{}

func (nopLabel) SetLabel(string) {}

type nopFullscreen struct{}

func (nopFullscreen) RequestFullscreen() {}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(scene geometry.Scene, layout geometry.Layout) error

func (f RenderFunc) Render(scene geometry.Scene, layout geometry.Layout) error {
	return f(scene, layout)
}
