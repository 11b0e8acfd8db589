package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/confocal/internal/geometry"
)

// tracer writes to trace with key 'confocal.field'
func tracer() tracing.Trace {
	return tracing.Select("confocal.field")
}

const (
	DefaultFocal      = 100.0
	DefaultStep       = 10.0
	DefaultWrapFactor = 1.1
	DefaultZoom       = 3.5
)

var (
	// ErrUnknownEvent indicates an event kind without a registered handler.
	ErrUnknownEvent = errors.New("field: unknown event")

	// ErrUnknownDirection indicates a direction name other than left or right.
	ErrUnknownDirection = errors.New("field: unknown direction")
)

// Settings are fixed for the lifetime of a Controller.
type Settings struct {
	InitialFocal float64
	Step         float64
	WrapFactor   float64
	Zoom         float64
}

func DefaultSettings() Settings {
	return Settings{
		InitialFocal: DefaultFocal,
		Step:         DefaultStep,
		WrapFactor:   DefaultWrapFactor,
		Zoom:         DefaultZoom,
	}
}

type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// ParseDirection accepts "left" or "right".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Controller is the single writer of the focal distance and view bounds.
type Controller struct {
	gen      *geometry.Generator
	settings Settings

	focal         float64
	width, height float64
	bounds        geometry.ViewBounds

	// latches consumed by the next Tick
	left, right bool

	chrome         Chrome
	touched, keyed bool
	label          string
	redraws        int
	wraps          int

	renderer   Renderer
	labelSink  LabelSink
	fullscreen Fullscreen
}

type Option func(*Controller)

func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

func WithLabelSink(l LabelSink) Option {
	return func(c *Controller) { c.labelSink = l }
}

func WithFullscreen(f Fullscreen) Option {
	return func(c *Controller) { c.fullscreen = f }
}

// New creates a controller for a width×height viewport. Nothing is drawn
// until Start is called.
func New(gen *geometry.Generator, s Settings, width, height float64, opts ...Option) *Controller {
	c := &Controller{
		gen:        gen,
		settings:   s,
		focal:      s.InitialFocal,
		width:      width,
		height:     height,
		bounds:     geometry.NewViewBounds(width, height, s.Zoom),
		chrome:     initialChrome(),
		renderer:   nopRenderer{},
		labelSink:  nopLabel{},
		fullscreen: nopFullscreen{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start performs the initial draw.
func (c *Controller) Start() error {
	tracer().Infof("start: focal=%g viewport=%gx%g", c.focal, c.width, c.height)
	return c.redraw()
}

func (c *Controller) FocalDistance() float64         { return c.focal }
func (c *Controller) Bounds() geometry.ViewBounds    { return c.bounds }
func (c *Controller) Viewport() (w, h float64)       { return c.width, c.height }
func (c *Controller) Chrome() Chrome                 { return c.chrome }
func (c *Controller) Label() string                  { return c.label }
func (c *Controller) Redraws() int                   { return c.redraws }
func (c *Controller) Wraps() int                     { return c.wraps }
func (c *Controller) Settings() Settings             { return c.settings }
func (c *Controller) Generator() *geometry.Generator { return c.gen }

// Limit is the focal-distance magnitude beyond which the sign flips.
func (c *Controller) Limit() float64 {
	return c.settings.WrapFactor * c.width
}

// Scene computes a fresh scene for the current state.
func (c *Controller) Scene() geometry.Scene {
	return c.gen.Scene(c.focal, c.bounds)
}

// Latch arms a direction for the next Tick.
func (c *Controller) Latch(d Direction) {
	if d == Left {
		c.left = true
	} else {
		c.right = true
	}
}

// Tick applies the armed latches, left before right, then the wrap-around
// rule, then redraws. With both latches armed the steps cancel.
func (c *Controller) Tick() error {
	if c.left {
		c.focal -= c.settings.Step
		c.left = false
	}
	if c.right {
		c.focal += c.settings.Step
		c.right = false
	}
	if limit := c.Limit(); math.Abs(c.focal) > limit {
		tracer().Debugf("wrap: |%g| > %g", c.focal, limit)
		c.focal = -c.focal
		c.wraps++
	}
	return c.redraw()
}

// KeyDown handles a directional key press.
func (c *Controller) KeyDown(d Direction) error {
	c.Latch(d)
	return c.Tick()
}

// PressStart handles the start of a press on an on-screen arrow.
func (c *Controller) PressStart(d Direction) error {
	c.chrome.setPressed(d, true)
	c.Latch(d)
	return c.Tick()
}

// PressStop releases an on-screen arrow. The focal distance is untouched.
func (c *Controller) PressStop(d Direction) {
	c.chrome.setPressed(d, false)
}

// Resize recomputes the view bounds for a new viewport and redraws. The
// focal distance is kept.
func (c *Controller) Resize(width, height float64) error {
	c.width, c.height = width, height
	c.bounds = geometry.NewViewBounds(width, height, c.settings.Zoom)
	tracer().Debugf("resize: %gx%g maxRadius=%g", width, height, c.bounds.MaxRadius)
	return c.redraw()
}

// FirstTouch reveals the label and hides the hint and fullscreen button.
// Only the first call has an effect.
func (c *Controller) FirstTouch() {
	if c.touched {
		return
	}
	c.touched = true
	c.chrome.LabelVisible = true
	c.chrome.HintVisible = false
	c.chrome.FullscreenVisible = false
}

// FirstKeyPress is FirstTouch for keyboard users, who also lose the
// on-screen arrows. Only the first call has an effect.
func (c *Controller) FirstKeyPress() {
	if c.keyed {
		return
	}
	c.keyed = true
	c.chrome.LabelVisible = true
	c.chrome.HintVisible = false
	c.chrome.ArrowsVisible = false
	c.chrome.FullscreenVisible = false
}

func (c *Controller) RequestFullscreen() {
	c.fullscreen.RequestFullscreen()
	c.chrome.FullscreenVisible = false
}

func (c *Controller) redraw() error {
	scene := c.gen.Scene(c.focal, c.bounds)
	c.redraws++
	c.label = FormatLabel(c.focal)
	c.labelSink.SetLabel(c.label)
	if err := c.renderer.Render(scene, c.bounds.Layout()); err != nil {
		tracer().Errorf("render failed: %v", err)
		return fmt.Errorf("field: render: %w", err)
	}
	return nil
}
