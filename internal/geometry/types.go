package geometry

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"
)

// tracer writes to trace with key 'confocal.geometry'
func tracer() tracing.Trace {
	return tracing.Select("confocal.geometry")
}

const (
	DefaultEllipses   = 10
	DefaultHyperbolae = 24
	DefaultResolution = 100

	// LineWidth is the stroke width shared by both curve families.
	LineWidth = 1.5
	// ModeLines marks a curve as an open polyline.
	ModeLines = "lines"
)

// Point is a sample in plot coordinates.
type Point = r2.Vec

type Kind int

const (
	KindEllipse Kind = iota
	KindHyperbola
)

func (k Kind) String() string {
	switch k {
	case KindEllipse:
		return "ellipse"
	case KindHyperbola:
		return "hyperbola"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSS returns the color in rgb(r, g, b) notation.
func (c Color) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

var (
	CoolColor = Color{R: 123, G: 213, B: 224}
	WarmColor = Color{R: 237, G: 188, B: 79}
)

type Style struct {
	Color Color
	Width float64
	Mode  string
}

var (
	EllipseStyle   = Style{Color: CoolColor, Width: LineWidth, Mode: ModeLines}
	HyperbolaStyle = Style{Color: WarmColor, Width: LineWidth, Mode: ModeLines}
)

// Curve is one sampled member of the confocal family. Param holds the radius
// of an ellipse or the angle of a hyperbola.
type Curve struct {
	Kind   Kind
	Param  float64
	Points []Point
	Style  Style
}

func (c Curve) Len() int { return len(c.Points) }

// Bounds returns the componentwise minimum and maximum of the samples.
func (c Curve) Bounds() (lo, hi Point) {
	if len(c.Points) == 0 {
		return Point{}, Point{}
	}
	lo, hi = c.Points[0], c.Points[0]
	for _, p := range c.Points[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Scene is the full set of curves for one redraw, in draw order.
type Scene []Curve

// Ellipses returns the ellipse curves of s, preserving order.
func (s Scene) Ellipses() Scene { return s.filter(KindEllipse) }

// Hyperbolae returns the hyperbola curves of s, preserving order.
func (s Scene) Hyperbolae() Scene { return s.filter(KindHyperbola) }

func (s Scene) filter(k Kind) Scene {
	out := make(Scene, 0, len(s))
	for _, c := range s {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// PointCount is the total number of samples across all curves.
func (s Scene) PointCount() int {
	n := 0
	for _, c := range s {
		n += len(c.Points)
	}
	return n
}

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

func (r Range) Span() float64 { return r.Max - r.Min }

// Layout carries what a renderer needs besides the curves: fixed axis ranges.
// Axes, ticks, grid and background are never drawn.
type Layout struct {
	X, Y Range
}

// ViewBounds is derived from the viewport size and a zoom factor.
type ViewBounds struct {
	MaxRadius    float64
	WidthExtent  float64
	HeightExtent float64
}

// NewViewBounds computes bounds for a width×height viewport. The ellipse
// radii reach half the larger viewport dimension; the visible axes span
// ±width/zoom and ±height/zoom.
func NewViewBounds(width, height, zoom float64) ViewBounds {
	return ViewBounds{
		MaxRadius:    math.Max(width, height) / 2,
		WidthExtent:  width / zoom,
		HeightExtent: height / zoom,
	}
}

func (b ViewBounds) Layout() Layout {
	return Layout{
		X: Range{Min: -b.WidthExtent, Max: b.WidthExtent},
		Y: Range{Min: -b.HeightExtent, Max: b.HeightExtent},
	}
}
