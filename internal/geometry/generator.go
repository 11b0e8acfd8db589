package geometry

import "math"

// Params fixes how many curves a scene holds and how densely each is sampled.
type Params struct {
	Ellipses   int
	Hyperbolae int
	Resolution int
}

func DefaultParams() Params {
	return Params{
		Ellipses:   DefaultEllipses,
		Hyperbolae: DefaultHyperbolae,
		Resolution: DefaultResolution,
	}
}

// Validate rejects any count that is zero or negative.
func (p Params) Validate() error {
	switch {
	case p.Ellipses <= 0:
		return &ParamError{Field: "ellipses", Value: p.Ellipses}
	case p.Hyperbolae <= 0:
		return &ParamError{Field: "hyperbolae", Value: p.Hyperbolae}
	case p.Resolution <= 0:
		return &ParamError{Field: "resolution", Value: p.Resolution}
	}
	return nil
}

// Generator produces confocal curves for fixed sampling parameters.
type Generator struct {
	params Params
}

// NewGenerator validates p up front so that no later call can produce NaNs.
func NewGenerator(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		tracer().Errorf("rejected params %+v: %v", p, err)
		return nil, err
	}
	return &Generator{params: p}, nil
}

func (g *Generator) Params() Params { return g.params }

// Ellipse samples the ellipse of the given radius at Resolution angles
// evenly spaced over [0, 2π).
func (g *Generator) Ellipse(focal, radius float64) Curve {
	n := g.params.Resolution
	step := 2 * math.Pi / float64(n)
	a := math.Hypot(radius, focal)

	pts := make([]Point, n)
	for i := range pts {
		sin, cos := math.Sincos(float64(i) * step)
		pts[i] = Point{X: a * sin, Y: radius * cos}
	}
	return Curve{Kind: KindEllipse, Param: radius, Points: pts, Style: EllipseStyle}
}

// Hyperbola samples the hyperbola at angle theta over radii in
// [-maxRadius, maxRadius) with step maxRadius/Resolution, which yields
// 2·Resolution points.
func (g *Generator) Hyperbola(focal, theta, maxRadius float64) Curve {
	n := 2 * g.params.Resolution
	step := maxRadius / float64(g.params.Resolution)
	sin, cos := math.Sincos(theta)

	pts := make([]Point, n)
	for i := range pts {
		r := -maxRadius + float64(i)*step
		pts[i] = Point{X: math.Hypot(r, focal) * sin, Y: r * cos}
	}
	return Curve{Kind: KindHyperbola, Param: theta, Points: pts, Style: HyperbolaStyle}
}

// Scene returns Ellipses curves at radii evenly spaced over [0, MaxRadius)
// followed by Hyperbolae curves at angles evenly spaced over [0, 2π).
// Large scenes are sampled concurrently; the order is the same either way.
func (g *Generator) Scene(focal float64, b ViewBounds) Scene {
	ne, nh := g.params.Ellipses, g.params.Hyperbolae
	scene := make(Scene, ne+nh)

	rstep := b.MaxRadius / float64(ne)
	astep := 2 * math.Pi / float64(nh)
	build := func(start, end int) {
		for i := start; i < end; i++ {
			if i < ne {
				scene[i] = g.Ellipse(focal, float64(i)*rstep)
			} else {
				scene[i] = g.Hyperbola(focal, float64(i-ne)*astep, b.MaxRadius)
			}
		}
	}

	if g.pointsPerScene() < parallelMinPoints {
		build(0, len(scene))
	} else {
		parallelFor(len(scene), 4, build)
	}
	return scene
}

func (g *Generator) pointsPerScene() int {
	return (g.params.Ellipses + 2*g.params.Hyperbolae) * g.params.Resolution
}
