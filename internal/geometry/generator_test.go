package geometry

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(DefaultParams())
	require.NoError(t, err)
	return g
}

func TestParams_Validate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	tests := []struct {
		name  string
		p     Params
		field string
	}{
		{"defaults", DefaultParams(), ""},
		{"zero ellipses", Params{Ellipses: 0, Hyperbolae: 24, Resolution: 100}, "ellipses"},
		{"negative hyperbolae", Params{Ellipses: 10, Hyperbolae: -1, Resolution: 100}, "hyperbolae"},
		{"zero resolution", Params{Ellipses: 10, Hyperbolae: 24, Resolution: 0}, "resolution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.p)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParams))
			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestEllipse_Identity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newTestGenerator(t)

	for _, focal := range []float64{-350, 0, 1, 100, 1105} {
		for _, radius := range []float64{0.5, 48, 480} {
			c := g.Ellipse(focal, radius)
			require.Equal(t, DefaultResolution, c.Len())
			a2 := radius*radius + focal*focal
			for i, p := range c.Points {
				v := p.X*p.X/a2 + p.Y*p.Y/(radius*radius)
				assert.InDeltaf(t, 1.0, v, 1e-9, "f=%v r=%v point %d", focal, radius, i)
			}
		}
	}
}

func TestEllipse_Sampling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newTestGenerator(t)

	c := g.Ellipse(30, 40)
	assert.Equal(t, KindEllipse, c.Kind)
	assert.Equal(t, EllipseStyle, c.Style)
	assert.Equal(t, 40.0, c.Param)

	// theta = 0 starts at the top of the minor axis.
	assert.InDelta(t, 0, c.Points[0].X, 1e-12)
	assert.InDelta(t, 40, c.Points[0].Y, 1e-12)

	// theta = π/2 reaches the end of the major axis, sqrt(40²+30²) = 50.
	quarter := c.Points[DefaultResolution/4]
	assert.InDelta(t, 50, quarter.X, 1e-9)
	assert.InDelta(t, 0, quarter.Y, 1e-9)

	// Half-open sweep: the last sample stops one step short of 2π.
	last := c.Points[len(c.Points)-1]
	theta := 2 * math.Pi * float64(DefaultResolution-1) / DefaultResolution
	assert.InDelta(t, 50*math.Sin(theta), last.X, 1e-9)
}

func TestHyperbola_Identity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newTestGenerator(t)

	for _, focal := range []float64{-200, 100, 640} {
		for i := 0; i < DefaultHyperbolae; i++ {
			theta := float64(i) * 2 * math.Pi / DefaultHyperbolae
			sin, cos := math.Sincos(theta)
			if math.Abs(sin) < 1e-6 || math.Abs(cos) < 1e-6 {
				continue
			}
			c := g.Hyperbola(focal, theta, 500)
			for j, p := range c.Points {
				v := p.X*p.X/(sin*sin) - p.Y*p.Y/(cos*cos)
				assert.InEpsilonf(t, focal*focal, v, 1e-9, "f=%v θ=%v point %d", focal, theta, j)
			}
		}
	}
}

func TestHyperbola_Sampling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newTestGenerator(t)

	c := g.Hyperbola(100, math.Pi/4, 400)
	assert.Equal(t, KindHyperbola, c.Kind)
	assert.Equal(t, HyperbolaStyle, c.Style)
	require.Equal(t, 2*DefaultResolution, c.Len())

	cos := math.Cos(math.Pi / 4)
	assert.InDelta(t, -400*cos, c.Points[0].Y, 1e-9)
	// The sweep is half-open: maxRadius itself is never sampled.
	assert.InDelta(t, (400-4)*cos, c.Points[c.Len()-1].Y, 1e-9)
}

func TestDegenerateInputs(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newTestGenerator(t)

	curves := Scene{
		g.Ellipse(0, 0),
		g.Ellipse(100, 0),
		g.Ellipse(-100, 25),
		g.Hyperbola(0, 0, 0),
		g.Hyperbola(0, math.Pi/3, 300),
	}
	for _, c := range curves {
		for _, p := range c.Points {
			assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "NaN in %s(%v)", c.Kind, c.Param)
			assert.False(t, math.IsInf(p.X, 0) || math.IsInf(p.Y, 0), "Inf in %s(%v)", c.Kind, c.Param)
		}
	}

	// A zero-radius ellipse collapses onto the segment between the foci.
	lo, hi := curves[1].Bounds()
	assert.InDelta(t, 0, lo.Y, 1e-12)
	assert.InDelta(t, 0, hi.Y, 1e-12)
	assert.InDelta(t, 100, hi.X, 1e-9)
}

func TestScene_CountAndOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newTestGenerator(t)
	b := NewViewBounds(1000, 800, 3.5)

	scene := g.Scene(100, b)
	require.Len(t, scene, DefaultEllipses+DefaultHyperbolae)
	for i, c := range scene {
		want := KindHyperbola
		if i < DefaultEllipses {
			want = KindEllipse
		}
		assert.Equal(t, want, c.Kind, "curve %d", i)
	}

	ellipses := scene.Ellipses()
	require.Len(t, ellipses, DefaultEllipses)
	assert.Equal(t, 0.0, ellipses[0].Param)
	assert.InDelta(t, 450, ellipses[DefaultEllipses-1].Param, 1e-9)

	hyps := scene.Hyperbolae()
	require.Len(t, hyps, DefaultHyperbolae)
	assert.InDelta(t, 2*math.Pi*23/24, hyps[DefaultHyperbolae-1].Param, 1e-12)

	assert.Equal(t, DefaultEllipses*DefaultResolution+DefaultHyperbolae*2*DefaultResolution, scene.PointCount())
}

func TestScene_Idempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := newTestGenerator(t)
	b := NewViewBounds(1280, 720, 3.5)

	assert.Equal(t, g.Scene(-70, b), g.Scene(-70, b))
}

func TestNewViewBounds(t *testing.T) {
	b := NewViewBounds(1400, 700, 3.5)
	assert.Equal(t, 700.0, b.MaxRadius)
	assert.InDelta(t, 400, b.WidthExtent, 1e-12)
	assert.InDelta(t, 200, b.HeightExtent, 1e-12)

	l := b.Layout()
	assert.Equal(t, Range{Min: -400, Max: 400}, l.X)
	assert.InDelta(t, 400, l.Y.Span(), 1e-12)

	tall := NewViewBounds(300, 900, 3.5)
	assert.Equal(t, 450.0, tall.MaxRadius)
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#7bd5e0", CoolColor.Hex())
	assert.Equal(t, "rgb(237, 188, 79)", WarmColor.CSS())
	assert.Equal(t, "ellipse", KindEllipse.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}

func TestScene_ParallelMatchesSerial(t *testing.T) {
	p := Params{Ellipses: 20, Hyperbolae: 48, Resolution: 200}
	g, err := NewGenerator(p)
	require.NoError(t, err)
	require.GreaterOrEqual(t, g.pointsPerScene(), parallelMinPoints)
	b := NewViewBounds(1280, 720, 3.5)

	scene := g.Scene(250, b)
	require.Len(t, scene, 68)
	rstep, astep := b.MaxRadius/20, 2*math.Pi/48
	for i := 0; i < p.Ellipses; i++ {
		assert.Equal(t, g.Ellipse(250, float64(i)*rstep), scene[i], "ellipse %d", i)
	}
	for i := 0; i < p.Hyperbolae; i++ {
		assert.Equal(t, g.Hyperbola(250, float64(i)*astep, b.MaxRadius), scene[p.Ellipses+i], "hyperbola %d", i)
	}
}

func TestParallelFor(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 17, 68, 1000} {
		hits := make([]int32, n)
		parallelFor(n, 4, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "n=%d index %d", n, i)
		}
	}
}
