package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/confocal/internal/geometry"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Ink tags a cell with the curve family that last touched it.
type Ink uint8

const (
	InkNone Ink = iota
	InkEllipse
	InkHyperbola
)

func inkFor(k geometry.Kind) Ink {
	if k == geometry.KindHyperbola {
		return InkHyperbola
	}
	return InkEllipse
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]Ink
	// Pen is the ink applied by Set and DrawLine.
	Pen Ink
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]Ink, h),
		Pen:    InkEllipse,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]Ink, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// SubWidth and SubHeight give the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = c.Pen
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = InkNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// project maps a plot point to fractional sub-pixel coordinates, y down.
func (c *Canvas) project(p geometry.Point, l geometry.Layout) (float64, float64) {
	sx := (p.X - l.X.Min) / nonZero(l.X.Span()) * float64(c.SubWidth()-1)
	sy := (l.Y.Max - p.Y) / nonZero(l.Y.Span()) * float64(c.SubHeight()-1)
	return sx, sy
}

// DrawSegment draws the part of the plot-space segment a–b that falls
// inside the canvas.
func (c *Canvas) DrawSegment(a, b geometry.Point, l geometry.Layout) {
	x0, y0 := c.project(a, l)
	x1, y1 := c.project(b, l)
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, float64(c.SubWidth()-1), float64(c.SubHeight()-1))
	if !ok {
		return
	}
	c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
}

// DrawCurve draws c as an open polyline in the ink of its family.
func (c *Canvas) DrawCurve(curve geometry.Curve, l geometry.Layout) {
	c.Pen = inkFor(curve.Kind)
	for i := 1; i < len(curve.Points); i++ {
		c.DrawSegment(curve.Points[i-1], curve.Points[i], l)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each run of same-ink cells wrapped in its style.
func (c *Canvas) Render(styles map[Ink]lipgloss.Style) string {
	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[r][j] == c.Ink[r][start] {
				continue
			}
			run := string(row[start:j])
			if st, ok := styles[c.Ink[r][start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = j
		}
		if r < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// clip is Liang–Barsky against [0,xmax]×[0,ymax].
func clip(x0, y0, x1, y1, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0

	edges := [4][2]float64{
		{-dx, x0},
		{dx, xmax - x0},
		{-dy, y0},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
