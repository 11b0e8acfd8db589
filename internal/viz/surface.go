package viz

import "github.com/san-kum/confocal/internal/geometry"

// Surface is the terminal-side collaborator of a field.Controller: it
// renders scenes, holds the label and records fullscreen requests.
type Surface struct {
	canvas     *Canvas
	label      string
	fullscreen bool
	frames     int
}

func NewSurface(cols, rows int) *Surface {
	return &Surface{canvas: NewCanvas(cols, rows)}
}

// Resize replaces the canvas when the cell size changes. The next Render
// fills it.
func (s *Surface) Resize(cols, rows int) {
	if cols == s.canvas.Width && rows == s.canvas.Height {
		return
	}
	s.canvas = NewCanvas(cols, rows)
}

// Render redraws the whole canvas. Curves are drawn in scene order, so
// later curves win cells they share with earlier ones.
func (s *Surface) Render(scene geometry.Scene, layout geometry.Layout) error {
	s.canvas.Clear()
	for _, c := range scene {
		s.canvas.DrawCurve(c, layout)
	}
	s.frames++
	return nil
}

func (s *Surface) SetLabel(text string) { s.label = text }

func (s *Surface) RequestFullscreen() { s.fullscreen = true }

func (s *Surface) Canvas() *Canvas  { return s.canvas }
func (s *Surface) Label() string    { return s.label }
func (s *Surface) Fullscreen() bool { return s.fullscreen }
func (s *Surface) Frames() int      { return s.frames }
