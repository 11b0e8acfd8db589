package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/confocal/internal/field"
	"github.com/san-kum/confocal/internal/geometry"
)

const arrowMargin = 0.02

// worldToScreen maps a plot point into window pixels, y down.
func worldToScreen(p geometry.Point, l geometry.Layout, width, height int) rl.Vector2 {
	sx, sy := l.X.Span(), l.Y.Span()
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	x := (p.X - l.X.Min) / sx * float64(width)
	y := (l.Y.Max - p.Y) / sy * float64(height)
	return rl.NewVector2(float32(x), float32(y))
}

// arrowRects places the arrows in the bottom corners. Their width is the
// chrome's fraction of the window width.
func arrowRects(width, height int, ch field.Chrome) (left, right rl.Rectangle) {
	w, h := float32(width), float32(height)
	margin := w * arrowMargin

	lw := w * float32(ch.ArrowWidth(field.Left))
	rw := w * float32(ch.ArrowWidth(field.Right))

	left = rl.NewRectangle(margin, h-margin-lw*0.6, lw, lw*0.6)
	right = rl.NewRectangle(w-margin-rw, h-margin-rw*0.6, rw, rw*0.6)
	return left, right
}

func fullscreenRect(width int) rl.Rectangle {
	return rl.NewRectangle(float32(width)-120, 16, 104, 30)
}

// labelSize is 2.5% of the window width, with a readable floor.
func labelSize(width int) int32 {
	return max(int32(float32(width)*0.025), 14)
}

type target int

const (
	targetNone target = iota
	targetLeft
	targetRight
	targetFullscreen
)

// hitTarget resolves a click at pos against the controls visible in ch.
func hitTarget(pos rl.Vector2, width, height int, ch field.Chrome) target {
	left, right := arrowRects(width, height, ch)
	switch {
	case ch.ArrowsVisible && contains(left, pos):
		return targetLeft
	case ch.ArrowsVisible && contains(right, pos):
		return targetRight
	case ch.FullscreenVisible && contains(fullscreenRect(width), pos):
		return targetFullscreen
	}
	return targetNone
}

func contains(r rl.Rectangle, p rl.Vector2) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}
