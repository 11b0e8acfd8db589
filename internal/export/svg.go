package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/confocal/internal/geometry"
)

// ErrEmptyScene indicates there is nothing to export.
var ErrEmptyScene = errors.New("export: empty scene")

// SceneToSVG draws scene onto a width×height SVG whose axes span the layout
// ranges. The background is left transparent.
func SceneToSVG(scene geometry.Scene, layout geometry.Layout, width, height int) string {
	rangeX := layout.X.Span()
	rangeY := layout.Y.Span()
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, width, height, width, height))

	for _, c := range scene {
		if len(c.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path class="%s" fill="none" stroke="%s" stroke-width="%g" d="M`,
			c.Kind, c.Style.Color.Hex(), c.Style.Width))

		for i, p := range c.Points {
			x := (p.X - layout.X.Min) / rangeX * float64(width)
			y := float64(height) - (p.Y-layout.Y.Min)/rangeY*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes SceneToSVG output to w.
func WriteSVG(w io.Writer, scene geometry.Scene, layout geometry.Layout, width, height int) error {
	if len(scene) == 0 {
		return ErrEmptyScene
	}
	_, err := io.WriteString(w, SceneToSVG(scene, layout, width, height))
	return err
}
