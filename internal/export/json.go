package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/confocal/internal/geometry"
)

// ExportData is a scene in plotting-library trace form: parallel x and y
// arrays per curve plus the axis ranges.
type ExportData struct {
	FocalDistance float64     `json:"focal_distance"`
	XRange        [2]float64  `json:"x_range"`
	YRange        [2]float64  `json:"y_range"`
	Traces        []TraceData `json:"traces"`
}

type TraceData struct {
	Kind  string    `json:"kind"`
	Param float64   `json:"param"`
	Mode  string    `json:"mode"`
	Line  LineData  `json:"line"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

type LineData struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

func NewExportData(focal float64, scene geometry.Scene, layout geometry.Layout) ExportData {
	data := ExportData{
		FocalDistance: focal,
		XRange:        [2]float64{layout.X.Min, layout.X.Max},
		YRange:        [2]float64{layout.Y.Min, layout.Y.Max},
		Traces:        make([]TraceData, len(scene)),
	}

	for i, c := range scene {
		tr := TraceData{
			Kind:  c.Kind.String(),
			Param: c.Param,
			Mode:  c.Style.Mode,
			Line:  LineData{Color: c.Style.Color.CSS(), Width: c.Style.Width},
			X:     make([]float64, len(c.Points)),
			Y:     make([]float64, len(c.Points)),
		}
		for j, p := range c.Points {
			tr.X[j], tr.Y[j] = p.X, p.Y
		}
		data.Traces[i] = tr
	}
	return data
}

func WriteJSON(w io.Writer, focal float64, scene geometry.Scene, layout geometry.Layout) error {
	if len(scene) == 0 {
		return ErrEmptyScene
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(focal, scene, layout))
}
