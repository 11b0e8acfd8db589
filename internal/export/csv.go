package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/confocal/internal/geometry"
)

var csvHeader = []string{"curve", "kind", "param", "index", "x", "y"}

// WriteCSV writes one row per sample point.
func WriteCSV(w io.Writer, scene geometry.Scene) error {
	if len(scene) == 0 {
		return ErrEmptyScene
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for ci, c := range scene {
		curve := strconv.Itoa(ci)
		kind := c.Kind.String()
		param := strconv.FormatFloat(c.Param, 'f', 6, 64)
		for i, p := range c.Points {
			row := []string{
				curve,
				kind,
				param,
				strconv.Itoa(i),
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
