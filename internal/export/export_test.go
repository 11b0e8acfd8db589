package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/san-kum/confocal/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene(t *testing.T) (geometry.Scene, geometry.Layout) {
	t.Helper()
	g, err := geometry.NewGenerator(geometry.Params{Ellipses: 2, Hyperbolae: 3, Resolution: 8})
	require.NoError(t, err)
	b := geometry.NewViewBounds(700, 350, 3.5)
	return g.Scene(100, b), b.Layout()
}

func TestSceneToSVG(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	scene, layout := testScene(t)

	svg := SceneToSVG(scene, layout, 700, 350)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, len(scene), strings.Count(svg, "<path "))
	assert.Equal(t, 2, strings.Count(svg, `stroke="#7bd5e0"`))
	assert.Equal(t, 3, strings.Count(svg, `stroke="#edbc4f"`))
	assert.NotContains(t, svg, "<rect", "background must stay transparent")
	assert.NotContains(t, svg, "NaN")
}

func TestSceneToSVG_Mapping(t *testing.T) {
	layout := geometry.Layout{
		X: geometry.Range{Min: -10, Max: 10},
		Y: geometry.Range{Min: -5, Max: 5},
	}
	scene := geometry.Scene{{
		Kind:   geometry.KindEllipse,
		Points: []geometry.Point{{X: -10, Y: 5}, {X: 0, Y: 0}, {X: 10, Y: -5}},
		Style:  geometry.EllipseStyle,
	}}

	svg := SceneToSVG(scene, layout, 200, 100)
	assert.Contains(t, svg, `d="M0.0,0.0 L100.0,50.0 L200.0,100.0"`)
}

func TestWriters_EmptyScene(t *testing.T) {
	var buf bytes.Buffer
	layout := geometry.Layout{}
	assert.ErrorIs(t, WriteSVG(&buf, nil, layout, 10, 10), ErrEmptyScene)
	assert.ErrorIs(t, WriteCSV(&buf, nil), ErrEmptyScene)
	assert.ErrorIs(t, WriteJSON(&buf, 0, nil, layout), ErrEmptyScene)
	assert.Zero(t, buf.Len())
}

func TestWriteCSV(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	scene, _ := testScene(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, scene))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+scene.PointCount())
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"0", "ellipse", "0.000000", "0"}, records[1][:4])
	assert.Equal(t, "hyperbola", records[len(records)-1][1])
}

func TestWriteJSON(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	scene, layout := testScene(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, 100, scene, layout))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, 100.0, data.FocalDistance)
	assert.Equal(t, [2]float64{-200, 200}, data.XRange)
	require.Len(t, data.Traces, len(scene))

	first := data.Traces[0]
	assert.Equal(t, "lines", first.Mode)
	assert.Equal(t, "rgb(123, 213, 224)", first.Line.Color)
	assert.Equal(t, 1.5, first.Line.Width)
	assert.Len(t, first.X, 8)
	assert.Len(t, data.Traces[len(data.Traces)-1].Y, 16)
}
