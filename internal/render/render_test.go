package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missionmap/missionmap/internal/model"
)

// testDoc is a two-mission document shared by the renderer tests.
func testDoc() *model.Document {
	return &model.Document{
		Name:  "wellington",
		Shape: model.ShapeMissionTree,
		Features: []any{
			map[string]any{
				"type":       "Feature",
				"properties": map[string]any{"name": "Beehive"},
				"geometry": map[string]any{
					"type":        "Point",
					"coordinates": []any{174.77, -41.29},
				},
			},
		},
		Groups: []model.Group{
			{Title: "Waterfront", Points: []model.Point{
				{Title: "Beehive", Lon: 174.77, Lat: -41.29},
				{Title: "Te Papa", Lon: 174.78, Lat: -41.3},
			}},
			{Title: "Hills", Points: []model.Point{
				{Title: "Lookout", Lon: 174.75, Lat: -41.28},
			}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Format
	}{
		{"kml", "kml", FormatKML},
		{"kmz", "kmz", FormatKMZ},
		{"csv", "csv", FormatCSV},
		{"geojson", "geojson", FormatGeoJSON},
		{"json alias", "json", FormatGeoJSON},
		{"gpx", "gpx", FormatGPX},
		{"html", "html", FormatHTML},
		{"htm alias", "htm", FormatHTML},
		{"uppercase", "KML", FormatKML},
		{"leading dot", ".csv", FormatCSV},
		{"surrounding space", " gpx ", FormatGPX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFormat_Unknown(t *testing.T) {
	_, err := ParseFormat("shapefile")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	got, err := FormatFromPath("/out/missions.kml")
	require.NoError(t, err)
	assert.Equal(t, FormatKML, got)

	got, err = FormatFromPath("map.HTML")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, got)
}

func TestFormatFromPath_NoExtension(t *testing.T) {
	_, err := FormatFromPath("/out/missions")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNew_AllFormats(t *testing.T) {
	for _, f := range Formats() {
		r, err := New(f, Options{})
		require.NoError(t, err, "format %s", f)
		require.NotNil(t, r, "format %s", f)
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Format("dwg"), Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDocumentName(t *testing.T) {
	doc := &model.Document{Name: "wellington"}

	assert.Equal(t, "wellington", documentName(Options{}, doc))
	assert.Equal(t, "Override", documentName(Options{DocumentName: "Override"}, doc))
	assert.Equal(t, "Mission map", documentName(Options{}, &model.Document{}))
}

func TestGroupColor_Cycles(t *testing.T) {
	assert.Equal(t, GroupColor(0), GroupColor(len(palette)))
	assert.NotEqual(t, GroupColor(0), GroupColor(1))
}

func TestHexColor(t *testing.T) {
	c := GroupColor(0)
	hex := HexColor(c)
	assert.Len(t, hex, 7)
	assert.Equal(t, "#e61948", hex)
}
