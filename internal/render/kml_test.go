package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missionmap/missionmap/internal/model"
)

func renderKML(t *testing.T, doc *model.Document, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	r := &KMLRenderer{opts: opts}
	require.NoError(t, r.Render(&buf, doc))
	return buf.String()
}

func TestKMLRenderer_PlacemarksAndFolders(t *testing.T) {
	out := renderKML(t, testDoc(), Options{})

	assert.Contains(t, out, "<name>wellington</name>")
	assert.Contains(t, out, "<Folder>")
	assert.Contains(t, out, "<name>Waterfront</name>")
	assert.Contains(t, out, "<name>Hills</name>")
	assert.Contains(t, out, "<name>Beehive</name>")
	assert.Contains(t, out, "<name>Te Papa</name>")
	assert.Contains(t, out, "<name>Lookout</name>")
	assert.Contains(t, out, "174.77,-41.29")
}

func TestKMLRenderer_SharedStylesPerMission(t *testing.T) {
	out := renderKML(t, testDoc(), Options{})

	assert.Contains(t, out, `<Style id="mission-0">`)
	assert.Contains(t, out, `<Style id="mission-1">`)
	assert.Contains(t, out, "<styleUrl>#mission-0</styleUrl>")
	assert.Contains(t, out, "<styleUrl>#mission-1</styleUrl>")
}

func TestKMLRenderer_RouteOnlyForMultiPointMissions(t *testing.T) {
	out := renderKML(t, testDoc(), Options{})

	// Waterfront has two points and gets a route, Hills does not
	assert.Contains(t, out, "<name>Waterfront route</name>")
	assert.NotContains(t, out, "<name>Hills route</name>")
	assert.Contains(t, out, "<LineString>")
	assert.Contains(t, out, "<tessellate>1</tessellate>")
}

func TestKMLRenderer_DocumentNameOverride(t *testing.T) {
	out := renderKML(t, testDoc(), Options{DocumentName: "Ingress Tour"})

	assert.Contains(t, out, "<name>Ingress Tour</name>")
	assert.NotContains(t, out, "<name>wellington</name>")
}

func TestKMLRenderer_SingleUntitledGroupStaysFlat(t *testing.T) {
	doc := &model.Document{
		Name:  "flat",
		Shape: model.ShapePointList,
		Groups: []model.Group{
			{Points: []model.Point{
				{Title: "A", Lon: 1, Lat: 2},
				{Title: "B", Lon: 3, Lat: 4},
			}},
		},
	}

	out := renderKML(t, doc, Options{})

	assert.NotContains(t, out, "<Folder>")
	assert.Contains(t, out, "<name>A</name>")
	assert.Contains(t, out, "<name>Route</name>")
}

func TestKMLRenderer_EmptyDocument(t *testing.T) {
	doc := &model.Document{Name: "empty", Shape: model.ShapeUnknown}

	out := renderKML(t, doc, Options{})

	assert.Contains(t, out, `<kml xmlns="http://www.opengis.net/kml/2.2">`)
	assert.NotContains(t, out, "<Placemark>")
}

func TestKMLRenderer_LineWidth(t *testing.T) {
	out := renderKML(t, testDoc(), Options{LineWidth: 5})

	assert.Contains(t, out, "<width>5</width>")
}
