package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missionmap/missionmap/internal/model"
)

func TestExtractFeatureCollection_IdentityPassthrough(t *testing.T) {
	n := newTestNormalizer()
	raw := mustParse(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[174.77,-41.29]}}
	]}`)

	res := n.Extract(raw)

	assert.Equal(t, model.ShapeFeatureCollection, res.Shape)
	original := raw.(map[string]any)["features"].([]any)
	if diff := cmp.Diff(original, res.Features); diff != "" {
		t.Errorf("features not passed through verbatim (-want +got):\n%s", diff)
	}
	assert.Zero(t, res.Dropped)
}

func TestExtractFeatureCollection_EmptyFeatures(t *testing.T) {
	n := newTestNormalizer()

	res := n.Extract(mustParse(t, `{"type":"FeatureCollection","features":[]}`))

	assert.Equal(t, model.ShapeFeatureCollection, res.Shape)
	assert.Empty(t, res.Features)
	assert.Empty(t, res.Groups)
}

func TestExtractFeatureCollection_NonFeatureElementsKept(t *testing.T) {
	n := newTestNormalizer()
	raw := mustParse(t, `{"type":"FeatureCollection","features":[42,"not a feature",{"type":"Feature"}]}`)

	res := n.Extract(raw)

	// passthrough means no validation of the elements at all
	require.Len(t, res.Features, 3)
	assert.Equal(t, float64(42), res.Features[0])
	assert.Equal(t, "not a feature", res.Features[1])
	assert.Empty(t, res.Groups)
}

func TestExtractFeatureCollection_GroupView(t *testing.T) {
	n := newTestNormalizer()
	raw := mustParse(t, `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"Beehive"},"geometry":{"type":"Point","coordinates":[174.7762,-41.2785]}},
		{"type":"Feature","properties":{"title":"Te Papa"},"geometry":{"type":"Point","coordinates":[174.7819,-41.2905]}},
		{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}},
		{"type":"Feature","properties":{"name":"No geometry"}}
	]}`)

	res := n.Extract(raw)

	require.Len(t, res.Features, 4, "passthrough keeps every element")
	require.Len(t, res.Groups, 1)
	pts := res.Groups[0].Points
	require.Len(t, pts, 2, "only Point geometries become typed points")
	assert.Equal(t, "Beehive", pts[0].Title)
	assert.Equal(t, 174.7762, pts[0].Lon)
	assert.Equal(t, -41.2785, pts[0].Lat)
	assert.Equal(t, "Te Papa", pts[1].Title, "title property is the fallback name")
}
