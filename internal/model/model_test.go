package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentPointCount(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		expected int
	}{
		{"empty", Document{}, 0},
		{"one group", Document{Groups: []Group{
			{Title: "Alpha", Points: []Point{{Title: "a", Lon: 1, Lat: 2}}},
		}}, 1},
		{"two groups", Document{Groups: []Group{
			{Title: "Alpha", Points: []Point{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}},
			{Title: "Bravo", Points: []Point{{Lon: 5, Lat: 6}}},
		}}, 3},
		{"group without points", Document{Groups: []Group{{Title: "Empty"}}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.doc.PointCount())
		})
	}
}

func TestDocumentPointsOrder(t *testing.T) {
	doc := Document{Groups: []Group{
		{Title: "Alpha", Points: []Point{{Title: "a1"}, {Title: "a2"}}},
		{Title: "Bravo", Points: []Point{{Title: "b1"}}},
	}}

	pts := doc.Points()
	assert.Len(t, pts, 3)
	assert.Equal(t, "a1", pts[0].Title)
	assert.Equal(t, "a2", pts[1].Title)
	assert.Equal(t, "b1", pts[2].Title)
}

func TestDocumentBounds(t *testing.T) {
	doc := Document{Groups: []Group{
		{Points: []Point{{Lon: 13.4, Lat: 52.5}, {Lon: 2.35, Lat: 48.85}}},
		{Points: []Point{{Lon: -0.12, Lat: 51.5}}},
	}}

	b, ok := doc.Bounds()
	assert.True(t, ok)
	assert.Equal(t, -0.12, b.MinLon)
	assert.Equal(t, 13.4, b.MaxLon)
	assert.Equal(t, 48.85, b.MinLat)
	assert.Equal(t, 52.5, b.MaxLat)

	lon, lat := b.Center()
	assert.InDelta(t, 6.64, lon, 0.001)
	assert.InDelta(t, 50.675, lat, 0.001)
}

func TestDocumentBoundsEmpty(t *testing.T) {
	doc := Document{Shape: ShapeUnknown}
	_, ok := doc.Bounds()
	assert.False(t, ok)
}

func TestBoundsExtend(t *testing.T) {
	b := Bounds{MinLon: 1, MinLat: 1, MaxLon: 1, MaxLat: 1}
	b.Extend(3, -2)
	b.Extend(-1, 5)

	assert.Equal(t, Bounds{MinLon: -1, MinLat: -2, MaxLon: 3, MaxLat: 5}, b)
}
