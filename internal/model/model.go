package model

import "time"

// Shape identifies which input layout the normalizer matched.
type Shape string

const (
	// ShapeFeatureCollection is a ready-made GeoJSON FeatureCollection.
	ShapeFeatureCollection Shape = "featurecollection"
	// ShapePointList is a flat array of point records.
	ShapePointList Shape = "pointlist"
	// ShapeMissionTree is the nested missions/portals export layout.
	ShapeMissionTree Shape = "missiontree"
	// ShapeUnknown is anything the normalizer could not recognize.
	ShapeUnknown Shape = "unknown"
)

// Point is one geo-referenced placemark in EPSG:4326.
type Point struct {
	Title string  `json:"title"`
	Lon   float64 `json:"longitude"`
	Lat   float64 `json:"latitude"`
}

// Group is the ordered run of points extracted from a single mission.
// Order follows the source document, so a group doubles as a route.
type Group struct {
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}

// Document is the normalized form of one input file. Features holds the
// GeoJSON-shaped records handed to feature renderers, Groups the
// mission-grouped view used by renderers that need typed coordinates.
type Document struct {
	Name     string
	Shape    Shape
	Features []any
	Groups   []Group
	Dropped  int
}

// PointCount returns the number of typed points across all groups.
func (d *Document) PointCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Points)
	}
	return n
}

// Points returns all typed points flattened in document order.
func (d *Document) Points() []Point {
	pts := make([]Point, 0, d.PointCount())
	for _, g := range d.Groups {
		pts = append(pts, g.Points...)
	}
	return pts
}

// Bounds returns the lon/lat envelope of the typed points. The second
// return is false when the document has no typed points.
func (d *Document) Bounds() (Bounds, bool) {
	var b Bounds
	found := false
	for _, g := range d.Groups {
		for _, p := range g.Points {
			if !found {
				b = Bounds{MinLon: p.Lon, MinLat: p.Lat, MaxLon: p.Lon, MaxLat: p.Lat}
				found = true
				continue
			}
			b.Extend(p.Lon, p.Lat)
		}
	}
	return b, found
}

// Bounds is an axis-aligned lon/lat bounding box in EPSG:4326.
type Bounds struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// Extend grows the box to include the given coordinate.
func (b *Bounds) Extend(lon, lat float64) {
	if lon < b.MinLon {
		b.MinLon = lon
	}
	if lon > b.MaxLon {
		b.MaxLon = lon
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() (lon, lat float64) {
	return (b.MinLon + b.MaxLon) / 2, (b.MinLat + b.MaxLat) / 2
}

// RunStats captures one conversion run for the stats reporter.
type RunStats struct {
	Input    string
	Output   string
	Format   string
	Shape    Shape
	Missions int
	Points   int
	Features int
	Dropped  int
	Duration time.Duration
}
