package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/missionmap/missionmap/internal/model"
)

// Input coordinates are always lon/lat in EPSG:4326. Anything that needs
// planar math (static map zoom, route lengths) is projected to EPSG:3857
// first.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// ErrRouteTooShort is returned when a route has fewer than two points
var ErrRouteTooShort = errors.New("route needs at least two points")

// LonLatFromString parses a string in the format "lon,lat" into a
// coordinate pair. Components beyond the second are ignored.
func LonLatFromString(
	coords string,
) (
	lon float64,
	lat float64,
	err error,
) {
	// split the string into its components
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 {
		return 0, 0, ErrInvalidCoordinates
	}
	// parse the longitude
	lon, err = strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	// parse the latitude
	lat, err = strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	return lon, lat, nil
}

// Coords3857From4326 creates a GPS point from a longitude and latitude
func Coords3857From4326(
	longitude float64,
	latitude float64,
) (
	point geom.Point,
	err error,
) {
	var x, y float64
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ = f(longitude, latitude, 0)
	point = geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
			Z:  0,
		},
	)
	return point, nil
}

// RouteLine3857 builds a LineString through the points in document
// order, projected to EPSG:3857.
func RouteLine3857(points []model.Point) (geom.LineString, error) {
	if len(points) < 2 {
		return geom.LineString{}, ErrRouteTooShort
	}
	coords := make([]float64, 0, len(points)*2)
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	for _, p := range points {
		x, y, _ := f(p.Lon, p.Lat, 0)
		coords = append(coords, x, y)
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// RouteLength3857 returns the planar length of the route in Web
// Mercator meters, or zero when the route has fewer than two points.
func RouteLength3857(points []model.Point) float64 {
	ls, err := RouteLine3857(points)
	if err != nil {
		return 0
	}
	seq := ls.Coordinates()
	var total float64
	for i := 1; i < seq.Length(); i++ {
		prev := seq.Get(i - 1)
		cur := seq.Get(i)
		total += math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
	}
	return total
}
