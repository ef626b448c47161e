package render

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/missionmap/missionmap/internal/model"
)

// GPX structures
type gpxRoot struct {
	XMLName   xml.Name   `xml:"gpx"`
	Version   string     `xml:"version,attr"`
	Creator   string     `xml:"creator,attr"`
	Xmlns     string     `xml:"xmlns,attr"`
	Metadata  *gpxMeta   `xml:"metadata,omitempty"`
	Waypoints []gpxPoint `xml:"wpt"`
	Tracks    []gpxTrack `xml:"trk"`
}

type gpxMeta struct {
	Name string `xml:"name,omitempty"`
}

type gpxTrack struct {
	Name     string       `xml:"name,omitempty"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Latitude  float64 `xml:"lat,attr"`
	Longitude float64 `xml:"lon,attr"`
	Name      string  `xml:"name,omitempty"`
}

// GPXRenderer writes every point as a waypoint and every mission with
// two or more points as a track, so GPS units show both pins and the
// walking order.
type GPXRenderer struct{}

func (r *GPXRenderer) Render(w io.Writer, doc *model.Document) error {
	root := gpxRoot{
		Version: "1.1",
		Creator: "missionmap",
		Xmlns:   "http://www.topografix.com/GPX/1/1",
	}
	if doc.Name != "" {
		root.Metadata = &gpxMeta{Name: doc.Name}
	}

	for _, g := range doc.Groups {
		for _, p := range g.Points {
			root.Waypoints = append(root.Waypoints, gpxPoint{
				Latitude:  p.Lat,
				Longitude: p.Lon,
				Name:      p.Title,
			})
		}

		if len(g.Points) < 2 {
			continue
		}
		seg := gpxSegment{Points: make([]gpxPoint, 0, len(g.Points))}
		for _, p := range g.Points {
			seg.Points = append(seg.Points, gpxPoint{
				Latitude:  p.Lat,
				Longitude: p.Lon,
			})
		}
		root.Tracks = append(root.Tracks, gpxTrack{
			Name:     g.Title,
			Segments: []gpxSegment{seg},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	// Encode does not emit a trailing newline
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write trailer: %w", err)
	}
	return nil
}
