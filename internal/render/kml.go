package render

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml/v3"

	"github.com/missionmap/missionmap/internal/model"
)

// placemarkIcon is tinted per mission by the shared styles.
const placemarkIcon = "http://maps.google.com/mapfiles/kml/paddle/wht-blank.png"

const defaultLineWidth = 3

// KMLRenderer writes a KML document with one folder per mission,
// tinted placemarks and a route line following portal order.
type KMLRenderer struct {
	opts Options
}

func (r *KMLRenderer) Render(w io.Writer, doc *model.Document) error {
	lineWidth := r.opts.LineWidth
	if lineWidth <= 0 {
		lineWidth = defaultLineWidth
	}

	elements := []kml.Element{kml.Name(documentName(r.opts, doc))}

	// one shared style per group so routes and pins match
	for i := range doc.Groups {
		c := GroupColor(i)
		elements = append(elements, kml.SharedStyle(styleID(i),
			kml.IconStyle(
				kml.Color(c),
				kml.Scale(1.1),
				kml.Icon(kml.Href(placemarkIcon)),
			),
			kml.LineStyle(
				kml.Color(c),
				kml.Width(lineWidth),
			),
		))
	}

	flat := len(doc.Groups) == 1 && doc.Groups[0].Title == ""
	for i, g := range doc.Groups {
		var children []kml.Element
		if !flat {
			children = append(children, kml.Name(g.Title))
		}

		for _, p := range g.Points {
			children = append(children, kml.Placemark(
				kml.Name(p.Title),
				kml.StyleURL("#"+styleID(i)),
				kml.Point(
					kml.Coordinates(kml.Coordinate{Lon: p.Lon, Lat: p.Lat}),
				),
			))
		}

		// the portal order doubles as the route
		if len(g.Points) >= 2 {
			coords := make([]kml.Coordinate, len(g.Points))
			for j, p := range g.Points {
				coords[j] = kml.Coordinate{Lon: p.Lon, Lat: p.Lat}
			}
			children = append(children, kml.Placemark(
				kml.Name(routeName(g)),
				kml.StyleURL("#"+styleID(i)),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(coords...),
				),
			))
		}

		if flat {
			elements = append(elements, children...)
		} else {
			elements = append(elements, kml.Folder(children...))
		}
	}

	k := kml.KML(kml.Document(elements...))
	if err := k.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to write KML: %w", err)
	}
	return nil
}

func styleID(i int) string {
	return fmt.Sprintf("mission-%d", i)
}

func routeName(g model.Group) string {
	if g.Title == "" {
		return "Route"
	}
	return g.Title + " route"
}
