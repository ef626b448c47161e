package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/missionmap/missionmap/internal/model"
)

// GeoJSONRenderer emits a FeatureCollection. GeoJSON input is written
// back verbatim so a collection round-trips unchanged; the other
// shapes are built up from the typed points, carrying the mission as
// a property.
type GeoJSONRenderer struct{}

func (r *GeoJSONRenderer) Render(w io.Writer, doc *model.Document) error {
	if doc.Shape == model.ShapeFeatureCollection {
		enc := json.NewEncoder(w)
		if err := enc.Encode(map[string]any{
			"type":     "FeatureCollection",
			"features": doc.Features,
		}); err != nil {
			return fmt.Errorf("failed to encode feature collection: %w", err)
		}
		return nil
	}

	fc := geojson.NewFeatureCollection()
	for _, g := range doc.Groups {
		for _, p := range g.Points {
			f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
			f.Properties = geojson.Properties{"name": p.Title}
			if g.Title != "" {
				f.Properties["mission"] = g.Title
			}
			fc.Append(f)
		}
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode feature collection: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write feature collection: %w", err)
	}
	return nil
}
