package normalize

import (
	"github.com/missionmap/missionmap/internal/model"
)

// extractFeatureCollection returns the features array verbatim. Each
// element is assumed already a valid Feature; there is no further
// validation and no re-derivation of titles or coordinates. The typed
// group view is built alongside for renderers that need coordinates,
// but the feature sequence itself is untouched.
func extractFeatureCollection(raw map[string]any) Result {
	features, ok := raw["features"].([]any)
	if !ok {
		return Result{Shape: model.ShapeFeatureCollection, Features: []any{}}
	}
	return Result{
		Shape:    model.ShapeFeatureCollection,
		Features: features,
		Groups:   groupFromFeatures(features),
	}
}

// groupFromFeatures collects the Point-typed features into a single
// untitled group. Features with other geometry types carry no single
// coordinate and are left to the verbatim sequence only.
func groupFromFeatures(features []any) []model.Group {
	var group model.Group
	for _, rawFeature := range features {
		feature, ok := rawFeature.(map[string]any)
		if !ok {
			continue
		}
		geometry, ok := feature["geometry"].(map[string]any)
		if !ok {
			continue
		}
		lon, lat, ok := decodeCoordinates(geometry)
		if !ok {
			continue
		}
		props, _ := feature["properties"].(map[string]any)
		title := truthyString(props["name"])
		if title == "" {
			title = truthyString(props["title"])
		}
		group.Points = append(group.Points, model.Point{
			Title: title,
			Lon:   lon,
			Lat:   lat,
		})
	}
	if len(group.Points) == 0 {
		return nil
	}
	return []model.Group{group}
}
