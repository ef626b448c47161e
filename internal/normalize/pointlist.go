package normalize

import (
	"github.com/missionmap/missionmap/internal/model"
)

// extractPointList maps every element of a flat point array to a
// feature. Unlike the mission tree walk, no element is ever skipped:
// a record without numeric coordinates still contributes a feature,
// its lng/lat values carried into the geometry as-is. Only the typed
// group view leaves such records out, since it cannot carry a point
// without numbers.
func extractPointList(list []any) Result {
	features := make([]any, 0, len(list))
	var group model.Group

	for _, el := range list {
		rec, ok := el.(map[string]any)
		if !ok {
			features = append(features, pointFeature("", nil, nil))
			continue
		}

		title := truthyString(rec["title"])
		if title == "" {
			title = truthyString(rec["name"])
		}

		features = append(features, pointFeature(title, rec["lng"], rec["lat"]))

		lon, lonOK := rec["lng"].(float64)
		lat, latOK := rec["lat"].(float64)
		if lonOK && latOK {
			group.Points = append(group.Points, model.Point{
				Title: title,
				Lon:   lon,
				Lat:   lat,
			})
		}
	}

	res := Result{Shape: model.ShapePointList, Features: features}
	if len(group.Points) > 0 {
		res.Groups = []model.Group{group}
	}
	return res
}
