package normalize

import (
	"fmt"

	"github.com/missionmap/missionmap/internal/model"
)

// extractMissionTree walks the nested missions/portals layout in
// row-major order. Portals without resolvable coordinates are dropped
// and counted; they still consume their index, so synthesized titles
// of later portals do not shift.
func extractMissionTree(raw map[string]any) Result {
	missions, ok := raw["missions"].([]any)
	if !ok {
		return Result{Shape: model.ShapeMissionTree, Features: []any{}}
	}

	features := []any{}
	var groups []model.Group
	dropped := 0

	for mi, rawMission := range missions {
		// a non-object mission still occupies its slot: nil map
		// lookups below read as absent fields
		mission, _ := rawMission.(map[string]any)

		groupTitle := truthyString(mission["missionTitle"])
		if groupTitle == "" {
			groupTitle = fmt.Sprintf("Mission %d", mi+1)
		}
		group := model.Group{Title: groupTitle}

		// absent or non-sequence portals mean an empty mission
		portals, _ := mission["portals"].([]any)
		for pi, rawPortal := range portals {
			portal, ok := rawPortal.(map[string]any)
			if !ok {
				dropped++
				continue
			}

			lon, lat, ok := resolveCoordinates(portal)
			if !ok {
				dropped++
				continue
			}

			title := truthyString(portal["title"])
			if title == "" {
				title = fmt.Sprintf("Portal %d-%d", mi+1, pi+1)
			}

			features = append(features, pointFeature(title, lon, lat))
			group.Points = append(group.Points, model.Point{
				Title: title,
				Lon:   lon,
				Lat:   lat,
			})
		}

		groups = append(groups, group)
	}

	return Result{
		Shape:    model.ShapeMissionTree,
		Features: features,
		Groups:   groups,
		Dropped:  dropped,
	}
}

// resolveCoordinates picks the portal's location source and decodes
// it. Source selection commits before decoding: a truthy location
// field wins even when it turns out undecodable, matching the
// original export tooling. A zero lat is falsy and falls through to
// the geometry field.
func resolveCoordinates(portal map[string]any) (float64, float64, bool) {
	source := portal["location"]
	if !truthy(source) {
		if truthy(portal["lat"]) {
			source = portal
		} else {
			source = portal["geometry"]
		}
	}

	obj, ok := source.(map[string]any)
	if !ok {
		return 0, 0, false
	}
	return decodeCoordinates(obj)
}

// decodeCoordinates attempts the three coordinate encodings in order,
// taking the first that yields two numeric values.
func decodeCoordinates(obj map[string]any) (float64, float64, bool) {
	// {latitude, longitude} pair
	if lat, ok := obj["latitude"].(float64); ok {
		if lon, ok := obj["longitude"].(float64); ok {
			return lon, lat, true
		}
	}

	// {lat, lng} pair
	if lat, ok := obj["lat"].(float64); ok {
		if lon, ok := obj["lng"].(float64); ok {
			return lon, lat, true
		}
	}

	// GeoJSON Point geometry, coordinates ordered [lng, lat]
	if t, _ := obj["type"].(string); t == "Point" {
		coords, ok := obj["coordinates"].([]any)
		if !ok || len(coords) < 2 {
			return 0, 0, false
		}
		if lon, ok := coords[0].(float64); ok {
			if lat, ok := coords[1].(float64); ok {
				return lon, lat, true
			}
		}
	}

	return 0, 0, false
}
