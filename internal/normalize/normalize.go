// Package normalize classifies the shape of arbitrary parsed JSON and
// extracts a canonical, order-preserving sequence of point features.
// It recognizes three input layouts: a ready-made GeoJSON
// FeatureCollection (passed through verbatim), a flat array of point
// records, and the nested missions/portals export. Anything else
// yields an empty sequence, never an error.
package normalize

import (
	"errors"
	"log/slog"

	"github.com/missionmap/missionmap/internal/model"
)

// ErrNoFeatures is returned by callers when normalization yields zero
// features. The normalizer itself never fails.
var ErrNoFeatures = errors.New("no points found in input")

// Result is the outcome of one normalization pass. Features holds
// GeoJSON-shaped records in input traversal order, Groups the typed
// mission-grouped view, Dropped the count of portals without
// resolvable coordinates.
type Result struct {
	Shape    model.Shape
	Features []any
	Groups   []model.Group
	Dropped  int
}

// Normalizer provides pure raw JSON value -> feature sequence
// conversion. It has zero external dependencies beyond a logger.
type Normalizer struct {
	logger *slog.Logger
}

// New creates a new normalizer with only a logger dependency
func New(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Classify returns the first shape rule the raw value matches. The
// rules are checked in a fixed precedence order because the layouts
// are not structurally exclusive: a mission tree could also carry a
// "type" field, and only the first match is ever extracted.
func (n *Normalizer) Classify(raw any) model.Shape {
	switch v := raw.(type) {
	case map[string]any:
		if t, ok := v["type"].(string); ok && t == "FeatureCollection" {
			if _, ok := v["features"].([]any); ok {
				return model.ShapeFeatureCollection
			}
		}
		if _, ok := v["missions"].([]any); ok {
			return model.ShapeMissionTree
		}
	case []any:
		if len(v) == 0 {
			return model.ShapeUnknown
		}
		first, ok := v[0].(map[string]any)
		if !ok {
			return model.ShapeUnknown
		}
		if _, ok := first["lat"].(float64); ok {
			return model.ShapePointList
		}
	}
	return model.ShapeUnknown
}

// Extract classifies raw and runs the matching extraction. It always
// returns a result, possibly with an empty feature sequence, for any
// input value including nil.
func (n *Normalizer) Extract(raw any) Result {
	var res Result
	switch n.Classify(raw) {
	case model.ShapeFeatureCollection:
		res = extractFeatureCollection(raw.(map[string]any))
	case model.ShapePointList:
		res = extractPointList(raw.([]any))
	case model.ShapeMissionTree:
		res = extractMissionTree(raw.(map[string]any))
	default:
		res = Result{Shape: model.ShapeUnknown, Features: []any{}}
	}

	if res.Dropped > 0 {
		n.logger.Warn("Dropped records without resolvable coordinates",
			"count", res.Dropped)
	}
	n.logger.Debug("Normalized input",
		"shape", res.Shape,
		"features", len(res.Features),
		"groups", len(res.Groups))

	return res
}

// Features returns the canonical feature sequence for raw. This is the
// plain contract surface; Extract exposes the grouped view as well.
func (n *Normalizer) Features(raw any) []any {
	return n.Extract(raw).Features
}

// Document wraps Extract into a named document for the renderers.
func (n *Normalizer) Document(name string, raw any) *model.Document {
	res := n.Extract(raw)
	return &model.Document{
		Name:     name,
		Shape:    res.Shape,
		Features: res.Features,
		Groups:   res.Groups,
		Dropped:  res.Dropped,
	}
}

// pointFeature builds one GeoJSON-shaped feature record. Coordinates
// are any-typed so a missing value stays null when re-encoded.
func pointFeature(title string, lon, lat any) map[string]any {
	return map[string]any{
		"type": "Feature",
		"properties": map[string]any{
			"name": title,
		},
		"geometry": map[string]any{
			"type":        "Point",
			"coordinates": []any{lon, lat},
		},
	}
}

// truthy reports whether a decoded JSON value is truthy in the
// JavaScript sense: null, false, 0 and "" are falsy, everything else
// including empty objects and arrays is truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// truthyString returns v when it is a non-empty string, else "".
func truthyString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
