package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/missionmap/missionmap/internal/model"
)

//go:embed map.html.tmpl
var mapTemplateSrc string

var mapTemplate = template.Must(
	template.New("map").Funcs(template.FuncMap{"toJSON": toJSON}).Parse(mapTemplateSrc),
)

const (
	defaultTileURL         = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultTileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// HTMLRenderer writes a single self-contained Leaflet page. The raw
// feature sequence is embedded as GeoJSON, so a FeatureCollection
// input reaches the browser untouched; routes are drawn as one
// colored polyline per mission.
type HTMLRenderer struct {
	opts Options
}

type htmlRoute struct {
	Title string `json:"title"`
	Color string `json:"color"`
	// Points holds [lat, lng] pairs, the order Leaflet expects
	Points [][2]float64 `json:"points"`
}

type htmlPage struct {
	Title           string
	TileURL         string
	TileAttribution string
	LineWidth       float64
	Features        []any
	Routes          []htmlRoute
	Bounds          *model.Bounds
}

func (r *HTMLRenderer) Render(w io.Writer, doc *model.Document) error {
	page := htmlPage{
		Title:           r.opts.HTMLTitle,
		TileURL:         r.opts.TileURL,
		TileAttribution: r.opts.TileAttribution,
		LineWidth:       r.opts.LineWidth,
		Features:        doc.Features,
		Routes:          []htmlRoute{},
	}
	if page.Title == "" {
		page.Title = documentName(r.opts, doc)
	}
	if page.TileURL == "" {
		page.TileURL = defaultTileURL
	}
	if page.TileAttribution == "" {
		page.TileAttribution = defaultTileAttribution
	}
	if page.LineWidth <= 0 {
		page.LineWidth = defaultLineWidth
	}
	if page.Features == nil {
		page.Features = []any{}
	}

	for i, g := range doc.Groups {
		if len(g.Points) < 2 {
			continue
		}
		route := htmlRoute{
			Title:  g.Title,
			Color:  HexColor(GroupColor(i)),
			Points: make([][2]float64, 0, len(g.Points)),
		}
		for _, p := range g.Points {
			route.Points = append(route.Points, [2]float64{p.Lat, p.Lon})
		}
		page.Routes = append(page.Routes, route)
	}

	if b, ok := doc.Bounds(); ok {
		page.Bounds = &b
	}

	if err := mapTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to execute map template: %w", err)
	}
	return nil
}

// toJSON marshals v for embedding in the page script.
func toJSON(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
