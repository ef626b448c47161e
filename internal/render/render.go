// Package render turns a normalized document into one of the supported
// output formats. Renderers are deterministic and stateless; picking
// one is a plain factory switch over the format tag.
package render

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/missionmap/missionmap/internal/model"
)

// ErrUnknownFormat is returned when an output format cannot be resolved
var ErrUnknownFormat = errors.New("unknown output format")

// Format identifies an output renderer
type Format string

const (
	FormatKML     Format = "kml"
	FormatKMZ     Format = "kmz"
	FormatCSV     Format = "csv"
	FormatGeoJSON Format = "geojson"
	FormatGPX     Format = "gpx"
	FormatHTML    Format = "html"
)

// Formats lists every supported output format in display order.
func Formats() []Format {
	return []Format{FormatKML, FormatKMZ, FormatCSV, FormatGeoJSON, FormatGPX, FormatHTML}
}

// ParseFormat resolves a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "kml":
		return FormatKML, nil
	case "kmz":
		return FormatKMZ, nil
	case "csv":
		return FormatCSV, nil
	case "geojson", "json":
		return FormatGeoJSON, nil
	case "gpx":
		return FormatGPX, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Renderer is the interface all output writers satisfy
type Renderer interface {
	Render(w io.Writer, doc *model.Document) error
}

// Options carries the presentation settings shared by the renderers.
// Zero values fall back to sensible defaults per renderer.
type Options struct {
	// DocumentName overrides the document's own name in KML and HTML
	// output when non-empty.
	DocumentName string
	// LineWidth is the route stroke width in pixels.
	LineWidth float64
	// HTMLTitle is the page title of the HTML map.
	HTMLTitle string
	// TileURL is the Leaflet tile layer URL template.
	TileURL string
	// TileAttribution is the attribution line for the tile layer.
	TileAttribution string
}

// New creates a renderer for the given format
func New(format Format, opts Options) (Renderer, error) {
	switch format {
	case FormatKML:
		return &KMLRenderer{opts: opts}, nil
	case FormatKMZ:
		return &KMZRenderer{kml: KMLRenderer{opts: opts}}, nil
	case FormatCSV:
		return &CSVRenderer{}, nil
	case FormatGeoJSON:
		return &GeoJSONRenderer{}, nil
	case FormatGPX:
		return &GPXRenderer{}, nil
	case FormatHTML:
		return &HTMLRenderer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// documentName resolves the display name for doc, preferring the
// configured override.
func documentName(opts Options, doc *model.Document) string {
	if opts.DocumentName != "" {
		return opts.DocumentName
	}
	if doc.Name != "" {
		return doc.Name
	}
	return "Mission map"
}
