// Package staticmap renders a converted document to a PNG preview via a
// Google-style static map endpoint.
package staticmap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/missionmap/missionmap/internal/geo"
	"github.com/missionmap/missionmap/internal/model"
	"github.com/missionmap/missionmap/internal/render"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("static map API key is not configured")

// ErrNoPoints is returned for documents without plottable points.
var ErrNoPoints = errors.New("document has no plottable points")

const (
	// Web Mercator world extent in meters
	worldSize3857 = 2 * math.Pi * 6378137.0

	tileSize = 256

	minZoom = 0
	maxZoom = 21

	// zoom applied when the document collapses to a single point
	pointZoom = 15

	pathWeight = 3

	// static map endpoints reject URLs beyond roughly 8 KiB
	maxURLLength = 8192

	// marker budget applied when even a path-less URL runs long
	degradedMarkerCap = 100
)

// Client requests rendered map images from a static map endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new static map client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Options control the requested image.
type Options struct {
	Width   int
	Height  int
	Scale   int
	MapType string
	Zoom    int          // <= 0 selects a zoom fitting the document bounds
	Center  *model.Point // overrides the bounds midpoint when set
}

// BuildURL assembles the static map request for doc. Every point becomes
// a marker and every mission with two or more points a path, both in the
// mission's palette color. Requests that would exceed the endpoint's URL
// limit degrade stepwise: route paths are dropped first, then markers
// beyond a fixed budget.
func (c *Client) BuildURL(doc *model.Document, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	bounds, ok := doc.Bounds()
	if !ok {
		return "", ErrNoPoints
	}

	u := c.assembleURL(doc, bounds, opts, true, 0)
	if len(u) <= maxURLLength {
		return u, nil
	}
	u = c.assembleURL(doc, bounds, opts, false, 0)
	if len(u) <= maxURLLength {
		return u, nil
	}
	return c.assembleURL(doc, bounds, opts, false, degradedMarkerCap), nil
}

// assembleURL builds one candidate request URL. markerCap bounds the
// total marker count across all groups, zero meaning unbounded.
func (c *Client) assembleURL(doc *model.Document, bounds model.Bounds, opts Options, withPaths bool, markerCap int) string {
	centerLon, centerLat := bounds.Center()
	if opts.Center != nil {
		centerLon, centerLat = opts.Center.Lon, opts.Center.Lat
	}

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = FitZoom(bounds, opts.Width, opts.Height)
	}

	q := url.Values{}
	q.Set("center", formatLatLon(centerLat, centerLon))
	q.Set("zoom", strconv.Itoa(zoom))
	q.Set("size", fmt.Sprintf("%dx%d", opts.Width, opts.Height))
	if opts.Scale > 0 {
		q.Set("scale", strconv.Itoa(opts.Scale))
	}
	if opts.MapType != "" {
		q.Set("maptype", opts.MapType)
	}

	markersLeft := markerCap
	if markerCap <= 0 {
		markersLeft = math.MaxInt
	}

	for i, g := range doc.Groups {
		if len(g.Points) == 0 {
			continue
		}
		color := render.GroupColor(i)
		hex := fmt.Sprintf("0x%02x%02x%02x", color.R, color.G, color.B)

		marker := []string{"color:" + hex}
		for _, p := range g.Points {
			if markersLeft == 0 {
				break
			}
			marker = append(marker, formatLatLon(p.Lat, p.Lon))
			markersLeft--
		}
		if len(marker) > 1 {
			q.Add("markers", strings.Join(marker, "|"))
		}

		if !withPaths || len(g.Points) < 2 {
			continue
		}
		path := []string{"color:" + hex + "ff", fmt.Sprintf("weight:%d", pathWeight)}
		for _, p := range g.Points {
			path = append(path, formatLatLon(p.Lat, p.Lon))
		}
		q.Add("path", strings.Join(path, "|"))
	}

	q.Set("key", c.apiKey)

	return c.baseURL + "?" + q.Encode()
}

// Fetch retrieves the rendered map image.
func (c *Client) Fetch(ctx context.Context, doc *model.Document, opts Options) ([]byte, error) {
	u, err := c.BuildURL(doc, opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "missionmap")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("static map request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("static map returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read static map response: %w", err)
	}
	return data, nil
}

// FitZoom picks the highest zoom level that keeps bounds inside a
// viewport of width by height pixels, measured in Web Mercator meters.
func FitZoom(b model.Bounds, width, height int) int {
	if width <= 0 || height <= 0 {
		return pointZoom
	}

	minPt, err := geo.Coords3857From4326(b.MinLon, b.MinLat)
	if err != nil {
		return pointZoom
	}
	maxPt, err := geo.Coords3857From4326(b.MaxLon, b.MaxLat)
	if err != nil {
		return pointZoom
	}
	minXY, ok := minPt.XY()
	if !ok {
		return pointZoom
	}
	maxXY, ok := maxPt.XY()
	if !ok {
		return pointZoom
	}

	extentX := math.Abs(maxXY.X - minXY.X)
	extentY := math.Abs(maxXY.Y - minXY.Y)
	if extentX == 0 && extentY == 0 {
		return pointZoom
	}

	zoom := float64(maxZoom)
	if extentX > 0 {
		zoom = math.Min(zoom, math.Log2(worldSize3857*float64(width)/(tileSize*extentX)))
	}
	if extentY > 0 {
		zoom = math.Min(zoom, math.Log2(worldSize3857*float64(height)/(tileSize*extentY)))
	}

	z := int(math.Floor(zoom))
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

func formatLatLon(lat, lon float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lon)
}
