package staticmap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/missionmap/missionmap/internal/model"
)

func testDoc() *model.Document {
	return &model.Document{
		Name:  "wellington",
		Shape: model.ShapeMissionTree,
		Groups: []model.Group{
			{Title: "Waterfront", Points: []model.Point{
				{Title: "Beehive", Lon: 174.77, Lat: -41.29},
				{Title: "Te Papa", Lon: 174.78, Lat: -41.3},
			}},
			{Title: "Hills", Points: []model.Point{
				{Title: "Lookout", Lon: 174.75, Lat: -41.28},
			}},
		},
	}
}

func TestNew(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key123")

	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.baseURL != "https://maps.example.com/staticmap" {
		t.Errorf("unexpected baseURL %s", c.baseURL)
	}
	if c.apiKey != "key123" {
		t.Errorf("unexpected apiKey %s", c.apiKey)
	}
	if c.httpClient == nil {
		t.Error("httpClient is nil")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("https://maps.example.com/staticmap/", "key")
	if c.baseURL != "https://maps.example.com/staticmap" {
		t.Errorf("expected trailing slash trimmed, got %s", c.baseURL)
	}
}

func TestBuildURL_NoAPIKey(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "")
	_, err := c.BuildURL(testDoc(), Options{Width: 640, Height: 640})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestBuildURL_NoPoints(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key")
	_, err := c.BuildURL(&model.Document{}, Options{Width: 640, Height: 640})
	if !errors.Is(err, ErrNoPoints) {
		t.Fatalf("expected ErrNoPoints, got %v", err)
	}
}

func TestBuildURL_Params(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key123")

	raw, err := c.BuildURL(testDoc(), Options{
		Width:   640,
		Height:  480,
		Scale:   2,
		MapType: "roadmap",
		Zoom:    13,
	})
	if err != nil {
		t.Fatalf("BuildURL() error = %v", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	q := u.Query()

	if got := q.Get("center"); got != "-41.290000,174.765000" {
		t.Errorf("center = %s", got)
	}
	if got := q.Get("zoom"); got != "13" {
		t.Errorf("zoom = %s", got)
	}
	if got := q.Get("size"); got != "640x480" {
		t.Errorf("size = %s", got)
	}
	if got := q.Get("scale"); got != "2" {
		t.Errorf("scale = %s", got)
	}
	if got := q.Get("maptype"); got != "roadmap" {
		t.Errorf("maptype = %s", got)
	}
	if got := q.Get("key"); got != "key123" {
		t.Errorf("key = %s", got)
	}

	markers := q["markers"]
	if len(markers) != 2 {
		t.Fatalf("expected 2 marker groups, got %d: %v", len(markers), markers)
	}
	if !strings.Contains(markers[0], "-41.290000,174.770000") {
		t.Errorf("first marker group missing Beehive: %s", markers[0])
	}
	if !strings.HasPrefix(markers[0], "color:0x") {
		t.Errorf("marker group missing color prefix: %s", markers[0])
	}

	// Only Waterfront has enough points for a path.
	paths := q["path"]
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %d: %v", len(paths), paths)
	}
	if !strings.Contains(paths[0], "weight:3") {
		t.Errorf("path missing weight: %s", paths[0])
	}
	if !strings.Contains(paths[0], "-41.300000,174.780000") {
		t.Errorf("path missing Te Papa: %s", paths[0])
	}
}

func TestBuildURL_AutoZoom(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key")

	raw, err := c.BuildURL(testDoc(), Options{Width: 640, Height: 640})
	if err != nil {
		t.Fatalf("BuildURL() error = %v", err)
	}

	u, _ := url.Parse(raw)
	if got := u.Query().Get("zoom"); got != "14" {
		t.Errorf("auto zoom = %s, want 14", got)
	}
}

func TestBuildURL_CenterOverride(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key")

	raw, err := c.BuildURL(testDoc(), Options{
		Width:  640,
		Height: 640,
		Center: &model.Point{Lon: 174.0, Lat: -41.5},
	})
	if err != nil {
		t.Fatalf("BuildURL() error = %v", err)
	}

	u, _ := url.Parse(raw)
	if got := u.Query().Get("center"); got != "-41.500000,174.000000" {
		t.Errorf("center = %s, want override", got)
	}
}

func longDoc(n int) *model.Document {
	g := model.Group{Title: "Long route"}
	for i := 0; i < n; i++ {
		g.Points = append(g.Points, model.Point{
			Title: fmt.Sprintf("wp%d", i),
			Lon:   160.0 + float64(i)*0.001,
			Lat:   -41.0 - float64(i)*0.0001,
		})
	}
	return &model.Document{Name: "long", Groups: []model.Group{g}}
}

func TestBuildURL_LongRouteDropsPath(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key")

	raw, err := c.BuildURL(longDoc(250), Options{Width: 640, Height: 640})
	if err != nil {
		t.Fatalf("BuildURL() error = %v", err)
	}
	if len(raw) > maxURLLength {
		t.Errorf("URL length %d exceeds limit %d", len(raw), maxURLLength)
	}

	u, _ := url.Parse(raw)
	if paths := u.Query()["path"]; len(paths) != 0 {
		t.Errorf("expected path params dropped, got %d", len(paths))
	}
	markers := u.Query()["markers"]
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker group, got %d", len(markers))
	}
	// every point survives once only the path is gone
	if got := strings.Count(markers[0], "|"); got != 250 {
		t.Errorf("marker count = %d, want 250", got)
	}
}

func TestBuildURL_VeryLongRouteCapsMarkers(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key")

	raw, err := c.BuildURL(longDoc(500), Options{Width: 640, Height: 640})
	if err != nil {
		t.Fatalf("BuildURL() error = %v", err)
	}
	if len(raw) > maxURLLength {
		t.Errorf("URL length %d exceeds limit %d", len(raw), maxURLLength)
	}

	u, _ := url.Parse(raw)
	markers := u.Query()["markers"]
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker group, got %d", len(markers))
	}
	if got := strings.Count(markers[0], "|"); got != degradedMarkerCap {
		t.Errorf("marker count = %d, want %d", got, degradedMarkerCap)
	}
}

func TestFitZoom_SinglePoint(t *testing.T) {
	b := model.Bounds{MinLon: 174.77, MinLat: -41.29, MaxLon: 174.77, MaxLat: -41.29}
	if got := FitZoom(b, 640, 640); got != pointZoom {
		t.Errorf("FitZoom() = %d, want %d", got, pointZoom)
	}
}

func TestFitZoom_CityExtent(t *testing.T) {
	b := model.Bounds{MinLon: 174.75, MinLat: -41.3, MaxLon: 174.78, MaxLat: -41.28}
	if got := FitZoom(b, 640, 640); got != 14 {
		t.Errorf("FitZoom() = %d, want 14", got)
	}
}

func TestFitZoom_WholeWorldClamps(t *testing.T) {
	b := model.Bounds{MinLon: -179, MinLat: -80, MaxLon: 179, MaxLat: 80}
	if got := FitZoom(b, 64, 64); got != minZoom {
		t.Errorf("FitZoom() = %d, want %d", got, minZoom)
	}
}

func TestFetch_Success(t *testing.T) {
	var gotKey, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("PNGDATA"))
	}))
	defer server.Close()

	c := New(server.URL, "key123")
	data, err := c.Fetch(context.Background(), testDoc(), Options{Width: 640, Height: 640})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "PNGDATA" {
		t.Errorf("Fetch() = %q", data)
	}
	if gotKey != "key123" {
		t.Errorf("server saw key %q", gotKey)
	}
	if gotUA != "missionmap" {
		t.Errorf("server saw User-Agent %q", gotUA)
	}
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := New(server.URL, "key")
	_, err := c.Fetch(context.Background(), testDoc(), Options{Width: 640, Height: 640})
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "status 403") {
		t.Errorf("error = %v", err)
	}
}

func TestFetch_NoPoints(t *testing.T) {
	c := New("https://maps.example.com/staticmap", "key")
	_, err := c.Fetch(context.Background(), &model.Document{}, Options{Width: 640, Height: 640})
	if !errors.Is(err, ErrNoPoints) {
		t.Fatalf("expected ErrNoPoints, got %v", err)
	}
}
