package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/missionmap/missionmap/internal/config"
	"github.com/missionmap/missionmap/internal/geo"
	"github.com/missionmap/missionmap/internal/model"
	"github.com/missionmap/missionmap/internal/staticmap"
	"github.com/missionmap/missionmap/internal/util"
)

var staticmapFlags struct {
	input      string
	output     string
	width      int
	height     int
	scale      int
	maptype    string
	zoom       int
	center     string
	perMission bool
}

var staticmapCmd = &cobra.Command{
	Use:   "staticmap",
	Short: "Fetch a static map image of a mission set",
	Long: `Staticmap normalizes a mission set and requests a rendered map image
from the configured static map endpoint: one marker per point and one
route path per mission, colored per mission.

An API key must be set in the config file (staticmap.apiKey). With
--per-mission one image is written per mission, numbered
<output>_1.png, <output>_2.png and so on.`,
	RunE: runStaticmap,
}

func init() {
	f := staticmapCmd.Flags()
	f.StringVarP(&staticmapFlags.input, "input", "i", "", "Input JSON file (required)")
	f.StringVarP(&staticmapFlags.output, "output", "o", "", "Output image file (default: <input>.png)")
	f.IntVar(&staticmapFlags.width, "width", 0, "Image width in pixels")
	f.IntVar(&staticmapFlags.height, "height", 0, "Image height in pixels")
	f.IntVar(&staticmapFlags.scale, "scale", 0, "Pixel density multiplier")
	f.StringVar(&staticmapFlags.maptype, "maptype", "", "Map type, e.g. roadmap or satellite")
	f.IntVar(&staticmapFlags.zoom, "zoom", 0, "Fixed zoom level (default: fit document bounds)")
	f.StringVar(&staticmapFlags.center, "center", "", "Map center as \"lon,lat\" (default: bounds midpoint)")
	f.BoolVar(&staticmapFlags.perMission, "per-mission", false, "Write one image per mission")

	_ = staticmapCmd.MarkFlagRequired("input")
}

func runStaticmap(cmd *cobra.Command, _ []string) error {
	setRunContext(staticmapFlags.input)

	doc, err := loadDocument(staticmapFlags.input, "")
	if err != nil {
		return err
	}

	smCfg := config.GetStaticmapConfig()
	client := staticmap.New(smCfg.ServerURL, smCfg.APIKey)

	opts := staticmap.Options{
		Width:   smCfg.Width,
		Height:  smCfg.Height,
		Scale:   smCfg.Scale,
		MapType: smCfg.MapType,
		Zoom:    smCfg.Zoom,
	}
	if staticmapFlags.width > 0 {
		opts.Width = staticmapFlags.width
	}
	if staticmapFlags.height > 0 {
		opts.Height = staticmapFlags.height
	}
	if staticmapFlags.scale > 0 {
		opts.Scale = staticmapFlags.scale
	}
	if staticmapFlags.maptype != "" {
		opts.MapType = staticmapFlags.maptype
	}
	if staticmapFlags.zoom > 0 {
		opts.Zoom = staticmapFlags.zoom
	}
	if staticmapFlags.center != "" {
		lon, lat, err := geo.LonLatFromString(staticmapFlags.center)
		if err != nil {
			return fmt.Errorf("invalid --center: %w", err)
		}
		opts.Center = &model.Point{Lon: lon, Lat: lat}
	}

	output := staticmapFlags.output
	if output == "" {
		stem := util.SanitizeFilename(util.FileStem(staticmapFlags.input))
		output = filepath.Join(config.GetOutputConfig().Dir, stem+".png")
	}

	if !staticmapFlags.perMission {
		return fetchMapTo(cmd, client, doc, opts, output)
	}

	if len(doc.Groups) == 0 {
		return staticmap.ErrNoPoints
	}
	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(output, ext)
	for i, g := range doc.Groups {
		if len(g.Points) == 0 {
			slogManager.Logger().Warn("Skipping mission without plottable points",
				"mission", g.Title)
			continue
		}
		sub := &model.Document{
			Name:   g.Title,
			Shape:  doc.Shape,
			Groups: []model.Group{g},
		}
		target := fmt.Sprintf("%s_%d%s", stem, i+1, ext)
		if err := fetchMapTo(cmd, client, sub, opts, target); err != nil {
			return fmt.Errorf("mission %q: %w", g.Title, err)
		}
	}
	return nil
}

func fetchMapTo(cmd *cobra.Command, client *staticmap.Client, doc *model.Document, opts staticmap.Options, output string) error {
	data, err := client.Fetch(cmd.Context(), doc, opts)
	if err != nil {
		return err
	}

	if err := util.WriteFileAtomic(output, func(w io.Writer) error {
		_, werr := w.Write(data)
		return werr
	}); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	slogManager.Logger().Info("Static map written", "output", output, "bytes", len(data))
	if !rootFlags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", output, len(data))
	}
	return nil
}
