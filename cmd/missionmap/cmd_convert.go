package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/missionmap/missionmap/internal/config"
	"github.com/missionmap/missionmap/internal/model"
	"github.com/missionmap/missionmap/internal/normalize"
	"github.com/missionmap/missionmap/internal/render"
	"github.com/missionmap/missionmap/internal/util"
)

var convertFlags struct {
	input  string
	output string
	format string
	name   string
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a mission set JSON file to another format",
	Long: `Convert reads a geo-referenced JSON mission set and writes it as KML,
KMZ, CSV, GeoJSON, GPX or a self-contained HTML map.

The input may be a nested missions/portals export, a flat array of
{lat, lng, title} records, or an existing GeoJSON FeatureCollection.
The output format is inferred from the output file extension unless
--format is given.

Usage:
  missionmap convert -i missions.json -o missions.kml
  missionmap convert -i missions.json -o map.html --name "Wellington tour"
  missionmap convert -i missions.json --format gpx`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertFlags.input, "input", "i", "", "Input JSON file (required)")
	f.StringVarP(&convertFlags.output, "output", "o", "", "Output file; its extension selects the format")
	f.StringVarP(&convertFlags.format, "format", "f", "", "Output format: kml, kmz, csv, geojson, gpx, html")
	f.StringVar(&convertFlags.name, "name", "", "Document name (default: input file name)")

	_ = convertCmd.MarkFlagRequired("input")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	setRunContext(convertFlags.input)
	logger := slogManager.Logger()

	outCfg := config.GetOutputConfig()
	renderCfg := config.GetRenderConfig()

	var format render.Format
	var err error
	switch {
	case convertFlags.format != "":
		format, err = render.ParseFormat(convertFlags.format)
	case convertFlags.output != "":
		format, err = render.FormatFromPath(convertFlags.output)
	default:
		format, err = render.ParseFormat(outCfg.Format)
	}
	if err != nil {
		return err
	}

	output := convertFlags.output
	if output == "" {
		stem := util.SanitizeFilename(util.FileStem(convertFlags.input))
		output = filepath.Join(outCfg.Dir, stem+"."+string(format))
	}

	name := convertFlags.name
	if name == "" {
		name = renderCfg.DocumentName
	}

	doc, err := loadDocument(convertFlags.input, name)
	if err != nil {
		return err
	}
	if len(doc.Features) == 0 {
		return normalize.ErrNoFeatures
	}

	renderer, err := render.New(format, render.Options{
		LineWidth:       renderCfg.LineWidth,
		HTMLTitle:       renderCfg.HTMLTitle,
		TileURL:         renderCfg.TileURL,
		TileAttribution: renderCfg.TileAttribution,
	})
	if err != nil {
		return err
	}

	if err := util.WriteFileAtomic(output, func(w io.Writer) error {
		return renderer.Render(w, doc)
	}); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	elapsed := time.Since(start)
	logger.Info("Conversion finished",
		"output", output,
		"format", format,
		"shape", doc.Shape,
		"missions", len(doc.Groups),
		"points", doc.PointCount(),
		"features", len(doc.Features),
		"dropped", doc.Dropped,
		"duration", elapsed)

	reportRun(cmd.Context(), model.RunStats{
		Input:    convertFlags.input,
		Output:   output,
		Format:   string(format),
		Shape:    doc.Shape,
		Missions: len(doc.Groups),
		Points:   doc.PointCount(),
		Features: len(doc.Features),
		Dropped:  doc.Dropped,
		Duration: elapsed,
	})

	if !rootFlags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d features)\n", output, format, len(doc.Features))
	}
	return nil
}
