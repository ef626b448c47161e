package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/missionmap/missionmap/internal/format"
	"github.com/missionmap/missionmap/internal/geo"
)

var inspectFlags struct {
	markdown bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.json>",
	Short: "Classify a mission set and print its summary",
	Long: `Inspect classifies the shape of a mission set JSON file and prints a
summary without writing any output artifact: detected shape, feature
and dropped-record counts, geographic bounds, and one row per mission
with its point count and projected route length.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.BoolVar(&inspectFlags.markdown, "markdown", false, "Print tables as Markdown")
}

func runInspect(cmd *cobra.Command, args []string) error {
	setRunContext(args[0])

	doc, err := loadDocument(args[0], "")
	if err != nil {
		return err
	}

	mode := format.ASCII
	if inspectFlags.markdown {
		mode = format.Markdown
	}
	out := cmd.OutOrStdout()

	summary := format.NewTable(mode)
	summary.Header("PROPERTY", "VALUE")
	summary.Row("Input", args[0])
	summary.Row("Shape", string(doc.Shape))
	summary.Row("Missions", len(doc.Groups))
	summary.Row("Points", doc.PointCount())
	summary.Row("Features", len(doc.Features))
	summary.Row("Dropped", doc.Dropped)
	if b, ok := doc.Bounds(); ok {
		summary.Row("Bounds", fmt.Sprintf("%.6f,%.6f to %.6f,%.6f",
			b.MinLat, b.MinLon, b.MaxLat, b.MaxLon))
	}
	fmt.Fprintln(out, summary.String())

	if len(doc.Groups) > 0 {
		missions := format.NewTable(mode)
		missions.Header("#", "MISSION", "POINTS", "ROUTE")
		missions.Columns(
			format.Column{Number: 3, Align: format.AlignRight},
			format.Column{Number: 4, Align: format.AlignRight},
		)

		var totalPoints int
		var totalLength float64
		for i, g := range doc.Groups {
			length := geo.RouteLength3857(g.Points)
			missions.Row(i+1, g.Title, len(g.Points), formatRouteLength(length))
			totalPoints += len(g.Points)
			totalLength += length
		}
		missions.Footer("", "", totalPoints, formatRouteLength(totalLength))
		fmt.Fprintln(out, missions.String())
	}

	return nil
}

// formatRouteLength renders a projected route length, or a dash for
// missions without a route.
func formatRouteLength(meters float64) string {
	if meters == 0 {
		return "-"
	}
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}
