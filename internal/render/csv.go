package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/missionmap/missionmap/internal/model"
)

// CSVRenderer writes one row per point with its mission column, in
// document order. Coordinates keep six decimals, about 11 cm of
// precision.
type CSVRenderer struct{}

func (r *CSVRenderer) Render(w io.Writer, doc *model.Document) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"mission", "title", "latitude", "longitude"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, g := range doc.Groups {
		for _, p := range g.Points {
			record := []string{
				g.Title,
				p.Title,
				formatCoord(p.Lat),
				formatCoord(p.Lon),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
