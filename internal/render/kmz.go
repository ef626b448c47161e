package render

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/missionmap/missionmap/internal/model"
)

// KMZRenderer wraps the KML renderer in a zip archive. Google Earth
// expects the document under the fixed name doc.kml.
type KMZRenderer struct {
	kml KMLRenderer
}

func (r *KMZRenderer) Render(w io.Writer, doc *model.Document) error {
	zw := zip.NewWriter(w)

	entry, err := zw.Create("doc.kml")
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}
	if err := r.kml.Render(entry, doc); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
