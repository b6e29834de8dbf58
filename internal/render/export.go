package render

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/trackline/internal/logging"
)

// ExportFilename returns the download-style name for a snapshot taken at
// the given instant: timeline-YYYY-MM-DD.png.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("timeline-%s.png", now.Format("2006-01-02"))
}

// Exporter renders frames to PNG files on disk.
type Exporter struct {
	renderer *Renderer
	logger   zerolog.Logger
}

// NewExporter wraps a renderer for file export.
func NewExporter(renderer *Renderer) *Exporter {
	return &Exporter{
		renderer: renderer,
		logger:   logging.Component("export"),
	}
}

// Export renders the frame at the given logical size and scale, then
// writes it to dir under the dated filename. Returns the written path.
func (e *Exporter) Export(frame Frame, dir string, width, height int, scale float64, now time.Time) (string, error) {
	e.renderer.Resize(width, height, scale)
	e.renderer.Render(frame)

	path := filepath.Join(dir, ExportFilename(now))
	if err := e.renderer.SavePNG(path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	e.logger.Info().
		Str("path", path).
		Int("width", width).
		Int("height", height).
		Float64("scale", scale).
		Msg("exported timeline snapshot")
	return path, nil
}

// SavePNG writes the current surface to path. It fails when no surface
// has been allocated yet.
func (r *Renderer) SavePNG(path string) error {
	if r.dc == nil {
		return fmt.Errorf("no surface to save")
	}
	return r.dc.SavePNG(path)
}
