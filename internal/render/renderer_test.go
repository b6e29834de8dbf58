package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackline/internal/models"
	"github.com/tOgg1/trackline/internal/timeline"
)

func testFrame(t *testing.T) Frame {
	t.Helper()
	end := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	view := timeline.NewView()
	view.Range = timeline.TimeRange{
		Start: time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	return Frame{
		View: view,
		Tracks: []models.Track{
			{ID: "t1", Name: "History", Color: "#e74c3c", Visible: true},
			{ID: "t2", Name: "Hidden", Color: "#3498db", Visible: false},
		},
		Events: []models.Event{
			{
				ID:      "e1",
				TrackID: "t1",
				Title:   "Span event",
				Start:   time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
				End:     &end,
				Color:   "#28a745",
			},
			{
				ID:          "e2",
				TrackID:     "t1",
				Title:       "Point",
				Start:       time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC),
				AIGenerated: true,
			},
			{
				ID:      "on-hidden",
				TrackID: "t2",
				Title:   "Should not paint",
				Start:   time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func encodePNG(t *testing.T, r *Renderer) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, r.Image()))
	return buf.Bytes()
}

func TestRenderBeforeResizeIsNoOp(t *testing.T) {
	r := New(timeline.DefaultLayout(), DefaultTheme())
	require.NotPanics(t, func() { r.Render(testFrame(t)) })
	require.Nil(t, r.Image())
}

func TestRenderIsIdempotent(t *testing.T) {
	r := New(timeline.DefaultLayout(), DefaultTheme())
	r.Resize(800, 400, 1)

	frame := testFrame(t)
	r.Render(frame)
	first := encodePNG(t, r)
	r.Render(frame)
	second := encodePNG(t, r)

	require.Equal(t, first, second)
}

func TestRenderChangesWithHoverAndSelection(t *testing.T) {
	r := New(timeline.DefaultLayout(), DefaultTheme())
	r.Resize(800, 400, 1)

	frame := testFrame(t)
	r.Render(frame)
	plain := encodePNG(t, r)

	frame.HoveredID = "e1"
	frame.TooltipX = 400
	frame.TooltipY = 60
	r.Render(frame)
	hovered := encodePNG(t, r)
	require.NotEqual(t, plain, hovered)

	frame.Selected = map[string]struct{}{"e1": {}}
	r.Render(frame)
	selected := encodePNG(t, r)
	require.NotEqual(t, hovered, selected)
}

func TestTooltipDescriptionTruncatesOnRunes(t *testing.T) {
	desc := strings.Repeat("ä", 100)
	event := models.Event{
		Title:       "Long",
		Start:       time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		Description: desc,
	}

	lines := tooltipLines(event)
	got := lines[len(lines)-1]
	require.True(t, utf8.ValidString(got))
	require.Equal(t, strings.Repeat("ä", 77)+"...", got)

	// Short descriptions pass through untouched.
	event.Description = "brief"
	lines = tooltipLines(event)
	require.Equal(t, "brief", lines[len(lines)-1])
}

func TestResizeHonorsScale(t *testing.T) {
	r := New(timeline.DefaultLayout(), DefaultTheme())
	r.Resize(400, 300, 2)
	r.Render(testFrame(t))

	bounds := r.Image().Bounds()
	require.Equal(t, 800, bounds.Dx())
	require.Equal(t, 600, bounds.Dy())
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, time.September, 1, 15, 4, 5, 0, time.UTC)
	require.Equal(t, "timeline-2026-09-01.png", ExportFilename(at))
}

func TestExporterWritesPNG(t *testing.T) {
	dir := t.TempDir()
	r := New(timeline.DefaultLayout(), DefaultTheme())
	e := NewExporter(r)

	at := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	path, err := e.Export(testFrame(t), dir, 640, 480, 1, at)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "timeline-2026-09-01.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 640, img.Bounds().Dx())
	require.Equal(t, 480, img.Bounds().Dy())
}

func TestSavePNGWithoutSurfaceFails(t *testing.T) {
	r := New(timeline.DefaultLayout(), DefaultTheme())
	require.Error(t, r.SavePNG(filepath.Join(t.TempDir(), "out.png")))
}
