// Package render paints timeline frames onto a raster surface and exports
// them as PNG images. It is the pixel-accurate counterpart of the cell
// based view in the tui package; both share the timeline package's layout
// math so hit-testing and drawing agree.
package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/tOgg1/trackline/internal/models"
	"github.com/tOgg1/trackline/internal/timeline"
)

// Theme is the color palette for the raster surface.
type Theme struct {
	Background      timeline.RGB
	GridLines       timeline.RGB
	TrackBackground timeline.RGB
	TrackBorder     timeline.RGB
	TimeAxis        timeline.RGB
	EventDefault    timeline.RGB
	EventHover      timeline.RGB
	EventSelected   timeline.RGB
	Text            timeline.RGB
	TextLight       timeline.RGB
	TooltipFill     timeline.RGB
	TooltipBorder   timeline.RGB
}

// DefaultTheme returns the standard light palette.
func DefaultTheme() Theme {
	return Theme{
		Background:      timeline.MustParseHex("#fafafa"),
		GridLines:       timeline.MustParseHex("#e9ecef"),
		TrackBackground: timeline.MustParseHex("#ffffff"),
		TrackBorder:     timeline.MustParseHex("#dee2e6"),
		TimeAxis:        timeline.MustParseHex("#495057"),
		EventDefault:    timeline.MustParseHex("#007bff"),
		EventHover:      timeline.MustParseHex("#0056b3"),
		EventSelected:   timeline.MustParseHex("#fd7e14"),
		Text:            timeline.MustParseHex("#333333"),
		TextLight:       timeline.MustParseHex("#666666"),
		TooltipFill:     timeline.MustParseHex("#212529"),
		TooltipBorder:   timeline.MustParseHex("#495057"),
	}
}

// Frame is everything needed to paint one render pass: the view state,
// the data snapshot, and the transient interaction state.
type Frame struct {
	View      timeline.View
	Tracks    []models.Track
	Events    []models.Event
	HoveredID string
	Selected  map[string]struct{}
	TooltipX  float64
	TooltipY  float64
}

// Renderer owns a drawing surface. Construct with New, size with Resize;
// rendering before the surface exists is a silent no-op.
type Renderer struct {
	layout timeline.Layout
	theme  Theme

	dc     *gg.Context
	width  float64
	height float64
	scale  float64
}

// New returns a renderer without a surface. Call Resize before Render.
func New(layout timeline.Layout, theme Theme) *Renderer {
	return &Renderer{layout: layout, theme: theme, scale: 1}
}

// Resize (re)allocates the backing surface. The scale is the device pixel
// ratio: the backing store is width*scale by height*scale pixels while all
// drawing happens in logical coordinates.
func (r *Renderer) Resize(width, height int, scale float64) {
	if width <= 0 || height <= 0 {
		r.dc = nil
		return
	}
	if scale <= 0 {
		scale = 1
	}
	r.width = float64(width)
	r.height = float64(height)
	r.scale = scale
	r.dc = gg.NewContext(int(r.width*scale), int(r.height*scale))
	r.dc.Scale(scale, scale)
	// Fixed bitmap face keeps text metrics identical across platforms, so
	// repeated renders of the same frame produce byte-identical PNGs.
	r.dc.SetFontFace(basicfont.Face7x13)
}

// Image returns the current backing image, or nil before the first Resize.
func (r *Renderer) Image() image.Image {
	if r.dc == nil {
		return nil
	}
	return r.dc.Image()
}

// Render paints the frame in fixed pass order: background, axis and grid,
// track lanes, event bars, tooltip. No-op without a surface.
func (r *Renderer) Render(frame Frame) {
	if r.dc == nil {
		return
	}

	r.fillBackground()
	r.drawAxis(frame)
	lanes := timeline.VisibleTracks(frame.Tracks)
	r.drawLanes(lanes)
	r.drawEvents(frame, lanes)
	r.drawTooltip(frame)
}

func (r *Renderer) setColor(c timeline.RGB) {
	r.dc.SetRGB255(int(c.R), int(c.G), int(c.B))
}

func (r *Renderer) fillBackground() {
	r.setColor(r.theme.Background)
	r.dc.Clear()
}

func (r *Renderer) drawAxis(frame Frame) {
	axisY := r.height - r.layout.AxisHeight

	ticks := timeline.Ticks(frame.View, r.width)
	for _, tick := range ticks {
		x := frame.View.TimeToX(tick.Time, r.width)
		r.setColor(r.theme.GridLines)
		r.dc.SetLineWidth(0.5)
		r.dc.DrawLine(x, 0, x, axisY)
		r.dc.Stroke()
	}

	r.setColor(r.theme.TrackBackground)
	r.dc.DrawRectangle(0, axisY, r.width, r.layout.AxisHeight)
	r.dc.Fill()

	r.setColor(r.theme.TrackBorder)
	r.dc.SetLineWidth(1)
	r.dc.DrawLine(0, axisY, r.width, axisY)
	r.dc.Stroke()

	r.setColor(r.theme.TimeAxis)
	for _, tick := range ticks {
		x := frame.View.TimeToX(tick.Time, r.width)
		r.dc.DrawStringAnchored(tick.Label, x, axisY+r.layout.AxisHeight/2, 0.5, 0.5)
	}
}

func (r *Renderer) drawLanes(lanes []models.Track) {
	available := r.height - r.layout.AxisHeight
	for index, track := range lanes {
		y := r.layout.LaneY(index)
		if y+r.layout.TrackHeight > available {
			break
		}

		r.setColor(r.theme.TrackBackground)
		r.dc.DrawRectangle(0, y, r.width, r.layout.TrackHeight)
		r.dc.Fill()

		r.setColor(r.theme.TrackBorder)
		r.dc.SetLineWidth(1)
		r.dc.DrawRectangle(0, y, r.width, r.layout.TrackHeight)
		r.dc.Stroke()

		swatch, err := timeline.ParseHex(track.Color)
		if err != nil {
			swatch = timeline.MustParseHex(models.DefaultTrackColor)
		}
		r.setColor(swatch)
		r.dc.DrawRectangle(5, y+5, 4, r.layout.TrackHeight-10)
		r.dc.Fill()

		r.setColor(r.theme.Text)
		r.dc.DrawStringAnchored(track.Name, 14, y+r.layout.TrackHeight/2, 0, 0.5)
	}
}

func (r *Renderer) drawEvents(frame Frame, lanes []models.Track) {
	laneIndex := make(map[string]int, len(lanes))
	for i, track := range lanes {
		laneIndex[track.ID] = i
	}

	for _, event := range frame.Events {
		index, visible := laneIndex[event.TrackID]
		if !visible {
			continue
		}
		r.drawEvent(frame, event, r.layout.LaneY(index))
	}
}

func (r *Renderer) eventColor(frame Frame, event models.Event) timeline.RGB {
	if _, selected := frame.Selected[event.ID]; selected {
		return r.theme.EventSelected
	}
	if frame.HoveredID == event.ID {
		return r.theme.EventHover
	}
	if c, err := timeline.ParseHex(event.Color); err == nil {
		return c
	}
	return r.theme.EventDefault
}

func (r *Renderer) drawEvent(frame Frame, event models.Event, laneY float64) {
	box := r.layout.EventBox(frame.View, event, laneY, r.width)
	if box.X+box.Width < 0 || box.X > r.width {
		return
	}

	color := r.eventColor(frame, event)
	r.setColor(color)
	r.dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	r.dc.Fill()

	r.setColor(timeline.Darken(color, 0.2))
	r.dc.SetLineWidth(1)
	r.dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	r.dc.Stroke()

	if box.Width > 30 {
		r.setColor(timeline.ContrastColor(color))
		title := r.truncate(event.Title, box.Width-8)
		r.dc.DrawStringAnchored(title, box.X+4, box.Y+box.Height/2, 0, 0.5)
	}

	if event.AIGenerated && box.Width > 20 {
		r.setColor(timeline.ContrastColor(color))
		r.dc.DrawStringAnchored("*", box.X+box.Width-4, box.Y+8, 1, 0.5)
	}
}

func (r *Renderer) truncate(text string, maxWidth float64) string {
	if w, _ := r.dc.MeasureString(text); w <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if w, _ := r.dc.MeasureString(candidate); w <= maxWidth {
			return candidate
		}
	}
	return "..."
}

func tooltipLines(event models.Event) []string {
	lines := []string{event.Title}

	const dateFormat = "Jan 2, 2006"
	if event.End != nil {
		lines = append(lines, fmt.Sprintf("%s - %s",
			event.Start.Format(dateFormat), event.End.Format(dateFormat)))
	} else {
		lines = append(lines, event.Start.Format(dateFormat))
	}
	if event.Category != "" {
		lines = append(lines, "Category: "+event.Category)
	}
	if event.Description != "" {
		desc := []rune(event.Description)
		if len(desc) > 80 {
			desc = append(desc[:77], []rune("...")...)
		}
		lines = append(lines, string(desc))
	}
	return lines
}

func (r *Renderer) drawTooltip(frame Frame) {
	if frame.HoveredID == "" {
		return
	}
	var hovered *models.Event
	for i := range frame.Events {
		if frame.Events[i].ID == frame.HoveredID {
			hovered = &frame.Events[i]
			break
		}
	}
	if hovered == nil {
		return
	}

	const (
		padding    = 10.0
		lineHeight = 16.0
		maxWidth   = 250.0
	)

	lines := tooltipLines(*hovered)
	textWidth := 0.0
	for _, line := range lines {
		if w, _ := r.dc.MeasureString(line); w > textWidth {
			textWidth = w
		}
	}
	if textWidth > maxWidth {
		textWidth = maxWidth
	}
	boxWidth := textWidth + padding*2
	boxHeight := float64(len(lines))*lineHeight + padding*2

	x := frame.TooltipX + 10
	y := frame.TooltipY - boxHeight - 10
	if x+boxWidth > r.width {
		x = frame.TooltipX - boxWidth - 10
	}
	if y < 0 {
		y = frame.TooltipY + 20
	}

	r.setColor(r.theme.TooltipFill)
	r.dc.DrawRectangle(x, y, boxWidth, boxHeight)
	r.dc.Fill()

	r.setColor(r.theme.TooltipBorder)
	r.dc.SetLineWidth(1)
	r.dc.DrawRectangle(x, y, boxWidth, boxHeight)
	r.dc.Stroke()

	r.setColor(timeline.MustParseHex("#ffffff"))
	for i, line := range lines {
		text := r.truncate(line, textWidth)
		r.dc.DrawStringAnchored(text, x+padding, y+padding+float64(i)*lineHeight+lineHeight/2, 0, 0.5)
	}
}
