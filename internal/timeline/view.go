// Package timeline implements the coordinate engine, lane layout,
// hit-testing, and pointer interaction model for the 2D timeline surface.
// Everything here is pure computation over a View; drawing lives in the
// render and tui packages.
package timeline

import (
	"time"

	"github.com/tOgg1/trackline/internal/models"
)

// Zoom bounds and the multiplicative step applied per wheel notch.
const (
	ZoomMin = 0.1
	ZoomMax = 10.0

	ZoomStepIn  = 1.1
	ZoomStepOut = 0.9
)

// Default window shown when no events exist.
var (
	DefaultRangeStart = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)
	DefaultRangeEnd   = time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// TimeRange is a half-open [Start, End] window on the time axis.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Span returns the range duration.
func (r TimeRange) Span() time.Duration {
	return r.End.Sub(r.Start)
}

// View is the current pan/zoom state of the timeline surface. The zero
// value is not useful; construct with NewView.
type View struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
	Range   TimeRange
}

// NewView returns a view at zoom 1 over the default range.
func NewView() View {
	return View{
		Zoom:  1,
		Range: TimeRange{Start: DefaultRangeStart, End: DefaultRangeEnd},
	}
}

// TimeToX maps an instant to a horizontal pixel position for the given
// surface width.
func (v View) TimeToX(t time.Time, width float64) float64 {
	span := v.Range.Span()
	if span <= 0 {
		return v.OffsetX
	}
	progress := float64(t.Sub(v.Range.Start)) / float64(span)
	return progress*width*v.Zoom + v.OffsetX
}

// XToTime is the exact inverse of TimeToX.
func (v View) XToTime(x, width float64) time.Time {
	denom := width * v.Zoom
	if denom == 0 {
		return v.Range.Start
	}
	progress := (x - v.OffsetX) / denom
	offset := time.Duration(progress * float64(v.Range.Span()))
	return v.Range.Start.Add(offset)
}

// Pan shifts the view by a pixel delta.
func (v *View) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt scales the zoom by factor, clamped to [ZoomMin, ZoomMax], and
// adjusts the offset so the time value under cursorX stays at cursorX.
func (v *View) ZoomAt(cursorX, factor float64) {
	newZoom := clamp(v.Zoom*factor, ZoomMin, ZoomMax)
	ratio := newZoom / v.Zoom
	v.OffsetX = cursorX - (cursorX-v.OffsetX)*ratio
	v.Zoom = newZoom
}

// Reset returns the view to zoom 1 with no offset, keeping the range.
func (v *View) Reset() {
	v.Zoom = 1
	v.OffsetX = 0
	v.OffsetY = 0
}

// FitToEvents recomputes the time range to cover all events with 10%
// padding on each side. With no events the default range applies.
func (v *View) FitToEvents(events []models.Event) {
	if len(events) == 0 {
		v.Range = TimeRange{Start: DefaultRangeStart, End: DefaultRangeEnd}
		return
	}

	min := events[0].Start
	max := events[0].EffectiveEnd()
	for _, event := range events[1:] {
		if event.Start.Before(min) {
			min = event.Start
		}
		if end := event.EffectiveEnd(); end.After(max) {
			max = end
		}
	}

	pad := time.Duration(float64(max.Sub(min)) * 0.1)
	if pad == 0 {
		// Degenerate span (single instant): pad by a year each side.
		pad = 365 * 24 * time.Hour
	}
	v.Range = TimeRange{Start: min.Add(-pad), End: max.Add(pad)}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
