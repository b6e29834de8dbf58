package timeline

import (
	"math"

	"github.com/tOgg1/trackline/internal/models"
)

// Layout holds the visual geometry constants for lanes and event bars.
type Layout struct {
	TrackHeight   float64
	TrackSpacing  float64
	EventMinWidth float64
	EventMaxWidth float64
	EventHeight   float64
	AxisHeight    float64
}

// DefaultLayout returns the standard lane and bar geometry.
func DefaultLayout() Layout {
	return Layout{
		TrackHeight:   80,
		TrackSpacing:  20,
		EventMinWidth: 4,
		EventMaxWidth: 200,
		EventHeight:   24,
		AxisHeight:    40,
	}
}

// LanePitch is the vertical distance between consecutive lane tops.
func (l Layout) LanePitch() float64 {
	return l.TrackHeight + l.TrackSpacing
}

// LaneY returns the top of the lane at the given index.
func (l Layout) LaneY(index int) float64 {
	return float64(index)*l.LanePitch() + l.TrackSpacing
}

// LaneIndexAt resolves which lane contains the vertical position y, or -1
// when y falls outside every lane (including the spacing gaps between
// lanes and anything past the last of laneCount lanes).
func (l Layout) LaneIndexAt(y float64, laneCount int) int {
	index := int(math.Floor((y - l.TrackSpacing) / l.LanePitch()))
	if index < 0 || index >= laneCount {
		return -1
	}
	top := l.LaneY(index)
	if y < top || y > top+l.TrackHeight {
		return -1
	}
	return index
}

// EventBox is the pixel rectangle of one event bar.
type EventBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// EventBox computes the bar rectangle for an event in the lane at laneY.
// Point events collapse to the minimum width; interval bars are clamped to
// [EventMinWidth, EventMaxWidth].
func (l Layout) EventBox(v View, event models.Event, laneY, width float64) EventBox {
	startX := v.TimeToX(event.Start, width)
	endX := startX
	if event.End != nil {
		endX = v.TimeToX(*event.End, width)
	}

	barWidth := clamp(math.Abs(endX-startX), l.EventMinWidth, l.EventMaxWidth)
	return EventBox{
		X:      math.Min(startX, endX),
		Y:      laneY + (l.TrackHeight-l.EventHeight)/2,
		Width:  barWidth,
		Height: l.EventHeight,
	}
}

// Contains reports whether the horizontal position x falls on the bar.
func (b EventBox) Contains(x float64) bool {
	return x >= b.X && x <= b.X+b.Width
}

// eventHitSpan is the horizontal span a pointer can land on. Unlike the
// drawn bar it is not capped at EventMaxWidth: a wide event accepts clicks
// across its full extent even though its bar is drawn truncated.
func (l Layout) eventHitSpan(v View, event models.Event, width float64) (float64, float64) {
	startX := v.TimeToX(event.Start, width)
	endX := startX
	if event.End != nil {
		endX = v.TimeToX(*event.End, width)
	}
	span := math.Max(math.Abs(endX-startX), l.EventMinWidth)
	return math.Min(startX, endX), span
}

// VisibleTracks filters tracks to those not hidden, preserving order.
// Lane indices are positions in this filtered list.
func VisibleTracks(tracks []models.Track) []models.Track {
	out := make([]models.Track, 0, len(tracks))
	for _, track := range tracks {
		if track.Visible {
			out = append(out, track)
		}
	}
	return out
}

// EventAt hit-tests the pixel position (x, y) against the visible lanes:
// resolve the lane from y, then linear-scan that track's events in data
// order and return the first whose span contains x. Returns false when no
// lane or no event matches.
func (l Layout) EventAt(v View, tracks []models.Track, events []models.Event, x, y, width float64) (models.Event, bool) {
	lanes := VisibleTracks(tracks)
	index := l.LaneIndexAt(y, len(lanes))
	if index < 0 {
		return models.Event{}, false
	}

	trackID := lanes[index].ID
	for _, event := range events {
		if event.TrackID != trackID {
			continue
		}
		spanX, span := l.eventHitSpan(v, event, width)
		if x >= spanX && x <= spanX+span {
			return event, true
		}
	}
	return models.Event{}, false
}
