package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackline/internal/events"
	"github.com/tOgg1/trackline/internal/models"
	"github.com/tOgg1/trackline/internal/store"
)

const testWidth = 1000.0

func newControllerFixture(t *testing.T) (*Controller, *store.Store, *View, models.Event) {
	t.Helper()
	s := store.New()
	track := models.NewTrack(models.Track{Name: "Lane"})
	s.AddTrack(track)

	end := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	event := models.NewEvent(models.Event{
		Title:   "Span",
		TrackID: track.ID,
		Start:   time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:     &end,
	})
	s.AddEvent(event)

	view := NewView()
	view.Range = TimeRange{
		Start: time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	return NewController(s, &view, DefaultLayout()), s, &view, event
}

func eventCenter(v *View, event models.Event, l Layout) (x, y float64) {
	startX := v.TimeToX(event.Start, testWidth)
	return startX + 2, l.LaneY(0) + l.TrackHeight/2
}

func TestDragPansView(t *testing.T) {
	c, _, view, _ := newControllerFixture(t)

	c.PointerDown(100, 100)
	require.Equal(t, StateDragging, c.State())

	redraw := c.PointerMove(150, 90, testWidth)
	require.True(t, redraw)
	require.InDelta(t, 50, view.OffsetX, 0.001)
	require.InDelta(t, -10, view.OffsetY, 0.001)

	// Deltas accumulate from the latest position, not the anchor.
	c.PointerMove(160, 90, testWidth)
	require.InDelta(t, 60, view.OffsetX, 0.001)

	c.PointerUp(160, 90, testWidth, false)
	require.Equal(t, StateIdle, c.State())
}

func TestClickAfterDragDoesNotSelect(t *testing.T) {
	c, s, view, event := newControllerFixture(t)
	x, y := eventCenter(view, event, DefaultLayout())

	c.PointerDown(x-30, y)
	c.PointerMove(x, y, testWidth)
	c.PointerUp(x, y, testWidth, false)

	require.Empty(t, s.SelectedEvents())
}

func TestClickTogglesSelection(t *testing.T) {
	c, s, view, event := newControllerFixture(t)
	x, y := eventCenter(view, event, DefaultLayout())

	c.PointerDown(x, y)
	c.PointerUp(x, y, testWidth, false)
	require.Equal(t, []string{event.ID}, s.SelectedEvents())

	c.PointerDown(x, y)
	c.PointerUp(x, y, testWidth, false)
	require.Empty(t, s.SelectedEvents())
}

func TestExclusiveClickReplacesSelection(t *testing.T) {
	c, s, view, event := newControllerFixture(t)

	other := models.NewEvent(models.Event{
		Title:   "Other",
		TrackID: event.TrackID,
		Start:   time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	s.AddEvent(other)
	s.SelectEvent(other.ID)

	x, y := eventCenter(view, event, DefaultLayout())
	c.PointerDown(x, y)
	c.PointerUp(x, y, testWidth, false)

	require.Equal(t, []string{event.ID}, s.SelectedEvents())
}

func TestAdditiveClickKeepsSelection(t *testing.T) {
	c, s, view, event := newControllerFixture(t)

	other := models.NewEvent(models.Event{
		Title:   "Other",
		TrackID: event.TrackID,
		Start:   time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	s.AddEvent(other)
	s.SelectEvent(other.ID)

	x, y := eventCenter(view, event, DefaultLayout())
	c.PointerDown(x, y)
	c.PointerUp(x, y, testWidth, true)

	require.ElementsMatch(t, []string{event.ID, other.ID}, s.SelectedEvents())
}

func TestClickEmptySpaceClearsSelectionUnlessAdditive(t *testing.T) {
	c, s, view, event := newControllerFixture(t)
	s.SelectEvent(event.ID)

	// Far left of the lane, before the event bar starts.
	emptyX := view.TimeToX(time.Date(2019, time.February, 1, 0, 0, 0, 0, time.UTC), testWidth)
	y := DefaultLayout().LaneY(0) + 10

	c.PointerDown(emptyX, y)
	c.PointerUp(emptyX, y, testWidth, true)
	require.Equal(t, []string{event.ID}, s.SelectedEvents())

	c.PointerDown(emptyX, y)
	c.PointerUp(emptyX, y, testWidth, false)
	require.Empty(t, s.SelectedEvents())
}

func TestClickPublishesTimelineSelection(t *testing.T) {
	c, s, view, event := newControllerFixture(t)

	var published events.Change
	err := s.Publisher().Subscribe("observer", events.Filter{
		Topics: []events.Topic{events.TopicTimelineSelection},
	}, func(change events.Change) {
		published = change
	})
	require.NoError(t, err)

	x, y := eventCenter(view, event, DefaultLayout())
	c.PointerDown(x, y)
	c.PointerUp(x, y, testWidth, false)

	require.Equal(t, event.ID, published.EntityID)
	require.Equal(t, []string{event.ID}, published.SelectedEvents)
}

func TestHoverTransitions(t *testing.T) {
	c, _, view, event := newControllerFixture(t)
	x, y := eventCenter(view, event, DefaultLayout())

	redraw := c.PointerMove(x, y, testWidth)
	require.True(t, redraw)
	require.Equal(t, StateHovering, c.State())
	require.Equal(t, event.ID, c.HoveredEvent())

	tx, ty := c.TooltipAnchor()
	require.Equal(t, x, tx)
	require.Equal(t, y, ty)

	// Moving within the same event updates the anchor without a redraw.
	redraw = c.PointerMove(x+1, y, testWidth)
	require.False(t, redraw)

	// Moving off the event clears the hover.
	redraw = c.PointerMove(x, y+200, testWidth)
	require.True(t, redraw)
	require.Equal(t, StateIdle, c.State())
	require.Empty(t, c.HoveredEvent())
}

func TestPointerLeaveClearsDragAndHover(t *testing.T) {
	c, _, view, event := newControllerFixture(t)
	x, y := eventCenter(view, event, DefaultLayout())

	c.PointerMove(x, y, testWidth)
	require.Equal(t, StateHovering, c.State())

	require.True(t, c.PointerLeave())
	require.Equal(t, StateIdle, c.State())
	require.Empty(t, c.HoveredEvent())
	require.False(t, c.PointerLeave())
}

func TestWheelZoomsTowardCursor(t *testing.T) {
	c, _, view, _ := newControllerFixture(t)
	const cursorX = 400.0

	anchor := view.XToTime(cursorX, testWidth)
	require.True(t, c.Wheel(cursorX, true))
	require.InDelta(t, 1.1, view.Zoom, 0.0001)
	require.InDelta(t, cursorX, view.TimeToX(anchor, testWidth), 1.0)

	require.True(t, c.Wheel(cursorX, false))
	require.InDelta(t, 0.99, view.Zoom, 0.0001)
}

func TestWheelAtZoomBoundReportsNoRedraw(t *testing.T) {
	c, _, view, _ := newControllerFixture(t)
	view.Zoom = ZoomMax

	require.False(t, c.Wheel(500, true))
	require.Equal(t, ZoomMax, view.Zoom)
}
