package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackline/internal/models"
)

func TestTimeToXDefaultView(t *testing.T) {
	v := NewView()

	require.InDelta(t, 0, v.TimeToX(DefaultRangeStart, 1000), 0.001)
	require.InDelta(t, 1000, v.TimeToX(DefaultRangeEnd, 1000), 0.001)

	mid := DefaultRangeStart.Add(v.Range.Span() / 2)
	require.InDelta(t, 500, v.TimeToX(mid, 1000), 0.001)
}

func TestTimeToXHonorsZoomAndOffset(t *testing.T) {
	v := NewView()
	v.Zoom = 2
	v.OffsetX = -300

	require.InDelta(t, -300, v.TimeToX(DefaultRangeStart, 1000), 0.001)
	require.InDelta(t, 1700, v.TimeToX(DefaultRangeEnd, 1000), 0.001)
}

func TestRoundTripWithinOneMillisecond(t *testing.T) {
	views := []View{
		NewView(),
		{Zoom: 3.7, OffsetX: -412.5, Range: TimeRange{Start: DefaultRangeStart, End: DefaultRangeEnd}},
		{Zoom: 0.1, OffsetX: 999, Range: TimeRange{
			Start: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC),
		}},
	}
	const width = 1000.0

	for _, v := range views {
		span := v.Range.Span()
		for i := 0; i <= 10; i++ {
			d := v.Range.Start.Add(span / 10 * time.Duration(i))
			back := v.XToTime(v.TimeToX(d, width), width)
			diff := back.Sub(d)
			if diff < 0 {
				diff = -diff
			}
			require.LessOrEqual(t, diff, time.Millisecond, "round-trip drift for %s", d)
		}
	}
}

func TestZoomAtKeepsCursorTimeFixed(t *testing.T) {
	const width = 1000.0
	const cursorX = 640.0

	v := NewView()
	v.OffsetX = -120
	v.Zoom = 1.5

	anchor := v.XToTime(cursorX, width)
	for i := 0; i < 5; i++ {
		v.ZoomAt(cursorX, ZoomStepIn)
		require.InDelta(t, cursorX, v.TimeToX(anchor, width), 1.0)
	}
	for i := 0; i < 8; i++ {
		v.ZoomAt(cursorX, ZoomStepOut)
		require.InDelta(t, cursorX, v.TimeToX(anchor, width), 1.0)
	}
}

func TestZoomClamped(t *testing.T) {
	v := NewView()
	for i := 0; i < 60; i++ {
		v.ZoomAt(0, ZoomStepIn)
	}
	require.Equal(t, ZoomMax, v.Zoom)

	for i := 0; i < 120; i++ {
		v.ZoomAt(0, ZoomStepOut)
	}
	require.Equal(t, ZoomMin, v.Zoom)
}

func TestFitToEventsPadsTenPercent(t *testing.T) {
	end := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		{Start: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{Start: time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC), End: &end},
	}

	v := NewView()
	v.FitToEvents(events)

	span := end.Sub(events[0].Start)
	pad := time.Duration(float64(span) * 0.1)
	require.Equal(t, events[0].Start.Add(-pad), v.Range.Start)
	require.Equal(t, end.Add(pad), v.Range.End)
}

func TestFitToEventsEmptyUsesDefaultRange(t *testing.T) {
	v := NewView()
	v.Range = TimeRange{Start: time.Now(), End: time.Now()}
	v.FitToEvents(nil)

	require.Equal(t, DefaultRangeStart, v.Range.Start)
	require.Equal(t, DefaultRangeEnd, v.Range.End)
}

func TestTicksUseYearUnitForDefaultRange(t *testing.T) {
	v := NewView()
	ticks := Ticks(v, 1000)

	require.NotEmpty(t, ticks)
	// 80 years over 10 label slots selects the year unit, one tick per year.
	require.GreaterOrEqual(t, len(ticks), 75)
	require.LessOrEqual(t, len(ticks), 85)
	for _, tick := range ticks {
		require.Len(t, tick.Label, 4)
		x := v.TimeToX(tick.Time, 1000)
		require.GreaterOrEqual(t, x, 0.0)
		require.LessOrEqual(t, x, 1000.0)
	}
}

func TestTicksPickFinerUnitsForNarrowRanges(t *testing.T) {
	v := NewView()
	v.Range = TimeRange{
		Start: time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC),
	}

	ticks := Ticks(v, 1000)
	require.NotEmpty(t, ticks)
	for _, tick := range ticks {
		require.Contains(t, tick.Label, "Mar")
	}
}
