package timeline

import "time"

// Tick is one axis gridline with its label.
type Tick struct {
	Time  time.Time
	Label string
}

// targetLabelSpacing is the rough horizontal room per axis label.
const targetLabelSpacing = 100.0

type tickUnit struct {
	step   time.Duration
	format string
}

// Fixed ladder, coarsest first. The month and year steps use nominal
// durations so unit selection and flooring stay simple arithmetic.
var tickUnits = []tickUnit{
	{step: 365 * 24 * time.Hour, format: "2006"},
	{step: 30 * 24 * time.Hour, format: "Jan 2006"},
	{step: 7 * 24 * time.Hour, format: "Jan 2"},
	{step: 24 * time.Hour, format: "Jan 2"},
}

// Ticks computes axis gridlines for the view at the given surface width:
// the coarsest ladder unit that still yields roughly one label per 100px,
// with tick times floored to unit boundaries. Only ticks that land within
// [0, width] after projection are returned.
func Ticks(v View, width float64) []Tick {
	span := v.Range.Span()
	if span <= 0 || width <= 0 {
		return nil
	}

	target := int(width / targetLabelSpacing)
	if target < 1 {
		target = 1
	}
	perInterval := span / time.Duration(target)

	unit := tickUnits[len(tickUnits)-1]
	for _, candidate := range tickUnits {
		if perInterval >= candidate.step {
			unit = candidate
			break
		}
	}

	var ticks []Tick
	start := v.Range.Start.Truncate(unit.step)
	for t := start; !t.After(v.Range.End); t = t.Add(unit.step) {
		x := v.TimeToX(t, width)
		if x < 0 || x > width {
			continue
		}
		ticks = append(ticks, Tick{Time: t, Label: t.UTC().Format(unit.format)})
	}
	return ticks
}
