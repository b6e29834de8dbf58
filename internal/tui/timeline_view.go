package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/trackline/internal/models"
	"github.com/tOgg1/trackline/internal/store"
	"github.com/tOgg1/trackline/internal/timeline"
	"github.com/tOgg1/trackline/internal/tui/styles"
)

// Cell-space geometry: one terminal cell is one layout unit. Lanes are
// three rows tall with a one-row gap; event bars are a single row.
func cellLayout() timeline.Layout {
	return timeline.Layout{
		TrackHeight:   3,
		TrackSpacing:  1,
		EventMinWidth: 1,
		EventMaxWidth: 40,
		EventHeight:   1,
		AxisHeight:    2,
	}
}

const keyPanStep = 5

// Bar glyphs by state, selection winning over hover.
const (
	barRune         = '█'
	barHoverRune    = '▓'
	barSelectedRune = '▒'
	aiMarkerRune    = '*'
)

// timelineView draws the timeline as a rune grid and routes pointer input
// through the interaction controller.
type timelineView struct {
	store      *store.Store
	view       timeline.View
	layout     timeline.Layout
	controller *timeline.Controller

	fitted    bool
	lastWidth int
}

func newTimelineView(s *store.Store) *timelineView {
	v := &timelineView{
		store:  s,
		view:   timeline.NewView(),
		layout: cellLayout(),
	}
	v.controller = timeline.NewController(s, &v.view, v.layout)
	return v
}

func (v *timelineView) Init() tea.Cmd {
	if !v.fitted {
		v.view.FitToEvents(v.store.Events())
		v.fitted = true
	}
	return nil
}

func (v *timelineView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case dataInvalidated:
		// Keep pan/zoom; only the data under it changed.
		return nil
	case tea.MouseMsg:
		v.handleMouse(typed)
		return nil
	case tea.KeyMsg:
		v.handleKey(typed)
		return nil
	}
	return nil
}

func (v *timelineView) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X)
	y := float64(msg.Y)
	width := float64(v.lastWidth)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.controller.Wheel(x, true)
		return
	case tea.MouseButtonWheelDown:
		v.controller.Wheel(x, false)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			v.controller.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		v.controller.PointerMove(x, y, width)
	case tea.MouseActionRelease:
		v.controller.PointerUp(x, y, width, msg.Ctrl)
	}
}

func (v *timelineView) handleKey(msg tea.KeyMsg) {
	center := float64(v.lastWidth) / 2
	switch msg.String() {
	case "left", "h":
		v.view.Pan(keyPanStep, 0)
	case "right", "l":
		v.view.Pan(-keyPanStep, 0)
	case "+", "=":
		v.view.ZoomAt(center, timeline.ZoomStepIn)
	case "-":
		v.view.ZoomAt(center, timeline.ZoomStepOut)
	case "f":
		v.view.FitToEvents(v.store.Events())
		v.view.Reset()
	case "esc":
		v.controller.PointerLeave()
	}
}

func (v *timelineView) View(width, height int, theme styles.Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	v.lastWidth = width

	grid := newRuneGrid(width, height)
	fw := float64(width)
	axisTop := height - int(v.layout.AxisHeight)
	if axisTop < 0 {
		axisTop = 0
	}

	v.drawGridlines(grid, fw, axisTop)
	lanes := timeline.VisibleTracks(v.store.Tracks())
	v.drawLanes(grid, lanes, width, axisTop)
	v.drawEvents(grid, lanes, fw, axisTop)
	v.drawAxis(grid, fw, axisTop, width)
	v.drawTooltip(grid, width, height)

	lines := grid.lines()
	base := theme.BaseStyle()
	for i := range lines {
		lines[i] = base.Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

func (v *timelineView) drawGridlines(grid runeGrid, width float64, axisTop int) {
	for _, tick := range timeline.Ticks(v.view, width) {
		x := int(v.view.TimeToX(tick.Time, width))
		for y := 0; y < axisTop; y++ {
			grid.set(x, y, '·')
		}
	}
}

func (v *timelineView) drawLanes(grid runeGrid, lanes []models.Track, width, axisTop int) {
	for index, track := range lanes {
		top := int(v.layout.LaneY(index))
		if top >= axisTop {
			break
		}
		for x := 0; x < width; x++ {
			grid.set(x, top, '─')
		}
		grid.writeString(1, top, "▎"+truncate(track.Name, width-3))
	}
}

func (v *timelineView) drawEvents(grid runeGrid, lanes []models.Track, width float64, axisTop int) {
	selected := make(map[string]struct{})
	for _, id := range v.store.SelectedEvents() {
		selected[id] = struct{}{}
	}
	laneIndex := make(map[string]int, len(lanes))
	for i, track := range lanes {
		laneIndex[track.ID] = i
	}

	for _, event := range v.store.Events() {
		index, visible := laneIndex[event.TrackID]
		if !visible {
			continue
		}
		box := v.layout.EventBox(v.view, event, v.layout.LaneY(index), width)
		row := int(box.Y)
		if row >= axisTop {
			continue
		}

		glyph := barRune
		if _, ok := selected[event.ID]; ok {
			glyph = barSelectedRune
		} else if v.controller.HoveredEvent() == event.ID {
			glyph = barHoverRune
		}

		start := int(box.X)
		end := int(box.X + box.Width)
		if end <= start {
			end = start + 1
		}
		for x := start; x < end; x++ {
			grid.set(x, row, glyph)
		}

		if width := end - start; width > 4 {
			title := truncate(event.Title, width-2)
			grid.writeString(start+1, row, title)
		}
		if event.AIGenerated && end-start > 2 {
			grid.set(end-1, row, aiMarkerRune)
		}
	}
}

func (v *timelineView) drawAxis(grid runeGrid, width float64, axisTop, cols int) {
	for x := 0; x < cols; x++ {
		grid.set(x, axisTop, '─')
	}
	for _, tick := range timeline.Ticks(v.view, width) {
		x := int(v.view.TimeToX(tick.Time, width))
		grid.set(x, axisTop, '┴')
		grid.writeString(x-len(tick.Label)/2, axisTop+1, tick.Label)
	}
}

// drawTooltip writes a small boxed summary of the hovered event near the
// pointer, flipped to stay inside the surface.
func (v *timelineView) drawTooltip(grid runeGrid, width, height int) {
	hoveredID := v.controller.HoveredEvent()
	if hoveredID == "" {
		return
	}
	event, ok := v.store.Event(hoveredID)
	if !ok {
		return
	}

	lines := []string{event.Title, event.Start.Format("2006-01-02")}
	if event.End != nil {
		lines[1] += " → " + event.End.Format("2006-01-02")
	}
	if event.Category != "" {
		lines = append(lines, event.Category)
	}

	boxWidth := 0
	for _, line := range lines {
		if len(line) > boxWidth {
			boxWidth = len(line)
		}
	}
	boxWidth += 2

	anchorX, anchorY := v.controller.TooltipAnchor()
	x := int(anchorX) + 2
	y := int(anchorY) - len(lines) - 2
	if x+boxWidth+2 > width {
		x = int(anchorX) - boxWidth - 4
	}
	if y < 0 {
		y = int(anchorY) + 1
	}

	grid.set(x, y, '┌')
	grid.set(x+boxWidth+1, y, '┐')
	for i := 0; i < boxWidth; i++ {
		grid.set(x+1+i, y, '─')
		grid.set(x+1+i, y+len(lines)+1, '─')
	}
	for i, line := range lines {
		grid.set(x, y+1+i, '│')
		grid.writeString(x+2, y+1+i, truncate(line, boxWidth-2))
		grid.set(x+boxWidth+1, y+1+i, '│')
	}
	grid.set(x, y+len(lines)+1, '└')
	grid.set(x+boxWidth+1, y+len(lines)+1, '┘')
}

// Status returns a one-line summary of the view state, for tests and the
// footer.
func (v *timelineView) Status() string {
	return fmt.Sprintf("zoom %.2f offset %.0f", v.view.Zoom, v.view.OffsetX)
}

// runeGrid is a bounds-checked character surface.
type runeGrid [][]rune

func newRuneGrid(width, height int) runeGrid {
	grid := make(runeGrid, height)
	for y := range grid {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		grid[y] = row
	}
	return grid
}

func (g runeGrid) set(x, y int, r rune) {
	if y < 0 || y >= len(g) {
		return
	}
	if x < 0 || x >= len(g[y]) {
		return
	}
	g[y][x] = r
}

func (g runeGrid) writeString(x, y int, s string) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r)
	}
}

func (g runeGrid) lines() []string {
	out := make([]string, len(g))
	for y := range g {
		out[y] = string(g[y])
	}
	return out
}
