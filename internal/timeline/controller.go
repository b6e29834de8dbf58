package timeline

import (
	"github.com/tOgg1/trackline/internal/models"
	"github.com/tOgg1/trackline/internal/store"
)

// PointerState is the interaction mode of the timeline surface.
type PointerState int

const (
	StateIdle PointerState = iota
	StateDragging
	StateHovering
)

func (s PointerState) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateHovering:
		return "hovering"
	default:
		return "idle"
	}
}

// Controller translates pointer and wheel input into pan, zoom, hover, and
// selection changes. Each input method reports whether the surface needs a
// redraw. The store is injected; selection lives there, not here.
type Controller struct {
	store  *store.Store
	view   *View
	layout Layout

	state   PointerState
	anchorX float64
	anchorY float64
	dragged bool

	hoveredID string
	tooltipX  float64
	tooltipY  float64
}

// NewController wires a controller to a store and a view it will mutate.
func NewController(s *store.Store, view *View, layout Layout) *Controller {
	return &Controller{store: s, view: view, layout: layout}
}

// State returns the current pointer state.
func (c *Controller) State() PointerState {
	return c.state
}

// HoveredEvent returns the hovered event id, or "" when nothing is hovered.
func (c *Controller) HoveredEvent() string {
	return c.hoveredID
}

// TooltipAnchor returns the last pointer position recorded while hovering.
func (c *Controller) TooltipAnchor() (x, y float64) {
	return c.tooltipX, c.tooltipY
}

// PointerDown starts a drag at the given position.
func (c *Controller) PointerDown(x, y float64) bool {
	c.state = StateDragging
	c.anchorX = x
	c.anchorY = y
	c.dragged = false
	return false
}

// PointerMove pans while dragging, otherwise updates the hover target via
// hit-testing at the given surface width.
func (c *Controller) PointerMove(x, y, width float64) bool {
	if c.state == StateDragging {
		c.view.Pan(x-c.anchorX, y-c.anchorY)
		c.anchorX = x
		c.anchorY = y
		c.dragged = true
		return true
	}

	event, ok := c.layout.EventAt(*c.view, c.store.Tracks(), c.store.Events(), x, y, width)
	if ok {
		if c.hoveredID == event.ID {
			c.tooltipX = x
			c.tooltipY = y
			return false
		}
		c.state = StateHovering
		c.hoveredID = event.ID
		c.tooltipX = x
		c.tooltipY = y
		return true
	}

	if c.hoveredID != "" {
		c.state = StateIdle
		c.hoveredID = ""
		return true
	}
	return false
}

// PointerUp ends a drag. When the pointer never moved between down and up,
// the release counts as a click: hitting an event toggles its selection
// (additive keeps the rest of the selection, otherwise it is replaced);
// hitting empty space clears the selection unless additive.
func (c *Controller) PointerUp(x, y, width float64, additive bool) bool {
	wasDragging := c.state == StateDragging
	dragged := c.dragged
	c.state = StateIdle
	c.dragged = false

	if !wasDragging || dragged {
		return wasDragging && dragged
	}
	return c.click(x, y, width, additive)
}

func (c *Controller) click(x, y, width float64, additive bool) bool {
	event, ok := c.layout.EventAt(*c.view, c.store.Tracks(), c.store.Events(), x, y, width)
	if !ok {
		if !additive && len(c.store.SelectedEvents()) > 0 {
			c.store.ClearSelection()
			return true
		}
		return false
	}

	if c.store.IsEventSelected(event.ID) {
		c.store.DeselectEvent(event.ID)
	} else {
		if !additive {
			c.store.ClearSelection()
		}
		c.store.SelectEvent(event.ID)
	}
	c.store.PublishTimelineSelection(event.ID)
	return true
}

// PointerLeave cancels any drag and clears the hover state.
func (c *Controller) PointerLeave() bool {
	changed := c.state != StateIdle || c.hoveredID != ""
	c.state = StateIdle
	c.dragged = false
	c.hoveredID = ""
	return changed
}

// Wheel applies one multiplicative zoom notch toward the cursor.
func (c *Controller) Wheel(cursorX float64, zoomIn bool) bool {
	factor := ZoomStepOut
	if zoomIn {
		factor = ZoomStepIn
	}
	before := c.view.Zoom
	c.view.ZoomAt(cursorX, factor)
	return c.view.Zoom != before
}

// HitTest exposes hit-testing for callers that need the event under a
// position without changing any interaction state.
func (c *Controller) HitTest(x, y, width float64) (models.Event, bool) {
	return c.layout.EventAt(*c.view, c.store.Tracks(), c.store.Events(), x, y, width)
}
