package viewport

import "sync"

// Surface is the whole interaction area of a window. While a drag is in
// progress the controller listens to pointer moves and releases anywhere on
// the surface, not only over the element where the drag began.
type Surface interface {
	// Listen registers callbacks for pointer motion and release, reporting
	// the horizontal position in the surface's units. The returned function
	// removes both callbacks.
	Listen(move, release func(x float64)) (unlisten func())
}

// Controller owns a State and serializes every change to it.
type Controller struct {
	mu       sync.Mutex
	state    State
	surface  Surface
	unlisten func()
}

func NewController(initial State, surface Surface) *Controller {
	return &Controller{
		state:   initial.Clone(),
		surface: surface,
	}
}

// Dispatch applies a to the state. Actions that would install a degenerate
// interval return ErrDegenerateInterval and change nothing. Drag actions are
// routed through StartDrag and EndDrag so that listeners are managed.
func (c *Controller) Dispatch(a Action) error {
	switch a := a.(type) {
	case StartDrag:
		c.StartDrag(a.X, a.Extent)
		return nil
	case EndDrag:
		c.EndDrag(a.X)
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := Validate(c.state, a); err != nil {
		return err
	}
	c.state = Reduce(c.state, a)
	return nil
}

// Snapshot returns a copy of the current state that later changes cannot
// affect.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// StartDrag begins an interval selection at x and starts listening to the
// surface until the drag ends.
func (c *Controller) StartDrag(x float64, extent Extent) {
	c.mu.Lock()
	stale := c.unlisten
	c.unlisten = nil
	c.state = Reduce(c.state, StartDrag{X: x, Extent: extent})
	c.mu.Unlock()
	if stale != nil {
		stale()
	}
	if c.surface == nil {
		return
	}
	unlisten := c.surface.Listen(c.ContinueDrag, c.EndDrag)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Drag.Dragging {
		// The drag already ended from within Listen.
		unlisten()
		return
	}
	c.unlisten = unlisten
}

// ContinueDrag updates the live selection. Positions outside the extent are
// clamped.
func (c *Controller) ContinueDrag(x float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, ContinueDrag{X: x})
}

// EndDrag commits the selection ending at x and stops listening to the
// surface.
func (c *Controller) EndDrag(x float64) {
	c.mu.Lock()
	c.state = Reduce(c.state, EndDrag{X: x})
	unlisten := c.unlisten
	c.unlisten = nil
	c.mu.Unlock()
	if unlisten != nil {
		unlisten()
	}
}

// Dragging reports whether an interval selection is in progress.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Drag.Dragging
}

// Close abandons any drag in progress and releases the surface listeners.
func (c *Controller) Close() {
	c.mu.Lock()
	c.state.Drag = DragState{}
	unlisten := c.unlisten
	c.unlisten = nil
	c.mu.Unlock()
	if unlisten != nil {
		unlisten()
	}
}
