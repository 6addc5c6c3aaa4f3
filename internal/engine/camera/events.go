package camera

// Event is an input delta applied to an OrbitCamera.
type Event interface {
	apply(c *OrbitCamera)
}

// DragEvent rotates the camera (primary button held).
type DragEvent struct {
	DX, DY float32
}

// PanEvent moves the orbit target (secondary button held).
type PanEvent struct {
	DX, DY float32
}

// ScrollEvent zooms the camera (wheel).
type ScrollEvent struct {
	DY float32
}

func (e DragEvent) apply(c *OrbitCamera)   { c.HandleDrag(e.DX, e.DY) }
func (e PanEvent) apply(c *OrbitCamera)    { c.HandlePan(e.DX, e.DY) }
func (e ScrollEvent) apply(c *OrbitCamera) { c.HandleScroll(e.DY) }

// Dispatch applies events in order.
func (c *OrbitCamera) Dispatch(events ...Event) {
	for _, e := range events {
		e.apply(c)
	}
}

// Button identifies a pointer button.
type Button int

// Pointer buttons the camera reacts to.
const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonOther
)

// PointerTracker turns raw pointer state into camera events. Screen Y grows
// downward, so upward motion produces a positive DY.
type PointerTracker struct {
	primary   bool
	secondary bool
	lastX     float32
	lastY     float32
	hasLast   bool
}

// Press records a button going down at (x, y).
func (p *PointerTracker) Press(b Button, x, y float32) {
	switch b {
	case ButtonPrimary:
		p.primary = true
	case ButtonSecondary:
		p.secondary = true
	}
	p.lastX, p.lastY, p.hasLast = x, y, true
}

// Release records a button going up.
func (p *PointerTracker) Release(b Button) {
	switch b {
	case ButtonPrimary:
		p.primary = false
	case ButtonSecondary:
		p.secondary = false
	}
}

// Move records the pointer at (x, y) and returns the events the motion
// produces: a drag while the primary button is held and a pan while the
// secondary one is.
func (p *PointerTracker) Move(x, y float32) []Event {
	if !p.hasLast {
		p.lastX, p.lastY, p.hasLast = x, y, true
		return nil
	}

	dx := x - p.lastX
	dy := p.lastY - y
	p.lastX, p.lastY = x, y

	var events []Event
	if p.primary {
		events = append(events, DragEvent{DX: dx, DY: dy})
	}
	if p.secondary {
		events = append(events, PanEvent{DX: dx, DY: dy})
	}
	return events
}

// Position returns the last known pointer location.
func (p *PointerTracker) Position() (x, y float32, ok bool) {
	return p.lastX, p.lastY, p.hasLast
}

// Scroll returns the event for a wheel step.
func (p *PointerTracker) Scroll(dy float32) Event {
	return ScrollEvent{DY: dy}
}
