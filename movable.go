package corkboard

import "log/slog"

// DefaultPosition is the logical position a Movable starts at when the board
// configuration does not say otherwise.
var DefaultPosition = Vec2{X: 100, Y: 100}

// dragSession is the Dragging state. Everything in it is only meaningful while
// a drag is in progress, so it lives and dies with the session; a nil
// *dragSession is the Idle state.
type dragSession struct {
	owner          int  // pointer that started the drag
	clickOrigin    Vec2 // pointer client coordinates at pointerdown
	positionOrigin Vec2 // Movable position at pointerdown
}

// Movable is a pointer-driven drag controller for a single element. It turns
// the host's pointer event stream into an absolute logical position.
//
// A Movable is either Idle or Dragging a single owner pointer. While dragging,
// events for any other pointer are ignored. The position law is purely
// additive:
//
//	position = positionOrigin + (pointer - clickOrigin)
//
// No clamping or snapping is applied; bounds are a policy for callers to layer
// on top. Invalid, late, or duplicate events never fail: they are dropped.
//
// Movable is not safe for concurrent use. Hosts deliver events from a single
// loop (ebiten's Update, bubbletea's Update), which is all it needs.
type Movable struct {
	// Name identifies the Movable in log output.
	Name string

	position Vec2
	session  *dragSession
	handle   PointerCapturer
}

// NewMovable creates an Idle Movable at the given initial position.
func NewMovable(initial Vec2) *Movable {
	return &Movable{position: initial}
}

// Position returns the current logical position. This is the only value the
// rendering path reads.
func (m *Movable) Position() Vec2 {
	return m.position
}

// Placement projects the logical position into an absolute placement offset
// from the given origin (typically the surface's top-left corner).
func (m *Movable) Placement(origin Vec2) Vec2 {
	return origin.Add(m.position)
}

// Dragging reports the owner pointer of the active drag, if any.
func (m *Movable) Dragging() (pointerID int, ok bool) {
	if m.session == nil {
		return 0, false
	}
	return m.session.owner, true
}

// Mounted reports whether a capture handle is currently attached.
func (m *Movable) Mounted() bool {
	return m.handle != nil
}

// OnMounted stores the handle used to request and release pointer capture.
// A nil handle marks the Movable as unmounted; hosts pass nil on detach and
// the new handle on re-attach. Drag state is not affected.
func (m *Movable) OnMounted(h PointerCapturer) {
	m.handle = h
}

// HandlePointerEvent routes evt to the matching handler.
func (m *Movable) HandlePointerEvent(evt PointerEvent) {
	switch evt.Type {
	case EventPointerDown:
		m.PointerDown(evt)
	case EventPointerMove:
		m.PointerMove(evt)
	case EventPointerUp:
		m.PointerUp(evt)
	case EventPointerCancel:
		m.PointerCancel(evt)
	case EventLostPointerCapture:
		m.LostPointerCapture()
	}
}

// PointerDown starts a drag for a primary-button press.
//
// While another pointer owns the drag the press is ignored. A second press
// from the owner itself means its release never arrived, so the session is
// restarted from the current position.
func (m *Movable) PointerDown(evt PointerEvent) {
	if evt.Button != MouseButtonPrimary {
		m.ignore(evt, "non-primary button")
		return
	}
	if m.session != nil && m.session.owner != evt.PointerID {
		m.ignore(evt, "drag owned by another pointer")
		return
	}

	m.capture(evt.PointerID)

	m.session = &dragSession{
		owner:          evt.PointerID,
		clickOrigin:    evt.Client(),
		positionOrigin: m.position,
	}
	Logger().Debug("drag started",
		slog.String("movable", m.Name),
		slog.Int("pointer", evt.PointerID),
		slog.Float64("x", m.position.X),
		slog.Float64("y", m.position.Y))
}

// PointerMove recomputes the position from the owner pointer's displacement.
func (m *Movable) PointerMove(evt PointerEvent) {
	if m.session == nil || m.session.owner != evt.PointerID {
		return
	}
	delta := evt.Client().Sub(m.session.clickOrigin)
	m.position = m.session.positionOrigin.Add(delta)
}

// PointerUp ends the drag owned by evt.PointerID.
func (m *Movable) PointerUp(evt PointerEvent) {
	m.end(evt, "drag ended")
}

// PointerCancel aborts the drag owned by evt.PointerID. The position keeps
// whatever the last move produced.
func (m *Movable) PointerCancel(evt PointerEvent) {
	m.end(evt, "drag cancelled")
}

// LostPointerCapture returns the Movable to Idle whatever pointer the capture
// belonged to. The host's capture-loss signal is trusted as a safety net
// against a stuck drag, so unlike PointerUp and PointerCancel there is no
// owner check.
func (m *Movable) LostPointerCapture() {
	if m.session == nil {
		return
	}
	Logger().Debug("drag ended by capture loss",
		slog.String("movable", m.Name),
		slog.Int("pointer", m.session.owner))
	m.session = nil
}

func (m *Movable) end(evt PointerEvent, msg string) {
	if m.session == nil || m.session.owner != evt.PointerID {
		return
	}
	m.release(m.session.owner)
	m.session = nil
	Logger().Debug(msg,
		slog.String("movable", m.Name),
		slog.Int("pointer", evt.PointerID),
		slog.Float64("x", m.position.X),
		slog.Float64("y", m.position.Y))
}

// capture and release are best-effort: the position math does not depend on
// capture, so failures are logged and dropped.
func (m *Movable) capture(pointerID int) {
	if m.handle == nil {
		m.captureFailed("set", pointerID, ErrNotMounted)
		return
	}
	if err := m.handle.SetPointerCapture(pointerID); err != nil {
		m.captureFailed("set", pointerID, err)
	}
}

func (m *Movable) release(pointerID int) {
	if m.handle == nil {
		m.captureFailed("release", pointerID, ErrNotMounted)
		return
	}
	if err := m.handle.ReleasePointerCapture(pointerID); err != nil {
		m.captureFailed("release", pointerID, err)
	}
}

func (m *Movable) captureFailed(op string, pointerID int, err error) {
	Logger().Debug("pointer capture failed",
		slog.String("movable", m.Name),
		slog.String("op", op),
		slog.Int("pointer", pointerID),
		slog.Any("err", err))
}

func (m *Movable) ignore(evt PointerEvent, reason string) {
	Logger().Debug("pointer event ignored",
		slog.String("movable", m.Name),
		slog.String("event", evt.Type.String()),
		slog.Int("pointer", evt.PointerID),
		slog.String("reason", reason))
}
