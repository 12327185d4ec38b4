package corkboard

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	button MouseButton // button captured at press time
	lastX  float64
	lastY  float64
	target *Node // node that received pointerdown; cancel falls back to it
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

type handlerRegistry struct {
	byType [eventTypeCount][]pointerHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside the callback itself.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			// A dispatch in progress may be ranging over s; leave it intact.
			next := make([]pointerHandler, 0, len(s)-1)
			next = append(next, s[:i]...)
			h.reg.byType[h.event] = append(next, s[i+1:]...)
			return
		}
	}
}

// On registers a scene-level callback for every event of the given type,
// whichever node it targets. Scene-level callbacks run before node callbacks.
func (s *Scene) On(event EventType, fn func(PointerEvent)) CallbackHandle {
	if event >= eventTypeCount {
		return CallbackHandle{}
	}
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byType[event] = append(s.handlers.byType[event], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives the rectangle from the node size.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in paint order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable {
		buf = append(buf, n)
	}
	if len(n.children) == 0 {
		return buf
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	for _, child := range n.sortedChildren {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Reverse paint order: topmost first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// NodeAt returns the topmost interactable node at the given screen point.
func (s *Scene) NodeAt(x, y float64) *Node {
	return s.hitTest(x, y)
}

// targetFor returns the captured node for pointerID, or the hit node.
func (s *Scene) targetFor(pointerID int, x, y float64) *Node {
	if n := s.captured[pointerID]; n != nil {
		return n
	}
	return s.hitTest(x, y)
}

// --- Input processing ---

// processInput is called from Scene.Update to turn polled ebiten state into
// discrete pointer events. Injected input takes the frame when present.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}

	focused := ebiten.IsFocused()
	if !focused {
		if s.focused {
			s.cancelAll()
		}
		s.focused = false
		return
	}
	s.focused = true

	s.processMousePointer()
	s.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down, keep the button it was pressed with.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonPrimary
		} else if right {
			button = MouseButtonSecondary
		} else {
			button = MouseButtonAuxiliary
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonPrimary)
	}

	// Lifted touches release at their last known position.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonPrimary)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer turns one pointer's level state for this frame into
// pointerdown / pointermove / pointerup events.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &s.pointers[pointerID]

	if pressed && !ps.down {
		ps.down = true
		ps.button = button
		ps.lastX, ps.lastY = x, y
		target := s.targetFor(pointerID, x, y)
		ps.target = target
		s.dispatch(target, PointerEvent{
			Type: EventPointerDown, PointerID: pointerID, Button: button,
			ClientX: x, ClientY: y,
		})
		return
	}

	if x != ps.lastX || y != ps.lastY {
		ps.lastX, ps.lastY = x, y
		s.dispatch(s.targetFor(pointerID, x, y), PointerEvent{
			Type: EventPointerMove, PointerID: pointerID, Button: MouseButtonNone,
			ClientX: x, ClientY: y,
		})
	}

	if !pressed && ps.down {
		ps.down = false
		ps.target = nil
		s.dispatch(s.targetFor(pointerID, x, y), PointerEvent{
			Type: EventPointerUp, PointerID: pointerID, Button: ps.button,
			ClientX: x, ClientY: y,
		})
		s.releaseImplicit(pointerID)
	}
}

// cancelPointer aborts a held pointer: pointercancel goes to the captured
// node, or to the node that received pointerdown.
func (s *Scene) cancelPointer(pointerID int) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &s.pointers[pointerID]
	if !ps.down {
		return
	}
	target := s.captured[pointerID]
	if target == nil {
		target = ps.target
	}
	ps.down = false
	ps.target = nil
	s.dispatch(target, PointerEvent{
		Type: EventPointerCancel, PointerID: pointerID, Button: ps.button,
		ClientX: ps.lastX, ClientY: ps.lastY,
	})
	s.releaseImplicit(pointerID)
}

// cancelAll cancels every held pointer. Called when the window loses focus.
func (s *Scene) cancelAll() {
	for i := range s.pointers {
		s.cancelPointer(i)
	}
}

// forgetSubtree drops pointer targets inside a subtree that is being detached.
func (s *Scene) forgetSubtree(root *Node) {
	for i := range s.pointers {
		if t := s.pointers[i].target; t != nil && isAncestor(root, t) {
			s.pointers[i].target = nil
		}
	}
}

// --- Event dispatch ---

// dispatch delivers evt to scene-level handlers, then to the target node's
// callbacks and its Movable. Lost-capture events raised during delivery are
// held until the outermost dispatch returns.
func (s *Scene) dispatch(node *Node, evt PointerEvent) {
	s.dispatching++

	evt.Node = node
	if node != nil {
		evt.LocalX, evt.LocalY = node.WorldToLocal(evt.ClientX, evt.ClientY)
	}
	if s.debug {
		s.debugEvent(evt)
	}

	for _, h := range s.handlers.byType[evt.Type] {
		h.fn(evt)
	}
	if node != nil {
		if cb := nodeCallback(node, evt.Type); cb != nil {
			cb(evt)
		}
		if node.movable != nil {
			node.movable.HandlePointerEvent(evt)
		}
	}

	s.dispatching--
	if s.dispatching == 0 && !s.flushing {
		s.flushLostCaptures()
	}
}

func nodeCallback(n *Node, t EventType) func(PointerEvent) {
	switch t {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerMove:
		return n.OnPointerMove
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerCancel:
		return n.OnPointerCancel
	case EventLostPointerCapture:
		return n.OnLostPointerCapture
	}
	return nil
}
