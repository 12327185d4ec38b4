package corkboard

// syntheticPointerEvent represents a single injected pointer frame. It goes
// through the same edge detection as real mouse and touch input.
type syntheticPointerEvent struct {
	pointerID int
	x, y      float64
	pressed   bool
	button    MouseButton
	cancel    bool
}

// InjectPress queues a primary-button press at the given screen coordinates.
// The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.InjectPressButton(x, y, MouseButtonPrimary)
}

// InjectPressButton queues a press of the given button on the mouse pointer.
func (s *Scene) InjectPressButton(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: button,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag. A held pointer
// keeps the button it was pressed with.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: true, button: MouseButtonPrimary,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y, pressed: false, button: MouseButtonPrimary,
	})
}

// InjectCancel queues a pointercancel for the mouse pointer, as if the host
// aborted it (for example on focus loss).
func (s *Scene) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{cancel: true})
}

// InjectTouch queues a frame for touch slot pointerID (1-9). A pressed frame
// after a released one is a new touch.
func (s *Scene) InjectTouch(pointerID int, x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		pointerID: pointerID, x: x, y: y, pressed: pressed, button: MouseButtonPrimary,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
			x: x, y: y, pressed: true, button: MouseButtonPrimary,
		})
	}
	s.InjectRelease(toX, toY)
}

// PendingInput reports how many injected frames are still queued.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real input
// is skipped for the frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.cancel {
		s.cancelPointer(evt.pointerID)
		return true
	}
	s.processPointer(evt.pointerID, evt.x, evt.y, evt.pressed, evt.button)
	return true
}
