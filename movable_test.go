package corkboard

import (
	"errors"
	"testing"
)

// fakeCapturer records capture calls and can be told to fail.
type fakeCapturer struct {
	setCalls     []int
	releaseCalls []int
	setErr       error
	releaseErr   error
}

func (f *fakeCapturer) SetPointerCapture(id int) error {
	f.setCalls = append(f.setCalls, id)
	return f.setErr
}

func (f *fakeCapturer) ReleasePointerCapture(id int) error {
	f.releaseCalls = append(f.releaseCalls, id)
	return f.releaseErr
}

func down(id int, x, y float64) PointerEvent {
	return PointerEvent{Type: EventPointerDown, PointerID: id, Button: MouseButtonPrimary, ClientX: x, ClientY: y}
}

func move(id int, x, y float64) PointerEvent {
	return PointerEvent{Type: EventPointerMove, PointerID: id, Button: MouseButtonNone, ClientX: x, ClientY: y}
}

func up(id int) PointerEvent {
	return PointerEvent{Type: EventPointerUp, PointerID: id, Button: MouseButtonPrimary}
}

func cancel(id int) PointerEvent {
	return PointerEvent{Type: EventPointerCancel, PointerID: id, Button: MouseButtonPrimary}
}

func assertPosition(t *testing.T, m *Movable, want Vec2) {
	t.Helper()
	if got := m.Position(); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func assertIdle(t *testing.T, m *Movable) {
	t.Helper()
	if id, ok := m.Dragging(); ok {
		t.Errorf("Dragging() = (%d, true), want idle", id)
	}
}

func assertDragging(t *testing.T, m *Movable, want int) {
	t.Helper()
	id, ok := m.Dragging()
	if !ok {
		t.Fatalf("Dragging() = idle, want pointer %d", want)
	}
	if id != want {
		t.Errorf("Dragging() owner = %d, want %d", id, want)
	}
}

func TestNewMovableIdleAtInitialPosition(t *testing.T) {
	m := NewMovable(Vec2{10, 20})
	assertIdle(t, m)
	assertPosition(t, m, Vec2{10, 20})
	if m.Mounted() {
		t.Error("new Movable should not be mounted")
	}
}

func TestDefaultPosition(t *testing.T) {
	if DefaultPosition != (Vec2{100, 100}) {
		t.Errorf("DefaultPosition = %v, want (100, 100)", DefaultPosition)
	}
}

func TestIdempotentCancellation(t *testing.T) {
	tests := []struct {
		name string
		fn   func(m *Movable)
	}{
		{"pointerup", func(m *Movable) { m.PointerUp(up(1)) }},
		{"pointercancel", func(m *Movable) { m.PointerCancel(cancel(1)) }},
		{"lostpointercapture", func(m *Movable) { m.LostPointerCapture() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCapturer{}
			m := NewMovable(Vec2{7, 8})
			m.OnMounted(fc)

			tt.fn(m)
			tt.fn(m)

			assertIdle(t, m)
			assertPosition(t, m, Vec2{7, 8})
			if len(fc.releaseCalls) != 0 {
				t.Errorf("release calls = %v, want none on an idle machine", fc.releaseCalls)
			}
		})
	}
}

func TestSingleOwnership(t *testing.T) {
	m := NewMovable(Vec2{10, 10})
	m.OnMounted(&fakeCapturer{})

	m.PointerDown(down(1, 0, 0))
	m.PointerMove(move(1, 5, 5))
	assertPosition(t, m, Vec2{15, 15})

	m.PointerMove(move(2, 100, 100))
	assertPosition(t, m, Vec2{15, 15})
	assertDragging(t, m, 1)
}

func TestSecondPointerDownIgnored(t *testing.T) {
	fc := &fakeCapturer{}
	m := NewMovable(Vec2{10, 10})
	m.OnMounted(fc)

	m.PointerDown(down(1, 0, 0))
	m.PointerDown(down(2, 50, 50))
	assertDragging(t, m, 1)
	if len(fc.setCalls) != 1 || fc.setCalls[0] != 1 {
		t.Errorf("set capture calls = %v, want [1]", fc.setCalls)
	}

	// The owner's origins are untouched by the rejected press.
	m.PointerMove(move(1, 2, 3))
	assertPosition(t, m, Vec2{12, 13})
}

func TestOwnerRepressRestartsSession(t *testing.T) {
	m := NewMovable(Vec2{0, 0})
	m.PointerDown(down(1, 0, 0))
	m.PointerMove(move(1, 10, 10))

	// The release for the first press never arrived.
	m.PointerDown(down(1, 100, 100))
	assertDragging(t, m, 1)
	m.PointerMove(move(1, 105, 100))
	assertPosition(t, m, Vec2{15, 10})
}

func TestUpAndCancelIgnoreOtherPointers(t *testing.T) {
	for _, evt := range []PointerEvent{up(2), cancel(2)} {
		t.Run(evt.Type.String(), func(t *testing.T) {
			fc := &fakeCapturer{}
			m := NewMovable(Vec2{})
			m.OnMounted(fc)
			m.PointerDown(down(1, 0, 0))

			m.HandlePointerEvent(evt)

			assertDragging(t, m, 1)
			if len(fc.releaseCalls) != 0 {
				t.Errorf("release calls = %v, want none", fc.releaseCalls)
			}
		})
	}
}

func TestDisplacementLaw(t *testing.T) {
	m := NewMovable(Vec2{10, 10})
	m.PointerDown(down(1, 0, 0))

	m.PointerMove(move(1, 5, 3))
	assertPosition(t, m, Vec2{15, 13})

	m.PointerMove(move(1, -2, 0))
	assertPosition(t, m, Vec2{8, 10})
}

func TestDisplacementIsRelativeToClickOrigin(t *testing.T) {
	m := NewMovable(Vec2{100, 100})
	m.PointerDown(down(0, 130, 140))
	m.PointerMove(move(0, 230, 90))
	assertPosition(t, m, Vec2{200, 50})
}

func TestNoClamping(t *testing.T) {
	m := NewMovable(Vec2{0, 0})
	m.PointerDown(down(0, 0, 0))
	m.PointerMove(move(0, -5000, 1e6))
	assertPosition(t, m, Vec2{-5000, 1e6})
}

func TestSessionClosesExactlyOnce(t *testing.T) {
	fc := &fakeCapturer{}
	m := NewMovable(Vec2{10, 10})
	m.OnMounted(fc)

	m.PointerDown(down(1, 0, 0))
	m.PointerMove(move(1, 4, 4))

	m.PointerUp(up(1))
	assertIdle(t, m)
	if len(fc.releaseCalls) != 1 || fc.releaseCalls[0] != 1 {
		t.Fatalf("release calls = %v, want [1]", fc.releaseCalls)
	}

	m.PointerUp(up(1))
	assertIdle(t, m)
	assertPosition(t, m, Vec2{14, 14})
	if len(fc.releaseCalls) != 1 {
		t.Errorf("second pointerup released again: %v", fc.releaseCalls)
	}
}

func TestMovesAfterDragEndIgnored(t *testing.T) {
	m := NewMovable(Vec2{10, 10})
	m.PointerDown(down(1, 0, 0))
	m.PointerMove(move(1, 1, 1))
	m.PointerUp(up(1))

	m.PointerMove(move(1, 50, 50))
	assertPosition(t, m, Vec2{11, 11})
}

func TestNonPrimaryButtonRejected(t *testing.T) {
	for _, b := range []MouseButton{MouseButtonSecondary, MouseButtonAuxiliary, MouseButtonNone} {
		t.Run(b.String(), func(t *testing.T) {
			fc := &fakeCapturer{}
			m := NewMovable(Vec2{1, 2})
			m.OnMounted(fc)

			evt := down(1, 0, 0)
			evt.Button = b
			m.PointerDown(evt)

			assertIdle(t, m)
			if len(fc.setCalls) != 0 {
				t.Errorf("set capture calls = %v, want none", fc.setCalls)
			}
			m.PointerMove(move(1, 9, 9))
			assertPosition(t, m, Vec2{1, 2})
		})
	}
}

// LostPointerCapture carries no owner check, unlike pointerup and
// pointercancel: any capture-loss notification ends the active drag. This
// test pins that asymmetry so a change to it is deliberate.
func TestCaptureLossIsUnconditional(t *testing.T) {
	fc := &fakeCapturer{}
	m := NewMovable(Vec2{10, 10})
	m.OnMounted(fc)
	m.PointerDown(down(1, 0, 0))
	m.PointerMove(move(1, 3, 4))

	m.HandlePointerEvent(PointerEvent{Type: EventLostPointerCapture, PointerID: 7})

	assertIdle(t, m)
	assertPosition(t, m, Vec2{13, 14})
	if len(fc.releaseCalls) != 0 {
		t.Errorf("capture loss should not release again, got %v", fc.releaseCalls)
	}
}

func TestCancelKeepsLastPosition(t *testing.T) {
	m := NewMovable(Vec2{10, 10})
	m.PointerDown(down(1, 0, 0))
	m.PointerMove(move(1, 6, -6))
	m.PointerCancel(cancel(1))
	assertIdle(t, m)
	assertPosition(t, m, Vec2{16, 4})
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		start  Vec2
		click  Vec2
		dx, dy float64
	}{
		{"integers", Vec2{10, 10}, Vec2{0, 0}, 30, -20},
		{"fractions", Vec2{100.25, 99.5}, Vec2{12.125, 7.75}, 0.375, 41.5},
		{"negative", Vec2{-40, -40}, Vec2{500, 500}, -250, 125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMovable(tt.start)
			m.PointerDown(down(0, tt.click.X, tt.click.Y))
			m.PointerMove(move(0, tt.click.X+tt.dx, tt.click.Y+tt.dy))
			m.PointerMove(move(0, tt.click.X, tt.click.Y))
			assertPosition(t, m, tt.start)
		})
	}
}

func TestSecondSessionStartsFromLastPosition(t *testing.T) {
	m := NewMovable(Vec2{0, 0})
	m.PointerDown(down(0, 0, 0))
	m.PointerMove(move(0, 10, 10))
	m.PointerUp(up(0))

	m.PointerDown(down(3, 500, 500))
	m.PointerMove(move(3, 501, 502))
	assertPosition(t, m, Vec2{11, 12})
}

func TestCaptureFailuresDoNotAffectDrag(t *testing.T) {
	fc := &fakeCapturer{
		setErr:     errors.New("host refused capture"),
		releaseErr: errors.New("host refused release"),
	}
	m := NewMovable(Vec2{10, 10})
	m.OnMounted(fc)

	m.PointerDown(down(1, 0, 0))
	assertDragging(t, m, 1)
	m.PointerMove(move(1, 5, 3))
	assertPosition(t, m, Vec2{15, 13})
	m.PointerUp(up(1))
	assertIdle(t, m)
}

func TestUnmountedDragStillWorks(t *testing.T) {
	m := NewMovable(Vec2{10, 10})
	m.PointerDown(down(1, 0, 0))
	m.PointerMove(move(1, 5, 3))
	m.PointerCancel(cancel(1))
	assertIdle(t, m)
	assertPosition(t, m, Vec2{15, 13})
}

func TestRemountUsesNewHandle(t *testing.T) {
	first := &fakeCapturer{}
	second := &fakeCapturer{}
	m := NewMovable(Vec2{})

	m.OnMounted(first)
	m.OnMounted(nil)
	if m.Mounted() {
		t.Fatal("Mounted() should be false after OnMounted(nil)")
	}
	m.OnMounted(second)

	m.PointerDown(down(2, 0, 0))
	m.PointerUp(up(2))

	if len(first.setCalls) != 0 {
		t.Errorf("old handle received capture calls: %v", first.setCalls)
	}
	if len(second.setCalls) != 1 || len(second.releaseCalls) != 1 {
		t.Errorf("new handle calls = set %v release %v, want one each",
			second.setCalls, second.releaseCalls)
	}
}

func TestMountDoesNotAffectDragState(t *testing.T) {
	m := NewMovable(Vec2{})
	m.PointerDown(down(1, 0, 0))
	m.OnMounted(&fakeCapturer{})
	assertDragging(t, m, 1)
	m.OnMounted(nil)
	assertDragging(t, m, 1)
}

func TestPlacement(t *testing.T) {
	m := NewMovable(Vec2{100, 100})
	if got := m.Placement(Vec2{20, 30}); got != (Vec2{120, 130}) {
		t.Errorf("Placement = %v, want (120, 130)", got)
	}
}

func TestHandlePointerEventRoutes(t *testing.T) {
	m := NewMovable(Vec2{0, 0})
	m.HandlePointerEvent(down(4, 1, 1))
	assertDragging(t, m, 4)
	m.HandlePointerEvent(move(4, 3, 5))
	assertPosition(t, m, Vec2{2, 4})
	m.HandlePointerEvent(up(4))
	assertIdle(t, m)
}
