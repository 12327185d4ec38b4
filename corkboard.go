package corkboard

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default card fill.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten drawing calls.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, pointer coordinates, and offsets.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// MouseButton identifies the button that triggered a pointer event.
type MouseButton uint8

const (
	MouseButtonPrimary   MouseButton = iota // left mouse button, touch contact, pen tip
	MouseButtonSecondary                    // right mouse button
	MouseButtonAuxiliary                    // middle mouse button (scroll wheel click)
	MouseButtonNone                         // no button (hover moves)
)

// String returns the DOM-style name of the button.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonPrimary:
		return "primary"
	case MouseButtonSecondary:
		return "secondary"
	case MouseButtonAuxiliary:
		return "auxiliary"
	default:
		return "none"
	}
}

// EventType identifies a kind of pointer event delivered by the host.
type EventType uint8

const (
	EventPointerDown        EventType = iota // a button was pressed
	EventPointerMove                         // the pointer moved (held or hovering)
	EventPointerUp                           // a button was released
	EventPointerCancel                       // the host aborted the pointer (focus loss, touch cancel)
	EventLostPointerCapture                  // the node no longer holds capture for a pointer
	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	"pointerdown",
	"pointermove",
	"pointerup",
	"pointercancel",
	"lostpointercapture",
}

// String returns the DOM-style event name.
func (t EventType) String() string {
	if t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "unknown"
}

// PointerEvent is a single discrete event from the host's pointer stream.
// ClientX/ClientY are screen coordinates; LocalX/LocalY are relative to the
// target node and are zero when there is no target.
type PointerEvent struct {
	Type      EventType
	PointerID int
	Button    MouseButton
	ClientX   float64
	ClientY   float64
	LocalX    float64
	LocalY    float64
	Node      *Node
}

// Client returns the event's screen coordinates as a Vec2.
func (e PointerEvent) Client() Vec2 {
	return Vec2{e.ClientX, e.ClientY}
}
