// Package event defines the input events routed through a widget tree.
package event

import "fmt"

// Type identifies the kind of event.
type Type int

const (
	None        Type = iota
	PointerMove      // Pointer moved; Pos is set
	PointerDown      // Button pressed; Pos and Button are set
	PointerUp        // Button released; Pos and Button are set
	Scroll           // Wheel; Pos and Delta are set
	KeyPress         // Key pressed; Key is set
	Resize           // Window resized; Size is set
	Activate         // Synthetic activation (access key, Enter on a focused button)
	Timer            // A widget timer fired; Payload is the timer id
	Deliver          // A message delivered to Target (async results)
	Quit             // Backend is shutting down
)

var typeNames = [...]string{
	None:        "none",
	PointerMove: "pointer-move",
	PointerDown: "pointer-down",
	PointerUp:   "pointer-up",
	Scroll:      "scroll",
	KeyPress:    "key-press",
	Resize:      "resize",
	Activate:    "activate",
	Timer:       "timer",
	Deliver:     "deliver",
	Quit:        "quit",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// IsPointer reports whether the event is routed by position.
func (t Type) IsPointer() bool {
	return t == PointerMove || t == PointerDown || t == PointerUp || t == Scroll
}

// Point is a cell coordinate, origin at the top-left of the window.
type Point struct {
	X, Y int
}

// Size is a width and height in cells.
type Size struct {
	W, H int
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event is the universal packet routed by a dispatcher.
//
// Target is a widget id in its string form; an empty Target lets the
// dispatcher pick one (hit test for pointer events, focus for keys).
type Event struct {
	Type    Type
	Window  string // Window the event belongs to; empty means the active window
	Target  string
	Pos     Point
	Button  Button
	Delta   int // Scroll amount: negative is up
	Key     Key
	Size    Size
	Payload any // Deliver: message; Timer: timer id
}

// KeyEvent constructs a key press event.
func KeyEvent(k Key) Event {
	return Event{Type: KeyPress, Key: k}
}

// Click constructs a pointer-down event at (x, y) with the left button.
func Click(x, y int) Event {
	return Event{Type: PointerDown, Pos: Point{x, y}, Button: ButtonLeft}
}

// Release constructs a pointer-up event at (x, y) with the left button.
func Release(x, y int) Event {
	return Event{Type: PointerUp, Pos: Point{x, y}, Button: ButtonLeft}
}

// DeliverTo constructs an event delivering msg to the widget with the given id.
func DeliverTo(target string, msg any) Event {
	return Event{Type: Deliver, Target: target, Payload: msg}
}

func (e Event) String() string {
	switch {
	case e.Type == KeyPress:
		return fmt.Sprintf("%s %s", e.Type, e.Key)
	case e.Type.IsPointer():
		return fmt.Sprintf("%s (%d,%d)", e.Type, e.Pos.X, e.Pos.Y)
	case e.Target != "":
		return fmt.Sprintf("%s -> %s", e.Type, e.Target)
	default:
		return e.Type.String()
	}
}
