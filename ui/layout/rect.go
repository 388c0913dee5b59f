// Package layout assigns rectangles to widgets from their size hints.
//
// Layout is intentionally simple: children are stacked in a column or a row
// using their preferred sizes. The rectangles produced here are the ones the
// dispatcher hit-tests pointer events against.
package layout

import "github.com/drake/arbor/event"

// Rect is a region in cell coordinates.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p event.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W &&
		p.Y >= r.Y && p.Y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Size returns the dimensions of the rectangle.
func (r Rect) Size() event.Size {
	return event.Size{W: r.W, H: r.H}
}

// SplitTop returns the top h lines and the remainder.
func (r Rect) SplitTop(h int) (top, rest Rect) {
	h = clamp(h, 0, r.H)
	top = Rect{X: r.X, Y: r.Y, W: r.W, H: h}
	rest = Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
	return top, rest
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
