package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/widget"
)

// Direction is the axis a List stacks along.
type Direction int

const (
	Down Direction = iota
	Right
)

// List stacks children in a column or a row. After changing the children
// of a configured list, call EventCx.Reconfigure.
type List struct {
	widget.Base
	dir  Direction
	kids []widget.Widget
	gap  int
}

// NewColumn stacks children top to bottom.
func NewColumn(children ...widget.Widget) *List {
	return &List{dir: Down, kids: children}
}

// NewRow places children left to right.
func NewRow(children ...widget.Widget) *List {
	return &List{dir: Right, kids: children}
}

// WithGap sets the spacing between children.
func (l *List) WithGap(n int) *List {
	l.gap = n
	return l
}

func (l *List) Children() []widget.Widget { return l.kids }

// Len returns the number of children.
func (l *List) Len() int { return len(l.kids) }

// Append adds a child at the end.
func (l *List) Append(w widget.Widget) { l.kids = append(l.kids, w) }

// Remove removes and returns the child at i.
func (l *List) Remove(i int) widget.Widget {
	w := l.kids[i]
	l.kids = append(l.kids[:i], l.kids[i+1:]...)
	return w
}

// Clear removes all children.
func (l *List) Clear() { l.kids = nil }

func (l *List) hints() []event.Size {
	out := make([]event.Size, len(l.kids))
	for i, k := range l.kids {
		out[i] = k.SizeHint()
	}
	return out
}

func (l *List) SizeHint() event.Size {
	if l.dir == Right {
		return layout.SumRow(l.hints(), l.gap)
	}
	return layout.SumColumn(l.hints(), l.gap)
}

func (l *List) SetRect(r layout.Rect) {
	l.Base.SetRect(r)
	var rects []layout.Rect
	if l.dir == Right {
		rects = layout.Row(r, l.hints(), l.gap)
	} else {
		rects = layout.Column(r, l.hints(), l.gap)
	}
	for i, cr := range rects {
		l.kids[i].SetRect(cr)
	}
}

func (l *List) View(dc *widget.DrawCx) string {
	var parts []string
	for _, k := range l.kids {
		if k.Core().Rect().Empty() {
			continue
		}
		if len(parts) > 0 && l.gap > 0 {
			if l.dir == Right {
				parts = append(parts, strings.Repeat(" ", l.gap))
			} else {
				parts = append(parts, strings.Repeat("\n", l.gap-1))
			}
		}
		parts = append(parts, k.View(dc))
	}
	if l.dir == Right {
		return fit(lipgloss.JoinHorizontal(lipgloss.Top, parts...), l.Rect())
	}
	return fit(lipgloss.JoinVertical(lipgloss.Left, parts...), l.Rect())
}
