package widgets

import (
	"fmt"
	"strconv"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/widget"
)

// spinStep is pushed by a SpinBox's own buttons.
type spinStep int

// SpinBox edits an integer with - and + buttons or the Up and Down keys
// while one of its buttons has focus. Each change pushes msg(value).
type SpinBox struct {
	widget.Base
	row   *List
	text  *Label
	min   int
	max   int
	value int
	msg   func(int) any
}

// NewSpinBox returns a spin box over [lo, hi].
func NewSpinBox(lo, hi, value int, msg func(int) any) *SpinBox {
	if hi < lo {
		lo, hi = hi, lo
	}
	s := &SpinBox{
		text: &Label{},
		min:  lo,
		max:  hi,
		msg:  msg,
	}
	s.row = NewRow(NewButton("-", spinStep(-1)), s.text, NewButton("+", spinStep(1))).WithGap(1)
	s.setText(min(max(value, lo), hi))
	return s
}

// Value returns the current value.
func (s *SpinBox) Value() int { return s.value }

// SetValue sets the value, clamped to the range, without pushing a message.
func (s *SpinBox) SetValue(v int) { s.setText(min(max(v, s.min), s.max)) }

func (s *SpinBox) setText(v int) {
	s.value = v
	w := max(len(strconv.Itoa(s.min)), len(strconv.Itoa(s.max)))
	s.text.at = accessText{text: fmt.Sprintf("%*d", w, v), keyPos: -1}
}

func (s *SpinBox) Children() []widget.Widget { return []widget.Widget{s.row} }

func (s *SpinBox) SizeHint() event.Size { return s.row.SizeHint() }

func (s *SpinBox) SetRect(r layout.Rect) {
	s.Base.SetRect(r)
	s.row.SetRect(r)
}

func (s *SpinBox) View(dc *widget.DrawCx) string { return s.row.View(dc) }

func (s *SpinBox) HandleEvent(cx *widget.EventCx, ev event.Event) widget.IsUsed {
	switch {
	case ev.Type == event.Scroll:
		s.step(cx, -ev.Delta)
	case ev.Type == event.KeyPress && ev.Key.Code == event.CodeUp:
		s.step(cx, 1)
	case ev.Type == event.KeyPress && ev.Key.Code == event.CodeDown:
		s.step(cx, -1)
	default:
		return widget.Unused
	}
	return widget.Used
}

func (s *SpinBox) HandleMessages(cx *widget.EventCx) {
	for {
		n, ok := widget.TryPop[spinStep](cx)
		if !ok {
			return
		}
		s.step(cx, int(n))
	}
}

func (s *SpinBox) step(cx *widget.EventCx, n int) {
	v := min(max(s.value+n, s.min), s.max)
	if v == s.value {
		return
	}
	s.setText(v)
	if s.msg != nil {
		cx.Push(s.msg(v))
	}
	cx.Redraw()
}
