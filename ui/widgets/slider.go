package widgets

import (
	"strings"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/widget"
)

// Slider selects an integer in [min, max] with the arrow keys, the scroll
// wheel or a click on the track. Each change pushes msg(value).
type Slider struct {
	widget.Base
	min, max int
	step     int
	value    int
	width    int
	msg      func(int) any
}

// NewSlider returns a slider over [lo, hi].
func NewSlider(lo, hi, value int, msg func(int) any) *Slider {
	if hi < lo {
		lo, hi = hi, lo
	}
	s := &Slider{min: lo, max: hi, step: 1, width: 20, msg: msg}
	s.value = s.clamp(value)
	return s
}

// WithStep sets the change per key press.
func (s *Slider) WithStep(step int) *Slider {
	s.step = max(step, 1)
	return s
}

// WithWidth sets the preferred track width.
func (s *Slider) WithWidth(w int) *Slider {
	s.width = w
	return s
}

// Value returns the current value.
func (s *Slider) Value() int { return s.value }

// SetValue sets the value without pushing a message.
func (s *Slider) SetValue(v int) { s.value = s.clamp(v) }

func (s *Slider) clamp(v int) int {
	return min(max(v, s.min), s.max)
}

func (s *Slider) Navigable() bool { return true }

func (s *Slider) SizeHint() event.Size { return event.Size{W: s.width, H: 1} }

func (s *Slider) HandleEvent(cx *widget.EventCx, ev event.Event) widget.IsUsed {
	switch ev.Type {
	case event.KeyPress:
		if ev.Key.Ctrl || ev.Key.Alt {
			return widget.Unused
		}
		switch ev.Key.Code {
		case event.CodeLeft, event.CodeDown:
			s.set(cx, s.value-s.step)
		case event.CodeRight, event.CodeUp:
			s.set(cx, s.value+s.step)
		case event.CodePgDown:
			s.set(cx, s.value-10*s.step)
		case event.CodePgUp:
			s.set(cx, s.value+10*s.step)
		case event.CodeHome:
			s.set(cx, s.min)
		case event.CodeEnd:
			s.set(cx, s.max)
		default:
			return widget.Unused
		}
		return widget.Used
	case event.Scroll:
		s.set(cx, s.value-ev.Delta*s.step)
		return widget.Used
	case event.PointerDown, event.PointerUp:
		s.set(cx, s.valueAt(ev.Pos.X))
		return widget.Used
	}
	return widget.Unused
}

func (s *Slider) set(cx *widget.EventCx, v int) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.msg != nil {
		cx.Push(s.msg(v))
	}
	cx.Redraw()
}

// valueAt maps a column on the track to a value, rounding to nearest.
func (s *Slider) valueAt(x int) int {
	r := s.Rect()
	if r.W <= 1 || s.max == s.min {
		return s.min
	}
	off := min(max(x-r.X, 0), r.W-1)
	span := s.max - s.min
	return s.min + (off*span+(r.W-1)/2)/(r.W-1)
}

// handleAt is the inverse of valueAt.
func (s *Slider) handleAt() int {
	w := s.Rect().W
	if w <= 1 || s.max == s.min {
		return 0
	}
	return (s.value - s.min) * (w - 1) / (s.max - s.min)
}

func (s *Slider) View(dc *widget.DrawCx) string {
	styles := stylesOf(dc)
	w := s.Rect().W
	if w <= 0 {
		return ""
	}
	track := styles.Track
	if dc != nil && dc.IsFocused(s.ID()) {
		track = styles.TrackFocused
	}
	h := s.handleAt()
	line := track.Render(strings.Repeat("─", h)) +
		styles.Handle.Render("●") +
		track.Render(strings.Repeat("─", w-h-1))
	return fit(line, s.Rect())
}
