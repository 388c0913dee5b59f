package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/widget"
)

// Button pushes a message when activated: by Enter or Space while focused,
// by a click released over it, or by its access key.
type Button struct {
	widget.Base
	label accessText
	msg   any
	press func(cx *widget.EventCx)
}

// NewButton returns a button that pushes msg. The label may mark an access
// key with &.
func NewButton(label string, msg any) *Button {
	return &Button{label: parseAccess(label), msg: msg}
}

// NewButtonFunc returns a button that calls fn instead of pushing a
// message.
func NewButtonFunc(label string, fn func(cx *widget.EventCx)) *Button {
	return &Button{label: parseAccess(label), press: fn}
}

// SetLabel replaces the label and its access key. The caller must request
// a reconfigure for a new access key to take effect.
func (b *Button) SetLabel(label string) { b.label = parseAccess(label) }

// Label returns the label text without access key markers.
func (b *Button) Label() string { return b.label.text }

func (b *Button) Navigable() bool { return true }

func (b *Button) Configure(cx *widget.ConfigCx) {
	if b.label.key != 0 {
		cx.AddAccessKey(b.label.key)
	}
}

func (b *Button) SizeHint() event.Size {
	return event.Size{W: runewidth.StringWidth(b.label.text) + 4, H: 1}
}

func (b *Button) HandleEvent(cx *widget.EventCx, ev event.Event) widget.IsUsed {
	switch ev.Type {
	case event.Activate:
		b.activate(cx)
		return widget.Used
	case event.KeyPress:
		k := ev.Key
		if k.Ctrl || k.Alt {
			return widget.Unused
		}
		if k.Code == event.CodeEnter || k.Code == event.CodeSpace || (k.Code == event.CodeRune && k.Rune == ' ') {
			b.activate(cx)
			return widget.Used
		}
	case event.PointerDown:
		cx.Redraw()
		return widget.Used
	case event.PointerUp:
		cx.Redraw()
		if b.Rect().Contains(ev.Pos) {
			b.activate(cx)
		}
		return widget.Used
	}
	return widget.Unused
}

func (b *Button) activate(cx *widget.EventCx) {
	if b.press != nil {
		b.press(cx)
	}
	if b.msg != nil {
		cx.Push(b.msg)
	}
	cx.Redraw()
}

func (b *Button) View(dc *widget.DrawCx) string {
	styles := stylesOf(dc)
	base := styles.Button
	switch id := b.ID(); {
	case dc != nil && dc.IsPressed(id):
		base = styles.ButtonPressed
	case dc != nil && dc.IsFocused(id):
		base = styles.ButtonFocused
	case dc != nil && dc.IsHovered(id):
		base = styles.ButtonHover
	}
	s := base.Render("[ ") + b.label.render(styles, base) + base.Render(" ]")
	return fit(s, b.Rect())
}
