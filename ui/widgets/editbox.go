package widgets

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/keymap"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/widget"
)

// EditChanged is pushed after each edit.
type EditChanged struct {
	ID   widget.ID
	Text string
}

// EditActivated is pushed when Enter is pressed in an edit box.
type EditActivated struct {
	ID   widget.ID
	Text string
}

// EditBox is a single-line text field backed by a bubbles textinput.
type EditBox struct {
	widget.Base
	input textinput.Model
	width int
}

// NewEditBox returns an edit box holding text.
func NewEditBox(text string) *EditBox {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(text)
	ti.CursorEnd()
	// Always focused so that it takes keys; the view blurs a copy when
	// the widget does not have focus.
	ti.Focus()
	return &EditBox{input: ti, width: 20}
}

// WithWidth sets the preferred width in cells.
func (e *EditBox) WithWidth(w int) *EditBox {
	e.width = w
	return e
}

// WithPlaceholder sets the text shown while empty.
func (e *EditBox) WithPlaceholder(s string) *EditBox {
	e.input.Placeholder = s
	return e
}

// Text returns the current contents.
func (e *EditBox) Text() string { return e.input.Value() }

// SetText replaces the contents and moves the cursor to the end.
func (e *EditBox) SetText(s string) {
	e.input.SetValue(s)
	e.input.CursorEnd()
}

func (e *EditBox) Navigable() bool { return true }

func (e *EditBox) SizeHint() event.Size { return event.Size{W: e.width, H: 1} }

func (e *EditBox) SetRect(r layout.Rect) {
	e.Base.SetRect(r)
	e.input.Width = max(r.W-1, 1)
}

func (e *EditBox) HandleEvent(cx *widget.EventCx, ev event.Event) widget.IsUsed {
	switch ev.Type {
	case event.PointerDown, event.PointerUp:
		return widget.Used
	case event.KeyPress:
	default:
		return widget.Unused
	}

	k := ev.Key
	if k.Code == event.CodeEnter && !k.Ctrl && !k.Alt {
		cx.Push(EditActivated{ID: e.ID(), Text: e.Text()})
		return widget.Used
	}
	if !editingKey(k) {
		return widget.Unused
	}
	msg, ok := keymap.ToTea(k)
	if !ok {
		return widget.Unused
	}
	before := e.input.Value()
	e.input, _ = e.input.Update(msg)
	if after := e.input.Value(); after != before {
		cx.Push(EditChanged{ID: e.ID(), Text: after})
	}
	cx.Redraw()
	return widget.Used
}

// editingKey reports whether the text input has a use for k.
func editingKey(k event.Key) bool {
	if k.Printable() {
		return true
	}
	switch k.Code {
	case event.CodeBackspace, event.CodeDelete, event.CodeLeft, event.CodeRight,
		event.CodeHome, event.CodeEnd, event.CodeSpace:
		return !k.Ctrl
	case event.CodeRune:
		if !k.Ctrl || k.Alt {
			return false
		}
		switch k.Rune {
		case 'a', 'b', 'd', 'e', 'f', 'h', 'k', 'u', 'w':
			return true
		}
	}
	return false
}

func (e *EditBox) View(dc *widget.DrawCx) string {
	styles := stylesOf(dc)
	m := e.input
	st := styles.EditBoxFocused
	if dc == nil || !dc.IsFocused(e.ID()) {
		m.Blur()
		st = styles.EditBox
	}
	return fit(st.Render(m.View()), e.Rect())
}
