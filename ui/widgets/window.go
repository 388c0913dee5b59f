package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/widget"
)

// Window is a titled, bordered root for a window's tree.
type Window struct {
	widget.Base
	title     string
	inner     widget.Widget
	escapable bool
}

// NewWindow wraps inner in a window.
func NewWindow(title string, inner widget.Widget) *Window {
	return &Window{title: title, inner: inner}
}

// Escapable makes Esc close the window.
func (w *Window) Escapable() *Window {
	w.escapable = true
	return w
}

func (w *Window) Title() string { return w.title }

// Inner returns the content widget.
func (w *Window) Inner() widget.Widget { return w.inner }

func (w *Window) Children() []widget.Widget { return []widget.Widget{w.inner} }

// The frame adds a border on each side and a title line.
const (
	frameW = 2
	frameH = 3
)

func (w *Window) SizeHint() event.Size {
	s := w.inner.SizeHint()
	s.W = max(s.W, runewidth.StringWidth(w.title)) + frameW
	s.H += frameH
	return s
}

func (w *Window) SetRect(r layout.Rect) {
	w.Base.SetRect(r)
	w.inner.SetRect(layout.Rect{
		X: r.X + 1,
		Y: r.Y + 2,
		W: max(r.W-frameW, 0),
		H: max(r.H-frameH, 0),
	})
}

func (w *Window) HandleEvent(cx *widget.EventCx, ev event.Event) widget.IsUsed {
	if w.escapable && ev.Type == event.KeyPress && ev.Key.Code == event.CodeEsc {
		cx.CloseWindow()
		return widget.Used
	}
	return widget.Unused
}

func (w *Window) View(dc *widget.DrawCx) string {
	styles := stylesOf(dc)
	r := w.Rect()
	innerW := max(r.W-frameW, 0)
	title := styles.WindowTitle.Render(fitWidth(" "+w.title, innerW))
	body := lipgloss.JoinVertical(lipgloss.Left, title, w.inner.View(dc))
	framed := styles.Window.
		Border(lipgloss.RoundedBorder()).
		Width(innerW).
		Render(body)
	return fit(framed, r)
}

// NewMessageBox returns an escapable window showing message with an Ok
// button that closes it.
func NewMessageBox(title, message string) *Window {
	text := &Label{at: accessText{text: message, keyPos: -1}}
	ok := NewButtonFunc("&Ok", func(cx *widget.EventCx) { cx.CloseWindow() })
	return NewWindow(title, NewColumn(text, ok).WithGap(1)).Escapable()
}
