// Package demo holds the example applications run by the arbor command.
package demo

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/ui/widgets"
	"github.com/drake/arbor/widget"
)

// Increment changes a count by its value.
type Increment int

// Counter keeps its own count and takes the Increment messages pushed by
// its two buttons.
type Counter struct {
	widget.Base
	display *widgets.Label
	buttons *widgets.List
	count   int
}

// NewCounter returns a counter starting at count.
func NewCounter(count int) *Counter {
	c := &Counter{
		display: widgets.NewLabel(strconv.Itoa(count)),
		buttons: widgets.NewRow(
			widgets.NewButton("-", Increment(-1)),
			widgets.NewButton("+", Increment(1)),
		).WithGap(1),
		count: count,
	}
	return c
}

// Count returns the current count.
func (c *Counter) Count() int { return c.count }

func (c *Counter) Children() []widget.Widget {
	return []widget.Widget{c.display, c.buttons}
}

func (c *Counter) SizeHint() event.Size {
	return layout.SumColumn([]event.Size{c.display.SizeHint(), c.buttons.SizeHint()}, 0)
}

func (c *Counter) SetRect(r layout.Rect) {
	c.Base.SetRect(r)
	rects := layout.Column(r, []event.Size{c.display.SizeHint(), c.buttons.SizeHint()}, 0)
	c.display.SetRect(layout.Center(rects[0], c.display.SizeHint()))
	c.buttons.SetRect(rects[1])
}

func (c *Counter) HandleMessages(cx *widget.EventCx) {
	for {
		n, ok := widget.TryPop[Increment](cx)
		if !ok {
			return
		}
		c.count += int(n)
		c.display.SetText(strconv.Itoa(c.count))
		cx.Redraw()
	}
}

func (c *Counter) View(dc *widget.DrawCx) string {
	r := c.Rect()
	display := lipgloss.PlaceHorizontal(r.W, lipgloss.Center, c.display.View(dc))
	return strings.Join([]string{display, c.buttons.View(dc)}, "\n")
}

// CounterWindow is the single-window counter.
func CounterWindow() widget.Widget {
	return widgets.NewWindow("Counter", NewCounter(0))
}

// Hello is a message box.
func Hello() widget.Widget {
	return widgets.NewMessageBox("Message", "Hello world")
}
