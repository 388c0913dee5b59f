package widgets

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-runewidth"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/widget"
)

// Throbber animates a spinner from a repeating timer started when the
// widget is configured.
type Throbber struct {
	widget.Base
	frames []string
	every  time.Duration
	frame  int
	timer  int
	host   widget.Host
}

// NewThrobber returns a throbber using the given bubbles spinner frames.
func NewThrobber(s spinner.Spinner) *Throbber {
	return &Throbber{frames: s.Frames, every: s.FPS}
}

// Frame returns the index of the frame shown.
func (t *Throbber) Frame() int { return t.frame }

// Stop cancels the animation timer.
func (t *Throbber) Stop() {
	if t.host != nil && t.timer != 0 {
		t.host.CancelTimer(t.timer)
	}
	t.timer = 0
}

func (t *Throbber) Configure(cx *widget.ConfigCx) {
	// IDs may have changed; restart the timer against the new one.
	t.Stop()
	t.host = cx.Host()
	if t.host != nil && len(t.frames) > 1 {
		t.timer = t.host.StartTimer(cx.ID(), t.every, true)
	}
}

func (t *Throbber) HandleEvent(cx *widget.EventCx, ev event.Event) widget.IsUsed {
	if ev.Type != event.Timer {
		return widget.Unused
	}
	if id, ok := ev.Payload.(int); !ok || id != t.timer {
		return widget.Unused
	}
	t.frame = (t.frame + 1) % len(t.frames)
	cx.Redraw()
	return widget.Used
}

func (t *Throbber) SizeHint() event.Size {
	var w int
	for _, f := range t.frames {
		w = max(w, runewidth.StringWidth(f))
	}
	return event.Size{W: w, H: 1}
}

func (t *Throbber) View(dc *widget.DrawCx) string {
	if len(t.frames) == 0 {
		return fit("", t.Rect())
	}
	return fit(stylesOf(dc).Label.Render(t.frames[t.frame]), t.Rect())
}
