package widget

import (
	"context"
	"log/slog"
	"time"

	"github.com/drake/arbor/event"
)

// Action records what a handler asked for during a cycle.
type Action uint8

const (
	ActRedraw      Action = 1 << iota // View changed
	ActReconfigure                    // Tree structure changed
	ActUpdate                         // Data changed; run an update pass
	ActClose                          // Close this window
	ActQuit                           // Exit the runner
)

// Has reports whether all bits of b are set in a.
func (a Action) Has(b Action) bool { return a&b == b }

// Host provides what lies outside the tree: windows, timers and background
// work. The runner implements it; the dispatcher works without one.
type Host interface {
	// Spawn runs fn on its own goroutine. Its result is delivered back to
	// target as a message in a later cycle. Calling cancel cancels ctx;
	// there is no timeout.
	Spawn(target ID, fn func(ctx context.Context) any) (cancel func())

	// StartTimer fires a Timer event at target after d, repeatedly when
	// repeating is set. It returns the timer ID.
	StartTimer(target ID, d time.Duration, repeating bool) int
	CancelTimer(id int)

	// AddWindow opens a new window with the given root.
	AddWindow(root Widget)

	// Post queues an event for a later cycle in this window.
	Post(ev event.Event)
}

// EventCx is passed to HandleEvent and HandleMessages. It is valid only
// for the duration of the call.
type EventCx struct {
	d       *Dispatcher
	ev      event.Event
	current ID
	actions Action
	focus   *ID
}

// ID returns the widget currently handling.
func (cx *EventCx) ID() ID { return cx.current }

// Event returns the event being dispatched.
func (cx *EventCx) Event() event.Event { return cx.ev }

// Logger returns the dispatcher's logger annotated with the current widget.
func (cx *EventCx) Logger() *slog.Logger {
	return cx.d.log.With("widget", cx.current.String())
}

// Push puts msg on the message stack. It will be offered to the ancestors
// of the current widget.
func (cx *EventCx) Push(msg any) {
	cx.d.stack.push(entry{msg: msg, source: cx.current})
}

// HasMessages reports whether any message is waiting on the stack.
func (cx *EventCx) HasMessages() bool { return !cx.d.stack.IsEmpty() }

func (cx *EventCx) top() (entry, bool) {
	e, ok := cx.d.stack.top()
	if !ok || !e.visibleAt(cx.current) {
		return entry{}, false
	}
	return e, true
}

func (cx *EventCx) pop() {
	e, _ := cx.d.stack.top()
	cx.d.stack.pop()
	cx.d.log.Debug("message consumed",
		"consumer", cx.current.String(),
		"source", e.source.String())
}

// Redraw requests a new frame.
func (cx *EventCx) Redraw() { cx.actions |= ActRedraw }

// Update requests a data update pass over the window after this cycle.
func (cx *EventCx) Update() { cx.actions |= ActUpdate | ActRedraw }

// Reconfigure requests a configuration pass after this cycle. Call it
// after adding or removing children.
func (cx *EventCx) Reconfigure() { cx.actions |= ActReconfigure | ActRedraw }

// CloseWindow closes the window after this cycle.
func (cx *EventCx) CloseWindow() { cx.actions |= ActClose }

// Quit asks the runner to exit after this cycle.
func (cx *EventCx) Quit() { cx.actions |= ActQuit }

// RequestFocus moves keyboard focus to id after this cycle.
func (cx *EventCx) RequestFocus(id ID) {
	cx.focus = &id
	cx.actions |= ActRedraw
}

// HasFocus reports whether id currently has keyboard focus.
func (cx *EventCx) HasFocus(id ID) bool { return id.IsValid() && cx.d.focus == id }

// Spawn runs fn in the background; its result comes back to the current
// widget as a message. Without a host fn is not run and cancel is a no-op.
func (cx *EventCx) Spawn(fn func(ctx context.Context) any) (cancel func()) {
	if cx.d.host == nil {
		cx.Logger().Warn("spawn without host")
		return func() {}
	}
	return cx.d.host.Spawn(cx.current, fn)
}

// StartTimer schedules Timer events for the current widget.
func (cx *EventCx) StartTimer(d time.Duration, repeating bool) int {
	if cx.d.host == nil {
		return 0
	}
	return cx.d.host.StartTimer(cx.current, d, repeating)
}

// CancelTimer stops a timer started with StartTimer.
func (cx *EventCx) CancelTimer(id int) {
	if cx.d.host != nil {
		cx.d.host.CancelTimer(id)
	}
}

// AddWindow opens a new window.
func (cx *EventCx) AddWindow(root Widget) {
	if cx.d.host != nil {
		cx.d.host.AddWindow(root)
	}
}

// Send delivers msg to target in a later cycle.
func (cx *EventCx) Send(target ID, msg any) {
	if cx.d.host != nil {
		cx.d.host.Post(event.DeliverTo(target.String(), msg))
	}
}
