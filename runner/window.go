package runner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/widgets"
	"github.com/drake/arbor/widget"
)

// window is one open window: a root widget and the dispatcher routing its
// events.
type window struct {
	id     string
	root   widget.Widget
	d      *widget.Dispatcher
	ctx    context.Context // Canceled when the window closes
	cancel context.CancelFunc
}

func (w *window) title() string {
	if t, ok := w.root.(widget.Titled); ok {
		return t.Title()
	}
	return ""
}

// addWindow opens a window for root and makes it active. Runs on the loop
// goroutine (or before Run).
func (r *Runner) addWindow(root widget.Widget) *window {
	ctx, cancel := context.WithCancel(r.ctx)
	w := &window{
		id:     uuid.NewString(),
		root:   root,
		ctx:    ctx,
		cancel: cancel,
	}
	w.d = widget.NewDispatcher(root,
		widget.WithLogger(r.log.With("window", w.id)),
		widget.WithAppData(r.data),
		widget.WithHost(&windowHost{r: r, w: w}),
		widget.WithFallback(r.scriptFallback),
		widget.WithAccessKeys(r.config.AccessKeys),
		widget.WithTabNavigation(r.config.TabNavigation),
	)
	if r.size != (event.Size{}) {
		w.d.Resize(r.size)
	}
	if r.data != nil {
		w.d.Update(r.data)
	}

	r.windows[w.id] = w
	r.order = append(r.order, w.id)
	r.active = w.id
	r.dirty = true
	r.log.Debug("window opened", "window", w.id, "title", w.title())
	return w
}

// closeWindow drops a window, its timers and its background work.
func (r *Runner) closeWindow(id string) {
	w, ok := r.windows[id]
	if !ok {
		return
	}
	w.cancel()
	r.timer.CancelWindow(id)
	delete(r.windows, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.active == id {
		r.active = ""
		if n := len(r.order); n > 0 {
			r.active = r.order[n-1]
		}
	}
	r.dirty = true
	r.log.Debug("window closed", "window", id, "title", w.title())
}

// scriptFallback offers keys no widget used to the script bindings.
func (r *Runner) scriptFallback(cx *widget.EventCx, ev event.Event) widget.IsUsed {
	if ev.Type != event.KeyPress {
		return widget.Unused
	}
	r.cycle = cx
	defer func() { r.cycle = nil }()
	return widget.IsUsed(r.engine.HandleKey(ev.Key))
}

func newMessageBox(title, text string) widget.Widget {
	return widgets.NewMessageBox(title, text)
}

// windowHost implements widget.Host for one window.
type windowHost struct {
	r *Runner
	w *window
}

var _ widget.Host = (*windowHost)(nil)

// Spawn runs fn on its own goroutine and delivers its result to target.
// Work canceled before it returns, or whose window closed, delivers
// nothing.
func (h *windowHost) Spawn(target widget.ID, fn func(ctx context.Context) any) (cancel func()) {
	ctx, cancel := context.WithCancel(h.w.ctx)
	id := h.w.id
	go func() {
		msg := fn(ctx)
		if ctx.Err() != nil {
			return
		}
		cancel()
		ev := event.DeliverTo(target.String(), msg)
		ev.Window = id
		h.r.post(ev)
	}()
	return cancel
}

func (h *windowHost) StartTimer(target widget.ID, d time.Duration, repeating bool) int {
	if repeating {
		return h.r.timer.Every(h.w.id, target.String(), d)
	}
	return h.r.timer.After(h.w.id, target.String(), d)
}

func (h *windowHost) CancelTimer(id int) { h.r.timer.Cancel(id) }

func (h *windowHost) AddWindow(root widget.Widget) { h.r.addWindow(root) }

func (h *windowHost) Post(ev event.Event) {
	ev.Window = h.w.id
	h.r.post(ev)
}
