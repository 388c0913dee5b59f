package widget

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/ui/style"
)

var (
	// ErrStaleID means an event named a widget that is no longer in the
	// tree, typically because the tree changed after the event was queued.
	ErrStaleID = errors.New("stale widget id")

	// ErrNoTarget means an event that must name a target did not.
	ErrNoTarget = errors.New("event has no target")
)

// AppData is application state that sits above every window. It is
// offered the messages no widget took.
type AppData interface {
	HandleMessages(s *MessageStack)
}

// Fallback handles events no widget used, after focus navigation and
// access keys. Messages it pushes are only seen by AppData.
type Fallback func(cx *EventCx, ev event.Event) IsUsed

// Result describes one dispatch cycle.
type Result struct {
	Target    ID
	Used      bool
	Pushed    int
	Consumed  int
	Discarded int
	Actions   Action
	Err       error
}

// Stats are running totals over all cycles.
type Stats struct {
	Cycles    uint64
	Aborted   uint64
	Pushed    uint64
	Consumed  uint64
	Discarded uint64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithAppData sets the handler offered leftover messages.
func WithAppData(data AppData) Option {
	return func(d *Dispatcher) { d.data = data }
}

// WithHost connects the dispatcher to its runner.
func WithHost(h Host) Option {
	return func(d *Dispatcher) { d.host = h }
}

// WithFallback sets the handler for unused events.
func WithFallback(f Fallback) Option {
	return func(d *Dispatcher) { d.fallback = f }
}

// WithAccessKeys enables or disables access keys (default on).
func WithAccessKeys(on bool) Option {
	return func(d *Dispatcher) { d.accessKeys = on }
}

// WithTabNavigation enables or disables Tab focus cycling (default on).
func WithTabNavigation(on bool) Option {
	return func(d *Dispatcher) { d.tabNav = on }
}

// Dispatcher routes events through one window's widget tree. It is not
// safe for concurrent use: all calls must come from the same goroutine.
type Dispatcher struct {
	root  Widget
	tree  *Tree
	stack MessageStack

	focus ID
	hover ID
	grab  ID
	size  event.Size

	data       AppData
	fallback   Fallback
	host       Host
	log        *slog.Logger
	accessKeys bool
	tabNav     bool

	stats Stats
}

// NewDispatcher configures root and returns a dispatcher for it.
func NewDispatcher(root Widget, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		root:       root,
		log:        slog.New(slog.DiscardHandler),
		accessKeys: true,
		tabNav:     true,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Configure()
	return d
}

// Configure reassigns IDs and re-lays out the tree. Focus, hover and grab
// are dropped if their widgets are gone.
func (d *Dispatcher) Configure() {
	d.tree = Configure(d.root, d.log, d.host)
	for _, id := range []*ID{&d.focus, &d.hover, &d.grab} {
		if id.IsValid() && d.tree.Lookup(*id) == nil {
			*id = ID{}
		}
	}
	d.layout()
}

// Resize sets the window size and lays the tree out again.
func (d *Dispatcher) Resize(size event.Size) {
	d.size = size
	d.layout()
}

func (d *Dispatcher) layout() {
	size := d.size
	if size.W == 0 && size.H == 0 {
		size = d.root.SizeHint()
	}
	d.root.SetRect(layout.Rect{W: size.W, H: size.H})
}

// Root returns the root widget.
func (d *Dispatcher) Root() Widget { return d.root }

// Tree returns the current configuration.
func (d *Dispatcher) Tree() *Tree { return d.tree }

// Focus returns the focused widget, if any.
func (d *Dispatcher) Focus() ID { return d.focus }

// Hover returns the widget under the pointer, if any.
func (d *Dispatcher) Hover() ID { return d.hover }

// SetFocus moves focus to id, or clears it for the zero ID. It returns
// false if id is not in the tree.
func (d *Dispatcher) SetFocus(id ID) bool {
	if !id.IsValid() {
		d.focus = ID{}
		return true
	}
	if d.tree.Lookup(id) == nil {
		return false
	}
	d.focus = id
	return true
}

// Stats returns running totals.
func (d *Dispatcher) Stats() Stats { return d.stats }

// Update runs a data update pass over the tree.
func (d *Dispatcher) Update(data any) {
	Update(d.root, data)
}

// View renders the tree.
func (d *Dispatcher) View(styles *style.Styles) string {
	dc := &DrawCx{Styles: styles, Focus: d.focus, Hover: d.hover, Pressed: d.grab}
	return d.root.View(dc)
}

// Dispatch runs one cycle for ev. It never panics on stale ids: such
// events are dropped and the error is reported in the result.
func (d *Dispatcher) Dispatch(ev event.Event) Result {
	d.stack.reset()
	d.stats.Cycles++
	cx := &EventCx{d: d, ev: ev}

	if ev.Type == event.Resize {
		d.Resize(ev.Size)
		cx.actions |= ActRedraw
	}

	prevHover := d.hover
	target, err := d.resolve(ev)
	if err != nil {
		d.stats.Aborted++
		d.log.Debug("dispatch aborted", "event", ev.String(), "err", err)
		return Result{Err: err}
	}
	if d.hover != prevHover {
		cx.actions |= ActRedraw
	}
	if !target.IsValid() {
		// Nothing under the pointer.
		return Result{Actions: cx.actions}
	}
	if ev.Type == event.PointerDown {
		if n, ok := d.tree.Lookup(target).(Navigable); ok && n.Navigable() && d.focus != target {
			d.focus = target
			cx.actions |= ActRedraw
		}
	}

	used := d.route(cx, target, ev)
	if !used && ev.Type == event.KeyPress {
		used = d.keyDefaults(cx, ev)
	}
	if !used && d.fallback != nil {
		cx.current = ID{}
		used = bool(d.fallback(cx, ev))
	}
	if !d.stack.IsEmpty() && d.data != nil {
		before := d.stack.consumed
		d.data.HandleMessages(&d.stack)
		if d.stack.consumed > before {
			cx.actions |= ActUpdate | ActRedraw
		}
	}

	res := Result{
		Target:   target,
		Used:     used,
		Pushed:   d.stack.pushed,
		Consumed: d.stack.consumed,
	}
	res.Discarded = d.stack.discard(d.log)

	d.stats.Pushed += uint64(res.Pushed)
	d.stats.Consumed += uint64(res.Consumed)
	d.stats.Discarded += uint64(res.Discarded)

	d.apply(cx)
	res.Actions = cx.actions
	return res
}

// resolve picks the widget an event starts at. A zero ID with a nil error
// means the event has nowhere to go and is dropped silently.
func (d *Dispatcher) resolve(ev event.Event) (ID, error) {
	if ev.Target != "" {
		id, err := ParseID(ev.Target)
		if err != nil {
			return ID{}, fmt.Errorf("%s: %w", ev.Type, err)
		}
		if d.tree.Lookup(id) == nil {
			return ID{}, fmt.Errorf("%s to %s: %w", ev.Type, id, ErrStaleID)
		}
		return id, nil
	}

	switch {
	case ev.Type == event.PointerUp && d.grab.IsValid():
		id := d.grab
		d.grab = ID{}
		if d.tree.Lookup(id) == nil {
			return ID{}, fmt.Errorf("%s to grab %s: %w", ev.Type, id, ErrStaleID)
		}
		return id, nil

	case ev.Type.IsPointer():
		var id ID
		if w := hitTest(d.root, ev.Pos); w != nil {
			id = w.Core().ID()
			if !id.IsValid() {
				return ID{}, fmt.Errorf("%s at (%d,%d): unconfigured widget: %w",
					ev.Type, ev.Pos.X, ev.Pos.Y, ErrStaleID)
			}
		}
		switch ev.Type {
		case event.PointerMove:
			d.hover = id
		case event.PointerDown:
			d.grab = id
		}
		return id, nil

	case ev.Type == event.KeyPress:
		if d.focus.IsValid() && d.tree.Lookup(d.focus) != nil {
			return d.focus, nil
		}
		return RootID, nil

	case ev.Type == event.Resize:
		return RootID, nil
	}
	return ID{}, fmt.Errorf("%s: %w", ev.Type, ErrNoTarget)
}

// route hands ev to target and then to each ancestor until one uses it.
// Every widget on the path is offered the messages its descendants pushed,
// innermost first.
func (d *Dispatcher) route(cx *EventCx, target ID, ev event.Event) bool {
	used := false
	if ev.Type == event.Deliver {
		d.stack.push(entry{msg: ev.Payload, source: target, delivered: true})
		used = true
	}
	for id, ok := target, true; ok; id, ok = id.Parent() {
		w := d.tree.Lookup(id)
		if w == nil {
			d.log.Debug("ancestor missing from tree", "id", id.String())
			break
		}
		cx.current = id
		if !used {
			used = bool(w.HandleEvent(cx, ev))
		}
		if d.hasMessagesFor(id) {
			w.HandleMessages(cx)
		}
	}
	return used
}

func (d *Dispatcher) hasMessagesFor(id ID) bool {
	for _, e := range d.stack.entries {
		if e.visibleAt(id) {
			return true
		}
	}
	return false
}

// keyDefaults handles keys no widget used: Tab moves focus and access keys
// activate their owners.
func (d *Dispatcher) keyDefaults(cx *EventCx, ev event.Event) bool {
	k := ev.Key
	if d.tabNav && k.Code == event.CodeTab && !k.Ctrl && !k.Alt {
		if next, ok := d.tree.NextNav(d.focus, k.Shift); ok {
			d.focus = next
			cx.actions |= ActRedraw
			return true
		}
		return false
	}
	if d.accessKeys && k.Code == event.CodeRune && !k.Ctrl {
		owner, ok := d.tree.AccessKey(k.Rune)
		if !ok {
			return false
		}
		act := event.Event{Type: event.Activate, Window: ev.Window, Target: owner.String()}
		cx.ev = act
		d.route(cx, owner, act)
		cx.ev = ev
		cx.actions |= ActRedraw
		return true
	}
	return false
}

func (d *Dispatcher) apply(cx *EventCx) {
	if cx.actions.Has(ActReconfigure) {
		d.Configure()
	}
	if cx.actions.Has(ActUpdate) {
		Update(d.root, d.data)
	}
	if cx.focus != nil && !d.SetFocus(*cx.focus) {
		d.log.Debug("focus request for missing widget", "id", cx.focus.String())
	}
}

// hitTest returns the deepest widget under p. Later siblings are tested
// first, so the last-added of two overlapping widgets wins.
func hitTest(w Widget, p event.Point) Widget {
	if !w.Core().rect.Contains(p) {
		return nil
	}
	children := w.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i] == nil {
			continue
		}
		if hit := hitTest(children[i], p); hit != nil {
			return hit
		}
	}
	return w
}
