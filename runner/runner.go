// Package runner owns the windows of an application and drives their
// dispatchers from a single event loop.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/interfaces"
	"github.com/drake/arbor/internal/buffer"
	"github.com/drake/arbor/lua"
	"github.com/drake/arbor/timer"
	"github.com/drake/arbor/ui/style"
	"github.com/drake/arbor/widget"
)

// ErrNoWindows is returned by Run when there is nothing to show.
var ErrNoWindows = errors.New("runner: no windows")

// Config holds runner configuration.
type Config struct {
	ConfigDir     string   // Path to ~/.config/arbor
	InitScript    string   // Defaults to ConfigDir/init.lua
	Scripts       []string // CLI script arguments
	Watch         bool     // Reload scripts when they change on disk
	AccessKeys    bool
	TabNavigation bool
	QueueLimit    int // Events buffered before the oldest is dropped; 0 is unlimited
	Styles        *style.Styles
	Logger        *slog.Logger
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		AccessKeys:    true,
		TabNavigation: true,
		QueueLimit:    50000,
	}
}

// Stats is a snapshot of the runner's counters.
type Stats struct {
	Windows  int
	Events   uint64
	Timers   int
	Dispatch widget.Stats
}

// Runner orchestrates windows, scripts, timers and the backend.
// It implements lua.Host for the script engine.
type Runner struct {
	// Components
	backend interfaces.Backend
	engine  *lua.Engine
	timer   *timer.Service
	data    widget.AppData
	styles  *style.Styles
	log     *slog.Logger

	// Windows, in the order they were opened
	windows map[string]*window
	order   []string
	active  string
	size    event.Size

	// Frame state
	status string
	dirty  bool

	// Set while the script fallback runs inside a dispatch cycle
	cycle *widget.EventCx

	// Channels
	eventsIn    chan<- event.Event
	eventsOut   <-chan event.Event
	timerEvents chan timer.Event
	jobs        chan func()

	// Config (retained for reload)
	config Config

	statsMu sync.Mutex
	stats   Stats

	// Shutdown coordination
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// Ensure Runner implements lua.Host at compile time
var _ lua.Host = (*Runner)(nil)

// New creates a Runner. data is offered the messages no widget takes and
// is passed to every window's update pass; it may be nil. New is passive:
// no goroutines start until Run.
func New(backend interfaces.Backend, data widget.AppData, cfg Config) *Runner {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	styles := cfg.Styles
	if styles == nil {
		s := style.DefaultStyles()
		styles = &s
	}
	eventsIn, eventsOut := buffer.Unbounded[event.Event](64, cfg.QueueLimit, log)
	timerEvents := make(chan timer.Event, 1024)
	ctx, cancel := context.WithCancel(context.Background())

	r := &Runner{
		backend:     backend,
		timer:       timer.NewService(timerEvents, log),
		data:        data,
		styles:      styles,
		log:         log,
		windows:     make(map[string]*window),
		eventsIn:    eventsIn,
		eventsOut:   eventsOut,
		timerEvents: timerEvents,
		jobs:        make(chan func(), 16),
		config:      cfg,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	r.engine = lua.NewEngine(r, log.With("component", "lua"))
	return r
}

// With opens a window showing root and makes it active.
func (r *Runner) With(root widget.Widget) *Runner {
	r.addWindow(root)
	return r
}

// Engine returns the script engine.
func (r *Runner) Engine() *lua.Engine { return r.engine }

// Stats returns a snapshot of the runner's counters. Safe to call from
// any goroutine.
func (r *Runner) Stats() Stats {
	r.statsMu.Lock()
	s := r.stats
	r.statsMu.Unlock()
	s.Timers = r.timer.Len()
	return s
}

// Run boots the scripts, starts the event loop and blocks until the
// backend exits, the last window closes or ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.windows) == 0 {
		return ErrNoWindows
	}
	defer r.engine.Close()

	// Boot the system
	if err := r.boot(); err != nil {
		r.log.Error("boot failed", "err", err)
		r.status = fmt.Sprintf("boot error: %v", err)
	}
	if r.config.Watch {
		stop, err := r.watch()
		if err != nil {
			r.log.Warn("script watch disabled", "err", err)
		} else {
			defer stop()
		}
	}
	r.dirty = true

	go r.bridgeBackend()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		r.processEvents(ctx)
	}()

	// Block on UI
	err := r.backend.Run(ctx)
	// Ensure shutdown of goroutines/resources when the backend exits
	r.shutdown()
	<-loopDone
	return err
}

func (r *Runner) bridgeBackend() {
	for ev := range r.backend.Events() {
		select {
		case r.eventsIn <- ev:
		case <-r.done:
			return
		}
	}
}

// processEvents is the main event loop.
func (r *Runner) processEvents(ctx context.Context) {
	r.flush()
	for {
		select {
		case <-r.done:
			return
		case <-ctx.Done():
			r.shutdown()
			return
		case ev, ok := <-r.eventsOut:
			if !ok {
				return
			}
			r.handleEvent(ev)
		case te := <-r.timerEvents:
			r.handleTimer(te)
		case job := <-r.jobs:
			job()
		}
		r.flush()
	}
}

// handleEvent runs one event on the loop.
func (r *Runner) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.Quit:
		r.shutdown()
		return

	case event.Resize:
		r.size = ev.Size
		for _, id := range append([]string(nil), r.order...) {
			if w, ok := r.windows[id]; ok {
				r.dispatch(w, ev)
			}
		}
		r.dirty = true
		return
	}

	id := ev.Window
	if id == "" {
		id = r.active
	}
	w, ok := r.windows[id]
	if !ok {
		r.log.Debug("event for closed window", "window", id, "event", ev.String())
		return
	}
	ev.Window = id

	res := r.dispatch(w, ev)
	if !res.Used && res.Err == nil && ev.Type == event.KeyPress {
		r.windowKeys(ev.Key)
	}
}

// handleTimer routes a fired timer to its script callback or widget.
func (r *Runner) handleTimer(te timer.Event) {
	if te.Window == scriptWindow {
		r.engine.OnTimer(te.ID, te.Repeating)
		return
	}
	ev := event.Event{Type: event.Timer, Window: te.Window, Target: te.Target, Payload: te.ID}
	w, ok := r.windows[te.Window]
	if !ok {
		r.timer.Cancel(te.ID)
		return
	}
	res := r.dispatch(w, ev)
	if errors.Is(res.Err, widget.ErrStaleID) {
		// The widget is gone; stop waking it.
		r.timer.Cancel(te.ID)
	}
}

// dispatch runs one cycle in w and applies what it asked of the runner.
func (r *Runner) dispatch(w *window, ev event.Event) widget.Result {
	res := w.d.Dispatch(ev)
	r.record(res)

	if res.Err != nil {
		return res
	}
	if res.Actions.Has(widget.ActRedraw) {
		r.dirty = true
	}
	if res.Actions.Has(widget.ActUpdate) && r.data != nil {
		for _, id := range r.order {
			if id != w.id {
				r.windows[id].d.Update(r.data)
			}
		}
	}
	if res.Actions.Has(widget.ActClose) {
		r.closeWindow(w.id)
	}
	if res.Actions.Has(widget.ActQuit) || len(r.windows) == 0 {
		r.shutdown()
	}
	return res
}

func (r *Runner) record(res widget.Result) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()

	r.stats.Events++
	r.stats.Dispatch.Cycles++
	if res.Err != nil {
		r.stats.Dispatch.Aborted++
	}
	r.stats.Dispatch.Pushed += uint64(res.Pushed)
	r.stats.Dispatch.Consumed += uint64(res.Consumed)
	r.stats.Dispatch.Discarded += uint64(res.Discarded)
	r.stats.Windows = len(r.windows)
}

// windowKeys handles keys nothing else used: ctrl+n and ctrl+p cycle the
// active window.
func (r *Runner) windowKeys(k event.Key) {
	if !k.Ctrl || k.Code != event.CodeRune || len(r.order) < 2 {
		return
	}
	step := 0
	switch k.Rune {
	case 'n':
		step = 1
	case 'p':
		step = -1
	default:
		return
	}
	for i, id := range r.order {
		if id == r.active {
			r.active = r.order[(i+step+len(r.order))%len(r.order)]
			r.dirty = true
			return
		}
	}
}

// flush renders the active window if anything changed.
func (r *Runner) flush() {
	if !r.dirty {
		return
	}
	r.dirty = false
	r.backend.Render(r.frame())
}

func (r *Runner) frame() interfaces.Frame {
	f := interfaces.Frame{Window: r.active, Size: r.size, Status: r.status}
	for _, id := range r.order {
		w := r.windows[id]
		f.Windows = append(f.Windows, interfaces.WindowTab{ID: id, Title: w.title(), Active: id == r.active})
	}
	if w, ok := r.windows[r.active]; ok {
		f.Title = w.title()
		f.Content = w.d.View(r.styles)
	}
	return f
}

// post queues ev for a later cycle. Safe to call from any goroutine.
func (r *Runner) post(ev event.Event) {
	select {
	case r.eventsIn <- ev:
	case <-r.done:
	}
}

// shutdown attempts a coordinated shutdown of goroutines, timers and the
// backend.
func (r *Runner) shutdown() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.cancel()
		r.timer.CancelAll()
		r.backend.Quit()
	})
}

// --- lua.Host Implementation ---

// scriptWindow is the timer window of script timers.
const scriptWindow = ""

// Push hands msg to the application data. Inside a dispatch cycle it joins
// that cycle's stack; otherwise it is delivered to the active window's
// root in a later cycle.
func (r *Runner) Push(msg lua.ScriptMessage) {
	if r.cycle != nil {
		r.cycle.Push(msg)
		return
	}
	if r.active == "" {
		r.log.Warn("script message with no window", "name", msg.Name)
		return
	}
	ev := event.DeliverTo(widget.RootID.String(), msg)
	ev.Window = r.active
	r.post(ev)
}

// Print shows text on the status line.
func (r *Runner) Print(text string) {
	r.log.Info("script", "text", text)
	r.status = text
	r.dirty = true
}

// Quit exits the runner.
func (r *Runner) Quit() { r.shutdown() }

// Reload re-runs all scripts in a fresh VM.
// Must be deferred because it destroys the currently executing Lua state.
func (r *Runner) Reload() {
	select {
	case r.jobs <- r.reload:
	default:
		r.log.Warn("reload dropped: job queue full")
	}
}

// MessageBox opens a dialog window.
func (r *Runner) MessageBox(title, text string) {
	r.addWindow(newMessageBox(title, text))
}

// Windows returns the titles of all open windows.
func (r *Runner) Windows() []string {
	titles := make([]string, 0, len(r.order))
	for _, id := range r.order {
		titles = append(titles, r.windows[id].title())
	}
	return titles
}

// TimerAfter schedules a one-shot timer. Returns the timer ID.
func (r *Runner) TimerAfter(d time.Duration) int {
	return r.timer.After(scriptWindow, "", d)
}

// TimerEvery schedules a repeating timer. Returns the timer ID.
func (r *Runner) TimerEvery(d time.Duration) int {
	return r.timer.Every(scriptWindow, "", d)
}

// TimerCancel cancels a timer by ID.
func (r *Runner) TimerCancel(id int) {
	r.timer.Cancel(id)
}

// TimerCancelAll cancels all script timers. Widget timers keep running.
func (r *Runner) TimerCancelAll() {
	r.timer.CancelWindow(scriptWindow)
}
