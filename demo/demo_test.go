package demo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/lua"
	"github.com/drake/arbor/ui/style"
	"github.com/drake/arbor/ui/widgets"
	"github.com/drake/arbor/widget"
)

func activate(d *widget.Dispatcher, id string) widget.Result {
	return d.Dispatch(event.Event{Type: event.Activate, Target: id})
}

func press(d *widget.Dispatcher, r rune) widget.Result {
	return d.Dispatch(event.KeyEvent(event.K(r)))
}

func view(t *testing.T, d *widget.Dispatcher) string {
	t.Helper()
	styles := style.Plain()
	return d.View(&styles)
}

func TestCounter(t *testing.T) {
	root := CounterWindow()
	d := widget.NewDispatcher(root)
	d.Resize(event.Size{W: 20, H: 6})

	// Window > Counter > [display, Row[-, +]]
	const minus, plus = "0.0.1.0", "0.0.1.1"
	activate(d, plus)
	activate(d, plus)
	res := activate(d, minus)

	if !res.Actions.Has(widget.ActRedraw) {
		t.Errorf("actions = %b, want redraw", res.Actions)
	}
	if res.Discarded != 0 {
		t.Errorf("%d messages discarded", res.Discarded)
	}
	c := root.(interface{ Inner() widget.Widget }).Inner().(*Counter)
	if c.Count() != 1 {
		t.Errorf("count = %d, want 1", c.Count())
	}
	if got := c.display.Text(); got != "1" {
		t.Errorf("display = %q, want %q", got, "1")
	}
}

func TestSyncCounterSharesCount(t *testing.T) {
	data := &Count{}
	a := widget.NewDispatcher(SyncCounter("A"), widget.WithAppData(data))
	b := widget.NewDispatcher(SyncCounter("B"), widget.WithAppData(data))
	for _, d := range []*widget.Dispatcher{a, b} {
		d.Resize(event.Size{W: 40, H: 10})
		d.Update(data)
	}

	res := press(a, 'a')
	if !res.Actions.Has(widget.ActUpdate) {
		t.Errorf("actions = %b, want update", res.Actions)
	}
	press(a, 'a')
	if data.N != 2 {
		t.Fatalf("count = %d, want 2", data.N)
	}
	if v := view(t, a); !strings.Contains(v, "Count: 2") {
		t.Errorf("window A:\n%s", v)
	}

	// The runner updates the other windows.
	b.Update(data)
	if v := view(t, b); !strings.Contains(v, "Count: 2") {
		t.Errorf("window B:\n%s", v)
	}
}

func TestSyncCounterStep(t *testing.T) {
	data := &Count{}
	d := widget.NewDispatcher(SyncCounter("A"), widget.WithAppData(data))
	d.Update(data)

	// Window > Adapt > Column > [Text, Row[Slider, Text], Row[Sub, Add]]
	slider, err := widget.ParseID("0.0.0.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if !d.SetFocus(slider) {
		t.Fatal("slider not focusable")
	}
	d.Dispatch(event.KeyEvent(event.Key{Code: event.CodeEnd}))
	press(d, 's')

	if data.N != -10 {
		t.Errorf("count = %d, want -10", data.N)
	}
	if res := d.Dispatch(event.KeyEvent(event.Key{Code: event.CodeEsc})); !res.Actions.Has(widget.ActClose) {
		t.Error("Esc did not close the window")
	}
}

func TestCountScriptMessages(t *testing.T) {
	tests := []struct {
		name string
		msgs []any
		want int
		left int
	}{
		{"add", []any{lua.ScriptMessage{Name: "add", Args: []any{3}}}, 8, 0},
		{"set", []any{lua.ScriptMessage{Name: "set", Args: []any{-2}}}, -2, 0},
		{"reset", []any{lua.ScriptMessage{Name: "reset"}}, 0, 0},
		{"increment", []any{Increment(2), Increment(-1)}, 6, 0},
		{"unknown name is left", []any{lua.ScriptMessage{Name: "launch"}}, 5, 1},
		{"bad argument is left", []any{lua.ScriptMessage{Name: "add", Args: []any{"x"}}}, 5, 1},
		{"stops at the first foreign message", []any{Increment(1), "other", Increment(1)}, 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Count{N: 5}
			var s widget.MessageStack
			for _, m := range tt.msgs {
				s.Push(m)
			}
			c.HandleMessages(&s)
			if c.N != tt.want {
				t.Errorf("N = %d, want %d", c.N, tt.want)
			}
			if s.Len() != tt.left {
				t.Errorf("%d messages left, want %d", s.Len(), tt.left)
			}
		})
	}
}

func TestSyncSpinnerSharesValue(t *testing.T) {
	data := &Shared{}
	a := widget.NewDispatcher(SyncSpinner("A"), widget.WithAppData(data))
	b := widget.NewDispatcher(SyncSpinner("B"), widget.WithAppData(data))

	// Window > Row > [Throbber, SpinBox]
	up := event.Event{Type: event.KeyPress, Key: event.Key{Code: event.CodeUp}, Target: "0.0.1"}
	a.Dispatch(up)
	res := a.Dispatch(up)
	if !res.Actions.Has(widget.ActUpdate) {
		t.Errorf("actions = %b, want update", res.Actions)
	}
	if data.Value != 2 {
		t.Fatalf("shared value = %d, want 2", data.Value)
	}

	b.Update(data)
	spin := b.Tree().Lookup(mustID(t, "0.0.1")).(sharedSpin)
	if spin.Value() != 2 {
		t.Errorf("window B value = %d, want 2", spin.Value())
	}
}

func TestListView(t *testing.T) {
	d := widget.NewDispatcher(ListView(2))
	d.Resize(event.Size{W: 60, H: 12})
	d.Update(nil)

	// Window > Adapt > Column > [Text, Column[entries...], Button]
	if v := view(t, d); !strings.Contains(v, "Active: Entry #1") {
		t.Errorf("initial view:\n%s", v)
	}

	press(d, 'n')
	if d.Tree().Lookup(mustID(t, "0.0.0.1.2")) == nil {
		t.Fatal("new entry not configured")
	}

	// Entry > Row > [Label, show, EditBox]
	if res := activate(d, "0.0.0.1.1.0.1"); res.Discarded != 0 {
		t.Errorf("show: %d messages discarded", res.Discarded)
	}
	if v := view(t, d); !strings.Contains(v, "Active: Entry #2") {
		t.Errorf("after show:\n%s", v)
	}

	d.SetFocus(mustID(t, "0.0.0.1.2.0.2"))
	press(d, 'x')
	d.Dispatch(event.KeyEvent(event.Key{Code: event.CodeEnter}))
	if v := view(t, d); !strings.Contains(v, "Active: Entry #3x") {
		t.Errorf("after edit:\n%s", v)
	}
}

func TestHello(t *testing.T) {
	d := widget.NewDispatcher(Hello())
	if got, want := d.Root().(widget.Titled).Title(), "Message"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
	res := press(d, 'o')
	if diff := cmp.Diff(widget.ActClose, res.Actions&widget.ActClose); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
}

// recordingHost is a widget.Host that records opened windows.
type recordingHost struct {
	windows []widget.Widget
}

func (h *recordingHost) Spawn(widget.ID, func(context.Context) any) func() { return func() {} }
func (h *recordingHost) StartTimer(widget.ID, time.Duration, bool) int     { return 0 }
func (h *recordingHost) CancelTimer(int)                                   {}
func (h *recordingHost) AddWindow(root widget.Widget)                      { h.windows = append(h.windows, root) }
func (h *recordingHost) Post(event.Event)                                  {}

func TestPushMeOpensMessageBox(t *testing.T) {
	host := &recordingHost{}
	d := widget.NewDispatcher(PushMe(), widget.WithHost(host))
	d.Resize(event.Size{W: 30, H: 5})

	press(d, 'p')
	press(d, 'p')
	if len(host.windows) != 2 {
		t.Fatalf("opened %d windows, want 2", len(host.windows))
	}
	mb, ok := host.windows[0].(*widgets.Window)
	if !ok {
		t.Fatalf("opened %T, want *widgets.Window", host.windows[0])
	}
	if mb.Title() != "Message" {
		t.Errorf("title = %q, want %q", mb.Title(), "Message")
	}
	md := widget.NewDispatcher(mb)
	md.Resize(event.Size{W: 30, H: 5})
	if v := view(t, md); !strings.Contains(v, "You pushed the button.") {
		t.Errorf("message box:\n%s", v)
	}
}

func TestEditWindow(t *testing.T) {
	d := widget.NewDispatcher(EditWindow())
	d.Resize(event.Size{W: 20, H: 3})

	edit := d.Tree().Lookup(mustID(t, "0.0")).(*widgets.EditBox)
	if !d.SetFocus(mustID(t, "0.0")) {
		t.Fatal("edit box not focusable")
	}
	press(d, '1')
	press(d, '2')
	if got := edit.Text(); got != "012" {
		t.Errorf("text = %q, want %q", got, "012")
	}
}

func mustID(t *testing.T, s string) widget.ID {
	t.Helper()
	id, err := widget.ParseID(s)
	if err != nil {
		t.Fatal(err)
	}
	return id
}
