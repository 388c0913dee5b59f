package widget

import (
	"context"
	"sync"
	"time"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
)

// leaf is a childless widget whose behaviour is set per test.
type leaf struct {
	Base
	name    string
	size    event.Size
	nav     bool
	key     rune
	onEvent func(cx *EventCx, ev event.Event) IsUsed
	onMsg   func(cx *EventCx)
}

func newLeaf(name string, w, h int) *leaf {
	return &leaf{name: name, size: event.Size{W: w, H: h}}
}

func (l *leaf) SizeHint() event.Size { return l.size }
func (l *leaf) View(*DrawCx) string { return l.name }
func (l *leaf) Navigable() bool { return l.nav }

func (l *leaf) Configure(cx *ConfigCx) {
	if l.key != 0 {
		cx.AddAccessKey(l.key)
	}
}

func (l *leaf) HandleEvent(cx *EventCx, ev event.Event) IsUsed {
	if l.onEvent == nil {
		return Unused
	}
	return l.onEvent(cx, ev)
}

func (l *leaf) HandleMessages(cx *EventCx) {
	if l.onMsg != nil {
		l.onMsg(cx)
	}
}

// box stacks its children in a column, or gives each the whole area when
// overlap is set.
type box struct {
	Base
	kids    []Widget
	overlap bool
	onEvent func(cx *EventCx, ev event.Event) IsUsed
	onMsg   func(cx *EventCx)
}

func newBox(kids ...Widget) *box { return &box{kids: kids} }

func (b *box) Children() []Widget { return b.kids }

func (b *box) hints() []event.Size {
	hints := make([]event.Size, len(b.kids))
	for i, k := range b.kids {
		hints[i] = k.SizeHint()
	}
	return hints
}

func (b *box) SizeHint() event.Size {
	return layout.SumColumn(b.hints(), 0)
}

func (b *box) SetRect(r layout.Rect) {
	b.Base.SetRect(r)
	if b.overlap {
		for _, k := range b.kids {
			k.SetRect(r)
		}
		return
	}
	for i, cr := range layout.Column(r, b.hints(), 0) {
		b.kids[i].SetRect(cr)
	}
}

func (b *box) View(*DrawCx) string { return "box" }

func (b *box) HandleEvent(cx *EventCx, ev event.Event) IsUsed {
	if b.onEvent == nil {
		return Unused
	}
	return b.onEvent(cx, ev)
}

func (b *box) HandleMessages(cx *EventCx) {
	if b.onMsg != nil {
		b.onMsg(cx)
	}
}

// mockHost records calls and runs spawned work synchronously when asked.
type mockHost struct {
	mu      sync.Mutex
	spawned []struct {
		Target ID
		Fn     func(ctx context.Context) any
	}
	timers  []ID
	windows []Widget
	posted  []event.Event
}

func (m *mockHost) Spawn(target ID, fn func(ctx context.Context) any) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spawned = append(m.spawned, struct {
		Target ID
		Fn     func(ctx context.Context) any
	}{target, fn})
	return func() {}
}

func (m *mockHost) StartTimer(target ID, _ time.Duration, _ bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timers = append(m.timers, target)
	return len(m.timers)
}

func (m *mockHost) CancelTimer(int) {}

func (m *mockHost) AddWindow(root Widget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = append(m.windows, root)
}

func (m *mockHost) Post(ev event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posted = append(m.posted, ev)
}

// runSpawned completes every spawned task and delivers its result.
func (m *mockHost) runSpawned(d *Dispatcher) []Result {
	m.mu.Lock()
	tasks := m.spawned
	m.spawned = nil
	m.mu.Unlock()

	var results []Result
	for _, task := range tasks {
		msg := task.Fn(context.Background())
		results = append(results, d.Dispatch(event.DeliverTo(task.Target.String(), msg)))
	}
	return results
}
