package widget

import (
	"testing"

	"github.com/drake/arbor/event"
)

// watcher records the data it is updated with.
type watcher struct {
	leaf
	seen []any
}

func (p *watcher) Update(data any) { p.seen = append(p.seen, data) }

func TestWithStateCounter(t *testing.T) {
	btn := newLeaf("+", 4, 1)
	pushOnClick(btn, Increment{1})
	display := &watcher{leaf: leaf{name: "count", size: event.Size{W: 4, H: 1}}}

	var outer []any
	counter := WithState(newBox(display, btn), 0)
	OnMessage(counter, func(cx *EventCx, n *int, m Increment) { *n += m.N }).
		OnUpdate(func(_ *int, data any) { outer = append(outer, data) })

	data := &counterData{}
	d := NewDispatcher(counter, WithAppData(data))
	res := d.Dispatch(event.Click(0, 1))

	if *counter.State() != 1 {
		t.Fatalf("state = %d, want 1", *counter.State())
	}
	if !res.Actions.Has(ActUpdate) {
		t.Error("state change did not request an update")
	}
	if data.count != 0 {
		t.Error("app data saw a message the adapter took")
	}
	if len(display.seen) != 1 {
		t.Fatalf("display updated %d times, want 1", len(display.seen))
	}
	if p, ok := display.seen[0].(*int); !ok || *p != 1 {
		t.Errorf("display saw %#v, want *int(1)", display.seen[0])
	}
	if len(outer) != 1 || outer[0] != any(data) {
		t.Errorf("adapter update saw %v, want app data", outer)
	}
}

func TestWithStateDrainsRepeatedMessages(t *testing.T) {
	btn := newLeaf("+", 4, 1)
	pushOnClick(btn, Increment{1}, Increment{2}, "skip")

	counter := WithState[int](newBox(btn), 10)
	OnMessage(counter, func(cx *EventCx, n *int, m Increment) { *n += m.N })

	d := NewDispatcher(counter)
	res := d.Dispatch(event.Click(0, 0))

	// The string is on top, so nothing below it can be taken.
	if *counter.State() != 10 {
		t.Errorf("state = %d, want 10", *counter.State())
	}
	if res.Discarded != 3 {
		t.Errorf("discarded = %d, want 3", res.Discarded)
	}

	pushOnClick(btn, "skip", Increment{1}, Increment{2})
	res = d.Dispatch(event.Click(0, 0))
	if *counter.State() != 13 {
		t.Errorf("state = %d, want 13", *counter.State())
	}
	if res.Consumed != 2 || res.Discarded != 1 {
		t.Errorf("consumed/discarded = %d/%d, want 2/1", res.Consumed, res.Discarded)
	}
}
