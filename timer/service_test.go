package timer

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for timer event")
		return Event{}
	}
}

func TestAfterFiresOnce(t *testing.T) {
	ch := make(chan Event, 4)
	s := NewService(ch, nil)

	id := s.After("w1", "0.1", time.Millisecond)
	ev := recv(t, ch)
	if ev.ID != id || ev.Window != "w1" || ev.Target != "0.1" || ev.Repeating {
		t.Errorf("event = %+v", ev)
	}
	if s.Len() != 0 {
		t.Errorf("one-shot timer still pending")
	}
}

func TestEveryRepeatsUntilCancel(t *testing.T) {
	ch := make(chan Event, 16)
	s := NewService(ch, nil)

	id := s.Every("w1", "0", time.Millisecond)
	for range 3 {
		if ev := recv(t, ch); ev.ID != id || !ev.Repeating {
			t.Fatalf("event = %+v", ev)
		}
	}
	s.Cancel(id)
	if s.Len() != 0 {
		t.Errorf("canceled timer still pending")
	}
}

func TestCancelWindow(t *testing.T) {
	ch := make(chan Event, 4)
	s := NewService(ch, nil)

	s.After("a", "0", time.Hour)
	s.After("a", "0.1", time.Hour)
	keep := s.After("b", "0", time.Hour)

	s.CancelWindow("a")
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	s.Cancel(keep)
	s.CancelAll()
	if s.Len() != 0 {
		t.Errorf("len = %d after CancelAll", s.Len())
	}
}
