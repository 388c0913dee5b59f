package timer

import (
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	out := make(chan func(), 8)
	d := NewDebouncer(out, 20*time.Millisecond)

	var ran []int
	for i := range 5 {
		d.Trigger("init.lua", func() { ran = append(ran, i) })
	}

	select {
	case job := <-out:
		job()
	case <-time.After(2 * time.Second):
		t.Fatal("job never sent")
	}
	select {
	case <-out:
		t.Fatal("superseded job was sent")
	case <-time.After(60 * time.Millisecond):
	}
	if len(ran) != 1 || ran[0] != 4 {
		t.Errorf("ran = %v, want [4]", ran)
	}
}

func TestDebouncerStop(t *testing.T) {
	out := make(chan func(), 1)
	d := NewDebouncer(out, 10*time.Millisecond)
	d.Trigger("a", func() {})
	d.Stop()

	select {
	case <-out:
		t.Fatal("stopped job was sent")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerStopReleasesBlockedSend(t *testing.T) {
	out := make(chan func()) // Nobody receives
	d := NewDebouncer(out, time.Millisecond)
	d.Trigger("a", func() {})

	// Let the timer fire and block on the send.
	time.Sleep(30 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked behind a pending send")
	}

	d.Trigger("a", func() {})
	select {
	case <-out:
		t.Fatal("job sent after Stop")
	case <-time.After(30 * time.Millisecond):
	}
}
