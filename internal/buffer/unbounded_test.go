package buffer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestUnboundedKeepsOrder(t *testing.T) {
	in, out := Unbounded[int](4, 0, nil)
	for i := range 100 {
		in <- i
	}
	close(in)

	want := 0
	for got := range out {
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
		want++
	}
	if want != 100 {
		t.Errorf("received %d items, want 100", want)
	}
}

func TestUnboundedDropsOldest(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	in, out := Unbounded[int](4, 5, log)
	for i := range 200 {
		in <- i
	}
	close(in)

	last, n := -1, 0
	for got := range out {
		if got <= last {
			t.Fatalf("out of order: %d after %d", got, last)
		}
		last = got
		n++
	}
	if last != 199 {
		t.Errorf("newest item lost: last = %d", last)
	}
	if n >= 200 {
		t.Errorf("nothing dropped with a limit of 5")
	}
	if !strings.Contains(buf.String(), "queue limit reached") {
		t.Errorf("drop not logged:\n%s", buf.String())
	}
}
