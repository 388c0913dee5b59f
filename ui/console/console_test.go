package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/interfaces"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		want    []event.Event
		wantErr bool
	}{
		{line: "", want: nil},
		{line: "# comment", want: nil},
		{line: "quit", want: []event.Event{{Type: event.Quit}}},
		{line: "a", want: []event.Event{event.KeyEvent(event.K('a'))}},
		{line: "ctrl+r", want: []event.Event{event.KeyEvent(event.Key{Code: event.CodeRune, Rune: 'r', Ctrl: true})}},
		{line: "shift+tab", want: []event.Event{event.KeyEvent(event.Key{Code: event.CodeTab, Shift: true})}},
		{line: "type hi", want: []event.Event{event.KeyEvent(event.K('h')), event.KeyEvent(event.K('i'))}},
		{line: "click 2 3", want: []event.Event{event.Click(2, 3), event.Release(2, 3)}},
		{line: "scroll 1 1 -2", want: []event.Event{{Type: event.Scroll, Pos: event.Point{X: 1, Y: 1}, Delta: -2}}},
		{line: "resize 80 24", want: []event.Event{{Type: event.Resize, Size: event.Size{W: 80, H: 24}}}},
		{line: "click 2", wantErr: true},
		{line: "click x y", wantErr: true},
		{line: "frobnicate", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestRunStreamsEvents(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("a\nbogus\nclick 1 2\n"), &out, event.Size{W: 40, H: 10})

	errc := make(chan error, 1)
	go func() { errc <- c.Run(context.Background()) }()

	// The end of input shows up as a Quit after every command; Run keeps
	// going until the runner answers it.
	var got []event.Event
	for ev := range c.events {
		got = append(got, ev)
		if ev.Type == event.Quit {
			break
		}
	}
	select {
	case err := <-errc:
		t.Fatalf("Run returned before Quit: %v", err)
	default:
	}
	c.Quit()
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []event.Event{
		{Type: event.Resize, Size: event.Size{W: 40, H: 10}},
		event.KeyEvent(event.K('a')),
		event.Click(1, 2),
		event.Release(1, 2),
		{Type: event.Quit},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), `!! unknown command "bogus"`) {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunStopsOnContext(t *testing.T) {
	c := New(strings.NewReader(""), &bytes.Buffer{}, event.Size{})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- c.Run(ctx) }()

	for ev := range c.events {
		if ev.Type == event.Quit {
			break
		}
	}
	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}
	select {
	case <-c.Done():
	default:
		t.Error("Done not closed after Run")
	}
}

func TestRenderSkipsRepeats(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, event.Size{})

	f := interfaces.Frame{Title: "Counter", Content: "count 1\n", Status: "ready"}
	c.Render(f)
	c.Render(f)
	f.Content = "count 2"
	c.Render(f)

	want := "== Counter ==\ncount 1\n-- ready\n== Counter ==\ncount 2\n-- ready\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
