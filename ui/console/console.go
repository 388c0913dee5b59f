// Package console is a line-based backend for pipes and dumb terminals.
// Each input line is a command; each changed frame is printed in full.
//
// Commands:
//
//	<key>          press a key by its binding name: a, enter, tab, ctrl+r
//	type <text>    press one key per character of text
//	click <x> <y>  press and release the left button at x, y
//	scroll <x> <y> <delta>
//	resize <w> <h>
//	quit
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/interfaces"
)

// Ensure UI implements interfaces.Backend at compile time
var _ interfaces.Backend = (*UI)(nil)

// UI implements a simple line-in, frame-out backend.
type UI struct {
	in     io.Reader
	size   event.Size
	events chan event.Event

	mu        sync.Mutex
	out       io.Writer
	lastFrame string // Skip reprinting identical frames

	done     chan struct{}
	doneOnce sync.Once
}

// New returns a console UI reading commands from in and writing frames to
// out. size is reported to the runner as the initial window size.
func New(in io.Reader, out io.Writer, size event.Size) *UI {
	return &UI{
		in:     in,
		out:    out,
		size:   size,
		events: make(chan event.Event, 2048),
		done:   make(chan struct{}),
	}
}

// Render prints the frame unless it is identical to the last one.
func (c *UI) Render(f interfaces.Frame) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", f.Title)
	sb.WriteString(strings.TrimRight(f.Content, "\n"))
	sb.WriteString("\n")
	if f.Status != "" {
		fmt.Fprintf(&sb, "-- %s\n", f.Status)
	}
	text := sb.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	if text == c.lastFrame {
		return
	}
	c.lastFrame = text
	io.WriteString(c.out, text)
}

// Events returns the channel of parsed input.
func (c *UI) Events() <-chan event.Event {
	return c.events
}

// Run reads commands until ctx is canceled or Quit is called. At the end
// of input it emits a Quit event and waits for the runner to stop it.
func (c *UI) Run(ctx context.Context) error {
	defer c.Quit()

	scanner := bufio.NewScanner(c.in)
	scanDone := make(chan error, 1)

	c.emit(event.Event{Type: event.Resize, Size: c.size})

	go func() {
		for scanner.Scan() {
			evs, err := Parse(scanner.Text())
			if err != nil {
				c.mu.Lock()
				fmt.Fprintf(c.out, "!! %v\n", err)
				c.mu.Unlock()
				continue
			}
			for _, ev := range evs {
				if !c.emit(ev) {
					scanDone <- nil
					return
				}
			}
		}
		scanDone <- scanner.Err()
	}()

	select {
	case <-ctx.Done():
		return nil
	case <-c.done:
		return nil
	case err := <-scanDone:
		if err != nil {
			return err
		}
	}

	// End of input. Quit queues behind the commands already read, so the
	// runner handles them all before it shuts the UI down.
	if !c.emit(event.Event{Type: event.Quit}) {
		return nil
	}
	select {
	case <-ctx.Done():
	case <-c.done:
	}
	return nil
}

func (c *UI) emit(ev event.Event) bool {
	select {
	case <-c.done:
		return false
	case c.events <- ev:
		return true
	}
}

// Done returns a channel that closes when the UI is done
func (c *UI) Done() <-chan struct{} {
	return c.done
}

// Quit requests the console UI to exit.
func (c *UI) Quit() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// Parse converts one command line into events. Blank lines and lines
// starting with # yield nothing.
func Parse(line string) ([]event.Event, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}
	cmd, rest, _ := strings.Cut(line, " ")

	switch cmd {
	case "quit":
		return []event.Event{{Type: event.Quit}}, nil

	case "type":
		var evs []event.Event
		for _, r := range rest {
			evs = append(evs, event.KeyEvent(event.K(r)))
		}
		return evs, nil

	case "click":
		n, err := ints(cmd, rest, 2)
		if err != nil {
			return nil, err
		}
		return []event.Event{event.Click(n[0], n[1]), event.Release(n[0], n[1])}, nil

	case "scroll":
		n, err := ints(cmd, rest, 3)
		if err != nil {
			return nil, err
		}
		return []event.Event{{Type: event.Scroll, Pos: event.Point{X: n[0], Y: n[1]}, Delta: n[2]}}, nil

	case "resize":
		n, err := ints(cmd, rest, 2)
		if err != nil {
			return nil, err
		}
		return []event.Event{{Type: event.Resize, Size: event.Size{W: n[0], H: n[1]}}}, nil
	}

	if rest == "" {
		if k, ok := event.ParseKey(cmd); ok {
			return []event.Event{event.KeyEvent(k)}, nil
		}
	}
	return nil, fmt.Errorf("unknown command %q", line)
}

func ints(cmd, args string, n int) ([]int, error) {
	fields := strings.Fields(args)
	if len(fields) != n {
		return nil, fmt.Errorf("%s: want %d numbers, got %d", cmd, n, len(fields))
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd, err)
		}
		out[i] = v
	}
	return out, nil
}
