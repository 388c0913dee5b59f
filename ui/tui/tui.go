// Package tui is the Bubble Tea terminal backend.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/interfaces"
	"github.com/drake/arbor/ui/style"
)

// Ensure BubbleTeaUI implements interfaces.Backend at compile time
var _ interfaces.Backend = (*BubbleTeaUI)(nil)

// BubbleTeaUI implements interfaces.Backend using Bubble Tea.
// It bridges the runner's channel-based loop with Bubble Tea's
// model/update/view event loop.
type BubbleTeaUI struct {
	events chan event.Event
	styles style.Styles

	// Message queue - buffered channel drained by a single goroutine.
	// This decouples callers from tea.Program.Send() which can block.
	msgQueue chan tea.Msg

	// Shutdown coordination
	done     chan struct{}
	doneOnce sync.Once
}

// NewBubbleTeaUI creates a new Bubble Tea-based UI.
func NewBubbleTeaUI(styles style.Styles) *BubbleTeaUI {
	return &BubbleTeaUI{
		events:   make(chan event.Event, 256),
		styles:   styles,
		msgQueue: make(chan tea.Msg, 4096),
		done:     make(chan struct{}),
	}
}

// send queues a message for delivery to the Bubble Tea program.
// Blocks until the message is queued or the UI is done.
func (b *BubbleTeaUI) send(msg tea.Msg) {
	select {
	case <-b.done:
	case b.msgQueue <- msg:
	}
}

// Events returns the translated input stream.
func (b *BubbleTeaUI) Events() <-chan event.Event {
	return b.events
}

// Render replaces the screen with f.
func (b *BubbleTeaUI) Render(f interfaces.Frame) {
	b.send(frameMsg(f))
}

// Run starts the TUI and blocks until exit.
func (b *BubbleTeaUI) Run(ctx context.Context) error {
	model := NewModel(b.events, b.done, b.styles)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Single goroutine drains message queue to Bubble Tea.
	// This can block on Send() without affecting producers.
	go func() {
		for {
			select {
			case <-b.done:
				return
			case msg := <-b.msgQueue:
				program.Send(msg)
			}
		}
	}()

	// Run blocks until quit
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}

	// Signal shutdown
	b.doneOnce.Do(func() {
		close(b.done)
	})
	return err
}

// Done returns a channel that closes when the UI exits.
func (b *BubbleTeaUI) Done() <-chan struct{} {
	return b.done
}

// Quit signals the TUI to exit.
func (b *BubbleTeaUI) Quit() {
	b.send(quitMsg{})
}
