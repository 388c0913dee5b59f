// Package interfaces holds the contract between the runner and the
// terminal layer.
package interfaces

import (
	"context"

	"github.com/drake/arbor/event"
)

// WindowTab describes one open window in a frame's window list.
type WindowTab struct {
	ID     string
	Title  string
	Active bool
}

// Frame is one rendered screen: the active window's view plus the state
// around it.
type Frame struct {
	Window  string // ID of the window rendered in Content
	Title   string
	Size    event.Size
	Content string
	Status  string // Last line printed by a script, if any
	Windows []WindowTab
}

// Backend defines the terminal layer.
// Implementations: tui.BubbleTeaUI and console.UI.
type Backend interface {
	// --- Lifecycle ---
	// Run blocks until the backend exits or ctx is canceled.
	Run(ctx context.Context) error
	Quit()
	Done() <-chan struct{}

	// --- Input ---
	// Events streams translated input. Events carry no Window; the runner
	// routes them to the active window.
	Events() <-chan event.Event

	// --- Output ---
	// Render replaces the screen contents. Safe to call from any goroutine.
	Render(f Frame)
}
