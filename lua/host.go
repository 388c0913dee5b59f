package lua

import "time"

// ScriptMessage is the message scripts push with arbor.push. Application
// data handlers take it with widget.TryPop[lua.ScriptMessage].
type ScriptMessage struct {
	Name string
	Args []any
}

// Arg returns argument i, or nil if absent.
func (m ScriptMessage) Arg(i int) any {
	if i < 0 || i >= len(m.Args) {
		return nil
	}
	return m.Args[i]
}

// Host provides the bridge between Engine and the rest of the system.
// This abstraction decouples Engine from the runner, making it testable
// without windows or a backend.
type Host interface {
	// Push delivers msg to the active window's application data. During a
	// dispatch cycle it joins that cycle's message stack.
	Push(msg ScriptMessage)

	// Print shows text to the user.
	Print(text string)

	// System / Lifecycle
	Quit()
	Reload()

	// Windows
	MessageBox(title, text string)
	Windows() []string

	// Timers - Timer service owns IDs, scheduling, and cancellation
	TimerAfter(d time.Duration) int
	TimerEvery(d time.Duration) int
	TimerCancel(id int)
	TimerCancelAll()
}
