package widget

import (
	"fmt"
	"log/slog"
)

type entry struct {
	msg       any
	source    ID   // Widget that pushed the message; invalid for global pushes
	delivered bool // Delivered to source rather than pushed by it
}

// visibleAt reports whether the widget at id may take e: e must come from a
// strict descendant, or have been delivered to id itself.
func (e entry) visibleAt(id ID) bool {
	if e.delivered && e.source == id {
		return true
	}
	return id.IsAncestorOf(e.source)
}

// MessageStack holds the messages pushed during one dispatch cycle.
// Only the top entry can be taken.
type MessageStack struct {
	entries  []entry
	pushed   int
	consumed int
}

// MessageSource is anything TryPop can take messages from: an *EventCx
// (which only sees messages pushed below the current widget) or the
// *MessageStack itself (which sees everything, for AppData handlers).
type MessageSource interface {
	top() (entry, bool)
	pop()
}

func (s *MessageStack) push(e entry) {
	s.entries = append(s.entries, e)
	s.pushed++
}

// Push adds a message with no source widget. Only AppData handlers see it.
func (s *MessageStack) Push(msg any) {
	s.push(entry{msg: msg})
}

// Len returns the number of messages waiting.
func (s *MessageStack) Len() int { return len(s.entries) }

// IsEmpty reports whether no messages are waiting.
func (s *MessageStack) IsEmpty() bool { return len(s.entries) == 0 }

func (s *MessageStack) top() (entry, bool) {
	if len(s.entries) == 0 {
		return entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func (s *MessageStack) pop() {
	s.entries[len(s.entries)-1] = entry{}
	s.entries = s.entries[:len(s.entries)-1]
	s.consumed++
}

// discard drops all remaining messages, top first, logging each one.
func (s *MessageStack) discard(log *slog.Logger) int {
	n := len(s.entries)
	for i := n - 1; i >= 0; i-- {
		e := s.entries[i]
		log.Warn("unhandled message",
			"type", fmt.Sprintf("%T", e.msg),
			"source", e.source.String(),
			"message", fmt.Sprintf("%+v", e.msg))
	}
	s.reset()
	return n
}

func (s *MessageStack) reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.pushed = 0
	s.consumed = 0
}

// TryPop removes and returns the top message if it has type T and src may
// see it. Otherwise the stack is left unchanged.
func TryPop[T any](src MessageSource) (T, bool) {
	var zero T
	e, ok := src.top()
	if !ok {
		return zero, false
	}
	m, ok := e.msg.(T)
	if !ok {
		return zero, false
	}
	src.pop()
	return m, true
}

// TryPeek returns the top message if it has type T and src may see it,
// without removing it.
func TryPeek[T any](src MessageSource) (T, bool) {
	var zero T
	e, ok := src.top()
	if !ok {
		return zero, false
	}
	m, ok := e.msg.(T)
	return m, ok
}
