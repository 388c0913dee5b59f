// Package timer runs widget timers and hands their expiry to the runner
// loop as events.
package timer

import (
	"log/slog"
	"sync"
	"time"
)

// Event is sent when a timer fires.
type Event struct {
	ID        int
	Window    string
	Target    string // Widget id in string form
	Repeating bool
}

// Service manages timed wake-ups with full lifecycle ownership.
// It owns: ID generation, scheduling, repeating logic, cancellation.
// Uses fixed-interval semantics: repeating timers reschedule immediately on fire.
type Service struct {
	events chan<- Event
	log    *slog.Logger
	timers map[int]*entry
	nextID int
	mu     sync.Mutex
}

type entry struct {
	window   string
	target   string
	interval time.Duration // 0 = one-shot, >0 = repeating
	cancel   func() bool   // time.Timer.Stop
}

// NewService creates a timer service that sends fired timer events.
func NewService(events chan<- Event, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		events: events,
		log:    log,
		timers: make(map[int]*entry),
	}
}

// After schedules a one-shot timer for target. Returns the timer ID.
func (s *Service) After(window, target string, d time.Duration) int {
	return s.schedule(window, target, d, 0)
}

// Every schedules a repeating timer for target. Returns the timer ID.
func (s *Service) Every(window, target string, d time.Duration) int {
	return s.schedule(window, target, d, d)
}

func (s *Service) schedule(window, target string, d, interval time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID

	t := time.AfterFunc(d, func() {
		s.fire(id)
	})

	s.timers[id] = &entry{
		window:   window,
		target:   target,
		interval: interval,
		cancel:   t.Stop,
	}

	return id
}

// fire sends the timer event and reschedules if repeating.
func (s *Service) fire(id int) {
	s.mu.Lock()
	e, ok := s.timers[id]
	if !ok {
		s.mu.Unlock()
		return // Cancelled before firing
	}

	repeating := e.interval > 0
	if repeating {
		t := time.AfterFunc(e.interval, func() {
			s.fire(id)
		})
		e.cancel = t.Stop
	} else {
		delete(s.timers, id)
	}
	ev := Event{ID: id, Window: e.window, Target: e.target, Repeating: repeating}
	s.mu.Unlock()

	select {
	case s.events <- ev:
	default:
		// A repeating timer fires again; a one-shot is lost.
		s.log.Debug("timer event dropped", "id", id, "target", ev.Target)
	}
}

// Cancel stops a timer and removes it.
func (s *Service) Cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.timers[id]; ok {
		e.cancel()
		delete(s.timers, id)
	}
}

// CancelWindow stops every timer belonging to a window.
func (s *Service) CancelWindow(window string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.timers {
		if e.window == window {
			e.cancel()
			delete(s.timers, id)
		}
	}
}

// CancelAll stops all timers and clears the map.
func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.timers {
		e.cancel()
	}
	s.timers = make(map[int]*entry)
}

// Len returns the number of pending timers.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
