// Package timer holds the runner's internal scheduling helpers.
package timer

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers per key into one job, sent to the
// receiver once the key has been quiet for the delay. The receiver runs
// the job on its own goroutine.
type Debouncer struct {
	out   chan<- func()
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
	stop    chan struct{}
	sending sync.WaitGroup
}

// NewDebouncer creates a Debouncer that sends jobs to out.
func NewDebouncer(out chan<- func(), delay time.Duration) *Debouncer {
	return &Debouncer{
		out:     out,
		delay:   delay,
		pending: make(map[string]*time.Timer),
		stop:    make(chan struct{}),
	}
}

// Trigger schedules job for key, replacing any job still waiting for it.
// After Stop it does nothing.
func (d *Debouncer) Trigger(key string, job func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if t, ok := d.pending[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.pending[key] != t {
			d.mu.Unlock()
			return // Superseded or stopped
		}
		delete(d.pending, key)
		d.sending.Add(1)
		d.mu.Unlock()
		defer d.sending.Done()

		// The receiver may be gone; Stop releases the send.
		select {
		case d.out <- job:
		case <-d.stop:
		}
	})
	d.pending[key] = t
}

// Stop cancels all waiting jobs and abandons jobs whose send is blocked.
// It returns once no send is in flight.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.stop)
	}
	for key, t := range d.pending {
		t.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	d.sending.Wait()
}
