// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/drake/arbor/runner"
)

// Enabled returns true if debug mode is active: configured on, or
// ARBOR_DEBUG=1.
func Enabled(configured bool) bool {
	return configured || os.Getenv("ARBOR_DEBUG") == "1"
}

// Source is what the monitor samples. *runner.Runner implements it.
type Source interface {
	Stats() runner.Stats
}

// Monitor periodically logs runner statistics when debug mode is enabled.
type Monitor struct {
	source   Source
	interval time.Duration
	ctx      context.Context
	logger   *slog.Logger
}

// NewMonitor creates a new monitor for the given source.
// If debug mode is not enabled, returns nil.
func NewMonitor(ctx context.Context, s Source, enabled bool, interval time.Duration, logger *slog.Logger) *Monitor {
	if !Enabled(enabled) {
		return nil
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		source:   s,
		interval: interval,
		ctx:      ctx,
		logger:   logger.With("component", "monitor"),
	}
}

// Start begins the monitoring loop in a goroutine.
func (m *Monitor) Start() {
	if m == nil {
		return
	}
	go m.run()
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Debug("monitor started", "interval", m.interval)

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Debug("monitor stopped")
			return
		case <-ticker.C:
			m.logStats()
		}
	}
}

func (m *Monitor) logStats() {
	s := m.source.Stats()

	m.logger.Info("stats",
		"windows", s.Windows,
		"events", s.Events,
		"timers", s.Timers,
		"goroutines", runtime.NumGoroutine(),
		slog.Group("dispatch",
			"cycles", s.Dispatch.Cycles,
			"aborted", s.Dispatch.Aborted,
			"pushed", s.Dispatch.Pushed,
			"consumed", s.Dispatch.Consumed,
			"discarded", s.Dispatch.Discarded,
		),
	)
}
