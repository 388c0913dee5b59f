package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/drake/arbor/config"
	"github.com/drake/arbor/debug"
	"github.com/drake/arbor/demo"
	"github.com/drake/arbor/event"
	"github.com/drake/arbor/interfaces"
	"github.com/drake/arbor/runner"
	"github.com/drake/arbor/ui/console"
	"github.com/drake/arbor/ui/style"
	"github.com/drake/arbor/ui/tui"
	"github.com/drake/arbor/widget"
)

// app is one runnable demo.
type app struct {
	name    string
	short   string
	data    func() widget.AppData
	windows func() []widget.Widget
}

var apps = []app{
	{
		name:    "counter",
		short:   "A counter with its own state",
		windows: func() []widget.Widget { return []widget.Widget{demo.CounterWindow()} },
	},
	{
		name:  "sync-counter",
		short: "Two windows sharing one counter",
		data:  func() widget.AppData { return &demo.Count{} },
		windows: func() []widget.Widget {
			return []widget.Widget{demo.SyncCounter("Counter 1"), demo.SyncCounter("Counter 2")}
		},
	},
	{
		name:  "spinner",
		short: "Two windows sharing one spin box value",
		data:  func() widget.AppData { return &demo.Shared{} },
		windows: func() []widget.Widget {
			return []widget.Widget{demo.SyncSpinner("Spinner 1"), demo.SyncSpinner("Spinner 2")}
		},
	},
	{
		name:    "list",
		short:   "A growing list of editable entries",
		windows: func() []widget.Widget { return []widget.Widget{demo.ListView(3)} },
	},
	{
		name:    "hello",
		short:   "A message box",
		windows: func() []widget.Widget { return []widget.Widget{demo.Hello()} },
	},
	{
		name:    "push-me",
		short:   "A button that opens message boxes",
		windows: func() []widget.Widget { return []widget.Widget{demo.PushMe()} },
	},
	{
		name:    "edit",
		short:   "A window with one edit box",
		windows: func() []widget.Widget { return []widget.Widget{demo.EditWindow()} },
	},
}

func findApp(name string) (app, bool) {
	for _, a := range apps {
		if a.name == name {
			return a, true
		}
	}
	return app{}, false
}

func (a app) appData() widget.AppData {
	if a.data == nil {
		return nil
	}
	return a.data()
}

func newAppCommand(a app, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   a.name + " [script.lua...]",
		Short: a.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context(), a, opts, args)
		},
	}
}

func runApp(ctx context.Context, a app, opts *options, scripts []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// The TUI owns the terminal; anything else talks lines on stdio.
	useTUI := !opts.simple && isatty.IsTerminal(os.Stdout.Fd())

	logger, closeLog, err := setupLogger(cfg.Log, useTUI)
	if err != nil {
		return err
	}
	defer closeLog()

	var (
		backend interfaces.Backend
		styles  style.Styles
	)
	if useTUI {
		styles = style.DefaultStyles()
		backend = tui.NewBubbleTeaUI(styles)
	} else {
		styles = style.Plain()
		backend = console.New(os.Stdin, os.Stdout, event.Size{W: 80, H: 24})
	}

	rcfg := runner.DefaultConfig()
	rcfg.ConfigDir = config.Dir()
	rcfg.InitScript = cfg.Scripts.Init
	rcfg.Scripts = scripts
	rcfg.Watch = cfg.Scripts.Watch || opts.watch
	rcfg.AccessKeys = cfg.UI.AccessKeys
	rcfg.TabNavigation = cfg.UI.TabNavigation
	rcfg.QueueLimit = cfg.Queue.Limit
	rcfg.Styles = &styles
	rcfg.Logger = logger

	r := runner.New(backend, a.appData(), rcfg)
	for _, w := range a.windows() {
		r.With(w)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	debug.NewMonitor(ctx, r, cfg.Debug.Monitor, cfg.Debug.Interval, logger).Start()

	logger.Info("starting", "app", a.name, "tui", useTUI, "scripts", len(scripts))
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	return nil
}

// setupLogger logs to the configured file while the TUI owns the screen
// and to stderr otherwise.
func setupLogger(lc config.LogConfig, useTUI bool) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: lc.SlogLevel()}
	if !useTUI {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := tea.LogToFile(lc.File, "arbor")
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
}
