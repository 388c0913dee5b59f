package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	itimer "github.com/drake/arbor/internal/timer"
)

// reloadDelay is how long script files must be quiet before a reload.
const reloadDelay = 200 * time.Millisecond

// boot loads the VM state.
func (r *Runner) boot() error {
	if err := r.engine.Init(); err != nil {
		return err
	}

	// Set config directory
	setupCode := fmt.Sprintf("arbor.config_dir = [[%s]]", r.config.ConfigDir)
	if err := r.engine.DoString("boot_config", setupCode); err != nil {
		return err
	}

	// Load user init.lua
	if initPath := r.initScript(); initPath != "" {
		if _, err := os.Stat(initPath); err == nil {
			if err := r.engine.DoFile(initPath); err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(initPath), err)
			}
		}
	}

	// Load CLI scripts
	for _, path := range r.config.Scripts {
		if err := r.engine.DoFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	r.engine.CallHook("ready")
	return nil
}

func (r *Runner) initScript() string {
	if r.config.InitScript != "" {
		return r.config.InitScript
	}
	if r.config.ConfigDir == "" {
		return ""
	}
	return filepath.Join(r.config.ConfigDir, "init.lua")
}

// reload re-runs every script in a fresh VM. Runs on the loop goroutine.
func (r *Runner) reload() {
	r.engine.CallHook("reloading")
	if err := r.boot(); err != nil {
		r.log.Error("reload failed", "err", err)
		r.Print(fmt.Sprintf("Reload Failed: %v", err))
		return
	}
	r.engine.CallHook("reloaded")
}

// watch reloads the scripts when a .lua file next to any of them changes.
func (r *Runner) watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]bool)
	if p := r.initScript(); p != "" {
		dirs[filepath.Dir(p)] = true
	}
	for _, p := range r.config.Scripts {
		if abs, err := filepath.Abs(p); err == nil {
			dirs[filepath.Dir(abs)] = true
		}
	}
	watched := 0
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			r.log.Debug("not watching", "dir", dir, "err", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		w.Close()
		return nil, fmt.Errorf("no script directories to watch")
	}

	deb := itimer.NewDebouncer(r.jobs, reloadDelay)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Ext(ev.Name) != ".lua" || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				r.log.Debug("script changed", "file", ev.Name, "op", ev.Op.String())
				deb.Trigger("reload", r.reload)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				r.log.Warn("script watch", "err", err)
			case <-r.done:
				return
			}
		}
	}()

	return func() {
		deb.Stop()
		w.Close()
	}, nil
}
