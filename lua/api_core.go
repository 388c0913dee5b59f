package lua

import (
	"context"
	"log/slog"
	"math"

	glua "github.com/yuin/gopher-lua"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// registerCoreFuncs registers arbor.* lifecycle and messaging functions.
func (e *Engine) registerCoreFuncs() {
	// arbor.push(name, ...): Push a ScriptMessage for the application
	e.L.SetField(e.table, "push", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		var args []any
		for i := 2; i <= L.GetTop(); i++ {
			args = append(args, fromLua(L.Get(i)))
		}
		e.host.Push(ScriptMessage{Name: name, Args: args})
		return 0
	}))

	// arbor.print(text): Show text to the user
	e.L.SetField(e.table, "print", e.L.NewFunction(func(L *glua.LState) int {
		e.host.Print(L.CheckString(1))
		return 0
	}))

	// arbor.log(level, text): Write to the application log
	e.L.SetField(e.table, "log", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		level, ok := logLevels[name]
		if !ok {
			L.ArgError(1, "unknown log level "+name)
			return 0
		}
		e.log.Log(context.Background(), level, L.CheckString(2), "source", "lua")
		return 0
	}))

	// arbor.quit(): Exit the application
	e.L.SetField(e.table, "quit", e.L.NewFunction(func(L *glua.LState) int {
		e.host.Quit()
		return 0
	}))

	// arbor.reload(): Re-run all scripts in a fresh VM
	e.L.SetField(e.table, "reload", e.L.NewFunction(func(L *glua.LState) int {
		e.host.Reload()
		return 0
	}))

	// arbor.load(path): Run a script file now; returns an error string on failure
	e.L.SetField(e.table, "load", e.L.NewFunction(func(L *glua.LState) int {
		path := L.CheckString(1)
		if err := e.DoFile(path); err != nil {
			L.Push(glua.LString(err.Error()))
			return 1
		}
		e.CallHook("loaded", path)
		return 0
	}))
}

// fromLua converts a Lua value to the Go value carried in a ScriptMessage.
// Integral numbers become int; tables become string-keyed maps or slices.
func fromLua(v glua.LValue) any {
	switch v := v.(type) {
	case glua.LString:
		return string(v)
	case glua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(f)
		}
		return f
	case glua.LBool:
		return bool(v)
	case *glua.LTable:
		if n := v.MaxN(); n > 0 {
			out := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				out = append(out, fromLua(v.RawGetInt(i)))
			}
			return out
		}
		out := make(map[string]any)
		v.ForEach(func(k, val glua.LValue) {
			out[k.String()] = fromLua(val)
		})
		return out
	}
	return nil
}
