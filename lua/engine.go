// Package lua runs user scripts: key bindings, hooks, timers and messages
// pushed into the widget tree.
package lua

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// CoreScripts are loaded, in name order, before any user script.
//
//go:embed core/*.lua
var CoreScripts embed.FS

const chunkCacheSize = 64

// Engine wraps gopher-lua and manages the VM lifecycle.
// It is a pure mechanism: it knows how to run Lua code and expose APIs.
// It does NOT know about config dirs or boot sequences.
type Engine struct {
	L      *glua.LState
	chunks *lru.Cache[string, *glua.FunctionProto]

	// Cached table reference
	table *glua.LTable

	host Host
	log  *slog.Logger

	// Timer callbacks - Engine owns callbacks, Timer service owns IDs and scheduling
	callbacks map[int]*glua.LFunction
	binds     map[string]*glua.LFunction
}

// NewEngine creates an Engine with the given Host.
func NewEngine(host Host, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cache, _ := lru.New[string, *glua.FunctionProto](chunkCacheSize)
	return &Engine{
		chunks:    cache,
		host:      host,
		log:       log,
		callbacks: make(map[int]*glua.LFunction),
		binds:     make(map[string]*glua.LFunction),
	}
}

// --- Lifecycle ---

// Init initializes (or re-initializes) the Lua VM with fresh state and
// loads the core scripts. Compiled chunks survive re-initialization.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}
	e.L = glua.NewState()

	e.host.TimerCancelAll()
	e.callbacks = make(map[int]*glua.LFunction)
	e.binds = make(map[string]*glua.LFunction)

	e.registerAPIs()
	return e.loadCore()
}

func (e *Engine) loadCore() error {
	entries, err := fs.ReadDir(CoreScripts, "core")
	if err != nil {
		return fmt.Errorf("reading core scripts: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := CoreScripts.ReadFile("core/" + file)
		if err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
		if err := e.DoString("core/"+file, string(content)); err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
	}
	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	e.host.TimerCancelAll()
	e.callbacks = nil
	e.binds = nil
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// OnTimer runs the callback for a script timer.
func (e *Engine) OnTimer(id int, repeating bool) {
	if e.L == nil {
		return
	}
	fn, ok := e.callbacks[id]
	if !ok {
		return // Cancelled, or belonged to previous Engine instance
	}

	e.L.Push(fn)
	if err := e.L.PCall(0, 0, nil); err != nil {
		e.reportError("timer", err)
	}

	if !repeating {
		delete(e.callbacks, id)
	}
}

// --- Execution Primitives (Mechanism) ---

// compile returns the compiled form of code, from cache when possible.
func (e *Engine) compile(name, code string) (*glua.FunctionProto, error) {
	key := name + "\x00" + code
	if proto, ok := e.chunks.Get(key); ok {
		return proto, nil
	}
	chunk, err := parse.Parse(strings.NewReader(code), name)
	if err != nil {
		return nil, err
	}
	proto, err := glua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}
	e.chunks.Add(key, proto)
	return proto, nil
}

// DoString executes a raw string of Lua code.
// The name parameter is used for stack traces.
func (e *Engine) DoString(name, code string) error {
	proto, err := e.compile(name, code)
	if err != nil {
		return err
	}
	e.L.Push(e.L.NewFunctionFromProto(proto))
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file from the filesystem.
// It temporarily adjusts package.path to allow local requires.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	// Temporarily prepend script's directory to package.path
	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	err = e.DoString(absPath, string(content))

	e.L.SetField(pkg, "path", glua.LString(oldPath))
	return err
}

// CachedChunks returns the number of compiled chunks held.
func (e *Engine) CachedChunks() int { return e.chunks.Len() }

// --- Hooks ---

// CallHook calls arbor.hooks.call(event, args...). Errors raised by
// handlers are logged; an error in an "error" handler is not re-reported.
func (e *Engine) CallHook(event string, args ...string) {
	if e.L == nil {
		return
	}
	fn := e.hooksCall()
	if fn == glua.LNil {
		return
	}
	luaArgs := make([]glua.LValue, len(args)+1)
	luaArgs[0] = glua.LString(event)
	for i, arg := range args {
		luaArgs[i+1] = glua.LString(arg)
	}
	err := e.L.CallByParam(glua.P{Fn: fn, NRet: 0, Protect: true}, luaArgs...)
	if err != nil {
		if event == "error" {
			e.log.Error("lua error hook failed", "err", err)
			return
		}
		e.reportError("hook "+event, err)
	}
}

// reportError logs a script error and passes it to the error hook.
func (e *Engine) reportError(where string, err error) {
	e.log.Warn("lua error", "where", where, "err", err)
	e.CallHook("error", where+": "+err.Error())
}

// --- API Registration ---

func (e *Engine) registerAPIs() {
	e.table = e.L.NewTable()
	e.L.SetGlobal("arbor", e.table)

	e.registerCoreFuncs()
	e.registerBindFuncs()
	e.registerTimerFuncs()
	e.registerUIFuncs()
}

// hooksCall returns arbor.hooks.call, or nil before the core scripts ran.
func (e *Engine) hooksCall() glua.LValue {
	hooks, ok := e.L.GetField(e.table, "hooks").(*glua.LTable)
	if !ok {
		return glua.LNil
	}
	return e.L.GetField(hooks, "call")
}

// --- Private Helpers ---

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
