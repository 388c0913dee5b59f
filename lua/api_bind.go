package lua

import (
	"sort"

	glua "github.com/yuin/gopher-lua"

	"github.com/drake/arbor/event"
)

// registerBindFuncs registers the arbor.bind API.
func (e *Engine) registerBindFuncs() {
	// arbor.bind(key, callback) - Register a key binding
	// key is a string like "ctrl+r", "alt+x", "f1", etc.
	// callback receives the key name
	e.L.SetField(e.table, "bind", e.L.NewFunction(func(L *glua.LState) int {
		k, ok := event.ParseKey(L.CheckString(1))
		if !ok {
			L.ArgError(1, "unknown key")
			return 0
		}
		fn := L.CheckFunction(2)
		e.binds[k.String()] = fn
		return 0
	}))

	// arbor.unbind(key) - Remove a key binding
	e.L.SetField(e.table, "unbind", e.L.NewFunction(func(L *glua.LState) int {
		if k, ok := event.ParseKey(L.CheckString(1)); ok {
			delete(e.binds, k.String())
		}
		return 0
	}))
}

// HandleKey runs the binding for k, if any. It returns true if a binding
// exists, even when the callback raised an error.
func (e *Engine) HandleKey(k event.Key) bool {
	if e.L == nil {
		return false
	}
	name := k.String()
	fn, ok := e.binds[name]
	if !ok {
		return false
	}

	e.L.Push(fn)
	e.L.Push(glua.LString(name))
	if err := e.L.PCall(1, 0, nil); err != nil {
		e.reportError("bind "+name, err)
	}
	return true
}

// BoundKeys returns all bound key names, sorted.
func (e *Engine) BoundKeys() []string {
	keys := make([]string, 0, len(e.binds))
	for key := range e.binds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
