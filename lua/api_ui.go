package lua

import glua "github.com/yuin/gopher-lua"

// registerUIFuncs registers window-related API functions.
func (e *Engine) registerUIFuncs() {
	// arbor.message(title, text): Open a message box window
	e.L.SetField(e.table, "message", e.L.NewFunction(func(L *glua.LState) int {
		title := L.CheckString(1)
		text := L.CheckString(2)
		e.host.MessageBox(title, text)
		return 0
	}))

	// arbor.windows(): List open window titles
	e.L.SetField(e.table, "windows", e.L.NewFunction(func(L *glua.LState) int {
		t := L.NewTable()
		for _, title := range e.host.Windows() {
			t.Append(glua.LString(title))
		}
		L.Push(t)
		return 1
	}))
}
