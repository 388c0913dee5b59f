package demo

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/drake/arbor/lua"
	"github.com/drake/arbor/ui/widgets"
	"github.com/drake/arbor/widget"
)

// Count is application data shared by all sync-counter windows. Scripts
// change it with arbor.push("add", n), arbor.push("set", n) and
// arbor.push("reset").
type Count struct {
	N int
}

func (c *Count) HandleMessages(s *widget.MessageStack) {
	for {
		if n, ok := widget.TryPop[Increment](s); ok {
			c.N += int(n)
			continue
		}
		// Peek first: unknown script messages are left for the discard
		// diagnostic.
		if m, ok := widget.TryPeek[lua.ScriptMessage](s); ok && c.script(m) {
			widget.TryPop[lua.ScriptMessage](s)
			continue
		}
		return
	}
}

func (c *Count) script(m lua.ScriptMessage) bool {
	switch m.Name {
	case "add":
		n, ok := m.Arg(0).(int)
		if !ok {
			return false
		}
		c.N += n
	case "set":
		n, ok := m.Arg(0).(int)
		if !ok {
			return false
		}
		c.N = n
	case "reset":
		c.N = 0
	default:
		return false
	}
	return true
}

// syncState is the per-window state of a sync counter.
type syncState struct {
	Count int
	Step  int
}

type setStep int

// SyncCounter is one window of the shared counter: a step slider and Sub
// and Add buttons that push Increment to the application's Count.
func SyncCounter(title string) widget.Widget {
	var ui *widget.Adapt[syncState]

	count := widgets.NewText(func(s *syncState) string { return fmt.Sprintf("Count: %d", s.Count) }).WithMinWidth(12)
	slider := widgets.NewSlider(1, 10, 1, func(v int) any { return setStep(v) }).WithWidth(12)
	step := widgets.NewText(func(s *syncState) string { return strconv.Itoa(s.Step) }).WithMinWidth(2)
	sub := widgets.NewButtonFunc("&Sub", func(cx *widget.EventCx) { cx.Push(Increment(-ui.State().Step)) })
	add := widgets.NewButtonFunc("&Add", func(cx *widget.EventCx) { cx.Push(Increment(ui.State().Step)) })

	body := widgets.NewColumn(
		count,
		widgets.NewRow(slider, step).WithGap(1),
		widgets.NewRow(sub, add).WithGap(1),
	)
	ui = widget.WithState(body, syncState{Step: 1}).
		OnUpdate(func(s *syncState, data any) {
			if c, ok := data.(*Count); ok {
				s.Count = c.N
			}
		})
	widget.OnMessage(ui, func(cx *widget.EventCx, s *syncState, v setStep) { s.Step = int(v) })

	return widgets.NewWindow(title, ui).Escapable()
}

// Shared is application data holding one value for the sync-spinner
// windows.
type Shared struct {
	Value int
}

type setShared int

func (sh *Shared) HandleMessages(s *widget.MessageStack) {
	for {
		v, ok := widget.TryPop[setShared](s)
		if !ok {
			return
		}
		sh.Value = int(v)
	}
}

// sharedSpin is a spin box that follows Shared.
type sharedSpin struct {
	*widgets.SpinBox
}

func (s sharedSpin) Update(data any) {
	if sh, ok := data.(*Shared); ok {
		s.SetValue(sh.Value)
	}
}

// SyncSpinner is one window of the shared spinner.
func SyncSpinner(title string) widget.Widget {
	spin := sharedSpin{widgets.NewSpinBox(-99, 99, 0, func(v int) any { return setShared(v) })}
	busy := widgets.NewThrobber(spinner.Dot)
	return widgets.NewWindow(title, widgets.NewRow(busy, spin).WithGap(1)).Escapable()
}
