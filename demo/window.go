package demo

import (
	"github.com/drake/arbor/ui/widgets"
	"github.com/drake/arbor/widget"
)

// PushMe is a window with one button that opens a message box.
func PushMe() widget.Widget {
	push := widgets.NewButtonFunc("&Push me", func(cx *widget.EventCx) {
		cx.AddWindow(widgets.NewMessageBox("Message", "You pushed the button."))
	})
	return widgets.NewWindow("Hello", push)
}

// EditWindow is a window holding a single edit box.
func EditWindow() widget.Widget {
	return widgets.NewWindow("Simple window", widgets.NewEditBox("0").WithWidth(12))
}
