package demo

import (
	"fmt"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/ui/widgets"
	"github.com/drake/arbor/widget"
)

type listState struct {
	Active  int
	Entries []string
}

func (s *listState) text(i int) string {
	if i < 0 || i >= len(s.Entries) {
		return ""
	}
	if s.Entries[i] == "" {
		return fmt.Sprintf("Entry #%d", i+1)
	}
	return s.Entries[i]
}

type (
	addEntry    struct{}
	selectEntry int
	updateEntry struct {
		Index int
		Text  string
	}
)

// listEntry is one row of the list view. It turns the messages of its
// edit box into messages that carry the row index.
type listEntry struct {
	widget.Base
	index int
	row   *widgets.List
}

func newListEntry(i int) *listEntry {
	return &listEntry{
		index: i,
		row: widgets.NewRow(
			widgets.NewLabel(fmt.Sprintf("Entry %d", i+1)),
			widgets.NewButton("show", selectEntry(i)),
			widgets.NewEditBox(fmt.Sprintf("Entry #%d", i+1)).WithWidth(16),
		).WithGap(1),
	}
}

func (e *listEntry) Children() []widget.Widget { return []widget.Widget{e.row} }

func (e *listEntry) SizeHint() event.Size { return e.row.SizeHint() }

func (e *listEntry) SetRect(r layout.Rect) {
	e.Base.SetRect(r)
	e.row.SetRect(r)
}

func (e *listEntry) View(dc *widget.DrawCx) string { return e.row.View(dc) }

func (e *listEntry) HandleMessages(cx *widget.EventCx) {
	if m, ok := widget.TryPop[widgets.EditChanged](cx); ok {
		cx.Push(updateEntry{Index: e.index, Text: m.Text})
		return
	}
	if _, ok := widget.TryPop[widgets.EditActivated](cx); ok {
		cx.Push(selectEntry(e.index))
	}
}

// ListView is a growing list of editable entries. The "show" button of an
// entry, or Enter in its edit box, makes it the active entry.
func ListView(initial int) widget.Widget {
	entries := widgets.NewColumn()
	state := listState{}
	for i := range initial {
		entries.Append(newListEntry(i))
		state.Entries = append(state.Entries, "")
	}

	active := widgets.NewText(func(s *listState) string {
		if len(s.Entries) == 0 {
			return "No entries"
		}
		return fmt.Sprintf("Active: %s", s.text(s.Active))
	}).WithMinWidth(30)

	body := widgets.NewColumn(
		active,
		entries,
		widgets.NewButton("&New entry", addEntry{}),
	)
	ui := widget.WithState(body, state)
	widget.OnMessage(ui, func(cx *widget.EventCx, s *listState, _ addEntry) {
		entries.Append(newListEntry(len(s.Entries)))
		s.Entries = append(s.Entries, "")
		cx.Reconfigure()
	})
	widget.OnMessage(ui, func(cx *widget.EventCx, s *listState, m selectEntry) {
		s.Active = int(m)
	})
	widget.OnMessage(ui, func(cx *widget.EventCx, s *listState, m updateEntry) {
		if m.Index < len(s.Entries) {
			s.Entries[m.Index] = m.Text
		}
	})

	return widgets.NewWindow("Data list", ui).Escapable()
}
