package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/arbor/event"
	"github.com/drake/arbor/interfaces"
	"github.com/drake/arbor/ui/keymap"
	"github.com/drake/arbor/ui/style"
)

// frameMsg carries a rendered frame from the runner.
type frameMsg interfaces.Frame

// quitMsg asks the program to exit.
type quitMsg struct{}

// barHeight is the number of rows taken by the window bar.
const barHeight = 1

// Model is the Bubble Tea model: it forwards input to the runner and
// shows the last frame it was given.
type Model struct {
	frame  interfaces.Frame
	styles style.Styles

	events chan<- event.Event
	done   <-chan struct{}

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(events chan<- event.Event, done <-chan struct{}, styles style.Styles) Model {
	return Model{
		events: events,
		done:   done,
		styles: styles,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.emit(event.Event{
			Type: event.Resize,
			Size: event.Size{W: msg.Width, H: max(msg.Height-barHeight, 0)},
		})

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.emit(event.Event{Type: event.Quit})
			return m, nil
		}
		for _, k := range keymap.FromTea(msg) {
			m.emit(event.KeyEvent(k))
		}

	case tea.MouseMsg:
		if ev, ok := translateMouse(msg); ok {
			m.emit(ev)
		}

	case frameMsg:
		m.frame = interfaces.Frame(msg)

	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

// emit forwards ev to the runner. Blocks until it is taken or the UI is
// done.
func (m Model) emit(ev event.Event) {
	select {
	case m.events <- ev:
	case <-m.done:
	}
}

// translateMouse converts a Bubble Tea mouse message into a pointer event.
func translateMouse(msg tea.MouseMsg) (event.Event, bool) {
	pos := event.Point{X: msg.X, Y: msg.Y}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return event.Event{Type: event.Scroll, Pos: pos, Delta: -1}, msg.Action == tea.MouseActionPress
	case tea.MouseButtonWheelDown:
		return event.Event{Type: event.Scroll, Pos: pos, Delta: 1}, msg.Action == tea.MouseActionPress
	}

	var button event.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = event.ButtonLeft
	case tea.MouseButtonMiddle:
		button = event.ButtonMiddle
	case tea.MouseButtonRight:
		button = event.ButtonRight
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if button == event.ButtonNone {
			return event.Event{}, false
		}
		return event.Event{Type: event.PointerDown, Pos: pos, Button: button}, true
	case tea.MouseActionRelease:
		return event.Event{Type: event.PointerUp, Pos: pos, Button: button}, true
	case tea.MouseActionMotion:
		return event.Event{Type: event.PointerMove, Pos: pos}, true
	}
	return event.Event{}, false
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := lipgloss.Place(m.width, max(m.height-barHeight, 0),
		lipgloss.Left, lipgloss.Top, m.frame.Content)
	return body + "\n" + m.bar()
}

// bar renders the window list on the left and the status text on the
// right.
func (m Model) bar() string {
	var tabs []string
	for _, w := range m.frame.Windows {
		title := " " + w.Title + " "
		if strings.TrimSpace(title) == "" {
			title = " (untitled) "
		}
		if w.Active {
			tabs = append(tabs, m.styles.WindowTitle.Render(title))
		} else {
			tabs = append(tabs, m.styles.Muted.Render(title))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	right := m.styles.Muted.Render(m.frame.Status)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}
