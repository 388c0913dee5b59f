package widget

import (
	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
	"github.com/drake/arbor/ui/style"
)

// IsUsed is returned by event handlers.
type IsUsed bool

const (
	Used   IsUsed = true
	Unused IsUsed = false
)

// Widget is the capability set every node in the tree implements.
// Embed Base to get defaults for everything except SizeHint and View.
type Widget interface {
	// Core returns the widget's identity and geometry.
	Core() *Core

	// Children returns the child widgets in z-order: later children are
	// drawn over, and hit-tested before, earlier ones. The slice index is
	// the child's ID component.
	Children() []Widget

	// SizeHint returns the preferred size in cells.
	SizeHint() event.Size

	// SetRect assigns the widget's region. Containers lay out their
	// children here.
	SetRect(r layout.Rect)

	// View renders the widget to exactly its rectangle.
	View(dc *DrawCx) string

	// HandleEvent handles an event routed to this widget (or passed up
	// from a descendant that did not use it).
	HandleEvent(cx *EventCx, ev event.Event) IsUsed

	// HandleMessages is called when descendants left messages on the
	// stack. Use TryPop to take the ones this widget understands.
	HandleMessages(cx *EventCx)
}

// Core holds the state the dispatcher manages for every widget.
type Core struct {
	id   ID
	rect layout.Rect
}

// ID returns the widget's ID. It is invalid before the first Configure.
func (c *Core) ID() ID { return c.id }

// Rect returns the region assigned by the last layout.
func (c *Core) Rect() layout.Rect { return c.rect }

// Base implements the optional parts of Widget with no-op defaults.
type Base struct {
	core Core
}

func (b *Base) Core() *Core { return &b.core }

// ID is shorthand for Core().ID().
func (b *Base) ID() ID { return b.core.id }

// Rect is shorthand for Core().Rect().
func (b *Base) Rect() layout.Rect { return b.core.rect }

func (b *Base) Children() []Widget { return nil }

func (b *Base) SetRect(r layout.Rect) { b.core.rect = r }

func (b *Base) HandleEvent(*EventCx, event.Event) IsUsed { return Unused }

func (b *Base) HandleMessages(*EventCx) {}

// Configurer is implemented by widgets that need a hook during the
// configuration pass, for example to register access keys.
type Configurer interface {
	Configure(cx *ConfigCx)
}

// Navigable is implemented by widgets that can take keyboard focus.
type Navigable interface {
	Navigable() bool
}

// Updater is implemented by widgets whose content derives from data.
type Updater interface {
	Update(data any)
}

// DataScope is implemented by widgets that substitute their own data for
// their subtree during an update pass.
type DataScope interface {
	ScopeData(outer any) any
}

// Titled is implemented by window roots.
type Titled interface {
	Title() string
}

// DrawCx carries what views need beyond their own state.
type DrawCx struct {
	Styles  *style.Styles
	Focus   ID
	Hover   ID
	Pressed ID
}

// IsFocused reports whether id has keyboard focus.
func (dc *DrawCx) IsFocused(id ID) bool { return id.IsValid() && dc.Focus == id }

// IsHovered reports whether the pointer is over id.
func (dc *DrawCx) IsHovered(id ID) bool { return id.IsValid() && dc.Hover == id }

// IsPressed reports whether id holds the pointer grab.
func (dc *DrawCx) IsPressed(id ID) bool { return id.IsValid() && dc.Pressed == id }
