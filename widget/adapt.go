package widget

import (
	"github.com/drake/arbor/event"
	"github.com/drake/arbor/ui/layout"
)

// Adapt wraps a widget with local state of type S. Message handlers added
// with OnMessage take messages left by the wrapped subtree and may change
// the state; descendants see a pointer to the state as their update data.
type Adapt[S any] struct {
	Base
	inner    Widget
	state    S
	handlers []func(cx *EventCx, s *S) bool
	updaters []func(s *S, data any)
}

// WithState wraps inner with the given initial state.
func WithState[S any](inner Widget, state S) *Adapt[S] {
	return &Adapt[S]{inner: inner, state: state}
}

// OnMessage adds a handler for messages of type M.
func OnMessage[S, M any](a *Adapt[S], fn func(cx *EventCx, s *S, m M)) *Adapt[S] {
	a.handlers = append(a.handlers, func(cx *EventCx, s *S) bool {
		m, ok := TryPop[M](cx)
		if !ok {
			return false
		}
		fn(cx, s, m)
		return true
	})
	return a
}

// OnUpdate adds a hook run with the outer data on every update pass.
func (a *Adapt[S]) OnUpdate(fn func(s *S, data any)) *Adapt[S] {
	a.updaters = append(a.updaters, fn)
	return a
}

// State returns the wrapped state.
func (a *Adapt[S]) State() *S { return &a.state }

// Inner returns the wrapped widget.
func (a *Adapt[S]) Inner() Widget { return a.inner }

func (a *Adapt[S]) Children() []Widget { return []Widget{a.inner} }

func (a *Adapt[S]) SizeHint() event.Size { return a.inner.SizeHint() }

func (a *Adapt[S]) SetRect(r layout.Rect) {
	a.Base.SetRect(r)
	a.inner.SetRect(r)
}

func (a *Adapt[S]) View(dc *DrawCx) string { return a.inner.View(dc) }

// HandleMessages runs handlers until none of them takes the top message.
// Any change to the state triggers an update pass.
func (a *Adapt[S]) HandleMessages(cx *EventCx) {
	changed := false
	for {
		took := false
		for _, h := range a.handlers {
			if h(cx, &a.state) {
				took = true
			}
		}
		if !took {
			break
		}
		changed = true
	}
	if changed {
		cx.Update()
	}
}

func (a *Adapt[S]) Update(data any) {
	for _, fn := range a.updaters {
		fn(&a.state, data)
	}
}

func (a *Adapt[S]) ScopeData(any) any { return &a.state }
