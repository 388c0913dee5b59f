package widget

import (
	"log/slog"
	"unicode"
)

// Tree is the index built by a configuration pass.
type Tree struct {
	root   Widget
	index  map[ID]Widget
	nav    []ID // Navigable widgets, depth-first
	access map[rune]ID
}

// ConfigCx is passed to Configurer.Configure.
type ConfigCx struct {
	t    *Tree
	id   ID
	log  *slog.Logger
	host Host
}

// ID returns the ID just assigned to the widget being configured.
func (cx *ConfigCx) ID() ID { return cx.id }

// Host returns the dispatcher's host, or nil.
func (cx *ConfigCx) Host() Host { return cx.host }

// AddAccessKey binds key to the widget being configured. The first widget
// to claim a key keeps it.
func (cx *ConfigCx) AddAccessKey(key rune) {
	key = unicode.ToLower(key)
	if owner, ok := cx.t.access[key]; ok {
		cx.log.Debug("access key already bound",
			"key", string(key), "owner", owner.String(), "widget", cx.id.String())
		return
	}
	cx.t.access[key] = cx.id
}

// Configure assigns IDs to the tree under root, runs Configure hooks
// (parents before children) and indexes the result.
func Configure(root Widget, log *slog.Logger, host Host) *Tree {
	t := &Tree{
		root:   root,
		index:  make(map[ID]Widget),
		access: make(map[rune]ID),
	}
	t.configure(root, RootID, log, host)
	return t
}

func (t *Tree) configure(w Widget, id ID, log *slog.Logger, host Host) {
	w.Core().id = id
	t.index[id] = w
	if c, ok := w.(Configurer); ok {
		c.Configure(&ConfigCx{t: t, id: id, log: log, host: host})
	}
	if n, ok := w.(Navigable); ok && n.Navigable() {
		t.nav = append(t.nav, id)
	}
	for i, child := range w.Children() {
		if child == nil {
			continue
		}
		t.configure(child, id.Child(i), log, host)
	}
}

// Root returns the root widget.
func (t *Tree) Root() Widget { return t.root }

// Lookup returns the widget with the given ID, or nil if no such widget
// exists in the tree.
func (t *Tree) Lookup(id ID) Widget {
	return t.index[id]
}

// Len returns the number of widgets.
func (t *Tree) Len() int { return len(t.index) }

// AccessKey returns the owner of an access key.
func (t *Tree) AccessKey(key rune) (ID, bool) {
	id, ok := t.access[unicode.ToLower(key)]
	return id, ok
}

// NextNav returns the navigable widget after (or before, when back is set)
// from, wrapping around. It returns false if nothing is navigable.
func (t *Tree) NextNav(from ID, back bool) (ID, bool) {
	n := len(t.nav)
	if n == 0 {
		return ID{}, false
	}
	cur := -1
	for i, id := range t.nav {
		if id == from {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && back:
		next = n - 1
	case cur < 0:
		next = 0
	case back:
		next = (cur - 1 + n) % n
	default:
		next = (cur + 1) % n
	}
	return t.nav[next], true
}

// Walk visits every widget depth-first, parents before children.
func (t *Tree) Walk(fn func(w Widget)) {
	walk(t.root, fn)
}

func walk(w Widget, fn func(w Widget)) {
	fn(w)
	for _, c := range w.Children() {
		if c != nil {
			walk(c, fn)
		}
	}
}

// Update runs a data update pass over the subtree at w. A DataScope widget
// is updated with the outer data and replaces it for its descendants.
func Update(w Widget, data any) {
	if u, ok := w.(Updater); ok {
		u.Update(data)
	}
	if s, ok := w.(DataScope); ok {
		data = s.ScopeData(data)
	}
	for _, c := range w.Children() {
		if c != nil {
			Update(c, data)
		}
	}
}
