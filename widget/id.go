package widget

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a string does not parse as an ID.
var ErrInvalidID = errors.New("invalid widget id")

// ID locates a widget in its window's tree: the path of child indices from
// the root, written "0.2.1". IDs are assigned by Configure and stay stable
// until the next configuration pass. The zero value is invalid.
type ID struct {
	path string
}

// RootID is the ID of every window's root widget.
var RootID = ID{path: "0"}

// ParseID parses the string form of an ID.
func ParseID(s string) (ID, error) {
	if s == "" {
		return ID{}, fmt.Errorf("parse %q: %w", s, ErrInvalidID)
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return ID{}, fmt.Errorf("parse %q: %w", s, ErrInvalidID)
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return ID{}, fmt.Errorf("parse %q: %w", s, ErrInvalidID)
			}
		}
	}
	return ID{path: s}, nil
}

// IsValid reports whether the ID was assigned (or parsed).
func (id ID) IsValid() bool { return id.path != "" }

func (id ID) String() string {
	if id.path == "" {
		return "<none>"
	}
	return id.path
}

// Child returns the ID of the i'th child.
func (id ID) Child(i int) ID {
	return ID{path: id.path + "." + strconv.Itoa(i)}
}

// Parent returns the parent ID. It returns false for the root and for the
// zero ID.
func (id ID) Parent() (ID, bool) {
	i := strings.LastIndexByte(id.path, '.')
	if i < 0 {
		return ID{}, false
	}
	return ID{path: id.path[:i]}, true
}

// IsAncestorOf reports whether id is a strict ancestor of other.
func (id ID) IsAncestorOf(other ID) bool {
	return id.IsValid() && strings.HasPrefix(other.path, id.path+".")
}

// Depth is 0 for the root, 1 for its children, and so on.
func (id ID) Depth() int {
	if !id.IsValid() {
		return -1
	}
	return strings.Count(id.path, ".")
}

// Index returns the last path component: the widget's position among its
// siblings.
func (id ID) Index() int {
	n, _ := strconv.Atoi(id.path[strings.LastIndexByte(id.path, '.')+1:])
	return n
}
