package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKeyStringRoundTrip(t *testing.T) {
	keys := []Key{
		K('a'),
		K('+'),
		{Code: CodeRune, Rune: 'r', Ctrl: true},
		{Code: CodeRune, Rune: 'c', Alt: true},
		{Code: CodeTab, Shift: true},
		{Code: CodeTab, Ctrl: true, Shift: true},
		{Code: CodeEnter},
		{Code: CodeF12, Alt: true},
		{Code: CodePgDown},
	}
	for _, k := range keys {
		name := k.String()
		got, ok := ParseKey(name)
		if !ok {
			t.Errorf("ParseKey(%q) failed", name)
			continue
		}
		if diff := cmp.Diff(k, got); diff != "" {
			t.Errorf("ParseKey(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		ok   bool
	}{
		{"shift+ctrl+tab", Key{Code: CodeTab, Ctrl: true, Shift: true}, true},
		{"alt+ctrl+x", Key{Code: CodeRune, Rune: 'x', Ctrl: true, Alt: true}, true},
		{"é", K('é'), true},
		{"esc", Key{Code: CodeEsc}, true},
		{"hyper+z", Key{}, false},
		{"", Key{}, false},
		{"ctrl+", Key{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseKey(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseKey(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		k    Key
		want bool
	}{
		{K('a'), true},
		{K(' '), true},
		{Key{Code: CodeRune, Rune: 'a', Ctrl: true}, false},
		{Key{Code: CodeEnter}, false},
		{K('\x01'), false},
	}
	for _, tt := range tests {
		if got := tt.k.Printable(); got != tt.want {
			t.Errorf("%q.Printable() = %v, want %v", tt.k, got, tt.want)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{KeyEvent(Key{Code: CodeRune, Rune: 'q', Ctrl: true}), "key-press ctrl+q"},
		{Click(3, 4), "pointer-down (3,4)"},
		{DeliverTo("0.1", "done"), "deliver -> 0.1"},
		{Event{Type: Quit}, "quit"},
		{Event{Type: Type(99)}, "type(99)"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
