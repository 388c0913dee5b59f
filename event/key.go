package event

import (
	"strings"
	"unicode"
)

// Code identifies a non-printable key. Printable input uses CodeRune.
type Code int

const (
	CodeRune Code = iota
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeEsc
	CodeSpace
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePgUp
	CodePgDown
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
)

var codeNames = map[Code]string{
	CodeEnter:     "enter",
	CodeTab:       "tab",
	CodeBackspace: "backspace",
	CodeDelete:    "delete",
	CodeEsc:       "esc",
	CodeSpace:     "space",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodePgUp:      "pgup",
	CodePgDown:    "pgdown",
	CodeF1:        "f1",
	CodeF2:        "f2",
	CodeF3:        "f3",
	CodeF4:        "f4",
	CodeF5:        "f5",
	CodeF6:        "f6",
	CodeF7:        "f7",
	CodeF8:        "f8",
	CodeF9:        "f9",
	CodeF10:       "f10",
	CodeF11:       "f11",
	CodeF12:       "f12",
}

// Key is a decoded key press.
type Key struct {
	Code  Code
	Rune  rune // Only for CodeRune
	Ctrl  bool
	Alt   bool
	Shift bool
}

// K returns a plain rune key.
func K(r rune) Key {
	return Key{Code: CodeRune, Rune: r}
}

// String returns the binding name of the key, such as "ctrl+r", "alt+c",
// "shift+tab" or "a".
func (k Key) String() string {
	var sb strings.Builder
	if k.Ctrl {
		sb.WriteString("ctrl+")
	}
	if k.Alt {
		sb.WriteString("alt+")
	}
	if k.Shift && k.Code != CodeRune {
		sb.WriteString("shift+")
	}
	if k.Code == CodeRune {
		sb.WriteRune(k.Rune)
	} else {
		sb.WriteString(codeNames[k.Code])
	}
	return sb.String()
}

// ParseKey parses a binding name produced by Key.String. It returns false
// for names it does not recognize.
func ParseKey(s string) (Key, bool) {
	var k Key
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+"):
			k.Ctrl = true
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "alt+"):
			k.Alt = true
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "shift+"):
			k.Shift = true
			s = s[len("shift+"):]
			continue
		}
		break
	}
	if r := []rune(s); len(r) == 1 {
		k.Code = CodeRune
		k.Rune = r[0]
		return k, true
	}
	for code, name := range codeNames {
		if name == s {
			k.Code = code
			return k, true
		}
	}
	return Key{}, false
}

// Printable reports whether the key inserts text.
func (k Key) Printable() bool {
	return k.Code == CodeRune && !k.Ctrl && !k.Alt && unicode.IsPrint(k.Rune)
}
