// Package keymap converts between Bubble Tea key messages and event keys.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/arbor/event"
)

var fromTea = map[tea.KeyType]event.Key{
	tea.KeyEnter:     {Code: event.CodeEnter},
	tea.KeyTab:       {Code: event.CodeTab},
	tea.KeyShiftTab:  {Code: event.CodeTab, Shift: true},
	tea.KeyBackspace: {Code: event.CodeBackspace},
	tea.KeyDelete:    {Code: event.CodeDelete},
	tea.KeyEsc:       {Code: event.CodeEsc},
	tea.KeySpace:     {Code: event.CodeSpace},
	tea.KeyUp:        {Code: event.CodeUp},
	tea.KeyDown:      {Code: event.CodeDown},
	tea.KeyLeft:      {Code: event.CodeLeft},
	tea.KeyRight:     {Code: event.CodeRight},
	tea.KeyShiftUp:   {Code: event.CodeUp, Shift: true},
	tea.KeyShiftDown: {Code: event.CodeDown, Shift: true},
	tea.KeyHome:      {Code: event.CodeHome},
	tea.KeyEnd:       {Code: event.CodeEnd},
	tea.KeyPgUp:      {Code: event.CodePgUp},
	tea.KeyPgDown:    {Code: event.CodePgDown},
	tea.KeyF1:        {Code: event.CodeF1},
	tea.KeyF2:        {Code: event.CodeF2},
	tea.KeyF3:        {Code: event.CodeF3},
	tea.KeyF4:        {Code: event.CodeF4},
	tea.KeyF5:        {Code: event.CodeF5},
	tea.KeyF6:        {Code: event.CodeF6},
	tea.KeyF7:        {Code: event.CodeF7},
	tea.KeyF8:        {Code: event.CodeF8},
	tea.KeyF9:        {Code: event.CodeF9},
	tea.KeyF10:       {Code: event.CodeF10},
	tea.KeyF11:       {Code: event.CodeF11},
	tea.KeyF12:       {Code: event.CodeF12},
}

var toTea = make(map[event.Key]tea.KeyType, len(fromTea))

func init() {
	for t, k := range fromTea {
		toTea[k] = t
	}
}

// FromTea converts a key message. Pasted or batched runes yield one key
// each; keys with no equivalent yield nil.
func FromTea(msg tea.KeyMsg) []event.Key {
	if msg.Type == tea.KeyRunes {
		keys := make([]event.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, event.Key{Code: event.CodeRune, Rune: r, Alt: msg.Alt})
		}
		return keys
	}
	if k, ok := fromTea[msg.Type]; ok {
		k.Alt = msg.Alt
		return []event.Key{k}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		r := 'a' + rune(msg.Type-tea.KeyCtrlA)
		return []event.Key{{Code: event.CodeRune, Rune: r, Ctrl: true, Alt: msg.Alt}}
	}
	return nil
}

// ToTea converts k back into the message a Bubble Tea component expects.
func ToTea(k event.Key) (tea.KeyMsg, bool) {
	if k.Code == event.CodeRune {
		if k.Ctrl {
			if k.Rune < 'a' || k.Rune > 'z' {
				return tea.KeyMsg{}, false
			}
			return tea.KeyMsg{Type: tea.KeyCtrlA + tea.KeyType(k.Rune-'a'), Alt: k.Alt}, true
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{k.Rune}, Alt: k.Alt}, true
	}
	alt := k.Alt
	k.Alt = false
	t, ok := toTea[k]
	if !ok {
		return tea.KeyMsg{}, false
	}
	msg := tea.KeyMsg{Type: t, Alt: alt}
	if t == tea.KeySpace {
		msg.Runes = []rune{' '}
	}
	return msg, true
}
