package key

import (
	"fmt"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key      `json:"key"`
	Rune      rune     `json:"rune,omitempty"`
	Modifiers Modifier `json:"mods,omitempty"`
}

// NewRuneEvent creates an event for a character. Shift is folded into the
// rune, so NewRuneEvent('A', ModShift) equals NewRuneEvent('A', ModNone).
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods.Without(ModShift)}
}

// NewSpecialEvent creates an event for a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Rune is shorthand for an unmodified character event.
func Rune(r rune) Event {
	return NewRuneEvent(r, ModNone)
}

// Special is shorthand for an unmodified named-key event.
func Special(k Key) Event {
	return NewSpecialEvent(k, ModNone)
}

// IsRune reports whether e is a character event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether e is an unmodified printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsDigit reports whether e is an unmodified ASCII digit.
func (e Event) IsDigit() bool {
	return e.IsChar() && e.Rune >= '0' && e.Rune <= '9'
}

// IsModified reports whether Ctrl, Alt or Meta is held.
func (e Event) IsModified() bool {
	return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
}

// Is reports whether e is the unmodified character r.
func (e Event) Is(r rune) bool {
	return e.IsRune() && !e.IsModified() && e.Rune == r
}

// IsEscape reports whether e is an unmodified Escape or Ctrl-[.
func (e Event) IsEscape() bool {
	if e.Key == KeyEscape && e.Modifiers == ModNone {
		return true
	}
	return e.Key == KeyRune && e.Rune == '[' && e.Modifiers == ModCtrl
}

// Notation returns the canonical vim notation for e. Keymap lookups use
// this string, and Parse(e.Notation()) == e for every event Parse accepts.
func (e Event) Notation() string {
	if e.Key == KeyRune {
		if !e.IsModified() {
			switch e.Rune {
			case ' ':
				return "<Space>"
			case '<':
				return "<lt>"
			}
			return string(e.Rune)
		}
		name := string(e.Rune)
		switch e.Rune {
		case ' ':
			name = "Space"
		case '<':
			name = "lt"
		case '>':
			name = "gt"
		}
		return "<" + e.Modifiers.prefix() + name + ">"
	}
	return "<" + e.Modifiers.prefix() + e.Key.String() + ">"
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return e.Notation()
}

// GoString implements fmt.GoStringer for test failure output.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}", e.Key, e.Rune, e.Modifiers)
}
