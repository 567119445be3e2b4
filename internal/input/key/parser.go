package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses one key specification.
//
// Accepted forms are a single character ("a", "A", ":"), a vim bracket form
// ("<Esc>", "<C-r>", "<S-Tab>", "<lt>"), a bare key name ("Esc", "Enter"),
// and plus-joined names ("Ctrl+R").
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Rune(r), nil
	}
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracket(spec[1 : len(spec)-1])
	}
	if strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		var mods Modifier
		for _, p := range parts[:len(parts)-1] {
			m := ModifierFromName(p)
			if m == ModNone {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(m)
		}
		return parseKeyName(parts[len(parts)-1], mods)
	}
	return parseKeyName(spec, ModNone)
}

func parseBracket(inner string) (Event, error) {
	if inner == "" {
		return Event{}, fmt.Errorf("%w: <>", ErrInvalidSpec)
	}
	// "<C-->" names Ctrl and minus.
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		m := ModifierFromName(inner[:1])
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
		}
		mods = mods.With(m)
		inner = inner[2:]
	}
	return parseKeyName(inner, mods)
}

func parseKeyName(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}
	lower := strings.ToLower(name)
	if r, ok := runeNameMap[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// ParseSequence parses a run of keys such as "dd", "\"ayy" or "ihe<Esc>".
// A '<' that does not start a valid bracket form is the literal character.
func ParseSequence(s string) ([]Event, error) {
	var events []Event
	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 1 {
				if ev, err := parseBracket(s[1:end]); err == nil {
					events = append(events, ev)
					s = s[end+1:]
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid utf-8", ErrInvalidSpec)
		}
		events = append(events, Rune(r))
		s = s[size:]
	}
	return events, nil
}

// MustParseSequence is ParseSequence for known-valid input; it panics on error.
func MustParseSequence(s string) []Event {
	events, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return events
}

// FormatSequence renders events in notation, the inverse of ParseSequence.
func FormatSequence(events []Event) string {
	var sb strings.Builder
	for _, ev := range events {
		sb.WriteString(ev.Notation())
	}
	return sb.String()
}
