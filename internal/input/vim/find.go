package vim

import "github.com/dshills/modalcore/internal/engine/buffer"

// FindKind is one of the f, F, t and T character searches.
type FindKind uint8

const (
	FindForward FindKind = iota
	FindBackward
	TillForward
	TillBackward
)

var findActions = map[string]FindKind{
	"find.forward":  FindForward,
	"find.backward": FindBackward,
	"till.forward":  TillForward,
	"till.backward": TillBackward,
}

var findKeys = [...]string{
	FindForward:  "f",
	FindBackward: "F",
	TillForward:  "t",
	TillBackward: "T",
}

// FindKindForAction maps a keymap action to the search it starts.
func FindKindForAction(action string) (FindKind, bool) {
	k, ok := findActions[action]
	return k, ok
}

// Keys returns the key that starts the search.
func (k FindKind) Keys() string {
	if int(k) < len(findKeys) {
		return findKeys[k]
	}
	return ""
}

func (k FindKind) forward() bool { return k == FindForward || k == TillForward }
func (k FindKind) till() bool    { return k == TillForward || k == TillBackward }

// CharSearch is a completed f/F/t/T search, kept for ; and ,.
type CharSearch struct {
	Kind FindKind
	Char rune
}

// Reverse returns the same search in the other direction.
func (s CharSearch) Reverse() CharSearch {
	switch s.Kind {
	case FindForward:
		s.Kind = FindBackward
	case FindBackward:
		s.Kind = FindForward
	case TillForward:
		s.Kind = TillBackward
	case TillBackward:
		s.Kind = TillForward
	}
	return s
}

// Motion wraps the search as a motion. Forward searches are inclusive. A
// search that finds nothing stays put, which MustMove turns into a
// failed motion. again marks a ; or , repeat, where a till search skips
// a match right next to the cursor.
func (s CharSearch) Motion(again bool) Motion {
	return Motion{
		Name:      "find",
		Keys:      s.Kind.Keys() + string(s.Char),
		Type:      MotionCharwise,
		Inclusive: s.Kind.forward(),
		MustMove:  true,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			return FindChar(b, p, s, n, again)
		},
	}
}

// FindChar finds the count-th occurrence of s.Char on the cursor line and
// returns p unchanged when there are not that many.
func FindChar(b *buffer.Buffer, p buffer.Position, s CharSearch, count int, again bool) buffer.Position {
	line := []rune(b.Line(p.Row))
	step := 1
	if !s.Kind.forward() {
		step = -1
	}
	col := p.Col
	if again && s.Kind.till() {
		col += step
	}
	for range repeat(count) {
		col += step
		for col >= 0 && col < len(line) && line[col] != s.Char {
			col += step
		}
		if col < 0 || col >= len(line) {
			return p
		}
	}
	if s.Kind.till() {
		col -= step
	}
	return buffer.Position{Row: p.Row, Col: col}
}
