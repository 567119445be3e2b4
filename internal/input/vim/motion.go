package vim

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
)

// MotionType categorizes motions by the range they give an operator.
type MotionType uint8

const (
	// MotionCharwise covers the characters between cursor and target.
	MotionCharwise MotionType = iota

	// MotionLinewise covers every line between cursor and target.
	MotionLinewise
)

// TargetFunc computes where a motion lands when started at p. count is the
// typed count, or zero when none was given.
type TargetFunc func(b *buffer.Buffer, p buffer.Position, count int) buffer.Position

// Motion represents a Vim motion command.
// Motions define how the cursor moves and what range an operator affects.
type Motion struct {
	// Name is the motion identifier (e.g., "wordForward", "lineEnd").
	Name string

	// Keys is the default key sequence for this motion.
	Keys string

	// Action is the action name bound in keymaps (e.g., "cursor.wordForward").
	Action string

	// Type indicates the motion type (charwise or linewise).
	Type MotionType

	// Inclusive indicates if the motion includes the character under the
	// target. e is inclusive, w is exclusive.
	Inclusive bool

	// MustMove marks motions that fail, rather than act on the current
	// line, when they cannot move (dj on the last line does nothing).
	MustMove bool

	// Target computes the destination.
	Target TargetFunc
}

// Standard motions.
var (
	MotionLeft = Motion{
		Name:   "left",
		Keys:   "h",
		Action: "cursor.left",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			return buffer.Position{Row: p.Row, Col: max(p.Col-repeat(n), 0)}
		},
	}

	MotionRight = Motion{
		Name:   "right",
		Keys:   "l",
		Action: "cursor.right",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			return buffer.Position{Row: p.Row, Col: min(p.Col+repeat(n), b.LineLen(p.Row))}
		},
	}

	MotionUp = Motion{
		Name:     "up",
		Keys:     "k",
		Action:   "cursor.up",
		Type:     MotionLinewise,
		MustMove: true,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			return atRow(b, p.Row-repeat(n), p.Col)
		},
	}

	MotionDown = Motion{
		Name:     "down",
		Keys:     "j",
		Action:   "cursor.down",
		Type:     MotionLinewise,
		MustMove: true,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			return atRow(b, p.Row+repeat(n), p.Col)
		},
	}

	MotionWordForward = Motion{
		Name:   "wordForward",
		Keys:   "w",
		Action: "cursor.wordForward",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			for range repeat(n) {
				p = b.WordForward(p)
			}
			return p
		},
	}

	MotionWordBackward = Motion{
		Name:   "wordBackward",
		Keys:   "b",
		Action: "cursor.wordBackward",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			for range repeat(n) {
				p = b.WordBackward(p)
			}
			return p
		},
	}

	MotionWordEnd = Motion{
		Name:      "wordEnd",
		Keys:      "e",
		Action:    "cursor.wordEnd",
		Type:      MotionCharwise,
		Inclusive: true,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			for range repeat(n) {
				p = b.WordEnd(p)
			}
			return p
		},
	}

	MotionLineStart = Motion{
		Name:   "lineStart",
		Keys:   "0",
		Action: "cursor.lineStart",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, _ int) buffer.Position {
			return buffer.Position{Row: p.Row}
		},
	}

	MotionFirstNonBlank = Motion{
		Name:   "firstNonBlank",
		Keys:   "^",
		Action: "cursor.firstNonBlank",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, _ int) buffer.Position {
			return buffer.Position{Row: p.Row, Col: indentWidth(b.Line(p.Row))}
		},
	}

	// MotionLineEnd targets the end-of-line caret, so as an exclusive
	// motion it still covers the last character. A count moves down
	// count-1 lines first.
	MotionLineEnd = Motion{
		Name:   "lineEnd",
		Keys:   "$",
		Action: "cursor.lineEnd",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			row := min(p.Row+repeat(n)-1, b.LineCount()-1)
			return buffer.Position{Row: row, Col: b.LineLen(row)}
		},
	}

	MotionBufferStart = Motion{
		Name:   "bufferStart",
		Keys:   "gg",
		Action: "cursor.bufferStart",
		Type:   MotionLinewise,
		Target: func(b *buffer.Buffer, _ buffer.Position, n int) buffer.Position {
			return firstNonBlankOf(b, max(n, 1)-1)
		},
	}

	MotionBufferEnd = Motion{
		Name:   "bufferEnd",
		Keys:   "G",
		Action: "cursor.bufferEnd",
		Type:   MotionLinewise,
		Target: func(b *buffer.Buffer, _ buffer.Position, n int) buffer.Position {
			if n <= 0 {
				return firstNonBlankOf(b, b.LineCount()-1)
			}
			return firstNonBlankOf(b, n-1)
		},
	}

	MotionParagraphForward = Motion{
		Name:   "paragraphForward",
		Keys:   "}",
		Action: "cursor.paragraphForward",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			for range repeat(n) {
				p = paragraphBoundary(b, p.Row, 1)
			}
			return p
		},
	}

	MotionParagraphBackward = Motion{
		Name:   "paragraphBackward",
		Keys:   "{",
		Action: "cursor.paragraphBackward",
		Type:   MotionCharwise,
		Target: func(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
			for range repeat(n) {
				p = paragraphBoundary(b, p.Row, -1)
			}
			return p
		},
	}

	// MotionMatchBracket jumps from the first bracket at or after the
	// cursor on its line to the bracket that pairs with it. The count is
	// ignored; Vim's N% (go to percentage) is not supported.
	MotionMatchBracket = Motion{
		Name:      "matchBracket",
		Keys:      "%",
		Action:    "cursor.matchBracket",
		Type:      MotionCharwise,
		Inclusive: true,
		MustMove:  true,
		Target: func(b *buffer.Buffer, p buffer.Position, _ int) buffer.Position {
			if to, ok := matchBracket(b, p); ok {
				return to
			}
			return p
		},
	}
)

var motions = []*Motion{
	&MotionLeft,
	&MotionRight,
	&MotionUp,
	&MotionDown,
	&MotionWordForward,
	&MotionWordBackward,
	&MotionWordEnd,
	&MotionLineStart,
	&MotionFirstNonBlank,
	&MotionLineEnd,
	&MotionBufferStart,
	&MotionBufferEnd,
	&MotionParagraphForward,
	&MotionParagraphBackward,
	&MotionMatchBracket,
}

// LookupMotion returns the motion bound to a keymap action name.
func LookupMotion(action string) (Motion, bool) {
	for _, m := range motions {
		if m.Action == action {
			return *m, true
		}
	}
	return Motion{}, false
}

// Motions returns all standard motions.
func Motions() []Motion {
	out := make([]Motion, len(motions))
	for i, m := range motions {
		out[i] = *m
	}
	return out
}

// Range is the text an operator acts on. End is exclusive for charwise
// ranges; linewise ranges cover rows Start.Row through End.Row.
type Range struct {
	Start    buffer.Position
	End      buffer.Position
	Linewise bool
}

// Rows returns the first row and the number of rows the range spans.
func (r Range) Rows() (row, count int) {
	return r.Start.Row, r.End.Row - r.Start.Row + 1
}

// LineRange covers count lines starting at the cursor row, as used by
// doubled operators (dd, 3yy).
func LineRange(b *buffer.Buffer, count int) Range {
	row := b.Cursor().Row
	last := min(row+repeat(count)-1, b.LineCount()-1)
	return Range{
		Start:    buffer.Position{Row: row},
		End:      buffer.Position{Row: last, Col: b.LineLen(last)},
		Linewise: true,
	}
}

// RangeFor computes the range op covers when combined with m from the
// cursor. It returns false when the motion selects nothing.
//
// Two Vim special cases apply: cw on a word acts like ce, and a w motion
// that ends at the start of a later line stops at the end of the
// previous line instead.
func RangeFor(b *buffer.Buffer, m Motion, op OperatorKind, count int) (Range, bool) {
	from := b.Cursor()
	var to buffer.Position
	if op == OpChange && m.Action == MotionWordForward.Action && !onBlank(b, from) {
		m = MotionWordEnd
		to = changeWordEnd(b, from, count)
	} else {
		to = m.Target(b, from, count)
	}

	if m.MustMove && to == from {
		return Range{}, false
	}
	if m.Type == MotionLinewise {
		if m.MustMove && to.Row == from.Row {
			return Range{}, false
		}
		start, end := buffer.Ordered(from, to)
		return Range{
			Start:    buffer.Position{Row: start.Row},
			End:      buffer.Position{Row: end.Row, Col: b.LineLen(end.Row)},
			Linewise: true,
		}, true
	}

	start, end := buffer.Ordered(from, to)
	if m.Inclusive {
		end.Col = min(end.Col+1, b.LineLen(end.Row))
	}
	if m.Action == MotionWordForward.Action && end.Row > start.Row && end.Col <= indentWidth(b.Line(end.Row)) {
		end = buffer.Position{Row: end.Row - 1, Col: b.LineLen(end.Row - 1)}
	}
	if !start.Before(end) {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// changeWordEnd is the target of cw: the end of the word under p, then
// count-1 further word ends.
func changeWordEnd(b *buffer.Buffer, p buffer.Position, n int) buffer.Position {
	line := []rune(b.Line(p.Row))
	end := p
	if p.Col+1 < len(line) && buffer.ClassOf(line[p.Col+1]) == buffer.ClassOf(line[p.Col]) {
		end = b.WordEnd(p)
	}
	for range repeat(n) - 1 {
		end = b.WordEnd(end)
	}
	return end
}

func repeat(n int) int {
	return max(n, 1)
}

func atRow(b *buffer.Buffer, row, col int) buffer.Position {
	row = max(0, min(row, b.LineCount()-1))
	return buffer.Position{Row: row, Col: min(col, b.LineLen(row))}
}

func firstNonBlankOf(b *buffer.Buffer, row int) buffer.Position {
	row = max(0, min(row, b.LineCount()-1))
	return buffer.Position{Row: row, Col: indentWidth(b.Line(row))}
}

func indentWidth(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

func onBlank(b *buffer.Buffer, p buffer.Position) bool {
	line := []rune(b.Line(p.Row))
	return p.Col >= len(line) || buffer.ClassOf(line[p.Col]) == buffer.ClassSpace
}

// paragraphBoundary returns the next empty line after row in direction
// dir, skipping empty lines next to row. Past the last paragraph it stops
// at the end of the buffer, or at its start going back.
func paragraphBoundary(b *buffer.Buffer, row, dir int) buffer.Position {
	last := b.LineCount() - 1
	r := row + dir
	for r >= 0 && r <= last && b.LineLen(r) == 0 {
		r += dir
	}
	for r >= 0 && r <= last && b.LineLen(r) != 0 {
		r += dir
	}
	switch {
	case r > last:
		return buffer.Position{Row: last, Col: b.LineLen(last)}
	case r < 0:
		return buffer.Position{}
	}
	return buffer.Position{Row: r}
}

var bracketPairs = map[rune]struct {
	mate    rune
	forward bool
}{
	'(': {')', true}, '[': {']', true}, '{': {'}', true},
	')': {'(', false}, ']': {'[', false}, '}': {'{', false},
}

func matchBracket(b *buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	line := []rune(b.Line(p.Row))
	for col := p.Col; col < len(line); col++ {
		pair, ok := bracketPairs[line[col]]
		if !ok {
			continue
		}
		at := buffer.Position{Row: p.Row, Col: col}
		if pair.forward {
			next, ok := stepForward(b, at)
			if !ok {
				return p, false
			}
			return scanUnmatched(b, next, line[col], pair.mate, true)
		}
		prev, ok := stepBack(b, at)
		if !ok {
			return p, false
		}
		return scanUnmatched(b, prev, pair.mate, line[col], false)
	}
	return p, false
}
