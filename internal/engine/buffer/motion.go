package buffer

import "unicode"

// MoveCursor places the cursor at pos, clamping it into the buffer.
func (b *Buffer) MoveCursor(pos Position) {
	b.cursor = b.clamp(pos)
}

// MoveLeft moves the cursor n columns left within the line.
func (b *Buffer) MoveLeft(n int) {
	b.MoveCursor(Position{Row: b.cursor.Row, Col: b.cursor.Col - max(n, 1)})
}

// MoveRight moves the cursor n columns right, stopping at the end-of-line
// caret.
func (b *Buffer) MoveRight(n int) {
	b.MoveCursor(Position{Row: b.cursor.Row, Col: b.cursor.Col + max(n, 1)})
}

// MoveUp moves the cursor n rows up, clamping the column to the new line.
func (b *Buffer) MoveUp(n int) {
	b.MoveCursor(Position{Row: b.cursor.Row - max(n, 1), Col: b.cursor.Col})
}

// MoveDown moves the cursor n rows down, clamping the column to the new line.
func (b *Buffer) MoveDown(n int) {
	b.MoveCursor(Position{Row: b.cursor.Row + max(n, 1), Col: b.cursor.Col})
}

// MoveToLineStart moves to column zero.
func (b *Buffer) MoveToLineStart() {
	b.cursor.Col = 0
}

// MoveToFirstNonBlank moves to the first non-blank character of the line.
func (b *Buffer) MoveToFirstNonBlank() {
	b.cursor.Col = firstNonBlank(b.lines[b.cursor.Row])
}

// MoveToLineEnd moves to the end-of-line caret.
func (b *Buffer) MoveToLineEnd() {
	b.cursor.Col = b.LineLen(b.cursor.Row)
}

// MoveToBufferStart moves to the first column of the first line.
func (b *Buffer) MoveToBufferStart() {
	b.cursor = Position{}
}

// MoveToBufferEnd moves to the first column of the last line.
func (b *Buffer) MoveToBufferEnd() {
	b.cursor = Position{Row: len(b.lines) - 1}
}

// MoveToNextWord moves to the start of the next word (vim w).
func (b *Buffer) MoveToNextWord() {
	b.cursor = b.WordForward(b.cursor)
}

// MoveToPreviousWord moves to the start of the previous word (vim b).
func (b *Buffer) MoveToPreviousWord() {
	b.cursor = b.WordBackward(b.cursor)
}

// MoveToWordEnd moves to the end of the current or next word (vim e).
func (b *Buffer) MoveToWordEnd() {
	b.cursor = b.WordEnd(b.cursor)
}

// CharClass partitions runes for word motions.
type CharClass uint8

const (
	ClassSpace CharClass = iota
	ClassWord
	ClassPunct
)

// ClassOf returns the word-motion class of r. Underscores, letters and
// digits are word characters.
func ClassOf(r rune) CharClass {
	switch {
	case unicode.IsSpace(r):
		return ClassSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return ClassWord
	}
	return ClassPunct
}

// scanner walks positions across line boundaries. The end-of-line caret
// reads as '\n' so line breaks behave like whitespace.
type scanner struct {
	b    *Buffer
	pos  Position
	line []rune
}

func (b *Buffer) scan(p Position) *scanner {
	p = b.clamp(p)
	return &scanner{b: b, pos: p, line: []rune(b.lines[p.Row])}
}

func (s *scanner) at() rune {
	if s.pos.Col < len(s.line) {
		return s.line[s.pos.Col]
	}
	return '\n'
}

func (s *scanner) emptyLine() bool {
	return len(s.line) == 0
}

func (s *scanner) next() bool {
	if s.pos.Col < len(s.line) {
		s.pos.Col++
		return true
	}
	if s.pos.Row+1 < len(s.b.lines) {
		s.pos.Row++
		s.pos.Col = 0
		s.line = []rune(s.b.lines[s.pos.Row])
		return true
	}
	return false
}

func (s *scanner) prev() bool {
	if s.pos.Col > 0 {
		s.pos.Col--
		return true
	}
	if s.pos.Row > 0 {
		s.pos.Row--
		s.line = []rune(s.b.lines[s.pos.Row])
		s.pos.Col = len(s.line)
		return true
	}
	return false
}

// WordForward returns the start of the word after p. A run of word
// characters, a run of punctuation, and an empty line each count as a
// word. Past the last word it returns the end of the buffer.
func (b *Buffer) WordForward(p Position) Position {
	s := b.scan(p)
	start := s.pos
	if cls := ClassOf(s.at()); cls != ClassSpace {
		for ClassOf(s.at()) == cls && s.next() {
		}
	}
	for ClassOf(s.at()) == ClassSpace {
		if s.emptyLine() && s.pos != start {
			break
		}
		if !s.next() {
			break
		}
	}
	return s.pos
}

// WordBackward returns the start of the word before p.
func (b *Buffer) WordBackward(p Position) Position {
	s := b.scan(p)
	if !s.prev() {
		return s.pos
	}
	for ClassOf(s.at()) == ClassSpace {
		if s.emptyLine() || !s.prev() {
			return s.pos
		}
	}
	cls := ClassOf(s.at())
	for s.pos.Col > 0 && ClassOf(s.line[s.pos.Col-1]) == cls {
		s.pos.Col--
	}
	return s.pos
}

// WordEnd returns the last character of the word at or after the character
// following p. When no word follows, p is returned unchanged.
func (b *Buffer) WordEnd(p Position) Position {
	p = b.clamp(p)
	s := b.scan(p)
	if !s.next() {
		return p
	}
	for ClassOf(s.at()) == ClassSpace {
		if !s.next() {
			return p
		}
	}
	cls := ClassOf(s.at())
	for s.pos.Col+1 < len(s.line) && ClassOf(s.line[s.pos.Col+1]) == cls {
		s.pos.Col++
	}
	return s.pos
}
