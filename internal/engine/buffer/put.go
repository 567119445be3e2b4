package buffer

import (
	"strings"
	"unicode/utf8"
)

// PutAfter pastes the active register after the cursor.
//
// Charwise text goes after the character under the cursor (at the end of
// the line when the cursor is on the end-of-line caret). Text without a
// line separator stays on the current line and the cursor lands on its
// last character. Text with separators is split into pieces: the first
// piece joins the current line, middle pieces become whole lines and the
// last piece, which may be empty, starts the final line ahead of the text
// that followed the cursor. The cursor then sits at column 0 of that final
// line.
//
// Linewise text is inserted as whole lines below the cursor line and the
// cursor moves to the first inserted line. Empty registers are a no-op.
func (b *Buffer) PutAfter() {
	b.PutAfterCount(1)
}

// PutAfterCount is PutAfter with the register text repeated n times, as
// one undo step.
func (b *Buffer) PutAfterCount(n int) {
	r := repeatRegister(b.fetch(), n)
	if r.IsEmpty() {
		return
	}
	c := b.cursor
	switch r.Kind {
	case Linewise:
		b.putLines(c.Row+1, r.Text)
	case Blockwise:
		col := c.Col
		if col < b.LineLen(c.Row) {
			col++
		}
		b.putBlock(r.Text, col)
	default:
		col := c.Col
		if col < b.LineLen(c.Row) {
			col++
		}
		b.putChars(Position{Row: c.Row, Col: col}, r.Text)
	}
}

// PutBefore pastes the active register before the cursor. It follows the
// PutAfter rules with charwise text inserted at the cursor column and
// linewise text inserted above the cursor line.
func (b *Buffer) PutBefore() {
	b.PutBeforeCount(1)
}

// PutBeforeCount is PutBefore with the register text repeated n times.
func (b *Buffer) PutBeforeCount(n int) {
	r := repeatRegister(b.fetch(), n)
	if r.IsEmpty() {
		return
	}
	c := b.cursor
	switch r.Kind {
	case Linewise:
		b.putLines(c.Row, r.Text)
	case Blockwise:
		b.putBlock(r.Text, c.Col)
	default:
		b.putChars(c, r.Text)
	}
}

// repeatRegister repeats charwise and linewise text n times. Blocks are
// put once.
func repeatRegister(r Register, n int) Register {
	if n <= 1 || r.IsEmpty() || r.Kind == Blockwise {
		return r
	}
	if r.Kind == Linewise && !strings.HasSuffix(r.Text, "\n") {
		r.Text += "\n"
	}
	r.Text = strings.Repeat(r.Text, n)
	return r
}

func (b *Buffer) putChars(at Position, text string) {
	lines, last := b.spliceLines(at, at, text)
	var after Position
	if len(lines) == 1 {
		// last.Col is past the inserted text and at least one rune was
		// inserted, so this never goes negative.
		after = Position{Row: at.Row, Col: last.Col - 1}
	} else {
		after = Position{Row: last.Row}
	}
	b.replace("put", at.Row, 1, lines, after)
}

func (b *Buffer) putLines(row int, text string) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	b.replace("put lines", row, 0, lines, Position{Row: row})
}

// putBlock inserts each line of text at col on consecutive rows, padding
// short lines with spaces and appending rows past the end of the buffer.
func (b *Buffer) putBlock(text string, col int) {
	pieces := strings.Split(text, "\n")
	row := b.cursor.Row
	existing := min(len(pieces), len(b.lines)-row)
	lines := make([]string, len(pieces))
	for i, piece := range pieces {
		line := ""
		if i < existing {
			line = b.lines[row+i]
		}
		if n := utf8.RuneCountInString(line); n < col {
			line += strings.Repeat(" ", col-n)
		}
		left, right := splitAt(line, col)
		lines[i] = left + piece + right
	}
	b.replace("put block", row, existing, lines, Position{Row: row, Col: col})
}
