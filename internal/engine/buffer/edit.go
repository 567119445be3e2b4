package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// spliceLines computes the lines that result from replacing the text
// between start and end (end exclusive) with text. It returns the new
// lines and the position just past the inserted text.
func (b *Buffer) spliceLines(start, end Position, text string) ([]string, Position) {
	left, _ := splitAt(b.lines[start.Row], start.Col)
	_, right := splitAt(b.lines[end.Row], end.Col)

	pieces := strings.Split(text, "\n")
	last := len(pieces) - 1
	pieces[0] = left + pieces[0]
	endPos := Position{Row: start.Row + last, Col: utf8.RuneCountInString(pieces[last])}
	pieces[last] += right
	return pieces, endPos
}

// normalizeRange clamps and orders a range.
func (b *Buffer) normalizeRange(start, end Position) (Position, Position) {
	return Ordered(b.clamp(start), b.clamp(end))
}

// TextInRange returns the text between start and end, end exclusive.
// Line breaks inside the range are returned as "\n".
func (b *Buffer) TextInRange(start, end Position) string {
	start, end = b.normalizeRange(start, end)
	if start.Row == end.Row {
		r := []rune(b.lines[start.Row])
		return string(r[start.Col:end.Col])
	}
	var sb strings.Builder
	_, first := splitAt(b.lines[start.Row], start.Col)
	sb.WriteString(first)
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[row])
	}
	last, _ := splitAt(b.lines[end.Row], end.Col)
	sb.WriteByte('\n')
	sb.WriteString(last)
	return sb.String()
}

// ReplaceRange replaces the text between start and end with text and
// leaves the cursor just past the inserted text.
func (b *Buffer) ReplaceRange(start, end Position, text string) {
	start, end = b.normalizeRange(start, end)
	text = normalizeNewlines(text)
	if start == end && text == "" {
		return
	}
	lines, last := b.spliceLines(start, end, text)
	b.replace("replace", start.Row, end.Row-start.Row+1, lines, last)
}

// deleteSpan removes the ordered range [start, end) and places the cursor
// at after. It returns the removed text.
func (b *Buffer) deleteSpan(name string, start, end, after Position) string {
	if start == end {
		return ""
	}
	removed := b.TextInRange(start, end)
	lines, _ := b.spliceLines(start, end, "")
	b.replace(name, start.Row, end.Row-start.Row+1, lines, after)
	return removed
}

// DeleteRange deletes the text between start and end (end exclusive),
// stores it in the active register as charwise text and moves the cursor
// to the start of the range. It returns the deleted text.
func (b *Buffer) DeleteRange(start, end Position) string {
	start, end = b.normalizeRange(start, end)
	removed := b.deleteSpan("delete", start, end, start)
	if removed != "" {
		b.store(Register{Text: removed, Kind: Charwise})
	}
	return removed
}

// InsertText inserts text at the cursor and moves the cursor past it.
// Text may span several lines.
func (b *Buffer) InsertText(text string) {
	text = normalizeNewlines(text)
	if text == "" {
		return
	}
	lines, last := b.spliceLines(b.cursor, b.cursor, text)
	b.replace("insert", b.cursor.Row, 1, lines, last)
}

// InsertChar inserts r at the cursor and advances the column by one.
// A newline splits the line like InsertLineBreak.
func (b *Buffer) InsertChar(r rune) {
	if r == '\n' || r == '\r' {
		b.InsertLineBreak()
		return
	}
	b.InsertText(string(r))
}

// InsertLineBreak splits the current line at the cursor. The cursor moves
// to the start of the new line.
func (b *Buffer) InsertLineBreak() {
	lines, last := b.spliceLines(b.cursor, b.cursor, "\n")
	b.replace("line break", b.cursor.Row, 1, lines, last)
}

// DeleteChar deletes the character before the cursor (backspace). At the
// start of a line it joins the line onto the previous one. It is a no-op
// at the start of the buffer.
func (b *Buffer) DeleteChar() {
	c := b.cursor
	switch {
	case c.Col > 0:
		start := Position{Row: c.Row, Col: c.Col - 1}
		b.deleteSpan("backspace", start, c, start)
	case c.Row > 0:
		start := Position{Row: c.Row - 1, Col: b.LineLen(c.Row - 1)}
		b.deleteSpan("join", start, c, start)
	}
}

// DeleteCharAtCursor deletes the character under the cursor (vim x) and
// stores it in the active register. When the last character of the line is
// removed the cursor steps back onto the new last character.
func (b *Buffer) DeleteCharAtCursor() {
	c := b.cursor
	n := b.LineLen(c.Row)
	if c.Col >= n {
		return
	}
	after := c
	if after.Col >= n-1 && after.Col > 0 {
		after.Col = n - 2
	}
	removed := b.deleteSpan("delete char", c, Position{Row: c.Row, Col: c.Col + 1}, after)
	b.store(Register{Text: removed, Kind: Charwise})
}

// DeleteCharBeforeCursor deletes the character left of the cursor without
// joining lines (vim X) and stores it in the active register.
func (b *Buffer) DeleteCharBeforeCursor() {
	c := b.cursor
	if c.Col == 0 {
		return
	}
	start := Position{Row: c.Row, Col: c.Col - 1}
	removed := b.deleteSpan("delete char", start, c, start)
	b.store(Register{Text: removed, Kind: Charwise})
}

// DeleteWordBackward deletes from the start of the word before the cursor
// up to the cursor, skipping whitespace first (insert mode C-w). At the
// start of a line it joins like DeleteChar. Registers are untouched.
func (b *Buffer) DeleteWordBackward() {
	c := b.cursor
	if c.Col == 0 {
		b.DeleteChar()
		return
	}
	line := []rune(b.lines[c.Row])
	col := min(c.Col, len(line))
	for col > 0 && ClassOf(line[col-1]) == ClassSpace {
		col--
	}
	if col > 0 {
		class := ClassOf(line[col-1])
		for col > 0 && ClassOf(line[col-1]) == class {
			col--
		}
	}
	start := Position{Row: c.Row, Col: col}
	b.deleteSpan("delete word", start, c, start)
}

// ReplaceChars overwrites n characters from the cursor with r (vim r).
// It does nothing and returns false when fewer than n characters remain
// on the line. The cursor ends on the last replaced character. A newline
// replaces the characters with a single line break and moves the cursor
// to the start of the new line.
func (b *Buffer) ReplaceChars(r rune, n int) bool {
	n = max(n, 1)
	c := b.cursor
	line := []rune(b.lines[c.Row])
	if c.Col+n > len(line) {
		return false
	}
	if r == '\n' || r == '\r' {
		head, tail := string(line[:c.Col]), string(line[c.Col+n:])
		b.replace("replace", c.Row, 1, []string{head, tail}, Position{Row: c.Row + 1})
		return true
	}
	for i := range n {
		line[c.Col+i] = r
	}
	b.replace("replace", c.Row, 1, []string{string(line)}, Position{Row: c.Row, Col: c.Col + n - 1})
	return true
}

// DeleteLine removes the current line. See DeleteLines.
func (b *Buffer) DeleteLine() {
	b.DeleteLines(1)
}

// DeleteLines removes count lines starting at the cursor row and stores
// them in the active register as linewise text. Deleting every line
// leaves a single empty line. The cursor row is clamped into the remaining
// range and the column reset to zero.
func (b *Buffer) DeleteLines(count int) {
	b.DeleteRows(b.cursor.Row, count)
}

// DeleteRows is DeleteLines for the count lines starting at row.
func (b *Buffer) DeleteRows(row, count int) {
	row, count = b.clampRows(row, count)
	b.store(Register{Text: joinLinewise(b.lines[row : row+count]), Kind: Linewise})

	if count == len(b.lines) {
		b.replace("delete lines", 0, count, []string{""}, Position{})
		return
	}
	after := Position{Row: min(row, len(b.lines)-count-1)}
	b.replace("delete lines", row, count, nil, after)
}

// ChangeLines replaces count lines at the cursor row with one line holding
// only the first line's indentation, storing the old lines linewise. The
// cursor ends after the indentation, ready for insert.
func (b *Buffer) ChangeLines(count int) {
	b.ChangeRows(b.cursor.Row, count)
}

// ChangeRows is ChangeLines for the count lines starting at row.
func (b *Buffer) ChangeRows(row, count int) {
	row, count = b.clampRows(row, count)
	b.store(Register{Text: joinLinewise(b.lines[row : row+count]), Kind: Linewise})

	indent := leadingWhitespace(b.lines[row])
	after := Position{Row: row, Col: utf8.RuneCountInString(indent)}
	b.replace("change lines", row, count, []string{indent}, after)
}

// DeleteToEndOfLine deletes from the cursor to the end of the line (vim D)
// and stores the text in the active register.
func (b *Buffer) DeleteToEndOfLine() {
	c := b.cursor
	n := b.LineLen(c.Row)
	if c.Col >= n {
		return
	}
	after := Position{Row: c.Row, Col: max(c.Col-1, 0)}
	removed := b.deleteSpan("delete to end", c, Position{Row: c.Row, Col: n}, after)
	b.store(Register{Text: removed, Kind: Charwise})
}

// JoinLines joins the next line onto the current one (vim J). Leading
// whitespace of the next line is replaced by a single space, which is
// omitted when either side is empty. The cursor moves to the join point.
func (b *Buffer) JoinLines() {
	row := b.cursor.Row
	if row+1 >= len(b.lines) {
		return
	}
	cur := b.lines[row]
	next := strings.TrimLeft(b.lines[row+1], " \t")
	sep := " "
	if next == "" || cur == "" || strings.HasSuffix(cur, " ") || strings.HasPrefix(next, ")") {
		sep = ""
	}
	after := Position{Row: row, Col: utf8.RuneCountInString(cur)}
	b.replace("join", row, 2, []string{cur + sep + next}, after)
}

// OpenLineBelow inserts an empty line below the cursor and moves onto it.
func (b *Buffer) OpenLineBelow() {
	row := b.cursor.Row + 1
	b.replace("open line", row, 0, []string{""}, Position{Row: row})
}

// OpenLineAbove inserts an empty line above the cursor and moves onto it.
func (b *Buffer) OpenLineAbove() {
	row := b.cursor.Row
	b.replace("open line", row, 0, []string{""}, Position{Row: row})
}

// IndentLine indents the current line by one shift width.
func (b *Buffer) IndentLine() {
	b.IndentLines(b.cursor.Row, 1)
}

// UnindentLine removes up to one shift width of indentation from the
// current line.
func (b *Buffer) UnindentLine() {
	b.UnindentLines(b.cursor.Row, 1)
}

// IndentLines indents count lines starting at row. Empty lines are left
// alone. The cursor moves to the first non-blank of row.
func (b *Buffer) IndentLines(row, count int) {
	row, count = b.clampRows(row, count)
	pad := strings.Repeat(" ", b.shiftWidth)
	lines := make([]string, count)
	for i := range lines {
		line := b.lines[row+i]
		if line != "" {
			line = pad + line
		}
		lines[i] = line
	}
	b.replace("indent", row, count, lines, Position{Row: row, Col: firstNonBlank(lines[0])})
}

// UnindentLines removes up to one shift width of leading spaces, or one
// leading tab, from count lines starting at row. Nothing is recorded when
// no line had indentation to remove.
func (b *Buffer) UnindentLines(row, count int) {
	row, count = b.clampRows(row, count)
	lines := make([]string, count)
	changed := false
	for i := range lines {
		line := b.lines[row+i]
		trimmed := line
		if strings.HasPrefix(line, "\t") {
			trimmed = line[1:]
		} else {
			n := 0
			for n < b.shiftWidth && n < len(line) && line[n] == ' ' {
				n++
			}
			trimmed = line[n:]
		}
		changed = changed || trimmed != line
		lines[i] = trimmed
	}
	if !changed {
		return
	}
	b.replace("unindent", row, count, lines, Position{Row: row, Col: firstNonBlank(lines[0])})
}

// ToggleCaseRange swaps the case of every letter in [start, end) and moves
// the cursor to the start of the range.
func (b *Buffer) ToggleCaseRange(start, end Position) {
	start, end = b.normalizeRange(start, end)
	text := b.TextInRange(start, end)
	toggled := toggleCase(text)
	if toggled == text {
		return
	}
	lines, _ := b.spliceLines(start, end, toggled)
	b.replace("toggle case", start.Row, end.Row-start.Row+1, lines, start)
}

// ToggleCaseLines swaps the case of count whole lines starting at row.
func (b *Buffer) ToggleCaseLines(row, count int) {
	row, count = b.clampRows(row, count)
	end := row + count - 1
	b.ToggleCaseRange(Position{Row: row}, Position{Row: end, Col: b.LineLen(end)})
}

func (b *Buffer) clampRows(row, count int) (int, int) {
	row = max(0, min(row, len(b.lines)-1))
	count = max(1, min(count, len(b.lines)-row))
	return row, count
}

func toggleCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func joinLinewise(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// firstNonBlank returns the rune column of the first non-blank character,
// or the line length for a blank line.
func firstNonBlank(s string) int {
	return utf8.RuneCountInString(leadingWhitespace(s))
}
