package buffer

import (
	"strings"
	"unicode/utf8"
)

// SelectionKind is the shape of a visual selection.
type SelectionKind uint8

const (
	SelectCharacter SelectionKind = iota
	SelectLine
	SelectBlock
)

// String returns the selection kind name.
func (k SelectionKind) String() string {
	switch k {
	case SelectLine:
		return "line"
	case SelectBlock:
		return "block"
	}
	return "character"
}

// Selection is a visual selection. Anchor is where it started and Active
// follows the cursor; the two are not kept in order.
type Selection struct {
	Anchor Position
	Active Position
	Kind   SelectionKind
}

// Range returns the endpoints ordered by (row, column).
func (s Selection) Range() (start, end Position) {
	return Ordered(s.Anchor, s.Active)
}

// Selection returns the current selection, if any.
func (b *Buffer) Selection() (Selection, bool) {
	if b.selection == nil {
		return Selection{}, false
	}
	return *b.selection, true
}

// HasSelection reports whether a selection is active.
func (b *Buffer) HasSelection() bool {
	return b.selection != nil
}

// StartVisualSelection anchors a character selection at the cursor.
func (b *Buffer) StartVisualSelection() {
	b.startSelection(SelectCharacter)
}

// StartVisualLineSelection anchors a line selection at the cursor.
func (b *Buffer) StartVisualLineSelection() {
	b.startSelection(SelectLine)
}

// StartVisualBlockSelection anchors a block selection at the cursor.
func (b *Buffer) StartVisualBlockSelection() {
	b.startSelection(SelectBlock)
}

func (b *Buffer) startSelection(kind SelectionKind) {
	b.selection = &Selection{Anchor: b.cursor, Active: b.cursor, Kind: kind}
}

// SetVisualSelection replaces the selection with one spanning anchor to
// active and moves the cursor to active.
func (b *Buffer) SetVisualSelection(anchor, active Position, kind SelectionKind) {
	b.MoveCursor(active)
	b.selection = &Selection{Anchor: b.clamp(anchor), Active: b.cursor, Kind: kind}
}

// SetSelectionKind reshapes the current selection, keeping both endpoints.
func (b *Buffer) SetSelectionKind(kind SelectionKind) {
	if b.selection != nil {
		b.selection.Kind = kind
	}
}

// UpdateVisualSelection moves the active endpoint, and the cursor, to pos.
// The anchor and kind are unchanged. Without a selection only the cursor
// moves.
func (b *Buffer) UpdateVisualSelection(pos Position) {
	b.MoveCursor(pos)
	if b.selection != nil {
		b.selection.Active = b.cursor
	}
}

// ClearVisualSelection drops the selection without touching text or
// registers.
func (b *Buffer) ClearVisualSelection() {
	b.selection = nil
}

// IncludeSelectionEnd extends a character selection by one column at its
// far end so the character under it is covered, matching how visual mode
// displays the cursor. It does not cross line ends.
func (b *Buffer) IncludeSelectionEnd() {
	s := b.selection
	if s == nil || s.Kind != SelectCharacter {
		return
	}
	end := &s.Active
	if s.Active.Before(s.Anchor) {
		end = &s.Anchor
	}
	if end.Col < b.LineLen(end.Row) {
		end.Col++
	}
}

// SelectionRange returns the selection endpoints ordered by (row, column).
// Line selections widen to whole lines: from column 0 of the first line
// to the end of the last. Block selections return the top-left and
// bottom-right corners. ok is false without a selection.
func (b *Buffer) SelectionRange() (start, end Position, ok bool) {
	if b.selection == nil {
		return Position{}, Position{}, false
	}
	s := *b.selection
	start, end = s.Range()
	start, end = b.clamp(start), b.clamp(end)
	switch s.Kind {
	case SelectLine:
		start = Position{Row: start.Row}
		end = Position{Row: end.Row, Col: b.LineLen(end.Row)}
	case SelectBlock:
		left := b.clamp(s.Anchor).Col
		right := b.clamp(s.Active).Col
		start.Col, end.Col = min(left, right), max(left, right)
	}
	return start, end, true
}

// SelectedText returns the selected text. Character selections exclude the
// end column. Line selections return the full lines joined by "\n". Block
// selections return one row of the rectangle per line, right column
// included.
func (b *Buffer) SelectedText() string {
	start, end, ok := b.SelectionRange()
	if !ok {
		return ""
	}
	switch b.selection.Kind {
	case SelectLine:
		return strings.Join(b.lines[start.Row:end.Row+1], "\n")
	case SelectBlock:
		return strings.Join(b.blockRows(start, end), "\n")
	}
	return b.TextInRange(start, end)
}

func (b *Buffer) blockRows(start, end Position) []string {
	rows := make([]string, 0, end.Row-start.Row+1)
	for row := start.Row; row <= end.Row; row++ {
		r := []rune(b.lines[row])
		left := min(start.Col, len(r))
		right := min(end.Col+1, len(r))
		rows = append(rows, string(r[left:right]))
	}
	return rows
}

// selectionRegister returns the selection as register content.
func (b *Buffer) selectionRegister() Register {
	switch b.selection.Kind {
	case SelectLine:
		return Register{Text: b.SelectedText() + "\n", Kind: Linewise}
	case SelectBlock:
		return Register{Text: b.SelectedText(), Kind: Blockwise}
	}
	return Register{Text: b.SelectedText(), Kind: Charwise}
}

// YankSelection copies the selection into the active register, moves the
// cursor to the start of the selection and clears it.
func (b *Buffer) YankSelection() {
	start, _, ok := b.SelectionRange()
	if !ok {
		return
	}
	defer b.ClearVisualSelection()

	r := b.selectionRegister()
	if r.IsEmpty() {
		b.active = 0
	} else {
		b.store(r)
	}
	if b.selection.Kind == SelectLine {
		b.MoveCursor(Position{Row: start.Row, Col: b.cursor.Col})
		return
	}
	b.MoveCursor(start)
}

// DeleteSelection removes the selected text into the active register and
// clears the selection.
func (b *Buffer) DeleteSelection() {
	b.removeSelection(false)
}

// ChangeSelection is DeleteSelection except that a line selection leaves
// one empty line (keeping the first line's indentation) to type into.
func (b *Buffer) ChangeSelection() {
	b.removeSelection(true)
}

func (b *Buffer) removeSelection(change bool) {
	start, end, ok := b.SelectionRange()
	if !ok {
		return
	}
	defer b.ClearVisualSelection()

	switch b.selection.Kind {
	case SelectLine:
		if change {
			b.ChangeRows(start.Row, end.Row-start.Row+1)
		} else {
			b.DeleteRows(start.Row, end.Row-start.Row+1)
		}
	case SelectBlock:
		r := b.selectionRegister()
		lines := make([]string, 0, end.Row-start.Row+1)
		for row := start.Row; row <= end.Row; row++ {
			rs := []rune(b.lines[row])
			left := min(start.Col, len(rs))
			right := min(end.Col+1, len(rs))
			lines = append(lines, string(rs[:left])+string(rs[right:]))
		}
		b.replace("delete block", start.Row, len(lines), lines, b.clampTo(lines[0], start))
		b.store(r)
	default:
		b.DeleteRange(start, end)
	}
}

// clampTo clamps p's column against line, which is about to become row
// p.Row.
func (b *Buffer) clampTo(line string, p Position) Position {
	p.Col = min(p.Col, utf8.RuneCountInString(line))
	return p
}

// IndentSelection indents every line the selection touches, then clears it.
func (b *Buffer) IndentSelection() {
	if start, end, ok := b.SelectionRange(); ok {
		b.IndentLines(start.Row, end.Row-start.Row+1)
		b.ClearVisualSelection()
	}
}

// UnindentSelection unindents every line the selection touches, then
// clears it.
func (b *Buffer) UnindentSelection() {
	if start, end, ok := b.SelectionRange(); ok {
		b.UnindentLines(start.Row, end.Row-start.Row+1)
		b.ClearVisualSelection()
	}
}

// ToggleCaseSelection swaps letter case inside the selection, then clears
// it.
func (b *Buffer) ToggleCaseSelection() {
	start, end, ok := b.SelectionRange()
	if !ok {
		return
	}
	defer b.ClearVisualSelection()

	switch b.selection.Kind {
	case SelectLine:
		b.ToggleCaseLines(start.Row, end.Row-start.Row+1)
	case SelectBlock:
		rows := b.blockRows(start, end)
		lines := make([]string, len(rows))
		for i, text := range rows {
			row := start.Row + i
			rs := []rune(b.lines[row])
			left := min(start.Col, len(rs))
			lines[i] = string(rs[:left]) + toggleCase(text) + string(rs[left+utf8.RuneCountInString(text):])
		}
		b.replace("toggle case", start.Row, len(lines), lines, start)
	default:
		b.ToggleCaseRange(start, end)
	}
}
