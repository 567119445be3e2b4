package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/vfs"
)

const (
	defaultHistoryDepth = history.DefaultMaxEntries
	defaultShiftWidth   = 4
)

// Buffer owns one document's text, cursor, selection and undo history.
type Buffer struct {
	id   int
	path string

	lines  []string
	cursor Position

	// selection is stored unsorted; reads normalize it.
	selection *Selection

	registers *Registers
	// active is the register chosen with a "x prefix, consumed by the next
	// yank, delete or put. Zero means the unnamed register.
	active rune

	modified   bool
	revision   uint64
	lineEnding vfs.LineEnding

	history      *history.History
	historyDepth int
	shiftWidth   int
}

// New creates a buffer holding a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines:        []string{""},
		historyDepth: defaultHistoryDepth,
		shiftWidth:   defaultShiftWidth,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.registers == nil {
		b.registers = NewRegisters(nil)
	}
	b.history = history.New(b.historyDepth)
	return b
}

// NewFromString creates a buffer from text. Lines are split on "\n";
// "\r\n" is accepted and a single trailing newline does not produce an
// extra empty line.
func NewFromString(text string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = splitLines(text)
	return b
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// ID returns the buffer id.
func (b *Buffer) ID() int { return b.id }

// Path returns the associated file path, or "" for a scratch buffer.
func (b *Buffer) Path() string { return b.path }

// LineCount returns the number of lines, always at least one.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i, or "" when i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// Text returns the content joined with "\n".
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// LineLen returns the rune length of line i, or 0 when out of range.
func (b *Buffer) LineLen(i int) int {
	return utf8.RuneCountInString(b.Line(i))
}

// CharCount returns the number of runes in the document, excluding line
// separators.
func (b *Buffer) CharCount() int {
	n := 0
	for _, l := range b.lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// Cursor returns the caret position.
func (b *Buffer) Cursor() Position { return b.cursor }

// Modified reports whether the buffer changed since it was loaded or saved.
func (b *Buffer) Modified() bool { return b.modified }

// SetModified overrides the modified flag.
func (b *Buffer) SetModified(m bool) { b.modified = m }

// Revision increases on every text change, including undo and redo.
func (b *Buffer) Revision() uint64 { return b.revision }

// ShiftWidth returns the indent width.
func (b *Buffer) ShiftWidth() int { return b.shiftWidth }

// SetShiftWidth changes the indent width; non-positive values are ignored.
func (b *Buffer) SetShiftWidth(n int) {
	if n > 0 {
		b.shiftWidth = n
	}
}

// SetHistoryDepth changes the undo depth, discarding the oldest steps if
// the stack is already deeper.
func (b *Buffer) SetHistoryDepth(n int) {
	b.history.SetMaxEntries(n)
}

// CanUndo reports whether Undo would do anything.
func (b *Buffer) CanUndo() bool { return b.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (b *Buffer) CanRedo() bool { return b.history.CanRedo() }

// UndoCount returns the number of undo steps held.
func (b *Buffer) UndoCount() int { return b.history.UndoCount() }

// Undo reverts the most recent committed change, restoring text and cursor.
// It returns false when there is nothing to undo.
func (b *Buffer) Undo() bool {
	if err := b.history.Undo(target{b}); err != nil {
		return false
	}
	b.selection = nil
	b.modified = true
	return true
}

// Redo reapplies the most recently undone change. It returns false when
// there is nothing to redo.
func (b *Buffer) Redo() bool {
	if err := b.history.Redo(target{b}); err != nil {
		return false
	}
	b.selection = nil
	b.modified = true
	return true
}

// Group starts collecting changes into one undo step named name. The
// step commits when the returned scope ends:
//
//	defer b.Group("join").End()
func (b *Buffer) Group(name string) *history.GroupScope {
	return b.history.GroupScope(name)
}

// UndoName describes the step Undo would revert.
func (b *Buffer) UndoName() (string, bool) { return b.history.PeekUndo() }

// RedoName describes the step Redo would reapply.
func (b *Buffer) RedoName() (string, bool) { return b.history.PeekRedo() }

// clamp forces p into the cursor invariant.
func (b *Buffer) clamp(p Position) Position {
	p.Row = max(0, min(p.Row, len(b.lines)-1))
	p.Col = max(0, min(p.Col, b.LineLen(p.Row)))
	return p
}

// replace swaps n lines at row for lines, moves the cursor to after and
// records the change as one undo step.
func (b *Buffer) replace(name string, row, n int, lines []string, after Position) {
	edit := &history.LineEdit{
		Name:   name,
		Row:    row,
		Old:    slices.Clone(b.lines[row : row+n]),
		New:    lines,
		Before: b.cursor.cursor(),
		After:  after.cursor(),
	}
	edit.Execute(target{b})
	b.history.Push(edit)
	b.modified = true
}

// target adapts a Buffer to history.Target without widening Buffer's API.
type target struct{ b *Buffer }

func (t target) ReplaceLines(row, n int, lines []string) {
	t.b.lines = slices.Concat(t.b.lines[:row], lines, t.b.lines[row+n:])
	if len(t.b.lines) == 0 {
		t.b.lines = []string{""}
	}
	t.b.revision++
}

func (t target) SetCursor(c history.Cursor) {
	t.b.cursor = t.b.clamp(Position{Row: c.Row, Col: c.Col})
}

// splitAt splits s at rune column col, clamping col into range.
func splitAt(s string, col int) (string, string) {
	r := []rune(s)
	col = max(0, min(col, len(r)))
	return string(r[:col]), string(r[col:])
}
