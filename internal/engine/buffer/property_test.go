package buffer

import (
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func drawBuffer(t *rapid.T) *Buffer {
	lines := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9 .]{0,12}`), 1, 6).Draw(t, "lines")
	b := NewFromString(strings.Join(lines, "\n") + "\n")
	b.MoveCursor(Position{
		Row: rapid.IntRange(0, 8).Draw(t, "row"),
		Col: rapid.IntRange(0, 14).Draw(t, "col"),
	})
	return b
}

func checkInvariant(t *rapid.T, b *Buffer) {
	c := b.Cursor()
	if b.LineCount() < 1 {
		t.Fatalf("buffer has no lines")
	}
	if c.Row < 0 || c.Row >= b.LineCount() || c.Col < 0 || c.Col > b.LineLen(c.Row) {
		t.Fatalf("cursor %v out of bounds for %q", c, b.Lines())
	}
}

type mutation struct {
	name string
	fn   func(*Buffer)
}

var mutations = []mutation{
	{"InsertChar", func(b *Buffer) { b.InsertChar('x') }},
	{"DeleteChar", (*Buffer).DeleteChar},
	{"DeleteCharAtCursor", (*Buffer).DeleteCharAtCursor},
	{"DeleteCharBeforeCursor", (*Buffer).DeleteCharBeforeCursor},
	{"InsertLineBreak", (*Buffer).InsertLineBreak},
	{"DeleteLine", (*Buffer).DeleteLine},
	{"JoinLines", (*Buffer).JoinLines},
	{"IndentLine", (*Buffer).IndentLine},
	{"DeleteToEndOfLine", (*Buffer).DeleteToEndOfLine},
	{"PutAfter", func(b *Buffer) {
		b.SetClipboard(Register{Text: "p\nq\n"})
		b.PutAfter()
	}},
	{"PutBeforeLines", func(b *Buffer) {
		b.SetClipboard(Register{Text: "l\n", Kind: Linewise})
		b.PutBefore()
	}},
}

func TestPropertyContentConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBuffer(t)
		want := b.CharCount()
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for range steps {
			c := b.Cursor()
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				b.InsertChar(rapid.RuneFrom([]rune("abcXYZ019 ")).Draw(t, "r"))
				want++
			case 1:
				if c.Col > 0 {
					want--
				}
				b.DeleteChar()
			case 2:
				if c.Col < b.LineLen(c.Row) {
					want--
				}
				b.DeleteCharAtCursor()
			case 3:
				b.MoveCursor(Position{
					Row: rapid.IntRange(0, 8).Draw(t, "row"),
					Col: rapid.IntRange(0, 14).Draw(t, "col"),
				})
			}
			checkInvariant(t, b)
			if got := b.CharCount(); got != want {
				t.Fatalf("char count = %d, want %d", got, want)
			}
		}
	})
}

func TestPropertyUndoRedoRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBuffer(t)
		m := rapid.SampledFrom(mutations).Draw(t, "mutation")

		beforeLines, beforeCursor := b.Lines(), b.Cursor()
		depth := b.UndoCount()
		m.fn(b)
		checkInvariant(t, b)
		if b.UndoCount() == depth {
			return
		}
		afterLines, afterCursor := b.Lines(), b.Cursor()

		if !b.Undo() {
			t.Fatalf("%s: undo failed", m.name)
		}
		if !slices.Equal(b.Lines(), beforeLines) || b.Cursor() != beforeCursor {
			t.Fatalf("%s: undo gave %q %v, want %q %v", m.name, b.Lines(), b.Cursor(), beforeLines, beforeCursor)
		}
		if !b.Redo() {
			t.Fatalf("%s: redo failed", m.name)
		}
		if !slices.Equal(b.Lines(), afterLines) || b.Cursor() != afterCursor {
			t.Fatalf("%s: redo gave %q %v, want %q %v", m.name, b.Lines(), b.Cursor(), afterLines, afterCursor)
		}
	})
}

func TestPropertyUndoWithinDepth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		depth := rapid.IntRange(1, 8).Draw(t, "depth")
		b := NewFromString("seed line\nsecond", WithHistoryDepth(depth))
		type state struct {
			lines  []string
			cursor Position
		}
		var states []state
		for range depth {
			states = append(states, state{b.Lines(), b.Cursor()})
			b.InsertChar(rapid.RuneFrom([]rune("abc\n")).Draw(t, "r"))
		}
		for i := depth - 1; i >= 0; i-- {
			if !b.Undo() {
				t.Fatalf("undo %d failed", i)
			}
			if !slices.Equal(b.Lines(), states[i].lines) || b.Cursor() != states[i].cursor {
				t.Fatalf("undo %d: got %q %v", i, b.Lines(), b.Cursor())
			}
		}
		if b.Undo() {
			t.Fatal("history should be exhausted")
		}
	})
}

func TestPropertyPutNeverFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBuffer(t)
		text := rapid.StringMatching(`[ab\n]{0,8}`).Draw(t, "text")
		kind := rapid.SampledFrom([]RegisterKind{Charwise, Linewise, Blockwise}).Draw(t, "kind")
		b.SetClipboard(Register{Text: text, Kind: kind})
		before := b.LineCount()

		if rapid.Bool().Draw(t, "before") {
			b.PutBefore()
		} else {
			b.PutAfter()
		}
		checkInvariant(t, b)

		if kind == Charwise && strings.Contains(text, "\n") {
			if got := b.Cursor().Col; got != 0 {
				t.Fatalf("multi-line put left cursor at column %d", got)
			}
			if want := before + strings.Count(text, "\n"); b.LineCount() != want {
				t.Fatalf("line count = %d, want %d", b.LineCount(), want)
			}
		}
	})
}

func TestPropertySelectionRangeOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBuffer(t)
		switch rapid.IntRange(0, 2).Draw(t, "kind") {
		case 0:
			b.StartVisualSelection()
		case 1:
			b.StartVisualLineSelection()
		default:
			b.StartVisualBlockSelection()
		}
		b.UpdateVisualSelection(Position{
			Row: rapid.IntRange(-2, 8).Draw(t, "row"),
			Col: rapid.IntRange(-2, 14).Draw(t, "col"),
		})
		start, end, ok := b.SelectionRange()
		if !ok {
			t.Fatal("selection missing")
		}
		if end.Before(start) {
			t.Fatalf("range %v-%v is not ordered", start, end)
		}
	})
}

func TestPropertySelectionClearedAfterYankOrDelete(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBuffer(t)
		b.startSelection(rapid.SampledFrom([]SelectionKind{SelectCharacter, SelectLine, SelectBlock}).Draw(t, "kind"))
		b.UpdateVisualSelection(Position{
			Row: rapid.IntRange(0, 8).Draw(t, "row"),
			Col: rapid.IntRange(0, 14).Draw(t, "col"),
		})
		if rapid.Bool().Draw(t, "delete") {
			b.DeleteSelection()
		} else {
			b.YankSelection()
		}
		if b.HasSelection() {
			t.Fatal("selection survived")
		}
		checkInvariant(t, b)
	})
}
