package history

import (
	"errors"
	"slices"
	"testing"
)

type fakeTarget struct {
	lines  []string
	cursor Cursor
}

func (f *fakeTarget) ReplaceLines(row, n int, lines []string) {
	f.lines = slices.Concat(f.lines[:row:row], lines, f.lines[row+n:])
}

func (f *fakeTarget) SetCursor(c Cursor) { f.cursor = c }

// apply executes cmd against f and records it in h, the way a buffer does.
func apply(h *History, f *fakeTarget, cmd Command) {
	cmd.Execute(f)
	h.Push(cmd)
}

func TestUndoRedoRestoresLinesAndCursor(t *testing.T) {
	f := &fakeTarget{lines: []string{"hello"}}
	h := New(10)

	apply(h, f, &LineEdit{
		Row: 0, Old: []string{"hello"}, New: []string{"he", "llo"},
		Before: Cursor{0, 2}, After: Cursor{1, 0},
	})
	if !slices.Equal(f.lines, []string{"he", "llo"}) || f.cursor != (Cursor{1, 0}) {
		t.Fatalf("after execute: %q %v", f.lines, f.cursor)
	}

	if err := h.Undo(f); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !slices.Equal(f.lines, []string{"hello"}) || f.cursor != (Cursor{0, 2}) {
		t.Errorf("after undo: %q %v", f.lines, f.cursor)
	}

	if err := h.Redo(f); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if !slices.Equal(f.lines, []string{"he", "llo"}) || f.cursor != (Cursor{1, 0}) {
		t.Errorf("after redo: %q %v", f.lines, f.cursor)
	}
}

func TestEmptyStacks(t *testing.T) {
	h := New(0)
	f := &fakeTarget{lines: []string{""}}
	if err := h.Undo(f); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo error = %v", err)
	}
	if err := h.Redo(f); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo error = %v", err)
	}
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries = %d", h.MaxEntries())
	}
}

func TestPushClearsRedo(t *testing.T) {
	f := &fakeTarget{lines: []string{"a"}}
	h := New(10)
	apply(h, f, &LineEdit{Row: 0, Old: []string{"a"}, New: []string{"ab"}})
	_ = h.Undo(f)
	if !h.CanRedo() {
		t.Fatal("expected redo available")
	}
	apply(h, f, &LineEdit{Row: 0, Old: []string{"a"}, New: []string{"ac"}})
	if h.CanRedo() {
		t.Error("push should clear redo")
	}
}

func TestMaxEntriesDropsOldest(t *testing.T) {
	f := &fakeTarget{lines: []string{""}}
	h := New(3)
	for i := 0; i < 5; i++ {
		prev := f.lines[0]
		apply(h, f, &LineEdit{Row: 0, Old: []string{prev}, New: []string{prev + "x"}})
	}
	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", h.UndoCount())
	}
	for h.CanUndo() {
		_ = h.Undo(f)
	}
	if f.lines[0] != "xx" {
		t.Errorf("oldest two edits should be unrecoverable, got %q", f.lines[0])
	}

	h.SetMaxEntries(1)
	if h.UndoCount() != 0 || h.RedoCount() != 3 {
		t.Errorf("counts = %d/%d", h.UndoCount(), h.RedoCount())
	}
}

func TestGroupUndoesAsOneUnit(t *testing.T) {
	f := &fakeTarget{lines: []string{"abc"}}
	h := New(10)

	h.BeginGroup("3x")
	h.BeginGroup("inner")
	apply(h, f, &LineEdit{Row: 0, Old: []string{"abc"}, New: []string{"bc"}, Before: Cursor{0, 0}, After: Cursor{0, 0}})
	h.EndGroup()
	if h.UndoCount() != 0 {
		t.Fatal("nested EndGroup must not commit")
	}
	apply(h, f, &LineEdit{Row: 0, Old: []string{"bc"}, New: []string{"c"}, Before: Cursor{0, 0}, After: Cursor{0, 0}})
	h.EndGroup()

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", h.UndoCount())
	}
	if desc, _ := h.PeekUndo(); desc != "3x" {
		t.Errorf("PeekUndo = %q", desc)
	}
	_ = h.Undo(f)
	if f.lines[0] != "abc" {
		t.Errorf("after undo = %q", f.lines[0])
	}
	_ = h.Redo(f)
	if f.lines[0] != "c" {
		t.Errorf("after redo = %q", f.lines[0])
	}
}

func TestGroupEdgeCases(t *testing.T) {
	f := &fakeTarget{lines: []string{"a"}}
	h := New(10)

	h.GroupScope("empty").End()
	if h.UndoCount() != 0 {
		t.Error("empty group must not push")
	}

	g := h.GroupScope("single")
	apply(h, f, &LineEdit{Name: "append", Row: 0, Old: []string{"a"}, New: []string{"ab"}})
	g.End()
	g.End()
	if desc, _ := h.PeekUndo(); desc != "append" {
		t.Errorf("single-command group should store the command itself, got %q", desc)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, repeated End must not commit twice", h.UndoCount())
	}

	if _, ok := h.PeekRedo(); ok {
		t.Error("PeekRedo before any undo")
	}
	_ = h.Undo(f)
	if desc, ok := h.PeekRedo(); !ok || desc != "append" {
		t.Errorf("PeekRedo = %q, %v", desc, ok)
	}
	if _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo on empty stack")
	}

	h.EndGroup()
	if h.IsGrouping() {
		t.Error("stray EndGroup should be ignored")
	}
}

func TestLineEditDescription(t *testing.T) {
	e := &LineEdit{Row: 2, Old: []string{"a"}, New: []string{"a", "b", "c"}}
	if got := e.Description(); got != "edit lines 2-4" {
		t.Errorf("Description = %q", got)
	}
}
