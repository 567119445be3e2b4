// Package history provides bounded undo/redo for line-oriented buffers.
//
// Every committed mutation is recorded as a Command that can be replayed
// forward (Execute) or backward (Undo) against a Target. The built-in
// LineEdit replaces a contiguous span of lines and remembers the cursor on
// both sides of the edit, so undo and redo restore text and cursor exactly.
//
//	h := history.New(1000)
//	h.Push(&history.LineEdit{Row: 0, Old: []string{"a"}, New: []string{"ab"}})
//	h.Undo(target)
//
// Commands pushed between BeginGroup and EndGroup collapse into a single
// CompoundCommand, which is how counted commands like "3x" undo in one step.
// When the undo stack exceeds its depth the oldest entry is discarded.
package history
