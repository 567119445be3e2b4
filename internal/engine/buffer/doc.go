// Package buffer provides the line-oriented text buffer at the center of
// the editor: document text, cursor, visual selection, yank registers and
// bounded undo/redo history.
//
// Text is stored as a slice of lines without separators. A buffer always
// holds at least one line; an empty document is a single empty line.
// Columns are measured in runes, not bytes.
//
// Every operation is total. Out-of-range positions are clamped instead of
// rejected, and operations whose precondition does not hold (deleting
// before the first character, moving below the last line) are no-ops.
// The cursor invariant
//
//	0 <= Row < LineCount()  and  0 <= Col <= len(Line(Row))
//
// holds after every call; Col == len is the end-of-line caret.
//
// Each mutating operation records exactly one undo step (see the history
// package) that restores both the text and the cursor. Counted commands
// wrap several operations in a Group scope to undo as one step.
//
//	buf := buffer.NewFromString("hello")
//	buf.MoveCursor(buffer.Position{Row: 0, Col: 1})
//	buf.DeleteChar()  // "ello"
//	buf.Undo()        // "hello", cursor back at (0, 1)
//
// A Buffer is not safe for concurrent use. Collaborators running on other
// goroutines read an immutable Snapshot instead.
package buffer
