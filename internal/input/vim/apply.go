package vim

import "github.com/dshills/modalcore/internal/engine/buffer"

// Apply runs op over r. Deleted and yanked text goes to the buffer's
// active register. OpChange removes the text and leaves the cursor where
// insertion should start; switching to insert mode is the caller's job.
func Apply(b *buffer.Buffer, op OperatorKind, r Range) {
	if r.Linewise {
		applyLines(b, op, r)
		return
	}
	switch op {
	case OpDelete, OpChange:
		b.DeleteRange(r.Start, r.End)
	case OpYank:
		b.YankRange(r.Start, r.End)
		b.MoveCursor(r.Start)
	case OpIndent:
		row, n := r.Rows()
		b.IndentLines(row, n)
	case OpUnindent:
		row, n := r.Rows()
		b.UnindentLines(row, n)
	case OpToggleCase:
		b.ToggleCaseRange(r.Start, r.End)
	}
}

func applyLines(b *buffer.Buffer, op OperatorKind, r Range) {
	row, n := r.Rows()
	switch op {
	case OpDelete:
		b.DeleteRows(row, n)
	case OpChange:
		b.ChangeRows(row, n)
	case OpYank:
		b.YankRows(row, n)
		b.MoveCursor(buffer.Position{Row: row, Col: b.Cursor().Col})
	case OpIndent:
		b.IndentLines(row, n)
	case OpUnindent:
		b.UnindentLines(row, n)
	case OpToggleCase:
		b.ToggleCaseLines(row, n)
	}
}
