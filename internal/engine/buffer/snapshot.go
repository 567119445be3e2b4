package buffer

import (
	"slices"
	"strings"
)

// Snapshot is an immutable copy of buffer content. It is safe to hand to
// other goroutines; later edits to the buffer do not affect it.
type Snapshot struct {
	ID       int
	Path     string
	Revision uint64
	Cursor   Position
	lines    []string
}

// Snapshot captures the current content.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{
		ID:       b.id,
		Path:     b.path,
		Revision: b.revision,
		Cursor:   b.cursor,
		lines:    slices.Clone(b.lines),
	}
}

// LineCount returns the number of lines.
func (s Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns line i, or "" when out of range.
func (s Snapshot) Line(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// Text returns the content joined with "\n".
func (s Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}
