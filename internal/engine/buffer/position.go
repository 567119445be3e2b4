package buffer

import (
	"fmt"

	"github.com/dshills/modalcore/internal/engine/history"
)

// Position is a caret location. Col counts runes from the start of the line.
type Position struct {
	Row int
	Col int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other,
// ordering by row and then column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Row < other.Row:
		return -1
	case p.Row > other.Row:
		return 1
	case p.Col < other.Col:
		return -1
	case p.Col > other.Col:
		return 1
	}
	return 0
}

// Before reports whether p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After reports whether p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Ordered returns a and b sorted by (row, column).
func Ordered(a, b Position) (start, end Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

func (p Position) cursor() history.Cursor {
	return history.Cursor{Row: p.Row, Col: p.Col}
}
