package history

import (
	"fmt"
	"strings"
)

// Cursor is a (row, column) caret position recorded with an edit.
type Cursor struct {
	Row int
	Col int
}

// Target is the state a command operates on.
type Target interface {
	// ReplaceLines removes n lines starting at row and inserts lines there.
	ReplaceLines(row, n int, lines []string)

	// SetCursor places the caret without clamping.
	SetCursor(c Cursor)
}

// Command is a reversible edit.
type Command interface {
	Execute(t Target)
	Undo(t Target)
	Description() string
}

// LineEdit replaces Old with New starting at Row.
type LineEdit struct {
	Name   string
	Row    int
	Old    []string
	New    []string
	Before Cursor
	After  Cursor
}

// Execute applies the edit and moves the cursor to After.
func (e *LineEdit) Execute(t Target) {
	t.ReplaceLines(e.Row, len(e.Old), cloneLines(e.New))
	t.SetCursor(e.After)
}

// Undo reverts the edit and moves the cursor back to Before.
func (e *LineEdit) Undo(t Target) {
	t.ReplaceLines(e.Row, len(e.New), cloneLines(e.Old))
	t.SetCursor(e.Before)
}

// Description returns the edit name or a summary of the affected rows.
func (e *LineEdit) Description() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("edit lines %d-%d", e.Row, e.Row+max(len(e.Old), len(e.New))-1)
}

// CompoundCommand runs several commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// Execute runs the commands in order.
func (c *CompoundCommand) Execute(t Target) {
	for _, cmd := range c.Commands {
		cmd.Execute(t)
	}
}

// Undo reverts the commands in reverse order.
func (c *CompoundCommand) Undo(t Target) {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		c.Commands[i].Undo(t)
	}
}

// Description returns the group name, or the joined child descriptions.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	parts := make([]string, len(c.Commands))
	for i, cmd := range c.Commands {
		parts[i] = cmd.Description()
	}
	return strings.Join(parts, "; ")
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
