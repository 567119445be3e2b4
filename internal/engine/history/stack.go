package history

import (
	"errors"
	"sync"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// History manages the undo and redo stacks for one buffer.
type History struct {
	mu sync.Mutex

	undoStack []Command
	redoStack []Command

	// Nested groups collapse into the outermost one.
	groupDepth int
	groupName  string
	groupCmds  []Command

	maxEntries int
}

// New creates a history holding at most maxEntries undo steps.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push records an already-applied command and clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth > 0 {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, cmd)
	h.redoStack = nil
	h.trimLocked()
}

func (h *History) trimLocked() {
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		// Drop references so discarded commands can be collected.
		clear(h.undoStack[:excess])
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent command against t.
func (h *History) Undo(t Target) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, cmd)
	h.mu.Unlock()

	cmd.Undo(t)
	return nil
}

// Redo reapplies the most recently undone command against t.
func (h *History) Redo(t Target) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, cmd)
	h.mu.Unlock()

	cmd.Execute(t)
	return nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns the description of the next undo step.
func (h *History) PeekUndo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return "", false
	}
	return h.undoStack[len(h.undoStack)-1].Description(), true
}

// PeekRedo returns the description of the next redo step.
func (h *History) PeekRedo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redoStack) == 0 {
		return "", false
	}
	return h.redoStack[len(h.redoStack)-1].Description(), true
}

// BeginGroup starts collecting pushed commands into one undo unit.
// Calls nest; only the outermost EndGroup commits.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth == 0 {
		h.groupName = name
		h.groupCmds = nil
	}
	h.groupDepth++
}

// EndGroup closes the current group. Empty groups leave no entry, and a
// group holding one command is stored as that command.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groupDepth == 0 {
		return
	}
	h.groupDepth--
	if h.groupDepth > 0 {
		return
	}

	cmds := h.groupCmds
	h.groupCmds = nil
	switch len(cmds) {
	case 0:
	case 1:
		h.pushLocked(cmds[0])
	default:
		h.pushLocked(&CompoundCommand{Name: h.groupName, Commands: cmds})
	}
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.groupDepth > 0
}

// Clear drops all undo and redo state.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.groupDepth = 0
	h.groupCmds = nil
}

// SetMaxEntries changes the undo depth, discarding the oldest entries
// when the stack is already deeper.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = n
	h.trimLocked()
}

// MaxEntries returns the undo depth.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
