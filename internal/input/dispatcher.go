package input

import (
	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/input/key"
)

// Dispatcher handles one key event against the editor.
type Dispatcher interface {
	HandleKey(ed *editor.Editor, ev key.Event) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ed *editor.Editor, ev key.Event) error

// HandleKey calls f.
func (f DispatcherFunc) HandleKey(ed *editor.Editor, ev key.Event) error {
	return f(ed, ev)
}

// MacroControl is implemented by the macro middleware. The Handler parses
// the q and @ prefixes and calls it; count is at least one.
type MacroControl interface {
	Recording() bool
	StartRecording(ed *editor.Editor, register rune) error
	StopRecording(ed *editor.Editor) error
	Play(ed *editor.Editor, register rune, count int) error
	PlayLast(ed *editor.Editor, count int) error
}
