package keymap

import "github.com/dshills/modalcore/internal/input/key"

// ActionNop unbinds a key when used in a user keymap.
const ActionNop = "nop"

// Binding maps a key sequence such as "gg" or "<C-r>" to an action name
// such as "cursor.bufferStart". Description and Category are only used
// for help output.
type Binding struct {
	Keys        string
	Action      string
	Description string
	Category    string
}

// NewBinding returns a binding of keys to action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// ParsedBinding is a Binding with its key sequence already parsed.
type ParsedBinding struct {
	Binding
	Sequence []key.Event
}
