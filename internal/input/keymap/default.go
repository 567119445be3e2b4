package keymap

import "github.com/dshills/modalcore/internal/input/mode"

// Keymap mode names. The three visual modes share one keymap.
const (
	ModeNormal          = mode.ModeNormal
	ModeInsert          = mode.ModeInsert
	ModeVisual          = mode.ModeVisual
	ModeCommand         = mode.ModeCommand
	ModeOperatorPending = mode.ModeOperatorPending
)

// ModeFor returns the keymap mode used while the editor is in m.
func ModeFor(m mode.Mode) string {
	if m.IsVisual() {
		return ModeVisual
	}
	return m.Name()
}

// LoadDefaults loads all default keymaps into the registry.
func LoadDefaults(r *Registry) error {
	keymaps := []*Keymap{
		DefaultNormalKeymap(),
		DefaultInsertKeymap(),
		DefaultVisualKeymap(),
		DefaultCommandKeymap(),
		DefaultOperatorPendingKeymap(),
	}

	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return err
		}
	}

	return nil
}

// motionBindings are shared by normal, visual and operator-pending modes.
func motionBindings() []Binding {
	return []Binding{
		{Keys: "h", Action: "cursor.left", Description: "Move left", Category: "Movement"},
		{Keys: "<Left>", Action: "cursor.left", Description: "Move left", Category: "Movement"},
		{Keys: "<BS>", Action: "cursor.left", Description: "Move left", Category: "Movement"},
		{Keys: "l", Action: "cursor.right", Description: "Move right", Category: "Movement"},
		{Keys: "<Right>", Action: "cursor.right", Description: "Move right", Category: "Movement"},
		{Keys: "<Space>", Action: "cursor.right", Description: "Move right", Category: "Movement"},
		{Keys: "k", Action: "cursor.up", Description: "Move up", Category: "Movement"},
		{Keys: "<Up>", Action: "cursor.up", Description: "Move up", Category: "Movement"},
		{Keys: "j", Action: "cursor.down", Description: "Move down", Category: "Movement"},
		{Keys: "<Down>", Action: "cursor.down", Description: "Move down", Category: "Movement"},

		{Keys: "w", Action: "cursor.wordForward", Description: "Move to next word", Category: "Movement"},
		{Keys: "b", Action: "cursor.wordBackward", Description: "Move to previous word", Category: "Movement"},
		{Keys: "e", Action: "cursor.wordEnd", Description: "Move to end of word", Category: "Movement"},

		{Keys: "0", Action: "cursor.lineStart", Description: "Move to line start", Category: "Movement"},
		{Keys: "<Home>", Action: "cursor.lineStart", Description: "Move to line start", Category: "Movement"},
		{Keys: "^", Action: "cursor.firstNonBlank", Description: "Move to first non-blank", Category: "Movement"},
		{Keys: "$", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Movement"},
		{Keys: "<End>", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Movement"},

		{Keys: "gg", Action: "cursor.bufferStart", Description: "Go to document start", Category: "Movement"},
		{Keys: "G", Action: "cursor.bufferEnd", Description: "Go to document end", Category: "Movement"},

		{Keys: "}", Action: "cursor.paragraphForward", Description: "Move to next paragraph", Category: "Movement"},
		{Keys: "{", Action: "cursor.paragraphBackward", Description: "Move to previous paragraph", Category: "Movement"},
		{Keys: "%", Action: "cursor.matchBracket", Description: "Jump to matching bracket", Category: "Movement"},

		{Keys: "f", Action: "find.forward", Description: "Find character forward", Category: "Search"},
		{Keys: "F", Action: "find.backward", Description: "Find character backward", Category: "Search"},
		{Keys: "t", Action: "till.forward", Description: "Till character forward", Category: "Search"},
		{Keys: "T", Action: "till.backward", Description: "Till character backward", Category: "Search"},
		{Keys: ";", Action: "find.repeat", Description: "Repeat character search", Category: "Search"},
		{Keys: ",", Action: "find.reverse", Description: "Repeat character search reversed", Category: "Search"},
	}
}

// textObjectBindings are shared by visual and operator-pending modes.
func textObjectBindings() []Binding {
	return []Binding{
		{Keys: "iw", Action: "textobj.innerWord", Description: "Inner word", Category: "Text Objects"},
		{Keys: "aw", Action: "textobj.aroundWord", Description: "A word", Category: "Text Objects"},
		{Keys: "iW", Action: "textobj.innerWORD", Description: "Inner WORD", Category: "Text Objects"},
		{Keys: "aW", Action: "textobj.aroundWORD", Description: "A WORD", Category: "Text Objects"},
		{Keys: "ip", Action: "textobj.innerParagraph", Description: "Inner paragraph", Category: "Text Objects"},
		{Keys: "ap", Action: "textobj.aroundParagraph", Description: "A paragraph", Category: "Text Objects"},

		{Keys: "i(", Action: "textobj.innerParen", Description: "Inner parentheses", Category: "Text Objects"},
		{Keys: "i)", Action: "textobj.innerParen", Description: "Inner parentheses", Category: "Text Objects"},
		{Keys: "ib", Action: "textobj.innerParen", Description: "Inner parentheses", Category: "Text Objects"},
		{Keys: "a(", Action: "textobj.aroundParen", Description: "A parenthesized block", Category: "Text Objects"},
		{Keys: "a)", Action: "textobj.aroundParen", Description: "A parenthesized block", Category: "Text Objects"},
		{Keys: "ab", Action: "textobj.aroundParen", Description: "A parenthesized block", Category: "Text Objects"},
		{Keys: "i[", Action: "textobj.innerBracket", Description: "Inner brackets", Category: "Text Objects"},
		{Keys: "i]", Action: "textobj.innerBracket", Description: "Inner brackets", Category: "Text Objects"},
		{Keys: "a[", Action: "textobj.aroundBracket", Description: "A bracketed block", Category: "Text Objects"},
		{Keys: "a]", Action: "textobj.aroundBracket", Description: "A bracketed block", Category: "Text Objects"},
		{Keys: "i{", Action: "textobj.innerBrace", Description: "Inner braces", Category: "Text Objects"},
		{Keys: "i}", Action: "textobj.innerBrace", Description: "Inner braces", Category: "Text Objects"},
		{Keys: "iB", Action: "textobj.innerBrace", Description: "Inner braces", Category: "Text Objects"},
		{Keys: "a{", Action: "textobj.aroundBrace", Description: "A braced block", Category: "Text Objects"},
		{Keys: "a}", Action: "textobj.aroundBrace", Description: "A braced block", Category: "Text Objects"},
		{Keys: "aB", Action: "textobj.aroundBrace", Description: "A braced block", Category: "Text Objects"},
		{Keys: "i<lt>", Action: "textobj.innerAngle", Description: "Inner angle brackets", Category: "Text Objects"},
		{Keys: "i>", Action: "textobj.innerAngle", Description: "Inner angle brackets", Category: "Text Objects"},
		{Keys: "a<lt>", Action: "textobj.aroundAngle", Description: "An angle bracketed block", Category: "Text Objects"},
		{Keys: "a>", Action: "textobj.aroundAngle", Description: "An angle bracketed block", Category: "Text Objects"},

		{Keys: `i"`, Action: "textobj.innerDoubleQuote", Description: "Inner double quotes", Category: "Text Objects"},
		{Keys: `a"`, Action: "textobj.aroundDoubleQuote", Description: "A double quoted string", Category: "Text Objects"},
		{Keys: "i'", Action: "textobj.innerSingleQuote", Description: "Inner single quotes", Category: "Text Objects"},
		{Keys: "a'", Action: "textobj.aroundSingleQuote", Description: "A single quoted string", Category: "Text Objects"},
		{Keys: "i`", Action: "textobj.innerBacktick", Description: "Inner backticks", Category: "Text Objects"},
		{Keys: "a`", Action: "textobj.aroundBacktick", Description: "A backtick string", Category: "Text Objects"},
	}
}

func operatorBindings() []Binding {
	return []Binding{
		{Keys: "d", Action: "operator.delete", Description: "Delete", Category: "Operators"},
		{Keys: "c", Action: "operator.change", Description: "Change", Category: "Operators"},
		{Keys: "y", Action: "operator.yank", Description: "Yank (copy)", Category: "Operators"},
		{Keys: ">", Action: "operator.indentRight", Description: "Indent", Category: "Operators"},
		{Keys: "<lt>", Action: "operator.indentLeft", Description: "Outdent", Category: "Operators"},
		{Keys: "~", Action: "operator.toggleCase", Description: "Toggle case", Category: "Operators"},
	}
}

// DefaultNormalKeymap returns default normal mode bindings.
func DefaultNormalKeymap() *Keymap {
	bindings := motionBindings()
	bindings = append(bindings, operatorBindings()...)
	bindings = append(bindings, []Binding{
		// Mode switching
		{Keys: "i", Action: "mode.insert", Description: "Enter insert mode", Category: "Mode"},
		{Keys: "I", Action: "mode.insertLineStart", Description: "Insert at line start", Category: "Mode"},
		{Keys: "a", Action: "mode.append", Description: "Append after cursor", Category: "Mode"},
		{Keys: "A", Action: "mode.appendLineEnd", Description: "Append at line end", Category: "Mode"},
		{Keys: "o", Action: "mode.openBelow", Description: "Open line below", Category: "Mode"},
		{Keys: "O", Action: "mode.openAbove", Description: "Open line above", Category: "Mode"},
		{Keys: "v", Action: "mode.visual", Description: "Enter visual mode", Category: "Mode"},
		{Keys: "V", Action: "mode.visualLine", Description: "Enter visual line mode", Category: "Mode"},
		{Keys: "<C-v>", Action: "mode.visualBlock", Description: "Enter visual block mode", Category: "Mode"},
		{Keys: ":", Action: "mode.command", Description: "Enter command mode", Category: "Mode"},

		// Quick edits
		{Keys: "x", Action: "editor.deleteChar", Description: "Delete character", Category: "Editing"},
		{Keys: "<Del>", Action: "editor.deleteChar", Description: "Delete character", Category: "Editing"},
		{Keys: "X", Action: "editor.deleteCharBefore", Description: "Delete character before", Category: "Editing"},
		{Keys: "s", Action: "editor.substituteChar", Description: "Substitute character", Category: "Editing"},
		{Keys: "S", Action: "editor.substituteLine", Description: "Substitute line", Category: "Editing"},
		{Keys: "C", Action: "editor.changeToEnd", Description: "Change to end of line", Category: "Editing"},
		{Keys: "D", Action: "editor.deleteToEnd", Description: "Delete to end of line", Category: "Editing"},
		{Keys: "Y", Action: "editor.yankLine", Description: "Yank line", Category: "Editing"},
		{Keys: "J", Action: "editor.joinLines", Description: "Join lines", Category: "Editing"},
		{Keys: "r", Action: "editor.replaceChar", Description: "Replace character", Category: "Editing"},
		{Keys: ".", Action: "editor.repeat", Description: "Repeat last change", Category: "Editing"},
		{Keys: "gy", Action: "editor.yankWord", Description: "Yank word", Category: "Editing"},

		{Keys: "p", Action: "editor.putAfter", Description: "Put after", Category: "Editing"},
		{Keys: "P", Action: "editor.putBefore", Description: "Put before", Category: "Editing"},

		{Keys: "u", Action: "editor.undo", Description: "Undo", Category: "History"},
		{Keys: "<C-r>", Action: "editor.redo", Description: "Redo", Category: "History"},

		{Keys: "\"", Action: "register.select", Description: "Select register", Category: "Registers"},

		{Keys: "q", Action: "macro.record", Description: "Start or stop macro recording", Category: "Macros"},
		{Keys: "@", Action: "macro.play", Description: "Play macro", Category: "Macros"},
	}...)

	return &Keymap{
		Name:     "default-normal",
		Mode:     ModeNormal,
		Source:   "default",
		Bindings: bindings,
	}
}

// DefaultInsertKeymap returns default insert mode bindings. Printable keys
// that are not bound are inserted as text.
func DefaultInsertKeymap() *Keymap {
	return &Keymap{
		Name:   "default-insert",
		Mode:   ModeInsert,
		Source: "default",
		Bindings: []Binding{
			{Keys: "<Esc>", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},
			{Keys: "<C-c>", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},
			{Keys: "<C-[>", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},

			{Keys: "<CR>", Action: "insert.newline", Description: "Break line", Category: "Editing"},
			{Keys: "<BS>", Action: "insert.backspace", Description: "Delete char before cursor", Category: "Editing"},
			{Keys: "<C-h>", Action: "insert.backspace", Description: "Delete char before cursor", Category: "Editing"},
			{Keys: "<Del>", Action: "insert.delete", Description: "Delete char under cursor", Category: "Editing"},
			{Keys: "<Tab>", Action: "insert.tab", Description: "Insert tab", Category: "Editing"},
			{Keys: "<C-w>", Action: "insert.deleteWordBackward", Description: "Delete word before cursor", Category: "Editing"},
			{Keys: "<C-t>", Action: "editor.indentLine", Description: "Indent line", Category: "Editing"},
			{Keys: "<C-d>", Action: "editor.unindentLine", Description: "Outdent line", Category: "Editing"},

			{Keys: "<Left>", Action: "cursor.left", Description: "Move left", Category: "Navigation"},
			{Keys: "<Right>", Action: "cursor.right", Description: "Move right", Category: "Navigation"},
			{Keys: "<Up>", Action: "cursor.up", Description: "Move up", Category: "Navigation"},
			{Keys: "<Down>", Action: "cursor.down", Description: "Move down", Category: "Navigation"},
			{Keys: "<Home>", Action: "cursor.lineStart", Description: "Move to line start", Category: "Navigation"},
			{Keys: "<End>", Action: "cursor.lineEnd", Description: "Move to line end", Category: "Navigation"},
		},
	}
}

// DefaultVisualKeymap returns bindings shared by the visual modes.
func DefaultVisualKeymap() *Keymap {
	bindings := []Binding{
		{Keys: "<Esc>", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},
		{Keys: "<C-c>", Action: "mode.normal", Description: "Return to normal mode", Category: "Mode"},

		{Keys: "v", Action: "mode.visual", Description: "Toggle visual mode", Category: "Mode"},
		{Keys: "V", Action: "mode.visualLine", Description: "Toggle visual line mode", Category: "Mode"},
		{Keys: "<C-v>", Action: "mode.visualBlock", Description: "Toggle visual block mode", Category: "Mode"},

		{Keys: "d", Action: "selection.delete", Description: "Delete selection", Category: "Editing"},
		{Keys: "x", Action: "selection.delete", Description: "Delete selection", Category: "Editing"},
		{Keys: "<Del>", Action: "selection.delete", Description: "Delete selection", Category: "Editing"},
		{Keys: "c", Action: "selection.change", Description: "Change selection", Category: "Editing"},
		{Keys: "s", Action: "selection.change", Description: "Change selection", Category: "Editing"},
		{Keys: "y", Action: "selection.yank", Description: "Yank selection", Category: "Editing"},
		{Keys: ">", Action: "selection.indentRight", Description: "Indent selection", Category: "Editing"},
		{Keys: "<lt>", Action: "selection.indentLeft", Description: "Outdent selection", Category: "Editing"},
		{Keys: "~", Action: "selection.toggleCase", Description: "Toggle case", Category: "Editing"},

		{Keys: "\"", Action: "register.select", Description: "Select register", Category: "Registers"},
	}
	bindings = append(bindings, motionBindings()...)
	bindings = append(bindings, textObjectBindings()...)

	return &Keymap{
		Name:     "default-visual",
		Mode:     ModeVisual,
		Source:   "default",
		Bindings: bindings,
	}
}

// DefaultCommandKeymap returns default command-line bindings. Printable
// keys that are not bound are appended to the command line.
func DefaultCommandKeymap() *Keymap {
	return &Keymap{
		Name:   "default-command",
		Mode:   ModeCommand,
		Source: "default",
		Bindings: []Binding{
			{Keys: "<Esc>", Action: "command.cancel", Description: "Cancel command", Category: "Command"},
			{Keys: "<C-c>", Action: "command.cancel", Description: "Cancel command", Category: "Command"},
			{Keys: "<CR>", Action: "command.execute", Description: "Execute command", Category: "Command"},
			{Keys: "<BS>", Action: "command.backspace", Description: "Delete char", Category: "Command"},
			{Keys: "<Tab>", Action: "command.complete", Description: "Complete command", Category: "Completion"},
			{Keys: "<S-Tab>", Action: "command.completePrev", Description: "Previous completion", Category: "Completion"},
		},
	}
}

// DefaultOperatorPendingKeymap returns bindings that finish or cancel a
// pending operator. Repeating the operator key acts on whole lines.
func DefaultOperatorPendingKeymap() *Keymap {
	bindings := []Binding{
		{Keys: "<Esc>", Action: "mode.normal", Description: "Cancel operator", Category: "Mode"},
		{Keys: "<C-c>", Action: "mode.normal", Description: "Cancel operator", Category: "Mode"},
	}
	bindings = append(bindings, operatorBindings()...)
	bindings = append(bindings, motionBindings()...)
	bindings = append(bindings, textObjectBindings()...)

	return &Keymap{
		Name:     "default-operator-pending",
		Mode:     ModeOperatorPending,
		Source:   "default",
		Bindings: bindings,
	}
}
