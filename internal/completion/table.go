package completion

import (
	"cmp"
	"slices"
	"strings"
)

// Command is an ex command with its short aliases.
type Command struct {
	// Name is the canonical command name (e.g., "quit").
	Name string

	// Aliases are alternative spellings (e.g., "q").
	Aliases []string

	// Bang reports whether the command accepts a trailing "!".
	Bang bool

	// Description is a one-line summary.
	Description string

	// Category groups related commands ("file", "buffer", "set").
	Category string
}

// SettingKind is the value type of a :set option.
type SettingKind uint8

const (
	// SettingBool options are toggled with "opt" and "noopt".
	SettingBool SettingKind = iota

	// SettingInt options take "opt=value".
	SettingInt
)

// Setting is an option accepted by :set.
type Setting struct {
	Name        string
	Aliases     []string
	Kind        SettingKind
	Description string
}

// Resolver maps command names to their canonical form and suggests
// completions for partial command lines.
type Resolver interface {
	// Canonical returns the canonical name for a command or alias.
	Canonical(name string) (string, bool)

	// Suggest returns completions for input, best match first.
	Suggest(input string) []string
}

// Table is an immutable set of ex commands and settings. Build one at
// startup and share it by reference; nothing mutates it afterwards.
type Table struct {
	commands []Command
	settings []Setting
	tokens   []string
	aliases  map[string]string
	options  map[string]int
}

// NewTable builds a table from commands and settings. Later entries win
// when two entries claim the same alias.
func NewTable(commands []Command, settings []Setting) *Table {
	t := &Table{
		commands: slices.Clone(commands),
		settings: slices.Clone(settings),
		aliases:  make(map[string]string),
		options:  make(map[string]int),
	}
	for _, c := range t.commands {
		for _, name := range append([]string{c.Name}, c.Aliases...) {
			t.aliases[name] = c.Name
			t.tokens = append(t.tokens, name)
			if c.Bang {
				t.tokens = append(t.tokens, name+"!")
			}
		}
	}
	for i, s := range t.settings {
		for _, name := range append([]string{s.Name}, s.Aliases...) {
			t.options[name] = i
			switch s.Kind {
			case SettingBool:
				t.tokens = append(t.tokens, "set "+name, "set no"+name)
			case SettingInt:
				t.tokens = append(t.tokens, "set "+name+"=")
			}
		}
	}
	slices.Sort(t.tokens)
	t.tokens = slices.Compact(t.tokens)
	return t
}

// DefaultTable returns the editor's built-in commands and settings.
func DefaultTable() *Table {
	return NewTable(defaultCommands, defaultSettings)
}

var defaultCommands = []Command{
	{Name: "quit", Aliases: []string{"q"}, Bang: true, Description: "Quit editor", Category: "file"},
	{Name: "write", Aliases: []string{"w"}, Description: "Save current file", Category: "file"},
	{Name: "wq", Aliases: []string{"x"}, Description: "Save and quit", Category: "file"},
	{Name: "edit", Aliases: []string{"e"}, Bang: true, Description: "Edit file in new buffer", Category: "file"},
	{Name: "buffer", Aliases: []string{"b"}, Description: "Switch to buffer", Category: "buffer"},
	{Name: "bnext", Aliases: []string{"bn"}, Description: "Switch to next buffer", Category: "buffer"},
	{Name: "bprevious", Aliases: []string{"bp", "bprev"}, Description: "Switch to previous buffer", Category: "buffer"},
	{Name: "bdelete", Aliases: []string{"bd"}, Bang: true, Description: "Delete current buffer", Category: "buffer"},
	{Name: "buffers", Aliases: []string{"ls"}, Description: "List all buffers", Category: "buffer"},
	{Name: "set", Aliases: []string{"se"}, Description: "Change an option", Category: "set"},
}

var defaultSettings = []Setting{
	{Name: "number", Aliases: []string{"nu"}, Kind: SettingBool, Description: "Show line numbers"},
	{Name: "relativenumber", Aliases: []string{"rnu"}, Kind: SettingBool, Description: "Show relative line numbers"},
	{Name: "ignorecase", Aliases: []string{"ic"}, Kind: SettingBool, Description: "Ignore case"},
	{Name: "wrap", Kind: SettingBool, Description: "Wrap long lines"},
	{Name: "expandtab", Aliases: []string{"et"}, Kind: SettingBool, Description: "Insert spaces for tabs"},
	{Name: "tabstop", Aliases: []string{"ts"}, Kind: SettingInt, Description: "Width of a tab"},
	{Name: "shiftwidth", Aliases: []string{"sw"}, Kind: SettingInt, Description: "Indent width"},
	{Name: "undolevels", Aliases: []string{"ul"}, Kind: SettingInt, Description: "Undo history depth"},
}

// Canonical returns the canonical name for a command or alias. A
// trailing "!" is ignored.
func (t *Table) Canonical(name string) (string, bool) {
	c, ok := t.aliases[strings.TrimSuffix(name, "!")]
	return c, ok
}

// Command returns the command definition for a name or alias.
func (t *Table) Command(name string) (Command, bool) {
	canon, ok := t.Canonical(name)
	if !ok {
		return Command{}, false
	}
	i := slices.IndexFunc(t.commands, func(c Command) bool { return c.Name == canon })
	return t.commands[i], true
}

// Setting returns the setting for a name or alias.
func (t *Table) Setting(name string) (Setting, bool) {
	i, ok := t.options[name]
	if !ok {
		return Setting{}, false
	}
	return t.settings[i], true
}

// Commands returns a copy of the command definitions.
func (t *Table) Commands() []Command {
	return slices.Clone(t.commands)
}

// Settings returns a copy of the setting definitions.
func (t *Table) Settings() []Setting {
	return slices.Clone(t.settings)
}

// Suggest returns every command, alias and set token starting with input,
// ignoring case and a leading ':'. Shorter matches sort first, then
// alphabetically.
func (t *Table) Suggest(input string) []string {
	prefix := strings.ToLower(strings.TrimPrefix(strings.TrimLeft(input, " "), ":"))
	var out []string
	for _, tok := range t.tokens {
		if strings.HasPrefix(strings.ToLower(tok), prefix) {
			out = append(out, tok)
		}
	}
	slices.SortFunc(out, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(a), len(b)), strings.Compare(a, b))
	})
	return out
}
