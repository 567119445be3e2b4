package buffer

import (
	"strings"
	"unicode"
)

// RegisterKind says how register text is put back.
type RegisterKind uint8

const (
	// Charwise text is inserted inline at the cursor.
	Charwise RegisterKind = iota
	// Linewise text holds whole lines, each terminated by "\n", and is put
	// above or below the cursor line.
	Linewise
	// Blockwise text holds one rectangle row per line and is put column
	// aligned on consecutive lines.
	Blockwise
)

// String returns the register kind name.
func (k RegisterKind) String() string {
	switch k {
	case Linewise:
		return "line"
	case Blockwise:
		return "block"
	}
	return "char"
}

// Register is the content of a yank register.
type Register struct {
	Text string       `json:"text"`
	Kind RegisterKind `json:"kind"`
}

// IsEmpty reports whether the register holds no text.
func (r Register) IsEmpty() bool {
	return r.Text == ""
}

// ExternalRegisters backs registers that live outside the editor, such as
// the system clipboard ("+ and "*).
type ExternalRegisters interface {
	ReadRegister(name rune) (Register, bool)
	WriteRegister(name rune, r Register)
}

// Registers holds the unnamed register and the named registers a-z.
type Registers struct {
	unnamed  Register
	named    map[rune]Register
	external ExternalRegisters
}

// NewRegisters creates an empty register store. ext may be nil.
func NewRegisters(ext ExternalRegisters) *Registers {
	return &Registers{named: make(map[rune]Register), external: ext}
}

// ValidRegister reports whether name can follow a " prefix: a-z, A-Z
// (append to the lowercase register), the unnamed register " and the
// clipboard registers + and *.
func ValidRegister(name rune) bool {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return true
	case name == '"', name == '+', name == '*':
		return true
	}
	return false
}

// Unnamed returns the default register.
func (rs *Registers) Unnamed() Register {
	return rs.unnamed
}

// SetUnnamed replaces the default register.
func (rs *Registers) SetUnnamed(r Register) {
	rs.unnamed = r
}

// Get returns the content of register name.
func (rs *Registers) Get(name rune) (Register, bool) {
	switch {
	case name == '"' || name == 0:
		return rs.unnamed, true
	case name == '+' || name == '*':
		if rs.external == nil {
			return Register{}, false
		}
		return rs.external.ReadRegister(name)
	case !ValidRegister(name):
		return Register{}, false
	}
	r, ok := rs.named[unicode.ToLower(name)]
	return r, ok
}

// Set stores r under name. Uppercase names append to the lowercase
// register. It returns false for invalid names.
func (rs *Registers) Set(name rune, r Register) bool {
	switch {
	case !ValidRegister(name):
		return false
	case name == '"':
		rs.unnamed = r
	case name == '+' || name == '*':
		if rs.external != nil {
			rs.external.WriteRegister(name, r)
		}
	case unicode.IsUpper(name):
		lower := unicode.ToLower(name)
		rs.named[lower] = appendRegister(rs.named[lower], r)
	default:
		rs.named[name] = r
	}
	return true
}

// Names returns the names of the non-empty named registers in order.
func (rs *Registers) Names() []rune {
	var names []rune
	for c := 'a'; c <= 'z'; c++ {
		if r, ok := rs.named[c]; ok && !r.IsEmpty() {
			names = append(names, c)
		}
	}
	return names
}

func appendRegister(old, add Register) Register {
	if old.IsEmpty() {
		return add
	}
	if old.Kind == Linewise || add.Kind == Linewise {
		text := old.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text += add.Text
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return Register{Text: text, Kind: Linewise}
	}
	return Register{Text: old.Text + add.Text, Kind: old.Kind}
}

// Registers returns the store shared by this buffer.
func (b *Buffer) Registers() *Registers {
	return b.registers
}

// Clipboard returns the unnamed register.
func (b *Buffer) Clipboard() Register {
	return b.registers.Unnamed()
}

// SetClipboard replaces the unnamed register.
func (b *Buffer) SetClipboard(r Register) {
	b.registers.SetUnnamed(r)
}

// SetActiveRegister selects the register used by the next yank, delete or
// put. It returns false, leaving the selection unchanged, for names that
// are not valid registers.
func (b *Buffer) SetActiveRegister(name rune) bool {
	if !ValidRegister(name) {
		return false
	}
	b.active = name
	return true
}

// ClearActiveRegister drops a register selected with SetActiveRegister
// that no command consumed.
func (b *Buffer) ClearActiveRegister() {
	b.active = 0
}

// ActiveRegister returns the pending register name, or zero.
func (b *Buffer) ActiveRegister() rune {
	return b.active
}

// store writes yanked or deleted text to the unnamed register and to the
// active register, then clears the active register.
func (b *Buffer) store(r Register) {
	name := b.active
	b.active = 0
	if name == '+' || name == '*' {
		b.registers.Set(name, r)
		return
	}
	b.registers.SetUnnamed(r)
	if name != 0 && name != '"' {
		b.registers.Set(name, r)
	}
}

// fetch returns the active register, or the unnamed one, and clears the
// active register.
func (b *Buffer) fetch() Register {
	name := b.active
	b.active = 0
	r, _ := b.registers.Get(name)
	return r
}

// YankLine copies the current line into the active register. See YankLines.
func (b *Buffer) YankLine() {
	b.YankLines(1)
}

// YankLines copies count lines starting at the cursor row as linewise text.
func (b *Buffer) YankLines(count int) {
	b.YankRows(b.cursor.Row, count)
}

// YankRows copies count lines starting at row as linewise text.
func (b *Buffer) YankRows(row, count int) {
	row, count = b.clampRows(row, count)
	b.store(Register{Text: joinLinewise(b.lines[row : row+count]), Kind: Linewise})
}

// YankRange copies the text between start and end (end exclusive) as
// charwise text.
func (b *Buffer) YankRange(start, end Position) {
	text := b.TextInRange(start, end)
	if text == "" {
		b.active = 0
		return
	}
	b.store(Register{Text: text, Kind: Charwise})
}

// YankToEndOfLine copies from the cursor to the end of the line.
func (b *Buffer) YankToEndOfLine() {
	c := b.cursor
	b.YankRange(c, Position{Row: c.Row, Col: b.LineLen(c.Row)})
}

// YankWord copies the word under the cursor, or the next word on the line
// when the cursor is on whitespace. A word here runs to the next
// whitespace. Nothing is copied when no word remains on the line.
func (b *Buffer) YankWord() {
	line := []rune(b.lines[b.cursor.Row])
	start := b.cursor.Col
	for start < len(line) && unicode.IsSpace(line[start]) {
		start++
	}
	end := start
	for end < len(line) && !unicode.IsSpace(line[end]) {
		end++
	}
	if start == end {
		b.active = 0
		return
	}
	b.store(Register{Text: string(line[start:end]), Kind: Charwise})
}
