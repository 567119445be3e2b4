package mode

import "github.com/dshills/modalcore/internal/input/vim"

// Kind identifies an editor mode.
type Kind uint8

const (
	KindNormal Kind = iota
	KindInsert
	KindCommand
	KindVisual
	KindVisualLine
	KindVisualBlock
	KindOperatorPending
)

// Standard mode names.
const (
	ModeNormal          = "normal"
	ModeInsert          = "insert"
	ModeCommand         = "command"
	ModeVisual          = "visual"
	ModeVisualLine      = "visual-line"
	ModeVisualBlock     = "visual-block"
	ModeOperatorPending = "operator-pending"
)

var kindNames = [...]string{
	KindNormal:          ModeNormal,
	KindInsert:          ModeInsert,
	KindCommand:         ModeCommand,
	KindVisual:          ModeVisual,
	KindVisualLine:      ModeVisualLine,
	KindVisualBlock:     ModeVisualBlock,
	KindOperatorPending: ModeOperatorPending,
}

// String returns the mode name for k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindFromName parses a mode name such as "visual-line".
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Kinds returns every mode kind.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Mode is the editor's modal state. The pending operator and its count
// live inside the OperatorPending variant, so a mode can never disagree
// with the operator it is waiting on. Modes are values and compare with ==.
type Mode struct {
	kind  Kind
	op    vim.OperatorKind
	count int
}

// Normal returns normal mode, the resting state.
func Normal() Mode { return Mode{kind: KindNormal} }

// Insert returns insert mode.
func Insert() Mode { return Mode{kind: KindInsert} }

// Command returns command-line mode.
func Command() Mode { return Mode{kind: KindCommand} }

// Visual returns characterwise visual mode.
func Visual() Mode { return Mode{kind: KindVisual} }

// VisualLine returns linewise visual mode.
func VisualLine() Mode { return Mode{kind: KindVisualLine} }

// VisualBlock returns blockwise visual mode.
func VisualBlock() Mode { return Mode{kind: KindVisualBlock} }

// OperatorPending returns the mode that waits for a motion to complete op.
// count is the count typed before the operator, zero when none was typed.
// OpNone yields normal mode.
func OperatorPending(op vim.OperatorKind, count int) Mode {
	if op == vim.OpNone {
		return Normal()
	}
	return Mode{kind: KindOperatorPending, op: op, count: max(count, 0)}
}

// Kind returns the mode kind.
func (m Mode) Kind() Kind { return m.kind }

// Is reports whether m is of kind k.
func (m Mode) Is(k Kind) bool { return m.kind == k }

// Operator returns the pending operator and count. ok is false outside
// operator-pending mode.
func (m Mode) Operator() (op vim.OperatorKind, count int, ok bool) {
	if m.kind != KindOperatorPending {
		return vim.OpNone, 0, false
	}
	return m.op, m.count, true
}

// IsVisual reports whether m is any visual mode.
func (m Mode) IsVisual() bool {
	switch m.kind {
	case KindVisual, KindVisualLine, KindVisualBlock:
		return true
	}
	return false
}

// Name returns the unique mode identifier (e.g., "normal", "insert").
func (m Mode) Name() string { return m.kind.String() }

// String returns the name, with the operator for operator-pending mode.
func (m Mode) String() string {
	if m.kind == KindOperatorPending {
		return m.kind.String() + "(" + m.op.String() + ")"
	}
	return m.Name()
}

// DisplayName returns a human-readable name for the status line.
func (m Mode) DisplayName() string {
	switch m.kind {
	case KindInsert:
		return "-- INSERT --"
	case KindVisual:
		return "-- VISUAL --"
	case KindVisualLine:
		return "-- VISUAL LINE --"
	case KindVisualBlock:
		return "-- VISUAL BLOCK --"
	}
	return ""
}

// CursorStyle returns the cursor style for this mode.
func (m Mode) CursorStyle() CursorStyle {
	switch m.kind {
	case KindInsert, KindCommand:
		return CursorBar
	case KindOperatorPending:
		return CursorUnderline
	}
	return CursorBlock
}

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}
