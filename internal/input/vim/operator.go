package vim

// OperatorKind identifies an operator. The zero value means no operator.
type OperatorKind uint8

const (
	OpNone OperatorKind = iota
	OpDelete
	OpChange
	OpYank
	OpIndent
	OpUnindent
	OpToggleCase
)

// Operator describes a Vim operator: a command that acts on the range
// given by a following motion, or on whole lines when doubled (dd, yy).
type Operator struct {
	// Kind is the operator identifier.
	Kind OperatorKind

	// Name is the human-readable name (e.g., "delete", "yank").
	Name string

	// Key is the key that triggers this operator (e.g., 'd', 'c', 'y').
	Key rune

	// Action is the action name bound in keymaps (e.g., "operator.delete").
	Action string

	// ChangesText indicates if this operator modifies the buffer.
	ChangesText bool

	// EntersInsert indicates if this operator enters insert mode after.
	EntersInsert bool
}

// Standard operators.
var (
	// DeleteOperator deletes text.
	DeleteOperator = Operator{
		Kind:        OpDelete,
		Name:        "delete",
		Key:         'd',
		Action:      "operator.delete",
		ChangesText: true,
	}

	// ChangeOperator deletes text and enters insert mode.
	ChangeOperator = Operator{
		Kind:         OpChange,
		Name:         "change",
		Key:          'c',
		Action:       "operator.change",
		ChangesText:  true,
		EntersInsert: true,
	}

	// YankOperator copies text to a register.
	YankOperator = Operator{
		Kind:   OpYank,
		Name:   "yank",
		Key:    'y',
		Action: "operator.yank",
	}

	// IndentOperator shifts lines right.
	IndentOperator = Operator{
		Kind:        OpIndent,
		Name:        "indentRight",
		Key:         '>',
		Action:      "operator.indentRight",
		ChangesText: true,
	}

	// UnindentOperator shifts lines left.
	UnindentOperator = Operator{
		Kind:        OpUnindent,
		Name:        "indentLeft",
		Key:         '<',
		Action:      "operator.indentLeft",
		ChangesText: true,
	}

	// ToggleCaseOperator swaps the case of letters.
	ToggleCaseOperator = Operator{
		Kind:        OpToggleCase,
		Name:        "toggleCase",
		Key:         '~',
		Action:      "operator.toggleCase",
		ChangesText: true,
	}
)

var operators = []*Operator{
	&DeleteOperator,
	&ChangeOperator,
	&YankOperator,
	&IndentOperator,
	&UnindentOperator,
	&ToggleCaseOperator,
}

// String returns the operator name, or "none".
func (k OperatorKind) String() string {
	if op, ok := OperatorFor(k); ok {
		return op.Name
	}
	return "none"
}

// Key returns the key that triggers the operator, or zero.
func (k OperatorKind) Key() rune {
	if op, ok := OperatorFor(k); ok {
		return op.Key
	}
	return 0
}

// OperatorFor returns the definition of kind.
func OperatorFor(kind OperatorKind) (Operator, bool) {
	for _, op := range operators {
		if op.Kind == kind {
			return *op, true
		}
	}
	return Operator{}, false
}

// GetOperator returns the operator triggered by key.
func GetOperator(key rune) (Operator, bool) {
	for _, op := range operators {
		if op.Key == key {
			return *op, true
		}
	}
	return Operator{}, false
}

// OperatorForAction returns the operator bound to a keymap action name.
func OperatorForAction(action string) (Operator, bool) {
	for _, op := range operators {
		if op.Action == action {
			return *op, true
		}
	}
	return Operator{}, false
}

// IsOperator returns true if the key is an operator.
func IsOperator(key rune) bool {
	_, ok := GetOperator(key)
	return ok
}

// OperatorKeys returns all operator keys in definition order.
func OperatorKeys() []rune {
	keys := make([]rune, 0, len(operators))
	for _, op := range operators {
		keys = append(keys, op.Key)
	}
	return keys
}
