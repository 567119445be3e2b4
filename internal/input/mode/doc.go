// Package mode provides the modal state of the editor.
//
// The editor is always in exactly one of these modes:
//   - Normal mode: navigation and commands
//   - Insert mode: text input
//   - Visual, Visual Line and Visual Block modes: selection
//   - Command mode: ex-style command line
//   - Operator-pending mode: an operator waits for its motion
//
// Mode is a small value type. The operator and count that operator-pending
// mode waits on are part of the value, so there is no separate "pending
// operator" field that could fall out of step with the mode.
//
//	m := mode.OperatorPending(vim.OpDelete, 2)
//	op, count, ok := m.Operator() // OpDelete, 2, true
//	m = mode.Normal()
//	_, _, ok = m.Operator()       // false
package mode
