// Package input turns key events into editor operations.
//
// The Handler is the single dispatch point: HandleKey takes the editor and
// one key event, resolves the event against the keymap for the current
// mode and runs the bound action on the editor and its current buffer.
// One event is fully applied before HandleKey returns.
//
// # Key Sequences
//
// Multi-key bindings such as "gg" are accumulated until they match a
// binding or can no longer match one. Counts ("3j", "2d3w") and register
// prefixes ("\"ayy") are collected before the command they apply to.
//
// # Modal Editing
//
//   - Normal mode: motions, operators, quick edits, macros
//   - Insert mode: text entry; unbound printable keys are inserted
//   - Visual modes: motions extend the selection, operators act on it
//   - Command-line mode: unbound printable keys are appended
//   - Operator-pending mode: a motion or text object completes the
//     pending operator
//
// Keys that need one more key (", q, @, r and the f, F, t, T searches)
// park in Context.Awaiting until it arrives.
//
// # Repeat
//
// The keys of the last normal mode command that changed the buffer are
// kept, and . feeds them back through HandleKey with the new count.
//
// # Middleware
//
// Dispatcher is the interface a Handler satisfies. Wrappers such as the
// macro recorder implement it too and forward to the Handler:
//
//	h := input.NewHandler(registry, input.WithLogger(logger))
//	tap := macro.NewTap(recorder, h)
//	h.SetMacroControl(tap)
//	for ev := range events {
//	    _ = tap.HandleKey(ed, ev)
//	}
package input
