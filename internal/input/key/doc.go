// Package key provides key event types and key-notation parsing.
//
// An Event is a value: two events are equal when they name the same key,
// rune and modifiers. Events carry no timestamp so recorded sequences replay
// identically and compare with ==.
//
// Notation follows the vim style used in keymap files:
//
//   - Plain characters: "a", "A", "0", ":"
//   - Named keys: "<Esc>", "<CR>", "<BS>", "<Tab>", "<Up>"
//   - Modified keys: "<C-r>", "<A-x>", "<C-S-Up>"
//   - Sequences: "gg", "dd", "\"ayy", "<C-w>h"
package key
