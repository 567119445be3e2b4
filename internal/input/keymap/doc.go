// Package keymap maps key sequences to action names per mode.
//
// A Keymap is a named set of bindings for one mode (or every mode when
// Mode is empty). The Registry indexes keymaps in a prefix tree so the
// input handler can tell a complete binding from the first keys of a
// longer one ("g" waits for "gg").
//
// # Binding Precedence
//
// When several keymaps bind the same sequence:
//  1. Priority field (higher wins; user keymaps load with UserPriority)
//  2. Specificity (mode-specific > global)
//  3. Registration order (later wins)
//
// # Key Sequence Format
//
// Keys use vim notation as parsed by key.ParseSequence:
//
//	"j"       - Single character
//	"gg"      - Two keys
//	"<C-r>"   - Ctrl+R
//	"<Esc>"   - Escape
//	"<lt>"    - A literal '<'
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	if err := keymap.LoadDefaults(registry); err != nil {
//	    return err
//	}
//	b, res := registry.Resolve("normal", key.MustParseSequence("gg"))
//	if res == keymap.Match {
//	    // run b.Action
//	}
package keymap
