package key

import "strings"

// Modifier is a bit set of modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// prefix renders the modifiers in notation order, e.g. "C-A-".
func (m Modifier) prefix() string {
	var sb strings.Builder
	if m.Has(ModCtrl) {
		sb.WriteString("C-")
	}
	if m.Has(ModAlt) {
		sb.WriteString("A-")
	}
	if m.Has(ModShift) {
		sb.WriteString("S-")
	}
	if m.Has(ModMeta) {
		sb.WriteString("M-")
	}
	return sb.String()
}

// String returns a form like "Ctrl+Alt".
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

var modifierNameMap = map[string]Modifier{
	"c":       ModCtrl,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"a":       ModAlt,
	"alt":     ModAlt,
	"s":       ModShift,
	"shift":   ModShift,
	"m":       ModMeta,
	"d":       ModMeta,
	"meta":    ModMeta,
	"cmd":     ModMeta,
}

// ModifierFromName returns the modifier for a name, or ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNameMap[strings.ToLower(strings.TrimSpace(name))]
}
