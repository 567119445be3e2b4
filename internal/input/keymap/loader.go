package keymap

import (
	"fmt"
	"slices"
	"strings"
)

// UserPriority is the priority given to keymaps built from user config,
// so they override the defaults.
const UserPriority = 10

// userModes are the mode names accepted in config. "global" and the empty
// string both mean every mode.
var userModes = map[string]string{
	ModeNormal:          ModeNormal,
	ModeInsert:          ModeInsert,
	ModeVisual:          ModeVisual,
	ModeCommand:         ModeCommand,
	ModeOperatorPending: ModeOperatorPending,
	"global":            "",
	"":                  "",
}

// FromConfig builds one user keymap per mode from a mode -> keys -> action
// table, as read from the [keymaps] section of the config file. Bindings
// are sorted by keys so the result does not depend on map order.
func FromConfig(table map[string]map[string]string) ([]*Keymap, error) {
	modes := make([]string, 0, len(table))
	for m := range table {
		modes = append(modes, m)
	}
	slices.Sort(modes)

	keymaps := make([]*Keymap, 0, len(modes))
	for _, name := range modes {
		mode, ok := userModes[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("keymaps: unknown mode %q", name)
		}

		bindings := table[name]
		keys := make([]string, 0, len(bindings))
		for k := range bindings {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		label := mode
		if label == "" {
			label = "global"
		}
		km := NewKeymap("user-" + label).
			ForMode(mode).
			WithPriority(UserPriority).
			WithSource("user")
		for _, k := range keys {
			km.Bindings = append(km.Bindings, Binding{
				Keys:     k,
				Action:   bindings[k],
				Category: "User",
			})
		}
		if err := km.Validate(); err != nil {
			return nil, fmt.Errorf("keymaps.%s: %w", name, err)
		}
		keymaps = append(keymaps, km)
	}
	return keymaps, nil
}

// LoadUser registers the keymaps built from table, replacing any user
// keymaps registered earlier. Modes missing from table lose their user
// bindings.
func LoadUser(r *Registry, table map[string]map[string]string) error {
	keymaps, err := FromConfig(table)
	if err != nil {
		return err
	}

	r.mu.RLock()
	var stale []string
	for name, km := range r.keymaps {
		if km.Source == "user" {
			stale = append(stale, name)
		}
	}
	r.mu.RUnlock()

	for _, name := range stale {
		r.Unregister(name)
	}
	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}
