// Package config loads the user configuration file.
//
// A config file is TOML or YAML, chosen by extension, and decodes over the
// built-in defaults:
//
//	[editing]
//	undo_levels = 1000
//	shift_width = 4
//	tab_width = 4
//	expand_tab = false
//
//	[macros]
//	stop_key = "q"
//	persist_path = "~/.local/share/modalcore/macros.json"
//
//	[keymaps.insert]
//	jk = "mode.normal"
//
//	[log]
//	level = "info"
//	file = "/tmp/modalcore.log"
//
//	[ui]
//	show_line_numbers = true
//
// Unknown settings are parse errors. Validate reports every out-of-range
// or malformed value at once.
//
// # Live Reload
//
// Watcher re-reads the file when it changes and delivers the result,
// numbered by a generation counter, on a channel. The consumer applies
// results in order and drops stale ones.
package config
