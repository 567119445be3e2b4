package editor

import "github.com/dshills/modalcore/internal/engine/history"

// Settings are the options changed with :set.
type Settings struct {
	Number         bool
	RelativeNumber bool
	IgnoreCase     bool
	Wrap           bool
	ExpandTab      bool
	TabStop        int
	ShiftWidth     int
	UndoLevels     int
}

// DefaultSettings returns the settings of a fresh editor.
func DefaultSettings() Settings {
	return Settings{
		Wrap:       true,
		TabStop:    4,
		ShiftWidth: 4,
		UndoLevels: history.DefaultMaxEntries,
	}
}

// Settings returns the current settings.
func (e *Editor) Settings() Settings {
	return e.settings
}

// ApplySettings replaces the settings and pushes shift width and undo
// depth to every open buffer. Non-positive widths and depths keep their
// previous value.
func (e *Editor) ApplySettings(s Settings) {
	if s.TabStop <= 0 {
		s.TabStop = e.settings.TabStop
	}
	if s.ShiftWidth <= 0 {
		s.ShiftWidth = e.settings.ShiftWidth
	}
	if s.UndoLevels <= 0 {
		s.UndoLevels = e.settings.UndoLevels
	}
	e.settings = s
	for _, b := range e.buffers {
		b.SetShiftWidth(s.ShiftWidth)
		b.SetHistoryDepth(s.UndoLevels)
	}
}
