package macro

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/vfs"
)

// persistedMacro represents a single macro for persistence. Keys are
// stored in key notation so the file stays readable and editable.
type persistedMacro struct {
	Register string `json:"register"`
	Keys     string `json:"keys"`
}

// persistedData is the root structure for macro persistence.
type persistedData struct {
	Version    int              `json:"version"`
	Session    string           `json:"session,omitempty"`
	SavedAt    time.Time        `json:"saved_at"`
	LastPlayed string           `json:"last_played,omitempty"`
	Macros     []persistedMacro `json:"macros"`
}

const currentVersion = 1

func registerName(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}

func parseRegister(s string) rune {
	rs := []rune(s)
	if len(rs) != 1 {
		return 0
	}
	return rs[0]
}

// Export encodes all macros as JSON. The session id, if not empty, is
// stored alongside so a file can be traced back to the run that wrote it.
func Export(recorder *Recorder, session string) ([]byte, error) {
	registers, last := recorder.snapshot()

	data := persistedData{
		Version:    currentVersion,
		Session:    session,
		SavedAt:    time.Now().UTC(),
		LastPlayed: registerName(last),
		Macros:     make([]persistedMacro, 0, len(registers)),
	}

	for _, reg := range recorder.List() {
		events, ok := registers[reg]
		if !ok {
			continue
		}
		data.Macros = append(data.Macros, persistedMacro{
			Register: registerName(reg),
			Keys:     key.FormatSequence(events),
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

// Import decodes macros from JSON. With merge set, registers already
// defined in the recorder are kept; otherwise all registers are replaced.
// Entries with an invalid register are skipped.
func Import(recorder *Recorder, jsonData []byte, merge bool) error {
	var data persistedData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal macros: %w", err)
	}

	if data.Version > currentVersion {
		return fmt.Errorf("unsupported macros version: %d (max supported: %d)",
			data.Version, currentVersion)
	}

	registers := make(map[rune][]key.Event, len(data.Macros))
	last := parseRegister(data.LastPlayed)
	if merge {
		registers, last = recorder.snapshot()
	}

	for _, m := range data.Macros {
		reg := parseRegister(m.Register)
		if !IsValidRegister(reg) {
			continue
		}
		if _, exists := registers[reg]; merge && exists {
			continue
		}

		events, err := key.ParseSequence(m.Keys)
		if err != nil {
			return fmt.Errorf("macro %s: %w", m.Register, err)
		}
		registers[reg] = events
	}

	recorder.restore(registers, last)
	return nil
}

// ErrMacroPathIsDir is returned when the macros path names a directory.
var ErrMacroPathIsDir = errors.New("macros path is a directory")

// Save writes all macros to path through fsys. The file is written to a
// temporary sibling and renamed into place.
func Save(fsys vfs.FS, recorder *Recorder, path, session string) error {
	jsonData, err := Export(recorder, session)
	if err != nil {
		return fmt.Errorf("failed to marshal macros: %w", err)
	}

	if info, err := fsys.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrMacroPathIsDir)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := fsys.WriteFile(tempPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := fsys.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load replaces the recorder's macros with those stored at path.
// A missing file is not an error.
func Load(fsys vfs.FS, recorder *Recorder, path string) error {
	if !fsys.Exists(path) {
		return nil
	}
	jsonData, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read macros file: %w", err)
	}
	return Import(recorder, jsonData, false)
}
