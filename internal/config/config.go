package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/logging"
	"github.com/dshills/modalcore/internal/vfs"
)

// Limits enforced by Validate.
const (
	MaxUndoLevels = 100000
	MaxIndent     = 16
)

// Config is the user configuration file.
type Config struct {
	Editing Editing `toml:"editing" yaml:"editing"`
	Macros  Macros  `toml:"macros" yaml:"macros"`
	Log     Log     `toml:"log" yaml:"log"`
	UI      UI      `toml:"ui" yaml:"ui"`

	// Keymaps maps a mode name ("normal", "insert", "visual", "command",
	// "operator-pending" or "global") to key sequences and actions.
	Keymaps map[string]map[string]string `toml:"keymaps" yaml:"keymaps"`
}

// Editing holds buffer and indentation settings.
type Editing struct {
	UndoLevels int  `toml:"undo_levels" yaml:"undo_levels"`
	ShiftWidth int  `toml:"shift_width" yaml:"shift_width"`
	TabWidth   int  `toml:"tab_width" yaml:"tab_width"`
	ExpandTab  bool `toml:"expand_tab" yaml:"expand_tab"`
}

// Macros holds macro recorder settings.
type Macros struct {
	// StopKey is a single key in vim notation, e.g. "q" or "<Esc>".
	StopKey string `toml:"stop_key" yaml:"stop_key"`
	// PersistPath is where macros are saved on exit. Empty disables it.
	PersistPath string `toml:"persist_path" yaml:"persist_path"`
}

// Log holds logger settings.
type Log struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// UI holds display settings.
type UI struct {
	ShowLineNumbers bool `toml:"show_line_numbers" yaml:"show_line_numbers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editing: Editing{
			UndoLevels: 1000,
			ShiftWidth: 4,
			TabWidth:   4,
		},
		Macros: Macros{StopKey: "q"},
		Log:    Log{Level: "info"},
	}
}

// Load reads and validates the file at path. Settings missing from the
// file keep their defaults. A missing file yields an error wrapping
// ErrFileNotFound.
func Load(fsys vfs.Reader, path string) (*Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data over the defaults. The format is chosen by the
// extension of path: .toml, .yaml or .yml. Unknown settings are errors.
func Parse(path string, data []byte) (*Config, error) {
	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, tomlParseError(path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return nil, &ParseError{
			Path:    path,
			Message: fmt.Sprintf("extension %q", ext),
			Err:     ErrUnsupportedFormat,
		}
	}
	return cfg, nil
}

func tomlParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}

	var de *toml.DecodeError
	var se *toml.StrictMissingError
	switch {
	case errors.As(err, &de):
		pe.Line, pe.Column = de.Position()
	case errors.As(err, &se) && len(se.Errors) > 0:
		pe.Line, pe.Column = se.Errors[0].Position()
		pe.Message = "unknown setting " + strings.Join(se.Errors[0].Key(), ".")
	}
	return pe
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	checkRange := func(path string, v, lo, hi int) {
		if v < lo || v > hi {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("must be between %d and %d", lo, hi),
				Value:   v,
				Code:    ErrCodeOutOfRange,
			})
		}
	}
	checkRange("editing.undo_levels", c.Editing.UndoLevels, 1, MaxUndoLevels)
	checkRange("editing.shift_width", c.Editing.ShiftWidth, 1, MaxIndent)
	checkRange("editing.tab_width", c.Editing.TabWidth, 1, MaxIndent)

	if _, err := c.StopKey(); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "macros.stop_key",
			Message: err.Error(),
			Value:   c.Macros.StopKey,
			Code:    ErrCodeInvalidKey,
		})
	}

	if _, ok := logging.ParseLogLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	if _, err := keymap.FromConfig(c.Keymaps); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "keymaps",
			Message: err.Error(),
			Value:   len(c.Keymaps),
			Code:    ErrCodeInvalidKeymap,
		})
	}

	return errors.Join(errs...)
}

// StopKey parses Macros.StopKey. It must name exactly one key.
func (c *Config) StopKey() (key.Event, error) {
	events, err := key.ParseSequence(c.Macros.StopKey)
	if err != nil {
		return key.Event{}, err
	}
	if len(events) != 1 {
		return key.Event{}, fmt.Errorf("want one key, got %d", len(events))
	}
	return events[0], nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLogLevel(c.Log.Level)
	return level
}

// DefaultPath returns the default config file location under the
// user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "modalcore", "config.toml"), nil
}
