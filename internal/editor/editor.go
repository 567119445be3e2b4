package editor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/modalcore/internal/completion"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/logging"
	"github.com/dshills/modalcore/internal/vfs"
)

// PathResolver turns a path typed on the command line into the path used
// to read and write the file.
type PathResolver func(path string) (string, error)

// DefaultPathResolver expands a leading "~" to the home directory and
// makes the result absolute through fs.
func DefaultPathResolver(fs vfs.FS) PathResolver {
	return func(path string) (string, error) {
		if path == "~" || strings.HasPrefix(path, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			path = filepath.Join(home, path[1:])
		}
		return fs.Abs(path)
	}
}

// Editor owns the open buffers and the modal state.
type Editor struct {
	fs        vfs.FS
	resolve   PathResolver
	table     *completion.Table
	registers *buffer.Registers
	logger    *logging.Logger

	buffers map[int]*buffer.Buffer
	nextID  int
	current int

	mode      mode.Mode
	observers []mode.ChangeCallback
	// insertBuf is the buffer whose undo group was opened on entering
	// Insert mode; insertGroup closes it.
	insertBuf   *buffer.Buffer
	insertGroup *history.GroupScope

	commandLine string
	status      string
	completion  *completion.Completion

	settings Settings
	quit     bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithFS sets the file system used to load and save buffers. The default
// is the OS file system.
func WithFS(fs vfs.FS) Option {
	return func(e *Editor) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// WithPathResolver sets how command-line paths are resolved.
func WithPathResolver(r PathResolver) Option {
	return func(e *Editor) {
		if r != nil {
			e.resolve = r
		}
	}
}

// WithCommandTable sets the ex commands and settings.
func WithCommandTable(t *completion.Table) Option {
	return func(e *Editor) {
		if t != nil {
			e.table = t
		}
	}
}

// WithSettings sets the initial settings.
func WithSettings(s Settings) Option {
	return func(e *Editor) {
		e.settings = s
	}
}

// WithHistoryDepth sets the undo depth of new buffers.
func WithHistoryDepth(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.settings.UndoLevels = n
		}
	}
}

// WithShiftWidth sets the indent width of new buffers.
func WithShiftWidth(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.settings.ShiftWidth = n
		}
	}
}

// WithExternalRegisters backs the "+ and "* registers, usually with the
// system clipboard.
func WithExternalRegisters(ext buffer.ExternalRegisters) Option {
	return func(e *Editor) {
		e.registers = buffer.NewRegisters(ext)
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

// New creates an editor in Normal mode with no buffers.
func New(opts ...Option) *Editor {
	e := &Editor{
		buffers:  make(map[int]*buffer.Buffer),
		nextID:   1,
		mode:     mode.Normal(),
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fs == nil {
		e.fs = vfs.NewOSFS()
	}
	if e.resolve == nil {
		e.resolve = DefaultPathResolver(e.fs)
	}
	if e.table == nil {
		e.table = completion.DefaultTable()
	}
	if e.registers == nil {
		e.registers = buffer.NewRegisters(nil)
	}
	e.logger = logging.OrNull(e.logger).WithComponent("editor")
	e.completion = completion.New(e.table)
	return e
}

// FS returns the file system buffers are loaded from.
func (e *Editor) FS() vfs.FS { return e.fs }

// Registers returns the register store shared by all buffers.
func (e *Editor) Registers() *buffer.Registers { return e.registers }

// Logger returns the editor's logger.
func (e *Editor) Logger() *logging.Logger { return e.logger }

// Mode returns the current mode.
func (e *Editor) Mode() mode.Mode { return e.mode }

// OnModeChange registers fn to run after every mode change.
func (e *Editor) OnModeChange(fn mode.ChangeCallback) {
	e.observers = append(e.observers, fn)
}

// SetMode switches to m. Setting the current mode again does nothing.
//
// Entering Insert opens an undo group on the current buffer and leaving
// Insert closes it, so one insert session undoes as one step. Leaving the
// visual modes drops the selection, and leaving Command mode clears the
// command line and any completion.
func (e *Editor) SetMode(m mode.Mode) {
	from := e.mode
	if from == m {
		return
	}
	e.mode = m

	if from.Is(mode.KindInsert) {
		e.endInsertGroup()
	}
	if m.Is(mode.KindInsert) {
		if b := e.CurrentBuffer(); b != nil {
			e.insertGroup = b.Group("insert")
			e.insertBuf = b
		}
	}
	if from.IsVisual() && !m.IsVisual() {
		if b := e.CurrentBuffer(); b != nil {
			b.ClearVisualSelection()
		}
	}
	if from.Is(mode.KindCommand) && !m.Is(mode.KindCommand) {
		e.commandLine = ""
		e.completion.Cancel()
	}

	e.logger.Debug("mode %s -> %s", from, m)
	for _, fn := range e.observers {
		fn(from, m)
	}
}

func (e *Editor) endInsertGroup() {
	if e.insertGroup != nil {
		e.insertGroup.End()
	}
	e.insertGroup = nil
	e.insertBuf = nil
}

// PendingOperator returns the operator and count waiting for a motion.
// ok is false unless the mode is operator-pending.
func (e *Editor) PendingOperator() (op vim.OperatorKind, count int, ok bool) {
	return e.mode.Operator()
}

// SetPendingOperator enters operator-pending mode. count is the count
// typed before the operator, zero when none was typed.
func (e *Editor) SetPendingOperator(op vim.OperatorKind, count int) {
	e.SetMode(mode.OperatorPending(op, count))
}

// ClearPendingOperator returns to Normal mode if an operator is pending.
func (e *Editor) ClearPendingOperator() {
	if e.mode.Is(mode.KindOperatorPending) {
		e.SetMode(mode.Normal())
	}
}

// StatusMessage returns the status line text.
func (e *Editor) StatusMessage() string { return e.status }

// SetStatusMessage replaces the status line text.
func (e *Editor) SetStatusMessage(msg string) { e.status = msg }

// QuitRequested reports whether a quit command succeeded.
func (e *Editor) QuitRequested() bool { return e.quit }

// RequestQuit marks the editor for shutdown without checking for unsaved
// changes.
func (e *Editor) RequestQuit() { e.quit = true }
