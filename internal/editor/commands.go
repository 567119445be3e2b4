package editor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/modalcore/internal/completion"
	"github.com/dshills/modalcore/internal/engine/buffer"
)

// ExecuteCommand runs an ex command line such as "w", "e notes.txt",
// "bd!" or "set sw=2". A leading ":" is optional. Successful commands may
// set the status message; errors are returned for the caller to report.
func (e *Editor) ExecuteCommand(line string) error {
	name, bang, arg := parseCommand(line)
	if name == "" {
		return nil
	}
	cmd, ok := e.table.Command(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if bang && !cmd.Bang {
		return fmt.Errorf("%w: %s does not take !", ErrInvalidArgument, cmd.Name)
	}
	e.logger.Debug("command %s bang=%t arg=%q", cmd.Name, bang, arg)

	switch cmd.Name {
	case "quit":
		return e.quitCommand(bang)
	case "write":
		return e.writeCommand(arg)
	case "wq":
		if err := e.writeCommand(arg); err != nil {
			return err
		}
		return e.quitCommand(false)
	case "edit":
		return e.editCommand(arg, bang)
	case "buffer":
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: buffer %q", ErrInvalidArgument, arg)
		}
		return e.SwitchToBuffer(id)
	case "bnext":
		e.NextBuffer()
	case "bprevious":
		e.PrevBuffer()
	case "bdelete":
		id := e.current
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%w: buffer %q", ErrInvalidArgument, arg)
			}
			id = n
		}
		return e.CloseBuffer(id, bang)
	case "buffers":
		e.status = e.ListBuffers()
	case "set":
		for _, tok := range strings.Fields(arg) {
			if err := e.setOption(tok); err != nil {
				return err
			}
		}
	default:
		// The table knows a command this editor does not implement.
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name)
	}
	return nil
}

// parseCommand splits "name[!] arg" with the name being a run of letters.
func parseCommand(line string) (name string, bang bool, arg string) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimPrefix(line, ":"))
	end := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return line, false, ""
	}
	name, rest := line[:end], line[end:]
	if strings.HasPrefix(rest, "!") {
		bang = true
		rest = rest[1:]
	}
	return name, bang, strings.TrimSpace(rest)
}

func (e *Editor) quitCommand(force bool) error {
	if !force {
		for _, id := range e.BufferIDs() {
			if e.buffers[id].Modified() {
				return fmt.Errorf("%w: buffer %d", ErrBufferModified, id)
			}
		}
	}
	e.quit = true
	return nil
}

func (e *Editor) writeCommand(arg string) error {
	b := e.CurrentBuffer()
	if b == nil {
		return ErrNoSuchBuffer
	}
	path := b.Path()
	if arg != "" {
		p, err := e.resolve(arg)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		path = p
	}
	if path == "" {
		return ErrNoFileName
	}
	if err := b.SaveAs(e.fs, path); err != nil {
		e.logger.Error("write failed: %v", err)
		return err
	}
	e.status = fmt.Sprintf("%q %dL written", filepath.Base(path), b.LineCount())
	return nil
}

func (e *Editor) editCommand(arg string, force bool) error {
	if arg == "" {
		if !force {
			return ErrNoFileName
		}
		return e.reload()
	}
	path, err := e.resolve(arg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if id, ok := e.BufferByPath(path); ok {
		e.current = id
		return nil
	}
	if !e.fs.Exists(path) {
		e.createEmpty(path)
		e.status = fmt.Sprintf("%q [New File]", filepath.Base(path))
		return nil
	}
	id, err := e.CreateBuffer(path)
	if err != nil {
		return err
	}
	e.status = fmt.Sprintf("%q %dL", filepath.Base(path), e.buffers[id].LineCount())
	return nil
}

// reload replaces the current buffer with the file on disk, discarding
// changes and history.
func (e *Editor) reload() error {
	old := e.CurrentBuffer()
	if old == nil || old.Path() == "" {
		return ErrNoFileName
	}
	b, err := buffer.Load(e.fs, old.Path(),
		buffer.WithID(e.current),
		buffer.WithHistoryDepth(e.settings.UndoLevels),
		buffer.WithShiftWidth(e.settings.ShiftWidth),
		buffer.WithRegisters(e.registers),
	)
	if err != nil {
		return err
	}
	e.buffers[e.current] = b
	return nil
}

// setOption applies one :set token: "opt", "noopt", "opt=N" or "opt?".
func (e *Editor) setOption(tok string) error {
	if name, val, ok := strings.Cut(tok, "="); ok {
		s, found := e.table.Setting(name)
		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}
		if s.Kind != completion.SettingInt {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, tok)
		}
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, tok)
		}
		return e.assign(s.Name, n, false)
	}

	if name, ok := strings.CutSuffix(tok, "?"); ok {
		s, found := e.table.Setting(name)
		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownOption, name)
		}
		e.status = e.describe(s)
		return nil
	}

	if s, found := e.table.Setting(tok); found {
		if s.Kind == completion.SettingInt {
			e.status = e.describe(s)
			return nil
		}
		return e.assign(s.Name, 0, true)
	}
	if name, ok := strings.CutPrefix(tok, "no"); ok {
		if s, found := e.table.Setting(name); found && s.Kind == completion.SettingBool {
			return e.assign(s.Name, 0, false)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownOption, tok)
}

func (e *Editor) assign(name string, n int, on bool) error {
	s := e.settings
	switch name {
	case "number":
		s.Number = on
	case "relativenumber":
		s.RelativeNumber = on
	case "ignorecase":
		s.IgnoreCase = on
	case "wrap":
		s.Wrap = on
	case "expandtab":
		s.ExpandTab = on
	case "tabstop":
		s.TabStop = n
	case "shiftwidth":
		s.ShiftWidth = n
	case "undolevels":
		s.UndoLevels = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	e.ApplySettings(s)
	return nil
}

func (e *Editor) describe(s completion.Setting) string {
	cur := e.settings
	switch s.Name {
	case "number":
		return boolOption(s.Name, cur.Number)
	case "relativenumber":
		return boolOption(s.Name, cur.RelativeNumber)
	case "ignorecase":
		return boolOption(s.Name, cur.IgnoreCase)
	case "wrap":
		return boolOption(s.Name, cur.Wrap)
	case "expandtab":
		return boolOption(s.Name, cur.ExpandTab)
	case "tabstop":
		return fmt.Sprintf("tabstop=%d", cur.TabStop)
	case "shiftwidth":
		return fmt.Sprintf("shiftwidth=%d", cur.ShiftWidth)
	case "undolevels":
		return fmt.Sprintf("undolevels=%d", cur.UndoLevels)
	}
	return s.Name
}

func boolOption(name string, on bool) string {
	if on {
		return "  " + name
	}
	return "no" + name
}
