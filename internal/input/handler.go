package input

import (
	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/logging"
)

// Handler is the main entry point for input processing. It resolves key
// events against the keymap registry and runs the bound actions on the
// editor. A Handler is not safe for concurrent use; the app drives it from
// its single input goroutine.
type Handler struct {
	// Keymap registry
	registry *keymap.Registry

	// Pending count, register and key sequence
	context *Context

	// Macro middleware, if installed
	macros MacroControl

	// Last change, for .
	changes changeRecorder

	// Last f/F/t/T search, for ; and ,
	lastFind vim.CharSearch
	hasFind  bool

	// Nesting of HandleKey; . and macros feed keys back in.
	depth int

	logger *logging.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) {
		h.logger = logging.OrNull(l).WithComponent("input")
	}
}

// NewHandler creates a handler that resolves keys through registry. A nil
// registry is replaced by one holding the default keymaps.
func NewHandler(registry *keymap.Registry, opts ...Option) *Handler {
	h := &Handler{
		registry: registry,
		context:  NewContext(),
		logger:   logging.OrNull(nil),
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.registry == nil {
		h.registry = keymap.NewRegistry()
		if err := keymap.LoadDefaults(h.registry); err != nil {
			h.logger.Error("loading default keymaps: %v", err)
		}
	}
	return h
}

// Registry returns the keymap registry.
func (h *Handler) Registry() *keymap.Registry {
	return h.registry
}

// Context returns a copy of the pending input state.
func (h *Handler) Context() *Context {
	return h.context.Clone()
}

// SetMacroControl installs the macro middleware that q and @ drive.
// Without one those keys do nothing.
func (h *Handler) SetMacroControl(mc MacroControl) {
	h.macros = mc
}

// Reset drops any pending count, register or partial key sequence.
func (h *Handler) Reset() {
	h.context.ClearPending()
	h.changes.cancel()
}

// HandleKey processes one key event. Errors are also written to the
// status line, so callers may treat them as informational.
func (h *Handler) HandleKey(ed *editor.Editor, ev key.Event) error {
	h.depth++
	defer func() { h.depth-- }()
	top := h.depth == 1
	if top {
		h.changes.begin(ed, h.context)
	}

	err := h.handle(ed, ev)
	if top {
		h.changes.observe(ed, h.context, ev)
	}
	if err != nil {
		ed.SetStatusMessage(err.Error())
		h.logger.Debug("key %s: %v", ev, err)
	}
	return err
}

func (h *Handler) handle(ed *editor.Editor, ev key.Event) error {
	if ev.Key == key.KeyNone || (ev.Key == key.KeyRune && ev.Rune == 0) {
		return &InputError{Key: ev.Notation(), Reason: "malformed key event"}
	}

	b := ed.CurrentBuffer()
	if b == nil {
		return nil
	}

	if h.context.Awaiting != PrefixNone {
		return h.handlePrefix(ed, b, ev)
	}

	m := ed.Mode()
	if m.Is(mode.KindInsert) || m.Is(mode.KindCommand) {
		return h.handleText(ed, b, ev)
	}
	return h.handleCommand(ed, b, ev)
}

// handleCommand handles normal, visual and operator-pending modes, where
// digits build a count and unbound keys are ignored.
func (h *Handler) handleCommand(ed *editor.Editor, b *buffer.Buffer, ev key.Event) error {
	if len(h.context.PendingSequence) == 0 && ev.IsDigit() && h.context.Count.AccumulateDigit(ev.Rune) {
		return nil
	}

	seq := h.context.AppendToSequence(ev)
	binding, res := h.registry.Resolve(keymap.ModeFor(ed.Mode()), seq)
	switch res {
	case keymap.Partial:
		return nil
	case keymap.Match:
		h.context.ClearSequence()
		return h.run(ed, b, binding.Action)
	}

	h.context.ClearSequence()
	if len(seq) > 1 {
		// The prefix led nowhere; the last key may still start something.
		return h.handle(ed, ev)
	}

	// Mode, pending operator, count and register survive.
	h.logger.Debug("unbound key %s in %s", ev, ed.Mode())
	return nil
}

// handleText handles insert and command-line modes, where unbound
// printable keys are text.
func (h *Handler) handleText(ed *editor.Editor, b *buffer.Buffer, ev key.Event) error {
	seq := h.context.AppendToSequence(ev)
	binding, res := h.registry.Resolve(keymap.ModeFor(ed.Mode()), seq)
	switch res {
	case keymap.Partial:
		return nil
	case keymap.Match:
		h.context.ClearSequence()
		return h.run(ed, b, binding.Action)
	}

	h.context.ClearSequence()
	if len(seq) > 1 {
		for _, prev := range seq[:len(seq)-1] {
			h.insertText(ed, b, prev)
		}
		return h.handle(ed, ev)
	}
	h.insertText(ed, b, ev)
	return nil
}

func (h *Handler) insertText(ed *editor.Editor, b *buffer.Buffer, ev key.Event) {
	if !ev.IsChar() {
		return
	}
	if ed.Mode().Is(mode.KindCommand) {
		ed.AppendCommandLine(ev.Rune)
		return
	}
	b.InsertChar(ev.Rune)
}

// handlePrefix consumes the key after ", q, @, r or a character search.
func (h *Handler) handlePrefix(ed *editor.Editor, b *buffer.Buffer, ev key.Event) error {
	prefix := h.context.Awaiting
	h.context.Awaiting = PrefixNone

	if ev.IsEscape() {
		h.context.ClearPending()
		b.ClearActiveRegister()
		if prefix == PrefixFind && ed.Mode().Is(mode.KindOperatorPending) {
			ed.ClearPendingOperator()
		}
		return nil
	}

	name := ev.Rune
	if !ev.IsRune() || ev.IsModified() {
		name = 0
	}

	switch prefix {
	case PrefixRegister:
		if name == 0 || !b.SetActiveRegister(name) {
			h.context.ClearPending()
			b.ClearActiveRegister()
			return &InputError{Key: ev.Notation(), Reason: "invalid register"}
		}
		h.context.PendingRegister = name
		return nil

	case PrefixMacroRecord:
		h.context.ClearPending()
		if name == 0 {
			return &InputError{Key: ev.Notation(), Reason: "invalid register"}
		}
		return h.macros.StartRecording(ed, name)

	case PrefixMacroPlay:
		count := h.context.Count.Get()
		h.context.ClearPending()
		switch name {
		case 0:
			return &InputError{Key: ev.Notation(), Reason: "invalid register"}
		case '@':
			return h.macros.PlayLast(ed, count)
		}
		return h.macros.Play(ed, name, count)

	case PrefixFind:
		count := h.context.Count.Raw()
		defer h.finish(ed)
		ch, ok := argumentChar(ev)
		if !ok {
			if ed.Mode().Is(mode.KindOperatorPending) {
				ed.ClearPendingOperator()
			}
			return nil
		}
		h.lastFind = vim.CharSearch{Kind: h.context.Find, Char: ch}
		h.hasFind = true
		h.motion(ed, b, h.lastFind.Motion(false), count)

	case PrefixReplace:
		count := h.context.Count.Raw()
		defer h.finish(ed)
		ch, ok := argumentChar(ev)
		if !ok {
			return nil
		}
		b.ReplaceChars(ch, count)
	}
	return nil
}

// argumentChar is the character a key stands for after f or r. Enter and
// Tab count as characters; other special keys do not.
func argumentChar(ev key.Event) (rune, bool) {
	switch {
	case ev.IsModified():
		return 0, false
	case ev.IsRune():
		return ev.Rune, true
	case ev.Key == key.KeyTab:
		return '\t', true
	case ev.Key == key.KeyEnter:
		return '\n', true
	}
	return 0, false
}

// run executes a bound action with the pending count.
func (h *Handler) run(ed *editor.Editor, b *buffer.Buffer, action string) error {
	switch action {
	case keymap.ActionNop:
		h.finish(ed)
		return nil
	case "register.select":
		h.context.Awaiting = PrefixRegister
		return nil
	case "macro.record":
		if h.macros == nil {
			h.finish(ed)
			return nil
		}
		if h.macros.Recording() {
			h.finish(ed)
			return h.macros.StopRecording(ed)
		}
		h.context.Awaiting = PrefixMacroRecord
		return nil
	case "macro.play":
		if h.macros == nil {
			h.finish(ed)
			return nil
		}
		h.changes.skip = true
		h.context.Awaiting = PrefixMacroPlay
		return nil
	case "editor.replaceChar":
		h.context.Awaiting = PrefixReplace
		return nil
	case "editor.undo", "editor.redo", "editor.repeat":
		h.changes.skip = true
	}
	if kind, ok := vim.FindKindForAction(action); ok {
		h.context.Find = kind
		h.context.Awaiting = PrefixFind
		return nil
	}

	count := h.context.Count.Raw()
	defer h.finish(ed)

	if m, ok := vim.LookupMotion(action); ok {
		h.motion(ed, b, m, count)
		return nil
	}
	if obj, ok := vim.LookupTextObject(action); ok {
		h.textObject(ed, b, obj, count)
		return nil
	}
	if op, ok := vim.OperatorForAction(action); ok {
		h.operator(ed, b, op.Kind, count)
		return nil
	}
	fn, ok := actions[action]
	if !ok {
		h.logger.Warn("unknown action %q", action)
		return nil
	}
	return fn(h, ed, b, count)
}

// finish ends a command: the count is spent, an unused register choice is
// dropped unless an operator still waits for its motion, and in normal
// mode the cursor is kept on a character.
func (h *Handler) finish(ed *editor.Editor) {
	h.context.Count.Reset()

	b := ed.CurrentBuffer()
	if b == nil {
		return
	}
	m := ed.Mode()
	if !m.Is(mode.KindOperatorPending) {
		h.context.PendingRegister = 0
		b.ClearActiveRegister()
	}
	if m.Is(mode.KindNormal) || m.Is(mode.KindOperatorPending) {
		c := b.Cursor()
		b.MoveCursor(onChar(b, c))
	}
}

// onChar clamps p onto the last character of its line, as normal mode
// never rests on the end-of-line caret.
func onChar(b *buffer.Buffer, p buffer.Position) buffer.Position {
	p.Col = max(min(p.Col, b.LineLen(p.Row)-1), 0)
	return p
}
