package input

import (
	"fmt"
	"strings"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
)

// actionFunc runs a bound action. count is the typed count, zero when none
// was typed.
type actionFunc func(h *Handler, ed *editor.Editor, b *buffer.Buffer, count int) error

// actions maps action names to implementations. Motions and operators are
// resolved through the vim package instead.
var actions map[string]actionFunc

func init() {
	actions = map[string]actionFunc{
		// Mode switching
		"mode.normal":          toNormal,
		"mode.insert":          enterInsert(nil),
		"mode.insertLineStart": enterInsert((*buffer.Buffer).MoveToFirstNonBlank),
		"mode.append":          enterInsert(moveAppend),
		"mode.appendLineEnd":   enterInsert((*buffer.Buffer).MoveToLineEnd),
		"mode.openBelow":       openLine((*buffer.Buffer).OpenLineBelow),
		"mode.openAbove":       openLine((*buffer.Buffer).OpenLineAbove),
		"mode.visual":          toggleVisual(mode.Visual(), buffer.SelectCharacter),
		"mode.visualLine":      toggleVisual(mode.VisualLine(), buffer.SelectLine),
		"mode.visualBlock":     toggleVisual(mode.VisualBlock(), buffer.SelectBlock),
		"mode.command":         enterCommand,

		// Normal mode edits
		"editor.deleteChar":       deleteChar,
		"editor.deleteCharBefore": deleteCharBefore,
		"editor.deleteToEnd":      motionOperator(vim.OpDelete, vim.MotionLineEnd),
		"editor.changeToEnd":      motionOperator(vim.OpChange, vim.MotionLineEnd),
		"editor.substituteChar":   motionOperator(vim.OpChange, vim.MotionRight),
		"editor.substituteLine":   substituteLine,
		"editor.yankLine":         yankLine,
		"editor.joinLines":        joinLines,
		"editor.putAfter":         putAfter,
		"editor.putBefore":        putBefore,
		"editor.undo":             undo,
		"editor.redo":             redo,
		"editor.indentLine":       indentLine,
		"editor.unindentLine":     unindentLine,
		"editor.yankWord":         func(_ *Handler, _ *editor.Editor, b *buffer.Buffer, _ int) error { b.YankWord(); return nil },
		"editor.repeat":           repeatChange,

		// Character search repeats
		"find.repeat":  repeatFind(false),
		"find.reverse": repeatFind(true),

		// Insert mode
		"insert.newline":   func(_ *Handler, _ *editor.Editor, b *buffer.Buffer, _ int) error { b.InsertLineBreak(); return nil },
		"insert.backspace": func(_ *Handler, _ *editor.Editor, b *buffer.Buffer, _ int) error { b.DeleteChar(); return nil },
		"insert.delete":    func(_ *Handler, _ *editor.Editor, b *buffer.Buffer, _ int) error { b.DeleteCharAtCursor(); return nil },
		"insert.tab":       insertTab,
		"insert.deleteWordBackward": func(_ *Handler, _ *editor.Editor, b *buffer.Buffer, _ int) error {
			b.DeleteWordBackward()
			return nil
		},

		// Visual mode
		"selection.yank":        selectionAction(vim.OpYank),
		"selection.delete":      selectionAction(vim.OpDelete),
		"selection.change":      selectionAction(vim.OpChange),
		"selection.indentRight": selectionAction(vim.OpIndent),
		"selection.indentLeft":  selectionAction(vim.OpUnindent),
		"selection.toggleCase":  selectionAction(vim.OpToggleCase),

		// Command line
		"command.cancel":       cancelCommand,
		"command.execute":      executeCommand,
		"command.backspace":    commandBackspace,
		"command.complete":     complete(true),
		"command.completePrev": complete(false),
	}
}

// motion moves the cursor, extends the selection or completes a pending
// operator, depending on the mode.
func (h *Handler) motion(ed *editor.Editor, b *buffer.Buffer, m vim.Motion, count int) {
	md := ed.Mode()
	switch {
	case md.Is(mode.KindOperatorPending):
		op, opCount, _ := md.Operator()
		r, ok := vim.RangeFor(b, m, op, vim.CombineCounts(opCount, count))
		if !ok {
			ed.ClearPendingOperator()
			return
		}
		h.applyOperator(ed, b, op, r)
	case md.IsVisual():
		b.UpdateVisualSelection(onChar(b, m.Target(b, b.Cursor(), count)))
	case md.Is(mode.KindInsert):
		b.MoveCursor(m.Target(b, b.Cursor(), count))
	default:
		b.MoveCursor(onChar(b, m.Target(b, b.Cursor(), count)))
	}
}

// textObject completes a pending operator with the object, or in visual
// mode selects it. A change may act on an empty object, such as ci( on
// "()", and then just enters insert mode between the brackets.
func (h *Handler) textObject(ed *editor.Editor, b *buffer.Buffer, obj vim.TextObject, count int) {
	md := ed.Mode()
	switch {
	case md.Is(mode.KindOperatorPending):
		op, opCount, _ := md.Operator()
		r, ok := obj.Select(b, b.Cursor(), vim.CombineCounts(opCount, count))
		if !ok || (r.Empty() && op != vim.OpChange) {
			ed.ClearPendingOperator()
			return
		}
		if r.Empty() {
			b.MoveCursor(r.Start)
		}
		h.applyOperator(ed, b, op, r)
	case md.IsVisual():
		r, ok := obj.Select(b, b.Cursor(), count)
		if !ok || r.Empty() {
			return
		}
		if r.Linewise {
			b.SetVisualSelection(r.Start, buffer.Position{Row: r.End.Row}, buffer.SelectLine)
			ed.SetMode(mode.VisualLine())
			return
		}
		last := buffer.Position{Row: r.End.Row, Col: r.End.Col - 1}
		if r.End.Col == 0 {
			last = onChar(b, buffer.Position{Row: r.End.Row - 1, Col: b.LineLen(r.End.Row - 1)})
		}
		b.SetVisualSelection(r.Start, last, buffer.SelectCharacter)
		ed.SetMode(mode.Visual())
	}
}

// repeatFind is ; and , : the last character search again, the same way
// or reversed.
func repeatFind(reverse bool) actionFunc {
	return func(h *Handler, ed *editor.Editor, b *buffer.Buffer, count int) error {
		if !h.hasFind {
			return nil
		}
		s := h.lastFind
		if reverse {
			s = s.Reverse()
		}
		h.motion(ed, b, s.Motion(true), count)
		return nil
	}
}

// operator starts an operator in normal mode. Typed again while pending it
// acts on count whole lines (dd, 3yy); any other operator cancels.
func (h *Handler) operator(ed *editor.Editor, b *buffer.Buffer, op vim.OperatorKind, count int) {
	md := ed.Mode()
	switch {
	case md.IsVisual():
		h.applySelection(ed, b, op)
	case md.Is(mode.KindOperatorPending):
		pending, opCount, _ := md.Operator()
		if pending != op {
			ed.ClearPendingOperator()
			return
		}
		h.applyOperator(ed, b, op, vim.LineRange(b, vim.CombineCounts(opCount, count)))
	default:
		ed.SetPendingOperator(op, count)
	}
}

// applyOperator runs op over r and leaves the mode the operator asks for.
// A change and the text typed after it undo together.
func (h *Handler) applyOperator(ed *editor.Editor, b *buffer.Buffer, op vim.OperatorKind, r vim.Range) {
	if op == vim.OpChange {
		defer b.Group("change").End()
		vim.Apply(b, op, r)
		ed.SetMode(mode.Insert())
		return
	}
	vim.Apply(b, op, r)
	ed.SetMode(mode.Normal())
}

// applySelection runs op over the visual selection and leaves visual mode.
func (h *Handler) applySelection(ed *editor.Editor, b *buffer.Buffer, op vim.OperatorKind) {
	if !b.HasSelection() {
		ed.SetMode(mode.Normal())
		return
	}
	// Visual mode shows the cursor on a character, so that character is
	// part of the selection.
	b.IncludeSelectionEnd()

	switch op {
	case vim.OpYank:
		b.YankSelection()
	case vim.OpDelete:
		b.DeleteSelection()
	case vim.OpChange:
		defer b.Group("change").End()
		b.ChangeSelection()
		ed.SetMode(mode.Insert())
		return
	case vim.OpIndent:
		b.IndentSelection()
	case vim.OpUnindent:
		b.UnindentSelection()
	case vim.OpToggleCase:
		b.ToggleCaseSelection()
	}
	ed.SetMode(mode.Normal())
}

func selectionAction(op vim.OperatorKind) actionFunc {
	return func(h *Handler, ed *editor.Editor, b *buffer.Buffer, _ int) error {
		h.applySelection(ed, b, op)
		return nil
	}
}

// motionOperator builds shorthands such as D (d$) and s (cl).
func motionOperator(op vim.OperatorKind, m vim.Motion) actionFunc {
	return func(h *Handler, ed *editor.Editor, b *buffer.Buffer, count int) error {
		if r, ok := vim.RangeFor(b, m, op, count); ok {
			h.applyOperator(ed, b, op, r)
		}
		return nil
	}
}

func substituteLine(h *Handler, ed *editor.Editor, b *buffer.Buffer, count int) error {
	h.applyOperator(ed, b, vim.OpChange, vim.LineRange(b, count))
	return nil
}

func toNormal(_ *Handler, ed *editor.Editor, b *buffer.Buffer, _ int) error {
	wasInsert := ed.Mode().Is(mode.KindInsert)
	ed.SetMode(mode.Normal())
	if wasInsert {
		b.MoveLeft(1)
	}
	return nil
}

func enterInsert(move func(*buffer.Buffer)) actionFunc {
	return func(_ *Handler, ed *editor.Editor, b *buffer.Buffer, _ int) error {
		if move != nil {
			move(b)
		}
		ed.SetMode(mode.Insert())
		return nil
	}
}

func moveAppend(b *buffer.Buffer) {
	if b.LineLen(b.Cursor().Row) > 0 {
		b.MoveRight(1)
	}
}

// openLine enters insert mode before opening the line so the new line and
// the text typed on it undo as one step.
func openLine(open func(*buffer.Buffer)) actionFunc {
	return func(_ *Handler, ed *editor.Editor, b *buffer.Buffer, _ int) error {
		ed.SetMode(mode.Insert())
		open(b)
		return nil
	}
}

// toggleVisual enters visual mode of the given kind, switches kind when
// another visual mode is active, and leaves when the same one is.
func toggleVisual(target mode.Mode, kind buffer.SelectionKind) actionFunc {
	return func(_ *Handler, ed *editor.Editor, b *buffer.Buffer, _ int) error {
		md := ed.Mode()
		switch {
		case md == target:
			ed.SetMode(mode.Normal())
		case md.IsVisual():
			b.SetSelectionKind(kind)
			ed.SetMode(target)
		default:
			b.StartVisualSelection()
			b.SetSelectionKind(kind)
			ed.SetMode(target)
		}
		return nil
	}
}

func enterCommand(_ *Handler, ed *editor.Editor, _ *buffer.Buffer, _ int) error {
	ed.SetCommandLine("")
	ed.SetMode(mode.Command())
	return nil
}

// deleteChar is x: count characters from the cursor, not past the line.
func deleteChar(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	c := b.Cursor()
	n := b.LineLen(c.Row)
	if c.Col >= n {
		return nil
	}
	if count <= 1 {
		b.DeleteCharAtCursor()
		return nil
	}
	b.DeleteRange(c, buffer.Position{Row: c.Row, Col: min(c.Col+count, n)})
	return nil
}

// deleteCharBefore is X: count characters left of the cursor.
func deleteCharBefore(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	c := b.Cursor()
	if count <= 1 {
		b.DeleteCharBeforeCursor()
		return nil
	}
	b.DeleteRange(buffer.Position{Row: c.Row, Col: max(c.Col-count, 0)}, c)
	return nil
}

func yankLine(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	b.YankLines(max(count, 1))
	return nil
}

// joinLines is J: a count of n joins n lines, and no count joins two.
func joinLines(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	defer b.Group("join").End()
	for range max(count, 2) - 1 {
		b.JoinLines()
	}
	return nil
}

func putAfter(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	b.PutAfterCount(max(count, 1))
	return nil
}

func putBefore(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	b.PutBeforeCount(max(count, 1))
	return nil
}

// undo reverts count steps and names the last one in the status line.
func undo(_ *Handler, ed *editor.Editor, b *buffer.Buffer, count int) error {
	return stepHistory(ed, count, b.UndoName, b.Undo, "undo", "Already at oldest change")
}

func redo(_ *Handler, ed *editor.Editor, b *buffer.Buffer, count int) error {
	return stepHistory(ed, count, b.RedoName, b.Redo, "redo", "Already at newest change")
}

func stepHistory(ed *editor.Editor, count int, peek func() (string, bool), step func() bool, verb, exhausted string) error {
	var last string
	n := 0
	for range max(count, 1) {
		name, ok := peek()
		if !ok || !step() {
			break
		}
		last = name
		n++
	}
	switch {
	case n == 0:
		ed.SetStatusMessage(exhausted)
	case n == 1:
		ed.SetStatusMessage(fmt.Sprintf("%s: %s", verb, last))
	default:
		ed.SetStatusMessage(fmt.Sprintf("%s %d changes: %s", verb, n, last))
	}
	return nil
}

func indentLine(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	b.IndentLines(b.Cursor().Row, max(count, 1))
	return nil
}

func unindentLine(_ *Handler, _ *editor.Editor, b *buffer.Buffer, count int) error {
	b.UnindentLines(b.Cursor().Row, max(count, 1))
	return nil
}

func insertTab(_ *Handler, ed *editor.Editor, b *buffer.Buffer, _ int) error {
	if s := ed.Settings(); s.ExpandTab {
		b.InsertText(strings.Repeat(" ", s.TabStop))
		return nil
	}
	b.InsertChar('\t')
	return nil
}

func cancelCommand(_ *Handler, ed *editor.Editor, _ *buffer.Buffer, _ int) error {
	ed.SetMode(mode.Normal())
	return nil
}

// executeCommand runs the command line. The mode returns to normal first
// so commands that switch buffers start from a clean state.
func executeCommand(_ *Handler, ed *editor.Editor, _ *buffer.Buffer, _ int) error {
	line := ed.CommandLine()
	ed.SetMode(mode.Normal())
	if strings.TrimSpace(line) == "" {
		return nil
	}
	return ed.ExecuteCommand(line)
}

func commandBackspace(_ *Handler, ed *editor.Editor, _ *buffer.Buffer, _ int) error {
	if !ed.BackspaceCommandLine() {
		ed.SetMode(mode.Normal())
	}
	return nil
}

// complete cycles through command-line completions. The first press shows
// the first match that differs from what was typed.
func complete(forward bool) actionFunc {
	return func(_ *Handler, ed *editor.Editor, _ *buffer.Buffer, _ int) error {
		if !ed.IsCompletionActive() {
			line := ed.CommandLine()
			ed.StartCommandCompletion(line)
			if !ed.CompletionHasMatches() {
				ed.CancelCompletion()
				return nil
			}
			if sel, _ := ed.Completion().Selected(); sel != line || len(ed.Completion().Matches()) == 1 {
				ed.SetCommandLine(sel)
				return nil
			}
		}
		if forward {
			ed.NextCompletion()
		} else {
			ed.PrevCompletion()
		}
		return nil
	}
}
