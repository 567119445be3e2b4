package input

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/vfs"
)

// newTestEditor returns an editor whose current buffer holds text.
func newTestEditor(t *testing.T, text string) (*editor.Editor, *Handler) {
	t.Helper()
	fs := vfs.NewMemFS()
	if err := fs.AddFile("/test.txt", text); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	ed := editor.New(editor.WithFS(fs))
	if _, err := ed.CreateBuffer("/test.txt"); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	return ed, NewHandler(nil)
}

// feed sends keys in vim notation and fails on the first error.
func feed(t *testing.T, h *Handler, ed *editor.Editor, keys string) {
	t.Helper()
	for _, ev := range key.MustParseSequence(keys) {
		if err := h.HandleKey(ed, ev); err != nil {
			t.Fatalf("HandleKey(%s) in %q: %v", ev, keys, err)
		}
	}
}

func assertLines(t *testing.T, b *buffer.Buffer, want ...string) {
	t.Helper()
	got := b.Lines()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func assertCursor(t *testing.T, b *buffer.Buffer, row, col int) {
	t.Helper()
	if c := b.Cursor(); c.Row != row || c.Col != col {
		t.Errorf("cursor = %s, want (%d, %d)", c, row, col)
	}
}

func TestMotions(t *testing.T) {
	tests := []struct {
		keys     string
		row, col int
	}{
		{"w", 0, 6},
		{"2w", 1, 0},
		{"j", 1, 0},
		{"2j", 2, 0},
		{"w2j", 2, 4},
		{"$", 0, 10},
		{"$0", 0, 0},
		{"jw^", 1, 0},
		{"G", 2, 0},
		{"Ggg", 0, 0},
		{"2G", 1, 0},
		{"lll", 0, 3},
		{"100l", 0, 10},
		{"e", 0, 4},
		{"wb", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			ed, h := newTestEditor(t, "hello world\nsecond line\nthird")
			feed(t, h, ed, tt.keys)
			assertCursor(t, ed.CurrentBuffer(), tt.row, tt.col)
			if !ed.Mode().Is(mode.KindNormal) {
				t.Errorf("mode = %s, want normal", ed.Mode())
			}
		})
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want []string
	}{
		{"delete word", "hello world", "dw", []string{"world"}},
		{"counts multiply", "a b c d e f g h", "2d3w", []string{"g h"}},
		{"delete to end", "hello world", "wd$", []string{"hello "}},
		{"delete line", "1\n2\n3", "dd", []string{"2", "3"}},
		{"delete lines with count", "1\n2\n3", "2dd", []string{"3"}},
		{"count after operator", "1\n2\n3", "d2d", []string{"3"}},
		{"delete down", "1\n2\n3", "dj", []string{"3"}},
		{"delete up at top is no-op", "1\n2", "dk", []string{"1", "2"}},
		{"yank and put line", "abc", "yyp", []string{"abc", "abc"}},
		{"indent line", "x", ">>", []string{"    x"}},
		{"outdent line", "    x", "<lt><lt>", []string{"x"}},
		{"toggle case word", "hello world", "~w", []string{"HELLO world"}},
		{"change word", "hello world", "cwfoo<Esc>", []string{"foo world"}},
		{"change line", "  abc\nd", "ccxy<Esc>", []string{"  xy", "d"}},
		{"escape cancels", "abc", "d<Esc>", []string{"abc"}},
		{"unknown key keeps operator", "hello world\nsecond", "dzw", []string{"world", "second"}},
		{"unknown key keeps count", "a b c d", "2zdw", []string{"c d"}},
		{"other operator cancels", "abc", "dy", []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
			if !ed.Mode().Is(mode.KindNormal) {
				t.Errorf("mode = %s, want normal", ed.Mode())
			}
		})
	}
}

func TestUnboundKeyLeavesStateAlone(t *testing.T) {
	ed, h := newTestEditor(t, "hello world\nsecond")
	feed(t, h, ed, "\"a2dz")

	if !ed.Mode().Is(mode.KindOperatorPending) {
		t.Fatalf("mode = %s, want operator-pending", ed.Mode())
	}
	op, count, ok := ed.PendingOperator()
	if !ok || op.String() != "delete" || count != 2 {
		t.Errorf("PendingOperator() = %s, %d, %v", op, count, ok)
	}
	if got := ed.CurrentBuffer().ActiveRegister(); got != 'a' {
		t.Errorf("active register = %q, want 'a'", got)
	}
	if len(h.Context().PendingSequence) != 0 {
		t.Errorf("pending sequence = %v, want empty", h.Context().PendingSequence)
	}

	feed(t, h, ed, "w")
	assertLines(t, ed.CurrentBuffer(), "", "second")
	if got, _ := ed.CurrentBuffer().Registers().Get('a'); got.Text != "hello world" {
		t.Errorf("register a = %q, want %q", got.Text, "hello world")
	}
	if !ed.Mode().Is(mode.KindNormal) {
		t.Errorf("mode = %s, want normal", ed.Mode())
	}
}

func TestOperatorPendingMode(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, "3d")

	op, count, ok := ed.PendingOperator()
	if !ok || op.String() != "delete" || count != 3 {
		t.Errorf("PendingOperator() = %s, %d, %v", op, count, ok)
	}
	if got := ed.Mode().CursorStyle(); got != mode.CursorUnderline {
		t.Errorf("cursor style = %s", got)
	}
}

func TestChangeUndoesAsOneStep(t *testing.T) {
	ed, h := newTestEditor(t, "hello world")
	feed(t, h, ed, "cwfoo<Esc>")
	assertLines(t, ed.CurrentBuffer(), "foo world")

	feed(t, h, ed, "u")
	assertLines(t, ed.CurrentBuffer(), "hello world")

	feed(t, h, ed, "<C-r>")
	assertLines(t, ed.CurrentBuffer(), "foo world")
}

func TestInsertMode(t *testing.T) {
	tests := []struct {
		name     string
		keys     string
		want     []string
		row, col int
	}{
		{"insert", "ihello<Esc>", []string{"hello"}, 0, 4},
		{"backspace", "iab<BS>c<Esc>", []string{"ac"}, 0, 1},
		{"enter", "ia<CR>b<Esc>", []string{"a", "b"}, 1, 0},
		{"escape at column zero", "i<Esc>", []string{""}, 0, 0},
		{"arrows", "iab<Left>x<Esc>", []string{"axb"}, 0, 1},
		{"tab", "i<Tab>x<Esc>", []string{"\tx"}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, "")
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
			assertCursor(t, ed.CurrentBuffer(), tt.row, tt.col)
		})
	}
}

func TestInsertEntryPoints(t *testing.T) {
	tests := []struct {
		keys string
		want []string
	}{
		{"llix<Esc>", []string{"  xab"}},
		{"lllax<Esc>", []string{"  abx"}},
		{"Ax<Esc>", []string{"  abx"}},
		{"Ix<Esc>", []string{"  xab"}},
		{"ox<Esc>", []string{"  ab", "x"}},
		{"Ox<Esc>", []string{"x", "  ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			ed, h := newTestEditor(t, "  ab")
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
		})
	}
}

func TestInsertSessionUndo(t *testing.T) {
	ed, h := newTestEditor(t, "one")
	feed(t, h, ed, "otwo<Esc>")
	assertLines(t, ed.CurrentBuffer(), "one", "two")

	feed(t, h, ed, "u")
	assertLines(t, ed.CurrentBuffer(), "one")
	if ed.CurrentBuffer().CanUndo() {
		t.Error("open line and typing should be one undo step")
	}
}

func TestQuickEdits(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want []string
	}{
		{"x", "abcdef", "x", []string{"bcdef"}},
		{"3x", "abcdef", "3x", []string{"def"}},
		{"x past end", "ab", "l5x", []string{"a"}},
		{"X", "abcdef", "$X", []string{"abcdf"}},
		{"2X", "abcdef", "$2X", []string{"abcf"}},
		{"D", "abcdef", "lD", []string{"a"}},
		{"C", "abcdef", "lCxy<Esc>", []string{"axy"}},
		{"s", "abcdef", "sX<Esc>", []string{"Xbcdef"}},
		{"S", "abc\ndef", "Sxy<Esc>", []string{"xy", "def"}},
		{"J", "a\n  b\nc", "J", []string{"a b", "c"}},
		{"3J", "a\nb\nc", "3J", []string{"a b c"}},
		{"xp swaps", "ab", "xp", []string{"ba"}},
		{"3p", "ab", "yl3p", []string{"aaaab"}},
		{"P", "ab", "lylP", []string{"abb"}},
		{"Y then P", "a\nb", "jYP", []string{"a", "b", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
		})
	}
}

func TestUndoRedoCounts(t *testing.T) {
	ed, h := newTestEditor(t, "abcd")
	feed(t, h, ed, "xxx")
	assertLines(t, ed.CurrentBuffer(), "d")

	feed(t, h, ed, "2u")
	assertLines(t, ed.CurrentBuffer(), "bcd")

	feed(t, h, ed, "5u")
	assertLines(t, ed.CurrentBuffer(), "abcd")

	feed(t, h, ed, "u")
	if got := ed.StatusMessage(); got != "Already at oldest change" {
		t.Errorf("status = %q", got)
	}

	feed(t, h, ed, "3<C-r>")
	assertLines(t, ed.CurrentBuffer(), "d")
	if got := ed.StatusMessage(); !strings.HasPrefix(got, "redo 3 changes: ") {
		t.Errorf("status = %q", got)
	}
}

func TestUndoNamesTheStep(t *testing.T) {
	ed, h := newTestEditor(t, "a\nb\nc")
	feed(t, h, ed, "3J")
	assertLines(t, ed.CurrentBuffer(), "a b c")

	feed(t, h, ed, "u")
	assertLines(t, ed.CurrentBuffer(), "a", "b", "c")
	if got := ed.StatusMessage(); got != "undo: join" {
		t.Errorf("status = %q, want %q", got, "undo: join")
	}

	feed(t, h, ed, "cwxy<Esc>")
	assertLines(t, ed.CurrentBuffer(), "xy", "b", "c")
	feed(t, h, ed, "u")
	assertLines(t, ed.CurrentBuffer(), "a", "b", "c")
	if got := ed.StatusMessage(); got != "undo: change" {
		t.Errorf("status = %q, want %q", got, "undo: change")
	}
}

// Yank three lines in visual-line mode and paste them after the fourth.
func TestVisualLineYankPut(t *testing.T) {
	ed, h := newTestEditor(t, "one\ntwo\nthree\nfour")
	feed(t, h, ed, "Vjjy")

	b := ed.CurrentBuffer()
	if b.HasSelection() {
		t.Error("selection should be cleared after yank")
	}
	if !ed.Mode().Is(mode.KindNormal) {
		t.Errorf("mode = %s, want normal", ed.Mode())
	}

	feed(t, h, ed, "Gp")
	assertLines(t, b, "one", "two", "three", "four", "one", "two", "three")
	assertCursor(t, b, 4, 0)
}

func TestVisualMode(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want []string
	}{
		{"delete includes cursor char", "abcdef", "vld", []string{"cdef"}},
		{"delete backwards", "abcdef", "$vhhd", []string{"abc"}},
		{"x deletes", "abcdef", "vx", []string{"bcdef"}},
		{"line delete", "a\nb\nc", "Vjd", []string{"c"}},
		{"toggle case", "abc", "vl~", []string{"ABc"}},
		{"indent", "a\nb", "Vj>", []string{"    a", "    b"}},
		{"change", "abcdef", "vlcX<Esc>", []string{"Xcdef"}},
		{"block delete", "abc\ndef", "l<C-v>jd", []string{"ac", "df"}},
		{"yank then put", "ab", "vyP", []string{"aab"}},
		{"switch to line", "a\nb\nc", "vjVd", []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
			if ed.CurrentBuffer().HasSelection() {
				t.Error("selection should be cleared")
			}
		})
	}
}

func TestVisualToggle(t *testing.T) {
	ed, h := newTestEditor(t, "abc")

	feed(t, h, ed, "v")
	if !ed.Mode().Is(mode.KindVisual) || !ed.CurrentBuffer().HasSelection() {
		t.Fatalf("v should start a selection, mode = %s", ed.Mode())
	}

	feed(t, h, ed, "V")
	sel, _ := ed.CurrentBuffer().Selection()
	if !ed.Mode().Is(mode.KindVisualLine) || sel.Kind != buffer.SelectLine {
		t.Errorf("V should switch kind, mode = %s kind = %s", ed.Mode(), sel.Kind)
	}

	feed(t, h, ed, "V")
	if !ed.Mode().Is(mode.KindNormal) || ed.CurrentBuffer().HasSelection() {
		t.Errorf("V again should leave visual mode, mode = %s", ed.Mode())
	}

	feed(t, h, ed, "v<Esc>")
	if !ed.Mode().Is(mode.KindNormal) || ed.CurrentBuffer().HasSelection() {
		t.Errorf("Esc should clear the selection, mode = %s", ed.Mode())
	}
}

func TestRegisters(t *testing.T) {
	ed, h := newTestEditor(t, "one\ntwo")
	feed(t, h, ed, "\"ayyj\"ap")
	assertLines(t, ed.CurrentBuffer(), "one", "two", "one")

	r, ok := ed.Registers().Get('a')
	if !ok || r.Text != "one\n" || r.Kind != buffer.Linewise {
		t.Errorf("register a = %+v, %v", r, ok)
	}

	// A count may come before the register.
	feed(t, h, ed, "gg2\"byy")
	if r, _ := ed.Registers().Get('b'); r.Text != "one\ntwo\n" {
		t.Errorf("register b = %q", r.Text)
	}

	// The register choice is spent by the command that used it.
	feed(t, h, ed, "\"cjyy")
	if _, ok := ed.Registers().Get('c'); ok {
		t.Error("register c should not be written by a later command")
	}
}

func TestInvalidRegister(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, "\"")

	err := h.HandleKey(ed, key.Rune('!'))
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("HandleKey(!) error = %v, want *InputError", err)
	}
	if inputErr.Key != "!" {
		t.Errorf("Key = %q", inputErr.Key)
	}
	if !ed.Mode().Is(mode.KindNormal) {
		t.Errorf("mode = %s, want normal", ed.Mode())
	}
	if ed.StatusMessage() != err.Error() {
		t.Errorf("status = %q, want %q", ed.StatusMessage(), err.Error())
	}

	// The next key is handled normally.
	feed(t, h, ed, "x")
	assertLines(t, ed.CurrentBuffer(), "bc")
}

func TestMalformedKey(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, "i")

	for _, ev := range []key.Event{{}, {Key: key.KeyRune}} {
		err := h.HandleKey(ed, ev)
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Errorf("HandleKey(%#v) error = %v, want *InputError", ev, err)
		}
	}
	if !ed.Mode().Is(mode.KindInsert) {
		t.Errorf("mode = %s, want insert", ed.Mode())
	}
}

func TestUnboundKeysAreIgnored(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	for _, ev := range []key.Event{key.Rune('Z'), key.Special(key.KeyF5), key.NewRuneEvent('x', key.ModAlt)} {
		if err := h.HandleKey(ed, ev); err != nil {
			t.Errorf("HandleKey(%s) = %v", ev, err)
		}
	}
	assertLines(t, ed.CurrentBuffer(), "abc")
}

func TestPendingSequence(t *testing.T) {
	ed, h := newTestEditor(t, "a\nb\nc")
	feed(t, h, ed, "G2g")

	if got := h.Context().PendingKeys(); got != "2g" {
		t.Errorf("PendingKeys() = %q, want %q", got, "2g")
	}

	feed(t, h, ed, "g")
	assertCursor(t, ed.CurrentBuffer(), 1, 0)
	if got := h.Context().PendingKeys(); got != "" {
		t.Errorf("PendingKeys() = %q after gg", got)
	}

	// A dead prefix is dropped and the last key runs on its own.
	feed(t, h, ed, "gj")
	assertCursor(t, ed.CurrentBuffer(), 2, 0)
}

func TestCommandMode(t *testing.T) {
	ed, h := newTestEditor(t, "abc")

	feed(t, h, ed, ":set sw=2")
	if !ed.Mode().Is(mode.KindCommand) {
		t.Fatalf("mode = %s, want command", ed.Mode())
	}
	if got := ed.CommandLine(); got != "set sw=2" {
		t.Errorf("CommandLine() = %q", got)
	}

	feed(t, h, ed, "<CR>")
	if !ed.Mode().Is(mode.KindNormal) {
		t.Errorf("mode = %s, want normal", ed.Mode())
	}
	if got := ed.Settings().ShiftWidth; got != 2 {
		t.Errorf("ShiftWidth = %d, want 2", got)
	}

	feed(t, h, ed, ":abc<BS><BS><BS>")
	if !ed.Mode().Is(mode.KindCommand) {
		t.Errorf("backspace on text should stay in command mode")
	}
	feed(t, h, ed, "<BS>")
	if !ed.Mode().Is(mode.KindNormal) {
		t.Errorf("backspace on empty line should leave command mode")
	}

	feed(t, h, ed, ":q<Esc>")
	if ed.QuitRequested() || ed.CommandLine() != "" {
		t.Error("Esc should discard the command")
	}
}

func TestCommandErrors(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, ":frobnicate")

	err := h.HandleKey(ed, key.Special(key.KeyEnter))
	if !errors.Is(err, editor.ErrUnknownCommand) {
		t.Fatalf("error = %v, want ErrUnknownCommand", err)
	}
	if ed.StatusMessage() == "" {
		t.Error("error should be shown in the status line")
	}
	if !ed.Mode().Is(mode.KindNormal) {
		t.Errorf("mode = %s, want normal", ed.Mode())
	}
}

func TestCommandCompletion(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, ":bn<Tab>")
	if got := ed.CommandLine(); got != "bnext" {
		t.Errorf("after Tab CommandLine() = %q, want bnext", got)
	}

	feed(t, h, ed, "<S-Tab>")
	if got := ed.CommandLine(); got != "bn" {
		t.Errorf("after S-Tab CommandLine() = %q, want bn", got)
	}

	feed(t, h, ed, "<Tab>x")
	if got := ed.CommandLine(); got != "bnextx" || ed.IsCompletionActive() {
		t.Errorf("typing should accept the preview, got %q", got)
	}
}

func TestWriteThroughKeys(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, "x:w<CR>")

	data, err := ed.FS().ReadFile("/test.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "bc\n" {
		t.Errorf("file = %q", data)
	}
	if ed.CurrentBuffer().Modified() {
		t.Error("buffer should be clean after :w")
	}
}

func TestUserKeymapSequence(t *testing.T) {
	registry := keymap.NewRegistry()
	if err := keymap.LoadDefaults(registry); err != nil {
		t.Fatal(err)
	}
	if err := keymap.LoadUser(registry, map[string]map[string]string{
		"insert": {"jk": "mode.normal"},
		"normal": {"<C-s>": "command.execute", "Q": "nop"},
	}); err != nil {
		t.Fatal(err)
	}

	ed, _ := newTestEditor(t, "")
	h := NewHandler(registry)

	feed(t, h, ed, "ijx")
	assertLines(t, ed.CurrentBuffer(), "jx")

	feed(t, h, ed, "j<Esc>")
	assertLines(t, ed.CurrentBuffer(), "jxj")
	feed(t, h, ed, "ajk")
	if !ed.Mode().Is(mode.KindNormal) {
		t.Errorf("jk should leave insert mode, mode = %s", ed.Mode())
	}
	assertLines(t, ed.CurrentBuffer(), "jxj")

	feed(t, h, ed, "Q")
	assertLines(t, ed.CurrentBuffer(), "jxj")
}

type fakeMacros struct {
	recording bool
	calls     []string
}

func (f *fakeMacros) Recording() bool { return f.recording }

func (f *fakeMacros) StartRecording(_ *editor.Editor, reg rune) error {
	f.recording = true
	f.calls = append(f.calls, "start "+string(reg))
	return nil
}

func (f *fakeMacros) StopRecording(*editor.Editor) error {
	f.recording = false
	f.calls = append(f.calls, "stop")
	return nil
}

func (f *fakeMacros) Play(_ *editor.Editor, reg rune, count int) error {
	f.calls = append(f.calls, "play "+string(reg)+" "+strings.Repeat("+", count))
	return nil
}

func (f *fakeMacros) PlayLast(_ *editor.Editor, count int) error {
	f.calls = append(f.calls, "last "+strings.Repeat("+", count))
	return nil
}

func TestMacroPrefixes(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	fake := &fakeMacros{}
	h.SetMacroControl(fake)

	feed(t, h, ed, "qaxq3@b@@q<Esc>@<Esc>")

	want := []string{"start a", "stop", "play b +++", "last +"}
	if strings.Join(fake.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %q, want %q", fake.calls, want)
	}
	assertLines(t, ed.CurrentBuffer(), "bc")
}

func TestMacroKeysWithoutControl(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, "qax@a")
	// q and @ do nothing, so a appends and x is typed.
	if !ed.Mode().Is(mode.KindInsert) {
		t.Errorf("mode = %s, want insert", ed.Mode())
	}
}

func TestTextObjectCommands(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want []string
	}{
		{"diw", "hello world", "wdiw", []string{"hello "}},
		{"daw", "hello world foo", "wdaw", []string{"hello foo"}},
		{"daw at line end", "hello world", "wdaw", []string{"hello"}},
		{"d2aw", "a b c d", "d2aw", []string{"c d"}},
		{"ciw", "foo bar", "ciwxy<Esc>", []string{"xy bar"}},
		{"di(", "f(a, b)", "fadi(", []string{"f()"}},
		{"da(", "x (a) y", "fada(", []string{"x  y"}},
		{"ci( on empty pair", "f()", "f(ci(x<Esc>", []string{"f(x)"}},
		{"d2i(", "((a) b)", "fad2i(", []string{"()"}},
		{"di{ over lines", "f {\n\tx\n}", "jdi{", []string{"f {", "}"}},
		{`di"`, `say "hi there" now`, `fhdi"`, []string{`say "" now`}},
		{`da"`, `say "hi there" now`, `fhda"`, []string{"say now"}},
		{"dap", "a\nb\n\nc", "dap", []string{"c"}},
		{"dip", "a\nb\n\nc", "dip", []string{"", "c"}},
		{"yiw then P", "foo bar", "yiwP", []string{"foofoo bar"}},
		{"viwd", "hello world", "wviwd", []string{"hello "}},
		{"vipd", "a\nb\n\nc", "vipd", []string{"", "c"}},
		{"di( outside brackets", "abc", "di(", []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
			if !ed.Mode().Is(mode.KindNormal) {
				t.Errorf("mode = %s, want normal", ed.Mode())
			}
		})
	}
}

func TestVisualTextObjectSwitchesToLineMode(t *testing.T) {
	ed, h := newTestEditor(t, "a\nb\n\nc")
	feed(t, h, ed, "vip")
	if !ed.Mode().Is(mode.KindVisualLine) {
		t.Errorf("mode = %s, want visual line", ed.Mode())
	}
	sel, ok := ed.CurrentBuffer().Selection()
	if !ok || sel.Kind != buffer.SelectLine || sel.Anchor.Row != 0 || sel.Active.Row != 1 {
		t.Errorf("selection = %+v, %v", sel, ok)
	}
}

func TestCharSearchCommands(t *testing.T) {
	cursor := []struct {
		keys string
		col  int
	}{
		{"f,", 1},
		{"2f,", 3},
		{"tc", 3},
		{"$Fb", 2},
		{"$Tb", 3},
		{"f,;", 3},
		{"f,;,", 1},
		{"lt,;", 4},
		{"fz", 0},
		{"f;", 0},
	}
	for _, tt := range cursor {
		t.Run(tt.keys, func(t *testing.T) {
			ed, h := newTestEditor(t, "a,b,c,d")
			feed(t, h, ed, tt.keys)
			assertCursor(t, ed.CurrentBuffer(), 0, tt.col)
		})
	}

	edits := []struct {
		name string
		keys string
		want string
	}{
		{"df", "dfc", ",d"},
		{"dt", "dtc", "c,d"},
		{"count after operator", "d2f,", "c,d"},
		{"dF", "$dFa", "d"},
		{"no match leaves text", "dfz", "a,b,c,d"},
		{"escape cancels", "df<Esc>", "a,b,c,d"},
		{"visual", "vf,d", "b,c,d"},
		{"operator with ;", "f,d;", "ac,d"},
	}
	for _, tt := range edits {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, "a,b,c,d")
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want)
			if !ed.Mode().Is(mode.KindNormal) {
				t.Errorf("mode = %s, want normal", ed.Mode())
			}
		})
	}
}

func TestCharSearchPendingKeys(t *testing.T) {
	ed, h := newTestEditor(t, "abc")
	feed(t, h, ed, "2f")
	if got := h.Context().PendingKeys(); got != "2f" {
		t.Errorf("PendingKeys() = %q, want %q", got, "2f")
	}
	feed(t, h, ed, "c")
	if got := h.Context().PendingKeys(); got != "" {
		t.Errorf("PendingKeys() = %q after the search", got)
	}

	feed(t, h, ed, "r")
	if got := h.Context().PendingKeys(); got != "r" {
		t.Errorf("PendingKeys() = %q, want %q", got, "r")
	}
}

func TestParagraphAndBracketCommands(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keys     string
		want     []string
		row, col int
	}{
		{"}", "a\nb\n\nc", "}", []string{"a", "b", "", "c"}, 2, 0},
		{"{", "a\n\nb\nc", "G{", []string{"a", "", "b", "c"}, 1, 0},
		{"d}", "a\nb\n\nc", "d}", []string{"", "c"}, 0, 0},
		{"%", "f(a[b])", "%", []string{"f(a[b])"}, 0, 6},
		{"%%", "f(a[b])", "%%", []string{"f(a[b])"}, 0, 1},
		{"d%", "f(a[b]) x", "d%", []string{" x"}, 0, 0},
		{"% without bracket", "abc", "l%", []string{"abc"}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
			assertCursor(t, ed.CurrentBuffer(), tt.row, tt.col)
		})
	}
}

func TestReplaceCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keys     string
		want     []string
		row, col int
	}{
		{"r", "abc", "rx", []string{"xbc"}, 0, 0},
		{"count", "abcd", "3rx", []string{"xxxd"}, 0, 2},
		{"count past the line end", "abc", "5rx", []string{"abc"}, 0, 0},
		{"enter splits the line", "abc", "lr<CR>", []string{"a", "c"}, 1, 0},
		{"escape cancels", "abc", "r<Esc>", []string{"abc"}, 0, 0},
		{"undo", "abc", "rxu", []string{"abc"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
			assertCursor(t, ed.CurrentBuffer(), tt.row, tt.col)
			if !ed.Mode().Is(mode.KindNormal) {
				t.Errorf("mode = %s, want normal", ed.Mode())
			}
		})
	}
}

func TestRepeatLastChange(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want []string
	}{
		{"x", "abcd", "x.", []string{"cd"}},
		{"dw", "a b c d", "dw.", []string{"c d"}},
		{"insert", "ab", "ihi<Esc>.", []string{"hhiiab"}},
		{"recorded count", "abcdefg", "2x.", []string{"efg"}},
		{"count replaces the recorded one", "abcdefgh", "x3..", []string{"h"}},
		{"after undo", "abcd", "xu.", []string{"bcd"}},
		{"change word", "foo bar baz", "cwxy<Esc>w.", []string{"xy xy baz"}},
		{"text object", "a (b) (c)", "fbdi(f(.", []string{"a () ()"}},
		{"find operator", "a,b,c,d", "df,.", []string{"c,d"}},
		{"replace", "abcd", "rxl.", []string{"xxcd"}},
		{"open line", "a", "ob<Esc>.", []string{"a", "b", "b"}},
		{"motions are not changes", "abcd", "xl.", []string{"bd"}},
		{"visual changes are not repeated", "abc", "vd.", []string{"bc"}},
		{"nothing to repeat", "abc", ".", []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
			if !ed.Mode().Is(mode.KindNormal) {
				t.Errorf("mode = %s, want normal", ed.Mode())
			}
		})
	}
}

func TestRepeatIsOneUndoStep(t *testing.T) {
	ed, h := newTestEditor(t, "ab")
	feed(t, h, ed, "ihi<Esc>.")
	assertLines(t, ed.CurrentBuffer(), "hhiiab")
	feed(t, h, ed, "u")
	assertLines(t, ed.CurrentBuffer(), "hiab")
}

func TestInsertDeleteWordBackward(t *testing.T) {
	tests := []struct {
		text string
		keys string
		want []string
	}{
		{"foo bar", "A<C-w><Esc>", []string{"foo "}},
		{"foo.bar", "A<C-w><C-w><Esc>", []string{"foo"}},
		{"a\nb", "jI<C-w><Esc>", []string{"ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			ed, h := newTestEditor(t, tt.text)
			feed(t, h, ed, tt.keys)
			assertLines(t, ed.CurrentBuffer(), tt.want...)
		})
	}
}

func TestYankWordBinding(t *testing.T) {
	ed, h := newTestEditor(t, "  foo bar")
	feed(t, h, ed, "gy")
	b := ed.CurrentBuffer()
	if got := b.Registers().Unnamed().Text; got != "foo" {
		t.Errorf("unnamed register = %q, want %q", got, "foo")
	}
	assertLines(t, b, "  foo bar")

	feed(t, h, ed, "w\"agy")
	if got, _ := b.Registers().Get('a'); got.Text != "foo" {
		t.Errorf("register a = %q, want %q", got.Text, "foo")
	}
}
