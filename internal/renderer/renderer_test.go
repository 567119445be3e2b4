package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/renderer/backend"
	"github.com/dshills/modalcore/internal/vfs"
)

type fixture struct {
	ed *editor.Editor
	h  *input.Handler
	be *backend.NullBackend
	r  *Renderer
}

func newFixture(t *testing.T, text string, width, height int) *fixture {
	t.Helper()
	fs := vfs.NewMemFS()
	if err := fs.AddFile("/test.txt", text); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	ed := editor.New(editor.WithFS(fs))
	if _, err := ed.CreateBuffer("/test.txt"); err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	be := backend.NewNullBackend(width, height)
	return &fixture{ed: ed, h: input.NewHandler(nil), be: be, r: New(be, DefaultOptions())}
}

func (f *fixture) feed(t *testing.T, keys string) {
	t.Helper()
	for _, ev := range key.MustParseSequence(keys) {
		if err := f.h.HandleKey(f.ed, ev); err != nil {
			t.Fatalf("HandleKey(%s): %v", ev, err)
		}
	}
}

func (f *fixture) render() { f.r.Render(f.ed) }

func (f *fixture) row(y int) string {
	return strings.TrimRight(f.be.Row(y), " ")
}

func (f *fixture) assertCursor(t *testing.T, wantX, wantY int) {
	t.Helper()
	x, y, visible := f.be.CursorPosition()
	if !visible {
		t.Fatal("cursor hidden")
	}
	if x != wantX || y != wantY {
		t.Errorf("cursor = (%d, %d), want (%d, %d)", x, y, wantX, wantY)
	}
}

func TestRenderBufferAndStatus(t *testing.T) {
	f := newFixture(t, "hello\nworld", 30, 5)
	f.render()

	if got := f.row(0); got != "hello" {
		t.Errorf("row 0 = %q", got)
	}
	if got := f.row(1); got != "world" {
		t.Errorf("row 1 = %q", got)
	}
	if got := f.row(2); got != "~" {
		t.Errorf("row 2 = %q, want ~", got)
	}
	if got := f.row(4); !strings.HasSuffix(got, "1,1") {
		t.Errorf("status = %q, want cursor position", got)
	}
	f.assertCursor(t, 0, 0)
	if f.be.CursorStyleValue() != backend.CursorBlock {
		t.Errorf("cursor style = %v, want block", f.be.CursorStyleValue())
	}
	if f.r.FrameCount() != 1 {
		t.Errorf("FrameCount = %d", f.r.FrameCount())
	}
}

func TestRenderInsertMode(t *testing.T) {
	f := newFixture(t, "abc", 30, 3)
	f.feed(t, "A")
	f.render()

	if got := f.row(2); !strings.HasPrefix(got, "-- INSERT --") {
		t.Errorf("status = %q", got)
	}
	f.assertCursor(t, 3, 0)
	if f.be.CursorStyleValue() != backend.CursorBar {
		t.Errorf("cursor style = %v, want bar", f.be.CursorStyleValue())
	}
}

func TestRenderStatusMessage(t *testing.T) {
	f := newFixture(t, "abc", 40, 3)
	f.ed.SetStatusMessage("recording @q")
	f.render()

	if got := f.row(2); !strings.HasPrefix(got, "recording @q") {
		t.Errorf("status = %q", got)
	}
	if f.be.StyleAt(0, 2) != backend.StyleBold {
		t.Errorf("status style = %v, want bold", f.be.StyleAt(0, 2))
	}
}

func TestRenderCommandLine(t *testing.T) {
	f := newFixture(t, "abc", 30, 3)
	f.feed(t, ":wq")
	f.render()

	if got := f.row(2); got != ":wq" {
		t.Errorf("status = %q, want :wq", got)
	}
	f.assertCursor(t, 3, 2)
}

func TestRenderLineNumbers(t *testing.T) {
	f := newFixture(t, "a\nb\nc", 20, 5)
	s := f.ed.Settings()
	s.Number = true
	f.ed.ApplySettings(s)
	f.feed(t, "j")
	f.render()

	if f.r.GutterWidth() != 4 {
		t.Errorf("GutterWidth = %d, want 4", f.r.GutterWidth())
	}
	for y, want := range []string{"  1 a", "  2 b", "  3 c"} {
		if got := f.row(y); got != want {
			t.Errorf("row %d = %q, want %q", y, got, want)
		}
	}
	f.assertCursor(t, 4, 1)
}

func TestRenderRelativeNumbers(t *testing.T) {
	f := newFixture(t, "a\nb\nc", 20, 5)
	s := f.ed.Settings()
	s.RelativeNumber = true
	f.ed.ApplySettings(s)
	f.feed(t, "j")
	f.render()

	for y, want := range []string{"  1 a", "  0 b", "  1 c"} {
		if got := f.row(y); got != want {
			t.Errorf("row %d = %q, want %q", y, got, want)
		}
	}
}

func TestRenderLineNumbersOption(t *testing.T) {
	f := newFixture(t, "a", 20, 3)
	f.r.SetOptions(Options{ShowLineNumbers: true})
	f.render()
	if got := f.row(0); got != "  1 a" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestRenderSelection(t *testing.T) {
	tests := []struct {
		name     string
		keys     string
		reversed [][2]int
		plain    [][2]int
	}{
		{
			name:     "line",
			keys:     "V",
			reversed: [][2]int{{0, 0}, {4, 0}},
			plain:    [][2]int{{0, 1}},
		},
		{
			name:     "block",
			keys:     "<C-v>lj",
			reversed: [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			plain:    [][2]int{{2, 0}, {2, 1}},
		},
		{
			name:     "character across lines",
			keys:     "lvj",
			reversed: [][2]int{{1, 0}, {4, 0}, {0, 1}},
			plain:    [][2]int{{0, 0}, {3, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "hello\nworld", 20, 4)
			f.feed(t, tt.keys)
			f.render()
			for _, p := range tt.reversed {
				if f.be.StyleAt(p[0], p[1]) != backend.StyleReverse {
					t.Errorf("cell %v not reversed", p)
				}
			}
			for _, p := range tt.plain {
				if f.be.StyleAt(p[0], p[1]) != backend.StyleDefault {
					t.Errorf("cell %v reversed", p)
				}
			}
		})
	}
}

func TestRenderWideAndTab(t *testing.T) {
	f := newFixture(t, "日本x\n\tz", 20, 4)
	f.feed(t, "ll")
	f.render()

	if got := f.row(0); got != "日本x" {
		t.Errorf("row 0 = %q", got)
	}
	f.assertCursor(t, 4, 0)

	f.feed(t, "j$")
	f.render()
	if got := f.row(1); got != "    z" {
		t.Errorf("row 1 = %q", got)
	}
	f.assertCursor(t, 4, 1)
}

func TestRenderScrollsVertically(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i+1)
	}
	f := newFixture(t, strings.Join(lines, "\n"), 20, 5)
	f.feed(t, "G")
	f.render()

	if f.r.TopLine() != 6 {
		t.Errorf("TopLine = %d, want 6", f.r.TopLine())
	}
	if got := f.row(3); got != "line10" {
		t.Errorf("row 3 = %q", got)
	}
	f.assertCursor(t, 0, 3)

	f.feed(t, "gg")
	f.render()
	if f.r.TopLine() != 0 {
		t.Errorf("TopLine = %d after gg, want 0", f.r.TopLine())
	}
}

func TestRenderScrollsHorizontally(t *testing.T) {
	f := newFixture(t, strings.Repeat("a", 30)+"b", 10, 3)
	f.feed(t, "$")
	f.render()

	if got := f.row(0); got != "aaaaaaaaab" {
		t.Errorf("row 0 = %q", got)
	}
	f.assertCursor(t, 9, 0)
}

func TestRenderNoBuffer(t *testing.T) {
	be := backend.NewNullBackend(20, 3)
	r := New(be, DefaultOptions())
	r.Render(editor.New())

	if _, _, visible := be.CursorPosition(); visible {
		t.Error("cursor visible without a buffer")
	}
}

func TestLayoutColumn(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want int
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"abc", 3, 3},
		{"a\tb", 2, 4},
		{"日本", 1, 2},
		{"e\u0301x", 2, 1},
		{"", 0, 0},
	}
	for _, tt := range tests {
		if got := layoutLine(tt.line, 4).column(tt.col); got != tt.want {
			t.Errorf("column(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
		}
	}
}
