package renderer

import (
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/renderer/backend"
)

// Options configures the renderer.
type Options struct {
	// ShowLineNumbers draws the gutter even when the editor's number
	// setting is off.
	ShowLineNumbers bool

	// ScrollOff is the number of rows kept visible above and below the
	// cursor when scrolling.
	ScrollOff int
}

// DefaultOptions returns default renderer options.
func DefaultOptions() Options {
	return Options{ScrollOff: 2}
}

// Renderer draws an editor's current buffer and status line to a backend.
// The last row is the status line and the rows above it show the buffer.
type Renderer struct {
	mu      sync.Mutex
	backend backend.Backend
	opts    Options

	top, left   int
	gutterWidth int
	frameCount  uint64
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.ScrollOff < 0 {
		opts.ScrollOff = 0
	}
	return &Renderer{backend: b, opts: opts}
}

// SetOptions replaces the renderer options.
func (r *Renderer) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// GutterWidth returns the gutter width of the last frame, separator
// included.
func (r *Renderer) GutterWidth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gutterWidth
}

// TopLine returns the first buffer row on screen.
func (r *Renderer) TopLine() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// Render draws one frame. It must be called from the goroutine that owns
// the editor.
func (r *Renderer) Render(e *editor.Editor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.Clear()
	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		r.backend.Show()
		return
	}

	buf := e.CurrentBuffer()
	m := e.Mode()
	settings := e.Settings()
	textRows := height - 1

	if buf == nil {
		r.gutterWidth = 0
		r.backend.HideCursor()
		r.drawStatus(e, nil, width, height-1)
		r.backend.Show()
		r.frameCount++
		return
	}

	r.gutterWidth = 0
	if settings.Number || settings.RelativeNumber || r.opts.ShowLineNumbers {
		r.gutterWidth = gutterWidth(buf.LineCount())
	}
	contentWidth := max(width-r.gutterWidth, 1)

	cursor := buf.Cursor()
	cursorLayout := layoutLine(buf.Line(cursor.Row), settings.TabStop)
	r.scroll(cursor, cursorLayout.column(cursor.Col), textRows, contentWidth, buf.LineCount())

	sel, hasSel := buf.Selection()
	selStart, selEnd, _ := buf.SelectionRange()

	for y := 0; y < textRows; y++ {
		row := r.top + y
		if row >= buf.LineCount() {
			r.put(0, y, "~", backend.StyleDim)
			continue
		}
		if r.gutterWidth > 0 {
			r.drawGutter(row, cursor.Row, y, settings.RelativeNumber && !settings.Number)
		}
		l := layoutLine(buf.Line(row), settings.TabStop)
		for _, c := range l.cells {
			x := c.x - r.left
			if x < 0 || x+c.width > contentWidth {
				continue
			}
			style := backend.StyleDefault
			if hasSel && selected(sel.Kind, selStart, selEnd, row, c.col) {
				style = backend.StyleReverse
			}
			if c.r == '\t' {
				for i := range c.width {
					r.backend.SetContent(r.gutterWidth+x+i, y, ' ', style)
				}
				continue
			}
			r.backend.SetContent(r.gutterWidth+x, y, c.r, style)
		}
	}

	r.drawStatus(e, buf, width, height-1)

	switch {
	case m.Is(mode.KindCommand):
		r.backend.SetCursorStyle(backend.CursorBar)
		col := 1 + uniseg.StringWidth(e.CommandLine())
		r.backend.ShowCursor(min(col, width-1), height-1)
	default:
		r.backend.SetCursorStyle(backend.CursorStyleFor(m))
		x := cursorLayout.column(cursor.Col) - r.left
		y := cursor.Row - r.top
		if y < 0 || y >= textRows || x < 0 || x >= contentWidth {
			r.backend.HideCursor()
		} else {
			r.backend.ShowCursor(r.gutterWidth+x, y)
		}
	}

	r.backend.Show()
	r.frameCount++
}

// scroll adjusts the top row and left column so the cursor stays on
// screen with ScrollOff rows of context where the buffer allows it.
func (r *Renderer) scroll(cursor buffer.Position, cursorX, rows, cols, lineCount int) {
	if rows <= 0 {
		r.top = 0
		return
	}
	off := min(r.opts.ScrollOff, (rows-1)/2)
	if cursor.Row-off < r.top {
		r.top = cursor.Row - off
	}
	if cursor.Row+off >= r.top+rows {
		r.top = cursor.Row + off - rows + 1
	}
	r.top = min(r.top, max(lineCount-rows, 0))
	r.top = max(r.top, 0)

	if cursorX < r.left {
		r.left = cursorX
	}
	if cursorX >= r.left+cols {
		r.left = cursorX - cols + 1
	}
}

func (r *Renderer) drawGutter(row, cursorRow, y int, relative bool) {
	n := row + 1
	if relative {
		n = row - cursorRow
		if n < 0 {
			n = -n
		}
	}
	s := strconv.Itoa(n)
	pad := r.gutterWidth - 1 - len(s)
	r.put(max(pad, 0), y, s, backend.StyleDim)
}

// drawStatus draws the mode, the message or command line, and the cursor
// position on row y.
func (r *Renderer) drawStatus(e *editor.Editor, buf *buffer.Buffer, width, y int) {
	m := e.Mode()
	if m.Is(mode.KindCommand) {
		r.put(0, y, ":"+e.CommandLine(), backend.StyleDefault)
		return
	}

	left := m.DisplayName()
	if msg := e.StatusMessage(); msg != "" {
		if left != "" {
			left += " "
		}
		left += msg
	}
	x := r.put(0, y, left, backend.StyleBold)

	if buf == nil {
		return
	}
	name := buf.Path()
	if name == "" {
		name = "[No Name]"
	}
	if buf.Modified() {
		name += " [+]"
	}
	c := buf.Cursor()
	right := fmt.Sprintf("%s  %d,%d", name, c.Row+1, c.Col+1)
	rx := width - uniseg.StringWidth(right)
	if rx > x {
		r.put(rx, y, right, backend.StyleDefault)
	}
}

// put draws s at x, y and returns the column after it. Text past the
// right edge is dropped by the backend.
func (r *Renderer) put(x, y int, s string, style backend.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		rs := g.Runes()
		r.backend.SetContent(x, y, rs[0], style)
		x += max(g.Width(), 1)
	}
	return x
}

func gutterWidth(lineCount int) int {
	return max(len(strconv.Itoa(lineCount)), 3) + 1
}

// selected reports whether the rune at row, col is inside the selection
// given by its kind and ordered range.
func selected(kind buffer.SelectionKind, start, end buffer.Position, row, col int) bool {
	if row < start.Row || row > end.Row {
		return false
	}
	switch kind {
	case buffer.SelectLine:
		return true
	case buffer.SelectBlock:
		return col >= start.Col && col <= end.Col
	}
	p := buffer.Position{Row: row, Col: col}
	return !p.Before(start) && p.Before(end)
}

// cell is one grapheme cluster laid out on screen.
type cell struct {
	col   int // rune index of the cluster's first rune
	x     int // visual column
	width int
	r     rune
}

type lineLayout struct {
	cells []cell
	runes int
	width int
}

// layoutLine splits a line into grapheme clusters and assigns each a
// visual column. Tabs advance to the next multiple of tabStop.
func layoutLine(s string, tabStop int) lineLayout {
	if tabStop <= 0 {
		tabStop = 4
	}
	var l lineLayout
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		str := g.Str()
		r, _ := utf8.DecodeRuneInString(str)
		w := g.Width()
		switch {
		case r == '\t':
			w = tabStop - l.width%tabStop
		case w < 1:
			w = 1
		}
		l.cells = append(l.cells, cell{col: l.runes, x: l.width, width: w, r: r})
		l.runes += utf8.RuneCountInString(str)
		l.width += w
	}
	return l
}

// column returns the visual column of rune index col. Positions past the
// end of the line map to the column after the last cell.
func (l lineLayout) column(col int) int {
	if col >= l.runes {
		return l.width
	}
	for i := len(l.cells) - 1; i >= 0; i-- {
		if l.cells[i].col <= col {
			return l.cells[i].x
		}
	}
	return 0
}
