// Package backend provides the terminal backend the host loop draws to and
// reads key events from.
package backend

import (
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
	CursorHidden
)

// CursorStyleFor maps a mode's cursor to a backend cursor.
func CursorStyleFor(m mode.Mode) CursorStyle {
	switch m.CursorStyle() {
	case mode.CursorBar:
		return CursorBar
	case mode.CursorUnderline:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// Style is a set of cell attributes. The editor draws in the terminal's
// default colors.
type Style uint8

const (
	StyleDefault Style = 0
	StyleReverse Style = 1 << iota
	StyleBold
	StyleDim
)

// Has returns true if s contains attr.
func (s Style) Has(attr Style) bool {
	return s&attr != 0
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets the cell at x, y. A wide rune occupies the next
	// cell too. Positions outside the terminal are ignored.
	SetContent(x, y int, r rune, style Style)

	// Clear clears the entire screen.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorStyle changes the cursor appearance.
	SetCursorStyle(style CursorStyle)

	// PollEvent waits for and returns the next terminal event. After
	// Shutdown it returns an event of type EventNone.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

type nullCell struct {
	r     rune
	style Style
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]nullCell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   CursorStyle
	events        chan Event
	closed        bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.Clear()
	return b
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetContent(x, y int, r rune, style Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y][x] = nullCell{r: r, style: style}
	if uniseg.StringWidth(string(r)) == 2 && x+1 < b.width {
		b.cells[y][x+1] = nullCell{style: style}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = make([][]nullCell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]nullCell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = nullCell{r: ' '}
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY = x, y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(style CursorStyle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorStyle = style
}

func (b *NullBackend) PollEvent() Event {
	ev, ok := <-b.events
	if !ok {
		return Event{Type: EventNone}
	}
	return ev
}

func (b *NullBackend) PostEvent(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Row returns the text of row y with trailing spaces kept.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	rs := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		if c.r != 0 {
			rs = append(rs, c.r)
		}
	}
	return string(rs)
}

// StyleAt returns the style of the cell at x, y.
func (b *NullBackend) StyleAt(x, y int) Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return StyleDefault
	}
	return b.cells[y][x].style
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyleValue returns the current cursor style for testing.
func (b *NullBackend) CursorStyleValue() CursorStyle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorStyle
}

// Resize simulates a terminal resize and queues an EventResize.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.mu.Unlock()
	b.Clear()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
