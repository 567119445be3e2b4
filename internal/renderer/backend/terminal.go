package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalcore/internal/input/key"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetContent(x, y int, r rune, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, r, nil, convertStyle(style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var tcellStyle tcell.CursorStyle
	switch style {
	case CursorBlock:
		tcellStyle = tcell.CursorStyleSteadyBlock
	case CursorUnderline:
		tcellStyle = tcell.CursorStyleSteadyUnderline
	case CursorBar:
		tcellStyle = tcell.CursorStyleSteadyBar
	case CursorHidden:
		t.screen.HideCursor()
		return
	}
	t.screen.SetCursorStyle(tcellStyle)
}

// PollEvent blocks until a key, resize or interrupt arrives. Keys with no
// key.Event equivalent and other tcell events are skipped.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			if k, ok := ConvertKey(e); ok {
				return Event{Type: EventKey, Key: k}
			}
		case *tcell.EventResize:
			w, h := e.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventInterrupt:
			return Event{Type: EventInterrupt}
		}
	}
}

func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = toTcellKey(event.Key)
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(nil)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // best-effort; event queue may be full
}

func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	if s.Has(StyleReverse) {
		style = style.Reverse(true)
	}
	if s.Has(StyleBold) {
		style = style.Bold(true)
	}
	if s.Has(StyleDim) {
		style = style.Dim(true)
	}
	return style
}

// specialKeys maps tcell keys to named keys. Tab, Enter, Backspace and
// Escape share codes with Ctrl-I, Ctrl-M, Ctrl-H and Ctrl-[ and are
// reported as the named key.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// ConvertKey converts a tcell key event. Control letters become the
// lowercase rune with ModCtrl, so Ctrl-V is <C-v>, whether tcell reports
// them as KeyCtrlV, as the raw control code or as a rune with ModCtrl.
// Back-tab becomes <S-Tab>. ok is false for keys with no equivalent.
func ConvertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		return key.NewRuneEvent(e.Rune(), mods), true
	}
	if named, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(named, mods.Without(key.ModCtrl)), true
	}
	if r := e.Rune(); mods.Has(key.ModCtrl) && r >= 'a' && r <= 'z' {
		return key.NewRuneEvent(r, mods), true
	}
	switch {
	case k == tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	case k == tcell.KeyCtrlSpace || k == tcell.KeyNUL:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
	case k >= tcell.KeySOH && k <= tcell.KeySUB:
		return key.NewRuneEvent('a'+rune(k-tcell.KeySOH), mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

func toTcellKey(ev key.Event) *tcell.EventKey {
	mods := toTcellMod(ev.Modifiers)
	if ev.Key == key.KeyRune {
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mods)
	}
	for tk, k := range specialKeys {
		if k == ev.Key && tk != tcell.KeyBackspace {
			return tcell.NewEventKey(tk, 0, mods)
		}
	}
	return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mods)
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

func toTcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.Has(key.ModShift) {
		result |= tcell.ModShift
	}
	if m.Has(key.ModCtrl) {
		result |= tcell.ModCtrl
	}
	if m.Has(key.ModAlt) {
		result |= tcell.ModAlt
	}
	if m.Has(key.ModMeta) {
		result |= tcell.ModMeta
	}
	return result
}
