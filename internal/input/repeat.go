package input

import (
	"slices"
	"strconv"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

// changeRecorder remembers the keys of the last normal mode command that
// changed the buffer, for the . command. Recording starts on a key typed
// in normal mode with nothing pending and ends when the handler is back in
// that state. Commands that pass through visual or command-line mode are
// not kept.
type changeRecorder struct {
	active bool
	keys   []key.Event
	buf    *buffer.Buffer
	rev    uint64
	skip   bool

	last      []key.Event
	lastCount int
}

// begin starts a recording if the handler is idle in normal mode.
func (r *changeRecorder) begin(ed *editor.Editor, c *Context) {
	if r.active || !ed.Mode().Is(mode.KindNormal) || !c.Idle() {
		return
	}
	b := ed.CurrentBuffer()
	if b == nil {
		return
	}
	r.active = true
	r.keys = r.keys[:0]
	r.buf = b
	r.rev = b.Revision()
	r.skip = false
}

// observe adds ev to the recording and keeps it once the command is
// complete and the buffer changed.
func (r *changeRecorder) observe(ed *editor.Editor, c *Context, ev key.Event) {
	if !r.active {
		return
	}
	r.keys = append(r.keys, ev)

	md := ed.Mode()
	if ed.CurrentBuffer() != r.buf || md.IsVisual() || md.Is(mode.KindCommand) {
		r.active = false
		return
	}
	if !md.Is(mode.KindNormal) || !c.Idle() {
		return
	}
	r.active = false
	if r.skip || r.buf.Revision() == r.rev {
		return
	}

	keys := r.keys
	count := 0
	for len(keys) > 0 && keys[0].IsDigit() && (count > 0 || keys[0].Rune != '0') {
		count = count*10 + int(keys[0].Rune-'0')
		keys = keys[1:]
	}
	r.last = slices.Clone(keys)
	r.lastCount = count
}

// cancel drops a recording in progress.
func (r *changeRecorder) cancel() {
	r.active = false
}

// replay returns the keys to feed for . with count, which replaces the
// recorded count when non-zero.
func (r *changeRecorder) replay(count int) []key.Event {
	if len(r.last) == 0 {
		return nil
	}
	if count > 0 {
		r.lastCount = count
	}
	var out []key.Event
	if r.lastCount > 0 {
		for _, d := range strconv.Itoa(r.lastCount) {
			out = append(out, key.Rune(d))
		}
	}
	return append(out, r.last...)
}

// repeatChange is the . command.
func repeatChange(h *Handler, ed *editor.Editor, _ *buffer.Buffer, count int) error {
	keys := h.changes.replay(count)
	if keys == nil {
		return nil
	}
	h.context.Count.Reset()
	for _, ev := range keys {
		if err := h.HandleKey(ed, ev); err != nil {
			return err
		}
	}
	return nil
}
