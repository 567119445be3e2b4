package macro

import (
	"fmt"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/key"
)

// Tap is dispatch middleware. It forwards every key to the wrapped
// dispatcher and, while recording, also hands the key to the Recorder.
// It implements input.MacroControl so the q and @ prefixes parsed by the
// Handler drive the recorder.
type Tap struct {
	rec  *Recorder
	next input.Dispatcher
}

var (
	_ input.Dispatcher   = (*Tap)(nil)
	_ input.MacroControl = (*Tap)(nil)
)

// NewTap wraps next with macro recording.
func NewTap(rec *Recorder, next input.Dispatcher) *Tap {
	return &Tap{rec: rec, next: next}
}

// Install wraps h and registers the result as its macro control.
func Install(rec *Recorder, h *input.Handler) *Tap {
	t := NewTap(rec, h)
	h.SetMacroControl(t)
	return t
}

// Recorder returns the underlying recorder.
func (t *Tap) Recorder() *Recorder {
	return t.rec
}

// HandleKey forwards ev and records it when recording was active both
// before and after dispatch, so the keys that start or stop a recording
// are never part of it. A stop key other than q ends the recording
// itself and is still forwarded.
func (t *Tap) HandleKey(ed *editor.Editor, ev key.Event) error {
	stop := t.rec.StopKey()
	if stop != DefaultStopKey && ev == stop && t.rec.IsRecording() {
		stopErr := t.StopRecording(ed)
		if err := t.next.HandleKey(ed, ev); err != nil {
			return err
		}
		return stopErr
	}

	wasRecording := t.rec.IsRecording()
	err := t.next.HandleKey(ed, ev)
	if wasRecording && t.rec.IsRecording() {
		t.rec.Record(ev)
	}
	return err
}

// Recording reports whether a recording is in progress.
func (t *Tap) Recording() bool {
	return t.rec.IsRecording()
}

// StartRecording begins recording into register.
func (t *Tap) StartRecording(ed *editor.Editor, register rune) error {
	if err := t.rec.StartRecording(register); err != nil {
		return err
	}
	ed.SetStatusMessage(fmt.Sprintf("recording @%c", register))
	return nil
}

// StopRecording ends the current recording.
func (t *Tap) StopRecording(ed *editor.Editor) error {
	if _, err := t.rec.StopRecording(); err != nil {
		return err
	}
	ed.SetStatusMessage("")
	return nil
}

// Play replays register count times.
func (t *Tap) Play(ed *editor.Editor, register rune, count int) error {
	events, err := t.rec.Play(register)
	if err != nil {
		return err
	}
	defer t.rec.FinishPlayback()
	return t.replay(ed, events, count)
}

// PlayLast replays the last completed macro count times.
func (t *Tap) PlayLast(ed *editor.Editor, count int) error {
	events, err := t.rec.PlayLast()
	if err != nil {
		return err
	}
	defer t.rec.FinishPlayback()
	return t.replay(ed, events, count)
}

// replay sends events through the wrapped dispatcher, bypassing the
// recorder. The first failing key aborts the rest.
func (t *Tap) replay(ed *editor.Editor, events []key.Event, count int) error {
	count = max(count, 1)
	for range count {
		for _, ev := range events {
			if err := t.next.HandleKey(ed, ev); err != nil {
				return err
			}
		}
	}
	return nil
}
