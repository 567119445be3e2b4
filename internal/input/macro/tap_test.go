package macro

import (
	"strings"
	"testing"

	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/vfs"
)

func newTapEditor(t *testing.T, text string, opts ...Option) (*editor.Editor, *Tap) {
	t.Helper()
	fs := vfs.NewMemFS()
	mustNoError(t, fs.AddFile("/test.txt", text))
	ed := editor.New(editor.WithFS(fs))
	_, err := ed.CreateBuffer("/test.txt")
	mustNoError(t, err)
	return ed, Install(NewRecorder(opts...), input.NewHandler(nil))
}

func feed(t *testing.T, tap *Tap, ed *editor.Editor, seq string) {
	t.Helper()
	for _, ev := range keys(seq) {
		if err := tap.HandleKey(ed, ev); err != nil {
			t.Fatalf("HandleKey(%s) in %q: %v", ev, seq, err)
		}
	}
}

func assertLines(t *testing.T, ed *editor.Editor, want ...string) {
	t.Helper()
	if got := ed.CurrentBuffer().Lines(); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

func assertMode(t *testing.T, ed *editor.Editor, want mode.Mode) {
	t.Helper()
	if ed.Mode() != want {
		t.Errorf("mode = %s, want %s", ed.Mode(), want)
	}
}

// With the default stop key the q{reg} prefix and the final q are not
// recorded, but escape is.
func TestTapRecordDefaultStopKey(t *testing.T) {
	ed, tap := newTapEditor(t, "")

	feed(t, tap, ed, "qa")
	if !tap.Recording() {
		t.Fatal("not recording after qa")
	}
	if got := ed.StatusMessage(); got != "recording @a" {
		t.Errorf("status = %q", got)
	}

	feed(t, tap, ed, "ihe<Esc>q")
	if tap.Recording() {
		t.Error("still recording after q")
	}
	assertKeys(t, tap.Recorder().Get('a'), "ihe<Esc>")
	assertLines(t, ed, "he")

	feed(t, tap, ed, "@a")
	assertLines(t, ed, "hhee")
	assertMode(t, ed, mode.Normal())
	if tap.Recorder().IsPlaying() {
		t.Error("playback not finished")
	}
}

// Escape as the stop key ends the recording, is not stored, and still
// leaves insert mode.
func TestTapRecordCustomStopKey(t *testing.T) {
	ed, tap := newTapEditor(t, "", WithStopKey(key.Special(key.KeyEscape)))

	feed(t, tap, ed, "qaihe<Esc>")
	if tap.Recording() {
		t.Error("escape did not stop the recording")
	}
	assertMode(t, ed, mode.Normal())
	assertKeys(t, tap.Recorder().Get('a'), "ihe")

	feed(t, tap, ed, "@a")
	assertLines(t, ed, "hhee")
	assertMode(t, ed, mode.Insert())
}

func TestTapPlayCount(t *testing.T) {
	ed, tap := newTapEditor(t, "a")

	feed(t, tap, ed, "qaAx<Esc>q")
	assertLines(t, ed, "ax")

	feed(t, tap, ed, "3@a")
	assertLines(t, ed, "axxxx")

	feed(t, tap, ed, "@@")
	assertLines(t, ed, "axxxxx")
	if got := tap.Recorder().LastPlayed(); got != 'a' {
		t.Errorf("LastPlayed() = %q, want 'a'", got)
	}
}

func TestTapPlayEditsAreUndoable(t *testing.T) {
	ed, tap := newTapEditor(t, "one\ntwo\nthree")
	mustNoError(t, tap.Recorder().Set('d', keys("dd")))

	feed(t, tap, ed, "2@d")
	assertLines(t, ed, "three")

	feed(t, tap, ed, "uu")
	assertLines(t, ed, "one", "two", "three")
}

func TestTapErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup string
		keys  string
		want  error
	}{
		{"undefined macro", "", "@z", ErrNoSuchMacro},
		{"repeat before any playback", "", "@@", ErrNoSuchMacro},
		{"invalid record register", "", "q1", ErrInvalidRegister},
		{"play while recording", "qb", "@b", ErrRecorderBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed, tap := newTapEditor(t, "text")
			feed(t, tap, ed, tt.setup)

			var err error
			for _, ev := range keys(tt.keys) {
				err = tap.HandleKey(ed, ev)
			}
			if err == nil {
				t.Fatalf("no error, want %v", tt.want)
			}
			assertIs(t, err, tt.want)
			if ed.StatusMessage() != err.Error() {
				t.Errorf("status = %q, want %q", ed.StatusMessage(), err.Error())
			}
			assertLines(t, ed, "text")
		})
	}
}

func TestTapRecursivePlaybackIsBusy(t *testing.T) {
	ed, tap := newTapEditor(t, "text")
	rec := tap.Recorder()
	mustNoError(t, rec.Set('a', keys("x@a")))

	var err error
	for _, ev := range keys("@a") {
		err = tap.HandleKey(ed, ev)
	}
	assertIs(t, err, ErrRecorderBusy)
	if rec.State() != StateIdle {
		t.Errorf("State() = %v, want idle", rec.State())
	}
	if rec.LastPlayed() != 'a' {
		t.Errorf("LastPlayed() = %q, want 'a'", rec.LastPlayed())
	}
	assertLines(t, ed, "ext")
}

func TestTapStopWithoutRecording(t *testing.T) {
	ed, tap := newTapEditor(t, "text")
	assertIs(t, tap.StopRecording(ed), ErrNotRecording)
}

func TestTapForwardsWhenIdle(t *testing.T) {
	ed, tap := newTapEditor(t, "text")
	feed(t, tap, ed, "x")
	assertLines(t, ed, "ext")
	if got := tap.Recorder().List(); len(got) != 0 {
		t.Errorf("List() = %q, want empty", got)
	}
}

func TestTapRepeatAfterPlayback(t *testing.T) {
	ed, tap := newTapEditor(t, "abcdef")
	mustNoError(t, tap.Recorder().Set('a', keys("x")))

	feed(t, tap, ed, "@a.")
	assertLines(t, ed, "cdef")
}
