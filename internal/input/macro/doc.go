// Package macro provides keyboard macro recording and playback.
//
// A macro is a recorded sequence of key events stored in a register a-z.
// The Recorder is a small state machine (idle, recording, playing).
// Starting a recording while a playback is pending, or playing while
// recording, fails with ErrRecorderBusy.
//
// Recording is wired into dispatch through Tap, a middleware that forwards
// every key to the input.Handler and additionally records it:
//
//	rec := macro.NewRecorder()
//	h := input.NewHandler(nil)
//	tap := macro.Install(rec, h)
//	tap.HandleKey(ed, ev) // instead of h.HandleKey
//
// The configured stop key (q by default) is never stored in a macro.
//
// # Persistence
//
// Macros can be saved to and loaded from disk as versioned JSON so they
// persist across sessions.
//
// # Thread Safety
//
// Recorder is safe for concurrent use. Tap is driven from the single
// goroutine that owns the editor.
package macro
