package editor

import "github.com/dshills/modalcore/internal/completion"

// CommandLine returns the text typed after ":".
func (e *Editor) CommandLine() string { return e.commandLine }

// SetCommandLine replaces the command line.
func (e *Editor) SetCommandLine(s string) { e.commandLine = s }

// AppendCommandLine adds r to the command line and drops any completion.
func (e *Editor) AppendCommandLine(r rune) {
	e.commandLine += string(r)
	e.completion.Cancel()
}

// BackspaceCommandLine removes the last rune of the command line. It
// returns false when the line was already empty.
func (e *Editor) BackspaceCommandLine() bool {
	if e.commandLine == "" {
		return false
	}
	runes := []rune(e.commandLine)
	e.commandLine = string(runes[:len(runes)-1])
	e.completion.Cancel()
	return true
}

// Completion returns the completion state, for drawing the popup.
func (e *Editor) Completion() *completion.Completion { return e.completion }

// StartCommandCompletion looks up completions for prefix.
func (e *Editor) StartCommandCompletion(prefix string) {
	e.completion.Start(prefix)
}

// IsCompletionActive reports whether a completion is in progress.
func (e *Editor) IsCompletionActive() bool { return e.completion.Active() }

// CompletionHasMatches reports whether the active completion found
// anything.
func (e *Editor) CompletionHasMatches() bool { return e.completion.HasMatches() }

// NextCompletion selects the next match and shows it on the command line.
func (e *Editor) NextCompletion() {
	e.completion.Next()
	e.previewCompletion()
}

// PrevCompletion selects the previous match and shows it on the command
// line.
func (e *Editor) PrevCompletion() {
	e.completion.Prev()
	e.previewCompletion()
}

func (e *Editor) previewCompletion() {
	if s, ok := e.completion.Selected(); ok {
		e.commandLine = s
	}
}

// AcceptCompletion puts the selected match on the command line and ends
// the completion.
func (e *Editor) AcceptCompletion() (string, bool) {
	s, ok := e.completion.Accept()
	if ok {
		e.commandLine = s
	}
	return s, ok
}

// CancelCompletion ends the completion, leaving the command line as typed
// before it started.
func (e *Editor) CancelCompletion() {
	if e.completion.Active() {
		e.commandLine = e.completion.Prefix()
	}
	e.completion.Cancel()
}
