// Package editor holds the state shared by every key handler: the open
// buffers, the current mode, the command line, the status message and
// command-line completion.
//
// The editor never interprets keys itself. The input package decides what
// a key means and calls the methods here; ex commands typed on the command
// line are run by ExecuteCommand.
//
// Mode is a single value (see package mode), so the pending operator can
// never disagree with the mode: SetPendingOperator and ClearPendingOperator
// are thin wrappers around SetMode.
//
// An Editor is not safe for concurrent use. The app serializes every call
// through one event loop.
package editor
