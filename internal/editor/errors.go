package editor

import "errors"

// Editor errors. Command errors are wrapped with the offending name, so
// compare with errors.Is.
var (
	// ErrUnknownCommand indicates an ex command that is not in the table.
	ErrUnknownCommand = errors.New("not an editor command")

	// ErrBufferModified indicates a buffer with unsaved changes would be
	// discarded. Add ! to override.
	ErrBufferModified = errors.New("no write since last change (add ! to override)")

	// ErrNoSuchBuffer indicates a buffer id that is not open.
	ErrNoSuchBuffer = errors.New("no such buffer")

	// ErrNoFileName indicates a write or edit without a file name.
	ErrNoFileName = errors.New("no file name")

	// ErrUnknownOption indicates a :set option that is not in the table.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidArgument indicates a malformed command argument.
	ErrInvalidArgument = errors.New("invalid argument")
)
