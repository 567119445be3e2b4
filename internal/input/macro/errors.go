package macro

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by RecorderError.
var (
	ErrDoubleRecording = errors.New("already recording")
	ErrNotRecording    = errors.New("not recording")
	ErrNoSuchMacro     = errors.New("no such macro")
	ErrRecorderBusy    = errors.New("recorder busy")
	ErrInvalidRegister = errors.New("invalid register")
)

// RecorderError reports a failed recorder operation.
type RecorderError struct {
	Op       string
	Register rune
	Err      error
}

func (e *RecorderError) Error() string {
	if e.Register == 0 {
		return fmt.Sprintf("macro %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("macro %s @%c: %v", e.Op, e.Register, e.Err)
}

func (e *RecorderError) Unwrap() error {
	return e.Err
}

func newError(op string, reg rune, err error) *RecorderError {
	return &RecorderError{Op: op, Register: reg, Err: err}
}
