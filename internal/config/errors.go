package config

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned by Load when the file does not exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnsupportedFormat is returned for an extension Parse cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError reports a file that could not be decoded. Line and Column
// are 1-based and zero when the decoder does not report a position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
		if e.Column > 0 {
			loc = fmt.Sprintf("%s:%d", loc, e.Column)
		}
	}
	return fmt.Sprintf("config %s: %s", loc, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports one setting with a bad value. Path is the
// dotted setting name, for example "editing.shift_width".
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Is makes every ValidationError match ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrorCode classifies a ValidationError.
type ValidationErrorCode uint8

const (
	ErrCodeOutOfRange ValidationErrorCode = iota
	ErrCodeInvalidEnum
	ErrCodeInvalidKey
	ErrCodeInvalidKeymap
)

var codeNames = [...]string{
	ErrCodeOutOfRange:    "out_of_range",
	ErrCodeInvalidEnum:   "invalid_enum",
	ErrCodeInvalidKey:    "invalid_key",
	ErrCodeInvalidKeymap: "invalid_keymap",
}

func (c ValidationErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}
