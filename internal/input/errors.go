package input

import "fmt"

// InputError reports a key that cannot be interpreted, such as an
// invalid register name after ". The editor mode is left unchanged.
type InputError struct {
	// Key is the offending key in notation form.
	Key string

	// Reason describes what was wrong.
	Reason string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("input: %s: %s", e.Key, e.Reason)
}
