// Package completion holds the ex command and option table and the
// command-line completion state that browses it.
package completion
