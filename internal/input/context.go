package input

import (
	"slices"
	"strconv"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/vim"
)

// Prefix is a key that needs one more key to complete, such as " waiting
// for a register name.
type Prefix uint8

const (
	PrefixNone Prefix = iota

	// PrefixRegister waits for the register name after ".
	PrefixRegister

	// PrefixMacroRecord waits for the register after q.
	PrefixMacroRecord

	// PrefixMacroPlay waits for the register (or @) after @.
	PrefixMacroPlay

	// PrefixFind waits for the character after f, F, t or T.
	PrefixFind

	// PrefixReplace waits for the character after r.
	PrefixReplace
)

// Context is the state the handler carries between key events.
type Context struct {
	// Count is the count prefix being typed.
	Count vim.CountState

	// PendingRegister is the register chosen with ", or zero.
	PendingRegister rune

	// PendingSequence holds keys that are the start of a longer binding.
	PendingSequence []key.Event

	// Awaiting is the prefix waiting for its argument key.
	Awaiting Prefix

	// Find is the search a PrefixFind starts.
	Find vim.FindKind
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{}
}

// Clone returns a deep copy of the context.
func (c *Context) Clone() *Context {
	clone := *c
	clone.PendingSequence = slices.Clone(c.PendingSequence)
	return &clone
}

// AppendToSequence adds ev to the pending sequence and returns it.
func (c *Context) AppendToSequence(ev key.Event) []key.Event {
	c.PendingSequence = append(c.PendingSequence, ev)
	return c.PendingSequence
}

// ClearSequence drops the pending sequence.
func (c *Context) ClearSequence() {
	c.PendingSequence = nil
}

// ClearPending clears the count, register, sequence and prefix.
func (c *Context) ClearPending() {
	c.Count.Reset()
	c.PendingRegister = 0
	c.PendingSequence = nil
	c.Awaiting = PrefixNone
}

// Idle reports whether nothing is half typed.
func (c *Context) Idle() bool {
	return !c.Count.Active && c.PendingRegister == 0 &&
		len(c.PendingSequence) == 0 && c.Awaiting == PrefixNone
}

// PendingKeys renders the keys typed so far for the status line, e.g.
// "2\"a" or "g".
func (c *Context) PendingKeys() string {
	var out []key.Event
	if c.Count.Active {
		for _, r := range strconv.Itoa(c.Count.Value) {
			out = append(out, key.Rune(r))
		}
	}
	if c.PendingRegister != 0 {
		out = append(out, key.Rune('"'), key.Rune(c.PendingRegister))
	}
	switch c.Awaiting {
	case PrefixRegister:
		out = append(out, key.Rune('"'))
	case PrefixMacroRecord:
		out = append(out, key.Rune('q'))
	case PrefixMacroPlay:
		out = append(out, key.Rune('@'))
	case PrefixFind:
		for _, r := range c.Find.Keys() {
			out = append(out, key.Rune(r))
		}
	case PrefixReplace:
		out = append(out, key.Rune('r'))
	}
	out = append(out, c.PendingSequence...)
	return key.FormatSequence(out)
}
