package keymap

import (
	"fmt"

	"github.com/dshills/modalcore/internal/input/key"
)

// Keymap is a named set of bindings for one mode. An empty Mode applies
// in every mode. When two keymaps bind the same sequence the higher
// Priority wins, and on a tie the one registered last.
type Keymap struct {
	Name     string
	Mode     string
	Bindings []Binding
	Priority int
	Source   string // "default" or "user"
}

// NewKeymap returns an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

func (k *Keymap) ForMode(mode string) *Keymap {
	k.Mode = mode
	return k
}

func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add appends a binding and returns k.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// Validate reports the first binding that does not parse.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with pre-parsed key sequences.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding:  b,
			Sequence: seq,
		})
	}

	return parsed, nil
}
