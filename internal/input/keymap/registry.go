package keymap

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/modalcore/internal/input/key"
)

// Result says how a key sequence relates to the registered bindings.
type Result uint8

const (
	// NoMatch means no binding starts with the sequence.
	NoMatch Result = iota

	// Partial means the sequence is the start of a longer binding.
	Partial

	// Match means the sequence is a complete binding.
	Match
)

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*registered

	// prefixTree provides efficient prefix-based lookup.
	prefixTree *PrefixTree

	// seq orders registrations so later keymaps win ties.
	seq int
}

type registered struct {
	*ParsedKeymap
	order int
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps:    make(map[string]*registered),
		prefixTree: NewPrefixTree(),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Remove existing keymap with same name if present
	r.unregisterLocked(km.Name)

	r.seq++
	reg := &registered{ParsedKeymap: parsed, order: r.seq}
	r.keymaps[km.Name] = reg

	// Index all bindings in the prefix tree
	for i := range parsed.ParsedBindings {
		r.prefixTree.Insert(&parsed.ParsedBindings[i], reg)
	}

	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(name)
}

// unregisterLocked removes a keymap without acquiring the lock.
// Caller must hold the write lock.
func (r *Registry) unregisterLocked(name string) {
	km, ok := r.keymaps[name]
	if !ok {
		return
	}
	for i := range km.ParsedBindings {
		r.prefixTree.Remove(km.ParsedBindings[i].Sequence, km)
	}
	delete(r.keymaps, name)
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) (*ParsedKeymap, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	km, ok := r.keymaps[name]
	if !ok {
		return nil, false
	}
	return km.ParsedKeymap, true
}

// Resolve looks seq up for mode. On Match the winning binding is
// returned. A complete binding wins over a longer one sharing its prefix.
func (r *Registry) Resolve(mode string, seq []key.Event) (Binding, Result) {
	if len(seq) == 0 {
		return Binding{}, NoMatch
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	node := r.prefixTree.find(seq)
	if node == nil {
		return Binding{}, NoMatch
	}
	if best, ok := bestEntry(node.entries, mode); ok {
		return best.binding.Binding, Match
	}
	if r.prefixTree.reachable(node, mode) {
		return Binding{}, Partial
	}
	return Binding{}, NoMatch
}

// Lookup returns the binding for a complete sequence.
func (r *Registry) Lookup(mode string, seq []key.Event) (Binding, bool) {
	b, res := r.Resolve(mode, seq)
	return b, res == Match
}

// HasPrefix reports whether some binding for mode is longer than seq and
// starts with it.
func (r *Registry) HasPrefix(mode string, seq []key.Event) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node := r.prefixTree.find(seq)
	if node == nil {
		return false
	}
	for _, child := range node.children {
		if r.prefixTree.reachable(child, mode) {
			return true
		}
	}
	return false
}

// AllBindings returns the effective bindings for a mode sorted by keys,
// with overridden bindings removed.
func (r *Registry) AllBindings(mode string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	r.prefixTree.walk(r.prefixTree.root, func(n *prefixNode) {
		if best, ok := bestEntry(n.entries, mode); ok {
			out = append(out, best.binding.Binding)
		}
	})
	slices.SortFunc(out, func(a, b Binding) int {
		return cmp.Compare(a.Keys, b.Keys)
	})
	return out
}

// score ranks a keymap for a lookup: priority first, then a bonus for
// mode-specific keymaps.
func score(km *registered) int {
	s := km.Priority * 100
	if km.Mode != "" {
		s += 50
	}
	return s
}

func bestEntry(entries []prefixEntry, mode string) (prefixEntry, bool) {
	var best prefixEntry
	found := false
	for _, e := range entries {
		if e.keymap.Mode != "" && e.keymap.Mode != mode {
			continue
		}
		if !found {
			best, found = e, true
			continue
		}
		s, bs := score(e.keymap), score(best.keymap)
		if s > bs || (s == bs && e.keymap.order > best.keymap.order) {
			best = e
		}
	}
	return best, found
}

// PrefixTree provides efficient prefix-based binding lookup.
type PrefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children map[string]*prefixNode
	entries  []prefixEntry
}

type prefixEntry struct {
	binding *ParsedBinding
	keymap  *registered
}

// NewPrefixTree creates a new prefix tree.
func NewPrefixTree() *PrefixTree {
	return &PrefixTree{root: newNode()}
}

func newNode() *prefixNode {
	return &prefixNode{children: make(map[string]*prefixNode)}
}

// Insert adds a binding to the prefix tree.
func (t *PrefixTree) Insert(binding *ParsedBinding, km *registered) {
	node := t.root
	for _, event := range binding.Sequence {
		keyStr := event.Notation()
		child, ok := node.children[keyStr]
		if !ok {
			child = newNode()
			node.children[keyStr] = child
		}
		node = child
	}
	node.entries = append(node.entries, prefixEntry{binding: binding, keymap: km})
}

// Remove removes the bindings of km at seq and prunes empty nodes.
func (t *PrefixTree) Remove(seq []key.Event, km *registered) {
	if len(seq) == 0 {
		return
	}

	path := []*prefixNode{t.root}
	node := t.root
	for _, event := range seq {
		child, ok := node.children[event.Notation()]
		if !ok {
			return
		}
		path = append(path, child)
		node = child
	}

	node.entries = slices.DeleteFunc(node.entries, func(e prefixEntry) bool {
		return e.keymap == km
	})

	// Prune empty nodes from leaf to root
	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if len(current.entries) > 0 || len(current.children) > 0 {
			break
		}
		delete(path[i-1].children, seq[i-1].Notation())
	}
}

func (t *PrefixTree) find(seq []key.Event) *prefixNode {
	node := t.root
	for _, event := range seq {
		child, ok := node.children[event.Notation()]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// reachable reports whether n or a descendant holds a binding for mode.
func (t *PrefixTree) reachable(n *prefixNode, mode string) bool {
	if _, ok := bestEntry(n.entries, mode); ok {
		return true
	}
	for _, child := range n.children {
		if t.reachable(child, mode) {
			return true
		}
	}
	return false
}

func (t *PrefixTree) walk(n *prefixNode, fn func(*prefixNode)) {
	fn(n)
	for _, child := range n.children {
		t.walk(child, fn)
	}
}
