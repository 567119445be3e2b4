// Package clipboard connects the "+ and "* registers to the system
// clipboard.
package clipboard

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/logging"
)

// Provider reads and writes clipboard text.
type Provider interface {
	Read() (string, error)
	Write(text string) error
}

// System is the operating system clipboard.
type System struct{}

// Read returns the clipboard text.
func (System) Read() (string, error) { return clipboard.ReadAll() }

// Write replaces the clipboard text.
func (System) Write(text string) error { return clipboard.WriteAll(text) }

// Available reports whether the system clipboard can be used, which needs
// a helper such as xclip, xsel or wl-clipboard on Linux.
func Available() bool { return !clipboard.Unsupported }

// Memory is an in-process clipboard, used when no system clipboard is
// available and in tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

// Read returns the stored text.
func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Write stores text.
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Default returns System when it is usable and a Memory clipboard
// otherwise.
func Default() Provider {
	if Available() {
		return System{}
	}
	return &Memory{}
}

// Registers adapts a Provider to buffer.ExternalRegisters. Both "+ and "*
// map to the one clipboard. The kind of the last write is remembered so a
// linewise yank pastes back as lines; text placed on the clipboard by
// other programs is linewise when it ends in a newline.
type Registers struct {
	provider Provider
	logger   *logging.Logger

	mu   sync.Mutex
	last buffer.Register
}

// NewRegisters wraps p. logger may be nil.
func NewRegisters(p Provider, logger *logging.Logger) *Registers {
	return &Registers{provider: p, logger: logging.OrNull(logger).WithComponent("clipboard")}
}

// ReadRegister returns the clipboard as a register. It reports false when
// the clipboard cannot be read.
func (r *Registers) ReadRegister(name rune) (buffer.Register, bool) {
	text, err := r.provider.Read()
	if err != nil {
		r.logger.Warn("read %q register: %v", name, err)
		return buffer.Register{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if text == r.last.Text {
		return r.last, true
	}
	kind := buffer.Charwise
	if strings.HasSuffix(text, "\n") {
		kind = buffer.Linewise
	}
	return buffer.Register{Text: text, Kind: kind}, true
}

// WriteRegister copies reg to the clipboard. Failures are logged; the
// edit that produced the text has already happened.
func (r *Registers) WriteRegister(name rune, reg buffer.Register) {
	if err := r.provider.Write(reg.Text); err != nil {
		r.logger.Warn("write %q register: %v", name, err)
		return
	}
	r.mu.Lock()
	r.last = reg
	r.mu.Unlock()
}
