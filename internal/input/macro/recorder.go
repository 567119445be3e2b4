package macro

import (
	"maps"
	"slices"
	"sync"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/logging"
)

// State is the recorder's current activity.
type State uint8

const (
	StateIdle State = iota
	StateRecording
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StatePlaying:
		return "playing"
	default:
		return "idle"
	}
}

// DefaultStopKey is the key filtered out of every recording.
var DefaultStopKey = key.Rune('q')

// Recorder records key sequences for macro playback.
// It maintains a set of registers, each holding a sequence of key events.
type Recorder struct {
	mu         sync.Mutex
	state      State
	register   rune // recording target
	pending    rune // register being played
	lastPlayed rune // last completed playback, for @@
	events     []key.Event
	registers  map[rune][]key.Event
	stopKey    key.Event
	logger     *logging.Logger
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithStopKey sets the key that ends a recording and is never stored.
func WithStopKey(ev key.Event) Option {
	return func(r *Recorder) {
		r.stopKey = ev
	}
}

// WithLogger sets the recorder's logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Recorder) {
		r.logger = l
	}
}

// NewRecorder creates a new macro recorder with empty registers.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		registers: make(map[rune][]key.Event),
		stopKey:   DefaultStopKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNull(r.logger).WithComponent("macro")
	return r
}

// IsValidRegister reports whether r can hold a macro (a-z).
func IsValidRegister(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// StopKey returns the configured stop key.
func (r *Recorder) StopKey() key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopKey
}

// SetStopKey changes the stop key. A recording in progress keeps
// filtering the new key from then on.
func (r *Recorder) SetStopKey(ev key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev != r.stopKey {
		r.logger.Debug("stop key set to %s", ev)
	}
	r.stopKey = ev
}

// State returns the current state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	return r.State() == StateRecording
}

// IsPlaying returns true between Play and FinishPlayback.
func (r *Recorder) IsPlaying() bool {
	return r.State() == StatePlaying
}

// Register returns the register being recorded to, or 0 if not recording.
func (r *Recorder) Register() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording {
		return 0
	}
	return r.register
}

// StartRecording begins recording to the specified register.
func (r *Recorder) StartRecording(register rune) error {
	if !IsValidRegister(register) {
		return newError("record", register, ErrInvalidRegister)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateRecording:
		return newError("record", r.register, ErrDoubleRecording)
	case StatePlaying:
		return newError("record", register, ErrRecorderBusy)
	}

	r.state = StateRecording
	r.register = register
	r.events = nil
	r.logger.Debug("recording to %c", register)
	return nil
}

// Record appends an event to the current recording. The stop key and
// events arriving while not recording are dropped.
func (r *Recorder) Record(ev key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording || ev == r.stopKey {
		return
	}
	r.events = append(r.events, ev)
}

// StopRecording stores the recording in its register and returns the
// register name. An empty recording still defines the register.
func (r *Recorder) StopRecording() (rune, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return 0, newError("stop", 0, ErrNotRecording)
	}

	reg := r.register
	saved := make([]key.Event, len(r.events))
	copy(saved, r.events)
	r.registers[reg] = saved

	r.state = StateIdle
	r.register = 0
	r.events = nil
	r.logger.Debug("recorded %d keys to %c", len(saved), reg)
	return reg, nil
}

// Play returns the events stored in register and marks a playback as
// pending. The caller re-injects them and then calls FinishPlayback.
func (r *Recorder) Play(register rune) ([]key.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.play(register)
}

func (r *Recorder) play(register rune) ([]key.Event, error) {
	if r.state != StateIdle {
		return nil, newError("play", register, ErrRecorderBusy)
	}
	if !IsValidRegister(register) {
		return nil, newError("play", register, ErrInvalidRegister)
	}
	events, ok := r.registers[register]
	if !ok {
		return nil, newError("play", register, ErrNoSuchMacro)
	}

	r.state = StatePlaying
	r.pending = register
	return slices.Clone(events), nil
}

// FinishPlayback ends a pending playback and makes its register the
// target of PlayLast. It is a no-op when nothing is playing.
func (r *Recorder) FinishPlayback() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePlaying {
		return
	}
	r.lastPlayed = r.pending
	r.pending = 0
	r.state = StateIdle
}

// PlayLast plays the register of the most recently completed playback.
func (r *Recorder) PlayLast() ([]key.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastPlayed == 0 {
		return nil, newError("play", '@', ErrNoSuchMacro)
	}
	return r.play(r.lastPlayed)
}

// LastPlayed returns the register of the last completed playback, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

// Get returns a copy of the events in register, or nil if it is undefined.
func (r *Recorder) Get(register rune) []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events, ok := r.registers[register]
	if !ok {
		return nil
	}
	return slices.Clone(events)
}

// Set replaces the contents of register. The stop key is removed.
func (r *Recorder) Set(register rune, events []key.Event) error {
	if !IsValidRegister(register) {
		return newError("set", register, ErrInvalidRegister)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers[register] = r.withoutStopKey(nil, events)
	return nil
}

// Append adds events to the end of register, defining it if needed.
func (r *Recorder) Append(register rune, events []key.Event) error {
	if !IsValidRegister(register) {
		return newError("append", register, ErrInvalidRegister)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers[register] = r.withoutStopKey(slices.Clone(r.registers[register]), events)
	return nil
}

func (r *Recorder) withoutStopKey(dst, events []key.Event) []key.Event {
	if dst == nil {
		dst = make([]key.Event, 0, len(events))
	}
	for _, ev := range events {
		if ev != r.stopKey {
			dst = append(dst, ev)
		}
	}
	return dst
}

// Clear removes the macro in register.
func (r *Recorder) Clear(register rune) error {
	if !IsValidRegister(register) {
		return newError("clear", register, ErrInvalidRegister)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registers, register)
	if r.lastPlayed == register {
		r.lastPlayed = 0
	}
	return nil
}

// ClearAll removes every macro.
func (r *Recorder) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.registers)
	r.lastPlayed = 0
}

// HasMacro reports whether register is defined.
func (r *Recorder) HasMacro(register rune) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.registers[register]
	return ok
}

// List returns the defined registers in order.
func (r *Recorder) List() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.registers))
}

// snapshot returns a deep copy of all registers.
func (r *Recorder) snapshot() (map[rune][]key.Event, rune) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[rune][]key.Event, len(r.registers))
	for reg, events := range r.registers {
		out[reg] = slices.Clone(events)
	}
	return out, r.lastPlayed
}

// restore replaces all registers.
func (r *Recorder) restore(registers map[rune][]key.Event, lastPlayed rune) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registers = make(map[rune][]key.Event, len(registers))
	for reg, events := range registers {
		r.registers[reg] = r.withoutStopKey(nil, events)
	}
	if _, ok := r.registers[lastPlayed]; ok {
		r.lastPlayed = lastPlayed
	} else {
		r.lastPlayed = 0
	}
}
