package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithID sets the buffer id. Editors assign ids monotonically.
func WithID(id int) Option {
	return func(b *Buffer) {
		b.id = id
	}
}

// WithPath associates the buffer with a file path used by Save.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithHistoryDepth bounds the number of undo steps kept.
func WithHistoryDepth(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.historyDepth = n
		}
	}
}

// WithShiftWidth sets the indent width used by the indent operators.
func WithShiftWidth(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.shiftWidth = n
		}
	}
}

// WithRegisters shares a register store between buffers so text yanked in
// one buffer can be put in another.
func WithRegisters(r *Registers) Option {
	return func(b *Buffer) {
		if r != nil {
			b.registers = r
		}
	}
}
