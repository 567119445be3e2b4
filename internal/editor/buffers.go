package editor

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// CreateBuffer opens a buffer and makes it current. An empty path gives a
// buffer holding one empty line; otherwise the file is loaded through the
// editor's file system. On failure no buffer is created and the
// *buffer.IOError is returned.
func (e *Editor) CreateBuffer(path string) (int, error) {
	opts := []buffer.Option{
		buffer.WithID(e.nextID),
		buffer.WithHistoryDepth(e.settings.UndoLevels),
		buffer.WithShiftWidth(e.settings.ShiftWidth),
		buffer.WithRegisters(e.registers),
	}

	var b *buffer.Buffer
	if path == "" {
		b = buffer.New(opts...)
	} else {
		var err error
		b, err = buffer.Load(e.fs, path, opts...)
		if err != nil {
			e.logger.Warn("create buffer: %v", err)
			return 0, err
		}
	}
	return e.add(b), nil
}

// createEmpty opens an empty buffer that will be written to path.
func (e *Editor) createEmpty(path string) int {
	b := buffer.New(
		buffer.WithID(e.nextID),
		buffer.WithPath(path),
		buffer.WithHistoryDepth(e.settings.UndoLevels),
		buffer.WithShiftWidth(e.settings.ShiftWidth),
		buffer.WithRegisters(e.registers),
	)
	return e.add(b)
}

func (e *Editor) add(b *buffer.Buffer) int {
	id := e.nextID
	e.nextID++
	e.buffers[id] = b
	e.current = id
	e.logger.Info("buffer %d created path=%q lines=%d", id, b.Path(), b.LineCount())
	return id
}

// CurrentBuffer returns the current buffer, or nil before the first
// buffer is created.
func (e *Editor) CurrentBuffer() *buffer.Buffer {
	return e.buffers[e.current]
}

// CurrentBufferID returns the current buffer id, or 0 when there is none.
func (e *Editor) CurrentBufferID() int { return e.current }

// Buffer returns the buffer with id.
func (e *Editor) Buffer(id int) (*buffer.Buffer, bool) {
	b, ok := e.buffers[id]
	return b, ok
}

// BufferIDs returns the open buffer ids in ascending order.
func (e *Editor) BufferIDs() []int {
	ids := make([]int, 0, len(e.buffers))
	for id := range e.buffers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// BufferByPath returns the id of the open buffer editing path.
func (e *Editor) BufferByPath(path string) (int, bool) {
	for _, id := range e.BufferIDs() {
		if e.buffers[id].Path() == path {
			return id, true
		}
	}
	return 0, false
}

// SwitchToBuffer makes id current.
func (e *Editor) SwitchToBuffer(id int) error {
	if _, ok := e.buffers[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchBuffer, id)
	}
	e.current = id
	return nil
}

// NextBuffer makes the buffer with the next higher id current, wrapping
// around. It returns false when fewer than two buffers are open.
func (e *Editor) NextBuffer() bool {
	return e.cycle(1)
}

// PrevBuffer makes the buffer with the next lower id current, wrapping
// around.
func (e *Editor) PrevBuffer() bool {
	return e.cycle(-1)
}

func (e *Editor) cycle(step int) bool {
	ids := e.BufferIDs()
	if len(ids) < 2 {
		return false
	}
	i := max(slices.Index(ids, e.current), 0)
	e.current = ids[(i+step+len(ids))%len(ids)]
	return true
}

// CloseBuffer removes buffer id. A modified buffer is only closed when
// force is set. Closing the current buffer makes the nearest remaining
// buffer current, and closing the last buffer opens a fresh empty one.
func (e *Editor) CloseBuffer(id int, force bool) error {
	b, ok := e.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchBuffer, id)
	}
	if b.Modified() && !force {
		return ErrBufferModified
	}
	if b == e.insertBuf {
		e.endInsertGroup()
	}

	ids := e.BufferIDs()
	pos := slices.Index(ids, id)
	delete(e.buffers, id)
	e.logger.Info("buffer %d closed", id)

	if id != e.current {
		return nil
	}
	ids = slices.Delete(ids, pos, pos+1)
	if len(ids) == 0 {
		e.current = 0
		_, err := e.CreateBuffer("")
		return err
	}
	e.current = ids[min(pos, len(ids)-1)]
	return nil
}

// ListBuffers describes the open buffers, the current one in brackets and
// modified ones marked with "+".
func (e *Editor) ListBuffers() string {
	ids := e.BufferIDs()
	if len(ids) == 0 {
		return "No buffers open"
	}
	var sb strings.Builder
	sb.WriteString("Buffers:")
	for _, id := range ids {
		b := e.buffers[id]
		name := "[No Name]"
		if b.Path() != "" {
			name = filepath.Base(b.Path())
		}
		mod := ""
		if b.Modified() {
			mod = "+"
		}
		entry := fmt.Sprintf("%d:%s%s", id, name, mod)
		if id == e.current {
			entry = "[" + entry + "]"
		}
		sb.WriteString(" " + entry)
	}
	return sb.String()
}
