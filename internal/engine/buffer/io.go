package buffer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/modalcore/internal/vfs"
)

var (
	// ErrNoPath is returned when saving a buffer that has no file path.
	ErrNoPath = errors.New("no file name")

	// ErrBinaryFile is returned when loading content that is not text.
	ErrBinaryFile = errors.New("binary file")
)

// IOError reports a failed load or save. Buffer state is never changed by
// a failed operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Load reads path through r and returns a buffer holding its lines. A
// UTF-8 byte order mark is dropped, binary content is refused, and a file
// written with CRLF line endings is saved back the same way. On failure no
// buffer is created and the error is an *IOError.
func Load(r vfs.Reader, path string, opts ...Option) (*Buffer, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	if vfs.IsBinary(data) {
		return nil, &IOError{Op: "load", Path: path, Err: ErrBinaryFile}
	}
	data, _ = vfs.StripBOM(data)
	opts = append(opts[:len(opts):len(opts)], WithPath(path))
	b := NewFromString(string(data), opts...)
	b.lineEnding = vfs.DetectLineEnding(data)
	return b, nil
}

// LineEnding reports the separator Save writes. Buffers not loaded from a
// CRLF file use LF; mixed files are normalized to LF.
func (b *Buffer) LineEnding() vfs.LineEnding {
	if b.lineEnding == vfs.LineEndingCRLF {
		return vfs.LineEndingCRLF
	}
	return vfs.LineEndingLF
}

// Save writes the buffer to its path and clears the modified flag.
func (b *Buffer) Save(w vfs.Writer) error {
	return b.SaveAs(w, b.path)
}

// SaveAs writes the buffer to path, adopts path when the buffer had none,
// and clears the modified flag. Lines are joined with the buffer's line
// ending and the file ends with one unless the buffer is a single empty
// line.
func (b *Buffer) SaveAs(w vfs.Writer, path string) error {
	if path == "" {
		return &IOError{Op: "save", Err: ErrNoPath}
	}
	if err := w.WriteFile(path, []byte(b.serialize()), 0o644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	if b.path == "" {
		b.path = path
	}
	if path == b.path {
		b.modified = false
	}
	return nil
}

func (b *Buffer) serialize() string {
	if len(b.lines) == 1 && b.lines[0] == "" {
		return ""
	}
	sep := "\n"
	if b.LineEnding() == vfs.LineEndingCRLF {
		sep = "\r\n"
	}
	return strings.Join(b.lines, sep) + sep
}
