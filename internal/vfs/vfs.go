// Package vfs provides the file system collaborators the editor reads and
// writes files through.
//
// The FS interface allows swapping the underlying file system
// implementation: OSFS for the real disk and MemFS for tests.
package vfs

import (
	"io/fs"
	"time"
)

// Reader loads whole files.
type Reader interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)
}

// Writer stores whole files.
type Writer interface {
	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

// FS is the file system abstraction used by the editor.
type FS interface {
	Reader
	Writer

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm fs.FileMode) error

	// Rename renames (moves) a file.
	Rename(oldPath, newPath string) error

	// Abs returns the absolute path.
	Abs(path string) (string, error)
}

// FileInfo describes a file or directory.
type FileInfo struct {
	path    string
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

// NewFileInfo creates a FileInfo from the given parameters.
func NewFileInfo(path, name string, size int64, mode fs.FileMode, modTime time.Time, isDir bool) FileInfo {
	return FileInfo{
		path:    path,
		name:    name,
		size:    size,
		mode:    mode,
		modTime: modTime,
		isDir:   isDir,
	}
}

// Path returns the full path.
func (fi FileInfo) Path() string { return fi.path }

// Name returns the base name.
func (fi FileInfo) Name() string { return fi.name }

// Size returns the size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode bits.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir reports whether the entry is a directory.
func (fi FileInfo) IsDir() bool { return fi.isDir }
