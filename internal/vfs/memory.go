package vfs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Standard error values for MemFS operations.
// These align with POSIX errors for consistency with OSFS.
var (
	errIsDir  = syscall.EISDIR
	errNotDir = syscall.ENOTDIR
)

// MemFS implements FS using an in-memory file system. Paths are slash
// separated and relative paths are taken from the root.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
	dirs  map[string]bool
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string]*memFile),
		dirs:  map[string]bool{"/": true},
	}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	f, ok := m.files[filePath]
	if !ok {
		if m.dirs[filePath] {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: errIsDir}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	// Return a copy to prevent modification
	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// WriteFile writes data to a file, creating it if necessary. The parent
// directory must exist.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if m.dirs[filePath] {
		return &fs.PathError{Op: "write", Path: filePath, Err: errIsDir}
	}
	if dir := path.Dir(filePath); !m.dirs[dir] {
		return &fs.PathError{Op: "write", Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{
		content: content,
		mode:    perm,
		modTime: time.Now(),
	}
	return nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if f, ok := m.files[filePath]; ok {
		return NewFileInfo(filePath, path.Base(filePath), int64(len(f.content)), f.mode, f.modTime, false), nil
	}
	if m.dirs[filePath] {
		return NewFileInfo(filePath, path.Base(filePath), 0, fs.ModeDir|0o755, time.Time{}, true), nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	_, isFile := m.files[filePath]
	return isFile || m.dirs[filePath]
}

// MkdirAll creates a directory and all parent directories.
func (m *MemFS) MkdirAll(dirPath string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdirAllLocked(m.cleanPath(dirPath))
}

func (m *MemFS) mkdirAllLocked(dirPath string) error {
	current := ""
	for _, part := range strings.Split(strings.Trim(dirPath, "/"), "/") {
		if part == "" {
			continue
		}
		current += "/" + part
		if _, ok := m.files[current]; ok {
			return &fs.PathError{Op: "mkdir", Path: current, Err: errNotDir}
		}
		m.dirs[current] = true
	}
	return nil
}

// Rename renames a file. Directories cannot be renamed.
func (m *MemFS) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldPath = m.cleanPath(oldPath)
	newPath = m.cleanPath(newPath)

	f, ok := m.files[oldPath]
	if !ok {
		if m.dirs[oldPath] {
			return &fs.PathError{Op: "rename", Path: oldPath, Err: errIsDir}
		}
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if !m.dirs[path.Dir(newPath)] {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}
	m.files[newPath] = f
	delete(m.files, oldPath)
	return nil
}

// Abs returns the cleaned rooted path.
func (m *MemFS) Abs(filePath string) (string, error) {
	return m.cleanPath(filePath), nil
}

// cleanPath normalizes a path.
func (m *MemFS) cleanPath(p string) string {
	p = path.Clean(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// AddFile is a convenience method for adding files during setup. Parent
// directories are created as needed.
func (m *MemFS) AddFile(filePath string, content string) error {
	m.mu.Lock()
	err := m.mkdirAllLocked(path.Dir(m.cleanPath(filePath)))
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.WriteFile(filePath, []byte(content), 0o644)
}

// Files returns all file paths in the file system.
// Useful for testing and debugging.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]string, 0, len(m.files))
	for f := range m.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
