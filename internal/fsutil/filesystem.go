// Package fsutil abstracts the filesystem that diagnostic artifacts are
// written to, so plot output can be tested in memory.
package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileSystem is the subset of filesystem operations artifact writers need.
// Use OSFileSystem for production; MemoryFileSystem for testing.
type FileSystem interface {
	// Create creates or truncates the named file.
	Create(name string) (io.WriteCloser, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// MkdirAll creates a directory and all necessary parents.
	MkdirAll(path string, perm os.FileMode) error

	// Exists checks if a file or directory exists.
	Exists(name string) bool
}

// WriteTo creates name on fsys and copies src into it.
func WriteTo(fsys FileSystem, name string, src io.WriterTo) error {
	f, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := src.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

func (OSFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OSFileSystem) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// MemoryFileSystem is an in-memory FileSystem. Files become visible when
// the writer returned by Create is closed.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemoryFileSystem creates a new in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// Create creates or truncates a file.
func (m *MemoryFileSystem) Create(name string) (io.WriteCloser, error) {
	name = filepath.Clean(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if dir := filepath.Dir(name); dir != "." && !m.dirs[dir] {
		return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrNotExist}
	}
	m.files[name] = nil
	return &memFileWriter{fs: m, name: name}, nil
}

// ReadFile returns a copy of a file's contents.
func (m *MemoryFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return bytes.Clone(data), nil
}

// MkdirAll records path and its parents as directories.
func (m *MemoryFileSystem) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for p := filepath.Clean(path); p != "." && p != "/"; p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

// Exists checks if a file or directory exists.
func (m *MemoryFileSystem) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name = filepath.Clean(name)
	_, ok := m.files[name]
	return ok || m.dirs[name]
}

// Files returns the sorted names of all files.
func (m *MemoryFileSystem) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type memFileWriter struct {
	fs   *MemoryFileSystem
	name string
	buf  bytes.Buffer
}

func (f *memFileWriter) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFileWriter) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.files[f.name] = f.buf.Bytes()
	return nil
}
