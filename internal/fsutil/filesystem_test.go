package fsutil

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryFileSystem_CreateRequiresDir(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.Create("out/plot.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := m.MkdirAll("out/nested", 0755); err != nil {
		t.Fatal(err)
	}
	if !m.Exists("out") || !m.Exists("out/nested") {
		t.Error("MkdirAll should record parents")
	}
	if _, err := m.Create("out/plot.png"); err != nil {
		t.Errorf("Create in existing dir: %v", err)
	}
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := WriteTo(m, "a.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	got, err := m.ReadFile("./a.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want hello", got)
	}

	// Returned data is a copy.
	got[0] = 'j'
	again, _ := m.ReadFile("a.txt")
	if string(again) != "hello" {
		t.Errorf("ReadFile should return a copy, got %q", again)
	}

	if names := m.Files(); len(names) != 1 || names[0] != "a.txt" {
		t.Errorf("Files() = %v", names)
	}
}

func TestMemoryFileSystem_ReadMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.ReadFile("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestOSFileSystem(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "f.bin")
	if err := WriteTo(fsys, path, bytes.NewBufferString("data")); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !fsys.Exists(path) {
		t.Error("file should exist")
	}
	got, err := fsys.ReadFile(path)
	if err != nil || string(got) != "data" {
		t.Errorf("ReadFile = %q, %v", got, err)
	}
	if fsys.Exists(filepath.Join(dir, "nope")) {
		t.Error("missing file reported as existing")
	}
}
