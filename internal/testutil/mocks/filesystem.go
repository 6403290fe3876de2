package mocks

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/felixgeelhaar/scripthost/internal/ports"
)

// FileSystem is a thread-safe in-memory ports.FileSystem.
// Adding a file implicitly creates its parent directories.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (fs *FileSystem) AddFile(path string, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	fs.files[path] = []byte(content)
	fs.addParentsLocked(path)
}

// AddDir adds a directory to the mock filesystem.
func (fs *FileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	fs.dirs[path] = true
	fs.addParentsLocked(path)
}

// Remove deletes a file or directory entry.
func (fs *FileSystem) Remove(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	path = filepath.Clean(path)
	delete(fs.files, path)
	delete(fs.dirs, path)
}

func (fs *FileSystem) addParentsLocked(path string) {
	for dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		fs.dirs[dir] = true
	}
}

// ReadFile reads a file from the mock filesystem.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if content, ok := fs.files[filepath.Clean(path)]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

// IsFile reports whether a file exists in the mock filesystem.
func (fs *FileSystem) IsFile(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.files[filepath.Clean(path)]
	return ok
}

// IsDir reports whether a directory exists in the mock filesystem.
func (fs *FileSystem) IsDir(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.dirs[filepath.Clean(path)]
}

// ReadDir lists the direct children of a directory.
func (fs *FileSystem) ReadDir(path string) ([]ports.DirEntry, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	dir := filepath.Clean(path)
	if !fs.dirs[dir] {
		return nil, fmt.Errorf("directory not found: %s", path)
	}

	prefix := dir + string(filepath.Separator)
	seen := make(map[string]bool)
	var entries []ports.DirEntry
	collect := func(p string, isDir bool) {
		if !strings.HasPrefix(p, prefix) {
			return
		}
		rest := strings.TrimPrefix(p, prefix)
		if rest == "" || strings.ContainsRune(rest, filepath.Separator) || seen[rest] {
			return
		}
		seen[rest] = true
		entries = append(entries, ports.DirEntry{Name: rest, IsDir: isDir})
	}
	for p := range fs.files {
		collect(p, false)
	}
	for p := range fs.dirs {
		collect(p, true)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
