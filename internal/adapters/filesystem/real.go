// Package filesystem provides file system adapters.
package filesystem

import (
	"os"
	"sort"

	"github.com/felixgeelhaar/scripthost/internal/ports"
)

// RealFileSystem implements ports.FileSystem on the host disk.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// ReadFile reads a file and returns its contents.
func (fs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// IsFile reports whether path exists and is not a directory.
// Symlinks are followed.
func (fs *RealFileSystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir checks if a path is a directory.
func (fs *RealFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ReadDir lists a directory sorted by name. Symlinked directories are
// reported as directories.
func (fs *RealFileSystem) ReadDir(path string) ([]ports.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	out := make([]ports.DirEntry, 0, len(entries))
	for _, e := range entries {
		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			isDir = fs.IsDir(path + string(os.PathSeparator) + e.Name())
		}
		out = append(out, ports.DirEntry{Name: e.Name(), IsDir: isDir})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Ensure RealFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*RealFileSystem)(nil)
