package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// DirEntry is a single directory listing entry.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem is the read-only view of the disk used to resolve, read and
// complete script paths.
type FileSystem interface {
	// ReadFile returns the contents of a file.
	ReadFile(path string) ([]byte, error)
	// IsFile reports whether path exists and is not a directory.
	IsFile(path string) bool
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
	// ReadDir lists a directory sorted by name.
	ReadDir(path string) ([]DirEntry, error)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
