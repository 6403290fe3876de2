package script

import (
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/scripthost/internal/ports"
)

// Resolver maps a bare script name to a file in the user or system scripts directory.
type Resolver struct {
	fs        ports.FileSystem
	userDir   string
	systemDir string
	ext       string
}

// NewResolver creates a resolver searching userDir before systemDir for
// files carrying ext. Either directory may be empty to disable it.
func NewResolver(fs ports.FileSystem, userDir, systemDir, ext string) *Resolver {
	return &Resolver{
		fs:        fs,
		userDir:   userDir,
		systemDir: systemDir,
		ext:       ext,
	}
}

// Dirs returns the search roots in priority order, skipping unset ones.
func (r *Resolver) Dirs() []string {
	dirs := make([]string, 0, 2)
	for _, d := range []string{r.userDir, r.systemDir} {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Extension returns the file extension candidates must carry.
func (r *Resolver) Extension() string {
	return r.ext
}

// Resolve returns the first existing file for name, user directory first.
// A name that already ends in the extension is looked up unchanged.
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", &NotFoundError{Name: name}
	}

	file := name
	if !strings.HasSuffix(file, r.ext) {
		file += r.ext
	}

	for _, dir := range r.Dirs() {
		candidate := filepath.Join(dir, file)
		if r.fs.IsFile(candidate) {
			return candidate, nil
		}
	}
	return "", &NotFoundError{Name: name}
}

// IsPathLike reports whether raw names a file directly instead of a script
// to be looked up: absolute, home-relative, or containing a separator.
func IsPathLike(raw string) bool {
	return filepath.IsAbs(raw) ||
		strings.HasPrefix(raw, "~") ||
		strings.ContainsRune(raw, '/') ||
		strings.ContainsRune(raw, filepath.Separator)
}
