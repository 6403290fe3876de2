package app

import (
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/ports"
)

// Completer answers tab-completion queries for the load and unload commands.
// Both queries only complete the first argument: when anything follows the
// word being completed they return nothing.
type Completer struct {
	fs       ports.FileSystem
	resolver *script.Resolver
	registry *script.Registry
}

// NewCompleter creates a completer over the resolver's directories and the registry.
func NewCompleter(fs ports.FileSystem, resolver *script.Resolver, registry *script.Registry) *Completer {
	return &Completer{
		fs:       fs,
		resolver: resolver,
		registry: registry,
	}
}

// CompleteLoad returns file names starting with word, from the user
// directory first and then the system directory. Directories end in "/".
// A word that is itself absolute or home-relative is completed in place.
func (c *Completer) CompleteLoad(word, rest string) []string {
	if strings.TrimSpace(rest) != "" {
		return nil
	}

	if filepath.IsAbs(word) || strings.HasPrefix(word, "~/") {
		return c.completeIn("", word)
	}

	var out []string
	for _, root := range c.resolver.Dirs() {
		out = append(out, c.completeIn(root, word)...)
	}
	return out
}

// CompleteUnload returns active script names starting with word, in load order.
func (c *Completer) CompleteUnload(word, rest string) []string {
	if strings.TrimSpace(rest) != "" {
		return nil
	}
	return c.registry.FindByPrefix(word)
}

// completeIn lists the directory named by the part of word up to its last
// slash, relative to root, and keeps entries matching the remainder. The
// typed directory part is kept on every candidate.
func (c *Completer) completeIn(root, word string) []string {
	dirPart, prefix := "", word
	if i := strings.LastIndex(word, "/"); i >= 0 {
		dirPart, prefix = word[:i+1], word[i+1:]
	}

	dir := ports.ExpandPath(dirPart)
	if root != "" {
		dir = filepath.Join(root, dirPart)
	}
	if dir == "" {
		return nil
	}

	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		if strings.HasPrefix(e.Name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		candidate := dirPart + e.Name
		if e.IsDir {
			candidate += "/"
		}
		out = append(out, candidate)
	}
	return out
}
