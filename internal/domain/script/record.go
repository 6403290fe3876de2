// Package script provides the registry of active scripts, name resolution,
// and the per-load lifecycle used by the script manager.
package script

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxSourcePreview is the number of characters of inline source shown in listings.
const MaxSourcePreview = 50

// truncationMarker is appended to a shortened source preview.
const truncationMarker = " ..."

// Handle is an interpreter-owned execution context. The registry never inspects it.
type Handle interface{}

// Record represents one active script.
type Record struct {
	// Name is unique within a Registry.
	Name string
	// Path is the absolute file location; empty for inline scripts.
	Path string
	// Source is the inline text; empty for file scripts.
	Source string
	// Handle is released through the interpreter on unload.
	Handle Handle
	// LoadID identifies this particular load of Name.
	LoadID string
	// LoadedAt is when the record was registered.
	LoadedAt time.Time
	// Lifecycle is the state machine of this load; nil for records built by hand.
	Lifecycle *Lifecycle
}

// State returns the lifecycle state, treating records without a machine as active.
func (r *Record) State() State {
	if r.Lifecycle == nil {
		return StateActive
	}
	return r.Lifecycle.State()
}

// IsInline reports whether the record was loaded from text rather than a file.
func (r *Record) IsInline() bool {
	return r.Path == ""
}

// Descriptor returns the text shown next to the name in listings:
// the path for file scripts, otherwise the source cut to MaxSourcePreview
// characters with a marker when shortened.
func (r *Record) Descriptor() string {
	if r.Path != "" {
		return r.Path
	}
	return TruncateSource(r.Source, MaxSourcePreview)
}

// TruncateSource shortens s to at most limit runes, appending a marker when cut.
func TruncateSource(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + truncationMarker
}

// NameFromPath derives a script name from a file path: the base name without extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
