package script

import (
	"strings"
	"sync"
)

// Registry is the insertion-ordered set of active scripts, keyed by name.
// Each method is atomic; callers that combine several calls into one
// operation (such as a reload) must serialize those sequences themselves.
type Registry struct {
	mu      sync.RWMutex
	records []*Record
	index   map[string]*Record
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]*Record),
	}
}

// Register appends a record.
// Returns ErrNilRecord, ErrEmptyName, or DuplicateNameError if the name is taken.
func (r *Registry) Register(rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}
	if rec.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[rec.Name]; exists {
		return &DuplicateNameError{Name: rec.Name}
	}
	r.records = append(r.records, rec)
	r.index[rec.Name] = rec
	return nil
}

// Unregister removes the named record and returns it.
func (r *Registry) Unregister(name string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.index[name]
	if !ok {
		return nil, &NotLoadedError{Name: name}
	}
	delete(r.index, name)
	for i, candidate := range r.records {
		if candidate == rec {
			r.records = append(r.records[:i], r.records[i+1:]...)
			break
		}
	}
	return rec, nil
}

// Find returns the record with exactly this name.
func (r *Registry) Find(name string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.index[name]
	return rec, ok
}

// FindByPrefix returns, in registry order, the names starting with prefix.
func (r *Registry) FindByPrefix(prefix string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0)
	for _, rec := range r.records {
		if strings.HasPrefix(rec.Name, prefix) {
			names = append(names, rec.Name)
		}
	}
	return names
}

// All returns the records in insertion order.
func (r *Registry) All() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of active scripts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

// Clear removes every record in insertion order, calling onRemove for each
// after it has left the registry. onRemove may be nil.
func (r *Registry) Clear(onRemove func(*Record)) {
	r.mu.Lock()
	removed := r.records
	r.records = nil
	r.index = make(map[string]*Record)
	r.mu.Unlock()

	if onRemove == nil {
		return
	}
	for _, rec := range removed {
		onRemove(rec)
	}
}
