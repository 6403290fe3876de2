package mocks

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/felixgeelhaar/scripthost/internal/domain/script"
)

// FailMarker makes the mock interpreter reject any source containing it.
const FailMarker = "FAIL"

// InterpreterHandle is the handle returned by the mock interpreter.
type InterpreterHandle struct {
	ID     int
	Name   string
	Source string
}

// Interpreter is a thread-safe test double for script.Interpreter.
// Sources containing FailMarker are rejected with an error whose message is
// the remainder of that line.
type Interpreter struct {
	mu       sync.Mutex
	ext      string
	nextID   int
	compiled []*InterpreterHandle
	released map[int]int
	order    []string

	// ReleaseErr, when set, is returned by Release after recording the call.
	ReleaseErr error
}

// NewInterpreter creates a mock interpreter with the given extension.
func NewInterpreter(ext string) *Interpreter {
	return &Interpreter{
		ext:      ext,
		released: make(map[int]int),
	}
}

// Name implements script.Interpreter.
func (m *Interpreter) Name() string {
	return "mock"
}

// Extension implements script.Interpreter.
func (m *Interpreter) Extension() string {
	return m.ext
}

// CompileAndRun implements script.Interpreter.
func (m *Interpreter) CompileAndRun(_ context.Context, name, source string) (script.Handle, error) {
	if idx := strings.Index(source, FailMarker); idx >= 0 {
		msg := strings.TrimSpace(source[idx+len(FailMarker):])
		if nl := strings.IndexByte(msg, '\n'); nl >= 0 {
			msg = msg[:nl]
		}
		if msg == "" {
			msg = "script error"
		}
		return nil, errors.New(msg)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	h := &InterpreterHandle{ID: m.nextID, Name: name, Source: source}
	m.compiled = append(m.compiled, h)
	return h, nil
}

// Release implements script.Interpreter.
func (m *Interpreter) Release(_ context.Context, h script.Handle) error {
	handle, ok := h.(*InterpreterHandle)
	if !ok {
		return errors.New("foreign handle")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.released[handle.ID]++
	m.order = append(m.order, handle.Name)
	return m.ReleaseErr
}

// Compiled returns every handle created so far.
func (m *Interpreter) Compiled() []*InterpreterHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*InterpreterHandle(nil), m.compiled...)
}

// ReleaseCount returns how many times the handle with id was released.
func (m *Interpreter) ReleaseCount(id int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released[id]
}

// ReleasedNames returns script names in release order.
func (m *Interpreter) ReleasedNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Ensure Interpreter implements script.Interpreter.
var _ script.Interpreter = (*Interpreter)(nil)
