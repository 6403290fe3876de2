// Package app wires the script registry, resolver and interpreter into the
// operations the front ends call: load, unload, exec, flush, list and
// completion.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/scripthost/internal/adapters/logging"
	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/google/uuid"
)

// anonymousPrefix names inline scripts loaded without an explicit name.
const anonymousPrefix = "data"

// StartupHook runs after a flush has emptied the registry.
type StartupHook func(ctx context.Context) error

// Manager owns the registry of active scripts and every operation that
// changes it. All methods are safe for concurrent use; each one runs under
// a single lock, so a reload is atomic with respect to other callers.
type Manager struct {
	mu       sync.Mutex
	fs       ports.FileSystem
	interp   script.Interpreter
	resolver *script.Resolver
	registry *script.Registry
	bus      *script.Bus
	logger   ports.Logger
	hook     StartupHook
	now      func() time.Time
	anon     int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger ports.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithBus sets the bus load and unload events are published on.
func WithBus(bus *script.Bus) ManagerOption {
	return func(m *Manager) {
		m.bus = bus
	}
}

// WithStartupHook sets the hook run at the end of Flush.
func WithStartupHook(hook StartupHook) ManagerOption {
	return func(m *Manager) {
		m.hook = hook
	}
}

// WithClock overrides the time source for LoadedAt.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a manager with an empty registry.
func NewManager(fs ports.FileSystem, interp script.Interpreter, resolver *script.Resolver, opts ...ManagerOption) *Manager {
	m := &Manager{
		fs:       fs,
		interp:   interp,
		resolver: resolver,
		registry: script.NewRegistry(),
		bus:      script.NewBus(),
		logger:   logging.NewNopLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetStartupHook replaces the hook run at the end of Flush. The autoloader
// depends on the manager, so it is attached after construction.
func (m *Manager) SetStartupHook(hook StartupHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hook = hook
}

// Registry returns the registry for read-only queries.
func (m *Manager) Registry() *script.Registry {
	return m.registry
}

// Resolver returns the resolver used by LoadByName.
func (m *Manager) Resolver() *script.Resolver {
	return m.resolver
}

// Bus returns the event bus.
func (m *Manager) Bus() *script.Bus {
	return m.bus
}

// Interpreter returns the interpreter backend.
func (m *Manager) Interpreter() script.Interpreter {
	return m.interp
}

// Records returns the active scripts in load order.
func (m *Manager) Records() []*script.Record {
	return m.registry.All()
}

// LoadFile loads the script at path under the name derived from its file
// name. An active script with the same name is replaced.
func (m *Manager) LoadFile(ctx context.Context, path string) (*script.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadFileLocked(ctx, path)
}

func (m *Manager) loadFileLocked(ctx context.Context, path string) (*script.Record, error) {
	path = ports.ExpandPath(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if !m.fs.IsFile(path) {
		return nil, &script.NotFoundError{Name: path}
	}
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}

	return m.load(ctx, script.NameFromPath(path), path, string(data))
}

// LoadText runs inline source. An empty name gets a generated dataN name.
// When persistent is false the script is unloaded right after it ran.
func (m *Manager) LoadText(ctx context.Context, name, source string, persistent bool) (*script.Record, error) {
	if strings.TrimSpace(source) == "" {
		return nil, script.ErrEmptySource
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" {
		name = m.nextAnonymousName()
	}

	rec, err := m.load(ctx, name, "", source)
	if err != nil {
		return nil, err
	}
	if !persistent {
		m.unloadLocked(ctx, rec)
	}
	return rec, nil
}

// LoadByName loads raw directly when it is a path and through the resolver
// when it is a bare name.
func (m *Manager) LoadByName(ctx context.Context, raw string) (*script.Record, error) {
	if raw == "" {
		return nil, script.ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if script.IsPathLike(raw) {
		return m.loadFileLocked(ctx, raw)
	}

	path, err := m.resolver.Resolve(raw)
	if err != nil {
		m.logger.Debug(ctx, "script not found", ports.F("script", raw), ports.F("dirs", m.resolver.Dirs()))
		return nil, err
	}
	return m.loadFileLocked(ctx, path)
}

// Unload releases and removes the named script.
func (m *Manager) Unload(ctx context.Context, name string) (*script.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.registry.Find(name)
	if !ok {
		return nil, &script.NotLoadedError{Name: name}
	}
	m.unloadLocked(ctx, rec)
	return rec, nil
}

// Flush unloads every script in load order, then runs the startup hook.
// The registry is empty before the hook starts; a hook error is returned
// after the reset has happened.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	n := m.clearLocked(ctx)
	hook := m.hook
	m.mu.Unlock()

	m.logger.Info(ctx, "scripts flushed", ports.F("count", n))

	if hook == nil {
		return nil
	}
	if err := hook(ctx); err != nil {
		return fmt.Errorf("startup hook failed after flush: %w", err)
	}
	return nil
}

// Close unloads every script without running the startup hook.
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.clearLocked(ctx)
	m.logger.Debug(ctx, "manager closed", ports.F("count", n))
}

// load compiles first and swaps second, so a failed reload leaves the
// previous load of name active.
func (m *Manager) load(ctx context.Context, name, path, source string) (*script.Record, error) {
	lc, err := script.NewLifecycle(name)
	if err != nil {
		return nil, err
	}

	lc.Begin()
	handle, err := m.interp.CompileAndRun(ctx, name, source)
	if err != nil {
		msg := err.Error()
		lc.Fail(msg)
		m.logger.Warn(ctx, "script failed to load", ports.F("script", name), ports.F("error", msg))
		m.bus.Publish(ctx, script.ScriptLoadError{Name: name, Message: msg})
		return nil, &script.LoadError{Name: name, Message: msg, Err: err}
	}

	if prev, ok := m.registry.Find(name); ok {
		m.logger.Debug(ctx, "replacing active script", ports.F("script", name), ports.F("load_id", prev.LoadID))
		m.unloadLocked(ctx, prev)
	}

	rec := &script.Record{
		Name:      name,
		Path:      path,
		Handle:    handle,
		LoadID:    uuid.NewString(),
		LoadedAt:  m.now(),
		Lifecycle: lc,
	}
	if path == "" {
		rec.Source = source
	}

	if err := m.registry.Register(rec); err != nil {
		// Unreachable while every mutation holds m.mu.
		_ = m.interp.Release(ctx, handle)
		lc.Fail(err.Error())
		return nil, err
	}
	lc.Succeed()

	m.logger.Debug(ctx, "script loaded",
		ports.F("script", name),
		ports.F("path", path),
		ports.F("load_id", rec.LoadID),
	)
	m.bus.Publish(ctx, script.ScriptLoaded{Name: name, Path: path, LoadID: rec.LoadID})
	return rec, nil
}

func (m *Manager) unloadLocked(ctx context.Context, rec *script.Record) {
	m.release(ctx, rec)
	_, _ = m.registry.Unregister(rec.Name)
	m.finishUnload(ctx, rec)
}

func (m *Manager) clearLocked(ctx context.Context) int {
	n := 0
	m.registry.Clear(func(rec *script.Record) {
		m.release(ctx, rec)
		m.finishUnload(ctx, rec)
		n++
	})
	return n
}

// release never fails the unload: the record goes away even when the
// script's own unload code errors.
func (m *Manager) release(ctx context.Context, rec *script.Record) {
	if err := m.interp.Release(ctx, rec.Handle); err != nil {
		m.logger.Warn(ctx, "script unload hook failed", ports.F("script", rec.Name), ports.F("error", err.Error()))
	}
}

func (m *Manager) finishUnload(ctx context.Context, rec *script.Record) {
	if rec.Lifecycle != nil {
		rec.Lifecycle.Unload()
	}
	m.logger.Debug(ctx, "script unloaded", ports.F("script", rec.Name))
	m.bus.Publish(ctx, script.ScriptUnloaded{Name: rec.Name})
}

func (m *Manager) nextAnonymousName() string {
	for {
		m.anon++
		name := anonymousPrefix + strconv.Itoa(m.anon)
		if _, taken := m.registry.Find(name); !taken {
			return name
		}
	}
}
