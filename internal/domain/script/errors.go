package script

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrNilRecord indicates a nil record was provided.
	ErrNilRecord = errors.New("script record cannot be nil")
	// ErrEmptyName indicates a record without a name.
	ErrEmptyName = errors.New("script name cannot be empty")
	// ErrScriptNotFound indicates a name did not resolve to a loadable file.
	ErrScriptNotFound = errors.New("script not found")
	// ErrScriptNotLoaded indicates a name is not present in the registry.
	ErrScriptNotLoaded = errors.New("script not loaded")
	// ErrEmptySource indicates an inline load without any code.
	ErrEmptySource = errors.New("script source cannot be empty")
)

// DuplicateNameError indicates a register call for a name that is already active.
// The lifecycle manager always unloads before re-registering, so this only
// surfaces when the registry is used directly.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("script %q already registered", e.Name)
}

// NotFoundError carries the name that failed to resolve.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("script %s not found", e.Name)
}

// Unwrap returns ErrScriptNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrScriptNotFound
}

// NotLoadedError carries the name that is absent from the registry.
type NotLoadedError struct {
	Name string
}

func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("script %s is not loaded", e.Name)
}

// Unwrap returns ErrScriptNotLoaded.
func (e *NotLoadedError) Unwrap() error {
	return ErrScriptNotLoaded
}

// LoadError is an interpreter failure while compiling or running a script.
// Message is the interpreter's text, shown to the user verbatim.
type LoadError struct {
	Name    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("script %s failed to load: %s", e.Name, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsDuplicateName returns true if the error is a duplicate registration.
func IsDuplicateName(err error) bool {
	var dupErr *DuplicateNameError
	return errors.As(err, &dupErr)
}

// IsNotFound returns true if the error indicates a failed resolution.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScriptNotFound)
}

// IsNotLoaded returns true if the error indicates the script is not active.
func IsNotLoaded(err error) bool {
	return errors.Is(err, ErrScriptNotLoaded)
}

// IsLoadError returns true if the error is an interpreter failure.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
