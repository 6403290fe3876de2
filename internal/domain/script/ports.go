package script

import "context"

// Interpreter compiles and runs script text. It exclusively owns the handles it returns.
type Interpreter interface {
	// Name identifies the backend (e.g. "lua").
	Name() string

	// Extension is the conventional file extension, including the dot.
	Extension() string

	// CompileAndRun executes source as script name. A returned error means
	// nothing was loaded and no handle needs releasing.
	CompileAndRun(ctx context.Context, name, source string) (Handle, error)

	// Release tears down a handle returned by CompileAndRun.
	Release(ctx context.Context, h Handle) error
}
