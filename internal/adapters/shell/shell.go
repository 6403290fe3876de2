// Package shell implements script.Interpreter with the pure-Go POSIX shell
// from mvdan.cc/sh. Each script keeps its own runner, so functions and
// variables it defines stay alive until it is unloaded.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Extension is the file extension of shell scripts.
const Extension = ".sh"

// unloadHook is the function a script may define to run when it is unloaded.
const unloadHook = "on_unload"

// ErrForeignHandle is returned when Release receives a handle it did not create.
var ErrForeignHandle = errors.New("handle was not created by the shell interpreter")

// Interpreter runs shell scripts.
type Interpreter struct {
	out io.Writer
	dir string
	env []string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where script stdout and stderr go.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithDir sets the working directory scripts start in.
func WithDir(dir string) Option {
	return func(i *Interpreter) {
		i.dir = dir
	}
}

// WithEnv replaces the inherited process environment.
func WithEnv(env []string) Option {
	return func(i *Interpreter) {
		i.env = env
	}
}

// New creates a shell interpreter.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		out: io.Discard,
		env: os.Environ(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type handle struct {
	name   string
	runner *interp.Runner
}

// Name implements script.Interpreter.
func (i *Interpreter) Name() string {
	return "shell"
}

// Extension implements script.Interpreter.
func (i *Interpreter) Extension() string {
	return Extension
}

// CompileAndRun parses source and runs it in a new runner.
// A parse error or a non-zero exit status rejects the script.
func (i *Interpreter) CompileAndRun(ctx context.Context, name, source string) (script.Handle, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, err
	}

	env := append(append([]string(nil), i.env...), "SCRIPT_NAME="+name)
	opts := []interp.RunnerOption{
		interp.StdIO(nil, i.out, i.out),
		interp.Env(expand.ListEnviron(env...)),
	}
	if i.dir != "" {
		opts = append(opts, interp.Dir(i.dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell runner: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		return nil, runError(err)
	}
	return &handle{name: name, runner: runner}, nil
}

// Release runs the script's on_unload function, if it defines one.
func (i *Interpreter) Release(ctx context.Context, h script.Handle) error {
	sh, ok := h.(*handle)
	if !ok || sh.runner == nil {
		return ErrForeignHandle
	}
	runner := sh.runner
	sh.runner = nil

	if _, defined := runner.Funcs[unloadHook]; !defined {
		return nil
	}

	call, err := syntax.NewParser().Parse(strings.NewReader(unloadHook), sh.name)
	if err != nil {
		return err
	}
	if err := runner.Run(ctx, call); err != nil {
		return fmt.Errorf("%s: %w", sh.name, runError(err))
	}
	return nil
}

func runError(err error) error {
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return fmt.Errorf("exit status %d", int(status))
	}
	return err
}

var _ script.Interpreter = (*Interpreter)(nil)
