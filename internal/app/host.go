package app

import (
	"context"
	"fmt"
	"io"

	"github.com/felixgeelhaar/scripthost/internal/adapters/filesystem"
	"github.com/felixgeelhaar/scripthost/internal/adapters/logging"
	luainterp "github.com/felixgeelhaar/scripthost/internal/adapters/lua"
	shellinterp "github.com/felixgeelhaar/scripthost/internal/adapters/shell"
	"github.com/felixgeelhaar/scripthost/internal/config"
	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/felixgeelhaar/scripthost/internal/tui/ui"
)

// HostOptions configures NewHost. Only Config is required.
type HostOptions struct {
	Config *config.Config
	// Out receives script output and confirmations.
	Out io.Writer
	// ErrOut receives load errors. Defaults to Out.
	ErrOut io.Writer
	// Logger defaults to a NopLogger.
	Logger ports.Logger
	// FileSystem defaults to the real filesystem.
	FileSystem ports.FileSystem
	// Interpreter overrides the backend selected by Config.Interpreter.
	Interpreter script.Interpreter
	// Styles defaults to plain styles.
	Styles *ui.Styles
	// Verbose also reports unloads on Out.
	Verbose bool
}

// Host is a fully wired script host: one registry, one interpreter, and
// the services the front ends use.
type Host struct {
	Config     *config.Config
	Manager    *Manager
	Dispatcher *Dispatcher
	Completer  *Completer
	Display    *Display
	Autoloader *Autoloader
	Logger     ports.Logger
}

// NewInterpreter builds the backend named by a config interpreter value.
func NewInterpreter(name string, out io.Writer) (script.Interpreter, error) {
	switch name {
	case config.InterpreterLua:
		return luainterp.New(out), nil
	case config.InterpreterShell:
		return shellinterp.New(shellinterp.WithOutput(out)), nil
	default:
		return nil, fmt.Errorf("unknown interpreter %q", name)
	}
}

// NewHost wires a host from opts.
func NewHost(opts HostOptions) (*Host, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("host requires a configuration")
	}
	cfg := opts.Config

	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewRealFileSystem()
	}
	styles := ui.PlainStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	interp := opts.Interpreter
	if interp == nil {
		var err error
		interp, err = NewInterpreter(cfg.Interpreter, out)
		if err != nil {
			return nil, err
		}
	}

	display := NewDisplay(out,
		WithErrorOutput(opts.ErrOut),
		WithStyles(styles),
		WithVerbose(opts.Verbose),
	)
	bus := script.NewBus(display, NewEventLogger(logger))
	resolver := script.NewResolver(fs, cfg.UserDir, cfg.SystemDir, interp.Extension())
	manager := NewManager(fs, interp, resolver,
		WithBus(bus),
		WithLogger(logger.With(ports.F("component", "manager"))),
	)

	autoloader := NewAutoloader(fs, manager, cfg.UserDir, logger.With(ports.F("component", "autoload")))
	if cfg.Autorun {
		manager.SetStartupHook(autoloader.Hook())
	}

	return &Host{
		Config:     cfg,
		Manager:    manager,
		Dispatcher: NewDispatcher(manager).WithStyles(styles),
		Completer:  NewCompleter(fs, resolver, manager.Registry()),
		Display:    display,
		Autoloader: autoloader,
		Logger:     logger,
	}, nil
}

// Start performs the startup autoload when it is enabled.
func (h *Host) Start(ctx context.Context) error {
	if !h.Config.Autorun {
		return nil
	}
	_, err := h.Autoloader.Run(ctx)
	return err
}

// Close unloads every script.
func (h *Host) Close(ctx context.Context) {
	h.Manager.Close(ctx)
}
