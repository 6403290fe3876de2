package main

import (
	"context"
	"io"

	"github.com/felixgeelhaar/scripthost/internal/adapters/filesystem"
	"github.com/felixgeelhaar/scripthost/internal/adapters/logging"
	"github.com/felixgeelhaar/scripthost/internal/app"
	"github.com/felixgeelhaar/scripthost/internal/config"
	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/felixgeelhaar/scripthost/internal/tui/ui"
	"github.com/spf13/cobra"
)

// loadConfig resolves the configuration: defaults, file, environment, flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(filesystem.NewRealFileSystem()).Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg.Apply(config.Overrides{
		UserDir:     userDir,
		SystemDir:   systemDir,
		Interpreter: interpreter,
		Verbose:     verbose,
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) ports.Logger {
	level, err := ports.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = ports.LevelWarn
	}
	return logging.NewCharmLogger(
		logging.WithOutput(w),
		logging.WithLevel(level),
		logging.WithJSONFormat(cfg.Log.Format == config.LogFormatJSON),
		logging.WithPrefix("scripthost"),
	)
}

// hostSetup tweaks the host options of one command.
type hostSetup struct {
	// out receives script output; defaults to the command's stdout.
	out io.Writer
	// interp overrides the configured interpreter.
	interp func(cfg *config.Config) (script.Interpreter, error)
	// skipStart leaves autorun scripts unloaded.
	skipStart bool
}

// openHost builds a host for cmd and runs the startup autoload.
// The caller must Close it.
func openHost(cmd *cobra.Command, setup hostSetup) (*app.Host, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// A custom writer takes everything; one-shot commands split load
	// errors onto stderr.
	out, errOut := setup.out, setup.out
	if out == nil {
		out, errOut = cmd.OutOrStdout(), cmd.ErrOrStderr()
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	var interp script.Interpreter
	if setup.interp != nil {
		if interp, err = setup.interp(cfg); err != nil {
			return nil, err
		}
	}

	styles := ui.DefaultStyles()
	host, err := app.NewHost(app.HostOptions{
		Config:      cfg,
		Out:         out,
		ErrOut:      errOut,
		Logger:      logger,
		Interpreter: interp,
		Styles:      &styles,
		Verbose:     verbose,
	})
	if err != nil {
		return nil, err
	}

	if !setup.skipStart {
		if err := host.Start(cmd.Context()); err != nil {
			logger.Warn(cmd.Context(), "autoload failed", ports.F("error", err.Error()))
		}
	}
	return host, nil
}

// withHost runs fn against a freshly opened host and closes it afterwards.
func withHost(cmd *cobra.Command, fn func(ctx context.Context, host *app.Host) error) error {
	host, err := openHost(cmd, hostSetup{})
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	defer host.Close(ctx)
	return fn(ctx, host)
}
