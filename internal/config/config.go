// Package config loads scripthost settings from defaults, an optional YAML or
// TOML file, SCRIPTHOST_* environment variables and command-line overrides,
// in increasing order of precedence.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported interpreter backends.
const (
	InterpreterLua   = "lua"
	InterpreterShell = "shell"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "SCRIPTHOST_"

// DefaultConfigPaths are tried in order when no file is given explicitly.
var DefaultConfigPaths = []string{
	"~/.scripthost/config.yaml",
	"~/.scripthost/config.toml",
}

// Config is the resolved host configuration.
type Config struct {
	UserDir     string `yaml:"user_dir" toml:"user_dir" env:"USER_DIR"`
	SystemDir   string `yaml:"system_dir" toml:"system_dir" env:"SYSTEM_DIR"`
	Interpreter string `yaml:"interpreter" toml:"interpreter" env:"INTERPRETER"`
	Autorun     bool   `yaml:"autorun" toml:"autorun" env:"AUTORUN"`
	Log         Log    `yaml:"log" toml:"log" envPrefix:"LOG_"`
}

// Log configures the logging adapter.
type Log struct {
	Level  string `yaml:"level" toml:"level" env:"LEVEL"`
	Format string `yaml:"format" toml:"format" env:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UserDir:     "~/.scripthost/scripts",
		SystemDir:   "/usr/local/share/scripthost/scripts",
		Interpreter: InterpreterLua,
		Autorun:     true,
		Log: Log{
			Level:  "warn",
			Format: LogFormatText,
		},
	}
}

// Overrides are values given on the command line. Empty strings leave the
// loaded value untouched.
type Overrides struct {
	UserDir     string
	SystemDir   string
	Interpreter string
	Verbose     bool
}

// Apply copies non-empty overrides into c. Verbose forces debug logging.
func (c *Config) Apply(o Overrides) {
	if o.UserDir != "" {
		c.UserDir = o.UserDir
	}
	if o.SystemDir != "" {
		c.SystemDir = o.SystemDir
	}
	if o.Interpreter != "" {
		c.Interpreter = o.Interpreter
	}
	if o.Verbose {
		c.Log.Level = "debug"
	}
}

// Validate checks every setting and expands ~ in the directories.
func (c *Config) Validate() error {
	var errs ErrorList

	switch c.Interpreter {
	case InterpreterLua, InterpreterShell:
	default:
		errs.AddValidation("interpreter", fmt.Sprintf("unknown interpreter %q", c.Interpreter),
			"Use \"lua\" or \"shell\".")
	}

	if _, err := ports.ParseLevel(c.Log.Level); err != nil {
		errs.AddValidation("log.level", err.Error(), "Use debug, info, warn or error.")
	}

	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		errs.AddValidation("log.format", fmt.Sprintf("unknown format %q", c.Log.Format),
			"Use \"text\" or \"json\".")
	}

	if c.UserDir == "" && c.SystemDir == "" {
		errs.AddValidation("user_dir", "no script directory configured",
			"Set user_dir or system_dir.")
	}

	c.UserDir = ports.ExpandPath(c.UserDir)
	c.SystemDir = ports.ExpandPath(c.SystemDir)

	return errs.AsError()
}

// Loader reads configuration through a FileSystem.
type Loader struct {
	fs      ports.FileSystem
	environ map[string]string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithEnvironment replaces the process environment, mainly for tests.
func WithEnvironment(environ map[string]string) LoaderOption {
	return func(l *Loader) {
		l.environ = environ
	}
}

// NewLoader creates a loader.
func NewLoader(fs ports.FileSystem, opts ...LoaderOption) *Loader {
	l := &Loader{fs: fs}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds the configuration. When path is empty the default locations
// are tried and a missing file is not an error; an explicit missing path is.
// The result is not validated so overrides can still be applied.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	file, err := l.locate(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := l.decodeFile(file, cfg); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if l.environ != nil {
		opts.Environment = l.environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func (l *Loader) locate(path string) (string, error) {
	if path != "" {
		expanded := ports.ExpandPath(path)
		if !l.fs.IsFile(expanded) {
			return "", newConfigNotFoundError(path)
		}
		return expanded, nil
	}
	for _, candidate := range DefaultConfigPaths {
		expanded := ports.ExpandPath(candidate)
		if l.fs.IsFile(expanded) {
			return expanded, nil
		}
	}
	return "", nil
}

func (l *Loader) decodeFile(path string, cfg *Config) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return newConfigNotFoundError(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return newUnsupportedFormatError(path)
	}
	if err != nil {
		return newConfigParseError(path, err)
	}
	return nil
}
