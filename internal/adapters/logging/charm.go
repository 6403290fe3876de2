package logging

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/felixgeelhaar/scripthost/internal/ports"
)

// CharmLogger adapts a charmbracelet/log logger to ports.Logger.
type CharmLogger struct {
	logger *log.Logger
	level  ports.Level
}

// CharmLoggerOption configures the logger.
type CharmLoggerOption func(*charmSettings)

type charmSettings struct {
	out       io.Writer
	level     ports.Level
	json      bool
	timestamp bool
	prefix    string
}

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) CharmLoggerOption {
	return func(s *charmSettings) {
		s.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) CharmLoggerOption {
	return func(s *charmSettings) {
		s.level = level
	}
}

// WithJSONFormat switches to JSON lines.
func WithJSONFormat(enabled bool) CharmLoggerOption {
	return func(s *charmSettings) {
		s.json = enabled
	}
}

// WithTimestamp includes the time in each entry.
func WithTimestamp(enabled bool) CharmLoggerOption {
	return func(s *charmSettings) {
		s.timestamp = enabled
	}
}

// WithPrefix sets the component prefix.
func WithPrefix(prefix string) CharmLoggerOption {
	return func(s *charmSettings) {
		s.prefix = prefix
	}
}

// NewCharmLogger creates a logger writing through charmbracelet/log.
func NewCharmLogger(opts ...CharmLoggerOption) *CharmLogger {
	s := charmSettings{
		out:       os.Stderr,
		level:     ports.LevelInfo,
		timestamp: true,
	}
	for _, opt := range opts {
		opt(&s)
	}

	formatter := log.TextFormatter
	if s.json {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(s.out, log.Options{
		Prefix:          s.prefix,
		ReportTimestamp: s.timestamp,
		Formatter:       formatter,
		Level:           toCharmLevel(s.level),
	})

	return &CharmLogger{logger: logger, level: s.level}
}

// Debug logs a debug message.
func (l *CharmLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Debug(msg, keyvals(fields)...)
}

// Info logs an informational message.
func (l *CharmLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Info(msg, keyvals(fields)...)
}

// Warn logs a warning message.
func (l *CharmLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Warn(msg, keyvals(fields)...)
}

// Error logs an error message.
func (l *CharmLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.logger.Error(msg, keyvals(fields)...)
}

// With returns a child logger carrying fields on every entry.
func (l *CharmLogger) With(fields ...ports.Field) ports.Logger {
	return &CharmLogger{
		logger: l.logger.With(keyvals(fields)...),
		level:  l.level,
	}
}

// Level returns the minimum log level.
func (l *CharmLogger) Level() ports.Level {
	return l.level
}

// SetLevel sets the minimum log level.
func (l *CharmLogger) SetLevel(level ports.Level) {
	l.level = level
	l.logger.SetLevel(toCharmLevel(level))
}

func keyvals(fields []ports.Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

func toCharmLevel(level ports.Level) log.Level {
	switch level {
	case ports.LevelDebug:
		return log.DebugLevel
	case ports.LevelWarn:
		return log.WarnLevel
	case ports.LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

var _ ports.Logger = (*CharmLogger)(nil)
