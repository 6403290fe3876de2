package app

import (
	"context"

	"github.com/felixgeelhaar/scripthost/internal/domain/script"
	"github.com/felixgeelhaar/scripthost/internal/ports"
)

// EventLogger writes every script event to a logger.
type EventLogger struct {
	logger ports.Logger
}

// NewEventLogger creates an event logger.
func NewEventLogger(logger ports.Logger) *EventLogger {
	return &EventLogger{logger: logger.With(ports.F("component", "events"))}
}

// Notify implements script.Subscriber.
func (l *EventLogger) Notify(ctx context.Context, event script.Event) {
	switch e := event.(type) {
	case script.ScriptLoaded:
		l.logger.Info(ctx, "script loaded", ports.F("script", e.Name), ports.F("path", e.Path), ports.F("load_id", e.LoadID))
	case script.ScriptUnloaded:
		l.logger.Info(ctx, "script unloaded", ports.F("script", e.Name))
	case script.ScriptLoadError:
		l.logger.Error(ctx, "script load error", ports.F("script", e.Name), ports.F("error", e.Message))
	}
}

var _ script.Subscriber = (*EventLogger)(nil)
