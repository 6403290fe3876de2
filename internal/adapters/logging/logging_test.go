package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/scripthost/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger_ImplementsInterface(_ *testing.T) {
	var _ ports.Logger = NewNopLogger()
}

func TestNopLogger_Methods(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	withLogger := logger.With(ports.F("key", "value"))
	if withLogger != logger {
		t.Error("NopLogger.With should return itself")
	}
}

func TestNopLogger_Level(t *testing.T) {
	logger := NewNopLogger()
	assert.Equal(t, ports.LevelInfo, logger.Level())

	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
}

func TestCharmLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCharmLogger(
		WithOutput(&buf),
		WithLevel(ports.LevelDebug),
		WithTimestamp(false),
	)

	logger.Info(context.Background(), "script loaded", ports.F("name", "hello"))

	out := buf.String()
	assert.Contains(t, out, "script loaded")
	assert.Contains(t, out, "name=hello")
}

func TestCharmLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCharmLogger(
		WithOutput(&buf),
		WithLevel(ports.LevelWarn),
		WithTimestamp(false),
	)
	ctx := context.Background()

	logger.Debug(ctx, "hidden debug")
	logger.Info(ctx, "hidden info")
	logger.Warn(ctx, "shown warn")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")

	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
	logger.Debug(ctx, "now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestCharmLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCharmLogger(
		WithOutput(&buf),
		WithJSONFormat(true),
		WithTimestamp(false),
	)

	logger.With(ports.F("component", "manager")).
		Warn(context.Background(), "load failed", ports.F("name", "broken"))

	line := strings.TrimSpace(buf.String())
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "load failed", entry["msg"])
	assert.Equal(t, "manager", entry["component"])
	assert.Equal(t, "broken", entry["name"])
}
