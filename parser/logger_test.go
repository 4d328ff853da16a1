package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("m", "k", "v")
	l.Info("m", "k", "v")
	l.Warn("m", "k", "v")
	l.Error("m", "k", "v")
	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		assert.NotNil(t, adapter.logger)
	})

	t.Run("levels", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("debug message", "ref", "#/$defs/Grain")
		adapter.Info("info message")
		adapter.Warn("warn message")
		adapter.Error("error message")

		out := buf.String()
		assert.Contains(t, out, "level=DEBUG msg=\"debug message\" ref=#/$defs/Grain")
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "level=ERROR")
	})

	t.Run("With carries attributes", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))
		adapter.With("component", "schema").Warn("bad pattern")
		assert.Contains(t, buf.String(), "component=schema")
	})
}

func TestOrNop(t *testing.T) {
	_, ok := OrNop(nil).(NopLogger)
	assert.True(t, ok)

	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, OrNop(adapter))
}
