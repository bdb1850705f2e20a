package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_toLevel(t *testing.T) {
	testCases := []struct {
		level    string
		expected slog.Level
	}{
		{level: "debug", expected: slog.LevelDebug},
		{level: "info", expected: slog.LevelInfo},
		{level: "warn", expected: slog.LevelWarn},
		{level: "error", expected: slog.LevelError},
		{level: "", expected: slog.LevelInfo},
		{level: "verbose", expected: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expected, toLevel(tc.level))
		})
	}
}

func Test_newLogger(t *testing.T) {
	t.Run("filters below level", func(t *testing.T) {
		// given
		var buf bytes.Buffer
		logger := newLogger(&buf, "warn")
		// when
		logger.Info("hidden")
		// then
		assert.Empty(t, buf.String())
	})
	t.Run("adds request id from context", func(t *testing.T) {
		// given
		var buf bytes.Buffer
		logger := newLogger(&buf, "info")
		ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
		// when
		logger.InfoContext(ctx, "visible")
		// then
		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "visible", record["msg"])
		assert.Equal(t, "req-1", record["request_id"])
		assert.NotContains(t, record, "source")
	})
	t.Run("debug adds source", func(t *testing.T) {
		// given
		var buf bytes.Buffer
		logger := newLogger(&buf, "debug")
		// when
		logger.Debug("details")
		// then
		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Contains(t, record, "source")
	})
}
