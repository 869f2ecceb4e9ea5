package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Setup mutates the slog default, so these tests do not run in parallel.

func TestSetup_Levels(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantError bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true, wantError: true},
		{level: "INFO", wantDebug: false, wantInfo: true, wantError: true},
		{level: "warn", wantDebug: false, wantInfo: false, wantError: true},
		{level: "error", wantDebug: false, wantInfo: false, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			log, err := logger.Setup(logger.LoggerConfig{Level: tt.level, Output: buf})
			require.NoError(t, err)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.Equal(t, tt.wantDebug, log.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.wantInfo, log.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.wantError, log.Enabled(ctx, slog.LevelError))
			assert.Same(t, log, slog.Default())
		})
	}
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	log, err := logger.Setup(logger.LoggerConfig{Level: "verbose", Output: buf})
	require.NoError(t, err)

	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	logger.AssertLogContains(t, buf, "invalid log level configured")
	logger.AssertLogField(t, buf, "configured_level", "verbose")
}

func TestSetup_JSONOutput(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	log, err := logger.Setup(logger.LoggerConfig{Level: "info", Output: buf})
	require.NoError(t, err)

	log.Info("review submitted", "rating", "good", "interval", 6)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "review submitted", entries[0]["msg"])
	assert.Equal(t, "good", entries[0]["rating"])
	assert.Equal(t, float64(6), entries[0]["interval"])
}

func TestSetup_UnsupportedFormat(t *testing.T) {
	_, err := logger.Setup(logger.LoggerConfig{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := logger.ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = logger.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = logger.ParseLevel("trace")
	assert.Error(t, err)
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, log, logger.FromContextOrDefault(ctx, slog.Default()))

	fallback := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))

	logger.FromContext(ctx).Info("from context")
	logger.AssertLogContains(t, buf, "from context")

	ctx = logger.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", logger.RequestIDFromContext(ctx))
	assert.Equal(t, "", logger.RequestIDFromContext(context.Background()))
}
