package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagelog/garagelog-api/internal/config"
)

func TestSetupLogLevels(t *testing.T) {
	testCases := []struct {
		name       string
		level      string
		debugShown bool
	}{
		{name: "debug level shows debug logs", level: "debug", debugShown: true},
		{name: "info level hides debug logs", level: "info", debugShown: false},
		{name: "error level hides info logs", level: "error", debugShown: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.level})
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.Equal(t, tc.debugShown, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestContextPropagation(t *testing.T) {
	logBuf, logger, cleanup := SetupTestLogger(t, nil)
	defer cleanup()

	scoped := logger.With(slog.String("trace_id", "abc123"))
	ctx := WithLogger(context.Background(), scoped)

	FromContext(ctx).Info("handled request")
	AssertLogContains(t, logBuf, "abc123")

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "handled request", entries[0]["msg"])

	// An empty context falls back to the provided default
	logBuf.Reset()
	fallback := FromContextOrDefault(context.Background(), scoped)
	fallback.Info("fallback path")
	AssertLogContains(t, logBuf, "fallback path")
}
