package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggingConfig(t *testing.T) {
	cfg := DefaultLoggingConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.False(t, cfg.AddSource)
}

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with default config", func(t *testing.T) {
		logger := NewLogger(DefaultLoggingConfig())
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("creates logger with debug level", func(t *testing.T) {
		logger := NewLogger(LoggingConfig{Level: "debug", Format: "json", Output: "stdout"})
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		logger := NewLogger(LoggingConfig{Level: "warn", Format: "console", Output: "stderr"})
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("writes to a file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "service.log")
		logger := NewLogger(LoggingConfig{Level: "info", Format: "json", Output: path})
		logger.Info().Msg("to file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
	})
}

func TestOpenLogger(t *testing.T) {
	t.Run("closes the file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "service.log")
		logger, closer, err := OpenLogger(LoggingConfig{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)
		logger.Info().Msg("before close")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "before close")
	})

	t.Run("standard streams need no closing", func(t *testing.T) {
		_, closer, err := OpenLogger(LoggingConfig{Output: "stderr"})
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
	})

	t.Run("reports an output that cannot be opened", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "service.log")
		_, closer, err := OpenLogger(LoggingConfig{Output: path})
		require.Error(t, err)
		assert.Nil(t, closer)
		assert.Contains(t, err.Error(), path)
	})
}

func TestNewLogger_FallsBackToStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "service.log")
	logger := NewLogger(LoggingConfig{Level: "warn", Output: path})

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestWithRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctxLogger := WithRequestContext(logger, "req-123", "corr-456")
	ctxLogger.Info().Msg("handled")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "corr-456", entry["correlation_id"])
	assert.Equal(t, "handled", entry["message"])
}

func TestWithOwnerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctxLogger := WithOwnerContext(logger, "user-1")
	ctxLogger.Info().Msg("profile saved")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "user-1", entry["owner_id"])
}

func TestWithPublicationContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctxLogger := WithPublicationContext(logger, "pub-9", "user-1")
	ctxLogger.Info().Msg("publication deleted")

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, "pub-9", entry["publication_id"])
	assert.Equal(t, "user-1", entry["owner_id"])
}
