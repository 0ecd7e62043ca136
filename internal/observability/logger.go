package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig contains logger configuration options.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error, fatal, panic).
	Level string

	// Format is the output format (json, console, pretty).
	Format string

	// Output is the output destination (stdout, stderr, or a file path).
	Output string

	// AddSource adds source file and line number to log entries.
	AddSource bool

	// TimeFormat is the time format for timestamps.
	TimeFormat string
}

// DefaultLoggingConfig returns a LoggingConfig with sensible defaults.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      "info",
		Format:     "json",
		Output:     "stdout",
		AddSource:  false,
		TimeFormat: time.RFC3339,
	}
}

// NewLogger creates a new zerolog logger based on configuration.
// An output that is neither stdout nor stderr is opened as an append-only file
// that stays open for the life of the process. If the file cannot be opened the
// logger writes to stderr and logs a warning about the fallback.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	output, _, err := openOutput(cfg.Output)
	if err != nil {
		logger := buildLogger(cfg, os.Stderr)
		logger.Warn().Err(err).Str("output", cfg.Output).Msg("log output unavailable, writing to stderr")
		return logger
	}
	return buildLogger(cfg, output)
}

// OpenLogger is NewLogger for callers that own the log file: an output that
// cannot be opened is an error, and the returned closer releases the file.
// Closing is a no-op for stdout and stderr.
func OpenLogger(cfg LoggingConfig) (zerolog.Logger, io.Closer, error) {
	output, closer, err := openOutput(cfg.Output)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return buildLogger(cfg, output), closer, nil
}

func buildLogger(cfg LoggingConfig, output io.Writer) zerolog.Logger {
	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: zerolog.TimeFieldFormat,
		}
	}

	logger := zerolog.New(output).With().Timestamp()
	if cfg.AddSource {
		logger = logger.Caller()
	}
	log := logger.Logger()

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	return log.Level(level)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(dest string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(dest) {
	case "", "stdout":
		return os.Stdout, nopCloser{}, nil
	case "stderr":
		return os.Stderr, nopCloser{}, nil
	}
	f, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output %s: %w", dest, err)
	}
	return f, f, nil
}

// parseLevel converts a string log level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithRequestContext adds the request and correlation ids to a logger.
func WithRequestContext(logger zerolog.Logger, requestID, correlationID string) zerolog.Logger {
	return logger.With().
		Str("request_id", requestID).
		Str("correlation_id", correlationID).
		Logger()
}

// WithOwnerContext adds the researcher (owner) id to a logger.
func WithOwnerContext(logger zerolog.Logger, ownerID string) zerolog.Logger {
	return logger.With().
		Str("owner_id", ownerID).
		Logger()
}

// WithPublicationContext adds publication fields to a logger.
func WithPublicationContext(logger zerolog.Logger, publicationID, ownerID string) zerolog.Logger {
	return logger.With().
		Str("publication_id", publicationID).
		Str("owner_id", ownerID).
		Logger()
}
