package logger

import (
	"io"
	"os"
	"time"

	"github.com/backup-toolkit/internal/config"
	"github.com/rs/zerolog"
)

// New creates a zerolog logger for the named tool.
// Output goes to stderr so interactive console output on stdout stays readable.
func New(service string, cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(os.Stderr, service, cfg)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, service string, cfg config.LogConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var logLevel zerolog.Level
	switch cfg.Level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	case "disabled":
		logLevel = zerolog.Disabled
	default:
		logLevel = zerolog.InfoLevel
	}

	if cfg.Format == "pretty" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Str("service", service).
			Logger()
	}

	return zerolog.New(w).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}
