package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options selects where log entries go.
type Options struct {
	Level string
	// File receives plain, uncoloured entries when non-empty.
	File string
	// Console writes coloured entries to stderr. The terminal front-end turns
	// this off so logs do not land on the screen it draws.
	Console bool
}

// ParseLevel maps trace|debug|info|warn|error to a zerolog level, defaulting
// to info for anything else.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds the process logger. The returned closer flushes and closes the
// log file, if one was opened.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("error opening log file: %w", err)
		}
		closer = f
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	return New(zerolog.MultiLevelWriter(writers...), ParseLevel(opts.Level)), closer, nil
}

// New wraps w in a logger tagged with a fresh session id.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("session", uuid.New().String()).
		Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
