package shared

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
)

// SetupLogger configures zerolog at level. format "json" writes structured
// lines, anything else pretty console output.
func SetupLogger(level zerolog.Level, format string) zerolog.Logger {
	return newLogger(os.Stderr, level, format)
}

func newLogger(w io.Writer, level zerolog.Level, format string) zerolog.Logger {
	if format == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
	} else {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SessionLogger returns the charmbracelet logger handed to interactive
// sessions. It stays quiet unless debug is set so prompts are not drowned
// out.
func SessionLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: debug,
	})
}
