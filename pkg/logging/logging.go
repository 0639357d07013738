// Package logging holds the process-wide zerolog logger used by the runner
// and the CLI, plus helpers for progress and completion events.
package logging

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger *zerolog.Logger
	pretty atomic.Bool
)

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger = &l
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Init configures the global logger to write to stderr.
// debug lowers the level to Debug. human switches to a console writer and
// turns on the "_h" companion fields of completion events.
func Init(debug, human bool) {
	InitWriter(os.Stderr, debug, human)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, debug, human bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	out := w
	if human {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	SetPrettyMode(human)

	l := zerolog.New(out).With().Timestamp().Logger()
	logger = &l
}

// L returns the global logger.
func L() *zerolog.Logger {
	return logger
}

// WithTarget returns the global logger tagged with a benchmark target name.
func WithTarget(name string) zerolog.Logger {
	return logger.With().Str("target", name).Logger()
}

// SetLogger replaces the global logger.
func SetLogger(l zerolog.Logger) {
	logger = &l
}

// IsPrettyMode reports whether completion events add human-readable fields.
func IsPrettyMode() bool {
	return pretty.Load()
}

// SetPrettyMode toggles the human-readable companion fields.
func SetPrettyMode(on bool) {
	pretty.Store(on)
}
