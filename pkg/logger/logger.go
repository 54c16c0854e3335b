// Package logger provides a structured zerolog logger for night-device-report.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Init creates and returns a zerolog.Logger writing to stderr at the given level.
// Supported levels: debug, info, warn, error. Defaults to warn, so a
// successful run leaves stderr empty.
func Init(level string) zerolog.Logger {
	return New(os.Stderr, level)
}

// New creates a console logger writing to w. Colour is only used when w is a
// terminal.
func New(w io.Writer, level string) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	return zerolog.New(
		zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    noColor,
			TimeFormat: time.RFC3339,
		},
	).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a config log level onto a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
