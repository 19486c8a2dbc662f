// Package logger builds the zerolog loggers used across xcstran.
//
// Loggers are passed explicitly to the components that need them; there is
// no process-wide instance. A command builds one root logger with New and
// derives a Named child per component from it.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the project-wide logging type.
type Logger = zerolog.Logger

// Options configures a logger.
type Options struct {
	Level   string
	Format  string // "console" or "json"
	Writer  io.Writer
	NoColor bool
}

// New builds a logger from opt. Output defaults to stderr so that stdout
// stays free for command results.
func New(opt Options) Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if strings.ToLower(opt.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: opt.NoColor}
	}

	return zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Logger()
}

// Nop returns a disabled logger, handy for tests and library defaults.
func Nop() Logger {
	return zerolog.Nop()
}

// Named returns a child of l carrying a component field. zerolog appends
// fields rather than replacing them, so l must be a root logger from New,
// never another Named logger.
func Named(l Logger, component string) Logger {
	if component == "" {
		return l
	}
	return l.With().Str("component", component).Logger()
}

// LevelFor maps the verbose flag to a level name.
func LevelFor(verbose bool) string {
	if verbose {
		return "debug"
	}
	return "info"
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
