// Package logging configures colored structured logging with tint.
//
//	logging.Setup()                                    // level from LOG_LEVEL
//	logging.SetupWithLevel(logging.ParseLevel("warn")) // explicit level
//
// Levels are debug, info, warn and error; anything else means info. Color is
// turned off when stderr is not a terminal, e.g. under docker logs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs the default logger at the LOG_LEVEL level.
func Setup() {
	SetupWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// SetupWithLevel installs a default logger writing to stderr at level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level, !isatty.IsTerminal(os.Stderr.Fd())))
}

// New returns a tint logger writing to w.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    noColor,
	}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to Info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
