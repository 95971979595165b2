// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects the level and output format.
type Config struct {
	// Level is a zerolog level name; unknown names fall back to info.
	Level string
	// Format is "json" or "console".
	Format string
}

// Setup configures the global logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter configures the global logger to write to w.
func SetupWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Str("service", "docstore").Logger()
	return log.Logger
}
