// Package logging builds the zerolog logger used by the service and the
// command line, and carries it through a context.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the default configuration: info level, console output.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		TimeFormat: time.RFC3339,
	}
}

// ParseConfig builds a Config from level and format names.
func ParseConfig(level, format string) (Config, error) {
	cfg := DefaultConfig()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return cfg, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch format {
	case FormatConsole, FormatJSON:
	default:
		return cfg, fmt.Errorf("invalid log format %q (want console or json)", format)
	}

	cfg.Level = lvl
	cfg.Format = format

	return cfg, nil
}

// New creates a zerolog logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat}
	}

	return zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}
