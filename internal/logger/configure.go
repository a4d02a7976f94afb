package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure installs the global logger. Output goes to stderr so rendered
// results on stdout stay machine-readable.
func Configure(level string, pretty bool) error {
	return ConfigureWriter(os.Stderr, level, pretty)
}

// ConfigureWriter is Configure with an explicit destination.
func ConfigureWriter(out io.Writer, level string, pretty bool) error {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var writer io.Writer = out
	if pretty {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		}
	}

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)
	return nil
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
