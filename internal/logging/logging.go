// Package logging configures structured logging for ptjobs.
//
// Both the CLI and the mock API log through zerolog. Each package takes a
// child logger tagged with pkg=<name>:
//
//	logging.Setup(logging.Options{Level: "debug", Format: "console"})
//	log := logging.New("session")
//	log.Info().Str("role", "candidate").Msg("session restored")
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger fields
const (
	PACKAGE = "pkg"
	OP      = "op"
)

// Options controls how logging is configured.
type Options struct {
	Level  string    // "debug", "info", "warn", "error" (default: "info")
	Format string    // "console" or "json" (default: "console")
	Output io.Writer // where to write logs (default: os.Stderr)
}

// ParseLevel converts a string level name to a zerolog.Level.
// Returns zerolog.InfoLevel for unrecognized values.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
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

// LevelNames returns all valid level names, useful for --help text.
func LevelNames() string {
	return "debug, info, warn, error, off"
}

// Validate returns an error if the level string is not recognized.
func Validate(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error", "disabled", "off", "":
		return nil
	default:
		return fmt.Errorf("unknown log level %q (valid: %s)", level, LevelNames())
	}
}

// Setup initialises the global zerolog logger with the given options.
func Setup(opts Options) error {
	if err := Validate(opts.Level); err != nil {
		return err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "json":
	case "console", "text", "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: true}
	default:
		return fmt.Errorf("unknown log format %q (valid: console, json)", opts.Format)
	}

	level := ParseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)
	ctx := zerolog.New(out).With().Timestamp()
	if level == zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	return nil
}

// New returns a child of the global logger with pkg={pkg}.
func New(pkg string) zerolog.Logger {
	return log.With().Str(PACKAGE, pkg).Logger()
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
