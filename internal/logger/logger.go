package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Component     string
}

// Logger wraps zerolog with the handful of calls the CLI needs.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &Logger{base: ctx.Logger()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	derived := Logger{base: l.base.With().Fields(fields).Logger()}
	return &derived
}

// SetLevel changes the minimum level, e.g. when --verbose is parsed after startup. Only
// the receiver changes: loggers already derived with WithFields keep their level, so set
// the level on the derived logger.
func (l *Logger) SetLevel(level string) error {
	if l == nil {
		return nil
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	l.base = l.base.Level(parsed)
	return nil
}

// Info writes an informational log entry. kv holds alternating keys and values.
func (l *Logger) Info(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.base.Info().Fields(kv).Msg(msg)
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.base.Debug().Fields(kv).Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string, kv ...any) {
	if l == nil {
		return
	}
	l.base.Warn().Fields(kv).Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string, kv ...any) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Fields(kv).Msg(msg)
}
