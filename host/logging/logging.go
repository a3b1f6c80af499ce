// Package logging adapts zerolog to the device logging interface.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"framelink/diag"
)

// Logger is a diag.Logger writing through zerolog
type Logger struct {
	zl zerolog.Logger
}

var _ diag.Logger = (*Logger)(nil)

// New creates a logger for app. format is "console" or "json"; level is
// any zerolog level name.
func New(out io.Writer, app, level, format string) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	zl := zerolog.New(out).Level(lvl).With().Timestamp().Str("app", app).Logger()
	return &Logger{zl: zl}, nil
}

// Stderr logs to standard error; stdout may be the protocol link
func Stderr(app, level, format string) (*Logger, error) {
	return New(os.Stderr, app, level, format)
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(l.zl.Debug(), msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(l.zl.Info(), msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(l.zl.Warn(), msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.emit(l.zl.Error(), msg, args) }

// emit attaches key/value pairs the same way diag.Render does
func (l *Logger) emit(e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			e = e.Interface("!BADKEY", args[i])
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		if err, ok := args[i+1].(error); ok {
			e = e.AnErr(key, err)
		} else {
			e = e.Interface(key, args[i+1])
		}
	}
	e.Msg(msg)
}
