// Package diag carries diagnostic logging for device code.
//
// Logs never travel over the protocol transport. On hardware they go to a
// debug UART through a DebugWriter; on the desktop runner a zerolog adapter
// implements Logger.
package diag

import (
	"strconv"
	"time"
)

// Logger is the interface for structured logging.
// It is compatible with *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DebugWriter is a function type for writing one rendered log line
type DebugWriter func(string)

// Level orders log severities
type Level int

// Log levels
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DBG", "INF", "WRN", "ERR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "???"
	}
	return levelNames[l]
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// LineLogger renders "LVL msg key=value ..." lines to a DebugWriter.
// It avoids fmt so it stays small on TinyGo.
type LineLogger struct {
	w   DebugWriter
	min Level
}

// NewLineLogger creates a LineLogger that drops entries below min
func NewLineLogger(w DebugWriter, min Level) *LineLogger {
	return &LineLogger{w: w, min: min}
}

func (l *LineLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *LineLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *LineLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *LineLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }

func (l *LineLogger) log(level Level, msg string, args []any) {
	if l.w == nil || level < l.min {
		return
	}
	l.w(Render(level, msg, args...))
}

// Render formats one log line
func Render(level Level, msg string, args ...any) string {
	line := make([]byte, 0, 64)
	line = append(line, level.String()...)
	line = append(line, ' ')
	line = append(line, msg...)

	for i := 0; i < len(args); i += 2 {
		line = append(line, ' ')
		if i+1 >= len(args) {
			line = append(line, "!BADKEY="...)
			line = appendValue(line, args[i])
			break
		}
		if key, ok := args[i].(string); ok {
			line = append(line, key...)
		} else {
			line = append(line, "!BADKEY"...)
		}
		line = append(line, '=')
		line = appendValue(line, args[i+1])
	}
	return string(line)
}

func appendValue(b []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(b, val...)
	case int:
		return strconv.AppendInt(b, int64(val), 10)
	case int32:
		return strconv.AppendInt(b, int64(val), 10)
	case int64:
		return strconv.AppendInt(b, val, 10)
	case uint:
		return strconv.AppendUint(b, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(b, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(b, val, 10)
	case bool:
		return strconv.AppendBool(b, val)
	case time.Duration:
		return append(b, val.String()...)
	case error:
		return append(b, val.Error()...)
	case nil:
		return append(b, "<nil>"...)
	default:
		return append(b, '?')
	}
}
