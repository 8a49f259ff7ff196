// Package tracelog is a small leveled logger shared by the classfile
// decoder and the bytecode interpreter, in the spirit of the teacher's
// own log.Helper/log.Logger split.
package tracelog

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the severity of a log line. Higher is noisier.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, formatted trace lines.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New returns a Logger that writes to w, filtering anything above level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{out: w, level: level}
}

// Std is the default logger, writing to stderr at LevelWarn.
var Std = New(os.Stderr, LevelWarn)

// SetLevel adjusts the filter level, e.g. from a CLI --verbose flag.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) logf(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > l.level {
		return
	}
	fmt.Fprintf(l.out, "["+level.String()+"] "+format+"\n", args...)
}

func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
