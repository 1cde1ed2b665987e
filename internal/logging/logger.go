// Package logging provides a small leveled logger handle, passed to the
// cluster service in place of the reference implementation's process-wide
// log-level global. The clustering core (Discover, Merge) takes no logger
// and logs nothing.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level is a verbosity level, ordered least to most verbose, mirroring the
// reference implementation's log-level enum.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

// Logger is a leveled logging handle. The zero value of Logger is not
// usable; construct one with New or use Nop.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New returns a Logger writing to w at the given level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		logger: log.New(w, "", log.LstdFlags),
	}
}

// Default returns a Logger writing to stderr at LevelInfo.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// Nop returns a Logger that discards everything, for callers that don't
// want logging (library use, tests).
func Nop() *Logger {
	return New(io.Discard, LevelError)
}

// Errorf logs at LevelError; always emitted.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// Infof logs at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Debugf logs at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l == nil || level > l.level {
		return
	}
	l.logger.Output(3, fmt.Sprintf(format, args...))
}
