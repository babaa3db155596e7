// Package zlog provides the leveled logging interface used across the
// traversal strategies and the CLI, gated by --debug/--trace verbosity
// flags.
package zlog

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Level is a verbosity level for Debug/Trace logging.
type Level int32

const (
	// LevelInfo is the default verbosity: warnings and errors only.
	LevelInfo Level = iota
	// LevelDebug enables Debug output.
	LevelDebug
	// LevelTrace enables Debug and Trace output.
	LevelTrace
)

// Logger is the logging interface used throughout this module.
type Logger interface {
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	V(Level) InfoLogger
}

// InfoLogger is a verbosity-gated logger returned by Logger.V.
type InfoLogger interface {
	Info(msg string)
	Infof(format string, args ...interface{})
	Enabled() bool
}

// StdLogger implements Logger on top of the standard log package, the
// same output mechanism the CLI already uses for errors and warnings.
type StdLogger struct {
	level Level
	out   *log.Logger
}

// NewStdLogger returns a StdLogger writing to stderr at the given
// level.
func NewStdLogger(level Level) *StdLogger {
	return &StdLogger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *StdLogger) Warn(msg string) { l.out.Print("WARN: " + msg) }
func (l *StdLogger) Warnf(format string, args ...interface{}) {
	l.out.Print("WARN: " + fmt.Sprintf(format, args...))
}
func (l *StdLogger) Error(msg string) { l.out.Print("ERROR: " + msg) }
func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.out.Print("ERROR: " + fmt.Sprintf(format, args...))
}

func (l *StdLogger) V(level Level) InfoLogger {
	return stdInfoLogger{l: l, level: level}
}

type stdInfoLogger struct {
	l     *StdLogger
	level Level
}

func (i stdInfoLogger) Enabled() bool { return i.l.level >= i.level }

func (i stdInfoLogger) Info(msg string) {
	if i.Enabled() {
		i.l.out.Print(levelPrefix(i.level) + msg)
	}
}

func (i stdInfoLogger) Infof(format string, args ...interface{}) {
	if i.Enabled() {
		i.l.out.Print(levelPrefix(i.level) + fmt.Sprintf(format, args...))
	}
}

func levelPrefix(level Level) string {
	switch level {
	case LevelTrace:
		return "TRACE: "
	default:
		return "DEBUG: "
	}
}

// NoopLogger discards everything. It's the default until a CLI command
// installs a real logger.
type NoopLogger struct{}

func (NoopLogger) Warn(string)                          {}
func (NoopLogger) Warnf(string, ...interface{})         {}
func (NoopLogger) Error(string)                         {}
func (NoopLogger) Errorf(string, ...interface{})        {}
func (NoopLogger) V(Level) InfoLogger                   { return noopInfoLogger{} }

type noopInfoLogger struct{}

func (noopInfoLogger) Info(string)                  {}
func (noopInfoLogger) Infof(string, ...interface{}) {}
func (noopInfoLogger) Enabled() bool                { return false }

var (
	mu  sync.Mutex
	std Logger = NoopLogger{}
)

// SetDefault installs l as the package-level default logger.
func SetDefault(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

// Default returns the package-level default logger.
func Default() Logger {
	mu.Lock()
	defer mu.Unlock()
	return std
}

// V is a convenience wrapper for Default().V(level).
func V(level Level) InfoLogger {
	return Default().V(level)
}
