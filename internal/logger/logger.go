// Package logger writes leveled diagnostic messages to stderr.
//
// Diagnostics are kept apart from the user-facing output package so that
// --json output on stdout stays parseable. By default only Warn and Error
// are shown; --verbose enables Debug and Info:
//
//	logger.Init(verbose)
//
// Lines have the form
//
//	[LEVEL] YYYY-MM-DD HH:MM:SS message key=value ...
//
// Pipeline code logs with fields so every line names the domain and step
// it belongs to:
//
//	logger.DebugFields("step done", logger.Fields{"domain": "shop.test", "step": "hosts"})
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the string representation of the log level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Fields are key/value pairs appended to a log line in key order.
type Fields = map[string]interface{}

// Logger handles leveled logging with thread-safe output.
type Logger struct {
	level  Level
	output io.Writer
	now    func() time.Time
	mu     sync.Mutex
}

var std = &Logger{
	level:  LevelWarn,
	output: os.Stderr,
	now:    time.Now,
}

// Init sets the level from the verbose flag: Debug when verbose, Warn
// otherwise.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// GetLevel returns the current log level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// SetOutput redirects the global logger. nil restores os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.output = w
}

func (l *Logger) write(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", level, l.now().Format("2006-01-02 15:04:05"), msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.output, b.String())
}

// Debug logs a debug message. Shown with --verbose only.
func Debug(format string, args ...interface{}) {
	std.write(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info logs an informational message. Shown with --verbose only.
func Info(format string, args ...interface{}) {
	std.write(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std.write(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std.write(LevelError, fmt.Sprintf(format, args...), nil)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields Fields) {
	std.write(LevelDebug, msg, fields)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields Fields) {
	std.write(LevelInfo, msg, fields)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields Fields) {
	std.write(LevelWarn, msg, fields)
}

// ErrorFields logs an error message with structured fields.
func ErrorFields(msg string, fields Fields) {
	std.write(LevelError, msg, fields)
}
