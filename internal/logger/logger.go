// Package logger provides a simple logging interface for hostdash components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// The dashboard owns the terminal while it runs, so the env logger writes to
// whatever Configure installed (usually a log file) and discards everything
// until then.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DebugEnv enables debug-level messages when set to any non-empty value.
const DebugEnv = "HOSTDASH_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

var (
	sinkMu    sync.RWMutex
	sink      = zerolog.New(io.Discard)
	debugMode bool
)

// Configure points every env logger at w. Debug messages are written when
// debug is true or HOSTDASH_DEBUG is set.
func Configure(w io.Writer, debug bool) {
	if w == nil {
		w = io.Discard
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}

	sinkMu.Lock()
	defer sinkMu.Unlock()
	sink = zerolog.New(output).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Logger()
	debugMode = debug
}

func current() (zerolog.Logger, bool) {
	sinkMu.RLock()
	defer sinkMu.RUnlock()
	return sink, debugMode
}

// envLogger implements Logger on top of the configured zerolog sink.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger that respects the HOSTDASH_DEBUG environment variable.
// The prefix is prepended to all log messages (e.g., "[session]" or "[metrics]").
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) message(format string, args ...interface{}) string {
	return strings.TrimSpace(l.prefix + " " + fmt.Sprintf(format, args...))
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	log, debug := current()
	if !debug && os.Getenv(DebugEnv) == "" {
		return
	}
	log.Debug().Msg(l.message(format, args...))
}

func (l *envLogger) Info(format string, args ...interface{}) {
	log, _ := current()
	log.Info().Msg(l.message(format, args...))
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	log, _ := current()
	log.Warn().Msg(l.message(format, args...))
}

func (l *envLogger) Error(format string, args ...interface{}) {
	log, _ := current()
	log.Error().Msg(l.message(format, args...))
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Safe for use from Bubble Tea commands running on other goroutines.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}
