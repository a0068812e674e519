// Package log provides structured debug logging for signup.
// Logging is off until Init is called (via --debug or SIGNUP_DEBUG). Entries
// go to a file, into a bounded in-memory buffer for the log overlay, and out
// on a pubsub broker so the overlay can refresh live.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/signup/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatForm    Category = "form"    // Field updates and validation
	CatSubmit  Category = "submit"  // Submission handling and mode transitions
	CatConfig  Category = "config"  // Configuration loading and reloads
	CatUI      Category = "ui"      // UI component updates
	CatWatcher Category = "watcher" // Config file watcher events
	CatTrace   Category = "trace"   // Tracing provider lifecycle
)

const bufferCapacity = 500

// Entry is one buffered log record.
type Entry struct {
	Time     time.Time
	Level    Level
	Category Category
	Message  string
	Line     string // fully formatted line, without trailing newline
}

// Logger writes formatted entries to a writer and a ring buffer.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []Entry
	broker   *pubsub.Broker[string]
	now      func() time.Time
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Init opens path for appending and installs it as the global logger.
// The returned function closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-chosen debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := newLogger(f)
	l.closer = f
	install(l)
	return func() { Close() }, nil
}

// InitWriter installs a logger writing to w. Used by tests and by callers
// that already own an output stream.
func InitWriter(w io.Writer) func() {
	install(newLogger(w))
	return Close
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
		now:      time.Now,
	}
}

func install(l *Logger) {
	defaultMu.Lock()
	prev := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()
	if prev != nil {
		prev.close()
	}
}

// Close shuts the global logger down. Later log calls are dropped.
func Close() {
	defaultMu.Lock()
	l := defaultLogger
	defaultLogger = nil
	defaultMu.Unlock()
	if l != nil {
		l.close()
	}
}

func (l *Logger) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = false
	if l.broker != nil {
		l.broker.Close()
	}
	if l.closer != nil {
		_ = l.closer.Close()
		l.closer = nil
	}
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Enabled reports whether a global logger is installed and active.
func Enabled() bool {
	l := current()
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// SetMinLevel sets the minimum level written by the global logger.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs msg at error level with err attached as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}
	l.log(level, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2026-10-17T10:45:00 [INFO] [submit] message key=value key2=value2
	now := l.now()
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", now.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	line := b.String()

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, line+"\n")
	}

	l.buffer = append(l.buffer, Entry{
		Time:     now,
		Level:    level,
		Category: cat,
		Message:  msg,
		Line:     line,
	})
	if over := len(l.buffer) - bufferCapacity; over > 0 {
		l.buffer = append(l.buffer[:0:0], l.buffer[over:]...)
	}

	l.broker.Publish(pubsub.CreatedEvent, line)
}

// Entries returns buffered entries at or above min, oldest first.
func Entries(min Level) []Entry {
	l := current()
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, 0, len(l.buffer))
	for _, e := range l.buffer {
		if e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}

// ClearBuffer drops all buffered entries. The log file is untouched.
func ClearBuffer() {
	if l := current(); l != nil {
		l.mu.Lock()
		l.buffer = nil
		l.mu.Unlock()
	}
}

// LogEvent is the pubsub event carrying one formatted log line.
type LogEvent = pubsub.Event[string]

// LogListener keeps a subscription to log events open.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to log events until ctx is cancelled.
// Returns nil when logging is not initialized.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, l.broker)
}
