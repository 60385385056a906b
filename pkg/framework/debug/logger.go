// Package debug provides logging, profiling and voltage checks for modules.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// sink is the output shared by a logger and its children
type sink struct {
	mu     sync.Mutex
	output io.Writer
}

// Logger provides leveled logging with an optional prefix path.
// Loggers created with With share their parent's output and lock.
type Logger struct {
	sink    *sink
	mu      sync.RWMutex
	level   LogLevel
	prefix  string
	flags   int
	enabled bool
}

// Flags for logger output formatting.
const (
	FlagTime      = 1 << iota // Include timestamp
	FlagShortFile             // Include short file name and line number
	FlagLongFile              // Include full file path and line number
	FlagLevel                 // Include log level
	FlagPrefix                // Include prefix
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagShortFile | FlagLevel | FlagPrefix

var defaultLogger *Logger

func init() {
	defaultLogger = New(os.Stderr, "lilac", DefaultFlags)
}

// New creates a new logger instance.
func New(output io.Writer, prefix string, flags int) *Logger {
	return &Logger{
		sink:    &sink{output: output},
		prefix:  prefix,
		flags:   flags,
		level:   LogLevelInfo,
		enabled: true,
	}
}

// OpenLogFile redirects the default logger and its children to a file,
// appending to it. The caller closes the returned file.
func OpenLogFile(filename string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	defaultLogger.SetOutput(file)
	return file, nil
}

// With returns a child logger whose prefix extends this one with name.
// The child starts with the parent's level and flags.
func (l *Logger) With(name string) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "/" + name
	}
	return &Logger{
		sink:    l.sink,
		prefix:  prefix,
		flags:   l.flags,
		level:   l.level,
		enabled: l.enabled,
	}
}

// SetOutput sets the output destination for the logger and its children.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Prefix returns the logger prefix.
func (l *Logger) Prefix() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.prefix
}

// SetFlags sets the output formatting flags.
func (l *Logger) SetFlags(flags int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flags = flags
}

// SetEnabled enables or disables the logger.
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// IsEnabled returns whether the logger is enabled.
func (l *Logger) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// Enabled reports whether a message at level would be written.
// Callers on the audio path check it before building expensive arguments.
func (l *Logger) Enabled(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled && level >= l.level && l.level != LogLevelOff
}

// log writes a log message at the specified level.
func (l *Logger) log(level LogLevel, msg string) {
	if !l.Enabled(level) {
		return
	}

	l.mu.RLock()
	flags, prefix := l.flags, l.prefix
	l.mu.RUnlock()

	var sb strings.Builder

	if flags&FlagTime != 0 {
		sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000 "))
	}
	if flags&FlagLevel != 0 {
		fmt.Fprintf(&sb, "[%s] ", level.String())
	}
	if flags&FlagPrefix != 0 && prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", prefix)
	}
	if flags&(FlagShortFile|FlagLongFile) != 0 {
		// Skip log, the level method and its caller's wrapper
		_, file, line, ok := runtime.Caller(3)
		if ok {
			if flags&FlagShortFile != 0 {
				file = filepath.Base(file)
			}
			fmt.Fprintf(&sb, "%s:%d: ", file, line)
		}
	}

	sb.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		sb.WriteString("\n")
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output.Write([]byte(sb.String()))
}

func (l *Logger) logf(level LogLevel, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.log(level, fmt.Sprintf(format, args...))
}

func (l *Logger) logw(level LogLevel, msg string, keyvals ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.log(level, formatFields(msg, keyvals))
}

// formatFields renders msg followed by key=value pairs.
// A trailing key without a value is rendered with "?".
func formatFields(msg string, keyvals []interface{}) string {
	if len(keyvals) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keyvals); i += 2 {
		sb.WriteByte(' ')
		fmt.Fprint(&sb, keyvals[i])
		sb.WriteByte('=')
		if i+1 < len(keyvals) {
			fmt.Fprint(&sb, keyvals[i+1])
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, format, args...)
}

// Debugw logs a debug message with key/value fields.
func (l *Logger) Debugw(msg string, keyvals ...interface{}) {
	l.logw(LogLevelDebug, msg, keyvals...)
}

// Infow logs an informational message with key/value fields.
func (l *Logger) Infow(msg string, keyvals ...interface{}) {
	l.logw(LogLevelInfo, msg, keyvals...)
}

// Warnw logs a warning with key/value fields.
func (l *Logger) Warnw(msg string, keyvals ...interface{}) {
	l.logw(LogLevelWarn, msg, keyvals...)
}

// Errorw logs an error with key/value fields.
func (l *Logger) Errorw(msg string, keyvals ...interface{}) {
	l.logw(LogLevelError, msg, keyvals...)
}

// Global logger functions

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// SetFlags sets the output formatting flags for the default logger.
func SetFlags(flags int) {
	defaultLogger.SetFlags(flags)
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...interface{}) {
	defaultLogger.logf(LogLevelDebug, format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...interface{}) {
	defaultLogger.logf(LogLevelInfo, format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...interface{}) {
	defaultLogger.logf(LogLevelWarn, format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...interface{}) {
	defaultLogger.logf(LogLevelError, format, args...)
}
