// Package logger is a small leveled logger. Output is discarded unless a
// log file is configured, since stdout belongs to the TUI.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
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

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger is a leveled logger safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	level  Level
	out    io.Writer
	logger *log.Logger
	file   *os.File
}

// Default is the logger behind the package-level functions.
var Default *Logger

func init() {
	Default = New()
}

// New creates a logger configured from ARCHINTAKE_LOG_LEVEL and
// ARCHINTAKE_LOG_FILE.
func New() *Logger {
	l := &Logger{
		level:  LevelInfo,
		out:    io.Discard,
		logger: log.New(io.Discard, "", log.LstdFlags),
	}
	_ = l.Configure(os.Getenv("ARCHINTAKE_LOG_LEVEL"), os.Getenv("ARCHINTAKE_LOG_FILE"))
	return l
}

// Configure applies a level and an optional log file. An empty file keeps
// the current output.
func (l *Logger) Configure(level, file string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = lvl

	if file == "" {
		return nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.out = f
	l.logger.SetOutput(f)
	return nil
}

// Close closes the logger and any open file handles
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.out = io.Discard
		l.logger.SetOutput(io.Discard)
		return err
	}
	return nil
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.logger.SetOutput(w)
}

// Writer returns the current output, for components that emit their own
// records into the log (trace exporters).
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out
}

func (l *Logger) Debug(format string, v ...interface{}) { l.log(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.log(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.log(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.log(LevelError, format, v...) }

func (l *Logger) log(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}

// Package-level functions that use the default logger

func Debug(format string, v ...interface{}) { Default.Debug(format, v...) }
func Info(format string, v ...interface{})  { Default.Info(format, v...) }
func Warn(format string, v ...interface{})  { Default.Warn(format, v...) }
func Error(format string, v ...interface{}) { Default.Error(format, v...) }

// Configure applies level and file to the default logger.
func Configure(level, file string) error { return Default.Configure(level, file) }

// Writer returns the default logger's output.
func Writer() io.Writer { return Default.Writer() }

// Close closes the default logger
func Close() error {
	return Default.Close()
}
