// Package logger configures the structured logger shared by the bmlc tools.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Global logger instance
var defaultLogger *slog.Logger

// logFile is the file opened for Config.LogFile, if any.
var logFile *os.File

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (l LogLevel) String() string {
	if l >= LevelDebug && l <= LevelError {
		return levelNames[l]
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLevel converts a level name as written in configuration files.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
	LogFile   string
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init initializes the global logger with the given configuration.
// When cfg.LogFile is set, records are appended to that file instead of
// cfg.Output until Close is called or Init runs again.
func Init(cfg Config) error {
	if err := Close(); err != nil {
		return err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFile = file
		output = file
	}

	handler, err := newHandler(output, cfg)
	if err != nil {
		Close()
		return err
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

// Close closes the log file opened by Init, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func newHandler(w io.Writer, cfg Config) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	}
	return nil, fmt.Errorf("unknown log format %q", cfg.Format)
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the configured logger, or slog's default before Init.
func L() *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}

// With returns a new logger with the given attributes
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

// Front-end logging helpers

// LogFileParsed logs a successful parse.
func LogFileParsed(l *slog.Logger, file string, stmts int) {
	l.Debug("parsed file", "file", file, "stmts", stmts)
}

// LogFileFailed logs a file that failed to lex or parse.
func LogFileFailed(l *slog.Logger, file string, err error) {
	l.Info("file has errors", "file", file, "error", err)
}

// LogCheckComplete logs the summary of a batch check.
func LogCheckComplete(l *slog.Logger, files, failed int, duration string) {
	l.Info("check complete", "files", files, "failed", failed, "duration", duration)
}
