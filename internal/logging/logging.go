package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	Logger  = zerolog.Nop()
	logFile *os.File
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// DefaultPath returns ~/.local/state/hypr-cycle/hypr-cycle.log
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".local", "state", "hypr-cycle", "hypr-cycle.log")
}

// Init opens the log file at path (DefaultPath if empty) and installs the logger.
// level is a zerolog level name such as "info" or "debug".
func Init(path, level string) error {
	Close()
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}
	logFile = f

	return InitWriter(f, level)
}

// InitWriter installs a logger writing to w. Every logger gets a fresh run id
// so lines from separate invocations can be told apart in a shared file.
func InitWriter(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.MessageFieldName = "msg"

	Logger = zerolog.New(w).
		Level(lvl).
		With().Str("run", uuid.New().String()).Logger().
		Hook(timestampHook{})

	return nil
}

// ParseLevel maps a level name to a zerolog level; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

// SetDebug lowers the level of the installed logger to debug.
func SetDebug() {
	Logger = Logger.Level(zerolog.DebugLevel)
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Logger = zerolog.Nop()
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
