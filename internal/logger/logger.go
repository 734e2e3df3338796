package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

// Init configures the default logger with a text handler at the given level.
func Init(level string) {
	InitWithFormat(level, "text")
}

// InitWithFormat configures the default logger with a text or json handler.
func InitWithFormat(level, format string) {
	SetLogger(New(os.Stdout, level, format))
}

// New builds a logger writing to w. Unknown levels fall back to INFO and
// unknown formats to text.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns the default logger instance.
func Logger() *slog.Logger {
	return defaultLogger.Load()
}

// SetLogger replaces the default logger. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	defaultLogger.Store(l)
}
