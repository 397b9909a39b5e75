package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// New creates a console slog.Logger with the provided level string.
// When filePath is non-empty, log lines are also appended to that file so
// cycle progress survives as a human-readable trail.
func New(level, filePath string) *slog.Logger {
	var w io.Writer = os.Stdout
	if filePath != "" {
		if f, err := openLogFile(filePath); err != nil {
			log.Printf("logging: cannot open %s: %v (console only)", filePath, err)
		} else {
			w = io.MultiWriter(os.Stdout, f)
		}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
