// Package logger provides configurable logging for mdnav.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds the settings for the logger.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output log file. Empty or "-" means stderr.
	LogFilePath string `toml:"log_file"`
}

// Level parses the configured level string, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Output opens the configured log destination. The caller owns the returned
// closer (nil when logging to stderr).
func (c Config) Output() (io.Writer, io.Closer, error) {
	if c.LogFilePath == "" || c.LogFilePath == "-" {
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(c.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", c.LogFilePath, err)
	}
	return f, f, nil
}
