// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvKeyLevel selects the minimum level: debug, info, warn or error.
const EnvKeyLevel = "LOG_LEVEL"

// ParseLevel は文字列をログレベルに変換します。不明な値は info とする。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup installs a JSON stdout logger at LOG_LEVEL as the slog default.
func Setup() *slog.Logger {
	l := New(os.Stdout, ParseLevel(os.Getenv(EnvKeyLevel)))
	slog.SetDefault(l)
	return l
}
