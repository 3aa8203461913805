// Package logging builds the structured logger shared by the CLI and its
// collaborators. Components attach themselves with slog.String("component", ...).
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Log formats accepted by NewLogger.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewLogger returns a logger writing to w at level in format.
// Unknown formats fall back to JSON.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), FormatText) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Timed measures the duration of one operation for duration.ms attributes.
type Timed struct {
	start time.Time
}

func StartTimed() Timed {
	return Timed{start: time.Now()}
}

func (t Timed) ElapsedMs() int64 {
	return time.Since(t.start).Milliseconds()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		// Fallback: treat unknown as info
		return slog.LevelInfo
	}
}
