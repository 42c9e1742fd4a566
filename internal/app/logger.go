package app

import (
	"io"
	"log/slog"
)

// newLogger builds the generator's isolated slog.Logger. The global default
// is never touched, so test harnesses can drive several App instances with
// independent log capture.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(levelStr)}

	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	} else {
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler)
}

// parseLevel maps the CLI's log-level string onto a slog level. Anything
// unrecognized falls back to info, the same default the CLI validation
// applies.
func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
