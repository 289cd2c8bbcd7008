package telemetry

import (
	"io"
	"log/slog"
	"strings"

	"github.com/golang-cz/devslog"
)

// NewLogger builds the application logger. format "json" writes one JSON
// object per line; anything else uses the colored development handler.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	options := &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions:  options,
			NewLineAfterLog: false,
		})
	}

	return slog.New(NewTraceHandler(handler))
}

// ParseLevel maps a level name to slog; unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
