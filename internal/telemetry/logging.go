package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel reads the level from LOG_LEVEL.
// Accepted values: DEBUG, INFO, WARN, ERROR. Defaults to the given level.
func LogLevel(fallback slog.Level) slog.Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return fallback
	}
}

// SetupLogger creates the logger and installs it as the slog default.
//
// Output format comes from LOG_FORMAT:
//   - "text" (default): human-readable
//   - "json": one JSON object per line
//
// The CLI logs at WARN unless LOG_LEVEL says otherwise, so user-facing
// output stays clean; the server logs at INFO.
func SetupLogger(w io.Writer, fallback slog.Level) *slog.Logger {
	level := LogLevel(fallback)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
