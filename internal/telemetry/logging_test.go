package telemetry

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		env      string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.env)
		if got := LogLevel(slog.LevelWarn); got != tt.expected {
			t.Errorf("LogLevel with %q = %v, want %v", tt.env, got, tt.expected)
		}
	}
}

func TestSetupLogger_Formats(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	t.Setenv("LOG_LEVEL", "INFO")

	t.Setenv("LOG_FORMAT", "json")
	var jsonBuf bytes.Buffer
	SetupLogger(&jsonBuf, slog.LevelInfo).Info("hello", "k", "v")
	if !strings.HasPrefix(jsonBuf.String(), "{") || !strings.Contains(jsonBuf.String(), `"k":"v"`) {
		t.Errorf("Expected JSON output, got %q", jsonBuf.String())
	}

	t.Setenv("LOG_FORMAT", "")
	var textBuf bytes.Buffer
	SetupLogger(&textBuf, slog.LevelInfo).Info("hello", "k", "v")
	if !strings.Contains(textBuf.String(), "k=v") {
		t.Errorf("Expected text output, got %q", textBuf.String())
	}
}
