package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewWritesPlainTextWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, true)

	logger.Info("Hidden")
	logger.Warn("Table group rejected", "code", "too_few_tables")

	out := buf.String()
	if strings.Contains(out, "Hidden") {
		t.Errorf("Info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "code=too_few_tables") {
		t.Errorf("Missing attribute in %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Unexpected ANSI escape in %q", out)
	}
}
