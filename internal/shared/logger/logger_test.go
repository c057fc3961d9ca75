package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"stellar-forge/internal/shared/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelDebug},
		{"loud", slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(config.LoggingConfig{Level: "info", JSONFormat: true}, &buf)

	l.Debug("hidden")
	l.Info("generated", "class", "SINGLE_STAR")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["class"] != "SINGLE_STAR" || rec["msg"] != "generated" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(config.LoggingConfig{Level: "warn"}, &buf)
	l.Info("skipped")
	l.Warn("kept", "seed", 42)

	out := buf.String()
	if strings.Contains(out, "skipped") || !strings.Contains(out, "seed=42") {
		t.Errorf("unexpected output %q", out)
	}
}
