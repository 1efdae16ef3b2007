package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriter_JSONOutsideLocal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "production", "INFO")
	if err != nil {
		t.Fatalf("NewWithWriter returned error: %v", err)
	}
	logger.Debug().Msg("hidden")
	logger.Info().Str("provider", "groq").Msg("ready")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "translator" || line["provider"] != "groq" || line["message"] != "ready" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := NewWithWriter(&bytes.Buffer{}, "local", "loud"); err == nil {
		t.Fatal("expected invalid level to fail")
	}
}
