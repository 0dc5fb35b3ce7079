package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func logLine(t *testing.T, fn func(Logger)) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})
	fn(log)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
	}
	return line
}

func TestRedactSessionIDValues(t *testing.T) {
	sid := "uhs_AbCdEfGhIjKlMnOpQrStUvWxYz012345"
	line := logLine(t, func(log Logger) {
		log.Info("session created", "sid", sid)
	})

	got, _ := line["sid"].(string)
	if got == sid {
		t.Fatal("raw session identifier must never reach the log")
	}
	if !strings.HasPrefix(got, "uhs_") || !strings.Contains(got, "...") {
		t.Errorf("expected partial mask, got %q", got)
	}
}

func TestRedactSensitiveKeys(t *testing.T) {
	for _, key := range []string{"password", "api_token", "client_secret"} {
		line := logLine(t, func(log Logger) {
			log.Info("msg", key, "hunter2")
		})
		if line[key] != "***REDACTED***" {
			t.Errorf("key %q: expected redaction, got %v", key, line[key])
		}
	}
}

func TestPlainAttributesPassThrough(t *testing.T) {
	line := logLine(t, func(log Logger) {
		log.Info("user created", "email", "alice@example.com", "id", "42")
	})
	if line["email"] != "alice@example.com" {
		t.Errorf("plain attribute mangled: %v", line["email"])
	}
}

func TestMaskSessionID(t *testing.T) {
	masked := MaskSessionID("uhs_AbCdEfGhIjKlMnOp")
	if !strings.HasPrefix(masked, "uhs_AbC") || !strings.HasSuffix(masked, "nOp") {
		t.Errorf("unexpected mask %q", masked)
	}

	if MaskSessionID("not-a-session") != "***REDACTED***" {
		t.Error("unprefixed input must be fully redacted")
	}

	if MaskSessionID("uhs_abc") != "uhs_***" {
		t.Error("short identifiers must not leak their body")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info line must be filtered at warn level: %q", buf.String())
	}

	log.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn line must pass at warn level")
	}
}

func TestSetLevelHotReload(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Debug("dropped")
	if buf.Len() != 0 {
		t.Fatalf("debug line must be filtered at info level: %q", buf.String())
	}

	SetLevel("debug")
	defer SetLevel("info")

	log.Debug("kept")
	if buf.Len() == 0 {
		t.Error("debug line must pass after SetLevel(debug)")
	}
	if Level() != "debug" {
		t.Errorf("Level() = %q, want debug", Level())
	}
}
