package services

import (
	"strings"
	"testing"
)

func TestMatchKey_TelemetryVariants(t *testing.T) {
	patterns := TelemetryPatterns()
	for _, key := range []string{
		"deviceId", "device_id", "device-id",
		"machineId", "machine_id",
		"telemetry.devDeviceId", "sessionId", "installation_id",
	} {
		if _, ok := MatchKey(patterns, key); !ok {
			t.Errorf("MatchKey(%q) = false, want true", key)
		}
	}
}

func TestMatchKey_NonIdentityKeys(t *testing.T) {
	patterns := TelemetryPatterns()
	for _, key := range []string{"fontSize", "theme", "windowWidth"} {
		if tag, ok := MatchKey(patterns, key); ok {
			t.Errorf("MatchKey(%q) = %q, want no match", key, tag)
		}
	}
}

func TestIsEmail(t *testing.T) {
	if !IsEmail("alice@example.com") {
		t.Error("IsEmail(alice@example.com) = false, want true")
	}
	if IsEmail("not an email") {
		t.Error("IsEmail(not an email) = true, want false")
	}
}

func TestRedactWholeWord_ShortUsername(t *testing.T) {
	content := `{"username": "eve", "note": "steven likes evening walks"}`
	redacted := RedactWholeWord(content, "eve")

	if strings.Contains(redacted, `"eve"`) {
		t.Error("standalone username survived redaction")
	}
	if !strings.Contains(redacted, "steven") {
		t.Error("word-boundary redaction damaged 'steven'")
	}
	if !strings.Contains(redacted, "evening") {
		t.Error("word-boundary redaction damaged 'evening'")
	}
}

func TestRedactLiteral_Idempotent(t *testing.T) {
	content := "user=alice@example.com other=bob@example.com"
	once := RedactLiteral(content, "alice@example.com")
	twice := RedactLiteral(once, "alice@example.com")

	if once != twice {
		t.Errorf("second redaction changed content: %q vs %q", once, twice)
	}
	if !strings.Contains(once, RedactionToken) {
		t.Error("redaction token missing from output")
	}
	if !strings.Contains(once, "bob@example.com") {
		t.Error("untargeted email was redacted")
	}
}

func TestLocalPart(t *testing.T) {
	if got := LocalPart("alice@example.com"); got != "alice" {
		t.Errorf("LocalPart = %q, want alice", got)
	}
	if got := LocalPart("no-at-sign"); got != "" {
		t.Errorf("LocalPart of non-email = %q, want empty", got)
	}
}
