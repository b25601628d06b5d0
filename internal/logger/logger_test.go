package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]any{
		"spotify_secret", "abc",
		"Access_Token", "xyz",
		"session_id", "0f8e",
		"partition", "hindi",
		"dangling",
	})

	if got[1] != "[REDACTED]" || got[3] != "[REDACTED]" {
		t.Errorf("credentials not redacted: %v", got)
	}
	if s, ok := got[5].(string); !ok || !strings.HasPrefix(s, "hash:") || len(s) != len("hash:")+12 {
		t.Errorf("session_id = %v, want short hash", got[5])
	}
	if got[7] != "hindi" {
		t.Errorf("partition = %v, want unchanged", got[7])
	}
	if len(got) != 9 || got[8] != "dangling" {
		t.Errorf("odd trailing key lost: %v", got)
	}
}

func TestLoggerWritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "test").Info("classified", "label", "quiet sadness", "api_key", "k")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "test" || fields["label"] != "quiet sadness" {
		t.Errorf("fields = %v", fields)
	}
	if fields["api_key"] != "[REDACTED]" {
		t.Errorf("api_key = %v, want redacted", fields["api_key"])
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error = %v", mode, err)
		}
		l.Debug("hello")
	}
	Nop().Error("discarded")
}
