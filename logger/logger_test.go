package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithComponentReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info").WithComponent(ComponentAuth)
	log.Info("signed in")

	out := buf.String()
	if strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=auth") {
		t.Fatalf("expected a single auth component attribute: %s", out)
	}
	if log.Component() != ComponentAuth {
		t.Fatalf("Component() = %q", log.Component())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")
	log.Info("hidden")
	log.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	log := Discard().With(FieldRequestID, "r-1")
	ctx := IntoContext(context.Background(), log)

	fallback := Discard()
	if FromContext(ctx, fallback) != log {
		t.Fatal("FromContext did not return the stored logger")
	}
	if FromContext(context.Background(), fallback) != fallback {
		t.Fatal("FromContext should return the fallback when the context has no logger")
	}
}

func TestWithComponentKeepsRequestAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info").With(FieldRequestID, "req-7").WithComponent(ComponentRecords)
	log.Error("store failed")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-7") || !strings.Contains(out, "component=records") {
		t.Fatalf("expected request id and component: %s", out)
	}
	if strings.Count(out, "component=") != 1 {
		t.Fatalf("component attribute repeated: %s", out)
	}
}
