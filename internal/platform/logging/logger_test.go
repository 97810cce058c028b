package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%v, want %v", raw, got, want)
		}
	}
}

func TestLogger_KeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "roster")

	logger.WarnContext(context.Background(), "roster row rejected", "row", 7, "error", errors.New("bad minutes"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "roster" {
		t.Fatalf("missing bound field: %v", fields)
	}
	if fields["row"] != int64(7) {
		t.Fatalf("unexpected row field: %#v", fields["row"])
	}
	if fields["error"] != "bad minutes" {
		t.Fatalf("unexpected error field: %#v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept: %v", fields)
	}
}

func TestNewConsole_WritesToGivenWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsole(LevelInfo, &buf)
	logger.Debug("hidden")
	logger.Info("imported", "variant", "laterales")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "imported") || !strings.Contains(out, "laterales") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.Zap() == nil {
		t.Fatalf("expected nop zap logger")
	}
}
