package observability

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventLoggerSanitizesCartID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := EventLogger(zap.New(core))

	dirty := "cart-01\x00\x1b[31m" + strings.Repeat("x", 200)
	log(context.Background(), "cart.created", map[string]any{"cart_id": dirty})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	got, ok := entries[0].ContextMap()["cart_id"].(string)
	if !ok {
		t.Fatalf("expected cart_id string field, got %+v", entries[0].ContextMap())
	}
	if strings.ContainsRune(got, '\x00') || strings.ContainsRune(got, '\x1b') {
		t.Errorf("expected control characters stripped, got %q", got)
	}
	if len(got) > 64 {
		t.Errorf("expected cart_id capped at 64 characters, got %d", len(got))
	}
	if !strings.HasPrefix(got, "cart-01") {
		t.Errorf("expected sanitized id to keep its prefix, got %q", got)
	}
}

func TestEventLoggerNilLoggerIsNoop(t *testing.T) {
	log := EventLogger(nil)
	log(context.Background(), "cart.created", map[string]any{"cart_id": "cart-1"})
}
