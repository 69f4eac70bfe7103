package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(&buf, Options{}); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()
	SetLevel(slog.LevelInfo)

	ctx := context.Background()
	Get().Info(ctx, "report processed", String("match", "abc"), Int("players", 4))
	Get().Debug(ctx, "hidden at info")

	out := buf.String()
	if !strings.Contains(out, "report processed") || !strings.Contains(out, "match=abc") {
		t.Errorf("expected info record, got %q", out)
	}
	if strings.Contains(out, "hidden at info") {
		t.Errorf("debug record should be filtered at info level: %q", out)
	}
}

func TestLoggerJSONNamedAndSource(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(&buf, Options{JSON: true, AddSource: true}); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	SetLevel(slog.LevelDebug)
	defer SetLevel(slog.LevelInfo)

	Named("process").With(String("file", "a.json")).Error(context.Background(), "failed", Error(errors.New("boom")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	group, ok := rec["process"].(map[string]any)
	if !ok {
		t.Fatalf("expected named group in record: %v", rec)
	}
	if group["file"] != "a.json" || group["error"] != "boom" {
		t.Errorf("unexpected group attrs: %v", group)
	}
	src, _ := group["source"].(string)
	if !strings.Contains(src, "logger_test.go") {
		t.Errorf("expected caller to point at the test, got %q", src)
	}
}

func TestSetLevelString(t *testing.T) {
	defer SetLevel(slog.LevelInfo)
	for _, lvl := range []string{"debug", "INFO", "warn", "warning", "error", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("SetLevelString(%q): %v", lvl, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
