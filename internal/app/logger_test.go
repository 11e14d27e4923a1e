package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/jpgloss/internal/config"
	"github.com/heartmarshall/jpgloss/pkg/ctxutil"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})

	if logger == nil {
		t.Fatal("logger should not be nil")
	}
	if slog.Default().Handler() != logger.Handler() {
		t.Error("NewLogger should set the returned logger as slog default")
	}
}

func TestNewLoggerTo_Levels(t *testing.T) {
	tests := []struct {
		level    string
		wantSlog slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer

			logger := NewLoggerTo(&buf, config.LogConfig{
				Level:  tt.level,
				Format: "text",
			})

			// Log at the expected level: should appear.
			logger.Log(context.TODO(), tt.wantSlog, "should appear")
			if buf.Len() == 0 {
				t.Errorf("expected log output at level %v", tt.wantSlog)
			}

			// Log one level below: should be suppressed.
			buf.Reset()
			belowLevel := tt.wantSlog - 1
			logger.Log(context.TODO(), belowLevel, "should be suppressed")
			if buf.Len() != 0 {
				t.Errorf("level %v should suppress level %v, but got output: %s",
					tt.wantSlog, belowLevel, buf.String())
			}
		})
	}
}

func TestNewLoggerTo_TextAddSource_JSONNoSource(t *testing.T) {
	var textBuf, jsonBuf bytes.Buffer

	NewLoggerTo(&textBuf, config.LogConfig{Level: "info", Format: "text"}).Info("hello")
	NewLoggerTo(&jsonBuf, config.LogConfig{Level: "info", Format: "json"}).Info("hello")

	if !strings.Contains(textBuf.String(), "source=") {
		t.Error("text format should include source")
	}

	var m map[string]any
	if err := json.Unmarshal(jsonBuf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := m["source"]; ok {
		t.Error("json format should not include source")
	}
}

func TestNewLoggerTo_RunAttrsFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, config.LogConfig{Level: "info", Format: "json"}).With("service", "gloss")

	id := uuid.New()
	ctx := ctxutil.WithSource(ctxutil.WithRunID(context.Background(), id), "input.txt")
	logger.WarnContext(ctx, "lookup failed")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["run_id"] != id.String() {
		t.Errorf("run_id = %v, want %s", m["run_id"], id)
	}
	if m["input"] != "input.txt" {
		t.Errorf("input = %v, want input.txt", m["input"])
	}
	if m["service"] != "gloss" {
		t.Errorf("service = %v, want gloss", m["service"])
	}
}

func TestNewLoggerTo_NoRunAttrsWithoutContext(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerTo(&buf, config.LogConfig{Level: "info", Format: "json"}).Info("hello")

	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("unexpected run_id in %s", buf.String())
	}
}
