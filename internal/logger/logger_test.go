package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}
	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			log := New(level)
			if log == nil {
				t.Fatal("expected non-nil logger")
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "error")

	log.Info("should be dropped")
	log.Error("should be kept")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("info record emitted at error level")
	}
	if !strings.Contains(out, "should be kept") {
		t.Error("error record missing")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Info("hello", "key", "value")

	if !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("expected JSON attrs, got %q", buf.String())
	}
}
