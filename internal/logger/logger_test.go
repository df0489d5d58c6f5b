package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"debug":   zapcore.DebugLevel,
		"verbose": zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(InfoLevel, &buf)

	log.Debugw("lab_refreshed", "lab_id", "lab-a")
	log.Infow("labs_loaded", "count", 3)
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "lab_refreshed") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "labs_loaded") || !strings.Contains(out, `"count": 3`) {
		t.Fatalf("expected structured info line, got %q", out)
	}
}

func TestGet_Singleton(t *testing.T) {
	a := Get(ErrorLevel)
	b := Get(DebugLevel)
	if a != b {
		t.Fatalf("Get should return the same instance")
	}
}

func TestNew_LevelIsCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	log := New(" ERROR ", &buf)

	log.Infow("lab_refreshed", "lab_id", "lab-a")
	log.Errorw("refresh_failed", "lab_id", "lab-b")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "lab_refreshed") {
		t.Fatalf("info line should be filtered at error level: %q", out)
	}
	if !strings.Contains(out, "refresh_failed") || !strings.Contains(out, "ERROR") {
		t.Fatalf("expected capitalised error line, got %q", out)
	}
}
