package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"ERROR", slog.LevelError, false},
		{"TRACE", slog.LevelInfo, true},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.in)
		if got != c.want || (err != nil) != c.wantErr {
			t.Errorf("ParseLevel(%q) = %v, %v", c.in, got, err)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)

	l.Info("hidden")
	l.Warn("shown", "component", "tlb")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "component=tlb") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestSetupWritesFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "vmsim.log")
	if err := Setup("DEBUG", path); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	slog.Info("PAGE FAULT", "page", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "PAGE FAULT") || !strings.Contains(string(data), "page=3") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestSetupBadPath(t *testing.T) {
	if err := Setup("INFO", filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("expected an error for an unwritable path")
	}
}
