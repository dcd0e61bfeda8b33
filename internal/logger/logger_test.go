package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// capture redirects the logger to a buffer at level for the test
func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	std.now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(LevelWarn)
		std.now = time.Now
	})
	return &buf
}

func TestInit(t *testing.T) {
	defer SetLevel(LevelWarn)

	Init(false)
	if GetLevel() != LevelWarn {
		t.Errorf("Init(false) should set level to LevelWarn, got %v", GetLevel())
	}

	Init(true)
	if GetLevel() != LevelDebug {
		t.Errorf("Init(true) should set level to LevelDebug, got %v", GetLevel())
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if tt.level.String() != tt.expected {
			t.Errorf("Level(%d).String() = %v, want %v", tt.level, tt.level.String(), tt.expected)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      Level
		logFunc    func(string, ...interface{})
		shouldShow bool
	}{
		{"debug at debug level", LevelDebug, Debug, true},
		{"info at debug level", LevelDebug, Info, true},
		{"debug at info level", LevelInfo, Debug, false},
		{"info at warn level", LevelWarn, Info, false},
		{"warn at warn level", LevelWarn, Warn, true},
		{"error at warn level", LevelWarn, Error, true},
		{"warn at error level", LevelError, Warn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.level)
			tt.logFunc("hosts file updated")

			if hasOutput := buf.Len() > 0; hasOutput != tt.shouldShow {
				t.Errorf("got output=%v, want output=%v", hasOutput, tt.shouldShow)
			}
		})
	}
}

func TestLogFormatting(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("wrote %s (%d bytes)", "shop.test.conf", 512)

	want := "[DEBUG] 2026-10-18 09:30:00 wrote shop.test.conf (512 bytes)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogFields(t *testing.T) {
	buf := capture(t, LevelDebug)

	DebugFields("step done", Fields{
		"step":    "hosts",
		"domain":  "shop.test",
		"changed": true,
	})

	want := "[DEBUG] 2026-10-18 09:30:00 step done changed=true domain=shop.test step=hosts\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogFieldsLevels(t *testing.T) {
	buf := capture(t, LevelWarn)

	DebugFields("hidden", nil)
	InfoFields("hidden", nil)
	WarnFields("restart failed", Fields{"step": "restart"})
	ErrorFields("write failed", Fields{"step": "vhost"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be filtered: %s", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("missing warn/error lines: %s", out)
	}
}

func TestSetOutputNil(t *testing.T) {
	SetOutput(nil)
	if std.output == nil {
		t.Error("nil output should fall back to stderr")
	}
}

func TestConcurrentLogging(t *testing.T) {
	buf := capture(t, LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("line %d", n)
		}(i)
	}
	wg.Wait()

	if lines := strings.Count(buf.String(), "\n"); lines != 20 {
		t.Errorf("expected 20 lines, got %d", lines)
	}
}
