package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	// Disable color for tests
	color.NoColor = true
}

// captureStdout captures stdout during function execution
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Also set color output to the same writer
	color.Output = w

	f()

	w.Close()
	os.Stdout = old
	color.Output = os.Stdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// captureStderr captures color.Error during function execution
func captureStderr(f func()) string {
	var buf bytes.Buffer
	old := color.Error
	color.Error = &buf
	defer func() { color.Error = old }()

	f()
	return buf.String()
}

func TestJSON(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		type project struct {
			Domain string `json:"domain"`
			SSL    bool   `json:"ssl"`
		}

		out := captureStdout(func() {
			_ = JSON(project{Domain: "shop.test", SSL: true})
		})

		var result project
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("JSON output is invalid: %v", err)
		}
		if result.Domain != "shop.test" || !result.SSL {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		out := captureStdout(func() {
			_ = JSON([]string{})
		})
		if strings.TrimSpace(out) != "[]" {
			t.Errorf("expected [], got %s", out)
		}
	})
}

func TestTable(t *testing.T) {
	t.Run("basic table", func(t *testing.T) {
		out := captureStdout(func() {
			Table([]string{"DOMAIN", "STATUS"}, [][]string{
				{"shop.test", "Active"},
				{"blog.test", "Missing"},
			})
		})

		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
		}
		if lines[0] != "DOMAIN     STATUS" {
			t.Errorf("header = %q", lines[0])
		}
		if lines[1] != "---------  -------" {
			t.Errorf("separator = %q", lines[1])
		}
		if lines[2] != "shop.test  Active" {
			t.Errorf("row = %q", lines[2])
		}
	})

	t.Run("empty headers", func(t *testing.T) {
		out := captureStdout(func() {
			Table([]string{}, [][]string{{"data"}})
		})
		if out != "" {
			t.Errorf("expected no output for empty headers, got %s", out)
		}
	})

	t.Run("uneven columns", func(t *testing.T) {
		out := captureStdout(func() {
			Table([]string{"A", "B", "C"}, [][]string{
				{"a", "b"},
				{"x", "y", "z", "w"},
			})
		})
		if strings.Contains(out, "w") {
			t.Error("extra columns should be ignored")
		}
	})
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Active", 6},
		{"\x1b[33mMissing\x1b[0m", 7},
		{"→ ok", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := visibleWidth(tt.in); got != tt.want {
			t.Errorf("visibleWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTableColoredCells(t *testing.T) {
	out := captureStdout(func() {
		Table([]string{"STATUS", "X"}, [][]string{
			{"\x1b[33mMissing\x1b[0m", "1"},
			{"Active", "2"},
		})
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[3] != "Active   2" {
		t.Errorf("padding should ignore color codes, got %q", lines[3])
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name   string
		fn     func()
		want   string
		symbol string
	}{
		{"success", func() { Success("Project %s registered", "shop.test") }, "Project shop.test registered", "✓"},
		{"warn", func() { Warn("%d warnings", 2) }, "2 warnings", "!"},
		{"info", func() { Info("Removing %s...", "shop.test") }, "Removing shop.test...", "→"},
		{"print", func() { Print("Root: %s", "/srv/shop") }, "Root: /srv/shop", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(tt.fn)
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in %q", tt.want, out)
			}
			if tt.symbol != "" && !strings.Contains(out, tt.symbol) {
				t.Errorf("expected symbol %q in %q", tt.symbol, out)
			}
		})
	}
}

func TestError(t *testing.T) {
	var stdout string
	stderr := captureStderr(func() {
		stdout = captureStdout(func() {
			Error("registration failed: %s", "shop.test")
		})
	})

	if stdout != "" {
		t.Errorf("errors should not go to stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "✗ registration failed: shop.test") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestPrompt(t *testing.T) {
	out := captureStdout(func() {
		Prompt("Remove %s? [y/N]: ", "shop.test")
	})
	if out != "Remove shop.test? [y/N]: " {
		t.Errorf("unexpected prompt %q", out)
	}
}

func TestColorize(t *testing.T) {
	// color.NoColor is set, so text passes through
	if got := Colorize(ColorWarn, "Missing"); got != "Missing" {
		t.Errorf("Colorize() = %q", got)
	}
	if got := Colorize("unknown", "x"); got != "x" {
		t.Errorf("Colorize() = %q", got)
	}
}
