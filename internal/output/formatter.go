// Package output prints user-facing messages, tables and JSON on stdout.
// Errors go to stderr so that --json output stays parseable.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	promptColor  = color.New(color.FgCyan, color.Bold)
)

// ansiPattern matches SGR escape sequences emitted by Colorize
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// JSON outputs data as JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// visibleWidth returns the printed width of s, ignoring color codes
func visibleWidth(s string) int {
	return len([]rune(ansiPattern.ReplaceAllString(s, "")))
}

// pad right-pads s to width visible columns
func pad(s string, width int) string {
	if n := width - visibleWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// Table outputs data as a formatted table. Cells may be colorized.
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && visibleWidth(cell) > widths[i] {
				widths[i] = visibleWidth(cell)
			}
		}
	}

	line := func(cells []string) string {
		out := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			out[i] = pad(cell, widths[i])
		}
		return strings.TrimRight(strings.Join(out, "  "), " ")
	}

	fmt.Println(line(headers))

	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	fmt.Println(strings.Join(sep, "  "))

	for _, row := range rows {
		fmt.Println(line(row))
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Printf("✓ "+format+"\n", args...)
}

// Error prints an error message to stderr
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(color.Error, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Printf("! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Printf("→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Prompt prints a question without a trailing newline
func Prompt(format string, args ...interface{}) {
	_, _ = promptColor.Printf(format, args...)
}

// Color names accepted by Colorize
const (
	ColorSuccess = "success"
	ColorWarn    = "warn"
	ColorError   = "error"
)

// Colorize wraps s in the named color. Unknown names return s unchanged.
func Colorize(name, s string) string {
	switch name {
	case ColorSuccess:
		return successColor.Sprint(s)
	case ColorWarn:
		return warnColor.Sprint(s)
	case ColorError:
		return errorColor.Sprint(s)
	}
	return s
}
