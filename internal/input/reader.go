// Package input reads answers to interactive prompts.
package input

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Reader is an interface for reading user input
type Reader interface {
	ReadString(delim byte) (string, error)
}

// StdinReader wraps bufio.Reader for os.Stdin
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader
func NewStdinReader() *StdinReader {
	return NewReader(os.Stdin)
}

// NewReader creates a StdinReader over any stream
func NewReader(r io.Reader) *StdinReader {
	return &StdinReader{reader: bufio.NewReader(r)}
}

// ReadString reads until delimiter
func (r *StdinReader) ReadString(delim byte) (string, error) {
	return r.reader.ReadString(delim)
}

// Line reads one answer and trims surrounding whitespace. A final line
// without a newline is returned without error; only an empty read at EOF
// fails.
func Line(r Reader) (string, error) {
	answer, err := r.ReadString('\n')
	if err != nil && answer == "" {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// IsYes reports whether answer accepts a y/N question
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
