// Package hosts maintains the loopback mapping lines phpvhost adds to the
// system hosts file.
//
// A domain counts as registered when any line of the file contains it as a
// substring. This is coarse: registering "app.test" while "myapp.test" is
// present is a no-op. Project domains are expected to be unique enough for
// this not to matter.
//
// Both Add and Remove rewrite the whole file without locking. Edits made
// by another process between the read and the write are lost.
package hosts

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ksyq12/phpvhost/internal/logger"
)

// LoopbackIP is the address every project domain resolves to.
const LoopbackIP = "127.0.0.1"

// Line returns the hosts entry written for a domain.
func Line(domain string) string {
	return LoopbackIP + "    " + domain
}

// Registry edits one hosts file.
type Registry struct {
	path string
}

// New returns a Registry for the hosts file at path.
func New(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the hosts file path.
func (r *Registry) Path() string {
	return r.path
}

// Count returns the number of lines containing domain.
func (r *Registry) Count(domain string) (int, error) {
	if domain == "" {
		return 0, fmt.Errorf("domain cannot be empty")
	}

	content, _, err := r.read()
	if err != nil {
		return 0, err
	}

	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, domain) {
			n++
		}
	}
	return n, nil
}

// Contains reports whether any line mentions domain.
func (r *Registry) Contains(domain string) (bool, error) {
	n, err := r.Count(domain)
	return n > 0, err
}

// Add appends a mapping line for domain unless one is already present.
// It reports whether the file was changed.
func (r *Registry) Add(domain string) (bool, error) {
	if domain == "" {
		return false, fmt.Errorf("domain cannot be empty")
	}

	content, mode, err := r.read()
	if err != nil {
		return false, err
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, domain) {
			logger.Debug("%s already present in %s", domain, r.path)
			return false, nil
		}
	}

	// A file without a final newline keeps that shape: the entry goes on a
	// new line and is left unterminated, so Remove can restore the original.
	var b strings.Builder
	b.WriteString(content)
	switch {
	case content == "" || strings.HasSuffix(content, "\n"):
		b.WriteString(Line(domain) + "\n")
	default:
		b.WriteString("\n" + Line(domain))
	}

	if err := r.write(b.String(), mode); err != nil {
		return false, err
	}
	logger.Debug("added %s to %s", domain, r.path)
	return true, nil
}

// Remove drops every line containing domain. It returns the number of
// lines removed; zero leaves the file untouched. When the removed entry was
// an unterminated last line, the newline Add put before it goes too. A file
// left empty is deleted.
func (r *Registry) Remove(domain string) (int, error) {
	if domain == "" {
		return 0, fmt.Errorf("domain cannot be empty")
	}

	content, mode, err := r.read()
	if err != nil {
		return 0, err
	}

	var b strings.Builder
	removed := 0
	unterminated := false
	for _, line := range strings.SplitAfter(content, "\n") {
		if strings.Contains(line, domain) {
			removed++
			unterminated = !strings.HasSuffix(line, "\n")
			continue
		}
		b.WriteString(line)
	}

	if removed == 0 {
		return 0, nil
	}

	rest := b.String()
	if unterminated {
		rest = strings.TrimSuffix(rest, "\n")
	}

	if rest == "" {
		if err := os.Remove(r.path); err == nil {
			logger.Debug("removed %s, no entries left", r.path)
			return removed, nil
		}
	}
	if err := r.write(rest, mode); err != nil {
		return 0, err
	}
	logger.Debug("removed %d line(s) for %s from %s", removed, domain, r.path)
	return removed, nil
}

// read returns the file content and mode. A missing file reads as empty.
func (r *Registry) read() (string, fs.FileMode, error) {
	info, err := os.Stat(r.path)
	if os.IsNotExist(err) {
		return "", 0644, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat %s: %w", r.path, err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return string(data), info.Mode().Perm(), nil
}

// write truncates and rewrites the file in place; it must keep working
// when the hosts file is a bind mount.
func (r *Registry) write(content string, mode fs.FileMode) error {
	if err := os.WriteFile(r.path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	return nil
}
