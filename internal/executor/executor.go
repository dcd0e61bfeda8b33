// Package executor runs the external tools phpvhost drives: mkcert, the OS
// package manager, systemctl and a2enmod. Calls are synchronous with no
// timeout.
package executor

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/cli/safeexec"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command with the given name and arguments
	Execute(name string, args ...string) ([]byte, error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	path, err := e.LookPath(name)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, args...)
	return cmd.CombinedOutput()
}

// LookPath searches for an executable on PATH, never resolving to the
// current directory
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return safeexec.LookPath(file)
}

// Has reports whether file is on PATH.
func Has(ex CommandExecutor, file string) bool {
	_, err := ex.LookPath(file)
	return err == nil
}

// CommandError is returned by Run when a command exits non-zero.
type CommandError struct {
	Name   string
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	cmdline := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", cmdline, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", cmdline, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Run executes a command and folds its trimmed output into the error on
// failure.
func Run(ex CommandExecutor, name string, args ...string) error {
	out, err := ex.Execute(name, args...)
	if err != nil {
		return &CommandError{
			Name:   name,
			Args:   args,
			Output: strings.TrimSpace(string(out)),
			Err:    err,
		}
	}
	return nil
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// String renders the call as a command line.
func (c CommandCall) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Execute calls the mock function
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// CallsTo returns the recorded calls of the named command.
func (m *MockExecutor) CallsTo(name string) []CommandCall {
	var calls []CommandCall
	for _, c := range m.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}
