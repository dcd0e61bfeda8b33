// Package service restarts and probes the web server through the OS
// service manager.
package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/ksyq12/phpvhost/internal/executor"
)

// Service managers
const (
	Systemd  = "systemctl"
	Homebrew = "brew"
)

// Controller drives one service through one service manager
type Controller struct {
	exec    executor.CommandExecutor
	manager string
	name    string
}

// New creates a Controller. An empty manager defaults to systemctl.
func New(exec executor.CommandExecutor, manager, name string) *Controller {
	if manager == "" {
		manager = Systemd
	}
	return &Controller{exec: exec, manager: manager, name: name}
}

// Name returns the service name
func (c *Controller) Name() string {
	return c.name
}

// Restart restarts the service
func (c *Controller) Restart() error {
	var err error
	switch c.manager {
	case Systemd:
		err = executor.Run(c.exec, "systemctl", "restart", c.name)
	case Homebrew:
		name, args := asInvokingUser("brew", "services", "restart", c.name)
		err = executor.Run(c.exec, name, args...)
	default:
		return fmt.Errorf("unsupported service manager %q", c.manager)
	}
	if err != nil {
		return fmt.Errorf("failed to restart %s: %w", c.name, err)
	}
	return nil
}

// IsActive reports whether the service is running
func (c *Controller) IsActive() bool {
	switch c.manager {
	case Systemd:
		out, err := c.exec.Execute("systemctl", "is-active", c.name)
		return err == nil && strings.TrimSpace(string(out)) == "active"
	case Homebrew:
		name, args := asInvokingUser("brew", "services", "info", c.name, "--json")
		out, err := c.exec.Execute(name, args...)
		return err == nil && strings.Contains(string(out), `"running": true`)
	}
	return false
}

// CanEnableSSLModule reports whether a2enmod is available
func (c *Controller) CanEnableSSLModule() bool {
	return executor.Has(c.exec, "a2enmod")
}

// EnableSSLModule enables mod_ssl with a2enmod
func (c *Controller) EnableSSLModule() error {
	if !c.CanEnableSSLModule() {
		return fmt.Errorf("a2enmod not found; enable mod_ssl in the server config manually")
	}
	if err := executor.Run(c.exec, "a2enmod", "ssl"); err != nil {
		return fmt.Errorf("failed to enable mod_ssl: %w", err)
	}
	return nil
}

// asInvokingUser prefixes a command with sudo -u $SUDO_USER when running
// under sudo; Homebrew refuses to run as root.
func asInvokingUser(name string, args ...string) (string, []string) {
	if user := os.Getenv("SUDO_USER"); user != "" && user != "root" {
		return "sudo", append([]string{"-u", user, name}, args...)
	}
	return name, args
}
