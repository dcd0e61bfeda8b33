package ssl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ksyq12/phpvhost/internal/executor"
)

// Installer installs mkcert through one package manager.
type Installer struct {
	Name string
	Tool string
	Args []string

	// AsInvokingUser drops back to $SUDO_USER; Homebrew refuses to run as root.
	AsInvokingUser bool
}

// DefaultInstallers are probed in order; the first whose tool is on PATH wins.
var DefaultInstallers = []Installer{
	{Name: "homebrew", Tool: "brew", Args: []string{"install", "mkcert", "nss"}, AsInvokingUser: true},
	{Name: "pacman", Tool: "pacman", Args: []string{"-S", "--noconfirm", "--needed", "mkcert", "nss"}},
	{Name: "apt", Tool: "apt", Args: []string{"install", "-y", "libnss3-tools", "mkcert"}},
	{Name: "dnf", Tool: "dnf", Args: []string{"install", "-y", "nss-tools", "mkcert"}},
}

// ErrNoInstaller is returned when none of the known package managers exist.
var ErrNoInstaller = errors.New("no supported package manager found")

// SelectInstaller returns the first installer whose tool is available.
func SelectInstaller(exec executor.CommandExecutor, installers []Installer) (Installer, error) {
	tried := make([]string, 0, len(installers))
	for _, inst := range installers {
		if executor.Has(exec, inst.Tool) {
			return inst, nil
		}
		tried = append(tried, inst.Tool)
	}
	return Installer{}, fmt.Errorf("%w (tried %s); install mkcert manually", ErrNoInstaller, strings.Join(tried, ", "))
}

// Command returns the command line to run for this installer.
func (i Installer) Command() (string, []string) {
	if i.AsInvokingUser {
		if user := os.Getenv("SUDO_USER"); user != "" && user != "root" {
			return "sudo", append([]string{"-u", user, i.Tool}, i.Args...)
		}
	}
	return i.Tool, i.Args
}

// Install runs the installer.
func (i Installer) Install(exec executor.CommandExecutor) error {
	name, args := i.Command()
	if err := executor.Run(exec, name, args...); err != nil {
		return fmt.Errorf("%s install failed: %w", i.Name, err)
	}
	return nil
}
