// Package platform resolves where Apache, the hosts file and the local
// certificates live on the current machine.
//
// Defaults come from the OS and, on Linux, the distribution family read
// from /etc/os-release. Every path can be overridden with a PHPVHOST_*
// environment variable, optionally set from a dotenv file.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// EnvPrefix is prepended to every Layout environment variable.
const EnvPrefix = "PHPVHOST_"

// Family identifies a group of systems sharing an Apache layout.
type Family string

// Known families.
const (
	FamilyArch    Family = "arch"
	FamilyDebian  Family = "debian"
	FamilyRHEL    Family = "rhel"
	FamilyDarwin  Family = "darwin"
	FamilyUnknown Family = "unknown"
)

// Layout holds the filesystem locations and service names phpvhost touches.
type Layout struct {
	Family Family

	// ServerRoot is Apache's ServerRoot; relative includes resolve against it.
	ServerRoot string `env:"SERVER_ROOT"`
	// ServerConfig is the primary Apache config file that gets the include.
	ServerConfig string `env:"SERVER_CONFIG"`
	// VHostDir holds one generated <domain>.conf per project.
	VHostDir string `env:"VHOST_DIR"`
	// IncludeDirective is the line appended to ServerConfig.
	IncludeDirective string `env:"INCLUDE_DIRECTIVE"`
	// IncludeToken is the substring that marks the include as present.
	IncludeToken string `env:"INCLUDE_TOKEN"`

	HostsFile string `env:"HOSTS_FILE"`
	CertDir   string `env:"CERT_DIR"`

	// ServiceManager is "systemctl" or "brew".
	ServiceManager string `env:"SERVICE_MANAGER"`
	Service        string `env:"SERVICE"`
}

// osReleasePath can be replaced in tests.
var osReleasePath = "/etc/os-release"

// vhostSubdir is the directory created under ServerRoot for generated files.
const vhostSubdir = "phpvhost"

// LoadLayout detects the default layout, loads envFile into the process
// environment when it exists, and applies PHPVHOST_* overrides.
func LoadLayout(envFile string) (*Layout, error) {
	if envFile != "" && pathExists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	layout, err := DetectLayout()
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(layout, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse %s environment: %w", EnvPrefix, err)
	}

	layout.normalize()
	return layout, nil
}

// DetectLayout returns platform defaults without environment overrides.
// The include directive and token are left empty until LoadLayout
// normalizes the layout.
func DetectLayout() (*Layout, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	var family Family
	switch runtime.GOOS {
	case "darwin":
		family = FamilyDarwin
	case "linux":
		family = DetectDistro(osReleasePath)
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	layout, err := defaultLayout(family, pathExists)
	if err != nil {
		return nil, err
	}
	layout.CertDir = filepath.Join(home, ".localhost-ssl")
	return layout, nil
}

// DetectDistro maps an os-release file to a Family using ID and ID_LIKE.
func DetectDistro(path string) Family {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return FamilyUnknown
	}

	sec := cfg.Section(ini.DefaultSection)
	ids := strings.Fields(strings.ToLower(sec.Key("ID").String() + " " + sec.Key("ID_LIKE").String()))
	for _, id := range ids {
		switch id {
		case "arch", "archlinux", "manjaro", "endeavouros":
			return FamilyArch
		case "debian", "ubuntu":
			return FamilyDebian
		case "rhel", "fedora", "centos", "rocky", "almalinux":
			return FamilyRHEL
		}
	}
	return FamilyUnknown
}

// defaultLayout returns the Apache layout for a family. An unknown Linux
// family is resolved by probing for the config file of each known one.
func defaultLayout(family Family, exists func(string) bool) (*Layout, error) {
	layout := &Layout{
		Family:         family,
		HostsFile:      "/etc/hosts",
		ServiceManager: "systemctl",
	}

	switch family {
	case FamilyArch:
		layout.ServerRoot = "/etc/httpd"
		layout.ServerConfig = "/etc/httpd/conf/httpd.conf"
		layout.VHostDir = filepath.Join("/etc/httpd/conf", vhostSubdir)
		layout.Service = "httpd"
	case FamilyDebian:
		layout.ServerRoot = "/etc/apache2"
		layout.ServerConfig = "/etc/apache2/apache2.conf"
		layout.VHostDir = filepath.Join("/etc/apache2", vhostSubdir)
		layout.Service = "apache2"
	case FamilyRHEL:
		layout.ServerRoot = "/etc/httpd"
		layout.ServerConfig = "/etc/httpd/conf/httpd.conf"
		layout.VHostDir = filepath.Join("/etc/httpd", vhostSubdir)
		layout.Service = "httpd"
	case FamilyDarwin:
		prefix := "/usr/local"
		if exists("/opt/homebrew") {
			prefix = "/opt/homebrew"
		}
		layout.ServerRoot = filepath.Join(prefix, "etc/httpd")
		layout.ServerConfig = filepath.Join(prefix, "etc/httpd/httpd.conf")
		layout.VHostDir = filepath.Join(prefix, "etc/httpd", vhostSubdir)
		layout.ServiceManager = "brew"
		layout.Service = "httpd"
	default:
		switch {
		case exists("/etc/apache2/apache2.conf"):
			return defaultLayout(FamilyDebian, exists)
		case exists("/etc/httpd/conf/extra"):
			return defaultLayout(FamilyArch, exists)
		case exists("/etc/httpd/conf/httpd.conf"):
			return defaultLayout(FamilyRHEL, exists)
		}
		return nil, fmt.Errorf("apache configuration not found (checked /etc/apache2, /etc/httpd)")
	}

	return layout, nil
}

// normalize derives the include directive and its detection token from
// VHostDir when they were not set explicitly. Directories under ServerRoot
// are referenced relatively, everything else absolutely.
func (l *Layout) normalize() {
	dir := l.VHostDir
	if l.ServerRoot != "" {
		if rel, err := filepath.Rel(l.ServerRoot, l.VHostDir); err == nil && !strings.HasPrefix(rel, "..") {
			dir = rel
		}
	}

	if l.IncludeToken == "" {
		l.IncludeToken = dir + "/"
	}
	if l.IncludeDirective == "" {
		l.IncludeDirective = "IncludeOptional " + dir + "/*.conf"
	}
}

// pathExists checks if a path exists on the filesystem.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
