package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ksyq12/phpvhost/internal/template"
	"gopkg.in/yaml.v3"
)

// Config represents the persisted user settings
type Config struct {
	BasePath string `yaml:"base_path"`
}

// configDir is the default config directory
const configDir = ".config/phpvhost"
const configFile = "config.yaml"
const envFile = "env"

// New creates a new Config with default values
func New() *Config {
	return &Config{}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// EnvPath returns the optional dotenv file holding PHPVHOST_* overrides
func EnvPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, envFile), nil
}

// Load reads the config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// HasBasePath reports whether a base path has been configured
func (c *Config) HasBasePath() bool {
	return strings.TrimSpace(c.BasePath) != ""
}

// SetBasePath validates and stores a new base path. A leading ~ is
// expanded against the home directory.
func (c *Config) SetBasePath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("base path cannot be empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("base path must be absolute: %s", path)
	}
	if !template.QuotablePath(path) {
		return fmt.Errorf("base path must not contain quotes or line breaks: %q", path)
	}

	c.BasePath = filepath.Clean(path)
	return nil
}

// DocumentRoot joins an entry point relative to the base path
func (c *Config) DocumentRoot(entry string) string {
	return filepath.Join(c.BasePath, entry)
}
