package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/executor"
	"github.com/ksyq12/phpvhost/internal/platform"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockConfigLoader) Load() (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockLayoutLoader is a test double for LayoutLoader
type MockLayoutLoader struct {
	Layout *platform.Layout
	Err    error
}

func (m *MockLayoutLoader) Load() (*platform.Layout, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Layout, nil
}

// MockRootChecker is a test double for RootChecker
type MockRootChecker struct {
	IsRoot bool
	Calls  int
}

func (m *MockRootChecker) RequireRoot() error {
	m.Calls++
	if !m.IsRoot {
		return errors.New("this tool requires root privileges. Please run with sudo")
	}
	return nil
}

// MockStdinReader is a test double for input.Reader
type MockStdinReader struct {
	Input string
	pos   int
}

func (m *MockStdinReader) ReadString(delim byte) (string, error) {
	if m.pos >= len(m.Input) {
		return "", errors.New("EOF")
	}
	idx := strings.IndexByte(m.Input[m.pos:], delim)
	if idx == -1 {
		result := m.Input[m.pos:]
		m.pos = len(m.Input)
		return result, nil
	}
	result := m.Input[m.pos : m.pos+idx+1]
	m.pos += idx + 1
	return result, nil
}

// MockTerminal is a test double for TerminalChecker
type MockTerminal struct {
	Interactive bool
}

func (m *MockTerminal) IsInteractive() bool {
	return m.Interactive
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader: &MockConfigLoader{Cfg: config.New()},
			LayoutLoader: &MockLayoutLoader{Layout: &platform.Layout{}},
			Executor:     &executor.MockExecutor{},
			RootChecker:  &MockRootChecker{IsRoot: true},
			StdinReader:  &MockStdinReader{Input: "y\n"},
			Terminal:     &MockTerminal{},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithLayout sets the layout returned by the layout loader
func (b *MockDependenciesBuilder) WithLayout(layout *platform.Layout) *MockDependenciesBuilder {
	b.deps.LayoutLoader = &MockLayoutLoader{Layout: layout}
	return b
}

// WithLayoutError sets an error for layout detection
func (b *MockDependenciesBuilder) WithLayoutError(err error) *MockDependenciesBuilder {
	b.deps.LayoutLoader = &MockLayoutLoader{Err: err}
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// WithRootAccess sets whether root access is available
func (b *MockDependenciesBuilder) WithRootAccess(isRoot bool) *MockDependenciesBuilder {
	b.deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(input string) *MockDependenciesBuilder {
	b.deps.StdinReader = &MockStdinReader{Input: input}
	return b
}

// WithTerminal sets whether stdin is interactive
func (b *MockDependenciesBuilder) WithTerminal(interactive bool) *MockDependenciesBuilder {
	b.deps.Terminal = &MockTerminal{Interactive: interactive}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides a sandboxed system layout for CLI tests. Every path
// of the layout lives under Root and external commands go to Exec, whose
// mkcert writes the requested certificate files.
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
		TempDir() string
		Fatalf(format string, args ...interface{})
	}
	OldDeps    *Dependencies
	Root       string
	Layout     *platform.Layout
	Exec       *executor.MockExecutor
	MockConfig *MockConfigLoader

	// RestartErr makes systemctl restart fail
	RestartErr error
}

// NewTestHelper creates a new test helper with mock dependencies
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
	TempDir() string
	Fatalf(format string, args ...interface{})
}) *TestHelper {
	t.Helper()

	root := t.TempDir()
	layout := &platform.Layout{
		Family:           platform.FamilyArch,
		ServerRoot:       filepath.Join(root, "etc", "httpd"),
		ServerConfig:     filepath.Join(root, "etc", "httpd", "conf", "httpd.conf"),
		VHostDir:         filepath.Join(root, "etc", "httpd", "conf", "phpvhost"),
		IncludeDirective: "IncludeOptional conf/phpvhost/*.conf",
		IncludeToken:     "conf/phpvhost/",
		HostsFile:        filepath.Join(root, "etc", "hosts"),
		CertDir:          filepath.Join(root, "home", ".localhost-ssl"),
		ServiceManager:   "systemctl",
		Service:          "httpd",
	}
	caRoot := filepath.Join(root, "ca")

	for _, dir := range []string{filepath.Dir(layout.ServerConfig), caRoot, filepath.Join(root, "srv")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(layout.ServerConfig, []byte("Listen 80\nLoadModule ssl_module modules/mod_ssl.so\n"), 0644); err != nil {
		t.Fatalf("failed to write server config: %v", err)
	}
	if err := os.WriteFile(layout.HostsFile, []byte("127.0.0.1\tlocalhost\n"), 0644); err != nil {
		t.Fatalf("failed to write hosts file: %v", err)
	}

	helper := &TestHelper{
		T:          t,
		OldDeps:    deps,
		Root:       root,
		Layout:     layout,
		MockConfig: &MockConfigLoader{Cfg: &config.Config{BasePath: filepath.Join(root, "srv")}},
	}
	helper.Exec = &executor.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			switch name {
			case "systemctl":
				if len(args) > 0 && args[0] == "is-active" {
					return []byte("active\n"), nil
				}
				return nil, helper.RestartErr
			case "mkcert":
				return fakeMkcert(caRoot, args)
			}
			return nil, nil
		},
	}

	deps = NewMockDeps().
		WithConfigLoader(helper.MockConfig).
		WithLayout(layout).
		WithExecutor(helper.Exec).
		Build()

	// Cleanup function to restore original deps
	t.Cleanup(func() {
		deps = helper.OldDeps
	})

	return helper
}

// fakeMkcert answers -CAROOT and -install and writes the files named by
// -cert-file and -key-file
func fakeMkcert(caRoot string, args []string) ([]byte, error) {
	if len(args) == 0 {
		return nil, nil
	}
	switch args[0] {
	case "-CAROOT":
		return []byte(caRoot + "\n"), nil
	case "-install":
		return nil, os.WriteFile(filepath.Join(caRoot, "rootCA.pem"), []byte("ca"), 0644)
	}
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-cert-file" || args[i] == "-key-file" {
			if err := os.WriteFile(args[i+1], []byte(args[i]), 0600); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// ProjectDir creates <base>/<rel> and returns it
func (h *TestHelper) ProjectDir(rel string) string {
	h.T.Helper()
	dir := filepath.Join(h.MockConfig.Cfg.BasePath, rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		h.T.Fatalf("failed to create %s: %v", dir, err)
	}
	return dir
}

// SetRootAccess sets whether root access is available
func (h *TestHelper) SetRootAccess(isRoot bool) {
	deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
}

// SetStdinInput sets the stdin input
func (h *TestHelper) SetStdinInput(input string) {
	deps.StdinReader = &MockStdinReader{Input: input}
}

// SetTerminal sets whether stdin is interactive
func (h *TestHelper) SetTerminal(interactive bool) {
	deps.Terminal = &MockTerminal{Interactive: interactive}
}

// GetConfig returns the current mock config
func (h *TestHelper) GetConfig() *config.Config {
	return h.MockConfig.Cfg
}

// Tools returns collaborators over the sandboxed layout
func (h *TestHelper) Tools() *Tools {
	return newTools(h.Layout, h.Exec)
}
