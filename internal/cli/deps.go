package cli

import (
	"os"

	"github.com/ksyq12/phpvhost/internal/apache"
	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/errors"
	"github.com/ksyq12/phpvhost/internal/executor"
	"github.com/ksyq12/phpvhost/internal/hosts"
	"github.com/ksyq12/phpvhost/internal/input"
	"github.com/ksyq12/phpvhost/internal/platform"
	"github.com/ksyq12/phpvhost/internal/reconcile"
	"github.com/ksyq12/phpvhost/internal/service"
	"github.com/ksyq12/phpvhost/internal/ssl"
	"golang.org/x/term"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader ConfigLoader
	LayoutLoader LayoutLoader
	Executor     executor.CommandExecutor
	RootChecker  RootChecker
	StdinReader  input.Reader
	Terminal     TerminalChecker
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
}

// LayoutLoader resolves the system layout
type LayoutLoader interface {
	Load() (*platform.Layout, error)
}

// RootChecker checks root privileges
type RootChecker interface {
	RequireRoot() error
}

// TerminalChecker reports whether stdin is an interactive terminal
type TerminalChecker interface {
	IsInteractive() bool
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader: &realConfigLoader{},
	LayoutLoader: &realLayoutLoader{},
	Executor:     executor.NewSystemExecutor(),
	RootChecker:  &realRootChecker{},
	StdinReader:  input.NewStdinReader(),
	Terminal:     &realTerminal{},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// Tools are the collaborators built from one layout
type Tools struct {
	Layout  *platform.Layout
	Store   *apache.Store
	Hosts   *hosts.Registry
	Certs   *ssl.Provider
	Service *service.Controller
}

// Reconciler returns a reconciler over the tools
func (t *Tools) Reconciler() *reconcile.Reconciler {
	return reconcile.New(t.Certs, t.Store, t.Hosts, t.Service)
}

// loadTools resolves the layout and builds the collaborators on it
func loadTools() (*Tools, error) {
	layout, err := deps.LayoutLoader.Load()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to detect system layout", err)
	}
	return newTools(layout, deps.Executor), nil
}

func newTools(layout *platform.Layout, exec executor.CommandExecutor) *Tools {
	return &Tools{
		Layout:  layout,
		Store:   apache.New(layout.VHostDir, layout.ServerConfig, layout.IncludeDirective, layout.IncludeToken).WithServerRoot(layout.ServerRoot),
		Hosts:   hosts.New(layout.HostsFile),
		Certs:   ssl.NewProvider(exec, layout.CertDir),
		Service: service.New(exec, layout.ServiceManager, layout.Service),
	}
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Load() (*config.Config, error) {
	return config.Load()
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	return cfg.Save()
}

type realLayoutLoader struct{}

func (r *realLayoutLoader) Load() (*platform.Layout, error) {
	envFile, err := config.EnvPath()
	if err != nil {
		return nil, err
	}
	return platform.LoadLayout(envFile)
}

type realRootChecker struct{}

func (r *realRootChecker) RequireRoot() error {
	if os.Geteuid() != 0 {
		return errors.PrivilegeRequired()
	}
	return nil
}

type realTerminal struct{}

func (r *realTerminal) IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
