// Package reconcile converges the system onto the registered or removed
// state of one project.
//
// Register and Remove run a fixed, ordered list of idempotent steps and stop
// at the first fatal failure. Nothing is rolled back: every step checks the
// current state before acting, so re-running a failed operation resumes
// where it stopped. A failed service restart is reported on the Result and
// never fails the operation.
package reconcile

import (
	"fmt"
	"os"

	"github.com/ksyq12/phpvhost/internal/errors"
	"github.com/ksyq12/phpvhost/internal/logger"
	"github.com/ksyq12/phpvhost/internal/ssl"
)

// Step names, in pipeline order
const (
	StepCheckPath   = "check path"
	StepInclude     = "include"
	StepBootstrap   = "bootstrap"
	StepSSLModule   = "ssl module"
	StepCertificate = "certificate"
	StepVHost       = "vhost"
	StepHosts       = "hosts"
	StepRestart     = "restart"
)

// CertProvider issues and deletes certificate pairs
type CertProvider interface {
	Bootstrap() error
	Obtain(domain string) (*ssl.Cert, error)
	Delete(domain string) (bool, error)
}

// VHostStore owns the generated vhost files and the include directive
type VHostStore interface {
	EnsureInclude() (bool, error)
	SSLModuleEnabled() (bool, error)
	Write(domain, root, certPath, keyPath string) (string, bool, error)
	Delete(domain string) (bool, error)
}

// HostsRegistry maps domains to the loopback address
type HostsRegistry interface {
	Add(domain string) (bool, error)
	Remove(domain string) (int, error)
}

// ServiceController restarts the web server
type ServiceController interface {
	Restart() error
	CanEnableSSLModule() bool
	EnableSSLModule() error
}

// StepResult records whether a step changed anything
type StepResult struct {
	Name    string `json:"name"`
	Changed bool   `json:"changed"`
}

// Result describes a completed Register or Remove
type Result struct {
	Domain       string       `json:"domain"`
	DocumentRoot string       `json:"document_root,omitempty"`
	ConfigFile   string       `json:"config_file,omitempty"`
	SSLCert      string       `json:"ssl_cert,omitempty"`
	SSLKey       string       `json:"ssl_key,omitempty"`
	Steps        []StepResult `json:"steps"`
	Warnings     []string     `json:"warnings,omitempty"`

	// RestartErr is the ServiceRestartFailed error, if the restart failed
	RestartErr error `json:"-"`
}

// Restarted reports whether the final restart succeeded
func (r *Result) Restarted() bool {
	return r.RestartErr == nil
}

func (r *Result) record(name string, changed bool) {
	r.Steps = append(r.Steps, StepResult{Name: name, Changed: changed})
	logger.DebugFields("step done", logger.Fields{
		"domain":  r.Domain,
		"step":    name,
		"changed": changed,
	})
}

// warn records a non-fatal problem. Warnings are shown to the user by the
// caller; the log only gets them with --verbose.
func (r *Result) warn(step string, err error) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %v", step, err))
	logger.DebugFields("warning: "+err.Error(), logger.Fields{
		"domain": r.Domain,
		"step":   step,
	})
}

// Reconciler runs the register and remove pipelines
type Reconciler struct {
	certs   CertProvider
	store   VHostStore
	hosts   HostsRegistry
	service ServiceController
}

// New creates a Reconciler over its collaborators
func New(certs CertProvider, store VHostStore, hosts HostsRegistry, service ServiceController) *Reconciler {
	return &Reconciler{
		certs:   certs,
		store:   store,
		hosts:   hosts,
		service: service,
	}
}

// Register makes domain serve root over HTTP and HTTPS. Failures before the
// vhost step leave the vhost directory and hosts file untouched.
func (r *Reconciler) Register(domain, root string) (*Result, error) {
	if domain == "" {
		return nil, errors.ErrInvalidDomain
	}
	res := &Result{Domain: domain, DocumentRoot: root}
	logger.InfoFields("registering", logger.Fields{"domain": domain, "root": root})

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return res, errors.PathNotFound(domain, root)
	}
	res.record(StepCheckPath, false)

	changed, err := r.store.EnsureInclude()
	if err != nil {
		return res, errors.Step(errors.ErrCodeConfigWrite, StepInclude, domain, err)
	}
	res.record(StepInclude, changed)

	if err := r.certs.Bootstrap(); err != nil {
		return res, errors.Step(errors.ErrCodePrerequisite, StepBootstrap, domain, err)
	}
	res.record(StepBootstrap, false)

	res.record(StepSSLModule, r.ensureSSLModule(res))

	cert, err := r.certs.Obtain(domain)
	if err != nil {
		return res, errors.Step(errors.ErrCodeCertificate, StepCertificate, domain, err)
	}
	res.SSLCert, res.SSLKey = cert.CertPath, cert.KeyPath
	res.record(StepCertificate, false)

	path, written, err := r.store.Write(domain, root, cert.CertPath, cert.KeyPath)
	if err != nil {
		return res, errors.Step(errors.ErrCodeConfigWrite, StepVHost, domain, err)
	}
	res.ConfigFile = path
	res.record(StepVHost, written)

	added, err := r.hosts.Add(domain)
	if err != nil {
		return res, errors.Step(errors.ErrCodeHostsUpdate, StepHosts, domain, err)
	}
	res.record(StepHosts, added)

	r.restart(res)
	return res, nil
}

// Remove deletes everything Register created for domain. Removing a domain
// that was never registered succeeds without touching any file.
func (r *Reconciler) Remove(domain string) (*Result, error) {
	if domain == "" {
		return nil, errors.ErrInvalidDomain
	}
	res := &Result{Domain: domain}
	logger.InfoFields("removing", logger.Fields{"domain": domain})

	removed, err := r.store.Delete(domain)
	if err != nil {
		return res, errors.Step(errors.ErrCodeConfigWrite, StepVHost, domain, err)
	}
	res.record(StepVHost, removed)

	n, err := r.hosts.Remove(domain)
	if err != nil {
		return res, errors.Step(errors.ErrCodeHostsUpdate, StepHosts, domain, err)
	}
	res.record(StepHosts, n > 0)

	removed, err = r.certs.Delete(domain)
	if err != nil {
		return res, errors.Step(errors.ErrCodeCertificate, StepCertificate, domain, err)
	}
	res.record(StepCertificate, removed)

	r.restart(res)
	return res, nil
}

// ensureSSLModule enables mod_ssl when the server config does not load it.
// Every failure is a warning.
func (r *Reconciler) ensureSSLModule(res *Result) bool {
	enabled, err := r.store.SSLModuleEnabled()
	if err != nil {
		res.warn(StepSSLModule, err)
		return false
	}
	if enabled {
		return false
	}
	if !r.service.CanEnableSSLModule() {
		res.warn(StepSSLModule, fmt.Errorf("mod_ssl is not loaded; enable it in the server config"))
		return false
	}
	if err := r.service.EnableSSLModule(); err != nil {
		res.warn(StepSSLModule, err)
		return false
	}
	return true
}

func (r *Reconciler) restart(res *Result) {
	if err := r.service.Restart(); err != nil {
		res.RestartErr = errors.Step(errors.ErrCodeServiceRestart, StepRestart, res.Domain, err)
		res.warn(StepRestart, fmt.Errorf("%w; restart the web server manually", err))
		res.record(StepRestart, false)
		return
	}
	res.record(StepRestart, true)
}
