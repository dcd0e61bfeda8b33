package ssl

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-acme/lego/v4/certcrypto"
	"github.com/ksyq12/phpvhost/internal/executor"
	"github.com/ksyq12/phpvhost/internal/logger"
)

// Cert represents a certificate/key pair issued for a domain
type Cert struct {
	Domain   string
	CertPath string
	KeyPath  string
}

const (
	mkcertBinary = "mkcert"
	certSuffix   = ".pem"
	keySuffix    = "-key.pem"
	// stagingSuffix marks files mkcert is still writing
	stagingSuffix = ".partial"
)

// Provider issues certificates from the local mkcert CA into one directory.
type Provider struct {
	exec       executor.CommandExecutor
	certDir    string
	installers []Installer

	bootstrapped bool
}

// NewProvider creates a Provider storing pairs in certDir
func NewProvider(exec executor.CommandExecutor, certDir string) *Provider {
	return &Provider{
		exec:       exec,
		certDir:    certDir,
		installers: DefaultInstallers,
	}
}

// Dir returns the certificate directory
func (p *Provider) Dir() string {
	return p.certDir
}

// GetCertPaths returns the certificate paths for a domain
func (p *Provider) GetCertPaths(domain string) *Cert {
	return &Cert{
		Domain:   domain,
		CertPath: filepath.Join(p.certDir, domain+certSuffix),
		KeyPath:  filepath.Join(p.certDir, domain+keySuffix),
	}
}

// IsInstalled checks if mkcert is installed
func (p *Provider) IsInstalled() bool {
	return executor.Has(p.exec, mkcertBinary)
}

// CARoot returns the directory holding the mkcert root CA
func (p *Provider) CARoot() (string, error) {
	out, err := p.exec.Execute(mkcertBinary, "-CAROOT")
	if err != nil {
		return "", fmt.Errorf("mkcert -CAROOT failed: %s", strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// CAInstalled reports whether the mkcert root CA has been created
func (p *Provider) CAInstalled() bool {
	root, err := p.CARoot()
	if err != nil || root == "" {
		return false
	}
	return fileExists(filepath.Join(root, "rootCA.pem"))
}

// Bootstrap makes sure mkcert and its local CA are installed. It runs the
// checks once per Provider.
func (p *Provider) Bootstrap() error {
	if p.bootstrapped {
		return nil
	}

	if !p.IsInstalled() {
		inst, err := SelectInstaller(p.exec, p.installers)
		if err != nil {
			return err
		}
		logger.Info("mkcert not found, installing with %s", inst.Name)
		if err := inst.Install(p.exec); err != nil {
			return err
		}
		if !p.IsInstalled() {
			return fmt.Errorf("mkcert still not on PATH after %s install", inst.Name)
		}
	}

	if !p.CAInstalled() {
		logger.Info("installing mkcert local CA")
		if err := executor.Run(p.exec, mkcertBinary, "-install"); err != nil {
			return fmt.Errorf("failed to install mkcert CA: %w", err)
		}
	}

	p.bootstrapped = true
	return nil
}

// Exists reports whether both files of the pair are present
func (p *Provider) Exists(domain string) bool {
	cert := p.GetCertPaths(domain)
	return fileExists(cert.CertPath) && fileExists(cert.KeyPath)
}

// Obtain returns the pair for domain, generating it when either file is
// missing. Generation goes to staging files that are renamed into place
// only once mkcert has produced both; on failure they are removed.
func (p *Provider) Obtain(domain string) (*Cert, error) {
	if domain == "" {
		return nil, fmt.Errorf("domain cannot be empty")
	}

	cert := p.GetCertPaths(domain)
	if p.Exists(domain) {
		logger.Debug("certificate for %s already exists", domain)
		return cert, nil
	}

	if err := os.MkdirAll(p.certDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create certificate directory: %w", err)
	}

	stageCert := cert.CertPath + stagingSuffix
	stageKey := cert.KeyPath + stagingSuffix
	cleanup := func() {
		_ = os.Remove(stageCert)
		_ = os.Remove(stageKey)
	}
	cleanup()

	err := executor.Run(p.exec, mkcertBinary,
		"-cert-file", stageCert,
		"-key-file", stageKey,
		domain,
	)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("mkcert failed: %w", err)
	}

	if !fileExists(stageCert) || !fileExists(stageKey) {
		cleanup()
		return nil, fmt.Errorf("mkcert did not produce both %s and %s", filepath.Base(cert.CertPath), filepath.Base(cert.KeyPath))
	}

	if err := os.Rename(stageKey, cert.KeyPath); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to commit key: %w", err)
	}
	if err := os.Rename(stageCert, cert.CertPath); err != nil {
		cleanup()
		_ = os.Remove(cert.KeyPath)
		return nil, fmt.Errorf("failed to commit certificate: %w", err)
	}

	logger.Debug("generated certificate for %s", domain)
	return cert, nil
}

// Delete removes the pair and any staging debris. It reports whether a
// file was removed; a missing pair is not an error.
func (p *Provider) Delete(domain string) (bool, error) {
	if domain == "" {
		return false, fmt.Errorf("domain cannot be empty")
	}

	cert := p.GetCertPaths(domain)
	removed := false
	for _, path := range []string{
		cert.CertPath,
		cert.KeyPath,
		cert.CertPath + stagingSuffix,
		cert.KeyPath + stagingSuffix,
	} {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed = true
		case os.IsNotExist(err):
		default:
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return removed, nil
}

// List returns the domains with a complete pair in the directory
func (p *Provider) List() ([]string, error) {
	entries, err := os.ReadDir(p.certDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", p.certDir, err)
	}

	domains := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, certSuffix) || strings.HasSuffix(name, keySuffix) {
			continue
		}
		domain := strings.TrimSuffix(name, certSuffix)
		if p.Exists(domain) {
			domains = append(domains, domain)
		}
	}
	sort.Strings(domains)
	return domains, nil
}

// Expiry returns the NotAfter time of the PEM certificate at path
func Expiry(certPath string) (time.Time, error) {
	data, err := os.ReadFile(certPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read certificate: %w", err)
	}
	x509Cert, err := certcrypto.ParsePEMCertificate(data)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return x509Cert.NotAfter, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
