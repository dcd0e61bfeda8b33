package apache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/logger"
	"github.com/ksyq12/phpvhost/internal/template"
)

// Store writes vhost files into one directory
type Store struct {
	dir          string
	serverConfig string
	serverRoot   string
	directive    string
	token        string
}

// New creates a Store. directive is the line EnsureInclude appends to
// serverConfig; token is the substring that proves it is already there.
func New(dir, serverConfig, directive, token string) *Store {
	return &Store{
		dir:          dir,
		serverConfig: serverConfig,
		directive:    directive,
		token:        token,
	}
}

// Dir returns the vhost directory
func (s *Store) Dir() string {
	return s.dir
}

// WithServerRoot sets the directory relative Include paths resolve
// against. It defaults to the directory of the server config.
func (s *Store) WithServerRoot(root string) *Store {
	s.serverRoot = root
	return s
}

// ServerConfig returns the main server config path
func (s *Store) ServerConfig() string {
	return s.serverConfig
}

// Path returns the vhost file path for a domain
func (s *Store) Path(domain string) string {
	return filepath.Join(s.dir, domain+".conf")
}

// Exists reports whether a vhost file exists for domain
func (s *Store) Exists(domain string) bool {
	_, err := os.Stat(s.Path(domain))
	return err == nil
}

// Write renders the vhost file for domain, replacing any previous one. It
// reports whether the file content changed; an identical file is left
// untouched.
func (s *Store) Write(domain, root, certPath, keyPath string) (string, bool, error) {
	content, err := template.RenderVHost(template.TemplateData{
		Domain:  domain,
		Root:    root,
		SSLCert: certPath,
		SSLKey:  keyPath,
	})
	if err != nil {
		return "", false, err
	}

	path := s.Path(domain)
	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		logger.Debug("%s is up to date", path)
		return path, false, nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", false, fmt.Errorf("failed to create vhost directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", false, fmt.Errorf("failed to write vhost file: %w", err)
	}
	logger.Debug("wrote %s", path)
	return path, true, nil
}

// Delete removes the vhost file for domain. It reports whether a file was
// removed; a missing file is not an error.
func (s *Store) Delete(domain string) (bool, error) {
	if err := os.Remove(s.Path(domain)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove vhost file: %w", err)
	}
	return true, nil
}

// HasInclude reports whether any line of the server config mentions the
// vhost directory token
func (s *Store) HasInclude() (bool, error) {
	data, err := os.ReadFile(s.serverConfig)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", s.serverConfig, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, s.token) {
			return true, nil
		}
	}
	return false, nil
}

// EnsureInclude appends the include directive to the server config unless
// it is already present. It reports whether the config was changed.
func (s *Store) EnsureInclude() (bool, error) {
	if s.token == "" || s.directive == "" {
		return false, fmt.Errorf("include directive is not configured")
	}

	present, err := s.HasInclude()
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	f, err := os.OpenFile(s.serverConfig, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", s.serverConfig, err)
	}
	defer f.Close()

	if _, err := f.WriteString("\n" + s.directive + "\n"); err != nil {
		return false, fmt.Errorf("failed to append include to %s: %w", s.serverConfig, err)
	}
	logger.Debug("appended %q to %s", s.directive, s.serverConfig)
	return true, nil
}

// maxIncludeDepth bounds how deep Include directives are followed
const maxIncludeDepth = 4

// SSLModuleEnabled reports whether mod_ssl is loaded by an uncommented
// LoadModule line in the server config or in a file it includes, such as
// conf.modules.d/00-ssl.conf or mods-enabled/ssl.load.
func (s *Store) SSLModuleEnabled() (bool, error) {
	return s.loadsSSL(s.serverConfig, map[string]bool{}, 0)
}

func (s *Store) loadsSSL(path string, seen map[string]bool, depth int) (bool, error) {
	if seen[path] || depth > maxIncludeDepth {
		return false, nil
	}
	seen[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "loadmodule":
			if fields[1] == "ssl_module" {
				return true, nil
			}
		case "include", "includeoptional":
			for _, inc := range s.includeFiles(fields[1]) {
				ok, err := s.loadsSSL(inc, seen, depth+1)
				if err != nil {
					logger.Debug("skipping include: %v", err)
					continue
				}
				if ok {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// includeFiles expands an Include argument to the files it names. A
// directory stands for every file in it.
func (s *Store) includeFiles(arg string) []string {
	pattern := strings.Trim(arg, `"'`)
	if !filepath.IsAbs(pattern) {
		root := s.serverRoot
		if root == "" {
			root = filepath.Dir(s.serverConfig)
		}
		pattern = filepath.Join(root, pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			files = append(files, m)
			continue
		}
		entries, err := os.ReadDir(m)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, filepath.Join(m, e.Name()))
			}
		}
	}
	return files
}

// List rebuilds the registered projects from the vhost directory. Only
// *.conf files whose name contains the project TLD are considered.
func (s *Store) List() ([]config.Project, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []config.Project{}, nil
		}
		return nil, fmt.Errorf("failed to read vhost directory: %w", err)
	}

	projects := make([]config.Project, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".conf") || !strings.Contains(name, config.TLD) {
			continue
		}
		projects = append(projects, s.load(strings.TrimSuffix(name, ".conf")))
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Domain < projects[j].Domain
	})
	return projects, nil
}

// Get returns the project for domain
func (s *Store) Get(domain string) (*config.Project, error) {
	if !s.Exists(domain) {
		return nil, fmt.Errorf("vhost %s not found", domain)
	}
	p := s.load(domain)
	return &p, nil
}

// load parses one vhost file. Unreadable files yield a project with an
// unknown root and Missing status.
func (s *Store) load(domain string) config.Project {
	p := config.Project{
		Domain:     domain,
		ConfigFile: s.Path(domain),
		Status:     config.StatusMissing,
	}

	data, err := os.ReadFile(p.ConfigFile)
	if err != nil {
		logger.Warn("failed to read %s: %v", p.ConfigFile, err)
		return p
	}
	content := string(data)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case p.DocumentRoot == "" && strings.HasPrefix(line, "DocumentRoot"):
			p.DocumentRoot = directiveValue(line)
		case p.SSLCert == "" && strings.HasPrefix(line, "SSLCertificateFile"):
			p.SSLCert = directiveValue(line)
		case p.SSLKey == "" && strings.HasPrefix(line, "SSLCertificateKeyFile"):
			p.SSLKey = directiveValue(line)
		}
	}
	p.SSL = strings.Contains(content, "SSLEngine on")

	if p.DocumentRoot != "" {
		if info, err := os.Stat(p.DocumentRoot); err == nil && info.IsDir() {
			p.Status = config.StatusActive
		}
	}
	return p
}

// directiveValue returns the argument of a one-argument directive,
// unquoting it when quoted
func directiveValue(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	if start := strings.Index(line, `"`); start >= 0 {
		if end := strings.Index(line[start+1:], `"`); end >= 0 {
			return line[start+1 : start+1+end]
		}
	}
	return fields[1]
}
