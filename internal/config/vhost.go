package config

import "strings"

// TLD is the top-level domain every project is registered under
const TLD = ".test"

// Project is a registered virtual host. It is not stored in the config
// file; it is rebuilt from the generated vhost file of its domain.
type Project struct {
	Domain       string `json:"domain" yaml:"domain"`
	DocumentRoot string `json:"document_root" yaml:"document_root"`
	SSL          bool   `json:"ssl" yaml:"ssl"`
	SSLCert      string `json:"ssl_cert,omitempty" yaml:"ssl_cert,omitempty"`
	SSLKey       string `json:"ssl_key,omitempty" yaml:"ssl_key,omitempty"`
	ConfigFile   string `json:"config_file" yaml:"config_file"`
	Status       string `json:"status" yaml:"status"`
}

// Project status values
const (
	StatusActive  = "Active"
	StatusMissing = "Missing"
)

// DomainFor returns the domain for a project name: "myapp" becomes
// "myapp.test". A name already ending in .test is returned unchanged.
func DomainFor(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.HasSuffix(name, TLD) {
		return name
	}
	return name + TLD
}

// NameFor strips the TLD from a domain
func NameFor(domain string) string {
	return strings.TrimSuffix(domain, TLD)
}

// DefaultEntry returns the default entry point for a project name,
// relative to the base path
func DefaultEntry(name string) string {
	return NameFor(strings.TrimSpace(name)) + "/public"
}
