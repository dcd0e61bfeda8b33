package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Name of the only template: an HTTP block and an HTTPS block on the same
// document root
const Name = "vhost"

// TemplateData contains data for rendering templates
type TemplateData struct {
	Domain  string
	Root    string
	SSLCert string
	SSLKey  string
}

// Validate checks that every field the template references is set
func (d TemplateData) Validate() error {
	switch {
	case d.Domain == "":
		return fmt.Errorf("template data: domain is required")
	case d.Root == "":
		return fmt.Errorf("template data: document root is required")
	case d.SSLCert == "" || d.SSLKey == "":
		return fmt.Errorf("template data: certificate and key paths are required")
	}
	for _, p := range []string{d.Root, d.SSLCert, d.SSLKey} {
		if !QuotablePath(p) {
			return fmt.Errorf("template data: path %q cannot be quoted in a directive", p)
		}
	}
	return nil
}

// QuotablePath reports whether p can be written inside a double-quoted
// Apache directive argument. Apache has no escape for a quote there.
func QuotablePath(p string) bool {
	return !strings.ContainsAny(p, "\"\r\n")
}

// Render renders the named template for a server. The output is a pure
// function of data.
func Render(server, name string, data TemplateData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}

	tmplPath := fmt.Sprintf("%s/%s.tmpl", server, name)

	// Get template filesystem for the server
	fs, err := getTemplateFS(server)
	if err != nil {
		return "", err
	}

	// Read template content
	content, err := fs.ReadFile(tmplPath)
	if err != nil {
		return "", fmt.Errorf("template not found: %s/%s", server, name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	// Render template
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return strings.TrimSpace(buf.String()) + "\n", nil
}

// RenderVHost renders the Apache vhost file for a domain
func RenderVHost(data TemplateData) (string, error) {
	return Render("apache", Name, data)
}
