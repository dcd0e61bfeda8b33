package cli

import (
	"time"

	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/errors"
	"github.com/ksyq12/phpvhost/internal/output"
	"github.com/ksyq12/phpvhost/internal/ssl"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name|domain>",
	Short: "Show details of a project",
	Long: `Show the document root, certificate and hosts entry of a project.

Examples:
  phpvhost show shop
  phpvhost show shop.test --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showDetail represents the detailed project information for output
type showDetail struct {
	config.Project
	URL        string     `json:"url"`
	CertExists bool       `json:"cert_exists"`
	SSLExpires *time.Time `json:"ssl_expires,omitempty"`
	InHosts    bool       `json:"in_hosts"`
}

func runShow(cmd *cobra.Command, args []string) error {
	// Validate name
	if err := validateName(args[0]); err != nil {
		return err
	}
	domain := config.DomainFor(args[0])

	tools, err := loadTools()
	if err != nil {
		return err
	}

	project, err := tools.Store.Get(domain)
	if err != nil {
		return errors.Validation("project " + domain + " is not registered")
	}

	detail := showDetail{
		Project: *project,
		URL:     "https://" + domain,
	}

	cert := tools.Certs.GetCertPaths(domain)
	if detail.SSLCert == "" {
		detail.SSLCert, detail.SSLKey = cert.CertPath, cert.KeyPath
	}
	detail.CertExists = tools.Certs.Exists(domain)
	if detail.CertExists {
		if expiry, err := ssl.Expiry(cert.CertPath); err == nil {
			detail.SSLExpires = &expiry
		}
	}

	if inHosts, err := tools.Hosts.Contains(domain); err == nil {
		detail.InHosts = inHosts
	} else {
		output.Warn("Could not read %s: %v", tools.Hosts.Path(), err)
	}

	// Output JSON if requested
	if jsonOutput {
		return output.JSON(detail)
	}

	// Human-readable output
	output.Print("")
	output.Print("Domain:     %s", detail.Domain)
	output.Print("URL:        %s", detail.URL)
	output.Print("Root:       %s", detail.DocumentRoot)
	output.Print("Status:     %s", detail.Status)
	output.Print("Config:     %s", detail.ConfigFile)

	if detail.SSL {
		output.Print("SSL:        enabled")
	} else {
		output.Print("SSL:        disabled")
	}
	output.Print("  Cert:     %s", detail.SSLCert)
	output.Print("  Key:      %s", detail.SSLKey)
	switch {
	case !detail.CertExists:
		output.Print("  Expires:  certificate missing")
	case detail.SSLExpires != nil:
		output.Print("  Expires:  %s", detail.SSLExpires.Format("2006-01-02"))
	}

	if detail.InHosts {
		output.Print("Hosts:      yes")
	} else {
		output.Print("Hosts:      no")
	}
	output.Print("")

	return nil
}
