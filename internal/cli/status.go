package cli

import (
	"fmt"

	"github.com/ksyq12/phpvhost/internal/output"
	"github.com/ksyq12/phpvhost/internal/platform"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"doctor"},
	Short:   "Check the system setup",
	Long: `Check Apache, mkcert and the generated configuration.

Checks:
  - Apache service running
  - mkcert installed and its local CA present
  - Include directive present in the Apache config
  - mod_ssl loaded
  - Number of registered projects and certificates

Examples:
  phpvhost status
  phpvhost status --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// Check statuses
const (
	checkSuccess = "success"
	checkWarning = "warning"
	checkError   = "error"
)

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// StatusReport contains all diagnostic results
type StatusReport struct {
	Platform     string        `json:"platform"`
	OS           string        `json:"os"`
	Checks       []CheckResult `json:"checks"`
	Projects     int           `json:"projects"`
	Certificates int           `json:"certificates"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	tools, err := loadTools()
	if err != nil {
		return err
	}

	report := &StatusReport{
		Platform: string(tools.Layout.Family),
		OS:       platform.Platform(),
		Checks:   checkSystem(tools),
	}

	if projects, err := tools.Store.List(); err == nil {
		report.Projects = len(projects)
	} else {
		report.Checks = append(report.Checks, CheckResult{checkError, err.Error()})
	}
	if certs, err := tools.Certs.List(); err == nil {
		report.Certificates = len(certs)
	} else {
		report.Checks = append(report.Checks, CheckResult{checkError, err.Error()})
	}

	// Output results
	if jsonOutput {
		return output.JSON(report)
	}

	displayStatus(report)
	return nil
}

func checkSystem(tools *Tools) []CheckResult {
	results := []CheckResult{}

	if tools.Service.IsActive() {
		results = append(results, CheckResult{checkSuccess, fmt.Sprintf("Apache (%s) running", tools.Service.Name())})
	} else {
		results = append(results, CheckResult{checkError, fmt.Sprintf("Apache (%s) not running", tools.Service.Name())})
	}

	switch {
	case !tools.Certs.IsInstalled():
		results = append(results, CheckResult{checkWarning, "mkcert not installed (installed on first register)"})
	case !tools.Certs.CAInstalled():
		results = append(results, CheckResult{checkWarning, "mkcert installed, local CA missing (installed on first register)"})
	default:
		results = append(results, CheckResult{checkSuccess, "mkcert installed with local CA"})
	}

	if ok, err := tools.Store.HasInclude(); err != nil {
		results = append(results, CheckResult{checkError, err.Error()})
	} else if ok {
		results = append(results, CheckResult{checkSuccess, fmt.Sprintf("%s includes %s", tools.Store.ServerConfig(), tools.Store.Dir())})
	} else {
		results = append(results, CheckResult{checkWarning, fmt.Sprintf("%s does not include %s yet", tools.Store.ServerConfig(), tools.Store.Dir())})
	}

	if ok, err := tools.Store.SSLModuleEnabled(); err == nil && ok {
		results = append(results, CheckResult{checkSuccess, "mod_ssl loaded"})
	} else if err == nil {
		results = append(results, CheckResult{checkWarning, "mod_ssl not loaded in " + tools.Store.ServerConfig()})
	}

	return results
}

func displayStatus(report *StatusReport) {
	output.Print("")
	output.Print("System (%s, %s):", report.Platform, report.OS)
	for _, c := range report.Checks {
		switch c.Status {
		case checkSuccess:
			output.Success("%s", c.Message)
		case checkWarning:
			output.Warn("%s", c.Message)
		default:
			output.Error("%s", c.Message)
		}
	}
	output.Print("")
	output.Print("Projects:     %d", report.Projects)
	output.Print("Certificates: %d", report.Certificates)
	output.Print("")
}
