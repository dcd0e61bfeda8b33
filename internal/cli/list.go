package cli

import (
	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered projects",
	Long: `List the projects found in the generated vhost files.

A project is Active when its document root exists and Missing otherwise.

Examples:
  phpvhost list
  phpvhost ls
  phpvhost list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	tools, err := loadTools()
	if err != nil {
		return err
	}

	projects, err := tools.Store.List()
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(projects)
	}

	if len(projects) == 0 {
		output.Info("No projects registered")
		return nil
	}

	// Build table
	headers := []string{"DOMAIN", "DOCUMENT ROOT", "SSL", "STATUS"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		ssl := "no"
		if p.SSL {
			ssl = "yes"
		}

		status := p.Status
		if status == config.StatusMissing {
			status = output.Colorize(output.ColorWarn, status)
		}

		rows = append(rows, []string{
			p.Domain,
			p.DocumentRoot,
			ssl,
			status,
		})
	}

	output.Table(headers, rows)
	return nil
}
