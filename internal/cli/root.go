package cli

import (
	"os"

	"github.com/ksyq12/phpvhost/internal/errors"
	"github.com/ksyq12/phpvhost/internal/logger"
	"github.com/ksyq12/phpvhost/internal/output"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phpvhost",
	Short: "Local HTTPS virtual hosts for PHP projects",
	Long: `phpvhost registers local PHP projects with Apache under <name>.test.

Registering a project issues a locally trusted certificate with mkcert,
writes an Apache vhost with HTTP and HTTPS blocks, maps the domain to
127.0.0.1 in the hosts file and restarts Apache. Removing a project undoes
each of those steps. Both operations can be re-run safely.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: requireRoot,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status. Errors that do not
// halt a pipeline exit 0.
func exitCode(err error) int {
	if !errors.IsFatal(err) {
		return 0
	}
	switch errors.CodeOf(err) {
	case errors.ErrCodeValidation:
		return 2
	case errors.ErrCodePermission:
		return 77
	case errors.ErrCodeConfig:
		return 78
	}
	return 1
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}

// requireRoot rejects every command except help and completion when the
// process is not root
func requireRoot(cmd *cobra.Command, args []string) error {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == cobra.ShellCompRequestCmd || c.Name() == "completion" {
			return nil
		}
	}
	return deps.RootChecker.RequireRoot()
}
