package cli

import (
	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/spf13/cobra"
)

var (
	forceRemove bool
)

var removeCmd = &cobra.Command{
	Use:     "remove <name|domain>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a registered project",
	Long: `Remove the vhost, hosts entry and certificate of a project.

Removing a project that is not registered succeeds without changes.

Examples:
  phpvhost remove shop
  phpvhost rm shop.test --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Force removal without confirmation")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	// Validate name
	if err := validateName(args[0]); err != nil {
		return err
	}
	domain := config.DomainFor(args[0])

	tools, err := loadTools()
	if err != nil {
		return err
	}

	// Confirm removal if not forced
	if !forceRemove {
		if !confirm("Remove " + domain + " (vhost, hosts entry and certificate)?") {
			progress("Removal cancelled")
			return nil
		}
	}

	progress("Removing %s...", domain)
	res, err := tools.Reconciler().Remove(domain)
	if err != nil {
		return err
	}
	reportWarnings(res)

	return outputResult(newResult("remove", res), "Project %s removed", domain)
}
